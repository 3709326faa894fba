package conf

import (
	"fmt"
	"os"
	"strconv"
)

// Config represents application configuration
type Config struct {
	// WhatsApp configuration
	WhatsApp WhatsAppConfig

	// Store configuration
	Store StoreConfig

	// Server configuration
	Server ServerConfig

	// Messages configuration (loaded from YAML)
	Messages *Messages

	// Debug mode
	Debug bool
}

// WhatsAppConfig contains WhatsApp Cloud API configuration
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	VerifyToken   string
	APIBase       string
}

// StoreConfig contains database paths
type StoreConfig struct {
	HierarchyDBPath  string
	AttendanceDBPath string
}

// ServerConfig contains webhook server configuration
type ServerConfig struct {
	Addr          string
	DedupCapacity int
	MaxWorkers    int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	apiBase := os.Getenv("WHATSAPP_API_BASE")
	if apiBase == "" {
		apiBase = "https://graph.facebook.com/v19.0"
	}

	hierarchyDB := os.Getenv("HIERARCHY_DB_PATH")
	if hierarchyDB == "" {
		hierarchyDB = "data/hierarchy.db"
	}

	attendanceDB := os.Getenv("ATTENDANCE_DB_PATH")
	if attendanceDB == "" {
		attendanceDB = "data/attendance.db"
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":3000"
	}

	dedupCapacity := 1000
	if val := os.Getenv("DEDUP_CAPACITY"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			dedupCapacity = parsed
		}
	}

	maxWorkers := 16
	if val := os.Getenv("MAX_WORKERS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			maxWorkers = parsed
		}
	}

	// Load reply templates from YAML. A broken file must not leave the
	// bot without reply texts, so it degrades to the defaults.
	messages, err := LoadMessages(os.Getenv("MESSAGES_CONFIG_PATH"))
	if err != nil {
		fmt.Printf("[Config] Failed to load messages: %v, using defaults\n", err)
		messages = DefaultMessages()
	}

	return &Config{
		WhatsApp: WhatsAppConfig{
			AccessToken:   os.Getenv("WHATSAPP_ACCESS_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			VerifyToken:   os.Getenv("WHATSAPP_VERIFY_TOKEN"),
			APIBase:       apiBase,
		},
		Store: StoreConfig{
			HierarchyDBPath:  hierarchyDB,
			AttendanceDBPath: attendanceDB,
		},
		Server: ServerConfig{
			Addr:          addr,
			DedupCapacity: dedupCapacity,
			MaxWorkers:    maxWorkers,
		},
		Messages: messages,
		Debug:    os.Getenv("DEBUG") == "true",
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.WhatsApp.AccessToken == "" || c.WhatsApp.PhoneNumberID == "" {
		return &ConfigError{Field: "WHATSAPP_ACCESS_TOKEN/WHATSAPP_PHONE_NUMBER_ID", Message: "required"}
	}
	if c.WhatsApp.VerifyToken == "" {
		return &ConfigError{Field: "WHATSAPP_VERIFY_TOKEN", Message: "required"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
