package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Messages contains all user-facing reply texts loaded from YAML
type Messages struct {
	Errors  ErrorMessages  `yaml:"errors"`
	Reports ReportMessages `yaml:"reports"`
	Menus   MenuMessages   `yaml:"menus"`
}

// ErrorMessages contains user-visible error replies
type ErrorMessages struct {
	NotRegistered      string `yaml:"not_registered"`
	NoFlowForRole      string `yaml:"no_flow_for_role"`
	InvalidSelection   string `yaml:"invalid_selection"`
	SupervisorNotFound string `yaml:"supervisor_not_found"`
	AttendanceError    string `yaml:"attendance_error"`
}

// ReportMessages contains report bodies and summary templates
type ReportMessages struct {
	SummaryTemplate       string `yaml:"summary_template"`
	NoSupervisors         string `yaml:"no_supervisors"`
	NoAttendanceToday     string `yaml:"no_attendance_today"`
	NoReportData          string `yaml:"no_report_data"`
	NoSupervisorsAssigned string `yaml:"no_supervisors_assigned"`
	CompanyHeader         string `yaml:"company_header"`
	ChartUploadFallback   string `yaml:"chart_upload_fallback"`
	NoChartFallback       string `yaml:"no_chart_fallback"`
}

// MenuMessages contains interactive menu texts
type MenuMessages struct {
	ExecHeaderTemplate string `yaml:"exec_header_template"`
	ExecBody           string `yaml:"exec_body"`
	ExecButton         string `yaml:"exec_button"`
	ExecSection        string `yaml:"exec_section"`
	ExecReportOption   string `yaml:"exec_report_option"`
	DrillHeader        string `yaml:"drill_header"`
	TeamBody           string `yaml:"team_body"`
	TeamButton         string `yaml:"team_button"`
	TeamSection        string `yaml:"team_section"`
	SupBody            string `yaml:"sup_body"`
	SupButton          string `yaml:"sup_button"`
	SupSection         string `yaml:"sup_section"`
	RosterPrompt       string `yaml:"roster_prompt"`
	PresentButton      string `yaml:"present_button"`
	AbsentButton       string `yaml:"absent_button"`
}

// LoadMessages loads reply texts from a YAML file
func LoadMessages(configPath string) (*Messages, error) {
	paths := []string{configPath}
	if configPath == "" {
		paths = []string{
			"configs/messages.yaml",
			"./configs/messages.yaml",
			"/etc/wa-attendance-bot/messages.yaml",
		}
		if execPath, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Join(filepath.Dir(execPath), "configs", "messages.yaml"))
		}
	}

	var data []byte
	var loadedPath string
	var err error

	for _, p := range paths {
		if p == "" {
			continue
		}
		data, err = os.ReadFile(p)
		if err == nil {
			loadedPath = p
			break
		}
	}

	if data == nil {
		fmt.Println("[Config] No messages.yaml found, using defaults")
		return DefaultMessages(), nil
	}

	fmt.Printf("[Config] Loading messages from: %s\n", loadedPath)

	var messages Messages
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages.yaml: %w", err)
	}

	messages.fillDefaults()

	return &messages, nil
}

// fillDefaults fills in default values for empty fields
func (m *Messages) fillDefaults() {
	defaults := DefaultMessages()

	if m.Errors.NotRegistered == "" {
		m.Errors.NotRegistered = defaults.Errors.NotRegistered
	}
	if m.Errors.NoFlowForRole == "" {
		m.Errors.NoFlowForRole = defaults.Errors.NoFlowForRole
	}
	if m.Errors.InvalidSelection == "" {
		m.Errors.InvalidSelection = defaults.Errors.InvalidSelection
	}
	if m.Errors.SupervisorNotFound == "" {
		m.Errors.SupervisorNotFound = defaults.Errors.SupervisorNotFound
	}
	if m.Errors.AttendanceError == "" {
		m.Errors.AttendanceError = defaults.Errors.AttendanceError
	}

	if m.Reports.SummaryTemplate == "" {
		m.Reports.SummaryTemplate = defaults.Reports.SummaryTemplate
	}
	if m.Reports.NoSupervisors == "" {
		m.Reports.NoSupervisors = defaults.Reports.NoSupervisors
	}
	if m.Reports.NoAttendanceToday == "" {
		m.Reports.NoAttendanceToday = defaults.Reports.NoAttendanceToday
	}
	if m.Reports.NoReportData == "" {
		m.Reports.NoReportData = defaults.Reports.NoReportData
	}
	if m.Reports.NoSupervisorsAssigned == "" {
		m.Reports.NoSupervisorsAssigned = defaults.Reports.NoSupervisorsAssigned
	}
	if m.Reports.CompanyHeader == "" {
		m.Reports.CompanyHeader = defaults.Reports.CompanyHeader
	}
	if m.Reports.ChartUploadFallback == "" {
		m.Reports.ChartUploadFallback = defaults.Reports.ChartUploadFallback
	}
	if m.Reports.NoChartFallback == "" {
		m.Reports.NoChartFallback = defaults.Reports.NoChartFallback
	}

	if m.Menus.ExecHeaderTemplate == "" {
		m.Menus.ExecHeaderTemplate = defaults.Menus.ExecHeaderTemplate
	}
	if m.Menus.ExecBody == "" {
		m.Menus.ExecBody = defaults.Menus.ExecBody
	}
	if m.Menus.ExecButton == "" {
		m.Menus.ExecButton = defaults.Menus.ExecButton
	}
	if m.Menus.ExecSection == "" {
		m.Menus.ExecSection = defaults.Menus.ExecSection
	}
	if m.Menus.ExecReportOption == "" {
		m.Menus.ExecReportOption = defaults.Menus.ExecReportOption
	}
	if m.Menus.DrillHeader == "" {
		m.Menus.DrillHeader = defaults.Menus.DrillHeader
	}
	if m.Menus.TeamBody == "" {
		m.Menus.TeamBody = defaults.Menus.TeamBody
	}
	if m.Menus.TeamButton == "" {
		m.Menus.TeamButton = defaults.Menus.TeamButton
	}
	if m.Menus.TeamSection == "" {
		m.Menus.TeamSection = defaults.Menus.TeamSection
	}
	if m.Menus.SupBody == "" {
		m.Menus.SupBody = defaults.Menus.SupBody
	}
	if m.Menus.SupButton == "" {
		m.Menus.SupButton = defaults.Menus.SupButton
	}
	if m.Menus.SupSection == "" {
		m.Menus.SupSection = defaults.Menus.SupSection
	}
	if m.Menus.RosterPrompt == "" {
		m.Menus.RosterPrompt = defaults.Menus.RosterPrompt
	}
	if m.Menus.PresentButton == "" {
		m.Menus.PresentButton = defaults.Menus.PresentButton
	}
	if m.Menus.AbsentButton == "" {
		m.Menus.AbsentButton = defaults.Menus.AbsentButton
	}
}

// FormatSummary renders the summary template with counts
func (m *Messages) FormatSummary(present, absent, rate int) string {
	result := m.Reports.SummaryTemplate
	result = strings.ReplaceAll(result, "{{present}}", strconv.Itoa(present))
	result = strings.ReplaceAll(result, "{{absent}}", strconv.Itoa(absent))
	result = strings.ReplaceAll(result, "{{total}}", strconv.Itoa(present+absent))
	result = strings.ReplaceAll(result, "{{rate}}", strconv.Itoa(rate))
	return strings.TrimSpace(result)
}

// FormatNoFlow renders the no-flow reply for a role string
func (m *Messages) FormatNoFlow(role string) string {
	return strings.ReplaceAll(m.Errors.NoFlowForRole, "{{role}}", role)
}

// FormatExecHeader renders the executive menu header for a user
func (m *Messages) FormatExecHeader(name string) string {
	return strings.ReplaceAll(m.Menus.ExecHeaderTemplate, "{{name}}", name)
}

// DefaultMessages returns the default reply texts
func DefaultMessages() *Messages {
	return &Messages{
		Errors: ErrorMessages{
			NotRegistered:      "❌ Your phone number is not registered in the system.",
			NoFlowForRole:      "Your role ({{role}}) does not have a defined report flow.",
			InvalidSelection:   "❌ Invalid selection.",
			SupervisorNotFound: "❌ Supervisor details not found.",
			AttendanceError:    "Error fetching attendance data.",
		},
		Reports: ReportMessages{
			SummaryTemplate:       "✅ Present: *{{present}}*\n❌ Absent: *{{absent}}*\n👥 Total BAs: *{{total}}*\n📊 Attendance Rate: *{{rate}}%*",
			NoSupervisors:         "No supervisors found.",
			NoAttendanceToday:     "No BAs found assigned to the specified team(s) today.",
			NoReportData:          "No data available to generate a report.",
			NoSupervisorsAssigned: "You have no supervisors assigned to you.",
			CompanyHeader:         "🏢 *Company-Wide Attendance Summary*",
			ChartUploadFallback:   "⚠️ Could not generate the chart image. Here is the text summary:\n\n",
			NoChartFallback:       "⚠️ No data to generate a chart. Here is the text summary:\n\n",
		},
		Menus: MenuMessages{
			ExecHeaderTemplate: "Welcome, {{name}}",
			ExecBody:           "Please select an option to get started.",
			ExecButton:         "Main Menu",
			ExecSection:        "Options",
			ExecReportOption:   "View Attendance Report",
			DrillHeader:        "Drill Down",
			TeamBody:           "Select a team lead to view their report.",
			TeamButton:         "View Teams",
			TeamSection:        "Team Leads",
			SupBody:            "Select a supervisor to view their report.",
			SupButton:          "View Supervisors",
			SupSection:         "Supervisors",
			RosterPrompt:       "Select an option to view names.",
			PresentButton:      "View Present BAs",
			AbsentButton:       "View Absent BAs",
		},
	}
}
