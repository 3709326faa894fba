package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fieldops/wa-attendance-bot/internal/biz/domain"
	"github.com/fieldops/wa-attendance-bot/internal/service"
)

// WebhookServer receives WhatsApp webhook events. The handlers only
// validate shape, dedup and enqueue; all real work happens in the
// dispatcher's background tasks so the platform always gets a prompt
// acknowledgment.
type WebhookServer struct {
	verifyToken   string
	phoneNumberID string
	dispatcher    *service.Dispatcher
	server        *http.Server
}

// NewWebhookServer creates a new webhook server
func NewWebhookServer(addr, verifyToken, phoneNumberID string, dispatcher *service.Dispatcher) *WebhookServer {
	s := &WebhookServer{
		verifyToken:   verifyToken,
		phoneNumberID: phoneNumberID,
		dispatcher:    dispatcher,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/webhook", s.handleWebhook)
	mux.HandleFunc("/health", s.handleHealth)

	s.server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	return s
}

// Start starts the HTTP server
func (s *WebhookServer) Start() error {
	fmt.Printf("[Webhook] Listening on %s\n", s.server.Addr)
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server
func (s *WebhookServer) Stop() error {
	return s.server.Shutdown(context.Background())
}

// Handler exposes the route handler for tests
func (s *WebhookServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *WebhookServer) handleWebhook(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleVerify(w, r)
	case http.MethodPost:
		s.handleEvent(w, r)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// handleVerify answers the platform's subscription handshake
func (s *WebhookServer) handleVerify(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	mode := query.Get("hub.mode")
	token := query.Get("hub.verify_token")
	challenge := query.Get("hub.challenge")

	if mode == "subscribe" && token == s.verifyToken {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(challenge))
		return
	}
	http.Error(w, "Verification failed", http.StatusForbidden)
}

// handleEvent handles an inbound event envelope. The platform treats any
// non-200 as a delivery failure and retries, so every outcome but a bad
// method acks with 200.
func (s *WebhookServer) handleEvent(w http.ResponseWriter, r *http.Request) {
	defer func() {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}()

	var envelope domain.Envelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		fmt.Printf("[Webhook] Malformed body ignored: %v\n", err)
		return
	}

	msg, ok := envelope.FirstMessage()
	if !ok {
		// Status notification or empty change, nothing to do
		return
	}
	if msg.ID == "" || msg.From == "" || msg.From == s.phoneNumberID {
		return
	}

	fmt.Printf("[Webhook] From: %s | Type: %s | Content: %s\n", maskPhone(msg.From), msg.Type, msg.Preview())

	s.dispatcher.Dispatch(msg)
}

func (s *WebhookServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format("2006-01-02"),
	})
}

// maskPhone hides all but the last 4 digits of a phone number
func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return "..." + phone[len(phone)-4:]
}
