package data

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/fieldops/wa-attendance-bot/internal/biz/repo"
)

// maxTextBody is the WhatsApp text message body limit
const maxTextBody = 4096

// whatsappRepo implements the messaging gateway over the WhatsApp Cloud
// (Graph) API
type whatsappRepo struct {
	client        *http.Client
	apiBase       string
	accessToken   string
	phoneNumberID string
}

// NewWhatsAppRepo creates a new WhatsApp gateway repository
func NewWhatsAppRepo(apiBase, accessToken, phoneNumberID string) repo.GatewayRepo {
	return &whatsappRepo{
		client:        &http.Client{Timeout: 30 * time.Second},
		apiBase:       apiBase,
		accessToken:   accessToken,
		phoneNumberID: phoneNumberID,
	}
}

// SendText sends a plain text message, truncated to the platform limit
func (r *whatsappRepo) SendText(ctx context.Context, to, body string) error {
	runes := []rune(body)
	if len(runes) > maxTextBody {
		body = string(runes[:maxTextBody])
	}
	return r.sendMessage(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"text":              map[string]string{"body": body},
	})
}

// SendImage sends a previously uploaded image with a caption
func (r *whatsappRepo) SendImage(ctx context.Context, to, mediaID, caption string) error {
	return r.sendMessage(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "image",
		"image":             map[string]string{"id": mediaID, "caption": caption},
	})
}

// SendList sends an interactive list message
func (r *whatsappRepo) SendList(ctx context.Context, to, header, body, buttonLabel string, sections []repo.Section) error {
	sectionPayloads := make([]map[string]any, len(sections))
	for i, section := range sections {
		rows := make([]map[string]string, len(section.Rows))
		for j, row := range section.Rows {
			rows[j] = map[string]string{"id": row.ID, "title": row.Title}
		}
		sectionPayloads[i] = map[string]any{"title": section.Title, "rows": rows}
	}
	return r.sendMessage(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "interactive",
		"interactive": map[string]any{
			"type":   "list",
			"header": map[string]string{"type": "text", "text": header},
			"body":   map[string]string{"text": body},
			"action": map[string]any{"button": buttonLabel, "sections": sectionPayloads},
		},
	})
}

// SendButtons sends an interactive button message. Extra buttons beyond
// the platform limit of 3 are dropped; an empty set is a no-op.
func (r *whatsappRepo) SendButtons(ctx context.Context, to, body string, buttons []repo.Button) error {
	if len(buttons) == 0 {
		return nil
	}
	if len(buttons) > 3 {
		buttons = buttons[:3]
	}
	buttonPayloads := make([]map[string]any, len(buttons))
	for i, button := range buttons {
		buttonPayloads[i] = map[string]any{
			"type":  "reply",
			"reply": map[string]string{"id": button.ID, "title": button.Title},
		}
	}
	return r.sendMessage(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "interactive",
		"interactive": map[string]any{
			"type":   "button",
			"body":   map[string]string{"text": body},
			"action": map[string]any{"buttons": buttonPayloads},
		},
	})
}

// UploadMedia uploads a PNG image and returns the media id
func (r *whatsappRepo) UploadMedia(ctx context.Context, png []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "attendance.png")
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(png); err != nil {
		return "", fmt.Errorf("failed to write upload body: %w", err)
	}
	if err := writer.WriteField("messaging_product", "whatsapp"); err != nil {
		return "", fmt.Errorf("failed to write upload field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finish upload form: %w", err)
	}

	url := fmt.Sprintf("%s/%s/media", r.apiBase, r.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.accessToken)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("media upload failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("media upload failed: status %d: %s", resp.StatusCode, respBody)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to parse upload response: %w", err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("media upload returned no id")
	}

	fmt.Printf("[WhatsApp] Media uploaded: %s\n", result.ID)
	return result.ID, nil
}

// sendMessage posts one payload to the messages endpoint
func (r *whatsappRepo) sendMessage(ctx context.Context, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", r.apiBase, r.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("send failed: status %d: %s", resp.StatusCode, respBody)
	}
	return nil
}
