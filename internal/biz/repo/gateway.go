package repo

import "context"

// Button is one interactive reply button
type Button struct {
	ID    string
	Title string
}

// Row is one row of an interactive list section
type Row struct {
	ID    string
	Title string
}

// Section is one labeled section of an interactive list message
type Section struct {
	Title string
	Rows  []Row
}

// GatewayRepo is the messaging-gateway repository interface.
// Responsible for delivering outbound messages via the WhatsApp Cloud API.
type GatewayRepo interface {
	// SendText sends a plain text message. Bodies longer than the
	// platform's 4096-character limit are truncated.
	SendText(ctx context.Context, to, body string) error

	// SendImage sends a previously uploaded image with a caption
	SendImage(ctx context.Context, to, mediaID, caption string) error

	// SendList sends an interactive list message
	SendList(ctx context.Context, to, header, body, buttonLabel string, sections []Section) error

	// SendButtons sends an interactive button message with up to 3
	// reply buttons. Extra buttons are dropped; an empty set sends
	// nothing.
	SendButtons(ctx context.Context, to, body string, buttons []Button) error

	// UploadMedia uploads a PNG image and returns its media id
	UploadMedia(ctx context.Context, png []byte) (string, error)
}
