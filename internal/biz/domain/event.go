package domain

import "encoding/json"

// Envelope is the WhatsApp Cloud API webhook event envelope
type Envelope struct {
	Entry []Entry `json:"entry"`
}

// Entry is one webhook entry
type Entry struct {
	Changes []Change `json:"changes"`
}

// Change is one change notification inside an entry
type Change struct {
	Value Value `json:"value"`
}

// Value carries either inbound messages or delivery-status metadata
type Value struct {
	Messages []Message         `json:"messages"`
	Statuses []json.RawMessage `json:"statuses"`
}

// Message is one inbound message
type Message struct {
	ID          string       `json:"id"`
	From        string       `json:"from"`
	Type        string       `json:"type"`
	Text        *Text        `json:"text,omitempty"`
	Interactive *Interactive `json:"interactive,omitempty"`
}

// Text is a plain text message body
type Text struct {
	Body string `json:"body"`
}

// Interactive is an interactive reply (list or button)
type Interactive struct {
	Type        string `json:"type"`
	ButtonReply *Reply `json:"button_reply,omitempty"`
	ListReply   *Reply `json:"list_reply,omitempty"`
}

// Reply identifies the selected list row or reply button
type Reply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// FirstMessage extracts the first message of the first change of the
// first entry. It returns false for status-only notifications and
// envelopes that carry no message.
func (e *Envelope) FirstMessage() (*Message, bool) {
	if len(e.Entry) == 0 || len(e.Entry[0].Changes) == 0 {
		return nil, false
	}
	value := e.Entry[0].Changes[0].Value
	if len(value.Statuses) > 0 || len(value.Messages) == 0 {
		return nil, false
	}
	return &value.Messages[0], true
}

// SelectionID returns the raw selection id attached to an interactive
// reply, or "" for anything else
func (m *Message) SelectionID() string {
	if m.Interactive == nil {
		return ""
	}
	if m.Interactive.ButtonReply != nil {
		return m.Interactive.ButtonReply.ID
	}
	if m.Interactive.ListReply != nil {
		return m.Interactive.ListReply.ID
	}
	return ""
}

// Preview returns a short, loggable description of the message content
func (m *Message) Preview() string {
	switch m.Type {
	case "text":
		if m.Text == nil {
			return ""
		}
		return truncateRunes(m.Text.Body, 50)
	case "interactive":
		if m.Interactive == nil {
			return "interactive"
		}
		if m.Interactive.ListReply != nil {
			return "List: " + m.Interactive.ListReply.Title
		}
		if m.Interactive.ButtonReply != nil {
			return "Button: " + m.Interactive.ButtonReply.Title
		}
		return "Interactive: " + m.Interactive.Type
	default:
		return m.Type
	}
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
