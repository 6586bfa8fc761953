package assist

import "github.com/gabriel-vasile/mimetype"

// Part represents one segment of a prompt (text or inline binary data).
type Part struct {
	Type     string
	Text     string
	Data     []byte
	MimeType string // for binary parts
}

// NewTextPart creates a new text part.
func NewTextPart(text string) *Part {
	return &Part{Type: "text", Text: text}
}

// NewImagePart creates a new inline image part. When mimeType is empty the
// type is detected from the data so the backend always receives a declared
// content type.
func NewImagePart(data []byte, mimeType string) *Part {
	if mimeType == "" {
		mimeType = mimetype.Detect(data).String()
	}
	return &Part{Type: "image", Data: data, MimeType: mimeType}
}

// Message represents one role-attributed message in a request.
type Message struct {
	Role  Role
	Parts []*Part
}

// NewUserMessage creates a new user message.
func NewUserMessage(parts ...*Part) *Message {
	return &Message{Role: RoleUser, Parts: parts}
}

// NewAssistantMessage creates a new assistant message.
func NewAssistantMessage(parts ...*Part) *Message {
	return &Message{Role: RoleAssistant, Parts: parts}
}
