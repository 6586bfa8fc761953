package assist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Minimal valid PNG header, enough for content-type detection.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestNewTextPart(t *testing.T) {
	part := NewTextPart("hola")

	assert.Equal(t, "text", part.Type)
	assert.Equal(t, "hola", part.Text)
	assert.Nil(t, part.Data)
}

func TestNewImagePart(t *testing.T) {
	data := []byte("fake image data")

	part := NewImagePart(data, "image/png")

	assert.Equal(t, "image", part.Type)
	assert.Equal(t, data, part.Data)
	assert.Equal(t, "image/png", part.MimeType)
	assert.Empty(t, part.Text)
}

func TestNewImagePart_DetectsMissingMimeType(t *testing.T) {
	part := NewImagePart(pngHeader, "")

	assert.Equal(t, "image/png", part.MimeType)
}

func TestMessageConstructors(t *testing.T) {
	user := NewUserMessage(NewTextPart("hola"))
	assert.Equal(t, RoleUser, user.Role)
	assert.Len(t, user.Parts, 1)

	assistant := NewAssistantMessage(NewTextPart("buenas"))
	assert.Equal(t, RoleAssistant, assistant.Role)
}
