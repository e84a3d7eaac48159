package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecureToken(t *testing.T) {
	token, err := GenerateSecureToken(32)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}$`), token, "32 random bytes encode to 64 hex chars")

	other, err := GenerateSecureToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestValidator_SupportedImage(t *testing.T) {
	v := NewValidator()

	type upload struct {
		MimeType string `validate:"supported_image"`
	}

	for _, mime := range []string{"image/jpeg", "image/png", "image/gif", "image/webp"} {
		assert.NoError(t, v.Struct(upload{MimeType: mime}), mime)
	}
	for _, mime := range []string{"image/bmp", "application/pdf", "text/html", ""} {
		assert.Error(t, v.Struct(upload{MimeType: mime}), mime)
	}
}
