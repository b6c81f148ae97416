package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBotToken(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		token   string
	}{
		{name: "valid", token: "123456:ABC-def_123"},
		{name: "empty", token: "", wantErr: ErrEmpty},
		{name: "no colon", token: "123456ABC", wantErr: ErrInvalidFormat},
		{name: "letters in id", token: "12a:ABC", wantErr: ErrInvalidFormat},
		{name: "space in secret", token: "1:AB C", wantErr: ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBotToken(tt.token)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			if tt.token != "" {
				assert.NotContains(t, err.Error(), tt.token)
			}
		})
	}
}

func TestValidateBotName(t *testing.T) {
	assert.NoError(t, ValidateBotName("sticker_bot"))
	assert.NoError(t, ValidateBotName("StickerBot"))
	assert.ErrorIs(t, ValidateBotName(""), ErrEmpty)
	assert.ErrorIs(t, ValidateBotName("stickers"), ErrInvalidFormat)
	assert.ErrorIs(t, ValidateBotName("bot"), ErrInvalidFormat)
}

func TestValidateStickerSetName(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		value   string
	}{
		{name: "valid", value: "Animals_by_sticker_bot"},
		{name: "single letter", value: "a"},
		{name: "empty", value: "", wantErr: ErrEmpty},
		{name: "path traversal", value: "../etc", wantErr: ErrInvalidFormat},
		{name: "starts with digit", value: "1set", wantErr: ErrInvalidFormat},
		{name: "too long", value: "a" + strings.Repeat("b", 64), wantErr: ErrTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStickerSetName(tt.value)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "sticker set name", vErr.Field)
		})
	}
}

func TestValidateText(t *testing.T) {
	assert.NoError(t, ValidateText("hello"))
	assert.ErrorIs(t, ValidateText(""), ErrEmpty)
	assert.ErrorIs(t, ValidateText(strings.Repeat("я", MaxTextLen+1)), ErrTooLong)
	assert.NoError(t, ValidateText(strings.Repeat("я", MaxTextLen)))
}

func TestValidateUploadFile(t *testing.T) {
	dir := t.TempDir()
	full := filepath.Join(dir, "set.zip")
	require.NoError(t, os.WriteFile(full, []byte("zip"), 0o600))
	empty := filepath.Join(dir, "empty.zip")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	assert.NoError(t, ValidateUploadFile(full))
	assert.ErrorIs(t, ValidateUploadFile(""), ErrEmpty)
	assert.ErrorIs(t, ValidateUploadFile(empty), ErrEmpty)
	assert.ErrorIs(t, ValidateUploadFile(filepath.Join(dir, "missing.zip")), ErrFileNotFound)
	assert.ErrorIs(t, ValidateUploadFile(dir), ErrFileNotFound)
}

func TestValidationError_Message(t *testing.T) {
	err := NewError("preference key", "colour", ErrUnknownKey)
	assert.Equal(t, `invalid preference key "colour": unknown key`, err.Error())
}
