package iocli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/stickerbot/internal/validation"
)

func TestPromptToken(t *testing.T) {
	inputs := []string{"nonsense", "123456:ABC-def"}
	mock := &IOMock{
		InteractiveFunc: func() bool { return true },
		ReadSecretFunc: func(prompt string) (string, error) {
			v := inputs[0]
			inputs = inputs[1:]
			return v, nil
		},
		PrintfFunc: func(format string, a ...any) {},
	}

	token, err := PromptToken(mock)
	require.NoError(t, err)
	assert.Equal(t, "123456:ABC-def", token)
	assert.Len(t, mock.ReadSecretCalls(), 2)
	assert.Len(t, mock.PrintfCalls(), 1)
}

func TestPromptToken_GivesUp(t *testing.T) {
	mock := &IOMock{
		InteractiveFunc: func() bool { return true },
		ReadSecretFunc:  func(prompt string) (string, error) { return "", nil },
		PrintfFunc:      func(format string, a ...any) {},
	}

	_, err := PromptToken(mock)
	require.ErrorIs(t, err, validation.ErrEmpty)
	assert.Len(t, mock.ReadSecretCalls(), maxTokenAttempts)
}

func TestPromptToken_NotInteractive(t *testing.T) {
	mock := &IOMock{InteractiveFunc: func() bool { return false }}

	_, err := PromptToken(mock)
	require.ErrorIs(t, err, ErrNotInteractive)
	assert.Empty(t, mock.ReadSecretCalls())
}

func TestPromptToken_ReadError(t *testing.T) {
	readErr := errors.New("eof")
	mock := &IOMock{
		InteractiveFunc: func() bool { return true },
		ReadSecretFunc:  func(prompt string) (string, error) { return "", readErr },
	}

	_, err := PromptToken(mock)
	require.ErrorIs(t, err, readErr)
}

func TestStdio_Printf(t *testing.T) {
	var buf bytes.Buffer
	s := NewStdio(&buf)
	s.Printf("chats: %d\n", 3)
	assert.Equal(t, "chats: 3\n", buf.String())
}
