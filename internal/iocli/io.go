package iocli

//go:generate moq -out io_mock.go . IO

import (
	"errors"
	"fmt"

	"github.com/iudanet/stickerbot/internal/validation"
)

// ErrNotInteractive ввод недоступен: stdin не терминал
var ErrNotInteractive = errors.New("stdin is not a terminal")

// maxTokenAttempts попыток ввода токена
const maxTokenAttempts = 3

// IO ввод-вывод консоли
type IO interface {
	Printf(format string, a ...any)
	ReadSecret(prompt string) (string, error)
	Interactive() bool
}

// PromptToken запрашивает токен бота без эха, пока он не пройдет проверку
func PromptToken(io IO) (string, error) {
	if !io.Interactive() {
		return "", ErrNotInteractive
	}

	var lastErr error
	for range maxTokenAttempts {
		token, err := io.ReadSecret("Bot token: ")
		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}
		if lastErr = validation.ValidateBotToken(token); lastErr == nil {
			return token, nil
		}
		io.Printf("Invalid token: %v\n", lastErr)
	}
	return "", lastErr
}
