package validation

import (
	"os"
	"regexp"
	"unicode/utf8"
)

var (
	// BotTokenPattern формат токена: <id>:<secret>
	BotTokenPattern = regexp.MustCompile(`^[0-9]+:[A-Za-z0-9\-_]+$`)

	// BotNamePattern имя бота: латинские буквы, цифры, подчеркивание,
	// 5-32 символа, оканчивается на bot
	BotNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{2,29}[bB][oO][tT]$`)

	// StickerSetNamePattern имя набора: начинается с буквы, до 64 символов
	StickerSetNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]{0,63}$`)
)

const (
	// MaxTextLen максимальная длина текста сообщения в символах
	MaxTextLen = 4096
)

// ValidateBotToken проверяет формат токена
func ValidateBotToken(token string) error {
	if token == "" {
		return NewError("bot token", "", ErrEmpty)
	}
	if !BotTokenPattern.MatchString(token) {
		// сам токен в ошибку не попадает
		return NewError("bot token", "", ErrInvalidFormat)
	}
	return nil
}

// ValidateBotName проверяет имя бота
func ValidateBotName(name string) error {
	if name == "" {
		return NewError("bot name", "", ErrEmpty)
	}
	if !BotNamePattern.MatchString(name) {
		return NewError("bot name", name, ErrInvalidFormat)
	}
	return nil
}

// ValidateStickerSetName проверяет имя набора; имя используется как имя каталога
func ValidateStickerSetName(name string) error {
	if name == "" {
		return NewError("sticker set name", "", ErrEmpty)
	}
	if len(name) > 64 {
		return NewError("sticker set name", name, ErrTooLong)
	}
	if !StickerSetNamePattern.MatchString(name) {
		return NewError("sticker set name", name, ErrInvalidFormat)
	}
	return nil
}

// ValidateText проверяет текст исходящего сообщения
func ValidateText(text string) error {
	if text == "" {
		return NewError("text", "", ErrEmpty)
	}
	if utf8.RuneCountInString(text) > MaxTextLen {
		return NewError("text", "", ErrTooLong)
	}
	return nil
}

// ValidateUploadFile проверяет, что файл для отправки существует и не пуст
func ValidateUploadFile(path string) error {
	if path == "" {
		return NewError("filename", "", ErrEmpty)
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return NewError("filename", path, ErrFileNotFound)
	}
	if info.Size() == 0 {
		return NewError("file", path, ErrEmpty)
	}
	return nil
}
