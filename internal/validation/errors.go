package validation

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty значение не задано
	ErrEmpty = errors.New("cannot be empty")
	// ErrTooLong значение длиннее допустимого
	ErrTooLong = errors.New("too long")
	// ErrInvalidFormat значение не соответствует формату
	ErrInvalidFormat = errors.New("invalid format")
	// ErrUnknownKey ключ не входит в закрытый набор
	ErrUnknownKey = errors.New("unknown key")
	// ErrUnknownChat чат не встречался в обновлениях
	ErrUnknownChat = errors.New("unknown chat")
	// ErrUnknownMessage сообщение не встречалось в обновлениях
	ErrUnknownMessage = errors.New("unknown message")
	// ErrFileNotFound файла нет на диске
	ErrFileNotFound = errors.New("file not found")
)

// ValidationError аргумент вызывающего отклонен до любых побочных эффектов
type ValidationError struct {
	Err   error
	Field string
	Value string
}

// NewError создает ошибку валидации поля
func NewError(field, value string, err error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Err: err}
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
