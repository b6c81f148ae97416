package storage

import (
	"errors"
	"fmt"
)

// Common storage errors
var (
	// ErrNotFound indicates that the requested key does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidKind indicates a record of an unknown entity kind
	ErrInvalidKind = errors.New("invalid entity kind")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)

// OpError описывает ошибку движка хранения с контекстом таблицы и операции.
// Прерывает только одну операцию, не процесс.
type OpError struct {
	Err   error
	Table string
	Op    string
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}
