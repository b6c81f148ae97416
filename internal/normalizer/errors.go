package normalizer

import (
	"errors"
	"fmt"

	"github.com/iudanet/stickerbot/internal/models"
)

var (
	// ErrNotObject payload is not a JSON object
	ErrNotObject = errors.New("payload is not a JSON object")

	// ErrUnknownShape набор ключей не соответствует ни одному типу сущности
	ErrUnknownShape = errors.New("unknown object shape")
)

// SchemaError в объекте нет обязательного ключа.
// Разбор этого объекта прерывается, ошибка поднимается к родителю.
type SchemaError struct {
	Kind models.Kind
	Key  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required key %q", e.Kind, e.Key)
}

// IntegrityWarning две копии одного файла расходятся в значении поля.
// Не фатально: сохраняется первое значение.
type IntegrityWarning struct {
	FileID string
	Key    string
	Old    string
	New    string
}

func (w IntegrityWarning) Error() string {
	return fmt.Sprintf("file %s: key %q mismatch: old %q, new %q", w.FileID, w.Key, w.Old, w.New)
}
