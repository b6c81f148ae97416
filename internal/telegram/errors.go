package telegram

import (
	"errors"
	"fmt"

	"github.com/iudanet/stickerbot/pkg/botapi"
)

// ErrEmptyResponse ответ без содержимого
var ErrEmptyResponse = errors.New("empty response")

// TransportError нет ответа, сетевой сбой или ответ не в формате JSON.
// Операция бросается, повтор произойдет на следующем тике.
type TransportError struct {
	Err    error
	Method string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError корректный ответ с ok=false
type ProtocolError struct {
	Method      string
	Description string
	StatusCode  int
	ErrorCode   int
	RetryAfter  int
}

func (e *ProtocolError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("%s: protocol error %d: %s", e.Method, e.ErrorCode, e.Description)
	}
	return fmt.Sprintf("%s: protocol error %d (http %d)", e.Method, e.ErrorCode, e.StatusCode)
}

// IsStickerSetInvalid распознает ответ "набор не существует"
func IsStickerSetInvalid(err error) bool {
	var perr *ProtocolError
	if !errors.As(err, &perr) {
		return false
	}
	return perr.ErrorCode == botapi.ErrorCodeBadRequest &&
		perr.Description == botapi.DescriptionStickerSetInvalid
}
