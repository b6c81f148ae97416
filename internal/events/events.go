package events

import "github.com/iudanet/stickerbot/internal/models"

// Event событие ядра. События несут только идентификаторы,
// полные данные читаются через геттеры хранилища.
type Event interface {
	EventName() string
}

// MessageArrived новое сообщение
type MessageArrived struct {
	ChatID    int64
	MessageID int64
}

// ChannelPostArrived новый пост канала
type ChannelPostArrived struct {
	ChatID int64
	PostID int64
}

// UpdateArrived новое обновление
type UpdateArrived struct {
	ChatID   int64
	UpdateID int64
}

// EntityArrived новая запись типа без отдельного события: пользователь, чат,
// кнопка, клавиатура, изменение членства
type EntityArrived struct {
	Kind models.Kind
	ID   string
}

// FileArrived новая запись о файле
type FileArrived struct {
	FileID string
}

// FileReady байты файла лежат на диске
type FileReady struct {
	FileID string
}

// FileFailed файл не удалось скачать за отведенное число попыток
type FileFailed struct {
	FileID string
	Reason string
}

// StickerSetInfoArrived получены метаданные набора
type StickerSetInfoArrived struct {
	Name string
}

// StickerSetInfoFailed протокол сообщил, что набора не существует
type StickerSetInfoFailed struct {
	Name string
}

// StickerSetReady архив набора собран
type StickerSetReady struct {
	Name string
}

// StickerSetFailed сборка набора прервана
type StickerSetFailed struct {
	Name   string
	Reason string
}

// RequestFailed вызов протокола завершился ошибкой без отдельного пути обработки
type RequestFailed struct {
	Err    error
	Method string
}

func (MessageArrived) EventName() string        { return "message_arrived" }
func (ChannelPostArrived) EventName() string    { return "channel_post_arrived" }
func (UpdateArrived) EventName() string         { return "update_arrived" }
func (EntityArrived) EventName() string         { return "entity_arrived" }
func (FileArrived) EventName() string           { return "file_arrived" }
func (FileReady) EventName() string             { return "file_ready" }
func (FileFailed) EventName() string            { return "file_failed" }
func (StickerSetInfoArrived) EventName() string { return "sticker_set_info_arrived" }
func (StickerSetInfoFailed) EventName() string  { return "sticker_set_info_failed" }
func (StickerSetReady) EventName() string       { return "sticker_set_ready" }
func (StickerSetFailed) EventName() string      { return "sticker_set_failed" }
func (RequestFailed) EventName() string         { return "request_failed" }
