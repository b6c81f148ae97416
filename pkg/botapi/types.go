package botapi

import "encoding/json"

const (
	// ParseModeHTML режим форматирования исходящих сообщений
	ParseModeHTML = "html"

	// DescriptionStickerSetInvalid описание ошибки протокола для несуществующего набора
	DescriptionStickerSetInvalid = "Bad Request: STICKERSET_INVALID"

	// ErrorCodeBadRequest код ошибки протокола для некорректного запроса
	ErrorCodeBadRequest = 400
)

// Response конверт любого ответа протокола
type Response struct {
	Parameters  *ResponseParameters `json:"parameters,omitempty"`
	Description string              `json:"description,omitempty"`
	Result      json.RawMessage     `json:"result,omitempty"`
	ErrorCode   int                 `json:"error_code,omitempty"`
	OK          bool                `json:"ok"`
}

// ResponseParameters дополнительные сведения об ошибке
type ResponseParameters struct {
	MigrateToChatID int64 `json:"migrate_to_chat_id,omitempty"`
	RetryAfter      int   `json:"retry_after,omitempty"`
}

// BotCommand одна команда меню бота
type BotCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

// BotCommandScope область действия команд
type BotCommandScope struct {
	Type   string `json:"type"`
	ChatID int64  `json:"chat_id,omitempty"`
	UserID int64  `json:"user_id,omitempty"`
}

// SetMyCommandsRequest запрос setMyCommands
type SetMyCommandsRequest struct {
	Scope    *BotCommandScope `json:"scope,omitempty"`
	Commands []BotCommand     `json:"commands"`
}

// ReplyParameters ссылка на сообщение, на которое отвечаем
type ReplyParameters struct {
	MessageID int64 `json:"message_id"`
}
