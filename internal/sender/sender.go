package sender

//go:generate moq -out sender_mock.go . API

import (
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"slices"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/iudanet/stickerbot/internal/entities"
	"github.com/iudanet/stickerbot/internal/events"
	"github.com/iudanet/stickerbot/internal/models"
	"github.com/iudanet/stickerbot/internal/scheduler"
	"github.com/iudanet/stickerbot/internal/storage"
	"github.com/iudanet/stickerbot/internal/validation"
	"github.com/iudanet/stickerbot/pkg/botapi"
)

// API исходящие вызовы протокола
type API interface {
	SendMessage(ctx context.Context, chatID int64, text string) (json.RawMessage, error)
	SendReply(ctx context.Context, chatID, messageID int64, text string) (json.RawMessage, error)
	SendDocument(ctx context.Context, chatID int64, path string) (json.RawMessage, error)
	SetMyCommands(ctx context.Context, req botapi.SetMyCommandsRequest) error
}

// Publisher получатель событий
type Publisher interface {
	Publish(ctx context.Context, ev events.Event)
}

// Sender проверяет аргументы синхронно, а сетевые вызовы выполняет вне цикла.
// Каждый чат, которому писал бот или из которого пришло сообщение, становится активным.
type Sender struct {
	api       API
	store     *entities.Store
	chats     storage.ChatStateStorage
	exec      scheduler.Executor
	publisher Publisher
	logger    *slog.Logger
	active    map[int64]struct{}
	inFlight  int
}

// New создает отправителя
func New(api API, store *entities.Store, chats storage.ChatStateStorage, exec scheduler.Executor, publisher Publisher, logger *slog.Logger) *Sender {
	return &Sender{
		api:       api,
		store:     store,
		chats:     chats,
		exec:      exec,
		publisher: publisher,
		logger:    logger,
		active:    make(map[int64]struct{}),
	}
}

// Load читает активные чаты
func (s *Sender) Load(ctx context.Context) error {
	ids, err := s.chats.ListActiveChats(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		s.active[id] = struct{}{}
	}
	return nil
}

// Subscribe отмечает чаты входящих сообщений как активные
func (s *Sender) Subscribe(bus *events.Bus) {
	events.On(bus, func(ctx context.Context, ev events.MessageArrived) {
		if ev.ChatID != 0 {
			s.addChat(ctx, ev.ChatID)
		}
	})
}

// ActiveChats отсортированный список активных чатов
func (s *Sender) ActiveChats() []int64 {
	return slices.Sorted(maps.Keys(s.active))
}

// Busy сообщает, что есть неотвеченные вызовы
func (s *Sender) Busy() bool {
	return s.inFlight > 0
}

// SendMessage отправляет текст в известный чат
func (s *Sender) SendMessage(ctx context.Context, chatID int64, text string) error {
	if err := validation.ValidateText(text); err != nil {
		return err
	}
	if err := s.checkChat(chatID); err != nil {
		return err
	}
	s.sendMessage(ctx, chatID, text)
	return nil
}

// SendReply отвечает на известное сообщение
func (s *Sender) SendReply(ctx context.Context, chatID, messageID int64, text string) error {
	if err := validation.ValidateText(text); err != nil {
		return err
	}
	if err := s.checkChat(chatID); err != nil {
		return err
	}
	if !s.store.Has(models.KindMessage, strconv.FormatInt(messageID, 10)) {
		return validation.NewError("message id", strconv.FormatInt(messageID, 10), validation.ErrUnknownMessage)
	}

	s.addChat(ctx, chatID)
	s.call(ctx, "sendMessage", func(ctx context.Context) (json.RawMessage, error) {
		return s.api.SendReply(ctx, chatID, messageID, text)
	})
	return nil
}

// UploadFile отправляет файл документом
func (s *Sender) UploadFile(ctx context.Context, chatID int64, path string) error {
	if err := validation.ValidateUploadFile(path); err != nil {
		return err
	}
	if err := s.checkChat(chatID); err != nil {
		return err
	}

	s.addChat(ctx, chatID)
	s.call(ctx, "sendDocument", func(ctx context.Context) (json.RawMessage, error) {
		return s.api.SendDocument(ctx, chatID, path)
	})
	return nil
}

// Broadcast отправляет текст во все активные чаты и возвращает их число
func (s *Sender) Broadcast(ctx context.Context, text string) (int, error) {
	if err := validation.ValidateText(text); err != nil {
		return 0, err
	}
	chats := s.ActiveChats()
	for _, chatID := range chats {
		s.sendMessage(ctx, chatID, text)
	}
	s.logger.Info("Broadcast sent", "chats", len(chats))
	return len(chats), nil
}

// SetCommands регистрирует меню команд бота
func (s *Sender) SetCommands(ctx context.Context, scope *botapi.BotCommandScope, commands []botapi.BotCommand) error {
	if len(commands) == 0 {
		return validation.NewError("commands", "", validation.ErrEmpty)
	}
	for _, c := range commands {
		if c.Command == "" || c.Description == "" {
			return validation.NewError("command", c.Command, validation.ErrEmpty)
		}
	}

	req := botapi.SetMyCommandsRequest{Scope: scope, Commands: slices.Clone(commands)}
	s.call(ctx, "setMyCommands", func(ctx context.Context) (json.RawMessage, error) {
		return nil, s.api.SetMyCommands(ctx, req)
	})
	return nil
}

func (s *Sender) sendMessage(ctx context.Context, chatID int64, text string) {
	s.addChat(ctx, chatID)
	s.call(ctx, "sendMessage", func(ctx context.Context) (json.RawMessage, error) {
		return s.api.SendMessage(ctx, chatID, text)
	})
}

// call выполняет вызов вне цикла; ошибки только логируются
func (s *Sender) call(ctx context.Context, method string, fn func(ctx context.Context) (json.RawMessage, error)) {
	s.inFlight++
	s.exec.Go(method, func(ctx context.Context) func(context.Context) {
		raw, err := fn(ctx)
		return func(ctx context.Context) {
			s.inFlight--
			if err != nil {
				s.logger.Error("Outbound call failed", "method", method, "error", err)
				s.publisher.Publish(ctx, events.RequestFailed{Method: method, Err: err})
				return
			}
			if len(raw) > 0 {
				s.logger.Debug("Outbound call done", "method", method, "message_id", gjson.GetBytes(raw, "message_id").Int())
			}
		}
	})
}

func (s *Sender) checkChat(chatID int64) error {
	if _, ok := s.active[chatID]; ok {
		return nil
	}
	if !s.store.Has(models.KindChat, strconv.FormatInt(chatID, 10)) {
		return validation.NewError("chat id", strconv.FormatInt(chatID, 10), validation.ErrUnknownChat)
	}
	return nil
}

func (s *Sender) addChat(ctx context.Context, chatID int64) {
	if _, ok := s.active[chatID]; ok {
		return
	}
	s.active[chatID] = struct{}{}
	if err := s.chats.AddActiveChat(ctx, chatID); err != nil {
		s.logger.Error("Failed to persist active chat", "chat_id", chatID, "error", err)
	}
}
