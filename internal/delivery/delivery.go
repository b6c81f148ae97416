package delivery

//go:generate moq -out delivery_mock.go . Notifier Assembler

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"slices"
	"strconv"

	"github.com/iudanet/stickerbot/internal/entities"
	"github.com/iudanet/stickerbot/internal/events"
	"github.com/iudanet/stickerbot/internal/models"
	"github.com/iudanet/stickerbot/internal/preferences"
	"github.com/iudanet/stickerbot/internal/stickers"
	"github.com/iudanet/stickerbot/internal/storage"
)

// Notifier исходящие сообщения
type Notifier interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	UploadFile(ctx context.Context, chatID int64, path string) error
}

// Assembler конвейер сборки наборов
type Assembler interface {
	Request(ctx context.Context, name string) (bool, error)
	ArchivePath(name string) string
}

// Requester пользователь и чат, ожидающие набор
type Requester struct {
	UserID int64
	ChatID int64
}

// Delivery доставляет собранные наборы тем, кто их запросил,
// с учетом настройки provide_sticker_set
type Delivery struct {
	notifier  Notifier
	assembler Assembler
	prefs     *preferences.Store
	store     *entities.Store
	history   storage.DeliveryStateStorage
	logger    *slog.Logger
	waiting   map[string][]Requester
}

// New создает доставку
func New(
	notifier Notifier,
	assembler Assembler,
	prefs *preferences.Store,
	store *entities.Store,
	history storage.DeliveryStateStorage,
	logger *slog.Logger,
) *Delivery {
	return &Delivery{
		notifier:  notifier,
		assembler: assembler,
		prefs:     prefs,
		store:     store,
		history:   history,
		logger:    logger,
		waiting:   make(map[string][]Requester),
	}
}

// Subscribe подписывает доставку на результаты сборки и входящие сообщения
func (d *Delivery) Subscribe(bus *events.Bus) {
	events.On(bus, func(ctx context.Context, ev events.StickerSetReady) {
		d.Ready(ctx, ev.Name)
	})
	events.On(bus, func(ctx context.Context, ev events.StickerSetFailed) {
		d.Failed(ctx, ev.Name, ev.Reason)
	})
	events.On(bus, func(ctx context.Context, ev events.MessageArrived) {
		d.forwardedSticker(ctx, ev.MessageID)
	})
}

// Request запускает сборку набора и запоминает, кому его отправить.
// Повторный запрос во время сборки только добавляет получателя.
func (d *Delivery) Request(ctx context.Context, name string, req Requester) (bool, error) {
	d.track(name, req)
	started, err := d.assembler.Request(ctx, name)
	if err != nil {
		d.untrack(name, req)
		return false, err
	}
	if !started {
		d.notice(ctx, req, fmt.Sprintf("Sticker set %s is already in the process of being downloaded.", name))
	}
	return started, nil
}

// Waiting получатели набора
func (d *Delivery) Waiting(name string) []Requester {
	return slices.Clone(d.waiting[name])
}

// Ready отправляет архив каждому получателю по его настройке
func (d *Delivery) Ready(ctx context.Context, name string) {
	requesters := d.waiting[name]
	delete(d.waiting, name)

	for _, req := range requesters {
		mode, err := d.prefs.Get(req.UserID, preferences.KeyProvideStickerSet)
		if err != nil {
			d.logger.Error("Failed to read preference", "user_id", req.UserID, "error", err)
			mode = preferences.ProvideAlways
		}

		switch mode {
		case preferences.ProvideNever:
			d.notice(ctx, req, fmt.Sprintf("Sticker set %q was downloaded.", name))
		case preferences.ProvideOnce:
			if d.delivered(ctx, name, req.UserID) {
				d.notice(ctx, req, fmt.Sprintf("Sticker set %q has been sent to you before.", name))
				continue
			}
			d.upload(ctx, name, req)
		default:
			d.upload(ctx, name, req)
		}
	}
}

// Failed сообщает получателям, что набор собрать не удалось
func (d *Delivery) Failed(ctx context.Context, name, reason string) {
	requesters := d.waiting[name]
	delete(d.waiting, name)

	text := fmt.Sprintf("Sticker set %q does not exist.", name)
	if reason != stickers.ReasonNotFound {
		text = fmt.Sprintf("Sticker set %q could not be assembled: %s", name, html.EscapeString(reason))
	}
	for _, req := range requesters {
		if err := d.notifier.SendMessage(ctx, req.ChatID, text); err != nil {
			d.logger.Error("Failed to notify requester", "chat_id", req.ChatID, "error", err)
		}
	}
}

func (d *Delivery) upload(ctx context.Context, name string, req Requester) {
	if err := d.notifier.UploadFile(ctx, req.ChatID, d.assembler.ArchivePath(name)); err != nil {
		d.logger.Error("Failed to upload sticker set", "name", name, "chat_id", req.ChatID, "error", err)
		return
	}
	if err := d.history.MarkDelivered(ctx, name, req.UserID); err != nil {
		d.logger.Error("Failed to save delivery", "name", name, "user_id", req.UserID, "error", err)
	}
}

func (d *Delivery) delivered(ctx context.Context, name string, userID int64) bool {
	ok, err := d.history.IsDelivered(ctx, name, userID)
	if err != nil {
		d.logger.Error("Failed to read delivery history", "name", name, "user_id", userID, "error", err)
		return false
	}
	return ok
}

// notice информационное сообщение; не отправляется при silent=yes
func (d *Delivery) notice(ctx context.Context, req Requester, text string) {
	if silent, _ := d.prefs.Get(req.UserID, preferences.KeySilent); silent == preferences.Yes {
		return
	}
	if err := d.notifier.SendMessage(ctx, req.ChatID, text); err != nil {
		d.logger.Error("Failed to send notice", "chat_id", req.ChatID, "error", err)
	}
}

func (d *Delivery) track(name string, req Requester) {
	if !slices.Contains(d.waiting[name], req) {
		d.waiting[name] = append(d.waiting[name], req)
	}
}

func (d *Delivery) untrack(name string, req Requester) {
	d.waiting[name] = slices.DeleteFunc(d.waiting[name], func(r Requester) bool { return r == req })
	if len(d.waiting[name]) == 0 {
		delete(d.waiting, name)
	}
}

// forwardedSticker при greedy=yes пересланный стикер запускает загрузку его набора
func (d *Delivery) forwardedSticker(ctx context.Context, messageID int64) {
	rec, ok := d.store.Get(models.KindMessage, strconv.FormatInt(messageID, 10))
	if !ok {
		return
	}
	msg, err := models.MessageFromRecord(rec)
	if err != nil || msg.StickerID == "" || msg.FromID == nil || msg.ChatID == nil {
		return
	}
	if msg.ForwardDate == nil && msg.ForwardFromID == nil && msg.ForwardSender == "" {
		return
	}
	if greedy, _ := d.prefs.Get(*msg.FromID, preferences.KeyGreedy); greedy != preferences.Yes {
		return
	}

	fileRec, ok := d.store.Get(models.KindFile, msg.StickerID)
	if !ok {
		return
	}
	file, err := models.FileFromRecord(fileRec)
	if err != nil || file.SetName == "" {
		return
	}

	req := Requester{UserID: *msg.FromID, ChatID: *msg.ChatID}
	if _, err := d.Request(ctx, file.SetName, req); err != nil {
		d.logger.Warn("Failed to request forwarded sticker set", "name", file.SetName, "error", err)
	}
}
