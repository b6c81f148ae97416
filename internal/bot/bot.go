package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/stickerbot/internal/config"
	"github.com/iudanet/stickerbot/internal/delivery"
	"github.com/iudanet/stickerbot/internal/downloads"
	"github.com/iudanet/stickerbot/internal/entities"
	"github.com/iudanet/stickerbot/internal/events"
	"github.com/iudanet/stickerbot/internal/models"
	"github.com/iudanet/stickerbot/internal/normalizer"
	"github.com/iudanet/stickerbot/internal/poller"
	"github.com/iudanet/stickerbot/internal/preferences"
	"github.com/iudanet/stickerbot/internal/ratelimit"
	"github.com/iudanet/stickerbot/internal/scheduler"
	"github.com/iudanet/stickerbot/internal/sender"
	"github.com/iudanet/stickerbot/internal/stickers"
	"github.com/iudanet/stickerbot/internal/storage/boltdb"
	"github.com/iudanet/stickerbot/internal/storage/sqlite"
	"github.com/iudanet/stickerbot/pkg/botapi"
)

// shutdownPoll период проверки очередей при остановке
const shutdownPoll = 100 * time.Millisecond

// API все вызовы протокола, нужные боту
type API interface {
	poller.UpdatesAPI
	downloads.FileAPI
	stickers.InfoAPI
	sender.API
}

// Option настраивает Bot
type Option func(*options)

type options struct {
	exec scheduler.Executor
	now  func() time.Time
}

// WithExecutor подменяет исполнитель асинхронной работы (для тестов)
func WithExecutor(exec scheduler.Executor) Option {
	return func(o *options) {
		o.exec = exec
	}
}

// WithClock подменяет источник времени
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// Bot собирает компоненты и выполняет публичные операции в цикле планировщика
type Bot struct {
	startTime time.Time
	logger    *slog.Logger
	now       func() time.Time
	db        *sqlite.Storage
	state     *boltdb.Storage
	bus       *events.Bus
	sched     *scheduler.Scheduler
	store     *entities.Store
	poller    *poller.Poller
	downloads *downloads.Queue
	info      *stickers.InfoQueue
	pipeline  *stickers.Pipeline
	prefs     *preferences.Store
	sender    *sender.Sender
	delivery  *delivery.Delivery
}

// New открывает хранилища, загружает записи и восстанавливает
// незавершенные загрузки и сборки. Ошибка открытия хранилищ фатальна.
func New(ctx context.Context, cfg *config.Config, api API, logger *slog.Logger, opts ...Option) (*Bot, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	state, err := boltdb.New(ctx, cfg.StatePath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	b := &Bot{
		startTime: o.now(),
		logger:    logger,
		now:       o.now,
		db:        db,
		state:     state,
		bus:       events.NewBus(logger),
		sched:     scheduler.New(logger),
	}
	exec := o.exec
	if exec == nil {
		exec = b.sched
	}

	if err := b.build(ctx, cfg, api, exec); err != nil {
		_ = b.Close()
		return nil, err
	}

	b.sched.Every(poller.TaskName, cfg.PollInterval, b.poller.Tick)
	b.sched.Every(downloads.TaskName, cfg.DownloadInterval, b.downloads.Tick)
	b.sched.Every(stickers.InfoTaskName, cfg.InfoInterval, b.info.Tick)

	return b, nil
}

func (b *Bot) build(ctx context.Context, cfg *config.Config, api API, exec scheduler.Executor) error {
	b.store = entities.New(b.db, b.logger)
	snap, err := b.store.Load(ctx)
	if err != nil {
		return err
	}

	b.prefs = preferences.New(b.db, b.logger)
	b.prefs.Restore(snap.Preferences)

	norm := normalizer.New(b.store, b.bus, b.logger)

	b.poller = poller.New(api, norm, exec, b.bus, b.logger)
	if maxID, ok := b.store.MaxUpdateID(); ok {
		b.poller.SetOffset(maxID + 1)
	}

	files, err := downloads.NewFileStore(cfg.FilesDir, b.state, b.logger)
	if err != nil {
		return err
	}
	limiter := ratelimit.New(1, cfg.RateWindow, ratelimit.WithClock(b.now))
	b.downloads = downloads.NewQueue(api, norm, files, b.state, limiter, exec, b.bus, b.logger)
	b.info = stickers.NewInfoQueue(api, norm, limiter, exec, b.bus, b.logger)

	b.pipeline, err = stickers.NewPipeline(stickers.Config{
		Store:     b.store,
		Downloads: b.downloads,
		Info:      b.info,
		Files:     files,
		State:     b.state,
		Exec:      exec,
		Publisher: b.bus,
		Logger:    b.logger,
		Dir:       cfg.StickerSetsDir,
	})
	if err != nil {
		return err
	}

	b.sender = sender.New(api, b.store, b.state, exec, b.bus, b.logger)
	if err := b.sender.Load(ctx); err != nil {
		return fmt.Errorf("failed to load active chats: %w", err)
	}
	b.delivery = delivery.New(b.sender, b.pipeline, b.prefs, b.store, b.state, b.logger)

	b.pipeline.Subscribe(b.bus)
	b.sender.Subscribe(b.bus)
	b.delivery.Subscribe(b.bus)

	if err := b.downloads.Restore(ctx); err != nil {
		return err
	}
	return b.pipeline.Restore(ctx)
}

// call выполняет fn в цикле, если он запущен, иначе сразу.
// Нельзя вызывать из обработчиков событий.
func (b *Bot) call(ctx context.Context, fn func(ctx context.Context) error) error {
	if !b.sched.Running() {
		return fn(ctx)
	}
	return b.sched.Call(ctx, fn)
}

// Run крутит цикл планировщика до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Bot started", "run_id", b.sched.RunID())
	return b.sched.Run(ctx)
}

// Start включает опрос обновлений
func (b *Bot) Start(ctx context.Context) error {
	return b.call(ctx, func(context.Context) error {
		b.poller.Start()
		return nil
	})
}

// Stop выключает опрос; загрузки и сборки продолжаются
func (b *Bot) Stop(ctx context.Context) error {
	return b.call(ctx, func(context.Context) error {
		b.poller.Stop()
		return nil
	})
}

// Busy сообщает, что есть незавершенная работа
func (b *Bot) Busy(ctx context.Context) (bool, error) {
	var busy bool
	err := b.call(ctx, func(context.Context) error {
		busy = b.busy()
		return nil
	})
	return busy, err
}

func (b *Bot) busy() bool {
	return b.poller.Busy() ||
		b.downloads.Size() > 0 ||
		b.downloads.InFlight() ||
		b.pipeline.Busy() ||
		b.sender.Busy() ||
		b.sched.Pending() > 0
}

// Shutdown останавливает опрос и ждет, пока очереди и сборки опустеют
func (b *Bot) Shutdown(ctx context.Context) error {
	if err := b.Stop(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(shutdownPoll)
	defer ticker.Stop()

	for {
		busy, err := b.Busy(ctx)
		if err != nil {
			return err
		}
		if !busy {
			b.logger.Info("Bot drained")
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Close закрывает хранилища. Вызывать после завершения Run.
func (b *Bot) Close() error {
	var errs []error
	if b.state != nil {
		errs = append(errs, b.state.Close())
	}
	if b.db != nil {
		errs = append(errs, b.db.Close())
	}
	return errors.Join(errs...)
}

// Subscribe подписывает обработчик на все события.
// Обработчик выполняется в цикле и не должен вызывать методы Bot.
func (b *Bot) Subscribe(ctx context.Context, h events.Handler) (func(), error) {
	var unsubscribe func()
	err := b.call(ctx, func(context.Context) error {
		unsubscribe = b.bus.Subscribe(h)
		return nil
	})
	return unsubscribe, err
}

// Record копия записи по типу и идентификатору
func (b *Bot) Record(ctx context.Context, kind models.Kind, id string) (*models.Record, bool, error) {
	var (
		rec *models.Record
		ok  bool
	)
	err := b.call(ctx, func(context.Context) error {
		rec, ok = b.store.Get(kind, id)
		return nil
	})
	return rec, ok, err
}

// StickerSetNames имена всех известных наборов
func (b *Bot) StickerSetNames(ctx context.Context) ([]string, error) {
	var names []string
	err := b.call(ctx, func(context.Context) error {
		names = b.store.IDs(models.KindStickerSet)
		return nil
	})
	return names, err
}

// QueueSize глубина очереди загрузки файлов
func (b *Bot) QueueSize(ctx context.Context) (int, error) {
	var n int
	err := b.call(ctx, func(context.Context) error {
		n = b.downloads.Size()
		return nil
	})
	return n, err
}

// StickerSetState состояние сборки набора
func (b *Bot) StickerSetState(ctx context.Context, name string) (stickers.State, error) {
	var st stickers.State
	err := b.call(ctx, func(context.Context) error {
		st = b.pipeline.State(name)
		return nil
	})
	return st, err
}

// SendMessage отправляет текст в чат
func (b *Bot) SendMessage(ctx context.Context, chatID int64, text string) error {
	return b.call(ctx, func(ctx context.Context) error {
		return b.sender.SendMessage(ctx, chatID, text)
	})
}

// SendReply отвечает на сообщение
func (b *Bot) SendReply(ctx context.Context, chatID, messageID int64, text string) error {
	return b.call(ctx, func(ctx context.Context) error {
		return b.sender.SendReply(ctx, chatID, messageID, text)
	})
}

// UploadFile отправляет файл в чат
func (b *Bot) UploadFile(ctx context.Context, chatID int64, path string) error {
	return b.call(ctx, func(ctx context.Context) error {
		return b.sender.UploadFile(ctx, chatID, path)
	})
}

// Broadcast отправляет текст во все активные чаты
func (b *Bot) Broadcast(ctx context.Context, text string) (int, error) {
	var n int
	err := b.call(ctx, func(ctx context.Context) error {
		var err error
		n, err = b.sender.Broadcast(ctx, text)
		return err
	})
	return n, err
}

// SetCommands устанавливает меню команд; nil scope означает все чаты
func (b *Bot) SetCommands(ctx context.Context, scope *botapi.BotCommandScope, commands []botapi.BotCommand) error {
	return b.call(ctx, func(ctx context.Context) error {
		return b.sender.SetCommands(ctx, scope, commands)
	})
}

// RequestStickerSet запускает сборку набора без получателя
func (b *Bot) RequestStickerSet(ctx context.Context, name string) (bool, error) {
	var started bool
	err := b.call(ctx, func(ctx context.Context) error {
		var err error
		started, err = b.pipeline.Request(ctx, name)
		return err
	})
	return started, err
}

// RequestStickerSetFor запускает сборку и отправит архив пользователю в чат
func (b *Bot) RequestStickerSetFor(ctx context.Context, name string, userID, chatID int64) (bool, error) {
	var started bool
	err := b.call(ctx, func(ctx context.Context) error {
		var err error
		started, err = b.delivery.Request(ctx, name, delivery.Requester{UserID: userID, ChatID: chatID})
		return err
	})
	return started, err
}

// RebuildStickerSet удаляет набор и собирает его заново
func (b *Bot) RebuildStickerSet(ctx context.Context, name string) (bool, error) {
	var started bool
	err := b.call(ctx, func(ctx context.Context) error {
		var err error
		started, err = b.pipeline.RequestForce(ctx, name)
		return err
	})
	return started, err
}

// RemoveStickerSet удаляет метаданные и архив набора
func (b *Bot) RemoveStickerSet(ctx context.Context, name string) error {
	return b.call(ctx, func(ctx context.Context) error {
		return b.pipeline.Remove(ctx, name)
	})
}

// GetPreference значение настройки пользователя
func (b *Bot) GetPreference(ctx context.Context, userID int64, key string) (string, error) {
	var value string
	err := b.call(ctx, func(context.Context) error {
		var err error
		value, err = b.prefs.Get(userID, key)
		return err
	})
	return value, err
}

// SetPreference сохраняет настройку пользователя
func (b *Bot) SetPreference(ctx context.Context, userID int64, key, value string) error {
	return b.call(ctx, func(ctx context.Context) error {
		return b.prefs.Set(ctx, userID, key, value)
	})
}

// StartTime момент создания бота
func (b *Bot) StartTime() time.Time {
	return b.startTime
}

// Uptime время работы
func (b *Bot) Uptime() time.Duration {
	return b.now().Sub(b.startTime)
}
