package stickers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"

	"github.com/iudanet/stickerbot/internal/events"
	"github.com/iudanet/stickerbot/internal/models"
	"github.com/iudanet/stickerbot/internal/ratelimit"
	"github.com/iudanet/stickerbot/internal/scheduler"
	"github.com/iudanet/stickerbot/internal/telegram"
)

const (
	// InfoTaskName имя периодической задачи в планировщике
	InfoTaskName = "download_sticker_set_info"

	infoLimiterKey = "download_sticker_set_info"

	// maxInfoAttempts попыток на транспортные ошибки до отказа
	maxInfoAttempts = 3
)

// InfoAPI запрос метаданных набора
type InfoAPI interface {
	GetStickerSet(ctx context.Context, name string) (json.RawMessage, error)
}

// SetNormalizer сохраняет метаданные набора
type SetNormalizer interface {
	NormalizeAs(ctx context.Context, kind models.Kind, raw []byte) (*models.Record, error)
}

// InfoQueue очередь запросов getStickerSet, один запрос одновременно
type InfoQueue struct {
	api        InfoAPI
	normalizer SetNormalizer
	limiter    *ratelimit.Limiter
	exec       scheduler.Executor
	publisher  Publisher
	logger     *slog.Logger
	attempts   map[string]int
	inFlight   string
	pending    []string
}

// NewInfoQueue создает пустую очередь
func NewInfoQueue(
	api InfoAPI,
	normalizer SetNormalizer,
	limiter *ratelimit.Limiter,
	exec scheduler.Executor,
	publisher Publisher,
	logger *slog.Logger,
) *InfoQueue {
	return &InfoQueue{
		api:        api,
		normalizer: normalizer,
		limiter:    limiter,
		exec:       exec,
		publisher:  publisher,
		logger:     logger,
		attempts:   make(map[string]int),
	}
}

// Enqueue ставит имя в очередь, если его там еще нет
func (q *InfoQueue) Enqueue(name string) {
	if name == q.inFlight || slices.Contains(q.pending, name) {
		return
	}
	q.pending = append(q.pending, name)
}

// Size длина очереди
func (q *InfoQueue) Size() int {
	return len(q.pending)
}

// Busy сообщает, что очередь не пуста или запрос в полете
func (q *InfoQueue) Busy() bool {
	return q.inFlight != "" || len(q.pending) > 0
}

// Tick запрашивает метаданные следующего набора
func (q *InfoQueue) Tick(ctx context.Context) {
	if q.inFlight != "" || len(q.pending) == 0 {
		return
	}
	if !q.limiter.Allow(infoLimiterKey) {
		return
	}

	name := q.pending[0]
	q.pending = q.pending[1:]
	q.inFlight = name

	q.exec.Go("get_sticker_set", func(ctx context.Context) func(context.Context) {
		raw, err := q.api.GetStickerSet(ctx, name)
		return func(ctx context.Context) {
			q.inFlight = ""
			if err != nil {
				q.handleError(ctx, name, err)
				return
			}
			delete(q.attempts, name)
			// о новой записи сообщает нормализатор
			if _, err := q.normalizer.NormalizeAs(ctx, models.KindStickerSet, raw); err != nil {
				q.logger.Error("Failed to normalize sticker set", "name", name, "error", err)
				q.publisher.Publish(ctx, events.StickerSetInfoFailed{Name: name})
			}
		}
	})
}

// handleError: STICKERSET_INVALID и прочие ответы протокола сразу отказ,
// транспортные ошибки и retry_after повторяются
func (q *InfoQueue) handleError(ctx context.Context, name string, err error) {
	if telegram.IsStickerSetInvalid(err) {
		delete(q.attempts, name)
		q.logger.Info("Sticker set does not exist", "name", name)
		q.publisher.Publish(ctx, events.StickerSetInfoFailed{Name: name})
		return
	}

	q.publisher.Publish(ctx, events.RequestFailed{Method: "getStickerSet", Err: err})

	var protoErr *telegram.ProtocolError
	q.attempts[name]++
	permanent := errors.As(err, &protoErr) && protoErr.RetryAfter == 0
	if permanent || q.attempts[name] >= maxInfoAttempts {
		q.logger.Error("Failed to get sticker set", "name", name, "attempts", q.attempts[name], "error", err)
		delete(q.attempts, name)
		q.publisher.Publish(ctx, events.StickerSetInfoFailed{Name: name})
		return
	}
	q.logger.Warn("Sticker set request will be retried", "name", name, "error", err)
	q.pending = append(q.pending, name)
}
