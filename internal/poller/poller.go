package poller

//go:generate moq -out poller_mock.go . UpdatesAPI UpdateNormalizer

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/tidwall/gjson"

	"github.com/iudanet/stickerbot/internal/events"
	"github.com/iudanet/stickerbot/internal/models"
	"github.com/iudanet/stickerbot/internal/scheduler"
)

// TaskName имя периодической задачи в планировщике
const TaskName = "poll_updates"

// UpdatesAPI long-poll вызов протокола
type UpdatesAPI interface {
	GetUpdates(ctx context.Context, offset *int64) (json.RawMessage, error)
}

// UpdateNormalizer разбирает одно обновление
type UpdateNormalizer interface {
	NormalizeAs(ctx context.Context, kind models.Kind, raw []byte) (*models.Record, error)
}

// Publisher получатель событий
type Publisher interface {
	Publish(ctx context.Context, ev events.Event)
}

// Poller опрашивает getUpdates и передает обновления нормализатору.
// Все методы вызываются из цикла планировщика.
type Poller struct {
	api        UpdatesAPI
	normalizer UpdateNormalizer
	exec       scheduler.Executor
	publisher  Publisher
	logger     *slog.Logger
	offset     *int64
	running    bool
	inFlight   bool
}

// New создает остановленный поллер
func New(api UpdatesAPI, normalizer UpdateNormalizer, exec scheduler.Executor, publisher Publisher, logger *slog.Logger) *Poller {
	return &Poller{
		api:        api,
		normalizer: normalizer,
		exec:       exec,
		publisher:  publisher,
		logger:     logger,
	}
}

// Start включает опрос
func (p *Poller) Start() {
	p.running = true
}

// Stop выключает опрос; запрос в полете завершится и будет обработан
func (p *Poller) Stop() {
	p.running = false
}

// Running сообщает, включен ли опрос
func (p *Poller) Running() bool {
	return p.running
}

// Busy сообщает, что запрос getUpdates еще не вернулся
func (p *Poller) Busy() bool {
	return p.inFlight
}

// SetOffset устанавливает смещение, смещение только растет
func (p *Poller) SetOffset(offset int64) {
	if p.offset == nil || offset > *p.offset {
		p.offset = &offset
	}
}

// Offset возвращает текущее смещение
func (p *Poller) Offset() (int64, bool) {
	if p.offset == nil {
		return 0, false
	}
	return *p.offset, true
}

// Tick запрашивает следующую пачку обновлений
func (p *Poller) Tick(ctx context.Context) {
	if !p.running || p.inFlight {
		return
	}
	p.inFlight = true

	var offset *int64
	if p.offset != nil {
		v := *p.offset
		offset = &v
	}

	p.exec.Go("get_updates", func(ctx context.Context) func(context.Context) {
		raw, err := p.api.GetUpdates(ctx, offset)
		return func(ctx context.Context) {
			p.inFlight = false
			if err != nil {
				p.logger.Error("Failed to get updates", "error", err)
				p.publisher.Publish(ctx, events.RequestFailed{Method: "getUpdates", Err: err})
				return
			}
			p.handle(ctx, raw)
		}
	})
}

// handle нормализует обновления по порядку. Пачка прерывается на первой ошибке,
// остальные обновления придут снова при следующем опросе.
func (p *Poller) handle(ctx context.Context, raw json.RawMessage) {
	result := gjson.ParseBytes(raw)
	if !result.IsArray() {
		p.logger.Warn("getUpdates result is not an array")
		return
	}

	for _, item := range result.Array() {
		rec, err := p.normalizer.NormalizeAs(ctx, models.KindUpdate, []byte(item.Raw))
		if err != nil {
			p.logger.Error("Failed to normalize update",
				"update_id", item.Get("update_id").Int(),
				"error", err,
			)
			return
		}
		id, err := rec.IntID()
		if err != nil {
			p.logger.Error("Update without numeric id", "error", err)
			return
		}
		p.SetOffset(id + 1)
	}
}
