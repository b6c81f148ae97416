package events

import (
	"context"
	"log/slog"
	"runtime/debug"
)

// Handler получатель событий
type Handler func(ctx context.Context, ev Event)

// Bus реестр подписчиков.
// Используется только из горутины планировщика, поэтому без блокировок.
// Событие, опубликованное во время рассылки другого, ставится в очередь
// и доставляется после завершения текущей рассылки.
type Bus struct {
	logger      *slog.Logger
	handlers    map[int]Handler
	pending     []Event
	order       []int
	nextID      int
	dispatching bool
}

// NewBus создает пустую шину
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		logger:   logger,
		handlers: make(map[int]Handler),
	}
}

// Subscribe регистрирует обработчик всех событий и возвращает функцию отписки
func (b *Bus) Subscribe(h Handler) func() {
	id := b.nextID
	b.nextID++
	b.handlers[id] = h
	b.order = append(b.order, id)

	return func() {
		delete(b.handlers, id)
		for i, v := range b.order {
			if v == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// On подписывает обработчик на события одного типа
func On[T Event](b *Bus, fn func(ctx context.Context, ev T)) func() {
	return b.Subscribe(func(ctx context.Context, ev Event) {
		if typed, ok := ev.(T); ok {
			fn(ctx, typed)
		}
	})
}

// Publish доставляет событие всем подписчикам в порядке подписки
func (b *Bus) Publish(ctx context.Context, ev Event) {
	b.pending = append(b.pending, ev)
	if b.dispatching {
		return
	}

	b.dispatching = true
	defer func() {
		b.dispatching = false
	}()

	for len(b.pending) > 0 {
		next := b.pending[0]
		b.pending = b.pending[1:]
		b.dispatch(ctx, next)
	}
}

// Pending возвращает число событий, ожидающих доставки
func (b *Bus) Pending() int {
	return len(b.pending)
}

func (b *Bus) dispatch(ctx context.Context, ev Event) {
	ids := append([]int(nil), b.order...)
	for _, id := range ids {
		h, ok := b.handlers[id]
		if !ok {
			continue
		}
		b.call(ctx, h, ev)
	}
}

// call изолирует панику одного подписчика от остальных
func (b *Bus) call(ctx context.Context, h Handler, ev Event) {
	defer func() {
		if err := recover(); err != nil {
			b.logger.Error("Panic in event handler",
				"event", ev.EventName(),
				"error", err,
				"stack", string(debug.Stack()),
			)
		}
	}()
	h(ctx, ev)
}
