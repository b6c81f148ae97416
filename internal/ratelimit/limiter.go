package ratelimit

import (
	"sync"
	"time"
)

// Limiter ограничитель частоты на основе токен-бакета (token bucket).
// Ключ выделяет независимый бакет: например, загрузки файлов и запросы наборов.
type Limiter struct {
	buckets map[string]*bucket
	now     func() time.Time
	rate    int
	window  time.Duration
	mu      sync.Mutex
}

// bucket представляет bucket для конкретного ключа
type bucket struct {
	lastRefill time.Time
	tokens     int
}

// Option настраивает Limiter
type Option func(*Limiter)

// WithClock подменяет источник времени (для тестов)
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// New создает ограничитель
// rate - максимальное количество операций в окно
// window - временное окно (например, 1 секунда)
func New(rate int, window time.Duration, opts ...Option) *Limiter {
	l := &Limiter{
		buckets: make(map[string]*bucket),
		rate:    rate,
		window:  window,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow забирает токен из бакета ключа, если он есть
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, exists := l.buckets[key]
	if !exists {
		b = &bucket{tokens: l.rate, lastRefill: now}
		l.buckets[key] = b
	}

	// Пополняем токены на основе прошедшего времени
	if now.Sub(b.lastRefill) >= l.window {
		b.tokens = l.rate
		b.lastRefill = now
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}

	return false
}

// Reset возвращает бакет ключа в полное состояние
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}
