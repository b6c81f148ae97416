package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func TestLimiter_OnePerWindow(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	l := New(1, time.Second, WithClock(clock.Now))

	assert.True(t, l.Allow("downloads"))
	assert.False(t, l.Allow("downloads"))

	// Другой ключ независим
	assert.True(t, l.Allow("sticker_set_info"))

	clock.now = clock.now.Add(999 * time.Millisecond)
	assert.False(t, l.Allow("downloads"))

	clock.now = clock.now.Add(time.Millisecond)
	assert.True(t, l.Allow("downloads"))
	assert.False(t, l.Allow("downloads"))
}

func TestLimiter_Burst(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	l := New(3, time.Minute, WithClock(clock.Now))

	allowed := 0
	for range 5 {
		if l.Allow("k") {
			allowed++
		}
	}
	assert.Equal(t, 3, allowed)

	l.Reset("k")
	assert.True(t, l.Allow("k"))
}
