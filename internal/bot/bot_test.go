package bot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/stickerbot/internal/config"
	"github.com/iudanet/stickerbot/internal/events"
	"github.com/iudanet/stickerbot/internal/models"
	"github.com/iudanet/stickerbot/internal/preferences"
	"github.com/iudanet/stickerbot/internal/scheduler"
	"github.com/iudanet/stickerbot/internal/stickers"
	"github.com/iudanet/stickerbot/internal/telegram"
	"github.com/iudanet/stickerbot/internal/validation"
)

const testToken = "123:abc"

const updatesBody = `{"ok":true,"result":[{
	"update_id": 5,
	"message": {
		"message_id": 1,
		"date": 1700000000,
		"chat": {"id": 10, "type": "private", "first_name": "Ann"},
		"from": {"id": 1, "is_bot": false, "first_name": "Ann"},
		"text": "foo"
	}
}]}`

const stickerSetBody = `{"ok":true,"result":{
	"name": "foo",
	"title": "Foo",
	"sticker_type": "regular",
	"stickers": [
		{"file_id": "A1", "file_unique_id": "u1", "type": "regular", "is_animated": false, "set_name": "foo"},
		{"file_id": "A2", "file_unique_id": "u2", "type": "regular", "is_animated": true, "set_name": "foo"}
	]
}}`

// fakeServer минимальный Bot API
type fakeServer struct {
	mu        sync.Mutex
	documents []string
	messages  []string
	getFiles  int
}

func (s *fakeServer) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if strings.HasPrefix(r.URL.Path, "/file/bot"+testToken+"/") {
			_, _ = fmt.Fprintf(w, "bytes of %s", filepath.Base(r.URL.Path))
			return
		}

		method := strings.TrimPrefix(r.URL.Path, "/bot"+testToken+"/")
		switch method {
		case "getUpdates":
			_, _ = w.Write([]byte(updatesBody))
		case "getStickerSet":
			_, _ = w.Write([]byte(stickerSetBody))
		case "getFile":
			s.getFiles++
			id := r.URL.Query().Get("file_id")
			_, _ = fmt.Fprintf(w, `{"ok":true,"result":{"file_id":%q,"file_size":14,"file_path":"stickers/%s.webp"}}`, id, id)
		case "sendDocument":
			assert.NoError(t, r.ParseMultipartForm(1<<20))
			_, header, err := r.FormFile("document")
			if !assert.NoError(t, err) {
				return
			}
			s.documents = append(s.documents, r.FormValue("chat_id")+":"+header.Filename)
			_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":2,"date":1700000001,"chat":{"id":10,"type":"private"}}}`))
		case "sendMessage":
			s.messages = append(s.messages, r.URL.Query().Get("chat_id")+":"+r.URL.Query().Get("text"))
			_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":3,"date":1700000002,"chat":{"id":10,"type":"private"}}}`))
		default:
			_, _ = w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found"}`))
		}
	}
}

type env struct {
	cfg    *config.Config
	server *fakeServer
	api    *telegram.Client
	clock  time.Time
}

func newEnv(t *testing.T) *env {
	t.Helper()
	dir := t.TempDir()
	e := &env{
		server: &fakeServer{},
		clock:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		cfg: &config.Config{
			Token:            testToken,
			DBPath:           filepath.Join(dir, "bot.db"),
			StatePath:        filepath.Join(dir, "state.db"),
			FilesDir:         filepath.Join(dir, "files"),
			StickerSetsDir:   filepath.Join(dir, "stickersets"),
			PollInterval:     time.Second,
			DownloadInterval: time.Second,
			InfoInterval:     time.Second,
			RateWindow:       time.Second,
		},
	}
	srv := httptest.NewServer(e.server.handler(t))
	t.Cleanup(srv.Close)
	e.api = telegram.NewClient(srv.URL, testToken, telegram.WithLogger(testLogger()))
	return e
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (e *env) open(t *testing.T) *Bot {
	t.Helper()
	b, err := New(context.Background(), e.cfg, e.api, testLogger(),
		WithExecutor(&scheduler.Inline{}),
		WithClock(func() time.Time { return e.clock }),
	)
	require.NoError(t, err)
	return b
}

func TestBot_StickerSetDelivered(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	b := e.open(t)
	defer func() { require.NoError(t, b.Close()) }()

	var ready []string
	_, err := b.Subscribe(ctx, func(ctx context.Context, ev events.Event) {
		if r, ok := ev.(events.StickerSetReady); ok {
			ready = append(ready, r.Name)
		}
	})
	require.NoError(t, err)

	require.NoError(t, b.Start(ctx))
	b.poller.Tick(ctx)

	_, ok, err := b.Record(ctx, models.KindChat, "10")
	require.NoError(t, err)
	require.True(t, ok)

	started, err := b.RequestStickerSetFor(ctx, "foo", 1, 10)
	require.NoError(t, err)
	assert.True(t, started)

	b.info.Tick(ctx)
	size, err := b.QueueSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, size)

	for range 2 {
		e.clock = e.clock.Add(e.cfg.RateWindow)
		b.downloads.Tick(ctx)
	}

	assert.Equal(t, []string{"foo"}, ready)
	assert.FileExists(t, filepath.Join(e.cfg.StickerSetsDir, "foo.zip"))
	assert.FileExists(t, filepath.Join(e.cfg.StickerSetsDir, "foo", "Sticker_002.tgs"))

	e.server.mu.Lock()
	assert.Equal(t, []string{"10:foo.zip"}, e.server.documents)
	assert.Equal(t, 2, e.server.getFiles)
	e.server.mu.Unlock()

	names, err := b.StickerSetNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"foo"}, names)

	state, err := b.StickerSetState(ctx, "foo")
	require.NoError(t, err)
	assert.Equal(t, stickers.StateDone, state)

	busy, err := b.Busy(ctx)
	require.NoError(t, err)
	assert.False(t, busy)

	require.NoError(t, b.RemoveStickerSet(ctx, "foo"))
	names, err = b.StickerSetNames(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.NoFileExists(t, filepath.Join(e.cfg.StickerSetsDir, "foo.zip"))
}

func TestBot_DownloadsAreRateLimited(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	b := e.open(t)
	defer func() { _ = b.Close() }()

	_, err := b.RequestStickerSet(ctx, "foo")
	require.NoError(t, err)
	b.info.Tick(ctx)

	// без сдвига часов второй тик в том же окне ничего не скачивает
	b.downloads.Tick(ctx)
	b.downloads.Tick(ctx)

	size, err := b.QueueSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, size)

	busy, err := b.Busy(ctx)
	require.NoError(t, err)
	assert.True(t, busy)
}

func TestBot_StateSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	b := e.open(t)
	require.NoError(t, b.Start(ctx))
	b.poller.Tick(ctx)
	require.NoError(t, b.SetPreference(ctx, 42, preferences.KeyGreedy, preferences.Yes))
	_, err := b.RequestStickerSet(ctx, "foo")
	require.NoError(t, err)
	b.info.Tick(ctx)
	require.NoError(t, b.Close())

	b = e.open(t)
	defer func() { _ = b.Close() }()

	offset, ok := b.poller.Offset()
	require.True(t, ok)
	assert.Equal(t, int64(6), offset)

	value, err := b.GetPreference(ctx, 42, preferences.KeyGreedy)
	require.NoError(t, err)
	assert.Equal(t, preferences.Yes, value)

	// сборка продолжается с загрузки файлов
	state, err := b.StickerSetState(ctx, "foo")
	require.NoError(t, err)
	assert.Equal(t, stickers.StateAwaitingFiles, state)
	pending := b.downloads.Pending()
	assert.Contains(t, pending, "A1")
	assert.Contains(t, pending, "A2")
}

func TestBot_Validation(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	b := e.open(t)
	defer func() { _ = b.Close() }()

	err := b.SetPreference(ctx, 42, "unknown_key", "x")
	require.ErrorIs(t, err, validation.ErrUnknownKey)

	_, err = b.RequestStickerSet(ctx, "bad name!")
	require.ErrorIs(t, err, validation.ErrInvalidFormat)

	err = b.SendMessage(ctx, 999, "hello")
	require.ErrorIs(t, err, validation.ErrUnknownChat)
}

func TestBot_BroadcastAndUptime(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	b := e.open(t)
	defer func() { _ = b.Close() }()

	require.NoError(t, b.Start(ctx))
	b.poller.Tick(ctx)

	n, err := b.Broadcast(ctx, "maintenance")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	e.server.mu.Lock()
	assert.Equal(t, []string{"10:maintenance"}, e.server.messages)
	e.server.mu.Unlock()

	e.clock = e.clock.Add(time.Minute)
	assert.Equal(t, time.Minute, b.Uptime())

	require.NoError(t, b.Stop(ctx))
	assert.NoError(t, b.Shutdown(ctx))
}
