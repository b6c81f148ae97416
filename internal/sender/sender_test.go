package sender

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/stickerbot/internal/entities"
	"github.com/iudanet/stickerbot/internal/events"
	"github.com/iudanet/stickerbot/internal/models"
	"github.com/iudanet/stickerbot/internal/scheduler"
	"github.com/iudanet/stickerbot/internal/storage"
	"github.com/iudanet/stickerbot/internal/storage/boltdb"
	"github.com/iudanet/stickerbot/internal/validation"
	"github.com/iudanet/stickerbot/pkg/botapi"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	sender *Sender
	api    *APIMock
	state  *boltdb.Storage
	bus    *events.Bus
	failed []events.RequestFailed
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	logger := testLogger()

	state, err := boltdb.New(ctx, filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = state.Close() })

	store := entities.New(&storage.EntityStorageMock{
		SaveRecordFunc: func(ctx context.Context, record *models.Record) error { return nil },
	}, logger)
	for _, rec := range []*models.Record{
		models.NewIntRecord(models.KindChat, -100),
		models.NewIntRecord(models.KindChat, 42),
		models.NewIntRecord(models.KindMessage, 17),
	} {
		require.NoError(t, store.Put(ctx, rec))
	}

	api := &APIMock{
		SendMessageFunc: func(ctx context.Context, chatID int64, text string) (json.RawMessage, error) {
			return json.RawMessage(`{"message_id": 1}`), nil
		},
		SendReplyFunc: func(ctx context.Context, chatID, messageID int64, text string) (json.RawMessage, error) {
			return json.RawMessage(`{"message_id": 2}`), nil
		},
		SendDocumentFunc: func(ctx context.Context, chatID int64, path string) (json.RawMessage, error) {
			return json.RawMessage(`{"message_id": 3}`), nil
		},
		SetMyCommandsFunc: func(ctx context.Context, req botapi.SetMyCommandsRequest) error {
			return nil
		},
	}

	f := &fixture{api: api, state: state, bus: events.NewBus(logger)}
	events.On(f.bus, func(ctx context.Context, ev events.RequestFailed) {
		f.failed = append(f.failed, ev)
	})
	f.sender = New(api, store, state, &scheduler.Inline{}, f.bus, logger)
	f.sender.Subscribe(f.bus)
	return f
}

func TestSender_SendMessage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.sender.SendMessage(ctx, -100, "hello & <b>bye</b>"))

	calls := f.api.SendMessageCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, int64(-100), calls[0].ChatID)
	assert.Equal(t, "hello & <b>bye</b>", calls[0].Text)
	assert.False(t, f.sender.Busy())

	chats, err := f.state.ListActiveChats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{-100}, chats)
}

func TestSender_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.zip")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	tests := []struct {
		call    func() error
		wantErr error
		name    string
	}{
		{
			name:    "empty text",
			call:    func() error { return f.sender.SendMessage(ctx, -100, "") },
			wantErr: validation.ErrEmpty,
		},
		{
			name:    "unknown chat",
			call:    func() error { return f.sender.SendMessage(ctx, 555, "hi") },
			wantErr: validation.ErrUnknownChat,
		},
		{
			name:    "unknown reply message",
			call:    func() error { return f.sender.SendReply(ctx, -100, 99, "hi") },
			wantErr: validation.ErrUnknownMessage,
		},
		{
			name:    "empty filename",
			call:    func() error { return f.sender.UploadFile(ctx, -100, "") },
			wantErr: validation.ErrEmpty,
		},
		{
			name:    "missing file",
			call:    func() error { return f.sender.UploadFile(ctx, -100, filepath.Join(dir, "nope.zip")) },
			wantErr: validation.ErrFileNotFound,
		},
		{
			name:    "empty file",
			call:    func() error { return f.sender.UploadFile(ctx, -100, empty) },
			wantErr: validation.ErrEmpty,
		},
		{
			name:    "no commands",
			call:    func() error { return f.sender.SetCommands(ctx, nil, nil) },
			wantErr: validation.ErrEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.ErrorIs(t, err, tt.wantErr)
			var vErr *validation.ValidationError
			require.ErrorAs(t, err, &vErr)
		})
	}

	assert.Empty(t, f.api.SendMessageCalls())
	assert.Empty(t, f.api.SendReplyCalls())
	assert.Empty(t, f.api.SendDocumentCalls())
	assert.Empty(t, f.api.SetMyCommandsCalls())
	assert.Empty(t, f.sender.ActiveChats())
}

func TestSender_ReplyAndUpload(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	path := filepath.Join(t.TempDir(), "foo.zip")
	require.NoError(t, os.WriteFile(path, []byte("PK"), 0o600))

	require.NoError(t, f.sender.SendReply(ctx, -100, 17, "done"))
	require.NoError(t, f.sender.UploadFile(ctx, 42, path))

	replies := f.api.SendReplyCalls()
	require.Len(t, replies, 1)
	assert.Equal(t, int64(17), replies[0].MessageID)

	docs := f.api.SendDocumentCalls()
	require.Len(t, docs, 1)
	assert.Equal(t, path, docs[0].Path)
	assert.Equal(t, []int64{-100, 42}, f.sender.ActiveChats())
}

func TestSender_Broadcast(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// чат входящего сообщения становится активным
	f.bus.Publish(ctx, events.MessageArrived{ChatID: 42, MessageID: 5})
	require.NoError(t, f.sender.SendMessage(ctx, -100, "hi"))

	n, err := f.sender.Broadcast(ctx, "maintenance")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var sent []int64
	for _, c := range f.api.SendMessageCalls() {
		if c.Text == "maintenance" {
			sent = append(sent, c.ChatID)
		}
	}
	assert.Equal(t, []int64{-100, 42}, sent)
}

func TestSender_LoadActiveChats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.state.AddActiveChat(ctx, 7))

	require.NoError(t, f.sender.Load(ctx))
	assert.Equal(t, []int64{7}, f.sender.ActiveChats())

	// чат из состояния известен, даже если записи нет
	require.NoError(t, f.sender.SendMessage(ctx, 7, "hi"))
}

func TestSender_RemoteFailureLogged(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.api.SendMessageFunc = func(ctx context.Context, chatID int64, text string) (json.RawMessage, error) {
		return nil, errors.New("forbidden")
	}

	require.NoError(t, f.sender.SendMessage(ctx, -100, "hi"))
	require.Len(t, f.failed, 1)
	assert.Equal(t, "sendMessage", f.failed[0].Method)
	assert.False(t, f.sender.Busy())
}

func TestSender_SetCommands(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	scope := &botapi.BotCommandScope{Type: "all_private_chats"}
	cmds := []botapi.BotCommand{{Command: "stickerset", Description: "Download a sticker set"}}
	require.NoError(t, f.sender.SetCommands(ctx, scope, cmds))

	calls := f.api.SetMyCommandsCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, scope, calls[0].Req.Scope)
	assert.Equal(t, cmds, calls[0].Req.Commands)
}
