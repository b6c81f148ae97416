package preferences

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/stickerbot/internal/storage"
	"github.com/iudanet/stickerbot/internal/storage/sqlite"
	"github.com/iudanet/stickerbot/internal/validation"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStore_DefaultSetReload(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "bot.db")

	db, err := sqlite.New(ctx, dbPath)
	require.NoError(t, err)

	prefs := New(db, testLogger())
	require.NoError(t, prefs.Load(ctx))

	v, err := prefs.Get(42, KeyGreedy)
	require.NoError(t, err)
	assert.Equal(t, No, v)

	require.NoError(t, prefs.Set(ctx, 42, KeyGreedy, Yes))
	v, err = prefs.Get(42, KeyGreedy)
	require.NoError(t, err)
	assert.Equal(t, Yes, v)
	require.NoError(t, db.Close())

	reopened, err := sqlite.New(ctx, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	reloaded := New(reopened, testLogger())
	require.NoError(t, reloaded.Load(ctx))
	v, err = reloaded.Get(42, KeyGreedy)
	require.NoError(t, err)
	assert.Equal(t, Yes, v)

	// у другого пользователя значение по умолчанию
	v, err = reloaded.Get(7, KeyGreedy)
	require.NoError(t, err)
	assert.Equal(t, No, v)
}

func TestStore_UnknownKeyRejected(t *testing.T) {
	ctx := context.Background()
	mock := &storage.PreferenceStorageMock{
		SavePreferenceFunc: func(ctx context.Context, userID int64, key, value string) error {
			return nil
		},
	}
	prefs := New(mock, testLogger())

	err := prefs.Set(ctx, 42, "colour", "blue")
	require.ErrorIs(t, err, validation.ErrUnknownKey)
	var vErr *validation.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "colour", vErr.Value)
	assert.Empty(t, mock.SavePreferenceCalls())

	_, err = prefs.Get(42, "colour")
	require.ErrorIs(t, err, validation.ErrUnknownKey)
}

func TestStore_InvalidValueRejected(t *testing.T) {
	mock := &storage.PreferenceStorageMock{}
	prefs := New(mock, testLogger())

	err := prefs.Set(context.Background(), 42, KeyProvideStickerSet, "sometimes")
	require.ErrorIs(t, err, validation.ErrInvalidFormat)
	assert.Empty(t, mock.SavePreferenceCalls())
}

func TestStore_SaveFailureKeepsMemory(t *testing.T) {
	mock := &storage.PreferenceStorageMock{
		SavePreferenceFunc: func(ctx context.Context, userID int64, key, value string) error {
			return errors.New("disk full")
		},
	}
	prefs := New(mock, testLogger())

	require.Error(t, prefs.Set(context.Background(), 42, KeySilent, Yes))
	v, err := prefs.Get(42, KeySilent)
	require.NoError(t, err)
	assert.Equal(t, No, v)
}

func TestStore_AllAndRestore(t *testing.T) {
	prefs := New(&storage.PreferenceStorageMock{}, testLogger())
	prefs.Restore(map[int64]map[string]string{
		42: {KeyProvideStickerSet: ProvideOnce, "legacy": "1"},
	})

	assert.Equal(t, map[string]string{
		KeyGreedy:            No,
		KeyProvideStickerSet: ProvideOnce,
		KeySilent:            No,
	}, prefs.All(42))
	assert.Equal(t, []string{KeyGreedy, KeyProvideStickerSet, KeySilent}, Keys())
}
