package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/stickerbot/internal/models"
	"github.com/iudanet/stickerbot/internal/storage"
)

func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	// Используем in-memory database для тестов
	s, err := New(ctx, ":memory:")
	require.NoError(t, err)

	cleanup := func() {
		_ = s.Close()
	}

	return s, cleanup
}

func TestStorage_SaveRecord_ReplacesAllRows(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	rec := models.NewIntRecord(models.KindMessage, 7)
	rec.Set("text", "first")
	rec.Set("caption", "stale")
	require.NoError(t, s.SaveRecord(ctx, rec))

	// Полная замена: поле caption не должно пережить повторную запись
	rec2 := models.NewIntRecord(models.KindMessage, 7)
	rec2.Set("text", "second")
	require.NoError(t, s.SaveRecord(ctx, rec2))

	snap, err := s.LoadAll(ctx)
	require.NoError(t, err)

	got := snap.Records[models.KindMessage]["7"]
	require.NotNil(t, got)
	assert.Equal(t, map[string]string{"id": "7", "text": "second"}, got.Fields)
}

func TestStorage_SaveRecord_StickerSetOrder(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	rec := models.NewRecord(models.KindStickerSet, "foo")
	rec.Set("title", "Foo")
	rec.FileIDs = []string{"c", "a", "b"}
	require.NoError(t, s.SaveRecord(ctx, rec))

	snap, err := s.LoadAll(ctx)
	require.NoError(t, err)

	got := snap.Records[models.KindStickerSet]["foo"]
	require.NotNil(t, got)
	assert.Equal(t, []string{"c", "a", "b"}, got.FileIDs)
	assert.Equal(t, "Foo", got.Fields["title"])
	_, hasFileKey := got.Fields[models.FieldStickerFile]
	assert.False(t, hasFileKey)
}

func TestStorage_DeleteRecord(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	rec := models.NewRecord(models.KindStickerSet, "foo")
	rec.FileIDs = []string{"a"}
	require.NoError(t, s.SaveRecord(ctx, rec))
	require.NoError(t, s.DeleteRecord(ctx, models.KindStickerSet, "foo"))

	snap, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Records[models.KindStickerSet])
}

func TestStorage_InvalidKind(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	err := s.SaveRecord(ctx, &models.Record{Kind: "photo", ID: "1"})
	require.ErrorIs(t, err, storage.ErrInvalidKind)

	err = s.DeleteRecord(ctx, "photo", "1")
	require.ErrorIs(t, err, storage.ErrInvalidKind)
}

func TestStorage_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bot.db")

	s, err := New(ctx, path)
	require.NoError(t, err)

	for _, id := range []int64{5, 6, 9} {
		require.NoError(t, s.SaveRecord(ctx, models.NewIntRecord(models.KindUpdate, id)))
	}
	require.NoError(t, s.SavePreference(ctx, 42, "greedy", "yes"))
	require.NoError(t, s.Close())

	// Повторное открытие не должно ломаться на уже примененных миграциях
	s, err = New(ctx, path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	snap, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Records[models.KindUpdate], 3)
	assert.Equal(t, "yes", snap.Preferences[42]["greedy"])
}

func TestStorage_OpErrorCarriesTable(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	cleanup()

	err := s.SaveRecord(ctx, models.NewIntRecord(models.KindChat, 1))
	require.Error(t, err)

	var opErr *storage.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "chat_info", opErr.Table)
}
