package entities

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/stickerbot/internal/models"
	"github.com/iudanet/stickerbot/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func memoryStorage() (*storage.EntityStorageMock, map[string]*models.Record) {
	saved := make(map[string]*models.Record)
	mock := &storage.EntityStorageMock{
		LoadAllFunc: func(ctx context.Context) (*storage.Snapshot, error) {
			snap := storage.NewSnapshot()
			for _, rec := range saved {
				snap.Records[rec.Kind][rec.ID] = rec.Clone()
			}
			return snap, nil
		},
		SaveRecordFunc: func(ctx context.Context, record *models.Record) error {
			saved[string(record.Kind)+"/"+record.ID] = record.Clone()
			return nil
		},
		DeleteRecordFunc: func(ctx context.Context, kind models.Kind, id string) error {
			delete(saved, string(kind)+"/"+id)
			return nil
		},
	}
	return mock, saved
}

func TestStore_LoadComputesCounters(t *testing.T) {
	mock, saved := memoryStorage()
	for _, id := range []int64{5, 9, 6} {
		rec := models.NewIntRecord(models.KindUpdate, id)
		saved["update/"+rec.ID] = rec
	}
	saved["button/3"] = models.NewIntRecord(models.KindButton, 3)

	s := New(mock, testLogger())
	_, err := s.Load(context.Background())
	require.NoError(t, err)

	maxID, ok := s.MaxUpdateID()
	require.True(t, ok)
	assert.Equal(t, int64(9), maxID)

	assert.Equal(t, int64(4), s.NextButtonID())
	assert.Equal(t, int64(5), s.NextButtonID())
	// Клавиатур нет: счетчик начинается с нуля
	assert.Equal(t, int64(0), s.NextButtonListID())
}

func TestStore_LoadEmpty(t *testing.T) {
	mock, _ := memoryStorage()
	s := New(mock, testLogger())
	_, err := s.Load(context.Background())
	require.NoError(t, err)

	_, ok := s.MaxUpdateID()
	assert.False(t, ok)
}

func TestStore_PutWritesThrough(t *testing.T) {
	ctx := context.Background()
	mock, saved := memoryStorage()
	s := New(mock, testLogger())

	rec := models.NewIntRecord(models.KindChat, -100)
	rec.Set("type", "group")
	require.NoError(t, s.Put(ctx, rec))

	assert.Len(t, mock.SaveRecordCalls(), 1)
	assert.Contains(t, saved, "chat/-100")
	assert.True(t, s.Has(models.KindChat, "-100"))

	// Get возвращает копию
	got, ok := s.Get(models.KindChat, "-100")
	require.True(t, ok)
	got.Set("type", "private")
	again, _ := s.Get(models.KindChat, "-100")
	assert.Equal(t, "group", again.Fields["type"])
}

func TestStore_PutFailureKeepsMemory(t *testing.T) {
	mock := &storage.EntityStorageMock{
		SaveRecordFunc: func(ctx context.Context, record *models.Record) error {
			return &storage.OpError{Table: record.Kind.Table(), Op: "insert", Err: errors.New("disk full")}
		},
	}
	s := New(mock, testLogger())

	err := s.Put(context.Background(), models.NewIntRecord(models.KindUser, 1))
	require.Error(t, err)

	var opErr *storage.OpError
	require.ErrorAs(t, err, &opErr)
	assert.False(t, s.Has(models.KindUser, "1"))
}

func TestStore_PutTracksMaxUpdate(t *testing.T) {
	ctx := context.Background()
	mock, _ := memoryStorage()
	s := New(mock, testLogger())

	for _, id := range []int64{9, 5, 6} {
		require.NoError(t, s.Put(ctx, models.NewIntRecord(models.KindUpdate, id)))
	}

	maxID, ok := s.MaxUpdateID()
	require.True(t, ok)
	assert.Equal(t, int64(9), maxID)
}

func TestStore_DeleteAndIDs(t *testing.T) {
	ctx := context.Background()
	mock, saved := memoryStorage()
	s := New(mock, testLogger())

	for _, name := range []string{"b", "a", "c"} {
		require.NoError(t, s.Put(ctx, models.NewRecord(models.KindStickerSet, name)))
	}
	assert.Equal(t, []string{"a", "b", "c"}, s.IDs(models.KindStickerSet))

	require.NoError(t, s.Delete(ctx, models.KindStickerSet, "b"))
	assert.Equal(t, []string{"a", "c"}, s.IDs(models.KindStickerSet))
	assert.NotContains(t, saved, "sticker_set/b")
	assert.Equal(t, 2, s.Count(models.KindStickerSet))
}

func TestStore_PutInvalidKind(t *testing.T) {
	mock, _ := memoryStorage()
	s := New(mock, testLogger())

	err := s.Put(context.Background(), &models.Record{Kind: "photo", ID: "1"})
	require.ErrorIs(t, err, storage.ErrInvalidKind)
	assert.Empty(t, mock.SaveRecordCalls())
}
