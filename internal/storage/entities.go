package storage

import (
	"context"

	"github.com/iudanet/stickerbot/internal/models"
)

//go:generate moq -out entities_mock.go . EntityStorage

// Snapshot полное содержимое базы, загружаемое при старте
type Snapshot struct {
	// Records записи по типу и идентификатору
	Records map[models.Kind]map[string]*models.Record
	// Preferences настройки по пользователю
	Preferences map[int64]map[string]string
}

// NewSnapshot создает пустой снимок
func NewSnapshot() *Snapshot {
	s := &Snapshot{
		Records:     make(map[models.Kind]map[string]*models.Record, len(models.Kinds)),
		Preferences: make(map[int64]map[string]string),
	}
	for _, k := range models.Kinds {
		s.Records[k] = make(map[string]*models.Record)
	}
	return s
}

// EntityStorage durable mirror of the entity store
type EntityStorage interface {
	// LoadAll reads every entity table and the preferences table
	LoadAll(ctx context.Context) (*Snapshot, error)

	// SaveRecord replaces all rows of the record id with the record fields
	SaveRecord(ctx context.Context, record *models.Record) error

	// DeleteRecord removes all rows of the record id
	DeleteRecord(ctx context.Context, kind models.Kind, id string) error
}
