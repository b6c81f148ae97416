package entities

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/iudanet/stickerbot/internal/models"
	"github.com/iudanet/stickerbot/internal/storage"
)

// Store индекс всех записей по типу и идентификатору.
// Каждое изменение синхронно пишется в EntityStorage до изменения памяти.
// Принадлежит циклу планировщика, блокировок нет.
type Store struct {
	persist      storage.EntityStorage
	logger       *slog.Logger
	records      map[models.Kind]map[string]*models.Record
	maxUpdateID  *int64
	nextButton   int64
	nextButtonLs int64
}

// New создает пустое хранилище
func New(persist storage.EntityStorage, logger *slog.Logger) *Store {
	s := &Store{
		persist: persist,
		logger:  logger,
		records: make(map[models.Kind]map[string]*models.Record, len(models.Kinds)),
	}
	for _, k := range models.Kinds {
		s.records[k] = make(map[string]*models.Record)
	}
	return s
}

// Load заполняет хранилище из базы и пересчитывает счетчики.
// Возвращает снимок, чтобы вызывающий мог забрать настройки.
func (s *Store) Load(ctx context.Context) (*storage.Snapshot, error) {
	snap, err := s.persist.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load entities: %w", err)
	}

	for _, kind := range models.Kinds {
		s.records[kind] = make(map[string]*models.Record, len(snap.Records[kind]))
		for id, rec := range snap.Records[kind] {
			s.records[kind][id] = rec
		}
	}

	s.maxUpdateID = s.maxIntID(models.KindUpdate)
	s.nextButton = nextAfter(s.maxIntID(models.KindButton))
	s.nextButtonLs = nextAfter(s.maxIntID(models.KindButtonList))

	s.logger.Info("Entities loaded",
		"updates", len(s.records[models.KindUpdate]),
		"messages", len(s.records[models.KindMessage]),
		"files", len(s.records[models.KindFile]),
		"sticker_sets", len(s.records[models.KindStickerSet]),
	)

	return snap, nil
}

func nextAfter(maxID *int64) int64 {
	if maxID == nil {
		return 0
	}
	return *maxID + 1
}

func (s *Store) maxIntID(kind models.Kind) *int64 {
	var maxID *int64
	for id := range s.records[kind] {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			s.logger.Warn("Non-numeric id in table", "table", kind.Table(), "id", id)
			continue
		}
		if maxID == nil || n > *maxID {
			maxID = &n
		}
	}
	return maxID
}

// Has проверяет наличие записи
func (s *Store) Has(kind models.Kind, id string) bool {
	_, ok := s.records[kind][id]
	return ok
}

// Get возвращает копию записи
func (s *Store) Get(kind models.Kind, id string) (*models.Record, bool) {
	rec, ok := s.records[kind][id]
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

// Put сохраняет запись в базу и затем в память.
// При ошибке базы память не меняется.
func (s *Store) Put(ctx context.Context, rec *models.Record) error {
	if rec == nil || !rec.Kind.Valid() {
		return storage.ErrInvalidKind
	}
	stored := rec.Clone()
	if err := s.persist.SaveRecord(ctx, stored); err != nil {
		return fmt.Errorf("failed to save %s %s: %w", rec.Kind, rec.ID, err)
	}
	s.records[rec.Kind][rec.ID] = stored

	if rec.Kind == models.KindUpdate {
		if n, err := strconv.ParseInt(rec.ID, 10, 64); err == nil && (s.maxUpdateID == nil || n > *s.maxUpdateID) {
			s.maxUpdateID = &n
		}
	}
	return nil
}

// Delete удаляет запись из базы и памяти
func (s *Store) Delete(ctx context.Context, kind models.Kind, id string) error {
	if err := s.persist.DeleteRecord(ctx, kind, id); err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", kind, id, err)
	}
	delete(s.records[kind], id)
	return nil
}

// IDs возвращает отсортированные идентификаторы записей типа
func (s *Store) IDs(kind models.Kind) []string {
	ids := make([]string, 0, len(s.records[kind]))
	for id := range s.records[kind] {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Count возвращает число записей типа
func (s *Store) Count(kind models.Kind) int {
	return len(s.records[kind])
}

// MaxUpdateID максимальный известный update_id
func (s *Store) MaxUpdateID() (int64, bool) {
	if s.maxUpdateID == nil {
		return 0, false
	}
	return *s.maxUpdateID, true
}

// NextButtonID выдает следующий синтетический id кнопки
func (s *Store) NextButtonID() int64 {
	id := s.nextButton
	s.nextButton++
	return id
}

// NextButtonListID выдает следующий синтетический id клавиатуры
func (s *Store) NextButtonListID() int64 {
	id := s.nextButtonLs
	s.nextButtonLs++
	return id
}
