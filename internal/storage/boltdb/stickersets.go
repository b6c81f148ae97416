package boltdb

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

// MarkStickerSetInProgress запоминает, что сборка набора начата
func (s *Storage) MarkStickerSetInProgress(ctx context.Context, name string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketStickerSets)
		if err != nil {
			return err
		}
		started := []byte(time.Now().UTC().Format(time.RFC3339))
		if err := b.Put([]byte(name), started); err != nil {
			return fmt.Errorf("failed to mark sticker set %q: %w", name, err)
		}
		return nil
	})
}

// ClearStickerSetInProgress снимает отметку о сборке
func (s *Storage) ClearStickerSetInProgress(ctx context.Context, name string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketStickerSets)
		if err != nil {
			return err
		}
		if err := b.Delete([]byte(name)); err != nil {
			return fmt.Errorf("failed to clear sticker set %q: %w", name, err)
		}
		return nil
	})
}

// ListStickerSetsInProgress returns names sorted by key
func (s *Storage) ListStickerSetsInProgress(ctx context.Context) ([]string, error) {
	var names []string

	err := s.db.View(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketStickerSets)
		if err != nil {
			return err
		}
		return b.ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list sticker sets in progress: %w", err)
	}

	return names, nil
}
