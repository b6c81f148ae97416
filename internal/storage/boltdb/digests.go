package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/stickerbot/internal/storage"
)

// SaveFileDigest сохраняет контрольную сумму файла
func (s *Storage) SaveFileDigest(ctx context.Context, fileID, digest string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketDigests)
		if err != nil {
			return err
		}
		if err := b.Put([]byte(fileID), []byte(digest)); err != nil {
			return fmt.Errorf("failed to save digest of %s: %w", fileID, err)
		}
		return nil
	})
}

// GetFileDigest returns storage.ErrNotFound if no digest was recorded
func (s *Storage) GetFileDigest(ctx context.Context, fileID string) (string, error) {
	var digest string

	err := s.db.View(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketDigests)
		if err != nil {
			return err
		}
		v := b.Get([]byte(fileID))
		if v == nil {
			return storage.ErrNotFound
		}
		digest = string(v)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to get digest of %s: %w", fileID, err)
	}

	return digest, nil
}
