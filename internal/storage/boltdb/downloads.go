package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
)

const keyPendingQueue = "queue"

// SavePendingDownloads сохраняет текущую очередь загрузок целиком
func (s *Storage) SavePendingDownloads(ctx context.Context, fileIDs []string) error {
	data, err := json.Marshal(fileIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal pending downloads: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketDownloads)
		if err != nil {
			return err
		}
		if err := b.Put([]byte(keyPendingQueue), data); err != nil {
			return fmt.Errorf("failed to save pending downloads: %w", err)
		}
		return nil
	})
}

// LoadPendingDownloads returns the persisted queue in FIFO order
func (s *Storage) LoadPendingDownloads(ctx context.Context) ([]string, error) {
	var ids []string

	err := s.db.View(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketDownloads)
		if err != nil {
			return err
		}
		data := b.Get([]byte(keyPendingQueue))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &ids)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load pending downloads: %w", err)
	}

	return ids, nil
}
