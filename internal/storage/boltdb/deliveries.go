package boltdb

import (
	"context"
	"fmt"
	"strconv"

	"go.etcd.io/bbolt"
)

func deliveryKey(setName string, userID int64) []byte {
	return []byte(setName + "\x00" + strconv.FormatInt(userID, 10))
}

// MarkDelivered запоминает, что архив набора отправлен пользователю
func (s *Storage) MarkDelivered(ctx context.Context, setName string, userID int64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketDeliveries)
		if err != nil {
			return err
		}
		if err := b.Put(deliveryKey(setName, userID), []byte{1}); err != nil {
			return fmt.Errorf("failed to mark delivery %q to %d: %w", setName, userID, err)
		}
		return nil
	})
}

// IsDelivered проверяет, отправлялся ли архив пользователю
func (s *Storage) IsDelivered(ctx context.Context, setName string, userID int64) (bool, error) {
	var delivered bool

	err := s.db.View(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketDeliveries)
		if err != nil {
			return err
		}
		delivered = b.Get(deliveryKey(setName, userID)) != nil
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to check delivery: %w", err)
	}

	return delivered, nil
}
