package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"
)

func chatKey(chatID int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(chatID))
	return key
}

// AddActiveChat добавляет чат в множество адресатов рассылки
func (s *Storage) AddActiveChat(ctx context.Context, chatID int64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketChats)
		if err != nil {
			return err
		}
		if err := b.Put(chatKey(chatID), []byte{1}); err != nil {
			return fmt.Errorf("failed to add active chat %d: %w", chatID, err)
		}
		return nil
	})
}

// ListActiveChats returns every chat ever addressed
func (s *Storage) ListActiveChats(ctx context.Context) ([]int64, error) {
	var chats []int64

	err := s.db.View(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketChats)
		if err != nil {
			return err
		}
		return b.ForEach(func(k, _ []byte) error {
			if len(k) != 8 {
				return nil
			}
			chats = append(chats, int64(binary.BigEndian.Uint64(k)))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list active chats: %w", err)
	}

	return chats, nil
}
