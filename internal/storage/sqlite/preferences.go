package sqlite

import (
	"context"

	"github.com/iudanet/stickerbot/internal/storage"
)

const preferencesTable = "preferences"

// SavePreference заменяет одну строку (user_id, key)
func (s *Storage) SavePreference(ctx context.Context, userID int64, key, value string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &storage.OpError{Table: preferencesTable, Op: "begin", Err: err}
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM preferences WHERE user_id = ? AND key = ?", userID, key); err != nil {
		return &storage.OpError{Table: preferencesTable, Op: "delete", Err: err}
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO preferences (user_id, key, value) VALUES (?, ?, ?)", userID, key, value); err != nil {
		return &storage.OpError{Table: preferencesTable, Op: "insert", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &storage.OpError{Table: preferencesTable, Op: "commit", Err: err}
	}
	return nil
}

// LoadPreferences возвращает все сохраненные настройки по пользователям
func (s *Storage) LoadPreferences(ctx context.Context) (map[int64]map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT user_id, key, value FROM preferences")
	if err != nil {
		return nil, &storage.OpError{Table: preferencesTable, Op: "select", Err: err}
	}
	defer func() {
		_ = rows.Close()
	}()

	prefs := make(map[int64]map[string]string)
	for rows.Next() {
		var (
			userID     int64
			key, value string
		)
		if err := rows.Scan(&userID, &key, &value); err != nil {
			return nil, &storage.OpError{Table: preferencesTable, Op: "scan", Err: err}
		}
		if prefs[userID] == nil {
			prefs[userID] = make(map[string]string)
		}
		prefs[userID][key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, &storage.OpError{Table: preferencesTable, Op: "iterate", Err: err}
	}
	return prefs, nil
}
