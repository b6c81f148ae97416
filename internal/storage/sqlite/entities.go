package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/iudanet/stickerbot/internal/models"
	"github.com/iudanet/stickerbot/internal/storage"
)

// SaveRecord полностью заменяет строки записи: удаляет все по id и вставляет заново
func (s *Storage) SaveRecord(ctx context.Context, record *models.Record) error {
	if record == nil || !record.Kind.Valid() {
		return storage.ErrInvalidKind
	}
	table := record.Kind.Table()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &storage.OpError{Table: table, Op: "begin", Err: err}
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), record.ID); err != nil {
		return &storage.OpError{Table: table, Op: "delete", Err: err}
	}

	if record.Kind == models.KindStickerSet {
		err = insertStickerSet(ctx, tx, record)
	} else {
		err = insertFields(ctx, tx, record)
	}
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return &storage.OpError{Table: table, Op: "commit", Err: err}
	}
	return nil
}

func insertFields(ctx context.Context, tx *sql.Tx, record *models.Record) error {
	table := record.Kind.Table()
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (id, key, value) VALUES (?, ?, ?)", table))
	if err != nil {
		return &storage.OpError{Table: table, Op: "prepare insert", Err: err}
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, key := range sortedKeys(record.Fields) {
		if _, err := stmt.ExecContext(ctx, record.ID, key, record.Fields[key]); err != nil {
			return &storage.OpError{Table: table, Op: "insert", Err: err}
		}
	}
	return nil
}

// insertStickerSet пишет поля набора с sequence 0, затем файлы с sequence 1..n
func insertStickerSet(ctx context.Context, tx *sql.Tx, record *models.Record) error {
	table := record.Kind.Table()
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (id, sequence, key, value) VALUES (?, ?, ?, ?)", table))
	if err != nil {
		return &storage.OpError{Table: table, Op: "prepare insert", Err: err}
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, key := range sortedKeys(record.Fields) {
		if _, err := stmt.ExecContext(ctx, record.ID, 0, key, record.Fields[key]); err != nil {
			return &storage.OpError{Table: table, Op: "insert", Err: err}
		}
	}
	for i, fileID := range record.FileIDs {
		if _, err := stmt.ExecContext(ctx, record.ID, i+1, models.FieldStickerFile, fileID); err != nil {
			return &storage.OpError{Table: table, Op: "insert file", Err: err}
		}
	}
	return nil
}

// DeleteRecord удаляет все строки записи
func (s *Storage) DeleteRecord(ctx context.Context, kind models.Kind, id string) error {
	if !kind.Valid() {
		return storage.ErrInvalidKind
	}
	table := kind.Table()
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id); err != nil {
		return &storage.OpError{Table: table, Op: "delete", Err: err}
	}
	return nil
}

// LoadAll читает все таблицы сущностей и настройки
func (s *Storage) LoadAll(ctx context.Context) (*storage.Snapshot, error) {
	snap := storage.NewSnapshot()

	for _, kind := range models.Kinds {
		var err error
		if kind == models.KindStickerSet {
			err = s.loadStickerSets(ctx, snap.Records[kind])
		} else {
			err = s.loadKind(ctx, kind, snap.Records[kind])
		}
		if err != nil {
			return nil, err
		}
	}

	prefs, err := s.LoadPreferences(ctx)
	if err != nil {
		return nil, err
	}
	snap.Preferences = prefs

	return snap, nil
}

func (s *Storage) loadKind(ctx context.Context, kind models.Kind, out map[string]*models.Record) error {
	table := kind.Table()
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT id, key, value FROM %s", table))
	if err != nil {
		return &storage.OpError{Table: table, Op: "select", Err: err}
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var id, key, value string
		if err := rows.Scan(&id, &key, &value); err != nil {
			return &storage.OpError{Table: table, Op: "scan", Err: err}
		}
		rec, ok := out[id]
		if !ok {
			rec = models.NewRecord(kind, id)
			out[id] = rec
		}
		rec.Set(key, value)
	}
	if err := rows.Err(); err != nil {
		return &storage.OpError{Table: table, Op: "iterate", Err: err}
	}
	return nil
}

func (s *Storage) loadStickerSets(ctx context.Context, out map[string]*models.Record) error {
	table := models.KindStickerSet.Table()
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT id, sequence, key, value FROM %s ORDER BY id, sequence", table))
	if err != nil {
		return &storage.OpError{Table: table, Op: "select", Err: err}
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var (
			id, key, value string
			sequence       int
		)
		if err := rows.Scan(&id, &sequence, &key, &value); err != nil {
			return &storage.OpError{Table: table, Op: "scan", Err: err}
		}
		rec, ok := out[id]
		if !ok {
			rec = models.NewRecord(models.KindStickerSet, id)
			out[id] = rec
		}
		if sequence > 0 && key == models.FieldStickerFile {
			rec.FileIDs = append(rec.FileIDs, value)
			continue
		}
		rec.Set(key, value)
	}
	if err := rows.Err(); err != nil {
		return &storage.OpError{Table: table, Op: "iterate", Err: err}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
