package downloads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/iudanet/stickerbot/internal/crypto"
	"github.com/iudanet/stickerbot/internal/storage"
)

// FileStore каталог скачанных файлов: один файл на file-id, без расширения.
// Запись атомарная: временный файл и rename.
type FileStore struct {
	digests storage.DigestStorage
	logger  *slog.Logger
	dir     string
}

// NewFileStore создает каталог при необходимости
func NewFileStore(dir string, digests storage.DigestStorage, logger *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create files dir: %w", err)
	}
	return &FileStore{dir: dir, digests: digests, logger: logger}, nil
}

// Dir каталог файлов
func (s *FileStore) Dir() string {
	return s.dir
}

// Path путь к файлу по file-id
func (s *FileStore) Path(fileID string) (string, error) {
	if fileID == "" {
		return "", ErrEmptyFileID
	}
	if fileID == "." || fileID == ".." || strings.ContainsAny(fileID, `/\`) || strings.HasPrefix(fileID, ".tmp-") {
		return "", fmt.Errorf("%q: %w", fileID, ErrInvalidFileID)
	}
	return filepath.Join(s.dir, fileID), nil
}

// Has сообщает, что байты файла уже на диске
func (s *FileStore) Has(fileID string) bool {
	path, err := s.Path(fileID)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Open открывает файл для чтения
func (s *FileStore) Open(fileID string) (*os.File, error) {
	path, err := s.Path(fileID)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Write пишет файл через fill и атомарно публикует его под именем file-id.
// После записи сохраняется контрольная сумма.
func (s *FileStore) Write(ctx context.Context, fileID string, fill func(w io.Writer) (int64, error)) (int64, error) {
	path, err := s.Path(fileID)
	if err != nil {
		return 0, err
	}

	tmpPath := filepath.Join(s.dir, ".tmp-"+uuid.NewString())
	tmp, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		// после успешного rename файла уже нет
		_ = os.Remove(tmpPath)
	}()

	n, err := fill(tmp)
	if err != nil {
		_ = tmp.Close()
		return 0, err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return 0, fmt.Errorf("failed to sync %s: %w", fileID, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("failed to close %s: %w", fileID, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return 0, fmt.Errorf("failed to publish %s: %w", fileID, err)
	}

	if s.digests != nil {
		digest, err := crypto.DigestFile(path)
		if err != nil {
			return n, err
		}
		if err := s.digests.SaveFileDigest(ctx, fileID, digest); err != nil {
			s.logger.Warn("Failed to save file digest", "file_id", fileID, "error", err)
		}
	}
	return n, nil
}

// Verify сверяет файл с сохраненной контрольной суммой.
// Файл без сохраненной суммы считается целым.
func (s *FileStore) Verify(ctx context.Context, fileID string) error {
	if s.digests == nil {
		return nil
	}
	path, err := s.Path(fileID)
	if err != nil {
		return err
	}
	digest, err := s.digests.GetFileDigest(ctx, fileID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return crypto.VerifyFile(path, digest)
}

// Remove удаляет файл
func (s *FileStore) Remove(fileID string) error {
	path, err := s.Path(fileID)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", fileID, err)
	}
	return nil
}
