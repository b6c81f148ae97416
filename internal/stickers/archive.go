package stickers

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// member файл набора и его расширение внутри архива
type member struct {
	fileID string
	ext    string
}

// entryName имя файла стикера: Sticker_001.webp
func entryName(i int, ext string) string {
	return fmt.Sprintf("Sticker_%03d.%s", i+1, ext)
}

// writeSetDir копирует файлы набора в <dir>/<name>/ с последовательными именами
func writeSetDir(dir, name string, members []member, files FileSource) error {
	setDir := filepath.Join(dir, name)
	if err := os.MkdirAll(setDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", setDir, err)
	}

	for i, m := range members {
		if err := copyMember(filepath.Join(setDir, entryName(i, m.ext)), m.fileID, files); err != nil {
			return err
		}
	}
	return nil
}

func copyMember(dst, fileID string, files FileSource) error {
	src, err := files.Open(fileID)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", fileID, err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy file %s: %w", fileID, err)
	}
	return out.Close()
}

// writeArchive упаковывает <dir>/<name>/ в <dir>/<name>.zip.
// Записи архива: <name>/Sticker_NNN.ext в порядке набора.
func writeArchive(dir, name string, members []member) (err error) {
	tmpPath := filepath.Join(dir, ".tmp-"+uuid.NewString()+".zip")
	out, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	zw := zip.NewWriter(out)
	for i, m := range members {
		entry := entryName(i, m.ext)
		if err := addEntry(zw, filepath.Join(dir, name, entry), name+"/"+entry); err != nil {
			_ = zw.Close()
			_ = out.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close archive: %w", err)
	}
	return os.Rename(tmpPath, filepath.Join(dir, name+".zip"))
}

func addEntry(zw *zip.Writer, path, entry string) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer src.Close()

	w, err := zw.Create(entry)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", entry, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("failed to write %s: %w", entry, err)
	}
	return nil
}

// removeArtifacts удаляет архив и каталог набора
func removeArtifacts(dir, name string) error {
	if err := os.Remove(filepath.Join(dir, name+".zip")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove archive: %w", err)
	}
	if err := os.RemoveAll(filepath.Join(dir, name)); err != nil {
		return fmt.Errorf("failed to remove set dir: %w", err)
	}
	return nil
}
