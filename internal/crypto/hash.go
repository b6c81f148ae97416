package crypto

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"
)

// ErrDigestMismatch содержимое не совпадает с сохраненным хешем
var ErrDigestMismatch = errors.New("digest mismatch")

// Digest считает BLAKE2b-256 от потока и возвращает hex-строку
func Digest(r io.Reader) (string, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", fmt.Errorf("failed to create hash: %w", err)
	}
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("failed to hash content: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// DigestFile считает хеш файла на диске
func DigestFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Digest(f)
}

// VerifyFile сравнивает хеш файла с сохраненным
func VerifyFile(path, digest string) error {
	if digest == "" {
		return fmt.Errorf("digest cannot be empty")
	}
	computed, err := DigestFile(path)
	if err != nil {
		return err
	}
	if computed != digest {
		return fmt.Errorf("%s: %w", path, ErrDigestMismatch)
	}
	return nil
}
