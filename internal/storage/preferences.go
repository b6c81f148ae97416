package storage

import "context"

//go:generate moq -out preferences_mock.go . PreferenceStorage

// PreferenceStorage хранит пользовательские настройки
type PreferenceStorage interface {
	// SavePreference replaces the single (user, key) row
	SavePreference(ctx context.Context, userID int64, key, value string) error

	// LoadPreferences returns all stored overrides grouped by user
	LoadPreferences(ctx context.Context) (map[int64]map[string]string, error)
}
