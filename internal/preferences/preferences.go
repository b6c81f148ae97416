package preferences

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/iudanet/stickerbot/internal/storage"
	"github.com/iudanet/stickerbot/internal/validation"
)

const (
	KeyGreedy            = "greedy"
	KeyProvideStickerSet = "provide_sticker_set"
	KeySilent            = "silent"

	Yes = "yes"
	No  = "no"

	ProvideAlways = "always"
	ProvideOnce   = "once"
	ProvideNever  = "never"
)

// schema закрытый набор ключей: значение по умолчанию и допустимые значения
var schema = map[string]struct {
	def     string
	allowed []string
}{
	KeyGreedy:            {def: No, allowed: []string{Yes, No}},
	KeyProvideStickerSet: {def: ProvideAlways, allowed: []string{ProvideAlways, ProvideOnce, ProvideNever}},
	KeySilent:            {def: No, allowed: []string{Yes, No}},
}

// Keys известные ключи настроек
func Keys() []string {
	return slices.Sorted(maps.Keys(schema))
}

// Default значение по умолчанию
func Default(key string) (string, bool) {
	s, ok := schema[key]
	return s.def, ok
}

// Store настройки пользователей поверх значений по умолчанию.
// Запись сначала в базу, затем в память.
type Store struct {
	persist storage.PreferenceStorage
	logger  *slog.Logger
	values  map[int64]map[string]string
}

// New создает пустое хранилище настроек
func New(persist storage.PreferenceStorage, logger *slog.Logger) *Store {
	return &Store{
		persist: persist,
		logger:  logger,
		values:  make(map[int64]map[string]string),
	}
}

// Load читает настройки из базы
func (s *Store) Load(ctx context.Context) error {
	values, err := s.persist.LoadPreferences(ctx)
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	s.Restore(values)
	return nil
}

// Restore заполняет хранилище из снимка; неизвестные ключи пропускаются
func (s *Store) Restore(values map[int64]map[string]string) {
	s.values = make(map[int64]map[string]string, len(values))
	for userID, prefs := range values {
		for key, value := range prefs {
			if _, ok := schema[key]; !ok {
				s.logger.Warn("Unknown preference skipped", "user_id", userID, "key", key)
				continue
			}
			s.set(userID, key, value)
		}
	}
}

// Get возвращает значение или значение по умолчанию
func (s *Store) Get(userID int64, key string) (string, error) {
	rule, ok := schema[key]
	if !ok {
		return "", validation.NewError("preference key", key, validation.ErrUnknownKey)
	}
	if v, ok := s.values[userID][key]; ok {
		return v, nil
	}
	return rule.def, nil
}

// All все настройки пользователя с учетом значений по умолчанию
func (s *Store) All(userID int64) map[string]string {
	all := make(map[string]string, len(schema))
	for key, rule := range schema {
		all[key] = rule.def
	}
	maps.Copy(all, s.values[userID])
	return all
}

// Set проверяет ключ и значение и сохраняет настройку.
// При ошибке валидации ничего не пишется.
func (s *Store) Set(ctx context.Context, userID int64, key, value string) error {
	rule, ok := schema[key]
	if !ok {
		return validation.NewError("preference key", key, validation.ErrUnknownKey)
	}
	if !slices.Contains(rule.allowed, value) {
		return validation.NewError(key, value, validation.ErrInvalidFormat)
	}

	if err := s.persist.SavePreference(ctx, userID, key, value); err != nil {
		return fmt.Errorf("failed to save preference %s: %w", key, err)
	}
	s.set(userID, key, value)
	return nil
}

func (s *Store) set(userID int64, key, value string) {
	if s.values[userID] == nil {
		s.values[userID] = make(map[string]string)
	}
	s.values[userID][key] = value
}
