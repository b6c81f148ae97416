package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/iudanet/stickerbot/internal/validation"
)

// EnvPrefix префикс переменных окружения
const EnvPrefix = "STICKERBOT"

// Ключи конфигурации
const (
	KeyToken            = "bot.token"
	KeyName             = "bot.name"
	KeyBaseURL          = "bot.base_url"
	KeyDBPath           = "storage.db_path"
	KeyStatePath        = "storage.state_path"
	KeyFilesDir         = "storage.files_dir"
	KeyStickerSetsDir   = "storage.stickersets_dir"
	KeyPollInterval     = "schedule.poll_interval"
	KeyDownloadInterval = "schedule.download_interval"
	KeyInfoInterval     = "schedule.info_interval"
	KeyRateWindow       = "schedule.rate_window"
	KeyLogLevel         = "logging.level"
	KeyLogFormat        = "logging.format"
)

// ErrMissingToken токен не задан ни в одном источнике
var ErrMissingToken = errors.New("missing bot token")

// Config настройки процесса
type Config struct {
	Token            string
	Name             string
	BaseURL          string
	DBPath           string
	StatePath        string
	FilesDir         string
	StickerSetsDir   string
	LogLevel         string
	LogFormat        string
	PollInterval     time.Duration
	DownloadInterval time.Duration
	InfoInterval     time.Duration
	RateWindow       time.Duration
}

// SetDefaults регистрирует значения по умолчанию
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBaseURL, "https://api.telegram.org")
	v.SetDefault(KeyDBPath, "stickerbot.db")
	v.SetDefault(KeyStatePath, "stickerbot-state.db")
	v.SetDefault(KeyFilesDir, "files")
	v.SetDefault(KeyStickerSetsDir, "stickersets")
	v.SetDefault(KeyPollInterval, 5*time.Second)
	v.SetDefault(KeyDownloadInterval, time.Second)
	v.SetDefault(KeyInfoInterval, time.Second)
	v.SetDefault(KeyRateWindow, time.Second)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
}

// BindEnv включает чтение STICKERBOT_BOT_TOKEN и подобных переменных
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
}

// ReadFile читает необязательный файл конфигурации
func ReadFile(v *viper.Viper, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return nil
}

// FromViper собирает Config. Токен не проверяется: его может запросить CLI.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Token:            strings.TrimSpace(v.GetString(KeyToken)),
		Name:             strings.TrimSpace(v.GetString(KeyName)),
		BaseURL:          strings.TrimRight(strings.TrimSpace(v.GetString(KeyBaseURL)), "/"),
		DBPath:           v.GetString(KeyDBPath),
		StatePath:        v.GetString(KeyStatePath),
		FilesDir:         v.GetString(KeyFilesDir),
		StickerSetsDir:   v.GetString(KeyStickerSetsDir),
		PollInterval:     v.GetDuration(KeyPollInterval),
		DownloadInterval: v.GetDuration(KeyDownloadInterval),
		InfoInterval:     v.GetDuration(KeyInfoInterval),
		RateWindow:       v.GetDuration(KeyRateWindow),
		LogLevel:         v.GetString(KeyLogLevel),
		LogFormat:        v.GetString(KeyLogFormat),
	}
}

// Validate проверяет заполненный Config
func (c *Config) Validate() error {
	if c.Token == "" {
		return ErrMissingToken
	}
	if err := validation.ValidateBotToken(c.Token); err != nil {
		return fmt.Errorf("invalid %s: %w", KeyToken, err)
	}
	if c.Name != "" {
		if err := validation.ValidateBotName(c.Name); err != nil {
			return fmt.Errorf("invalid %s: %w", KeyName, err)
		}
	}

	paths := map[string]string{
		KeyDBPath:         c.DBPath,
		KeyStatePath:      c.StatePath,
		KeyFilesDir:       c.FilesDir,
		KeyStickerSetsDir: c.StickerSetsDir,
	}
	for key, p := range paths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	}
	if c.FilesDir == c.StickerSetsDir {
		return fmt.Errorf("%s and %s must differ", KeyFilesDir, KeyStickerSetsDir)
	}

	intervals := map[string]time.Duration{
		KeyPollInterval:     c.PollInterval,
		KeyDownloadInterval: c.DownloadInterval,
		KeyInfoInterval:     c.InfoInterval,
		KeyRateWindow:       c.RateWindow,
	}
	for key, d := range intervals {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", key, d)
		}
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown %s: %s", KeyLogFormat, c.LogFormat)
	}
	return nil
}

// NewLogger создает логгер по настройкам logging.*
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown %s: %s", KeyLogFormat, c.LogFormat)
	}
	return slog.New(h), nil
}

// ParseLevel разбирает уровень логирования
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown %s: %s", KeyLogLevel, s)
	}
}
