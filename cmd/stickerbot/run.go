package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iudanet/stickerbot/internal/bot"
	"github.com/iudanet/stickerbot/internal/config"
	"github.com/iudanet/stickerbot/internal/iocli"
	"github.com/iudanet/stickerbot/internal/telegram"
)

// shutdownTimeout ожидание опустошения очередей после сигнала
const shutdownTimeout = 2 * time.Minute

func newRunCmd(v *viper.Viper) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Poll updates and serve sticker set requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromViper(v)
			if cfg.Token == "" {
				token, err := iocli.PromptToken(iocli.NewStdio(cmd.ErrOrStderr()))
				if err != nil {
					return fmt.Errorf("%w (set %s_BOT_TOKEN): %w", config.ErrMissingToken, config.EnvPrefix, err)
				}
				cfg.Token = token
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("token", "", "Bot token")
	flags.String("name", "", "Bot username")
	flags.String("base-url", "", "Bot API base URL")
	flags.String("db", "", "Path to the entity database")
	flags.String("state", "", "Path to the runtime state database")
	flags.String("files-dir", "", "Directory for downloaded files")
	flags.String("stickersets-dir", "", "Directory for assembled sticker sets")
	flags.Duration("poll-interval", 0, "Delay between getUpdates calls")
	flags.Duration("download-interval", 0, "Delay between download queue ticks")
	flags.Duration("info-interval", 0, "Delay between sticker set info queue ticks")
	flags.Duration("rate-window", 0, "Window of the download and info rate limiter")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: text or json")

	bindings := map[string]string{
		config.KeyToken:            "token",
		config.KeyName:             "name",
		config.KeyBaseURL:          "base-url",
		config.KeyDBPath:           "db",
		config.KeyStatePath:        "state",
		config.KeyFilesDir:         "files-dir",
		config.KeyStickerSetsDir:   "stickersets-dir",
		config.KeyPollInterval:     "poll-interval",
		config.KeyDownloadInterval: "download-interval",
		config.KeyInfoInterval:     "info-interval",
		config.KeyRateWindow:       "rate-window",
		config.KeyLogLevel:         "log-level",
		config.KeyLogFormat:        "log-format",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}

	return cmd, nil
}

func run(parent context.Context, cfg *config.Config) error {
	logger, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := telegram.NewClient(cfg.BaseURL, cfg.Token, telegram.WithLogger(logger))
	b, err := bot.New(ctx, cfg, api, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := b.Close(); err != nil {
			logger.Error("Failed to close storage", "error", err)
		}
	}()

	if err := b.Start(ctx); err != nil {
		return err
	}

	loopCtx, cancelLoop := context.WithCancel(context.Background())
	defer cancelLoop()

	done := make(chan error, 1)
	go func() {
		done <- b.Run(loopCtx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down, waiting for queues to drain", "uptime", b.Uptime().Round(time.Second))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := b.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Shutdown did not drain", "error", err)
	}

	cancelLoop()
	return <-done
}
