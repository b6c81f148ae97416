package telegram

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// loggingTransport логирует каждый вызов протокола: метод, статус, длительность.
// Токен из пути не попадает в лог.
type loggingTransport struct {
	next   http.RoundTripper
	logger *slog.Logger
}

func newLoggingTransport(next http.RoundTripper, logger *slog.Logger) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &loggingTransport{next: next, logger: logger}
}

// RoundTrip выполняет запрос и пишет одну строку лога
func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	duration := time.Since(start)

	path := sanitizePath(req.URL.Path)
	if err != nil {
		t.logger.Warn("Bot API request failed",
			"http_method", req.Method,
			"path", path,
			"duration_ms", duration.Milliseconds(),
			"error", err,
		)
		return nil, err
	}

	level := slog.LevelDebug
	if resp.StatusCode >= 500 {
		level = slog.LevelError
	} else if resp.StatusCode >= 400 {
		level = slog.LevelWarn
	}
	t.logger.Log(req.Context(), level, "Bot API request",
		"http_method", req.Method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
		"content_length", resp.ContentLength,
	)
	return resp, nil
}

// sanitizePath заменяет сегмент bot<token> на bot***
// /bot123:abc/getFile -> /bot***/getFile, /file/bot123:abc/x.webp -> /file/bot***/x.webp
func sanitizePath(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if strings.HasPrefix(part, "bot") && strings.Contains(part, ":") {
			parts[i] = "bot***"
			break
		}
	}
	return strings.Join(parts, "/")
}

// sanitizeError убирает токен из *url.Error, который http.Client возвращает с полным адресом
func sanitizeError(err error) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	return &url.Error{Op: uerr.Op, URL: sanitizeURL(uerr.URL), Err: uerr.Err}
}

func sanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "bot***"
	}
	path := sanitizePath(u.EscapedPath())
	query := u.RawQuery
	u.Path, u.RawPath, u.RawQuery, u.Fragment = "", "", "", ""
	out := u.String() + path
	if query != "" {
		out += "?" + query
	}
	return out
}
