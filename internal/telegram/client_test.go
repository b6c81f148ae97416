package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/stickerbot/pkg/botapi"
)

const testToken = "123:abc"

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, testToken,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestClient_GetUpdates(t *testing.T) {
	tests := []struct {
		offset    *int64
		name      string
		wantQuery string
	}{
		{name: "without offset", offset: nil, wantQuery: ""},
		{name: "with offset", offset: ptr(int64(10)), wantQuery: "offset=10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/bot"+testToken+"/getUpdates", r.URL.Path)
				assert.Equal(t, tt.wantQuery, r.URL.RawQuery)
				_, _ = w.Write([]byte(`{"ok":true,"result":[{"update_id":5}]}`))
			})

			result, err := client.GetUpdates(context.Background(), tt.offset)
			require.NoError(t, err)
			assert.JSONEq(t, `[{"update_id":5}]`, string(result))
		})
	}
}

func TestClient_ProtocolError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "foo", r.URL.Query().Get("name"))
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: STICKERSET_INVALID"}`))
	})

	_, err := client.GetStickerSet(context.Background(), "foo")
	require.Error(t, err)

	var perr *ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 400, perr.ErrorCode)
	assert.Equal(t, http.StatusBadRequest, perr.StatusCode)
	assert.True(t, IsStickerSetInvalid(err))
}

func TestClient_RetryAfter(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":429,"description":"Too Many Requests","parameters":{"retry_after":3}}`))
	})

	_, err := client.GetFile(context.Background(), "f1")

	var perr *ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 3, perr.RetryAfter)
	assert.False(t, IsStickerSetInvalid(err))
}

func TestClient_TransportErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "not json", body: "<html>bad gateway</html>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.GetUpdates(context.Background(), nil)
			var terr *TransportError
			require.ErrorAs(t, err, &terr)
			assert.Equal(t, "getUpdates", terr.Method)
		})
	}
}

func TestClient_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(url, testToken)
	_, err := client.GetUpdates(context.Background(), nil)

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.NotContains(t, err.Error(), testToken)
	assert.Contains(t, err.Error(), "/bot***/getUpdates")

	_, err = client.DownloadFile(context.Background(), "stickers/file_1.webp", io.Discard)
	require.ErrorAs(t, err, &terr)
	assert.NotContains(t, err.Error(), testToken)
	assert.Contains(t, err.Error(), "/file/bot***/stickers/file_1.webp")
}

func TestClient_SendReply(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/bot"+testToken+"/sendMessage", r.URL.Path)
		assert.Equal(t, "-100", q.Get("chat_id"))
		assert.Equal(t, "<b>hi</b> & bye", q.Get("text"))
		assert.Equal(t, "html", q.Get("parse_mode"))
		assert.JSONEq(t, `{"message_id":7}`, q.Get("reply_parameters"))
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":8}}`))
	})

	result, err := client.SendReply(context.Background(), -100, 7, "<b>hi</b> & bye")
	require.NoError(t, err)
	assert.JSONEq(t, `{"message_id":8}`, string(result))
}

func TestClient_SetMyCommands(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req botapi.SetMyCommandsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "help", req.Commands[0].Command)
		require.NotNil(t, req.Scope)
		assert.Equal(t, "default", req.Scope.Type)
		_, _ = w.Write([]byte(`{"ok":true,"result":true}`))
	})

	err := client.SetMyCommands(context.Background(), botapi.SetMyCommandsRequest{
		Commands: []botapi.BotCommand{{Command: "help", Description: "Show help"}},
		Scope:    &botapi.BotCommandScope{Type: "default"},
	})
	require.NoError(t, err)
}

func TestClient_DownloadFile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/file/bot"+testToken+"/stickers/file_1.webp", r.URL.Path)
		_, _ = w.Write([]byte("RIFF....WEBP"))
	})

	var buf bytes.Buffer
	n, err := client.DownloadFile(context.Background(), "stickers/file_1.webp", &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
	assert.Equal(t, "RIFF....WEBP", buf.String())
}

func TestClient_DownloadFile_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	_, err := client.DownloadFile(context.Background(), "x", io.Discard)
	var perr *ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusNotFound, perr.StatusCode)
}

func TestClient_SendDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "foo.zip")
	// Минимальный пустой zip: сигнатура конца центрального каталога
	zipBytes := append([]byte("PK\x05\x06"), make([]byte, 18)...)
	require.NoError(t, os.WriteFile(path, zipBytes, 0600))

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot"+testToken+"/sendDocument", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "42", r.FormValue("chat_id"))

		file, header, err := r.FormFile("document")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		assert.Equal(t, "foo.zip", header.Filename)
		assert.Equal(t, "application/zip", header.Header.Get("Content-Type"))

		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, zipBytes, data)
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
	})

	_, err := client.SendDocument(context.Background(), 42, path)
	require.NoError(t, err)
}

func TestClient_SendDocument_MissingFile(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", testToken)
	_, err := client.SendDocument(context.Background(), 1, filepath.Join(t.TempDir(), "nope.zip"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func ptr[T any](v T) *T {
	return &v
}
