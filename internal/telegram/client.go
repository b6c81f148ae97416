package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/tidwall/gjson"

	"github.com/iudanet/stickerbot/pkg/botapi"
)

// DefaultBaseURL адрес Bot API
const DefaultBaseURL = "https://api.telegram.org"

var envelopeKeys = map[string]bool{
	"ok":          true,
	"result":      true,
	"error_code":  true,
	"description": true,
	"parameters":  true,
}

// Client HTTP клиент протокола бота
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	token      string
}

// Option настраивает Client
type Option func(*Client)

// WithHTTPClient подменяет http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger задает логгер
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient создает клиент. Пустой baseURL означает DefaultBaseURL.
func NewClient(baseURL, token string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := *c.httpClient
	hc.Transport = newLoggingTransport(hc.Transport, c.logger)
	c.httpClient = &hc
	return c
}

// GetUpdates запрашивает обновления начиная с offset, если он задан.
// Возвращает сырой массив обновлений.
func (c *Client) GetUpdates(ctx context.Context, offset *int64) (json.RawMessage, error) {
	params := url.Values{}
	if offset != nil {
		params.Set("offset", strconv.FormatInt(*offset, 10))
	}
	return c.get(ctx, "getUpdates", params)
}

// SetMyCommands устанавливает меню команд бота
func (c *Client) SetMyCommands(ctx context.Context, req botapi.SetMyCommandsRequest) error {
	if _, err := c.postJSON(ctx, "setMyCommands", req); err != nil {
		return err
	}
	return nil
}

// SendMessage отправляет HTML-сообщение в чат и возвращает отправленное сообщение
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("chat_id", strconv.FormatInt(chatID, 10))
	params.Set("text", text)
	params.Set("parse_mode", botapi.ParseModeHTML)
	return c.get(ctx, "sendMessage", params)
}

// SendReply отправляет HTML-ответ на сообщение
func (c *Client) SendReply(ctx context.Context, chatID, messageID int64, text string) (json.RawMessage, error) {
	reply, err := json.Marshal(botapi.ReplyParameters{MessageID: messageID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reply parameters: %w", err)
	}
	params := url.Values{}
	params.Set("chat_id", strconv.FormatInt(chatID, 10))
	params.Set("text", text)
	params.Set("parse_mode", botapi.ParseModeHTML)
	params.Set("reply_parameters", string(reply))
	return c.get(ctx, "sendMessage", params)
}

// GetFile возвращает запись файла с временным file_path
func (c *Client) GetFile(ctx context.Context, fileID string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("file_id", fileID)
	return c.get(ctx, "getFile", params)
}

// GetStickerSet возвращает метаданные набора по имени
func (c *Client) GetStickerSet(ctx context.Context, name string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("name", name)
	return c.get(ctx, "getStickerSet", params)
}

// DownloadFile скачивает байты по file_path в w
func (c *Client) DownloadFile(ctx context.Context, filePath string, w io.Writer) (int64, error) {
	const method = "downloadFile"
	filePath = strings.TrimLeft(strings.TrimSpace(filePath), "/")
	if filePath == "" {
		return 0, &TransportError{Method: method, Err: fmt.Errorf("missing file_path")}
	}

	u := fmt.Sprintf("%s/file/bot%s/%s", c.baseURL, c.token, filePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &TransportError{Method: method, Err: sanitizeError(err)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return 0, &ProtocolError{
			Method:      method,
			StatusCode:  resp.StatusCode,
			ErrorCode:   resp.StatusCode,
			Description: strings.TrimSpace(string(raw)),
		}
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, &TransportError{Method: method, Err: err}
	}
	if n == 0 {
		return 0, &TransportError{Method: method, Err: ErrEmptyResponse}
	}
	return n, nil
}

// SendDocument загружает файл в чат multipart-запросом: поле chat_id и часть document
func (c *Client) SendDocument(ctx context.Context, chatID int64, path string) (json.RawMessage, error) {
	const method = "sendDocument"

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	contentType := "application/octet-stream"
	if mtype, err := mimetype.DetectFile(path); err == nil {
		contentType = mtype.String()
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		err := writeDocumentParts(mw, f, chatID, filepath.Base(path), contentType)
		_ = pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL(method, nil), pr)
	if err != nil {
		_ = pr.Close()
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.do(req, method)
}

func writeDocumentParts(mw *multipart.Writer, src io.Reader, chatID int64, filename, contentType string) error {
	if err := mw.WriteField("chat_id", strconv.FormatInt(chatID, 10)); err != nil {
		return err
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="document"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, src); err != nil {
		return err
	}
	return mw.Close()
}

func (c *Client) methodURL(method string, params url.Values) string {
	u := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

func (c *Client) get(ctx context.Context, method string, params url.Values) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.methodURL(method, params), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, method)
}

func (c *Client) postJSON(ctx context.Context, method string, body any) (json.RawMessage, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL(method, nil), bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, method)
}

// do выполняет запрос и разбирает конверт ответа
func (c *Client) do(req *http.Request, method string) (json.RawMessage, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, Err: sanitizeError(err)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	if len(bytes.TrimSpace(respBody)) == 0 {
		return nil, &TransportError{Method: method, Err: ErrEmptyResponse}
	}
	if !gjson.ValidBytes(respBody) {
		return nil, &TransportError{Method: method, Err: fmt.Errorf("response is not JSON (http %d)", resp.StatusCode)}
	}

	gjson.ParseBytes(respBody).ForEach(func(key, _ gjson.Result) bool {
		if !envelopeKeys[key.String()] {
			c.logger.Warn("Unknown response key", "method", method, "key", key.String())
		}
		return true
	})

	var envelope botapi.Response
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, &TransportError{Method: method, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if !envelope.OK {
		perr := &ProtocolError{
			Method:      method,
			StatusCode:  resp.StatusCode,
			ErrorCode:   envelope.ErrorCode,
			Description: envelope.Description,
		}
		if envelope.Parameters != nil {
			perr.RetryAfter = envelope.Parameters.RetryAfter
		}
		return nil, perr
	}

	return envelope.Result, nil
}
