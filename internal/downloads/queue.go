package downloads

//go:generate moq -out queue_mock.go . FileAPI FileNormalizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/tidwall/gjson"

	"github.com/iudanet/stickerbot/internal/events"
	"github.com/iudanet/stickerbot/internal/models"
	"github.com/iudanet/stickerbot/internal/ratelimit"
	"github.com/iudanet/stickerbot/internal/scheduler"
	"github.com/iudanet/stickerbot/internal/storage"
	"github.com/iudanet/stickerbot/internal/telegram"
)

const (
	// TaskName имя периодической задачи в планировщике
	TaskName = "download_files"

	limiterKey = "download_files"

	// maxDownloadAttempts попыток на транспортные ошибки до отказа
	maxDownloadAttempts = 3
)

// FileAPI вызовы протокола для получения файла
type FileAPI interface {
	GetFile(ctx context.Context, fileID string) (json.RawMessage, error)
	DownloadFile(ctx context.Context, filePath string, w io.Writer) (int64, error)
}

// FileNormalizer объединяет ответ getFile с записью файла
type FileNormalizer interface {
	NormalizeFileResult(ctx context.Context, raw []byte) (*models.Record, string, error)
}

// Publisher получатель событий
type Publisher interface {
	Publish(ctx context.Context, ev events.Event)
}

// Queue очередь загрузки файлов: не больше одной загрузки одновременно
// и не чаще, чем разрешает ограничитель
type Queue struct {
	api        FileAPI
	normalizer FileNormalizer
	files      *FileStore
	state      storage.DownloadStateStorage
	limiter    *ratelimit.Limiter
	exec       scheduler.Executor
	publisher  Publisher
	logger     *slog.Logger
	attempts   map[string]int
	inFlight   string
	pending    []string
}

// NewQueue создает пустую очередь
func NewQueue(
	api FileAPI,
	normalizer FileNormalizer,
	files *FileStore,
	state storage.DownloadStateStorage,
	limiter *ratelimit.Limiter,
	exec scheduler.Executor,
	publisher Publisher,
	logger *slog.Logger,
) *Queue {
	return &Queue{
		api:        api,
		normalizer: normalizer,
		files:      files,
		state:      state,
		limiter:    limiter,
		exec:       exec,
		publisher:  publisher,
		logger:     logger,
		attempts:   make(map[string]int),
	}
}

// Files хранилище файлов очереди
func (q *Queue) Files() *FileStore {
	return q.files
}

// Enqueue ставит файл в очередь. Если файл уже на диске, FileReady
// публикуется сразу, очередь не меняется. Дубликаты допустимы.
func (q *Queue) Enqueue(ctx context.Context, fileID string) error {
	if fileID == "" {
		return ErrEmptyFileID
	}
	if _, err := q.files.Path(fileID); err != nil {
		return err
	}
	if q.files.Has(fileID) {
		q.publisher.Publish(ctx, events.FileReady{FileID: fileID})
		return nil
	}

	q.pending = append(q.pending, fileID)
	q.persist(ctx)
	return nil
}

// Size число файлов в очереди без учета загружаемого
func (q *Queue) Size() int {
	return len(q.pending)
}

// InFlight сообщает, что идет загрузка
func (q *Queue) InFlight() bool {
	return q.inFlight != ""
}

// Pending копия очереди
func (q *Queue) Pending() []string {
	return slices.Clone(q.pending)
}

// Restore возвращает в очередь файлы, не скачанные до перезапуска
func (q *Queue) Restore(ctx context.Context) error {
	if q.state == nil {
		return nil
	}
	ids, err := q.state.LoadPendingDownloads(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore download queue: %w", err)
	}
	q.pending = append(q.pending, ids...)
	if len(ids) > 0 {
		q.logger.Info("Download queue restored", "files", len(ids))
	}
	return nil
}

// Tick забирает первый файл из очереди
func (q *Queue) Tick(ctx context.Context) {
	if q.inFlight != "" || len(q.pending) == 0 {
		return
	}
	if !q.limiter.Allow(limiterKey) {
		return
	}

	fileID := q.pending[0]
	q.pending = q.pending[1:]
	q.persist(ctx)

	if q.files.Has(fileID) {
		err := q.files.Verify(ctx, fileID)
		if err == nil {
			q.publisher.Publish(ctx, events.FileReady{FileID: fileID})
			return
		}
		q.logger.Warn("Corrupted file will be downloaded again", "file_id", fileID, "error", err)
		if err := q.files.Remove(fileID); err != nil {
			q.logger.Error("Failed to remove corrupted file", "file_id", fileID, "error", err)
			q.publisher.Publish(ctx, events.FileFailed{FileID: fileID, Reason: err.Error()})
			return
		}
	}

	q.inFlight = fileID
	q.exec.Go("download_file", func(ctx context.Context) func(context.Context) {
		raw, size, err := q.download(ctx, fileID)
		return func(ctx context.Context) {
			q.inFlight = ""
			if err != nil {
				q.handleError(ctx, fileID, err)
				return
			}
			delete(q.attempts, fileID)
			if _, _, err := q.normalizer.NormalizeFileResult(ctx, raw); err != nil {
				q.logger.Warn("Failed to normalize getFile result", "file_id", fileID, "error", err)
			}
			q.logger.Debug("File downloaded", "file_id", fileID, "size", size)
			q.publisher.Publish(ctx, events.FileReady{FileID: fileID})
		}
	})
}

// handleError: транспортные ошибки и retry_after возвращают файл в конец очереди,
// ответы протокола и исчерпанные попытки завершаются FileFailed
func (q *Queue) handleError(ctx context.Context, fileID string, err error) {
	q.publisher.Publish(ctx, events.RequestFailed{Method: "getFile", Err: err})

	var protoErr *telegram.ProtocolError
	q.attempts[fileID]++
	permanent := errors.Is(err, ErrNoFilePath) ||
		(errors.As(err, &protoErr) && protoErr.RetryAfter == 0)
	if permanent || q.attempts[fileID] >= maxDownloadAttempts {
		q.logger.Error("Failed to download file", "file_id", fileID, "attempts", q.attempts[fileID], "error", err)
		delete(q.attempts, fileID)
		q.publisher.Publish(ctx, events.FileFailed{FileID: fileID, Reason: err.Error()})
		return
	}

	q.logger.Warn("File download will be retried", "file_id", fileID, "error", err)
	q.pending = append(q.pending, fileID)
	q.persist(ctx)
}

// download выполняется вне цикла: getFile и скачивание байтов
func (q *Queue) download(ctx context.Context, fileID string) (json.RawMessage, int64, error) {
	raw, err := q.api.GetFile(ctx, fileID)
	if err != nil {
		return nil, 0, err
	}
	filePath := gjson.GetBytes(raw, "file_path").String()
	if filePath == "" {
		return nil, 0, fmt.Errorf("file %s: %w", fileID, ErrNoFilePath)
	}

	size, err := q.files.Write(ctx, fileID, func(w io.Writer) (int64, error) {
		return q.api.DownloadFile(ctx, filePath, w)
	})
	if err != nil {
		return nil, 0, err
	}
	return raw, size, nil
}

func (q *Queue) persist(ctx context.Context) {
	if q.state == nil {
		return
	}
	if err := q.state.SavePendingDownloads(ctx, q.pending); err != nil {
		q.logger.Error("Failed to persist download queue", "error", err)
	}
}
