package stickers

//go:generate moq -out pipeline_mock.go . Downloader InfoAPI SetNormalizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/iudanet/stickerbot/internal/entities"
	"github.com/iudanet/stickerbot/internal/events"
	"github.com/iudanet/stickerbot/internal/models"
	"github.com/iudanet/stickerbot/internal/scheduler"
	"github.com/iudanet/stickerbot/internal/storage"
	"github.com/iudanet/stickerbot/internal/validation"
)

// ReasonNotFound причина отказа для несуществующего набора
const ReasonNotFound = "sticker set does not exist"

// Downloader очередь загрузки файлов
type Downloader interface {
	Enqueue(ctx context.Context, fileID string) error
}

// FileSource источник байтов скачанных файлов
type FileSource interface {
	Open(fileID string) (*os.File, error)
}

// Publisher получатель событий
type Publisher interface {
	Publish(ctx context.Context, ev events.Event)
}

// Pipeline конечный автомат сборки наборов: по одному состоянию на имя.
// Все методы вызываются из цикла планировщика.
type Pipeline struct {
	store     *entities.Store
	downloads Downloader
	info      *InfoQueue
	files     FileSource
	state     storage.StickerSetStateStorage
	exec      scheduler.Executor
	publisher Publisher
	logger    *slog.Logger
	jobs      map[string]*job
	dir       string
}

// Config зависимости конвейера
type Config struct {
	Store     *entities.Store
	Downloads Downloader
	Info      *InfoQueue
	Files     FileSource
	State     storage.StickerSetStateStorage
	Exec      scheduler.Executor
	Publisher Publisher
	Logger    *slog.Logger
	Dir       string
}

// NewPipeline создает конвейер и каталог наборов
func NewPipeline(cfg Config) (*Pipeline, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create sticker sets dir: %w", err)
	}
	return &Pipeline{
		store:     cfg.Store,
		downloads: cfg.Downloads,
		info:      cfg.Info,
		files:     cfg.Files,
		state:     cfg.State,
		exec:      cfg.Exec,
		publisher: cfg.Publisher,
		logger:    cfg.Logger,
		dir:       cfg.Dir,
		jobs:      make(map[string]*job),
	}, nil
}

// Subscribe подписывает конвейер на события нормализатора и очередей
func (p *Pipeline) Subscribe(bus *events.Bus) {
	events.On(bus, func(ctx context.Context, ev events.StickerSetInfoArrived) {
		p.Advance(ctx, ev.Name, InfoArrived{})
	})
	events.On(bus, func(ctx context.Context, ev events.StickerSetInfoFailed) {
		p.Advance(ctx, ev.Name, InfoFailed{Reason: ReasonNotFound})
	})
	events.On(bus, func(ctx context.Context, ev events.FileReady) {
		p.FileReady(ctx, ev.FileID)
	})
	events.On(bus, func(ctx context.Context, ev events.FileFailed) {
		p.FileFailed(ctx, ev.FileID, ev.Reason)
	})
}

// Request запускает сборку набора. false, если сборка уже идет.
func (p *Pipeline) Request(ctx context.Context, name string) (bool, error) {
	if err := validation.ValidateStickerSetName(name); err != nil {
		return false, err
	}
	return p.Advance(ctx, name, Requested{}), nil
}

// RequestForce удаляет метаданные и архив набора и собирает его заново
func (p *Pipeline) RequestForce(ctx context.Context, name string) (bool, error) {
	if err := validation.ValidateStickerSetName(name); err != nil {
		return false, err
	}
	if p.InProgress(name) {
		return false, nil
	}
	if err := p.Remove(ctx, name); err != nil {
		return false, err
	}
	return p.Advance(ctx, name, Requested{}), nil
}

// Remove удаляет запись набора и собранный архив.
// Список файлов набора будет заменен при следующем получении метаданных.
func (p *Pipeline) Remove(ctx context.Context, name string) error {
	if p.InProgress(name) {
		return fmt.Errorf("sticker set %s is being assembled", name)
	}
	if p.store.Has(models.KindStickerSet, name) {
		if err := p.store.Delete(ctx, models.KindStickerSet, name); err != nil {
			return err
		}
	}
	if err := removeArtifacts(p.dir, name); err != nil {
		return err
	}
	delete(p.jobs, name)
	return nil
}

// Restore перезапускает сборки, прерванные остановкой процесса
func (p *Pipeline) Restore(ctx context.Context) error {
	if p.state == nil {
		return nil
	}
	names, err := p.state.ListStickerSetsInProgress(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore sticker sets: %w", err)
	}
	for _, name := range names {
		p.logger.Info("Resuming sticker set", "name", name)
		p.Advance(ctx, name, Requested{})
	}
	return nil
}

// FileReady передает готовый файл всем сборкам, которые его ждут
func (p *Pipeline) FileReady(ctx context.Context, fileID string) {
	for _, name := range p.waitingFor(fileID) {
		p.Advance(ctx, name, FileArrived{FileID: fileID})
	}
}

// FileFailed прерывает все сборки, которые ждут файл
func (p *Pipeline) FileFailed(ctx context.Context, fileID, reason string) {
	for _, name := range p.waitingFor(fileID) {
		p.Advance(ctx, name, FileFailed{FileID: fileID, Reason: reason})
	}
}

func (p *Pipeline) waitingFor(fileID string) []string {
	var waiting []string
	for name, j := range p.jobs {
		if j.state != StateAwaitingFiles {
			continue
		}
		if _, ok := j.remaining[fileID]; ok {
			waiting = append(waiting, name)
		}
	}
	slices.Sort(waiting)
	return waiting
}

// Advance единственная точка перехода автомата.
// Возвращает false, если событие не изменило состояние.
func (p *Pipeline) Advance(ctx context.Context, name string, ev Event) bool {
	j := p.jobs[name]

	switch ev := ev.(type) {
	case Requested:
		if j != nil && j.state.Active() {
			p.logger.Debug("Sticker set already in progress", "name", name, "state", j.state.String())
			return false
		}
		j = &job{}
		p.jobs[name] = j
		p.markInProgress(ctx, name)
		if p.store.Has(models.KindStickerSet, name) {
			p.collectFiles(ctx, name, j)
			return true
		}
		j.state = StateAwaitingInfo
		p.info.Enqueue(name)
		return true

	case InfoArrived:
		if j == nil || j.state != StateAwaitingInfo {
			return false
		}
		p.collectFiles(ctx, name, j)
		return true

	case InfoFailed:
		if j == nil || j.state != StateAwaitingInfo {
			return false
		}
		p.fail(ctx, name, j, ev.Reason)
		return true

	case FileArrived:
		if j == nil || j.state != StateAwaitingFiles {
			return false
		}
		if _, ok := j.remaining[ev.FileID]; !ok {
			return false
		}
		delete(j.remaining, ev.FileID)
		if len(j.remaining) == 0 {
			p.pack(ctx, name, j)
		}
		return true

	case FileFailed:
		if j == nil || j.state != StateAwaitingFiles {
			return false
		}
		if _, ok := j.remaining[ev.FileID]; !ok {
			return false
		}
		p.fail(ctx, name, j, fmt.Sprintf("failed to download file %s: %s", ev.FileID, ev.Reason))
		return true
	}
	return false
}

// collectFiles переводит сборку в ожидание файлов и ставит все файлы в очередь.
// Состояние меняется до постановки: очередь может сразу сообщить о готовом файле.
func (p *Pipeline) collectFiles(ctx context.Context, name string, j *job) {
	rec, ok := p.store.Get(models.KindStickerSet, name)
	if !ok {
		p.fail(ctx, name, j, "sticker set metadata is missing")
		return
	}

	j.state = StateAwaitingFiles
	j.remaining = make(map[string]struct{}, len(rec.FileIDs))
	for _, id := range rec.FileIDs {
		j.remaining[id] = struct{}{}
	}
	if len(j.remaining) == 0 {
		p.pack(ctx, name, j)
		return
	}

	for _, id := range rec.FileIDs {
		if j.state != StateAwaitingFiles {
			return
		}
		if err := p.downloads.Enqueue(ctx, id); err != nil {
			p.fail(ctx, name, j, fmt.Sprintf("failed to enqueue file %s: %v", id, err))
			return
		}
	}
}

// pack собирает архив вне цикла, если его еще нет
func (p *Pipeline) pack(ctx context.Context, name string, j *job) {
	j.state = StatePackaging

	if p.ArchiveExists(name) {
		p.finish(ctx, name, j)
		return
	}

	members, err := p.members(name)
	if err != nil {
		p.fail(ctx, name, j, err.Error())
		return
	}

	p.exec.Go("package_sticker_set", func(context.Context) func(context.Context) {
		err := writeSetDir(p.dir, name, members, p.files)
		if err == nil {
			err = writeArchive(p.dir, name, members)
		}
		return func(ctx context.Context) {
			if err != nil {
				p.fail(ctx, name, j, err.Error())
				return
			}
			p.logger.Info("Sticker set packaged", "name", name, "stickers", len(members))
			p.finish(ctx, name, j)
		}
	})
}

// members читает расширения файлов в порядке набора
func (p *Pipeline) members(name string) ([]member, error) {
	rec, ok := p.store.Get(models.KindStickerSet, name)
	if !ok {
		return nil, errors.New("sticker set metadata is missing")
	}
	members := make([]member, 0, len(rec.FileIDs))
	for _, id := range rec.FileIDs {
		ext := "webp"
		if fileRec, ok := p.store.Get(models.KindFile, id); ok {
			if f, err := models.FileFromRecord(fileRec); err == nil {
				ext = f.Extension()
			}
		}
		members = append(members, member{fileID: id, ext: ext})
	}
	return members, nil
}

func (p *Pipeline) finish(ctx context.Context, name string, j *job) {
	j.state = StateDone
	j.remaining = nil
	p.clearInProgress(ctx, name)
	p.publisher.Publish(ctx, events.StickerSetReady{Name: name})
}

func (p *Pipeline) fail(ctx context.Context, name string, j *job, reason string) {
	p.logger.Warn("Sticker set failed", "name", name, "reason", reason)
	j.state = StateFailed
	j.reason = reason
	j.remaining = nil
	p.clearInProgress(ctx, name)
	p.publisher.Publish(ctx, events.StickerSetFailed{Name: name, Reason: reason})
}

func (p *Pipeline) markInProgress(ctx context.Context, name string) {
	if p.state == nil {
		return
	}
	if err := p.state.MarkStickerSetInProgress(ctx, name); err != nil {
		p.logger.Error("Failed to persist sticker set state", "name", name, "error", err)
	}
}

func (p *Pipeline) clearInProgress(ctx context.Context, name string) {
	if p.state == nil {
		return
	}
	if err := p.state.ClearStickerSetInProgress(ctx, name); err != nil {
		p.logger.Error("Failed to clear sticker set state", "name", name, "error", err)
	}
}

// State текущее состояние сборки
func (p *Pipeline) State(name string) State {
	if j, ok := p.jobs[name]; ok {
		return j.state
	}
	return StateNone
}

// FailureReason причина отказа для набора в состоянии Failed
func (p *Pipeline) FailureReason(name string) string {
	if j, ok := p.jobs[name]; ok {
		return j.reason
	}
	return ""
}

// Remaining число файлов, которые сборка еще ждет
func (p *Pipeline) Remaining(name string) int {
	if j, ok := p.jobs[name]; ok {
		return len(j.remaining)
	}
	return 0
}

// InProgress сообщает, что сборка набора идет
func (p *Pipeline) InProgress(name string) bool {
	return p.State(name).Active()
}

// Busy сообщает, что хотя бы одна сборка идет
func (p *Pipeline) Busy() bool {
	for _, j := range p.jobs {
		if j.state.Active() {
			return true
		}
	}
	return p.info.Busy()
}

// ArchivePath путь к архиву набора
func (p *Pipeline) ArchivePath(name string) string {
	return filepath.Join(p.dir, name+".zip")
}

// ArchiveExists сообщает, что архив набора уже собран
func (p *Pipeline) ArchiveExists(name string) bool {
	info, err := os.Stat(p.ArchivePath(name))
	return err == nil && info.Mode().IsRegular()
}
