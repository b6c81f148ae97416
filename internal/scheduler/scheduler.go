package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// ErrNotRunning возвращается Call, если цикл не запущен или уже остановлен
var ErrNotRunning = errors.New("scheduler is not running")

// Work выполняется вне цикла (сетевой вызов) и возвращает продолжение,
// которое будет выполнено в цикле. nil продолжение допустимо.
type Work func(ctx context.Context) func(ctx context.Context)

// Executor запускает асинхронную работу с продолжением в цикле событий
type Executor interface {
	Go(name string, work Work)
}

// Task периодическая задача
type Task struct {
	Run      func(ctx context.Context)
	Name     string
	Interval time.Duration
}

// Scheduler единственный цикл обработки: все тела задач, продолжения
// асинхронной работы и публичные вызовы выполняются в одной горутине
type Scheduler struct {
	logger  *slog.Logger
	notify  chan struct{}
	done    chan struct{}
	runID   string
	tasks   []Task
	queue   []func(ctx context.Context)
	pending atomic.Int64
	mu      sync.Mutex
	running atomic.Bool
}

// New создает планировщик
func New(logger *slog.Logger) *Scheduler {
	runID := uuid.NewString()
	return &Scheduler{
		logger: logger.With("run_id", runID),
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
		runID:  runID,
	}
}

// Every регистрирует периодическую задачу. Вызывать до Run.
// Следующий запуск планируется после завершения текущего, каким бы ни был результат.
func (s *Scheduler) Every(name string, interval time.Duration, run func(ctx context.Context)) {
	s.tasks = append(s.tasks, Task{Name: name, Interval: interval, Run: run})
}

// Post ставит функцию в очередь цикла. Безопасно из любой горутины.
func (s *Scheduler) Post(fn func(ctx context.Context)) {
	s.mu.Lock()
	s.queue = append(s.queue, fn)
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Go выполняет work в отдельной горутине, продолжение публикуется в цикл
func (s *Scheduler) Go(name string, work Work) {
	s.pending.Add(1)
	go func() {
		var cont func(ctx context.Context)
		func() {
			defer s.recoverPanic(name)
			cont = work(context.Background())
		}()
		s.Post(func(ctx context.Context) {
			defer s.pending.Add(-1)
			if cont != nil {
				cont(ctx)
			}
		})
	}()
}

// Call выполняет fn в цикле и ждет результата.
// Нельзя вызывать из самого цикла.
func (s *Scheduler) Call(ctx context.Context, fn func(ctx context.Context) error) error {
	if !s.running.Load() {
		return ErrNotRunning
	}

	result := make(chan error, 1)
	s.Post(func(ctx context.Context) {
		var err error
		func() {
			defer s.recoverPanic("call")
			err = fn(ctx)
		}()
		result <- err
	})

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrNotRunning
	}
}

// Pending возвращает число асинхронных работ, продолжение которых еще не выполнено
func (s *Scheduler) Pending() int {
	return int(s.pending.Load())
}

// Running сообщает, запущен ли цикл
func (s *Scheduler) Running() bool {
	return s.running.Load()
}

// Run крутит цикл до отмены ctx
func (s *Scheduler) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return errors.New("scheduler already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.done)
	}()

	s.logger.Info("Scheduler started", "tasks", len(s.tasks))

	var wg sync.WaitGroup
	tickCtx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		wg.Wait()
	}()

	for _, task := range s.tasks {
		wg.Add(1)
		go func(task Task) {
			defer wg.Done()
			s.tick(tickCtx, task)
		}(task)
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler stopped")
			return nil
		case <-s.notify:
			s.drain(ctx)
		}
	}
}

// tick публикует тело задачи в цикл и ждет его завершения перед новым ожиданием
func (s *Scheduler) tick(ctx context.Context, task Task) {
	timer := time.NewTimer(task.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		finished := make(chan struct{})
		s.Post(func(ctx context.Context) {
			defer close(finished)
			defer s.recoverPanic(task.Name)
			task.Run(ctx)
		})

		select {
		case <-ctx.Done():
			return
		case <-finished:
		}
		timer.Reset(task.Interval)
	}
}

func (s *Scheduler) drain(ctx context.Context) {
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return
		}
		fn := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		func() {
			defer s.recoverPanic("posted")
			fn(ctx)
		}()
	}
}

// recoverPanic логирует панику со стеком, цикл продолжает работу
func (s *Scheduler) recoverPanic(name string) {
	if err := recover(); err != nil {
		s.logger.Error("Panic recovered",
			"task", name,
			"error", err,
			"stack", string(debug.Stack()),
		)
	}
}

// RunID идентификатор запуска процесса в логах
func (s *Scheduler) RunID() string {
	return s.runID
}
