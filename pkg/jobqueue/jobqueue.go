package jobqueue

import (
	"context"
	"sync"
	"time"

	apperrors "restaurant-system/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State - состояние жизненного цикла задачи, как его видят внешние опросчики.
type State string

const (
	StateQueued     State = "queued"
	StateProcessing State = "processing"
	StateFinished   State = "finished"
	StateFailed     State = "failed"
)

// Handler обрабатывает одну задачу. Возврат ошибки (или паника) переводит
// задачу в состояние failed; логическая неудача импорта - это finished,
// ее результат лежит в кеше результатов.
type Handler func(ctx context.Context, jobID string, payload interface{}) error

type task struct {
	id      string
	jobType string
	payload interface{}
}

// Queue - очередь задач внутри процесса: Enqueue возвращает идентификатор
// синхронно, выполнение происходит в воркерах. Каждую задачу берет ровно
// один воркер.
type Queue struct {
	handlers map[string]Handler
	states   map[string]State
	tasks    chan task
	mu       sync.RWMutex
	wg       sync.WaitGroup
	logger   *zap.Logger
	timeout  time.Duration

	// retention - сколько хранить состояние завершенной задачи. Совпадает с
	// временем жизни результата в кеше: после него опрос статуса все равно
	// не найдет результат.
	retention time.Duration
}

func New(logger *zap.Logger, buffer int) *Queue {
	return &Queue{
		handlers:  make(map[string]Handler),
		states:    make(map[string]State),
		tasks:     make(chan task, buffer),
		logger:    logger,
		timeout:   time.Hour,
		retention: time.Hour,
	}
}

// RegisterHandler регистрирует обработчик для типа задачи.
func (q *Queue) RegisterHandler(jobType string, handler Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers[jobType] = handler
}

// Start запускает воркеры.
func (q *Queue) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
}

// Enqueue ставит задачу в очередь и синхронно возвращает ее идентификатор.
func (q *Queue) Enqueue(jobType string, payload interface{}) (string, error) {
	q.mu.Lock()
	if _, ok := q.handlers[jobType]; !ok {
		q.mu.Unlock()
		return "", apperrors.NewHttpError(500, "неизвестный тип задачи: "+jobType, nil, nil)
	}
	id := uuid.New().String()
	q.states[id] = StateQueued
	q.mu.Unlock()

	q.tasks <- task{id: id, jobType: jobType, payload: payload}
	return id, nil
}

// Status возвращает текущее состояние задачи.
func (q *Queue) Status(jobID string) (State, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	state, ok := q.states[jobID]
	if !ok {
		return "", apperrors.ErrJobNotFound
	}
	return state, nil
}

// Shutdown закрывает очередь и ждет завершения текущих задач.
func (q *Queue) Shutdown() {
	close(q.tasks)
	q.wg.Wait()
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for t := range q.tasks {
		q.run(t)
	}
}

func (q *Queue) run(t task) {
	q.setState(t.id, StateProcessing)

	q.mu.RLock()
	handler := q.handlers[t.jobType]
	q.mu.RUnlock()

	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	defer func() {
		if p := recover(); p != nil {
			q.logger.Error("паника в обработчике задачи",
				zap.String("job_id", t.id),
				zap.String("job_type", t.jobType),
				zap.Any("panic", p),
			)
			q.setState(t.id, StateFailed)
		}
	}()

	if err := handler(ctx, t.id, t.payload); err != nil {
		q.logger.Error("задача завершилась с ошибкой",
			zap.String("job_id", t.id),
			zap.String("job_type", t.jobType),
			zap.Error(err),
		)
		q.setState(t.id, StateFailed)
		return
	}

	q.setState(t.id, StateFinished)
}

func (q *Queue) setState(jobID string, state State) {
	q.mu.Lock()
	q.states[jobID] = state
	q.mu.Unlock()

	// Терминальные состояния выселяются по истечении retention, иначе
	// реестр задач растет без ограничений на все время жизни процесса.
	if state == StateFinished || state == StateFailed {
		time.AfterFunc(q.retention, func() {
			q.mu.Lock()
			delete(q.states, jobID)
			q.mu.Unlock()
		})
	}
}
