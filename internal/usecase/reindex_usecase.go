package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"taxonomy-indexer/internal/infrastructure/cache"
	"taxonomy-indexer/internal/pipeline"
	"taxonomy-indexer/internal/pkg/logging"

	"github.com/google/uuid"
)

const (
	StateRunning   = "running"
	StateSucceeded = "succeeded"
	StateFailed    = "failed"
)

const (
	reindexLockKey   = "reindex:lock"
	reindexStatusKey = "reindex:status"

	// A run that outlives the lock TTL has almost certainly crashed; letting
	// the lock expire keeps a wedged instance from blocking reindexes forever.
	reindexLockTTL = 30 * time.Minute

	reindexStatusTTL = 24 * time.Hour
)

var (
	ErrReindexInProgress = errors.New("reindex already in progress")
	ErrNoRunsYet         = errors.New("no reindex runs recorded")
)

type RunStatus struct {
	RunID       string     `json:"run_id"`
	State       string     `json:"state"`
	StartedAt   time.Time  `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
	JobsIndexed int        `json:"jobs_indexed"`
	Pages       int        `json:"pages"`
	Error       string     `json:"error,omitempty"`
}

// ReindexRunner is the pipeline seam; satisfied by *pipeline.ReindexPipeline.
type ReindexRunner interface {
	Run(ctx context.Context) (pipeline.Summary, error)
}

type ReindexUsecase interface {
	Trigger(ctx context.Context) (RunStatus, error)
	Status(ctx context.Context) (RunStatus, error)
}

// Reindexer serializes pipeline runs. The atomic flag guards this process;
// the cache lock extends the guard across instances when a cache is present.
type Reindexer struct {
	runner ReindexRunner
	cache  *cache.Redis
	log    *logging.Logger

	running atomic.Bool

	mu   sync.RWMutex
	last *RunStatus
}

func NewReindexer(runner ReindexRunner, redis *cache.Redis, log *logging.Logger) *Reindexer {
	if log == nil {
		log = logging.NewNop()
	}
	return &Reindexer{runner: runner, cache: redis, log: log}
}

func (u *Reindexer) Trigger(ctx context.Context) (RunStatus, error) {
	if !u.running.CompareAndSwap(false, true) {
		return RunStatus{}, ErrReindexInProgress
	}

	runID := uuid.NewString()

	ok, err := u.cache.SetIfNotExists(ctx, reindexLockKey, runID, reindexLockTTL)
	if err != nil {
		u.log.Warn("reindex lock unavailable, proceeding with local guard only", "error", err)
	} else if !ok && u.cache.Available() {
		u.running.Store(false)
		return RunStatus{}, ErrReindexInProgress
	}

	status := RunStatus{RunID: runID, State: StateRunning, StartedAt: time.Now().UTC()}
	u.setStatus(ctx, status)
	u.log.Info("reindex triggered", "run_id", runID)

	// The run must not die with the request: detach from the request context.
	go u.run(context.Background(), status)

	return status, nil
}

func (u *Reindexer) run(ctx context.Context, status RunStatus) {
	defer func() {
		_ = u.cache.Delete(ctx, reindexLockKey)
		u.running.Store(false)
	}()

	sum, err := u.runner.Run(ctx)

	finished := time.Now().UTC()
	status.FinishedAt = &finished
	if err != nil {
		status.State = StateFailed
		status.Error = err.Error()
		u.log.Error("reindex failed", "run_id", status.RunID, "error", err)
	} else {
		status.State = StateSucceeded
		status.JobsIndexed = sum.JobsIndexed
		status.Pages = sum.Pages
		u.log.Info("reindex succeeded", "run_id", status.RunID, "jobs_indexed", sum.JobsIndexed, "pages", sum.Pages)
	}

	u.setStatus(ctx, status)
}

func (u *Reindexer) Status(ctx context.Context) (RunStatus, error) {
	u.mu.RLock()
	last := u.last
	u.mu.RUnlock()
	if last != nil {
		return *last, nil
	}

	// Another instance may have run; the cached status is the shared record.
	var cached RunStatus
	found, err := u.cache.GetJSON(ctx, reindexStatusKey, &cached)
	if err == nil && found {
		return cached, nil
	}

	return RunStatus{}, ErrNoRunsYet
}

func (u *Reindexer) setStatus(ctx context.Context, status RunStatus) {
	u.mu.Lock()
	s := status
	u.last = &s
	u.mu.Unlock()

	if err := u.cache.SetJSON(ctx, reindexStatusKey, status, reindexStatusTTL); err != nil {
		u.log.Warn("failed to cache reindex status", "run_id", status.RunID, "error", err)
	}
}
