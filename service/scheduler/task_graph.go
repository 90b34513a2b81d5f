// ABOUTME: Generic dependency-aware task runner for sync pass stages
// ABOUTME: Tasks carry tags for group await/cancel and unique names for dedup

package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/semaphore"
)

// TaskState is the lifecycle state of one submitted task.
type TaskState string

const (
	TaskPending   TaskState = "PENDING"
	TaskRunning   TaskState = "RUNNING"
	TaskSucceeded TaskState = "SUCCEEDED"
	TaskFailed    TaskState = "FAILED"
	TaskCancelled TaskState = "CANCELLED"
	// TaskSkipped means a dependency did not succeed, so the task
	// never ran.
	TaskSkipped TaskState = "SKIPPED"
)

// IsTerminal reports whether the state is final.
func (s TaskState) IsTerminal() bool {
	switch s {
	case TaskSucceeded, TaskFailed, TaskCancelled, TaskSkipped:
		return true
	}
	return false
}

// TaskSpec describes one unit of work. DependsOn handles must come from
// the same runner. A non-empty UniqueName deduplicates submissions: as
// long as a task with that name is not terminal, resubmitting returns
// the existing handle (keep-existing policy).
type TaskSpec struct {
	Name       string
	UniqueName string
	Tags       []string
	DependsOn  []*TaskHandle
	Run        func(ctx context.Context) error
}

// TaskHandle tracks one submitted task.
type TaskHandle struct {
	name string
	tags []string
	deps []*TaskHandle

	cancel context.CancelFunc
	done   chan struct{}

	mu    sync.Mutex
	state TaskState
	err   error
}

// Name returns the task name.
func (h *TaskHandle) Name() string { return h.name }

// State returns the current task state.
func (h *TaskHandle) State() TaskState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Err returns the task error once the task is terminal.
func (h *TaskHandle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Done is closed when the task reaches a terminal state.
func (h *TaskHandle) Done() <-chan struct{} { return h.done }

func (h *TaskHandle) finish(state TaskState, err error) {
	h.mu.Lock()
	h.state = state
	h.err = err
	h.mu.Unlock()
	close(h.done)
}

func (h *TaskHandle) setRunning() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == TaskPending {
		h.state = TaskRunning
	}
}

func (h *TaskHandle) hasTag(tag string) bool {
	for _, t := range h.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// TaskGraphRunner executes tasks on a bounded worker pool, honoring
// declared dependencies. A task whose dependency ends in any state but
// success is skipped, never run.
type TaskGraphRunner struct {
	sem    *semaphore.Weighted
	logger *slog.Logger

	mu       sync.Mutex
	tasks    []*TaskHandle
	byUnique map[string]*TaskHandle
}

// NewTaskGraphRunner creates a runner with at most maxWorkers tasks
// executing concurrently.
func NewTaskGraphRunner(maxWorkers int64, logger *slog.Logger) *TaskGraphRunner {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskGraphRunner{
		sem:      semaphore.NewWeighted(maxWorkers),
		logger:   logger,
		byUnique: make(map[string]*TaskHandle),
	}
}

// Submit enqueues a task. The returned handle may belong to an earlier
// submission when the TaskSpec carries a UniqueName that is still in
// flight.
func (r *TaskGraphRunner) Submit(ctx context.Context, spec TaskSpec) *TaskHandle {
	r.mu.Lock()
	if spec.UniqueName != "" {
		if existing, ok := r.byUnique[spec.UniqueName]; ok && !existing.State().IsTerminal() {
			r.mu.Unlock()
			r.logger.Debug("Task submission deduplicated", "unique_name", spec.UniqueName)
			return existing
		}
	}

	taskCtx, cancel := context.WithCancel(ctx)
	handle := &TaskHandle{
		name:   spec.Name,
		tags:   append([]string(nil), spec.Tags...),
		deps:   append([]*TaskHandle(nil), spec.DependsOn...),
		cancel: cancel,
		done:   make(chan struct{}),
		state:  TaskPending,
	}
	r.tasks = append(r.tasks, handle)
	if spec.UniqueName != "" {
		r.byUnique[spec.UniqueName] = handle
	}
	r.mu.Unlock()

	go r.execute(taskCtx, handle, spec.Run)
	return handle
}

func (r *TaskGraphRunner) execute(ctx context.Context, handle *TaskHandle, run func(ctx context.Context) error) {
	defer handle.cancel()

	for _, dep := range handle.deps {
		select {
		case <-dep.Done():
			if dep.State() != TaskSucceeded {
				r.logger.Info("Skipping task, dependency did not succeed",
					"task", handle.name, "dependency", dep.Name(), "dependency_state", dep.State())
				handle.finish(TaskSkipped, fmt.Errorf("dependency %s ended %s", dep.Name(), dep.State()))
				return
			}
		case <-ctx.Done():
			handle.finish(TaskCancelled, ctx.Err())
			return
		}
	}

	if err := r.sem.Acquire(ctx, 1); err != nil {
		handle.finish(TaskCancelled, err)
		return
	}
	defer r.sem.Release(1)

	handle.setRunning()
	if ctx.Err() != nil {
		handle.finish(TaskCancelled, ctx.Err())
		return
	}

	err := run(ctx)
	switch {
	case err == nil:
		handle.finish(TaskSucceeded, nil)
	case ctx.Err() != nil:
		handle.finish(TaskCancelled, err)
	default:
		r.logger.Warn("Task failed", "task", handle.name, "error", err)
		handle.finish(TaskFailed, err)
	}
}

// AwaitAllTerminal blocks until every task submitted under any of the
// given tags is terminal, including tasks submitted while waiting. It
// returns the terminal handles, or the context error on early exit.
func (r *TaskGraphRunner) AwaitAllTerminal(ctx context.Context, tags ...string) ([]*TaskHandle, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pending := r.tasksByTags(tags, false)
		if len(pending) == 0 {
			return r.tasksByTags(tags, true), nil
		}
		for _, handle := range pending {
			select {
			case <-handle.Done():
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
}

// Cancel cancels, best effort, every non-terminal task under the given
// tags. Work already committed by finished tasks is untouched.
func (r *TaskGraphRunner) Cancel(tags ...string) {
	for _, handle := range r.tasksByTags(tags, false) {
		handle.cancel()
	}
}

// tasksByTags returns tasks matching any tag. With terminalOnly it
// returns only terminal ones, otherwise only non-terminal ones.
func (r *TaskGraphRunner) tasksByTags(tags []string, terminalOnly bool) []*TaskHandle {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*TaskHandle
	for _, handle := range r.tasks {
		match := false
		for _, tag := range tags {
			if handle.hasTag(tag) {
				match = true
				break
			}
		}
		if !match {
			continue
		}
		if handle.State().IsTerminal() == terminalOnly {
			matched = append(matched, handle)
		}
	}
	return matched
}

// Prune drops terminal tasks from the runner's bookkeeping. Long-lived
// runners call this between passes to keep the task list bounded.
func (r *TaskGraphRunner) Prune() {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.tasks[:0]
	for _, handle := range r.tasks {
		if !handle.State().IsTerminal() {
			kept = append(kept, handle)
		}
	}
	r.tasks = kept

	for name, handle := range r.byUnique {
		if handle.State().IsTerminal() {
			delete(r.byUnique, name)
		}
	}
}
