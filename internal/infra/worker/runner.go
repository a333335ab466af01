// File: internal/infra/worker/runner.go
package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"telegram-unban-bot/internal/domain"

	"github.com/rs/zerolog"
)

// State tracks the runner's lifecycle. Transitions are one-way:
// Starting -> Initialized -> Running -> Stopped.
type State int32

const (
	StateStarting State = iota
	StateInitialized
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateInitialized:
		return "initialized"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// Task is one unit of work executed on the runner goroutine.
type Task func(ctx context.Context) error

type submission struct {
	task Task
	done chan error // buffered; completion is delivered even if nobody waits
}

// Runner is a single persistent goroutine that owns all interaction with the
// Telegram client. Work is handed to it over a bounded channel; at most one
// task is in flight at a time. There is exactly one Runner per process,
// constructed in main and passed by handle - no package globals.
type Runner struct {
	tasks   chan submission
	state   atomic.Int32
	stopped chan struct{}
	log     *zerolog.Logger
}

func NewRunner(queueSize int, logger *zerolog.Logger) *Runner {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Runner{
		tasks:   make(chan submission, queueSize),
		stopped: make(chan struct{}),
		log:     logger,
	}
}

// MarkInitialized records that the protocol handshake completed. Called once
// by the composition root between construction and Run.
func (r *Runner) MarkInitialized() {
	r.state.CompareAndSwap(int32(StateStarting), int32(StateInitialized))
}

func (r *Runner) State() State {
	return State(r.state.Load())
}

// Run executes tasks until ctx is cancelled. It must be called exactly once,
// on its own goroutine. Tasks in the queue when ctx is cancelled are not
// drained; the task presently executing finishes first.
func (r *Runner) Run(ctx context.Context) {
	r.state.Store(int32(StateRunning))
	defer func() {
		r.state.Store(int32(StateStopped))
		close(r.stopped)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case sub := <-r.tasks:
			err := r.runOne(ctx, sub.task)
			if err != nil {
				r.log.Error().Err(err).Msg("runner task failed")
			}
			sub.done <- err
		}
	}
}

func (r *Runner) runOne(ctx context.Context, task Task) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.New("task panicked")
			r.log.Error().Interface("panic", rec).Msg("runner task panicked")
		}
	}()
	return task(ctx)
}

// Submit enqueues a task without waiting for it.
func (r *Runner) Submit(task Task) error {
	if r.State() != StateRunning {
		return domain.ErrNotRunning
	}
	select {
	case r.tasks <- submission{task: task, done: make(chan error, 1)}:
		return nil
	default:
		return domain.ErrQueueFull
	}
}

// SubmitWait enqueues a task and waits for it to finish or for ctx to
// expire, whichever comes first. On expiry the task is NOT cancelled: it
// keeps running on the runner goroutine to completion, detached from the
// caller, and domain.ErrWaitTimeout is returned. Otherwise the task's own
// error is returned.
func (r *Runner) SubmitWait(ctx context.Context, task Task) error {
	if r.State() != StateRunning {
		return domain.ErrNotRunning
	}
	sub := submission{task: task, done: make(chan error, 1)}
	select {
	case r.tasks <- sub:
	default:
		return domain.ErrQueueFull
	}

	select {
	case err := <-sub.done:
		return err
	case <-ctx.Done():
		return domain.ErrWaitTimeout
	case <-r.stopped:
		return domain.ErrNotRunning
	}
}

// Stop waits up to timeout for the runner goroutine to exit after its
// context has been cancelled. Returns false if the wait expired; the caller
// exits anyway in that case.
func (r *Runner) Stop(timeout time.Duration) bool {
	select {
	case <-r.stopped:
		return true
	case <-time.After(timeout):
		return false
	}
}
