// Package delay runs work after a fixed delay, bound to a context so the work
// is dropped once its consumer is gone.
package delay

import (
	"context"
	"sync"
	"time"
)

// Task is a delayed computation. The function runs at most once, and never
// after the task has been canceled.
type Task[T any] struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once

	result T
	err    error
}

// Start schedules fn to run after d. Canceling ctx or calling Cancel before
// the delay elapses stops the task without running fn.
func Start[T any](ctx context.Context, d time.Duration, fn func(ctx context.Context) (T, error)) *Task[T] {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task[T]{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(t.done)
		defer cancel()
		t.result, t.err = Run(ctx, d, fn)
	}()

	return t
}

// Cancel stops the task. It is safe to call more than once.
func (t *Task[T]) Cancel() {
	t.once.Do(t.cancel)
}

// Done is closed once the task has finished or been canceled.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes or ctx ends. A ctx ending here does
// not cancel the task; call Cancel for that.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.result, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Run waits d and then calls fn on the caller's goroutine. If ctx ends first,
// fn is not called and ctx.Err() is returned.
func Run[T any](ctx context.Context, d time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if d > 0 {
		timer := time.NewTimer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	if err := ctx.Err(); err != nil {
		return zero, err
	}
	return fn(ctx)
}
