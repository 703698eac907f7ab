package async

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrTimeout = errors.New("async: timed out waiting for result")
	ErrPanic   = errors.New("async: function panicked")
)

// ExecFuture is the pending result of a function that only returns an error.
type ExecFuture struct {
	err  error
	done chan struct{}
}

// Await blocks until the function returns and yields its error.
func (f *ExecFuture) Await() error {
	<-f.done
	return f.err
}

// AwaitWithTimeout is Await bounded by timeout. It returns ErrTimeout when
// the function is still running; the function itself is not interrupted.
func (f *ExecFuture) AwaitWithTimeout(timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.err
	case <-timer.C:
		return ErrTimeout
	}
}

// Done is closed once the function has returned.
func (f *ExecFuture) Done() <-chan struct{} {
	return f.done
}

// IsComplete reports without blocking whether the function has returned.
func (f *ExecFuture) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Exec runs fn(ctx, param) in its own goroutine. A context that is already
// done short-circuits the call. A panic in fn is recovered and reported as
// ErrPanic so background work cannot take the process down.
func Exec[T any](ctx context.Context, param T, fn func(context.Context, T) error) *ExecFuture {
	f := &ExecFuture{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.err = fmt.Errorf("%w: %v", ErrPanic, r)
			}
		}()

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		f.err = fn(ctx, param)
	}()

	return f
}

// ExecAll waits for every future and returns the first error in argument order.
func ExecAll(futures ...*ExecFuture) error {
	var first error
	for _, future := range futures {
		if err := future.Await(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
