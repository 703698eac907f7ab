// Package async runs error-returning functions in the background and hands
// back a future for their result.
//
//	check := async.Exec(ctx, transport, func(ctx context.Context, v email.Verifier) error {
//		return v.Verify(ctx)
//	})
//
//	// later, or never
//	if err := check.AwaitWithTimeout(time.Second); errors.Is(err, async.ErrTimeout) {
//		// still running
//	}
//
// Callers are free to drop a future without awaiting it. The goroutine still
// finishes and any panic inside it is recovered into ErrPanic.
package async
