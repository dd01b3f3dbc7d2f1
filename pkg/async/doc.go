// Package async runs a function in its own goroutine and hands back a
// Future for its result.
//
//	f := async.Go(ctx, func(ctx context.Context) ([]byte, error) {
//	    return render(ctx)
//	})
//	data, err := f.Await()
//
// A context that is already cancelled resolves the future with ctx.Err()
// and never calls the function. Panics resolve it with an error wrapping
// ErrPanic. AwaitWithTimeout gives up waiting with ErrTimeout but leaves
// the task running. WaitAll collects several futures in order and stops
// at the first error.
package async
