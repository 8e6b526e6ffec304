package awaitest

import (
	"context"
)

// Go runs fn in a new goroutine, returning a [Single] representing its
// eventual result. It ensures the handle always terminates:
//
//   - A panic in fn rejects with a [PanicError].
//   - An exit via runtime.Goexit rejects with [ErrGoexit], rather than
//     leaving subscribers hanging.
//   - A ctx canceled before fn starts rejects with the context error,
//     without calling fn. Cancellation during fn is fn's own concern, via
//     the propagated ctx.
//
// Providing a nil ctx or fn will cause a panic.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) Single[T] {
	if ctx == nil {
		panic(`awaitest: nil context`)
	}
	if fn == nil {
		panic(`awaitest: nil function`)
	}

	promise := NewPromise[T]()

	go func() {
		// distinguishes normal return from Goexit
		completed := false

		defer func() {
			if r := recover(); r != nil {
				promise.Reject(PanicError{Value: r})
			} else if !completed {
				promise.Reject(ErrGoexit)
			}
		}()

		select {
		case <-ctx.Done():
			completed = true
			promise.Reject(ctx.Err())
			return
		default:
		}

		val, err := fn(ctx)
		if err != nil {
			promise.Reject(err)
		} else {
			promise.Resolve(val)
		}
		completed = true
	}()

	return promise
}

// GoCompletable runs fn in a new goroutine, returning a [Completable]
// representing its eventual completion. See [Go] for the termination
// guarantees.
//
// Providing a nil ctx or fn will cause a panic.
func GoCompletable(ctx context.Context, fn func(ctx context.Context) error) Completable {
	if ctx == nil {
		panic(`awaitest: nil context`)
	}
	if fn == nil {
		panic(`awaitest: nil function`)
	}

	completion := NewCompletion()

	go func() {
		completed := false

		defer func() {
			if r := recover(); r != nil {
				completion.Fail(PanicError{Value: r})
			} else if !completed {
				completion.Fail(ErrGoexit)
			}
		}()

		select {
		case <-ctx.Done():
			completed = true
			completion.Fail(ctx.Err())
			return
		default:
		}

		if err := fn(ctx); err != nil {
			completion.Fail(err)
		} else {
			completion.Complete()
		}
		completed = true
	}()

	return completion
}
