package awaitest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestSingle runs producer, subscribes to the returned [Single], and blocks
// until a terminal outcome arrives or the timeout elapses, reporting the
// result against t. On a value terminal the verifier is run, with a returned
// error (or panic) captured as a [FailureVerify] failure. An error terminal
// is captured as [FailureSource], and a synchronous producer error, panic,
// or nil handle is captured as [FailureProducer], without subscribing.
//
// Exactly one outcome is reported per call: returning normally reports
// success, a captured [Failure] fails t with that error, and an unresolved
// wait fails t with a distinct timeout failure, which does not cancel the
// underlying operation.
//
// The verifier must report problems via its returned error, not by failing
// t directly - terminal callbacks may run off the test goroutine, where
// FailNow and friends misbehave.
//
// Providing a nil t, producer, or verifier will cause a panic.
func TestSingle[T any](t testing.TB, producer func() (Single[T], error), verifier func(T) error, opts ...Option) {
	if t == nil {
		panic(`awaitest: nil testing.TB`)
	}
	t.Helper()
	if producer == nil {
		panic(`awaitest: nil producer`)
	}
	if verifier == nil {
		panic(`awaitest: nil verifier`)
	}

	cfg, err := resolveRunOptions(opts)
	require.NoError(t, err)

	start := time.Now()
	barrier := NewBarrier()
	subscribeSingle(barrier, producer, verifier)
	cfg.logger.Debug().
		Dur(`timeout`, cfg.timeout).
		Log(`awaiting single-value async operation`)
	finish(t, cfg, barrier, start)
}

// TestCompletable is the completion-only counterpart of [TestSingle]. The
// producer returns a [Completable], and no verifier exists, there being no
// value to verify - a completion terminal reports success directly.
//
// Providing a nil t or producer will cause a panic.
func TestCompletable(t testing.TB, producer func() (Completable, error), opts ...Option) {
	if t == nil {
		panic(`awaitest: nil testing.TB`)
	}
	t.Helper()
	if producer == nil {
		panic(`awaitest: nil producer`)
	}

	cfg, err := resolveRunOptions(opts)
	require.NoError(t, err)

	start := time.Now()
	barrier := NewBarrier()
	subscribeCompletable(barrier, producer)
	cfg.logger.Debug().
		Dur(`timeout`, cfg.timeout).
		Log(`awaiting completion-only async operation`)
	finish(t, cfg, barrier, start)
}

func subscribeSingle[T any](barrier *Barrier, producer func() (Single[T], error), verifier func(T) error) {
	defer func() {
		if r := recover(); r != nil {
			barrier.Fail(&Failure{Kind: FailureProducer, Err: PanicError{Value: r}})
		}
	}()
	source, err := producer()
	if err != nil {
		barrier.Fail(&Failure{Kind: FailureProducer, Err: err})
		return
	}
	if source == nil {
		barrier.Fail(&Failure{Kind: FailureProducer, Err: ErrNilHandle})
		return
	}
	source.Subscribe(func(val T) {
		if err := verify(verifier, val); err != nil {
			barrier.Fail(&Failure{Kind: FailureVerify, Err: err})
		} else {
			barrier.Succeed()
		}
	}, func(err error) {
		barrier.Fail(&Failure{Kind: FailureSource, Err: err})
	})
}

func subscribeCompletable(barrier *Barrier, producer func() (Completable, error)) {
	defer func() {
		if r := recover(); r != nil {
			barrier.Fail(&Failure{Kind: FailureProducer, Err: PanicError{Value: r}})
		}
	}()
	source, err := producer()
	if err != nil {
		barrier.Fail(&Failure{Kind: FailureProducer, Err: err})
		return
	}
	if source == nil {
		barrier.Fail(&Failure{Kind: FailureProducer, Err: ErrNilHandle})
		return
	}
	source.Subscribe(func() {
		barrier.Succeed()
	}, func(err error) {
		barrier.Fail(&Failure{Kind: FailureSource, Err: err})
	})
}

// verify runs the verifier, converting a panic into an error.
func verify[T any](verifier func(T) error, val T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = PanicError{Value: r}
		}
	}()
	return verifier(val)
}

// finish blocks on the barrier then reports the outcome against t.
func finish(t testing.TB, cfg *runOptions, barrier *Barrier, start time.Time) {
	t.Helper()

	if !barrier.Await(cfg.timeout) {
		cfg.logger.Warning().
			Dur(`timeout`, cfg.timeout).
			Log(`await expired before the async operation terminated`)
		require.Failf(t, `async operation did not complete within the allotted time`, `timeout %s`, cfg.timeout)
		return
	}

	elapsed := time.Since(start)
	if err := barrier.Err(); err != nil {
		cfg.logger.Debug().
			Err(err).
			Dur(`elapsed`, elapsed).
			Log(`async operation failed`)
		require.NoError(t, err)
		return
	}

	cfg.logger.Debug().
		Dur(`elapsed`, elapsed).
		Log(`async operation succeeded`)
}
