package awaitest

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// State represents the lifecycle state of a [Barrier]. A barrier starts in
// [StatePending] and transitions at most once, to either [StateSucceeded] or
// [StateFailed]. A timeout is not a barrier state - it is reported by the
// boolean result of [Barrier.Await].
type State int32

const (
	// StatePending indicates the barrier has not yet been resolved.
	StatePending State = iota

	// StateSucceeded indicates the barrier was resolved via Succeed.
	StateSucceeded

	// StateFailed indicates the barrier was resolved via Fail, with the
	// captured error available via [Barrier.Err].
	StateFailed
)

// String returns the string representation of the state.
func (x State) String() string {
	switch x {
	case StatePending:
		return `pending`
	case StateSucceeded:
		return `succeeded`
	case StateFailed:
		return `failed`
	default:
		return fmt.Sprintf(`unknown(%d)`, int32(x))
	}
}

// Barrier is a one-shot completion barrier, accepting a single terminal
// outcome (success or failure) from any goroutine, and supporting a bounded
// blocking wait for that outcome. The first resolution wins, and any later
// resolution is a no-op, including under concurrent or re-entrant delivery.
//
// A barrier is intended to be consumed by a single waiter, typically the
// test goroutine, though the resolve methods may be called from anywhere,
// including the waiting goroutine itself.
//
// Instances must be initialized using the NewBarrier factory.
type Barrier struct {
	err   error
	done  chan struct{}
	state State
	mu    sync.Mutex
}

// NewBarrier initializes a new Barrier, in [StatePending].
func NewBarrier() *Barrier {
	return &Barrier{done: make(chan struct{})}
}

func (x *Barrier) resolve(state State, err error) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.state != StatePending {
		return false
	}
	x.state = state
	x.err = err
	close(x.done)
	return true
}

// Succeed resolves the barrier as successful, waking any waiter. It returns
// true if this call performed the resolution, or false if the barrier was
// already resolved, in which case it is a no-op.
func (x *Barrier) Succeed() bool {
	return x.resolve(StateSucceeded, nil)
}

// Fail resolves the barrier as failed, capturing err, and waking any waiter.
// It returns true if this call performed the resolution, or false if the
// barrier was already resolved, in which case it is a no-op. A nil err is
// normalized to [ErrNilFailure].
func (x *Barrier) Fail(err error) bool {
	if err == nil {
		err = ErrNilFailure
	}
	return x.resolve(StateFailed, err)
}

// Await blocks the calling goroutine until the barrier is resolved, or the
// timeout elapses, whichever comes first. It returns true if the barrier was
// resolved within the window, or false on timeout expiry with no resolution.
// It never surfaces the captured error itself - use [Barrier.State] and
// [Barrier.Err] after a true result.
//
// A non-positive timeout only succeeds if the barrier is already resolved.
// A timeout does not affect the barrier, which may still be resolved later,
// safely a no-op for any waiter that already gave up.
func (x *Barrier) Await(timeout time.Duration) bool {
	select {
	case <-x.done:
		return true
	default:
	}
	if timeout <= 0 {
		return false
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-x.done:
		return true
	case <-timer.C:
		return false
	}
}

// AwaitContext blocks until the barrier is resolved, returning nil, or ctx
// is canceled, returning the context error. Like [Barrier.Await], it never
// surfaces the captured error.
//
// Providing a nil ctx will cause a panic.
func (x *Barrier) AwaitContext(ctx context.Context) error {
	if ctx == nil {
		panic(`awaitest: nil context`)
	}
	// guard context cancel - consistent behavior (avoid racing a resolution)
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-x.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done returns a channel that is closed when the barrier is resolved, e.g.
// for select-based composition.
func (x *Barrier) Done() <-chan struct{} {
	return x.done
}

// State returns the current [State] of the barrier.
func (x *Barrier) State() State {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.state
}

// Err returns the captured error, which is non-nil if and only if the
// barrier is in [StateFailed].
func (x *Barrier) Err() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.err
}
