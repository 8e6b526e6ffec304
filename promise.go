package awaitest

import (
	"sync"
)

// Promise is a settable [Single], for producers that deliver their value
// in-process. It settles at most once - the first of Resolve or Reject wins,
// and any later settlement is a no-op. Subscribers registered before
// settlement are invoked on the settling goroutine, and subscribers
// registered after settlement are invoked synchronously, on the subscribing
// goroutine.
//
// The zero value is ready to use.
type Promise[T any] struct {
	val       T
	err       error
	onSuccess []func(T)
	onError   []func(error)
	state     State
	mu        sync.Mutex
}

// NewPromise initializes a new, unsettled Promise.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{}
}

// Resolve settles the promise with a value, delivering it to any success
// subscribers. It returns true if this call performed the settlement, or
// false if the promise was already settled, in which case it is a no-op.
func (x *Promise[T]) Resolve(val T) bool {
	x.mu.Lock()
	if x.state != StatePending {
		x.mu.Unlock()
		return false
	}
	x.state = StateSucceeded
	x.val = val
	subscribers := x.onSuccess
	x.onSuccess, x.onError = nil, nil
	x.mu.Unlock()
	// deliver outside the lock - subscribers may re-enter
	for _, fn := range subscribers {
		fn(val)
	}
	return true
}

// Reject settles the promise with an error, delivering it to any error
// subscribers. It returns true if this call performed the settlement, or
// false if the promise was already settled, in which case it is a no-op.
// A nil err is normalized to [ErrNilFailure].
func (x *Promise[T]) Reject(err error) bool {
	if err == nil {
		err = ErrNilFailure
	}
	x.mu.Lock()
	if x.state != StatePending {
		x.mu.Unlock()
		return false
	}
	x.state = StateFailed
	x.err = err
	subscribers := x.onError
	x.onSuccess, x.onError = nil, nil
	x.mu.Unlock()
	for _, fn := range subscribers {
		fn(err)
	}
	return true
}

// State returns the current [State] of the promise.
func (x *Promise[T]) State() State {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.state
}

// Subscribe implements [Single].
func (x *Promise[T]) Subscribe(onSuccess func(T), onError func(error)) {
	x.mu.Lock()
	switch x.state {
	case StatePending:
		if onSuccess != nil {
			x.onSuccess = append(x.onSuccess, onSuccess)
		}
		if onError != nil {
			x.onError = append(x.onError, onError)
		}
		x.mu.Unlock()
	case StateSucceeded:
		val := x.val
		x.mu.Unlock()
		if onSuccess != nil {
			onSuccess(val)
		}
	default:
		err := x.err
		x.mu.Unlock()
		if onError != nil {
			onError(err)
		}
	}
}

// Completion is a settable [Completable], the payload-free counterpart of
// [Promise]. The zero value is ready to use.
type Completion struct {
	promise Promise[struct{}]
}

// NewCompletion initializes a new, unsettled Completion.
func NewCompletion() *Completion {
	return &Completion{}
}

// Complete settles the completion as successful, see [Promise.Resolve].
func (x *Completion) Complete() bool {
	return x.promise.Resolve(struct{}{})
}

// Fail settles the completion with an error, see [Promise.Reject].
func (x *Completion) Fail(err error) bool {
	return x.promise.Reject(err)
}

// State returns the current [State] of the completion.
func (x *Completion) State() State {
	return x.promise.State()
}

// Subscribe implements [Completable].
func (x *Completion) Subscribe(onComplete func(), onError func(error)) {
	var onSuccess func(struct{})
	if onComplete != nil {
		onSuccess = func(struct{}) { onComplete() }
	}
	x.promise.Subscribe(onSuccess, onError)
}
