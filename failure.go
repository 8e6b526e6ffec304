package awaitest

import (
	"errors"
	"fmt"
)

var (
	// ErrNilHandle is captured when a producer returns a nil async handle,
	// which is treated as a synchronous producer error.
	ErrNilHandle = errors.New(`awaitest: producer returned a nil async handle`)

	// ErrNilFailure is captured in place of a nil error passed to a failure
	// resolution, e.g. Barrier.Fail or Promise.Reject.
	ErrNilFailure = errors.New(`awaitest: failure with a nil error`)

	// ErrGoexit is captured when a function run via Go or GoCompletable
	// exits via runtime.Goexit, rather than hanging the subscriber.
	ErrGoexit = errors.New(`awaitest: goroutine exited via runtime.Goexit`)
)

// FailureKind categorizes a captured [Failure]. Exactly one kind applies per
// run - the categories are mutually exclusive by construction.
type FailureKind int32

const (
	// FailureProducer indicates the producer itself errored, panicked, or
	// returned a nil handle, synchronously, before any subscription existed.
	FailureProducer FailureKind = iota

	// FailureSource indicates the subscribed async handle delivered an error
	// terminal.
	FailureSource

	// FailureVerify indicates the verifier errored or panicked when given a
	// successfully produced value.
	FailureVerify
)

// String returns the string representation of the failure kind.
func (x FailureKind) String() string {
	switch x {
	case FailureProducer:
		return `producer`
	case FailureSource:
		return `source`
	case FailureVerify:
		return `verify`
	default:
		return fmt.Sprintf(`unknown(%d)`, int32(x))
	}
}

// Failure is a captured error, pairing the underlying cause with the
// [FailureKind] identifying where in the run it occurred. It is the error
// surfaced to the testing.TB by [TestSingle] and [TestCompletable] for every
// non-timeout failure.
type Failure struct {
	// Err is the underlying cause, always non-nil.
	Err error

	// Kind identifies where the failure occurred.
	Kind FailureKind
}

func (x *Failure) Error() string {
	return fmt.Sprintf(`awaitest: %s failure: %v`, x.Kind, x.Err)
}

func (x *Failure) Unwrap() error {
	return x.Err
}

// PanicError wraps a recovered panic value.
type PanicError struct {
	Value any
}

func (x PanicError) Error() string {
	return fmt.Sprintf(`awaitest: recovered from panic: %v`, x.Value)
}
