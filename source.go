package awaitest

type (
	// Single is a handle to an asynchronous operation that eventually
	// produces a single value, or fails. A well-behaved implementation
	// invokes exactly one of the terminal callbacks, exactly once, from any
	// goroutine. Misbehaving implementations are tolerated by the consumers
	// in this package, which discard all but the first terminal signal.
	Single[T any] interface {
		// Subscribe registers the terminal callbacks. If the operation has
		// already terminated, the relevant callback must be invoked
		// immediately. Either callback may be nil, disabling delivery of
		// that terminal.
		Subscribe(onSuccess func(T), onError func(error))
	}

	// Completable is a handle to an asynchronous operation that eventually
	// completes without a payload, or fails. See [Single] regarding terminal
	// callback semantics.
	Completable interface {
		// Subscribe registers the terminal callbacks, see
		// [Single.Subscribe].
		Subscribe(onComplete func(), onError func(error))
	}
)

var (
	_ Single[any] = (*Promise[any])(nil)
	_ Completable = (*Completion)(nil)
)
