package awaitest

import (
	"fmt"
	"time"

	"github.com/joeycumines/logiface"
)

// DefaultTimeout is the timeout applied by [TestSingle] and
// [TestCompletable] unless overridden via [WithTimeout].
const DefaultTimeout = 60 * time.Second

// runOptions holds per-run configuration for TestSingle and TestCompletable.
type runOptions struct {
	logger  *logiface.Logger[logiface.Event]
	timeout time.Duration
}

// Option configures a single TestSingle or TestCompletable run.
type Option interface {
	applyRun(*runOptions) error
}

// optionImpl implements Option.
type optionImpl struct {
	applyRunFunc func(*runOptions) error
}

func (x *optionImpl) applyRun(opts *runOptions) error {
	return x.applyRunFunc(opts)
}

// WithTimeout overrides [DefaultTimeout] for a single run. The timeout
// bounds the blocking wait for the terminal outcome, and does not cancel the
// underlying producer. A non-positive timeout is an error, reported against
// the run's testing.TB.
func WithTimeout(timeout time.Duration) Option {
	return &optionImpl{func(opts *runOptions) error {
		if timeout <= 0 {
			return fmt.Errorf(`awaitest: timeout must be positive, got %s`, timeout)
		}
		opts.timeout = timeout
		return nil
	}}
}

// WithLogger attaches a logger to a run, receiving debug events for
// subscription and resolution, and a warning on timeout. A nil logger is
// equivalent to the default, no logging.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &optionImpl{func(opts *runOptions) error {
		opts.logger = logger
		return nil
	}}
}

// resolveRunOptions applies Option instances to runOptions.
func resolveRunOptions(opts []Option) (*runOptions, error) {
	cfg := &runOptions{
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		if opt == nil {
			continue // skip nil options gracefully
		}
		if err := opt.applyRun(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
