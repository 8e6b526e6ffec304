package awaitest

import (
	"strings"
	"testing"
	"time"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Uses a real structured logging backend, to sanity check the field
// plumbing, rather than just the event levels.
func TestTestSingle_stumpyLoggerOutput(t *testing.T) {
	var lines []string
	logger := stumpy.L.New(
		stumpy.L.WithLevel(logiface.LevelDebug),
		stumpy.L.WithStumpy(stumpy.WithTimeField(``)),
		stumpy.L.WithWriter(logiface.WriterFunc[*stumpy.Event](func(event *stumpy.Event) error {
			lines = append(lines, string(event.Bytes()))
			return nil
		})),
	).Logger()

	tb := newRecordingTB(t)
	tb.run(func() {
		TestSingle[string](tb, func() (Single[string], error) {
			return NewPromise[string](), nil // never settles
		}, func(val string) error {
			return nil
		}, WithTimeout(50*time.Millisecond), WithLogger(logger))
	})
	if !tb.Failed() {
		t.Fatal(`expected reported failure`)
	}

	output := strings.Join(lines, "\n")
	if !strings.Contains(output, `"lvl":"warning"`) {
		t.Errorf(`expected a warning event, got: %s`, output)
	}
	if !strings.Contains(output, `await expired before the async operation terminated`) {
		t.Errorf(`expected the timeout message, got: %s`, output)
	}
	if !strings.Contains(output, `"timeout":`) {
		t.Errorf(`expected a timeout field, got: %s`, output)
	}
}

func TestTestSingle_stumpyLoggerSuccess(t *testing.T) {
	var lines []string
	logger := stumpy.L.New(
		stumpy.L.WithLevel(logiface.LevelDebug),
		stumpy.L.WithStumpy(stumpy.WithTimeField(``)),
		stumpy.L.WithWriter(logiface.WriterFunc[*stumpy.Event](func(event *stumpy.Event) error {
			lines = append(lines, string(event.Bytes()))
			return nil
		})),
	).Logger()

	TestSingle(t, func() (Single[string], error) {
		promise := NewPromise[string]()
		promise.Resolve(`ok`)
		return promise, nil
	}, func(val string) error {
		return nil
	}, WithLogger(logger))

	output := strings.Join(lines, "\n")
	if !strings.Contains(output, `async operation succeeded`) {
		t.Errorf(`expected the success message, got: %s`, output)
	}
	if !strings.Contains(output, `"elapsed":`) {
		t.Errorf(`expected an elapsed field, got: %s`, output)
	}
}
