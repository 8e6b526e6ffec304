package awaitest

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recordingTB captures failures reported against it, so failure paths can be
// exercised without failing the enclosing test. Methods that would normally
// stop the test stop only the goroutine started by run, via runtime.Goexit.
type recordingTB struct {
	testing.TB
	entries []string
	mu      sync.Mutex
	failed  bool
}

func newRecordingTB(t *testing.T) *recordingTB {
	return &recordingTB{TB: t}
}

func (x *recordingTB) record(entry string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.failed = true
	x.entries = append(x.entries, entry)
}

func (x *recordingTB) Helper() {}

func (x *recordingTB) Errorf(format string, args ...any) {
	x.record(fmt.Sprintf(format, args...))
}

func (x *recordingTB) Error(args ...any) {
	x.record(fmt.Sprint(args...))
}

func (x *recordingTB) Fatalf(format string, args ...any) {
	x.record(fmt.Sprintf(format, args...))
	runtime.Goexit()
}

func (x *recordingTB) Fatal(args ...any) {
	x.record(fmt.Sprint(args...))
	runtime.Goexit()
}

func (x *recordingTB) Fail() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.failed = true
}

func (x *recordingTB) FailNow() {
	x.Fail()
	runtime.Goexit()
}

func (x *recordingTB) Failed() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.failed
}

func (x *recordingTB) failure() string {
	x.mu.Lock()
	defer x.mu.Unlock()
	return strings.Join(x.entries, "\n")
}

// run invokes fn on a new goroutine and waits for it, so FailNow-style
// methods can stop fn via runtime.Goexit without tearing down the caller.
func (x *recordingTB) run(fn func()) {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		fn()
	}()
	wg.Wait()
}
