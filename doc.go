// Package awaitest bridges asynchronous, callback-based operations into
// synchronous Go tests, by funneling each operation's single terminal
// outcome through a one-shot completion [Barrier] that the test goroutine
// blocks on, with a bounded wait.
//
// The two entry points, [TestSingle] and [TestCompletable], run a producer
// that returns an async handle ([Single] or [Completable]), wire the handle's
// terminal callbacks into a fresh barrier, then block until resolution or
// timeout, reporting the outcome against the provided testing.TB.
package awaitest
