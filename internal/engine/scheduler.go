package engine

import "time"

// Scheduler defers a function by a delay and hands back a cancel. The
// orchestrator uses it to debounce query changes; tests substitute a
// manual implementation to fire deferred work deterministically.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) (cancel func())
}

type timerScheduler struct{}

// NewTimerScheduler returns the production scheduler backed by
// time.AfterFunc.
func NewTimerScheduler() Scheduler {
	return timerScheduler{}
}

func (timerScheduler) Schedule(delay time.Duration, fn func()) func() {
	t := time.AfterFunc(delay, fn)
	return func() { t.Stop() }
}
