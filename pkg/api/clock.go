package api

import "time"

// Clock schedules deferred work. The production clock delegates to the
// time package; tests substitute a manual clock so deployment runs can be
// driven through virtual time instead of real timers.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a pending scheduled callback. Stop reports whether the call
// was prevented from firing.
type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return realTimer{t: time.AfterFunc(d, fn)}
}

type realTimer struct {
	t *time.Timer
}

func (rt realTimer) Stop() bool { return rt.t.Stop() }

// RealClock returns a Clock backed by the time package.
func RealClock() Clock { return realClock{} }
