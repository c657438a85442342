// Package testutil holds shared test helpers. The fake clock lets
// deployment tests advance virtual time deterministically instead of
// sleeping on real timers.
package testutil

import (
	"sort"
	"sync"
	"time"

	"github.com/petrijr/crewcanvas/pkg/api"
)

// FakeClock is a manual api.Clock. Timers fire only when Advance moves
// the virtual now past their deadline.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

// NewFakeClock creates a FakeClock starting at a fixed instant.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Unix(1700000000, 0)}
}

// Now returns the current virtual time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc schedules fn to run when virtual time reaches now+d.
func (c *FakeClock) AfterFunc(d time.Duration, fn func()) api.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{
		clock:    c,
		deadline: c.now.Add(d),
		fn:       fn,
	}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves virtual time forward and fires every due timer in
// deadline order. Callbacks run outside the clock lock, so they may
// schedule new timers; a newly scheduled timer that is already due fires
// within the same Advance call.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()

	for {
		t := c.popDue()
		if t == nil {
			return
		}
		t.fn()
	}
}

// popDue removes and returns the earliest due timer, or nil.
func (c *FakeClock) popDue() *fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	sort.SliceStable(c.timers, func(i, j int) bool {
		return c.timers[i].deadline.Before(c.timers[j].deadline)
	})
	for i, t := range c.timers {
		if !t.deadline.After(c.now) && !t.stopped {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return t
		}
	}
	return nil
}

// PendingTimers returns the number of armed timers.
func (c *FakeClock) PendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

type fakeTimer struct {
	clock    *FakeClock
	deadline time.Time
	fn       func()
	stopped  bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}
