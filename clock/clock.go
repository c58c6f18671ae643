package clock

import (
	"sync"
	"time"
)

// Clock abstracts time for effects that wait, so debounced work can be
// driven deterministically in tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
	After(d time.Duration) <-chan time.Time
}

type system struct{}

func (system) Now() time.Time {
	return time.Now()
}

func (system) Sleep(d time.Duration) {
	time.Sleep(d)
}

func (system) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// Make returns the wall clock.
func Make() Clock {
	return system{}
}

// Fake is a manually advanced clock. Timers fire only when Advance moves
// the clock past their deadline.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	waiters []waiter
}

type waiter struct {
	at time.Time
	ch chan time.Time
}

func NewFake() *Fake {
	return &Fake{now: time.Unix(0, 0)}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) Sleep(d time.Duration) {
	<-f.After(d)
}

func (f *Fake) After(d time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if d <= 0 {
		ch <- f.now
		return ch
	}
	f.waiters = append(f.waiters, waiter{at: f.now.Add(d), ch: ch})
	return ch
}

// Pending returns the number of timers waiting on a future deadline. Tests
// use it to know a debounced effect has reached its wait before advancing.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.waiters)
}

// Advance moves the clock forward and fires every waiter whose deadline
// has passed, in place.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	now := f.now
	var fired []chan time.Time
	remaining := f.waiters[:0]
	for _, w := range f.waiters {
		if w.at.After(now) {
			remaining = append(remaining, w)
		} else {
			fired = append(fired, w.ch)
		}
	}
	f.waiters = remaining
	f.mu.Unlock()
	for _, ch := range fired {
		ch <- now
	}
}
