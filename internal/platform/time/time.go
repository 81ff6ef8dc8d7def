// Package time holds the injectable clock used for cache ticks and timestamps
package time

import (
	"sync"
	"time"
)

// Clock returns the current time, swapped out in tests
type Clock func() time.Time

// System is the wall clock in UTC
func System() time.Time { return time.Now().UTC() }

// Fixed returns a clock that advances by step on every call, starting at t
func Fixed(t time.Time, step time.Duration) Clock {
	var mu sync.Mutex
	cur := t.Add(-step)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		cur = cur.Add(step)
		return cur
	}
}

// OrSystem returns c, or System when c is nil
func (c Clock) OrSystem() Clock {
	if c == nil {
		return System
	}
	return c
}
