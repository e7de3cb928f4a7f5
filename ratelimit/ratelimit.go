// Package ratelimit provides a per-user sliding-window rate limiter.
//
// Each user is tracked independently: an event is admitted while the user
// has fewer than the configured maximum of events inside the rolling
// window, and timestamps falling out of the window stop counting
// immediately rather than at a fixed interval boundary.
package ratelimit

import (
	"fmt"
	"time"
)

// SlidingWindow admits at most limit events per user within any rolling
// window of the configured length.
//
// The zero value is not valid; use New. SlidingWindow is not safe for
// concurrent use.
type SlidingWindow struct {
	window time.Duration
	limit  int
	now    func() time.Time

	// events holds per-user admission timestamps, oldest first. Users with
	// no timestamps left in the window are removed entirely, so idle users
	// cost no memory.
	events map[string][]time.Time
}

// Option configures a SlidingWindow.
type Option func(*SlidingWindow)

// WithNow injects the clock used to stamp and expire events. Intended for
// tests; the default is time.Now.
func WithNow(now func() time.Time) Option {
	return func(sw *SlidingWindow) {
		sw.now = now
	}
}

// New creates a limiter admitting at most limit events per user within
// each rolling window.
func New(window time.Duration, limit int, opts ...Option) (*SlidingWindow, error) {
	if window <= 0 {
		return nil, fmt.Errorf("ratelimit: window must be positive, got %v", window)
	}
	if limit < 1 {
		return nil, fmt.Errorf("ratelimit: limit must be at least 1, got %d", limit)
	}

	sw := &SlidingWindow{
		window: window,
		limit:  limit,
		now:    time.Now,
		events: make(map[string][]time.Time),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(sw)
	}

	return sw, nil
}

// Allow records an event for userID if the user is under the limit and
// reports whether the event was admitted.
func (sw *SlidingWindow) Allow(userID string) bool {
	now := sw.now()
	events := sw.prune(userID, now)
	if len(events) >= sw.limit {
		return false
	}
	sw.events[userID] = append(events, now)

	return true
}

// CanSend reports whether an event for userID would be admitted now,
// without recording anything.
func (sw *SlidingWindow) CanSend(userID string) bool {
	return len(sw.prune(userID, sw.now())) < sw.limit
}

// TimeUntilAllowed returns how long userID must wait before the next
// event is admitted. Zero means an event would be admitted immediately.
func (sw *SlidingWindow) TimeUntilAllowed(userID string) time.Duration {
	now := sw.now()
	events := sw.prune(userID, now)
	if len(events) < sw.limit {
		return 0
	}

	// The next slot opens when the oldest counted event leaves the window.
	wait := events[0].Add(sw.window).Sub(now)
	if wait < 0 {
		return 0
	}

	return wait
}

// Users returns the number of users currently tracked. Expired users are
// forgotten lazily, on their next Allow, CanSend, or TimeUntilAllowed.
func (sw *SlidingWindow) Users() int {
	return len(sw.events)
}

// prune drops timestamps that have left the window ending at now and
// returns what remains. A user whose window empties is forgotten.
func (sw *SlidingWindow) prune(userID string, now time.Time) []time.Time {
	events, ok := sw.events[userID]
	if !ok {
		return nil
	}

	cutoff := now.Add(-sw.window)
	expired := 0
	for expired < len(events) && events[expired].Before(cutoff) {
		expired++
	}
	if expired == 0 {
		return events
	}

	events = events[expired:]
	if len(events) == 0 {
		delete(sw.events, userID)

		return nil
	}
	sw.events[userID] = events

	return events
}
