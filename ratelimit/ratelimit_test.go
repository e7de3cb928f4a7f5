package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced clock for deterministic window tests.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func mustLimiter(tb testing.TB, window time.Duration, limit int, clk *fakeClock) *SlidingWindow {
	tb.Helper()

	sw, err := New(window, limit, WithNow(clk.now))
	require.NoError(tb, err, "New failed")

	return sw
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := New(0, 1)
	assert.Error(t, err, "zero window must be rejected")

	_, err = New(-time.Second, 1)
	assert.Error(t, err, "negative window must be rejected")

	_, err = New(time.Second, 0)
	assert.Error(t, err, "zero limit must be rejected")
}

func TestAllowDeniesOverLimit(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	sw := mustLimiter(t, 10*time.Second, 1, clk)

	assert.True(t, sw.Allow("alice"), "first event must be admitted")
	assert.False(t, sw.Allow("alice"), "second event inside the window must be denied")
	assert.False(t, sw.CanSend("alice"))
}

func TestWindowSlides(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	sw := mustLimiter(t, 10*time.Second, 1, clk)

	require.True(t, sw.Allow("alice"))
	clk.advance(9 * time.Second)
	assert.False(t, sw.Allow("alice"), "event still inside the window")

	clk.advance(time.Second + time.Millisecond)
	assert.True(t, sw.CanSend("alice"), "old event has left the window")
	assert.True(t, sw.Allow("alice"))
}

func TestTimeUntilAllowed(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	sw := mustLimiter(t, 10*time.Second, 1, clk)

	assert.Zero(t, sw.TimeUntilAllowed("alice"), "unknown user waits nothing")

	require.True(t, sw.Allow("alice"))
	assert.Equal(t, 10*time.Second, sw.TimeUntilAllowed("alice"))

	clk.advance(4 * time.Second)
	assert.Equal(t, 6*time.Second, sw.TimeUntilAllowed("alice"))

	clk.advance(6*time.Second + time.Millisecond)
	assert.Zero(t, sw.TimeUntilAllowed("alice"))
}

func TestLimitAboveOne(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	sw := mustLimiter(t, 10*time.Second, 3, clk)

	require.True(t, sw.Allow("alice"))
	clk.advance(time.Second)
	require.True(t, sw.Allow("alice"))
	clk.advance(time.Second)
	require.True(t, sw.Allow("alice"))
	assert.False(t, sw.Allow("alice"), "three events fill the window")
	assert.Equal(t, 8*time.Second, sw.TimeUntilAllowed("alice"), "wait ends when the oldest event expires")

	// Sliding, not fixed: one slot opens as soon as the first event ages out.
	clk.advance(8*time.Second + time.Millisecond)
	assert.True(t, sw.Allow("alice"))
	assert.False(t, sw.Allow("alice"))
}

func TestUsersAreIndependent(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	sw := mustLimiter(t, 10*time.Second, 1, clk)

	require.True(t, sw.Allow("alice"))
	assert.False(t, sw.Allow("alice"))
	assert.True(t, sw.CanSend("bob"), "alice's events must not count against bob")
	assert.True(t, sw.Allow("bob"))
	assert.Zero(t, sw.TimeUntilAllowed("carol"))
}

func TestCanSendDoesNotRecord(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	sw := mustLimiter(t, 10*time.Second, 1, clk)

	assert.True(t, sw.CanSend("alice"))
	assert.True(t, sw.CanSend("alice"), "CanSend must not consume the slot")
	assert.True(t, sw.Allow("alice"))
}

func TestIdleUsersForgotten(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	sw := mustLimiter(t, 10*time.Second, 2, clk)

	require.True(t, sw.Allow("alice"))
	require.True(t, sw.Allow("bob"))
	assert.Equal(t, 2, sw.Users())

	clk.advance(11 * time.Second)
	assert.True(t, sw.CanSend("alice"))
	assert.Equal(t, 1, sw.Users(), "alice's empty window must drop her entry")

	assert.True(t, sw.Allow("bob"))
	assert.Equal(t, 1, sw.Users(), "bob is re-admitted fresh, alice stays forgotten")

	assert.True(t, sw.Allow("alice"))
	assert.Equal(t, 2, sw.Users(), "only a new event brings a forgotten user back")
}

func TestPartialExpiry(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	sw := mustLimiter(t, 10*time.Second, 2, clk)

	require.True(t, sw.Allow("alice"))
	clk.advance(5 * time.Second)
	require.True(t, sw.Allow("alice"))
	assert.False(t, sw.Allow("alice"))

	// First event expires, second is 5s old: exactly one slot free.
	clk.advance(5*time.Second + time.Millisecond)
	assert.True(t, sw.Allow("alice"))
	assert.False(t, sw.Allow("alice"))
}
