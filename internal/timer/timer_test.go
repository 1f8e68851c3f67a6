package timer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu      sync.Mutex
	ticks   []time.Duration
	expired int
}

func (r *recorder) listener() Listener {
	return Listener{
		OnTick: func(remaining, total time.Duration) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.ticks = append(r.ticks, remaining)
		},
		OnExpired: func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.expired++
		},
	}
}

func newManual(t *testing.T, total time.Duration) (*Controller, *Manual, *recorder) {
	t.Helper()
	m := NewManual()
	rec := &recorder{}
	c, err := New(total, m, rec.listener())
	require.NoError(t, err)
	return c, m, rec
}

func TestNewRejectsNonPositive(t *testing.T) {
	_, err := New(0, NewManual(), Listener{})
	assert.ErrorIs(t, err, ErrInvalidDuration)
	_, err = New(-time.Second, NewManual(), Listener{})
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestCountdownToExpiry(t *testing.T) {
	c, m, rec := newManual(t, 3*time.Second)
	c.Start()
	assert.Equal(t, State{Remaining: 3 * time.Second, Total: 3 * time.Second, Running: true}, c.State())

	m.Advance(5 * time.Second)

	assert.Equal(t, []time.Duration{2 * time.Second, time.Second, 0}, rec.ticks)
	assert.Equal(t, 1, rec.expired)
	assert.Equal(t, State{Remaining: 0, Total: 3 * time.Second, Running: false}, c.State())
	assert.Equal(t, 0, m.Pending(), "expiry stops the schedule")
}

func TestRemainingClampsAtZero(t *testing.T) {
	c, m, rec := newManual(t, 1500*time.Millisecond)
	c.Start()
	m.Advance(2 * time.Second)

	assert.Equal(t, []time.Duration{500 * time.Millisecond, 0}, rec.ticks)
	assert.Equal(t, 1, rec.expired)
	assert.Equal(t, time.Duration(0), c.State().Remaining)
}

func TestPauseKeepsRemainingAndStopsTicks(t *testing.T) {
	c, m, rec := newManual(t, 10*time.Second)
	c.Start()
	m.Advance(2 * time.Second)
	c.Pause()
	m.Advance(5 * time.Second)

	assert.Len(t, rec.ticks, 2)
	assert.Equal(t, State{Remaining: 8 * time.Second, Total: 10 * time.Second}, c.State())
	assert.Equal(t, 0, m.Pending())

	c.Resume()
	m.Advance(time.Second)
	assert.Equal(t, 7*time.Second, c.State().Remaining)
	assert.True(t, c.State().Running)
}

func TestResumeNoopWhenExpired(t *testing.T) {
	c, m, _ := newManual(t, time.Second)
	c.Start()
	m.Advance(time.Second)
	c.Resume()
	assert.False(t, c.State().Running)
	assert.Equal(t, 0, m.Pending())
}

func TestResetZeroesAndCancels(t *testing.T) {
	c, m, rec := newManual(t, 5*time.Second)
	c.Start()
	m.Advance(time.Second)
	c.Reset()
	m.Advance(10 * time.Second)

	assert.Len(t, rec.ticks, 1)
	assert.Equal(t, 0, rec.expired)
	assert.Equal(t, State{Remaining: 0, Total: 5 * time.Second}, c.State())
}

func TestRestartDropsPreviousSchedule(t *testing.T) {
	c, m, rec := newManual(t, 3*time.Second)
	c.Start()
	m.Advance(time.Second)
	c.Start()
	assert.Equal(t, 1, m.Pending(), "only the new schedule is live")

	m.Advance(time.Second)
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, rec.ticks)
}

func TestStaleHandleIsIgnored(t *testing.T) {
	c, _, rec := newManual(t, 3*time.Second)
	c.Start()
	c.mu.Lock()
	stale := c.active
	c.mu.Unlock()

	c.Pause()
	c.tick(stale)

	assert.Empty(t, rec.ticks)
	assert.Equal(t, 3*time.Second, c.State().Remaining)
}

func TestManualFiresInTimeOrder(t *testing.T) {
	m := NewManual()
	var got []string
	m.Every(2*time.Second, func() { got = append(got, "slow") })
	m.Every(time.Second, func() { got = append(got, "fast") })

	m.Advance(4 * time.Second)
	// ties go to the schedule registered first
	assert.Equal(t, []string{"fast", "slow", "fast", "fast", "slow", "fast"}, got)
	assert.Equal(t, 4*time.Second, m.Now())
}

func TestManualStopFromCallback(t *testing.T) {
	m := NewManual()
	n := 0
	var stop func()
	stop = m.Every(time.Second, func() {
		n++
		stop()
	})
	m.Advance(5 * time.Second)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, m.Pending())
}

func TestTickerSchedulerStops(t *testing.T) {
	var mu sync.Mutex
	n := 0
	stop := TickerScheduler{}.Every(5*time.Millisecond, func() {
		mu.Lock()
		n++
		mu.Unlock()
	})
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return n >= 2
	}, time.Second, time.Millisecond)

	stop()
	stop()
	mu.Lock()
	after := n
	mu.Unlock()
	time.Sleep(30 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, n, after+1, "at most one in-flight tick after stop")
}
