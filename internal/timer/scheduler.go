package timer

import (
	"sync"
	"time"
)

// Scheduler runs fn periodically until the returned stop func is called.
// Implementations must not call fn from inside Every, and stop must be safe
// to call more than once and from within fn.
type Scheduler interface {
	Every(d time.Duration, fn func()) (stop func())
}

// TickerScheduler schedules on the wall clock with a time.Ticker per schedule.
type TickerScheduler struct{}

func (TickerScheduler) Every(d time.Duration, fn func()) func() {
	t := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-t.C:
				// a tick racing with stop is discarded here
				select {
				case <-done:
					return
				default:
				}
				fn()
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			t.Stop()
			close(done)
		})
	}
}

// Manual is a Scheduler driven by explicit Advance calls. Hosts with their own
// frame loop use it to feed ticks from a fixed external clock; tests use it to
// step time deterministically.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	entries []*manualEntry
}

type manualEntry struct {
	period  time.Duration
	next    time.Duration
	fn      func()
	stopped bool
}

// NewManual returns a Manual scheduler at time zero.
func NewManual() *Manual { return &Manual{} }

func (m *Manual) Every(d time.Duration, fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := &manualEntry{period: d, next: m.now + d, fn: fn}
	m.entries = append(m.entries, e)
	return func() {
		m.mu.Lock()
		e.stopped = true
		m.mu.Unlock()
	}
}

// Advance moves the clock forward by d, firing every due schedule in time
// order. Callbacks run without the scheduler lock held.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		var due *manualEntry
		for _, e := range m.entries {
			if e.stopped || e.next > target {
				continue
			}
			if due == nil || e.next < due.next {
				due = e
			}
		}
		if due == nil {
			m.now = target
			m.pruneLocked()
			m.mu.Unlock()
			return
		}
		m.now = due.next
		due.next += due.period
		fn := due.fn
		m.mu.Unlock()

		fn()
	}
}

// Pending returns the number of schedules that have not been stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.entries {
		if !e.stopped {
			n++
		}
	}
	return n
}

// Now returns the scheduler's clock.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) pruneLocked() {
	kept := m.entries[:0]
	for _, e := range m.entries {
		if !e.stopped {
			kept = append(kept, e)
		}
	}
	m.entries = kept
}
