// Package hyperfocus implements the countdown that runs while the user
// concentrates on a single task.
package hyperfocus

import (
	"sync"
	"time"
)

const (
	// DefaultDuration is the length of a session started without an explicit
	// duration.
	DefaultDuration = 10 * time.Second
	// Penalty is added to the countdown each time the user shuffles away.
	Penalty = 2 * time.Second

	tick = time.Second
)

// Session counts down in whole seconds. When the last second elapses the
// session turns itself off and closes the channel returned by Done.
type Session struct {
	clock Clock

	mu        sync.Mutex
	active    bool
	remaining time.Duration
	stop      chan struct{}
	done      chan struct{}
}

// NewSession returns an inactive session. A nil clock uses real time.
func NewSession(clock Clock) *Session {
	if clock == nil {
		clock = realClock{}
	}
	return &Session{clock: clock}
}

// Start begins a countdown of d, replacing any countdown in progress. A
// non-positive d leaves the session off.
func (s *Session) Start(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	if d <= 0 {
		s.remaining = 0
		return
	}

	s.active = true
	s.remaining = d
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go s.run(s.clock.NewTicker(tick), s.stop, s.done)
}

func (s *Session) run(t Ticker, stop, done chan struct{}) {
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C():
			if s.step(stop, done) {
				return
			}
		}
	}
}

// step applies one tick and reports whether the countdown ended.
func (s *Session) step(stop, done chan struct{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != stop {
		return true
	}
	if s.remaining > tick {
		s.remaining -= tick
		return false
	}
	s.remaining = 0
	s.active = false
	s.stop = nil
	close(done)
	return true
}

// Stop cancels the countdown without closing Done. Remaining keeps the value
// it had when stopped.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Session) stopLocked() {
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
	s.active = false
}

// Extend adds d to a running countdown. It has no effect when the session is
// off.
func (s *Session) Extend(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active && d > 0 {
		s.remaining += d
	}
}

func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Session) Remaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// Done returns a channel closed when the latest countdown runs out. It is nil
// before the first Start.
func (s *Session) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}
