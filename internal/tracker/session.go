package tracker

import (
	"errors"
	"fmt"
	"time"
)

type SessionState int

const (
	SessionIdle SessionState = iota
	SessionTiming
	SessionStopped
)

func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "idle"
	case SessionTiming:
		return "timing"
	case SessionStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

var ErrSessionState = errors.New("invalid session state")

// Session times one visit: Idle -> Timing -> Stopped -> Idle
type Session struct {
	state   SessionState
	started time.Time
	elapsed time.Duration
	now     func() time.Time
}

// NewSession creates an idle session. A nil clock uses time.Now.
func NewSession(now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{now: now}
}

func (s *Session) State() SessionState {
	return s.state
}

func (s *Session) Start() error {
	if s.state != SessionIdle {
		return fmt.Errorf("%w: cannot start while %s", ErrSessionState, s.state)
	}
	s.started = s.now()
	s.elapsed = 0
	s.state = SessionTiming
	return nil
}

func (s *Session) Finish() error {
	if s.state != SessionTiming {
		return fmt.Errorf("%w: cannot finish while %s", ErrSessionState, s.state)
	}
	s.elapsed = s.now().Sub(s.started)
	s.state = SessionStopped
	return nil
}

// Reset returns to Idle from any state, discarding the timing
func (s *Session) Reset() {
	s.state = SessionIdle
	s.started = time.Time{}
	s.elapsed = 0
}

// Elapsed is live while timing and frozen once stopped
func (s *Session) Elapsed() time.Duration {
	switch s.state {
	case SessionTiming:
		return s.now().Sub(s.started)
	case SessionStopped:
		return s.elapsed
	default:
		return 0
	}
}

func (s *Session) DurationSeconds() int {
	return int(s.Elapsed() / time.Second)
}

// StartedAt is the moment timing began, zero when idle
func (s *Session) StartedAt() time.Time {
	return s.started
}
