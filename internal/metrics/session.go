package metrics

import (
	"sync/atomic"
	"time"
)

// Session tracks evaluation counts for a running process. All methods
// are safe for concurrent use; batch workers record from multiple
// goroutines.
type Session struct {
	start     time.Time
	evaluated atomic.Int64
	failed    atomic.Int64
}

// NewSession starts a session clock.
func NewSession() *Session {
	return &Session{start: time.Now()}
}

// RecordEval counts one evaluation. A non-nil err also counts a failure.
func (s *Session) RecordEval(err error) {
	s.evaluated.Add(1)
	if err != nil {
		s.failed.Add(1)
	}
}

// Evaluated returns the number of expressions submitted so far.
func (s *Session) Evaluated() int64 {
	return s.evaluated.Load()
}

// Failed returns the number of evaluations that ended in an error.
func (s *Session) Failed() int64 {
	return s.failed.Load()
}

// Uptime returns the time elapsed since the session started.
func (s *Session) Uptime() time.Duration {
	return time.Since(s.start)
}
