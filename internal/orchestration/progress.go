package orchestration

import (
	"time"
)

// BatchTracker accumulates completion counts for a running batch.
// It provides a higher-level API for consuming progress updates from a
// channel. Both CLI and TUI use this to avoid duplicating the counting
// and rendering math. A tracker belongs to the single goroutine that
// consumes the progress channel; it is not safe for concurrent use.
type BatchTracker struct {
	total     int
	completed int
	failed    int
	start     time.Time
}

// NewBatchTracker creates a tracker for a batch of the given size and
// starts its clock. Returns nil if total <= 0.
func NewBatchTracker(total int) *BatchTracker {
	if total <= 0 {
		return nil
	}
	return &BatchTracker{total: total, start: time.Now()}
}

// BatchSnapshot is a point-in-time view of a running batch.
type BatchSnapshot struct {
	// Completed is the number of expressions finished so far, failures
	// included.
	Completed int
	// Failed is the number of finished expressions that ended in error.
	Failed int
	// Total is the batch size.
	Total int
	// Fraction is Completed divided by Total, in [0, 1].
	Fraction float64
	// Elapsed is the time since the tracker was created.
	Elapsed time.Duration
}

// Record notes one finished expression and returns the updated view.
func (t *BatchTracker) Record(update ProgressUpdate) BatchSnapshot {
	t.completed++
	if update.Failed {
		t.failed++
	}
	return t.Snapshot()
}

// Snapshot returns the current view without recording anything.
// Useful for periodic refresh between updates (e.g., CLI ticker).
func (t *BatchTracker) Snapshot() BatchSnapshot {
	return BatchSnapshot{
		Completed: t.completed,
		Failed:    t.failed,
		Total:     t.total,
		Fraction:  float64(t.completed) / float64(t.total),
		Elapsed:   time.Since(t.start),
	}
}

// Total returns the batch size being tracked.
func (t *BatchTracker) Total() int {
	return t.total
}

// Done reports whether every expression of the batch has finished.
func (t *BatchTracker) Done() bool {
	return t.completed >= t.total
}

// DrainChannel reads all updates from the channel without processing.
// Use this when total <= 0 and updates should be discarded.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
