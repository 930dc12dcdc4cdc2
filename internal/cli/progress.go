package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fraccalc/internal/format"
	"github.com/agbru/fraccalc/internal/orchestration"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	// Optimized to 200ms to reduce updates and improve performance.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows for the decoupling of the `DisplayBatchProgress` function from
// a specific spinner implementation, facilitating easier testing and
// maintenance. It defines the essential controls for a spinner: starting,
// stopping, and updating its status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	//
	// Parameters:
	//   - suffix: The text string to display.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface. This adapter allows the `spinner` library to be used
// within the application's CLI framework.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
//
// Parameters:
//   - suffix: The string to display.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	// Using the same interval as ProgressRefreshRate to synchronize
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayBatchProgress renders a spinner with an aggregated progress bar
// while a batch of expressions is being evaluated. It consumes progressChan
// until the channel is closed and signals wg when the display is done.
// With a non-positive total it only drains the channel.
//
// Parameters:
//   - wg: A WaitGroup to signal when display is complete.
//   - progressChan: Channel receiving completion updates from workers.
//   - total: The number of expressions in the batch.
//   - out: The writer for progress output.
func DisplayBatchProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, total int, out io.Writer) {
	defer wg.Done()

	tracker := orchestration.NewBatchTracker(total)
	if tracker == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	spin := newSpinner(spinner.WithWriter(out))
	spin.UpdateSuffix(progressSuffix(tracker.Snapshot()))
	spin.Start()
	defer spin.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				spin.UpdateSuffix(progressSuffix(tracker.Snapshot()))
				return
			}
			spin.UpdateSuffix(progressSuffix(tracker.Record(update)))
		case <-ticker.C:
			// Keep the elapsed time moving even when no expression finished.
			spin.UpdateSuffix(progressSuffix(tracker.Snapshot()))
		}
	}
}

// progressSuffix formats the spinner suffix for one batch snapshot.
func progressSuffix(snap orchestration.BatchSnapshot) string {
	suffix := fmt.Sprintf(" [%s] %d/%d expressions (%s)",
		format.ProgressBar(snap.Fraction, ProgressBarWidth),
		snap.Completed, snap.Total,
		format.FormatExecutionDuration(snap.Elapsed))
	if snap.Failed > 0 {
		suffix += fmt.Sprintf(" %d failed", snap.Failed)
	}
	return suffix
}
