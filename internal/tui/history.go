package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/fraccalc/internal/format"
)

// maxHistoryEntries bounds the retained transcript so a long session
// does not grow without limit.
const maxHistoryEntries = 500

// historyEntry is one evaluated line of the session transcript.
type historyEntry struct {
	input   string
	result  string
	float   string
	err     error
	elapsed time.Duration
	width   int
}

// HistoryModel renders the session transcript. Entries are appended as
// expressions are evaluated and the view shows the most recent ones
// that fit the panel, aligned to its bottom edge.
type HistoryModel struct {
	entries []historyEntry
	width   int
	height  int
}

// NewHistoryModel creates an empty transcript.
func NewHistoryModel() HistoryModel {
	return HistoryModel{}
}

// SetSize sets the panel dimensions in character cells.
func (h *HistoryModel) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// Add appends one evaluation to the transcript.
func (h *HistoryModel) Add(entry historyEntry) {
	h.entries = append(h.entries, entry)
	if len(h.entries) > maxHistoryEntries {
		h.entries = h.entries[len(h.entries)-maxHistoryEntries:]
	}
}

// Reset discards the transcript.
func (h *HistoryModel) Reset() {
	h.entries = nil
}

// Len returns the number of recorded entries.
func (h *HistoryModel) Len() int { return len(h.entries) }

// Last returns the most recent entry and whether one exists.
func (h *HistoryModel) Last() (historyEntry, bool) {
	if len(h.entries) == 0 {
		return historyEntry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// View renders the newest entries that fit the panel height, oldest
// first.
func (h HistoryModel) View() string {
	if h.height <= 0 {
		return ""
	}

	lines := make([]string, 0, h.height)
	for _, entry := range h.entries {
		lines = append(lines, renderHistoryEntry(entry)...)
	}
	if len(lines) > h.height {
		lines = lines[len(lines)-h.height:]
	}
	if pad := h.height - len(lines); pad > 0 {
		padded := make([]string, pad, h.height)
		lines = append(padded, lines...)
	}
	return strings.Join(lines, "\n")
}

// renderHistoryEntry formats one entry as an echoed input line followed
// by a result or error line.
func renderHistoryEntry(entry historyEntry) []string {
	echo := historyPromptStyle.Render("frac> ") + historyInputStyle.Render(entry.input)

	if entry.err != nil {
		return []string{echo, historyErrorStyle.Render("  error: " + entry.err.Error())}
	}

	result := historyResultStyle.Render("  = " + entry.result)
	if entry.float != "" {
		result += historyFloatStyle.Render(" ≈ " + entry.float)
	}
	result += historyTimeStyle.Render(fmt.Sprintf("  (%s, %d-bit)",
		format.FormatExecutionDuration(entry.elapsed), entry.width))
	return []string{echo, result}
}
