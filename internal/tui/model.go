// Package tui implements the full-screen calculator: a prompt with
// input recall, a scrolling transcript of evaluations and a status bar
// showing session statistics. It is built on bubbletea with bubbles
// components and lipgloss styling.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fraccalc/internal/config"
	apperrors "github.com/agbru/fraccalc/internal/errors"
	"github.com/agbru/fraccalc/internal/expr"
	appmetrics "github.com/agbru/fraccalc/internal/metrics"
)

// TickMsg drives the periodic refresh of the status bar.
type TickMsg time.Time

const (
	// latencySamples is the capacity of the evaluation latency strip.
	latencySamples = 24
	// minHistoryHeight keeps a few transcript lines visible even in a
	// tiny terminal.
	minHistoryHeight = 3
	// inputCharLimit bounds the expression entry length.
	inputCharLimit = 256
)

// Model is the root bubbletea model of the full-screen calculator.
type Model struct {
	input   textinput.Model
	history HistoryModel
	help    help.Model
	keymap  KeyMap

	session   *appmetrics.Session
	memory    *appmetrics.MemoryCollector
	memStats  appmetrics.MemorySnapshot
	latencies *RingBuffer

	version   string
	evalWidth int
	showFloat bool

	// recall holds submitted inputs; recallPos points one past the
	// newest when no recall is active.
	recall    []string
	recallPos int

	width  int
	height int
}

// NewModel creates the calculator model from the parsed configuration.
func NewModel(cfg config.AppConfig, version string) Model {
	input := textinput.New()
	input.Placeholder = "1/2 + 1/3"
	input.Prompt = "frac> "
	input.CharLimit = inputCharLimit
	input.PromptStyle = promptStyle
	input.PlaceholderStyle = placeholderStyle
	input.Focus()

	evalWidth := cfg.Width
	if !expr.ValidWidth(evalWidth) {
		evalWidth = expr.DefaultWidth
	}

	memory := appmetrics.NewMemoryCollector()

	return Model{
		input:     input,
		history:   NewHistoryModel(),
		help:      help.New(),
		keymap:    DefaultKeyMap(),
		session:   appmetrics.NewSession(),
		memory:    memory,
		memStats:  memory.Snapshot(),
		latencies: NewRingBuffer(latencySamples),
		version:   version,
		evalWidth: evalWidth,
		showFloat: cfg.Float,
	}
}

// Init starts the cursor blink and the status refresh ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd())
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case TickMsg:
		m.memStats = m.memory.Snapshot()
		return m, tickCmd()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Submit):
		m.submit()
		return m, nil

	case key.Matches(msg, m.keymap.HistoryPrev):
		m.recallMove(-1)
		return m, nil

	case key.Matches(msg, m.keymap.HistoryNext):
		m.recallMove(1)
		return m, nil

	case key.Matches(msg, m.keymap.ToggleFloat):
		m.showFloat = !m.showFloat
		return m, nil

	case key.Matches(msg, m.keymap.CycleWidth):
		m.evalWidth = nextWidth(m.evalWidth)
		return m, nil

	case key.Matches(msg, m.keymap.Clear):
		m.history.Reset()
		m.latencies.Reset()
		return m, nil

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit evaluates the current input line and appends the outcome to
// the transcript.
func (m *Model) submit() {
	src := strings.TrimSpace(m.input.Value())
	if src == "" {
		return
	}

	start := time.Now()
	outcome, err := expr.Eval(src, m.evalWidth)
	elapsed := time.Since(start)

	m.session.RecordEval(err)
	m.latencies.Push(elapsed.Seconds())

	entry := historyEntry{input: src, err: err, elapsed: elapsed, width: m.evalWidth}
	if err == nil {
		entry.result = outcome.Text
		if m.showFloat && outcome.Finite {
			entry.float = strconv.FormatFloat(outcome.Float, 'g', -1, 64)
		}
	}
	m.history.Add(entry)

	m.recall = append(m.recall, src)
	m.recallPos = len(m.recall)
	m.input.Reset()
}

// recallMove steps through previously submitted inputs. Moving past the
// newest entry clears the input line.
func (m *Model) recallMove(delta int) {
	if len(m.recall) == 0 {
		return
	}

	pos := m.recallPos + delta
	if pos < 0 {
		pos = 0
	}
	if pos >= len(m.recall) {
		m.recallPos = len(m.recall)
		m.input.Reset()
		return
	}

	m.recallPos = pos
	m.input.SetValue(m.recall[pos])
	m.input.CursorEnd()
}

// nextWidth returns the next supported component width, wrapping from
// the widest back to the narrowest.
func nextWidth(w int) int {
	for i, candidate := range expr.Widths {
		if candidate == w {
			return expr.Widths[(i+1)%len(expr.Widths)]
		}
	}
	return expr.DefaultWidth
}

// layout distributes the terminal height among the fixed chrome rows
// and the transcript panel.
func (m *Model) layout() {
	chrome := 3 + m.helpHeight() // title, input, status bar
	h := m.height - chrome
	if h < minHistoryHeight {
		h = minHistoryHeight
	}
	m.history.SetSize(m.width, h)
}

func (m Model) helpHeight() int {
	if m.help.ShowAll {
		return 3
	}
	return 1
}

// View renders the calculator.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	title := titleStyle.Render("🧮 Fraction Calculator")
	if m.version != "" {
		title += " " + versionStyle.Render(m.version)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.history.View(),
		m.input.View(),
		m.statusBar(),
		m.help.View(m.keymap),
	)
}

// statusBar renders the session line: evaluation settings, counters,
// process statistics and the recent latency strip.
func (m Model) statusBar() string {
	separator := statusSeparatorStyle.Render(" • ")

	items := []string{
		statusItem("width", fmt.Sprintf("%d-bit", m.evalWidth)),
		statusItem("float", onOff(m.showFloat)),
		statusItem("evaluated", fmt.Sprintf("%d (%d failed)", m.session.Evaluated(), m.session.Failed())),
		statusItem("uptime", m.session.Uptime().Round(time.Second).String()),
		statusItem("heap", fmt.Sprintf("%.1f MiB", m.memStats.HeapAllocMB())),
	}
	bar := strings.Join(items, separator)

	if strip := RenderSparkline(m.latencies.Slice()); strip != "" {
		bar += separator + statusLabelStyle.Render("latency ") + sparklineStyle.Render(strip)
	}
	return bar
}

func statusItem(label, value string) string {
	return statusLabelStyle.Render(label+" ") + statusValueStyle.Render(value)
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}

// tickCmd schedules the next status bar refresh.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Run starts the full-screen calculator and blocks until the user
// quits. It returns the process exit code.
func Run(ctx context.Context, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	p := tea.NewProgram(NewModel(cfg, version), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
