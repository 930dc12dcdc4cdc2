package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fraccalc/internal/ui"
)

// Style variables for the full-screen calculator.
// Initialized from the ui theme system via initTUIStyles().
var (
	titleStyle           lipgloss.Style
	versionStyle         lipgloss.Style
	promptStyle          lipgloss.Style
	placeholderStyle     lipgloss.Style
	historyPromptStyle   lipgloss.Style
	historyInputStyle    lipgloss.Style
	historyResultStyle   lipgloss.Style
	historyFloatStyle    lipgloss.Style
	historyErrorStyle    lipgloss.Style
	historyTimeStyle     lipgloss.Style
	statusLabelStyle     lipgloss.Style
	statusValueStyle     lipgloss.Style
	statusSeparatorStyle lipgloss.Style
	sparklineStyle       lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	promptStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	placeholderStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	historyPromptStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	historyInputStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	historyResultStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	historyFloatStyle = lipgloss.NewStyle().
		Foreground(t.Info)

	historyErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	historyTimeStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	statusLabelStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	statusValueStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	statusSeparatorStyle = lipgloss.NewStyle().
		Foreground(t.Border)

	sparklineStyle = lipgloss.NewStyle().
		Foreground(t.Accent)
}
