package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestDefaultKeyMap_AllBindingsDefined(t *testing.T) {
	km := DefaultKeyMap()

	bindings := []struct {
		name    string
		binding key.Binding
	}{
		{"Submit", km.Submit},
		{"HistoryPrev", km.HistoryPrev},
		{"HistoryNext", km.HistoryNext},
		{"ToggleFloat", km.ToggleFloat},
		{"CycleWidth", km.CycleWidth},
		{"Clear", km.Clear},
		{"Help", km.Help},
		{"Quit", km.Quit},
	}

	for _, b := range bindings {
		t.Run(b.name, func(t *testing.T) {
			if !b.binding.Enabled() {
				t.Errorf("expected %s binding to be enabled", b.name)
			}
			keys := b.binding.Keys()
			if len(keys) == 0 {
				t.Errorf("expected %s binding to have at least one key", b.name)
			}
		})
	}
}

func TestDefaultKeyMap_QuitKeys(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Quit.Keys()
	hasEsc := false
	hasCtrlC := false
	for _, k := range keys {
		switch k {
		case "esc":
			hasEsc = true
		case "ctrl+c":
			hasCtrlC = true
		}
	}

	if !hasEsc {
		t.Error("expected Quit binding to include 'esc'")
	}
	if !hasCtrlC {
		t.Error("expected Quit binding to include 'ctrl+c'")
	}
}

// TestDefaultKeyMap_ReservesPrintableKeys verifies no command shadows a
// character the user could want in an expression.
func TestDefaultKeyMap_ReservesPrintableKeys(t *testing.T) {
	km := DefaultKeyMap()

	all := [][]string{
		km.Submit.Keys(),
		km.HistoryPrev.Keys(),
		km.HistoryNext.Keys(),
		km.ToggleFloat.Keys(),
		km.CycleWidth.Keys(),
		km.Clear.Keys(),
		km.Help.Keys(),
		km.Quit.Keys(),
	}

	for _, keys := range all {
		for _, k := range keys {
			if len(k) == 1 {
				t.Errorf("binding uses printable key %q, which should reach the input", k)
			}
		}
	}
}

func TestDefaultKeyMap_HelpViews(t *testing.T) {
	km := DefaultKeyMap()

	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp should list bindings")
	}

	full := km.FullHelp()
	if len(full) == 0 {
		t.Fatal("FullHelp should list binding columns")
	}
	for i, column := range full {
		if len(column) == 0 {
			t.Errorf("FullHelp column %d is empty", i)
		}
	}
}
