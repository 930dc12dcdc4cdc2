package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/agbru/fraccalc/internal/expr"
	"github.com/agbru/fraccalc/internal/ui"
)

// runREPL feeds input to a fresh REPL and returns everything it printed.
func runREPL(t *testing.T, input string, config REPLConfig) string {
	t.Helper()
	ui.InitTheme(false)

	r := NewREPL(config)
	r.SetInput(strings.NewReader(input))
	var buf bytes.Buffer
	r.SetOutput(&buf)
	r.Start()
	return buf.String()
}

func TestNewREPL_InvalidWidth(t *testing.T) {
	t.Parallel()
	r := NewREPL(REPLConfig{Width: 7})
	if r.config.Width != expr.DefaultWidth {
		t.Errorf("Expected invalid width to fall back to %d, got %d", expr.DefaultWidth, r.config.Width)
	}
}

func TestREPL_EvaluateExpression(t *testing.T) {
	output := runREPL(t, "100/150 + 2/5\nquit\n", REPLConfig{Width: 64})

	if !strings.Contains(output, "16/15") {
		t.Errorf("Expected evaluation result in output:\n%s", output)
	}
	if !strings.Contains(output, "Goodbye!") {
		t.Errorf("Expected goodbye message:\n%s", output)
	}
}

func TestREPL_SyntaxError(t *testing.T) {
	output := runREPL(t, "1 +* 2\nquit\n", REPLConfig{Width: 64})

	if !strings.Contains(output, "Error:") {
		t.Errorf("Expected error message:\n%s", output)
	}
	if !strings.Contains(output, "unexpected") {
		t.Errorf("Expected the evaluator diagnostic:\n%s", output)
	}
}

func TestREPL_DivisionByZero(t *testing.T) {
	output := runREPL(t, "1/0\n0/0\nquit\n", REPLConfig{Width: 64})

	if !strings.Contains(output, "Inf") {
		t.Errorf("Expected Inf result:\n%s", output)
	}
	if !strings.Contains(output, "NaN") {
		t.Errorf("Expected NaN result:\n%s", output)
	}
}

func TestREPL_FloatCommand(t *testing.T) {
	output := runREPL(t, "float\n1/2\nfloat off\nquit\n", REPLConfig{Width: 64})

	if !strings.Contains(output, "Decimal approximation:") {
		t.Errorf("Expected float toggle confirmation:\n%s", output)
	}
	if !strings.Contains(output, "enabled") {
		t.Errorf("Expected float to be enabled:\n%s", output)
	}
	if !strings.Contains(output, "≈ 0.5") {
		t.Errorf("Expected approximation after the toggle:\n%s", output)
	}
	if !strings.Contains(output, "disabled") {
		t.Errorf("Expected float to be disabled again:\n%s", output)
	}
}

func TestREPL_WidthCommand(t *testing.T) {
	output := runREPL(t, "width\nwidth 16\nwidth 5\nwidth abc\nquit\n", REPLConfig{Width: 64})

	if !strings.Contains(output, "64 bits") {
		t.Errorf("Expected current width display:\n%s", output)
	}
	if !strings.Contains(output, "16 bits") {
		t.Errorf("Expected width change confirmation:\n%s", output)
	}
	if !strings.Contains(output, "Invalid width: 5") {
		t.Errorf("Expected rejection of unsupported width:\n%s", output)
	}
	if !strings.Contains(output, "Invalid width: abc") {
		t.Errorf("Expected rejection of non-numeric width:\n%s", output)
	}
}

func TestREPL_WidthAffectsEvaluation(t *testing.T) {
	// 300 does not fit in 8 bits
	output := runREPL(t, "width 8\n300\nquit\n", REPLConfig{Width: 64})

	if !strings.Contains(output, "does not fit width 8") {
		t.Errorf("Expected width-8 overflow diagnostic:\n%s", output)
	}
}

func TestREPL_Status(t *testing.T) {
	output := runREPL(t, "1/2\nstatus\nquit\n", REPLConfig{Width: 32})

	for _, s := range []string{"Current configuration", "Width:", "32 bits", "Float:", "Evaluated:", "Uptime:"} {
		if !strings.Contains(output, s) {
			t.Errorf("Expected status output to contain %q:\n%s", s, output)
		}
	}
}

func TestREPL_Demo(t *testing.T) {
	output := runREPL(t, "demo\nquit\n", REPLConfig{Width: 64})

	if !strings.Contains(output, "Division by zero") {
		t.Errorf("Expected demo output:\n%s", output)
	}
}

func TestREPL_Help(t *testing.T) {
	output := runREPL(t, "help\nquit\n", REPLConfig{Width: 64})

	if !strings.Contains(output, "Available commands:") {
		t.Errorf("Expected help output:\n%s", output)
	}
}

func TestREPL_EOF(t *testing.T) {
	output := runREPL(t, "", REPLConfig{Width: 64})

	if !strings.Contains(output, "Goodbye!") {
		t.Errorf("Expected goodbye on EOF:\n%s", output)
	}
}

func TestREPL_BlankLinesIgnored(t *testing.T) {
	output := runREPL(t, "\n   \nquit\n", REPLConfig{Width: 64})

	if strings.Contains(output, "Error") {
		t.Errorf("Blank lines should not produce errors:\n%s", output)
	}
}
