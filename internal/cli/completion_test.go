package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		shell    string
		contains []string
	}{
		{
			shell: "bash",
			contains: []string{
				"_fraccalc_completions",
				"complete -F _fraccalc_completions fraccalc",
				"--width",
				`compgen -W "8 16 32 64"`,
				"--completion",
			},
		},
		{
			shell: "zsh",
			contains: []string{
				"#compdef fraccalc",
				"_arguments",
				"--width[Component width in bits]:bits:(8 16 32 64)",
				"{-e,--expr}",
			},
		},
		{
			shell: "fish",
			contains: []string{
				"complete -c fraccalc -f",
				"-l width",
				"-xa '8 16 32 64'",
				"-l file",
				"-rF",
			},
		},
		{
			shell: "powershell",
			contains: []string{
				"Register-ArgumentCompleter -CommandName 'fraccalc'",
				"'--width'",
				"'8', '16', '32', '64'",
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tc.shell); err != nil {
				t.Fatalf("GenerateCompletion(%q) error = %v", tc.shell, err)
			}
			output := buf.String()
			for _, s := range tc.contains {
				if !strings.Contains(output, s) {
					t.Errorf("Expected %s completion to contain %q", tc.shell, s)
				}
			}
		})
	}
}

func TestGenerateCompletion_PowerShellAlias(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := GenerateCompletion(&buf, "ps"); err != nil {
		t.Fatalf("GenerateCompletion(\"ps\") error = %v", err)
	}
	if !strings.Contains(buf.String(), "Register-ArgumentCompleter") {
		t.Error("Expected the ps alias to emit the PowerShell script")
	}
}

func TestGenerateCompletion_UnsupportedShell(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := GenerateCompletion(&buf, "tcsh")
	if err == nil {
		t.Fatal("Expected error for unsupported shell")
	}
	if !strings.Contains(err.Error(), "unsupported shell") {
		t.Errorf("Unexpected error message: %v", err)
	}
}
