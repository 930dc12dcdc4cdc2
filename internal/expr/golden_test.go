package expr

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEval_GoldenCorpus replays testdata/golden.txt, the corpus written
// by cmd/generate-golden whose results come from an independent
// math/big.Rat oracle. Entries are evaluated at the default width; the
// generator keeps components small enough that 64-bit arithmetic is
// exact.
func TestEval_GoldenCorpus(t *testing.T) {
	t.Parallel()

	f, err := os.Open(filepath.Join("testdata", "golden.txt"))
	require.NoError(t, err)
	defer f.Close()

	entries := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		src, want, ok := strings.Cut(line, " = ")
		require.True(t, ok, "malformed corpus line %q", line)

		outcome, err := Eval(src, DefaultWidth)
		require.NoError(t, err, "Eval(%q)", src)
		assert.True(t, outcome.Finite, "Eval(%q) should be finite", src)
		assert.Equal(t, want, outcome.Text, "Eval(%q)", src)
		entries++
	}
	require.NoError(t, scanner.Err())
	assert.NotZero(t, entries, "corpus is empty")
}
