package orchestration

import (
	"bufio"
	"io"
	"strings"

	apperrors "github.com/agbru/fraccalc/internal/errors"
)

// LoadExpressions reads the expressions of a batch, one per line. Blank
// lines and lines starting with '#' are skipped, so batch files can carry
// comments. Returned expressions preserve input order.
//
// Parameters:
//   - r: The reader supplying the batch text.
//
// Returns:
//   - []string: The expression texts to evaluate.
//   - error: A read error, if any.
func LoadExpressions(r io.Reader) ([]string, error) {
	var exprs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		exprs = append(exprs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.WrapError(err, "reading expressions")
	}
	return exprs, nil
}
