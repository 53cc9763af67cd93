package dump

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns a line diff of two renderings. Unchanged lines are
// prefixed with two spaces, removed lines with "- " and added lines
// with "+ ". Diff returns "" when from and to are equal.
func Diff(from, to string, opts ...Option) string {
	if from == to {
		return ""
	}
	s := newState(opts)
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	var out strings.Builder
	for _, d := range diffs {
		prefix, attr := "  ", ColorAttr(-1)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix, attr = "- ", DelColor
		case diffmatchpatch.DiffInsert:
			prefix, attr = "+ ", AddColor
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			text := prefix + strings.TrimSuffix(line, "\n")
			if attr >= 0 {
				text = s.c(attr, text)
			}
			out.WriteString(text)
			out.WriteByte('\n')
		}
	}
	return out.String()
}
