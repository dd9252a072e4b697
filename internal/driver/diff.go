package driver

import (
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedDiff returns a unified diff from before to after, or "" when they
// are equal.
func UnifiedDiff(path, before, after string) (string, error) {
	if before == after {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	})
}

// ColorizeDiff paints added and removed lines. Headers keep their color too.
func ColorizeDiff(diff string) string {
	added := color.New(color.FgGreen, color.Bold)
	removed := color.New(color.FgRed, color.Bold)
	hunk := color.New(color.FgCyan)

	lines := strings.Split(diff, "\n")
	for i, s := range lines {
		switch {
		case strings.HasPrefix(s, "@@"):
			lines[i] = hunk.Sprint(s)
		case strings.HasPrefix(s, "+"):
			lines[i] = added.Sprint(s)
		case strings.HasPrefix(s, "-"):
			lines[i] = removed.Sprint(s)
		}
	}
	return strings.Join(lines, "\n")
}
