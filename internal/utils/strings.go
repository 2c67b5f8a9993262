package utils

import (
	"strings"

	"github.com/shhcrypt/shhcrypt/internal/ui"
)

// FormatPaths formats a slice of paths into a readable string.
func FormatPaths(paths []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, path := range paths {
		b.WriteString("    - ")
		b.WriteString(ui.Path.Sprint(path))
		b.WriteString("\n")
	}
	return b.String()
}

// StripQuotes trims surrounding whitespace and removes every single and
// double quote, as left behind by drag-and-drop or copy-pasted paths.
func StripQuotes(s string) string {
	s = strings.TrimSpace(s)
	return strings.NewReplacer(`'`, "", `"`, "").Replace(s)
}
