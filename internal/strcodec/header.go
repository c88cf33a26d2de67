package strcodec

import "strings"

// DefaultHeaderWidth is the column width used for every section banner in
// the report, e.g. `===== Section Name =====`.
const DefaultHeaderWidth = 50

// Header centres text between `=` runs separated by single spaces, padding
// to width unless text already exceeds width-2. The result has length
// exactly width when len(text) <= width-2, and length exactly len(text)
// otherwise.
func Header(text string, width int) string {
	if len(text) > width-2 {
		return text
	}
	remaining := width - len(text) - 2 // two spaces flank the text
	left := remaining / 2
	right := remaining - left
	var b strings.Builder
	b.WriteString(strings.Repeat("=", left))
	b.WriteByte(' ')
	b.WriteString(text)
	b.WriteByte(' ')
	b.WriteString(strings.Repeat("=", right))
	return b.String()
}
