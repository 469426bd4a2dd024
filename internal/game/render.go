package game

import (
	"fmt"
	"strings"
)

// ColumnLabel returns the letter label for column i: a..z, then aa, ab, ...
func ColumnLabel(i int) string {
	var b []byte
	for n := i + 1; n > 0; n = (n - 1) / 26 {
		b = append([]byte{byte('a' + (n-1)%26)}, b...)
	}
	return string(b)
}

// ParseColumn is the inverse of ColumnLabel. It reports false for input
// that is not made of letters.
func ParseColumn(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch < 'a' || ch > 'z' {
			return 0, false
		}
		n = n*26 + int(ch-'a') + 1
	}
	return n - 1, true
}

// Render formats a snapshot with column letters across the top and
// two-digit row numbers down the side.
func Render(snap [][]byte) string {
	if len(snap) == 0 {
		return ""
	}
	cols := len(snap[0])
	width := len(ColumnLabel(cols - 1))

	var b strings.Builder
	b.WriteString("   ")
	for c := 0; c < cols; c++ {
		fmt.Fprintf(&b, "%-*s ", width, ColumnLabel(c))
	}
	b.WriteByte('\n')
	for r, row := range snap {
		fmt.Fprintf(&b, "%02d ", r)
		for _, ch := range row {
			fmt.Fprintf(&b, "%-*c ", width, ch)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
