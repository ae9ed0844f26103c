package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/iandelaney/youtran/internal/domain"
)

// FormatCount formats a number with K/M suffix
// Examples: 892 -> "892", 1234 -> "1.2K", 1500000 -> "1.5M"
func FormatCount(count int64) string {
	if count >= 1000000 {
		return fmt.Sprintf("%.1fM", float64(count)/1000000)
	}
	if count >= 1000 {
		return fmt.Sprintf("%.1fK", float64(count)/1000)
	}
	return fmt.Sprintf("%d", count)
}

// FormatBytes formats a byte count with a binary unit
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}

// Truncate shortens s to at most max runes, marking the cut with "..."
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// FormatRowLine formats a timestamp row as a table line
// Example: "  12  00:01:05  and then we went"
func FormatRowLine(row domain.Row, indexWidth int) string {
	return fmt.Sprintf("%*d  %s  %s", indexWidth, row.Index, row.TimeLabel, row.Text)
}

// FormatRowTable formats rows as aligned table lines
func FormatRowTable(rows []domain.Row) string {
	if len(rows) == 0 {
		return ""
	}
	width := len(fmt.Sprintf("%d", len(rows)))
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = FormatRowLine(r, width)
	}
	return strings.Join(lines, "\n")
}
