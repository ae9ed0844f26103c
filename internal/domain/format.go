package domain

import (
	"fmt"
	"strings"
)

// Row is one line of the timestamped view
type Row struct {
	Index     int    `json:"index"`
	TimeLabel string `json:"time"`
	Text      string `json:"text"`
}

// RenderedOutput holds every representation derived from a cue sequence
type RenderedOutput struct {
	PlainText string
	SRT       string
	Rows      []Row
}

// Render runs all converters over cues
func Render(cues []Cue) RenderedOutput {
	return RenderedOutput{
		PlainText: ToPlainText(cues),
		SRT:       ToSRT(cues),
		Rows:      ToTimestampRows(cues),
	}
}

// TimestampDocument returns the rows as "[HH:MM:SS] text" lines
func (o RenderedOutput) TimestampDocument() string {
	return ToTimestampDocument(o.Rows)
}

// ToPlainText joins cue texts with single spaces, collapsing whitespace
func ToPlainText(cues []Cue) string {
	parts := make([]string, len(cues))
	for i, c := range cues {
		parts[i] = c.Text
	}
	// Fields splits on any whitespace run, which also trims both ends.
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// ToTimestampRows returns one row per cue with a 1-based index
func ToTimestampRows(cues []Cue) []Row {
	rows := make([]Row, len(cues))
	for i, c := range cues {
		rows[i] = Row{
			Index:     i + 1,
			TimeLabel: FormatClock(c.StartMs),
			Text:      c.Text,
		}
	}
	return rows
}

// ToSRT returns the cues in SRT subtitle format
func ToSRT(cues []Cue) string {
	var sb strings.Builder

	for i, c := range cues {
		if i > 0 {
			sb.WriteString("\n")
		}
		// Sequence number
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		// Timestamps
		sb.WriteString(fmt.Sprintf("%s --> %s\n", FormatSRTTime(c.StartMs), FormatSRTTime(c.EndMs())))
		// Text
		sb.WriteString(c.Text)
		sb.WriteString("\n")
	}

	return sb.String()
}

// RowLine formats a row as "[HH:MM:SS] text"
func RowLine(r Row) string {
	return "[" + r.TimeLabel + "] " + r.Text
}

// ToTimestampDocument joins row lines with newlines
func ToTimestampDocument(rows []Row) string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = RowLine(r)
	}
	return strings.Join(lines, "\n")
}

// FormatClock converts milliseconds to HH:MM:SS, dropping the fraction
func FormatClock(ms int64) string {
	secs := max(ms, 0) / 1000
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

// FormatSRTTime converts milliseconds to SRT timestamp format (HH:MM:SS,mmm)
func FormatSRTTime(ms int64) string {
	total := max(ms, 0)
	hours := total / 3600000
	minutes := (total % 3600000) / 60000
	secs := (total % 60000) / 1000
	millis := total % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes text for embedding into markup
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
