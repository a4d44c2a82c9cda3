package render

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/cj3636/gblame/internal/blame"
)

// Hunk markers. A single-line hunk gets its own marker; multi-line hunks
// open with the top marker, continue with the mid marker, and close with
// the end marker.
const (
	markerSingle = "─"
	markerTop    = "┌"
	markerMid    = "│"
	markerEnd    = "└"
)

// workingLabel is rendered in place of a hex prefix for lines that are
// not committed yet.
const workingLabel = "local"

// shortIDWidth is the display width of the revision column.
const shortIDWidth = 8

const dateWidth = 10 // YYYY-MM-DD

// Span is a run of text with one style. Slot indexes the commit palette;
// SlotNone marks unstyled filler and dates.
type Span struct {
	Text string
	Slot int
}

// SlotNone marks a span that takes the default gutter style.
const SlotNone = -1

// Row is one fixed-width gutter row, aligned with a single source line.
type Row struct {
	Spans  []Span
	Line   int    // 1-based source line this row annotates
	Commit string // owning commit, empty for working-copy lines
}

// Width returns the display width of the row.
func (r Row) Width() int {
	w := 0
	for _, s := range r.Spans {
		w += runewidth.StringWidth(s.Text)
	}
	return w
}

// Text returns the row's text with styling stripped.
func (r Row) Text() string {
	var b strings.Builder
	for _, s := range r.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// ShortID abbreviates a full revision identifier for display.
func ShortID(commit string) string {
	if commit == "" {
		return workingLabel
	}
	if len(commit) > shortIDWidth {
		return commit[:shortIDWidth]
	}
	return commit
}

// Render lays hunks out as one row per source line at exactly width
// display columns. The first row of a hunk carries the short id and
// author, the second the summary, and any further rows only the
// continuation marker. Single-line hunks collapse all of it into one
// row. Dates are right-aligned; overflowing text is truncated with an
// ellipsis and every computed padding is clamped at zero.
func Render(hunks []blame.Hunk, width int, colors *Assigner) []Row {
	var rows []Row
	for _, h := range hunks {
		slot := colors.SlotFor(h.Commit)
		date := formatDate(h.AuthorTime)
		idField := runewidth.FillRight(ShortID(h.Commit), shortIDWidth)
		line := h.StartLine

		if h.Lines == 1 {
			prefix := markerSingle + " " + idField + " "
			budget := width - runewidth.StringWidth(prefix) - dateWidth - 1
			author := fitWithEllipsis(h.Author, budget)
			if author != "" {
				author += " "
			}
			summary := fitWithEllipsis(h.Summary, budget-runewidth.StringWidth(author))
			rows = append(rows, composeRow(prefix+author+summary, date, slot, line, h.Commit, width))
			continue
		}

		prefix := markerTop + " " + idField + " "
		left := prefix + fitWithEllipsis(h.Author, width-runewidth.StringWidth(prefix)-dateWidth-1)
		rows = append(rows, composeRow(left, date, slot, line, h.Commit, width))
		line++

		for i := 1; i < h.Lines; i++ {
			marker := markerMid
			if i == h.Lines-1 {
				marker = markerEnd
			}
			text := marker
			if i == 1 {
				text = marker + " " + fitWithEllipsis(h.Summary, width-2)
			}
			rows = append(rows, composeRow(text, "", slot, line, h.Commit, width))
			line++
		}
	}
	return rows
}

// composeRow joins a left-aligned text and a right-aligned tail into a
// row of exactly width columns. When even the clamped parts overflow
// (degenerate widths), the whole row is hard-truncated instead.
func composeRow(left, right string, slot, line int, commit string, width int) Row {
	lw := runewidth.StringWidth(left)
	rw := runewidth.StringWidth(right)

	gap := width - lw - rw
	if gap < 0 {
		text := padExact(left+right, width)
		return Row{Spans: []Span{{Text: text, Slot: slot}}, Line: line, Commit: commit}
	}

	spans := []Span{{Text: left, Slot: slot}}
	if right == "" {
		spans = append(spans, Span{Text: strings.Repeat(" ", gap), Slot: SlotNone})
	} else {
		spans = append(spans,
			Span{Text: strings.Repeat(" ", gap), Slot: SlotNone},
			Span{Text: right, Slot: SlotNone},
		)
	}
	return Row{Spans: spans, Line: line, Commit: commit}
}

// fitWithEllipsis truncates text to at most budget display columns,
// appending "..." when at least four columns are available.
func fitWithEllipsis(text string, budget int) string {
	if budget <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= budget {
		return text
	}
	if budget <= 3 {
		return runewidth.Truncate(text, budget, "")
	}
	return runewidth.Truncate(text, budget, "...")
}

// padExact returns text at exactly width columns, truncating or padding
// as needed. Truncation of wide runes may undershoot by a column; the
// trailing pad makes up the difference.
func padExact(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) > width {
		text = runewidth.Truncate(text, width, "")
	}
	if pad := width - runewidth.StringWidth(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	return text
}

// formatDate renders the author timestamp as a local-calendar ISO date,
// or blank columns when the time is unknown.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return strings.Repeat(" ", dateWidth)
	}
	return t.Local().Format("2006-01-02")
}
