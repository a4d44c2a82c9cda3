// Package export renders an annotated blame listing without the TUI,
// for piping into files or the clipboard.
package export

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/cj3636/gblame/internal/blame"
	"github.com/cj3636/gblame/internal/config"
	"github.com/cj3636/gblame/internal/render"
)

// Format represents the desired export format.
type Format string

const (
	// FormatHTML emits an HTML document for the listing.
	FormatHTML Format = "html"
	// FormatMarkdown emits a Markdown code block.
	FormatMarkdown Format = "markdown"
	// FormatANSI emits an ANSI-colored string.
	FormatANSI Format = "ansi"
)

// Options control how a listing is exported.
type Options struct {
	// Title will be shown in HTML/Markdown outputs when provided.
	Title string
	// GutterWidth is the display width of the annotation column.
	GutterWidth int
}

// ansiPalette maps render slots to terminal colors, in the same slot
// order the TUI uses.
var ansiPalette = [config.PaletteSize]string{
	"\u001b[31m", "\u001b[32m", "\u001b[33m", "\u001b[34m",
	"\u001b[35m", "\u001b[36m", "\u001b[91m", "\u001b[37m",
}

// Render returns the annotated listing for records in the requested
// format.
func Render(records []blame.Record, format Format, opts Options) (string, error) {
	if len(records) == 0 {
		return "", errors.New("no attribution records to export")
	}
	if opts.GutterWidth <= 0 {
		opts.GutterWidth = 40
	}

	rows := render.Render(blame.Aggregate(records), opts.GutterWidth, render.NewAssigner(config.PaletteSize))

	switch strings.ToLower(string(format)) {
	case string(FormatHTML):
		return renderHTML(rows, records, opts), nil
	case string(FormatMarkdown), "md":
		return renderMarkdown(rows, records, opts), nil
	case string(FormatANSI), "text":
		return renderANSI(rows, records, opts), nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
}

func renderANSI(rows []render.Row, records []blame.Record, opts Options) string {
	var b strings.Builder
	if opts.Title != "" {
		fmt.Fprintf(&b, "%s\n\n", opts.Title)
	}

	const reset = "\u001b[0m"
	for i, row := range rows {
		for _, span := range row.Spans {
			if span.Slot == render.SlotNone {
				b.WriteString("\u001b[90m" + span.Text + reset)
				continue
			}
			b.WriteString(ansiPalette[span.Slot%len(ansiPalette)] + span.Text + reset)
		}
		fmt.Fprintf(&b, " \u001b[90m│%s %s\n", reset, records[i].Content)
	}
	return b.String()
}

func renderMarkdown(rows []render.Row, records []blame.Record, opts Options) string {
	var b strings.Builder
	if opts.Title != "" {
		b.WriteString("# ")
		b.WriteString(opts.Title)
		b.WriteString("\n\n")
	}

	b.WriteString("```\n")
	for i, row := range rows {
		fmt.Fprintf(&b, "%s │ %s\n", row.Text(), records[i].Content)
	}
	b.WriteString("```\n")
	return b.String()
}

func renderHTML(rows []render.Row, records []blame.Record, opts Options) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">")
	b.WriteString("<style>body{background:#0f111a;color:#e5e7eb;font-family:Menlo,Consolas,monospace;}" +
		"pre{white-space:pre;}" +
		".content{color:#cbd5e1;}" +
		".gutter{color:#9ca3af;}" +
		slotCSS() +
		"h1{font-size:18px;margin-bottom:12px;}" +
		"</style></head><body>")

	title := opts.Title
	if title == "" && len(records) > 0 {
		title = records[0].Filename
	}
	b.WriteString(fmt.Sprintf("<h1>%s</h1>\n<pre>", html.EscapeString(title)))

	for i, row := range rows {
		b.WriteString("<div>")
		for _, span := range row.Spans {
			class := "gutter"
			if span.Slot != render.SlotNone {
				class = fmt.Sprintf("slot%d", span.Slot%config.PaletteSize)
			}
			fmt.Fprintf(&b, "<span class=\"%s\">%s</span>", class, html.EscapeString(span.Text))
		}
		fmt.Fprintf(&b, "<span class=\"gutter\"> │ </span><span class=\"content\">%s</span></div>\n",
			html.EscapeString(records[i].Content))
	}

	b.WriteString("</pre></body></html>")
	return b.String()
}

func slotCSS() string {
	var b strings.Builder
	for i, c := range config.DefaultTheme().Palette {
		fmt.Fprintf(&b, ".slot%d{color:%s;}", i, string(c))
	}
	return b.String()
}
