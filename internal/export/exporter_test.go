package export

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cj3636/gblame/internal/blame"
)

func exportRecords() []blame.Record {
	mk := func(commit, author, summary, content string, line int) blame.Record {
		return blame.Record{
			Commit:     commit,
			Author:     author,
			AuthorTime: time.Unix(1700000000, 0),
			Summary:    summary,
			FinalLine:  line,
			Content:    content,
		}
	}
	return []blame.Record{
		mk("deadbeefdeadbeef", "Alice", "fix", "package main", 1),
		mk("deadbeefdeadbeef", "Alice", "fix", "", 2),
		mk("cafef00dcafef00d", "Bob", "feat", "func main() {}", 3),
	}
}

func TestRenderRejectsEmptyInput(t *testing.T) {
	_, err := Render(nil, FormatANSI, Options{})
	assert.Error(t, err)
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	_, err := Render(exportRecords(), Format("pdf"), Options{})
	assert.Error(t, err)
}

func TestRenderMarkdown(t *testing.T) {
	out, err := Render(exportRecords(), FormatMarkdown, Options{Title: "main.go", GutterWidth: 30})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# main.go\n"))
	assert.Contains(t, out, "```\n")
	assert.Contains(t, out, "deadbeef")
	assert.Contains(t, out, "│ package main")
	// one listing line per record
	assert.Equal(t, len(exportRecords()), strings.Count(out, "│"))
}

func TestRenderANSIColorsEveryLine(t *testing.T) {
	out, err := Render(exportRecords(), FormatANSI, Options{GutterWidth: 30})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Contains(t, line, "\u001b[")
		assert.Contains(t, line, "\u001b[0m")
	}
}

func TestRenderHTMLEscapesContent(t *testing.T) {
	records := exportRecords()
	records[0].Content = "<script>alert(1)</script>"

	out, err := Render(records, FormatHTML, Options{Title: "x < y"})
	require.NoError(t, err)

	assert.NotContains(t, out, "<script>alert")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "x &lt; y")
	assert.Contains(t, out, "class=\"slot0\"")
}

func TestCopyToClipboardWrapsOSC52(t *testing.T) {
	var b strings.Builder
	require.NoError(t, CopyToClipboard("hello", &b))

	out := b.String()
	assert.True(t, strings.HasPrefix(out, "\u001b]52;c;"))
	assert.Contains(t, out, base64.StdEncoding.EncodeToString([]byte("hello")))
}
