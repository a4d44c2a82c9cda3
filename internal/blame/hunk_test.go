package blame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(commit, author, summary string, line int) Record {
	return Record{
		Commit:     commit,
		Author:     author,
		AuthorTime: time.Unix(1700000000, 0),
		Summary:    summary,
		FinalLine:  line,
		Content:    "content",
	}
}

func TestAggregateEmpty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
	assert.Empty(t, Aggregate([]Record{}))
}

func TestAggregateGroupsConsecutiveRuns(t *testing.T) {
	records := []Record{
		rec(idFix, "Alice", "fix", 1),
		rec(idFix, "Alice", "fix", 2),
		rec(idFix, "Alice", "fix", 3),
		rec(idFeat, "Bob", "feat", 4),
		rec(idFeat, "Bob", "feat", 5),
	}

	hunks := Aggregate(records)
	require.Len(t, hunks, 2)

	assert.Equal(t, idFix, hunks[0].Commit)
	assert.Equal(t, 3, hunks[0].Lines)
	assert.Equal(t, 1, hunks[0].StartLine)

	assert.Equal(t, idFeat, hunks[1].Commit)
	assert.Equal(t, 2, hunks[1].Lines)
	assert.Equal(t, 4, hunks[1].StartLine)
}

func TestAggregateSplitsOnAnyFieldMismatch(t *testing.T) {
	tests := []struct {
		name   string
		second Record
	}{
		{"commit differs", rec(idFeat, "Alice", "fix", 2)},
		{"author differs", rec(idFix, "Bob", "fix", 2)},
		{"summary differs", rec(idFix, "Alice", "feat", 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hunks := Aggregate([]Record{rec(idFix, "Alice", "fix", 1), tt.second})
			assert.Len(t, hunks, 2)
		})
	}
}

func TestAggregateNonAdjacentRunsStaySeparate(t *testing.T) {
	records := []Record{
		rec(idFix, "Alice", "fix", 1),
		rec(idFeat, "Bob", "feat", 2),
		rec(idFix, "Alice", "fix", 3),
	}

	hunks := Aggregate(records)
	require.Len(t, hunks, 3)
	assert.Equal(t, hunks[0].Commit, hunks[2].Commit)
}

func TestAggregateIdempotentOnExpandedOutput(t *testing.T) {
	records := []Record{
		rec(idFix, "Alice", "fix", 1),
		rec(idFix, "Alice", "fix", 2),
		rec(idFeat, "Bob", "feat", 3),
	}
	first := Aggregate(records)

	// Re-expand each hunk to one record per line and aggregate again.
	var expanded []Record
	line := 1
	for _, h := range first {
		for i := 0; i < h.Lines; i++ {
			expanded = append(expanded, Record{
				Commit:     h.Commit,
				Author:     h.Author,
				AuthorTime: h.AuthorTime,
				Summary:    h.Summary,
				FinalLine:  line,
			})
			line++
		}
	}
	second := Aggregate(expanded)
	assert.Equal(t, first, second)
}
