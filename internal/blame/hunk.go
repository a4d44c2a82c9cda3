package blame

import "time"

// Hunk is a maximal run of consecutive records that share the same
// commit, author, and summary.
type Hunk struct {
	Commit     string
	Author     string
	AuthorTime time.Time
	Summary    string
	StartLine  int // 1-based line of the first record in the run
	Lines      int
}

// Aggregate groups records into hunks, preserving input order. Hunks are
// recomputed from scratch whenever the record sequence changes.
func Aggregate(records []Record) []Hunk {
	var hunks []Hunk
	for _, rec := range records {
		if n := len(hunks); n > 0 {
			h := &hunks[n-1]
			if h.Commit == rec.Commit && h.Author == rec.Author && h.Summary == rec.Summary {
				h.Lines++
				continue
			}
		}
		hunks = append(hunks, Hunk{
			Commit:     rec.Commit,
			Author:     rec.Author,
			AuthorTime: rec.AuthorTime,
			Summary:    rec.Summary,
			StartLine:  rec.FinalLine,
			Lines:      1,
		})
	}
	return hunks
}
