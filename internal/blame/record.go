// Package blame parses git blame porcelain output into per-line
// attribution records and groups them into hunks.
package blame

import "time"

// Record is the attribution for a single line of the blamed file.
// Commit is empty when the line has not been committed yet.
type Record struct {
	Commit        string
	Author        string
	AuthorMail    string
	AuthorTime    time.Time
	AuthorTZ      string
	Committer     string
	CommitterMail string
	CommitterTime time.Time
	CommitterTZ   string
	Summary       string
	Previous      string
	Filename      string
	OrigLine      int
	FinalLine     int
	Content       string
}

// Committed reports whether the line belongs to a committed revision.
func (r Record) Committed() bool {
	return r.Commit != ""
}

// isZeroID reports whether id is the all-zero identifier git uses for
// lines that only exist in the working copy.
func isZeroID(id string) bool {
	if id == "" {
		return false
	}
	for _, c := range id {
		if c != '0' {
			return false
		}
	}
	return true
}
