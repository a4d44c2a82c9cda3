package tui

import (
	"context"

	"github.com/cj3636/gblame/internal/diff"
	"github.com/cj3636/gblame/internal/gitio"
)

// Detail holds everything the commit overlay shows for one revision:
// the header lines from git show and the file's diff against the
// commit's first parent.
type Detail struct {
	Rev    string
	Header []string
	Diff   []diff.Line
}

// LoadDetail fetches the overlay data for rev. A missing parent (root
// commit, shallow clone) is not an error; the diff is computed against
// an empty old side instead.
func LoadDetail(ctx context.Context, git Queryer, rev, path string) (*Detail, error) {
	header := git.CommitDetail(ctx, rev)
	if err := header.Err("show"); err != nil {
		return nil, err
	}

	after := git.ShowFile(ctx, rev, path)
	if err := after.Err("show"); err != nil {
		return nil, err
	}

	var before []string
	if prev := git.ShowFile(ctx, gitio.ParentRev(rev), path); !prev.Failed() {
		before = prev.Lines
	}

	return &Detail{
		Rev:    rev,
		Header: header.Lines,
		Diff:   diff.Compute(before, after.Lines),
	}, nil
}
