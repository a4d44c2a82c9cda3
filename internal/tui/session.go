package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cj3636/gblame/internal/blame"
	"github.com/cj3636/gblame/internal/config"
	"github.com/cj3636/gblame/internal/gitio"
	"github.com/cj3636/gblame/internal/history"
	"github.com/cj3636/gblame/internal/logging"
	"github.com/cj3636/gblame/internal/render"
)

// Queryer is the slice of gitio.Client the session depends on.
type Queryer interface {
	BlameFile(ctx context.Context, path, rev string) gitio.Result
	BlameContent(ctx context.Context, path string, content []string) gitio.Result
	ShowFile(ctx context.Context, rev, path string) gitio.Result
	CommitDetail(ctx context.Context, rev string) gitio.Result
}

var (
	// ErrEmptyBlame means the file has no attribution lines (new or
	// untracked). Informational, not a query failure.
	ErrEmptyBlame = errors.New("file has no blame data (new or untracked file)")
	// ErrUncommittedLine rejects navigation that needs a committed
	// revision under the cursor.
	ErrUncommittedLine = errors.New("line is not committed yet")
	// ErrSessionClosed rejects operations after Close.
	ErrSessionClosed = errors.New("blame session is closed")
)

// Session owns one blame navigation: the current record sequence, the
// visited-revision stack, the color table, and the displayed content.
// Revision changes are all-or-nothing; a failed query leaves every part
// of the session untouched.
type Session struct {
	git  Queryer
	path string

	rev     string // displayed revision, empty for the working copy
	records []blame.Record
	hunks   []blame.Hunk
	content []string
	colors  *render.Assigner
	stack   *history.Stack

	// working is the content shown when the session opened; Close
	// restores it so a shared view never ends on historical text.
	working []string
	// buffer is non-nil when blaming unsaved text instead of the file
	// on disk.
	buffer []string

	generation int
	closed     bool
	log        zerolog.Logger
}

// OpenSession blames the working state of path and seeds the history
// stack at line. A non-nil buffer is blamed in place of the on-disk
// file.
func OpenSession(git Queryer, path string, buffer []string, line int) (*Session, error) {
	s := &Session{
		git:    git,
		path:   path,
		buffer: buffer,
		colors: render.NewAssigner(config.PaletteSize),
		log:    logging.Component("session"),
	}
	line, err := s.load(context.Background(), "", line)
	if err != nil {
		return nil, err
	}
	s.working = s.content
	s.stack = history.New(history.Entry{Kind: history.KindInitial, Line: line})
	return s, nil
}

// Records returns the current record sequence.
func (s *Session) Records() []blame.Record { return s.records }

// Hunks returns the hunks derived from the current records.
func (s *Session) Hunks() []blame.Hunk { return s.hunks }

// Content returns the displayed file content, line by line.
func (s *Session) Content() []string { return s.content }

// Rev returns the displayed revision, empty for the working copy.
func (s *Session) Rev() string { return s.rev }

// Path returns the repo-relative file path being blamed.
func (s *Session) Path() string { return s.path }

// Colors returns the session's palette slot assigner.
func (s *Session) Colors() *render.Assigner { return s.colors }

// Generation increments on every successful revision swap and on
// Close. Deferred callbacks compare it to drop stale work.
func (s *Session) Generation() int { return s.generation }

// Closed reports whether Close has run.
func (s *Session) Closed() bool { return s.closed }

// CanGoBack reports whether an older visited revision exists.
func (s *Session) CanGoBack() bool { return s.stack.CanGoBack() }

// CanGoForward reports whether a newer visited revision exists.
func (s *Session) CanGoForward() bool { return s.stack.CanGoForward() }

// HistoryLen returns the number of visited entries.
func (s *Session) HistoryLen() int { return s.stack.Len() }

// RecordAt returns the record for a 1-based line.
func (s *Session) RecordAt(line int) (blame.Record, bool) {
	if line < 1 || line > len(s.records) {
		return blame.Record{}, false
	}
	return s.records[line-1], true
}

// NoteLine stores the cursor line on the current history entry so that
// returning to it later restores the position.
func (s *Session) NoteLine(line int) {
	s.stack.SetCurrentLine(line)
}

// Reblame re-derives attribution at rev (empty for the working copy)
// and pushes a history entry. It returns the cursor line clamped to the
// new line count.
func (s *Session) Reblame(ctx context.Context, rev string, line int) (int, error) {
	line, err := s.load(ctx, rev, line)
	if err != nil {
		return 0, err
	}
	s.stack.Push(history.Entry{Rev: rev, Kind: history.KindReblame, Line: line})
	return line, nil
}

// GotoParent steps one revision further into the past. From the
// working copy it targets the parent of the commit under the cursor;
// from a historical revision it appends one first-parent suffix to the
// revision being displayed.
func (s *Session) GotoParent(ctx context.Context, line int) (int, error) {
	rec, ok := s.RecordAt(line)
	if !ok {
		return 0, fmt.Errorf("no record at line %d", line)
	}
	if !rec.Committed() {
		return 0, ErrUncommittedLine
	}

	target := gitio.ParentRev(s.rev)
	if s.rev == "" {
		target = gitio.ParentRev(rec.Commit)
	}

	line, err := s.load(ctx, target, line)
	if err != nil {
		return 0, err
	}
	s.stack.Push(history.Entry{Rev: target, Kind: history.KindParent, Line: line})
	return line, nil
}

// Back moves to the previous visited revision. No entry is pushed; on
// a refresh failure the history cursor is rolled back so position and
// displayed content never diverge.
func (s *Session) Back(ctx context.Context) (int, error) {
	entry, err := s.stack.Back()
	if err != nil {
		return 0, err
	}
	line, err := s.load(ctx, entry.Rev, entry.Line)
	if err != nil {
		_, _ = s.stack.Forward()
		return 0, err
	}
	return line, nil
}

// Forward moves to the next visited revision, with the same rollback
// guarantee as Back.
func (s *Session) Forward(ctx context.Context) (int, error) {
	entry, err := s.stack.Forward()
	if err != nil {
		return 0, err
	}
	line, err := s.load(ctx, entry.Rev, entry.Line)
	if err != nil {
		_, _ = s.stack.Back()
		return 0, err
	}
	return line, nil
}

// Close restores the working content and invalidates the session. Any
// deferred callbacks still holding an older generation become no-ops.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.content = s.working
	s.rev = ""
	s.generation++
	s.closed = true
	s.log.Debug().Str("path", s.path).Msg("session closed")
}

// load runs the blame query for rev, parses it, fetches the matching
// content, and swaps everything in atomically. On any failure the
// session state is left exactly as it was.
func (s *Session) load(ctx context.Context, rev string, line int) (int, error) {
	if s.closed {
		return 0, ErrSessionClosed
	}

	var res gitio.Result
	switch {
	case rev == "" && s.buffer != nil:
		res = s.git.BlameContent(ctx, s.path, s.buffer)
	default:
		res = s.git.BlameFile(ctx, s.path, rev)
	}
	if err := res.Err("blame"); err != nil {
		s.log.Warn().Str("rev", rev).Err(err).Msg("blame query failed")
		return 0, err
	}

	records := blame.Parse(res.Lines, blame.NewCache())
	if len(records) == 0 {
		return 0, ErrEmptyBlame
	}
	hunks := blame.Aggregate(records)

	var content []string
	if rev == "" {
		content = make([]string, len(records))
		for i, r := range records {
			content[i] = r.Content
		}
	} else {
		show := s.git.ShowFile(ctx, rev, s.path)
		if err := show.Err("show"); err != nil {
			s.log.Warn().Str("rev", rev).Err(err).Msg("content fetch failed")
			return 0, err
		}
		content = show.Lines
	}

	s.records = records
	s.hunks = hunks
	s.content = content
	s.rev = rev
	s.colors.Reset()
	s.generation++

	s.log.Info().
		Str("rev", rev).
		Int("lines", len(records)).
		Int("hunks", len(hunks)).
		Msg("blame loaded")

	return clampLine(line, len(records)), nil
}

func clampLine(line, max int) int {
	if line > max {
		line = max
	}
	if line < 1 {
		line = 1
	}
	return line
}
