// Package history tracks the revisions a blame session has visited so
// the user can move back and forward through them.
package history

import "errors"

// Kind records how an entry was reached.
type Kind int

const (
	// KindInitial is the seed entry created when the session opens.
	KindInitial Kind = iota
	// KindReblame is a jump to an explicitly chosen revision.
	KindReblame
	// KindParent is a step to the parent of the displayed revision.
	KindParent
)

// Entry is one visited state. Rev is empty for the working tree.
type Entry struct {
	Rev  string
	Kind Kind
	Line int
}

var (
	// ErrAtOldest is returned by Back at the start of the stack.
	ErrAtOldest = errors.New("history: already at oldest revision")
	// ErrAtNewest is returned by Forward at the end of the stack.
	ErrAtNewest = errors.New("history: already at newest revision")
)

// Stack is an undo-tree style list of visited entries. The cursor is a
// 1-based index pointing at the entry currently displayed. Pushing while
// not at the end discards the abandoned forward branch.
type Stack struct {
	entries []Entry
	cursor  int
}

// New returns a stack seeded with the given entry, cursor on it.
func New(initial Entry) *Stack {
	return &Stack{entries: []Entry{initial}, cursor: 1}
}

// Current returns the entry the cursor points at.
func (s *Stack) Current() Entry {
	return s.entries[s.cursor-1]
}

// SetCurrentLine updates the cursor position stored on the current
// entry, so returning to it later restores the latest line.
func (s *Stack) SetCurrentLine(line int) {
	s.entries[s.cursor-1].Line = line
}

// Len returns the number of entries.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Push records a newly displayed revision. Pushing the revision already
// at the cursor only updates its line; otherwise any entries after the
// cursor are discarded before appending.
func (s *Stack) Push(e Entry) {
	if s.entries[s.cursor-1].Rev == e.Rev {
		s.entries[s.cursor-1].Line = e.Line
		return
	}
	s.entries = s.entries[:s.cursor]
	s.entries = append(s.entries, e)
	s.cursor = len(s.entries)
}

// CanGoBack reports whether an older entry exists.
func (s *Stack) CanGoBack() bool {
	return s.cursor > 1
}

// CanGoForward reports whether a newer entry exists.
func (s *Stack) CanGoForward() bool {
	return s.cursor < len(s.entries)
}

// Back moves the cursor one entry older and returns it.
func (s *Stack) Back() (Entry, error) {
	if !s.CanGoBack() {
		return Entry{}, ErrAtOldest
	}
	s.cursor--
	return s.Current(), nil
}

// Forward moves the cursor one entry newer and returns it.
func (s *Stack) Forward() (Entry, error) {
	if !s.CanGoForward() {
		return Entry{}, ErrAtNewest
	}
	s.cursor++
	return s.Current(), nil
}
