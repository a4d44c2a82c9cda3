package tui

// paneID identifies one of the two synchronized panes.
type paneID int

const (
	paneGutter paneID = iota
	paneContent
)

// ScrollView is a pane's saved scroll state. The horizontal offset is
// always forced back to zero when a view is mirrored.
type ScrollView struct {
	Top    int
	Cursor int
}

// Pane is the viewport surface the synchronizer mirrors between. Both
// the annotation gutter and the content view implement it.
type Pane interface {
	ID() paneID
	ScrollView() ScrollView
	SetScrollView(ScrollView)
	CursorLine() int
	SetCursorLine(line int)
}

// syncState tracks which pane, if any, is currently driving a mirror
// write. Modeling it as a state instead of a boolean makes the illegal
// transition (starting a sync while one is running) explicit.
type syncState int

const (
	syncIdle syncState = iota
	syncFromGutter
	syncFromContent
)

// Synchronizer mirrors cursor and scroll positions between the two
// panes. The non-idle state is held across the read of the source and
// the write to the target, so the echo event the write provokes on the
// target pane is dropped instead of bouncing back and forth.
type Synchronizer struct {
	state syncState
}

// NewSynchronizer returns an idle synchronizer.
func NewSynchronizer() *Synchronizer {
	return &Synchronizer{state: syncIdle}
}

func stateFor(id paneID) syncState {
	if id == paneGutter {
		return syncFromGutter
	}
	return syncFromContent
}

// OnCursorMove mirrors src's cursor line onto dst, resetting dst's
// column. It reports whether the event was applied or suppressed as a
// reentrant echo.
func (s *Synchronizer) OnCursorMove(src, dst Pane) bool {
	if s.state != syncIdle {
		return false
	}
	s.state = stateFor(src.ID())
	defer func() { s.state = syncIdle }()

	dst.SetCursorLine(src.CursorLine())
	return true
}

// OnScroll copies src's scroll view onto dst. Same reentrancy rules as
// OnCursorMove.
func (s *Synchronizer) OnScroll(src, dst Pane) bool {
	if s.state != syncIdle {
		return false
	}
	s.state = stateFor(src.ID())
	defer func() { s.state = syncIdle }()

	dst.SetScrollView(src.ScrollView())
	return true
}
