package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoPane simulates a view whose write callbacks fire synchronously,
// the way a real viewport event handler would re-enter the
// synchronizer when its state is mutated.
type echoPane struct {
	id     paneID
	view   ScrollView
	writes int

	// onWrite is invoked after every mutation, standing in for the
	// pane's own change event.
	onWrite func(self *echoPane)
}

func (p *echoPane) ID() paneID              { return p.id }
func (p *echoPane) ScrollView() ScrollView  { return p.view }
func (p *echoPane) CursorLine() int         { return p.view.Cursor }
func (p *echoPane) SetCursorLine(line int) {
	p.view.Cursor = line
	p.writes++
	if p.onWrite != nil {
		p.onWrite(p)
	}
}
func (p *echoPane) SetScrollView(v ScrollView) {
	p.view = v
	p.writes++
	if p.onWrite != nil {
		p.onWrite(p)
	}
}

func TestOnScrollMirrorsView(t *testing.T) {
	sync := NewSynchronizer()
	gutter := &echoPane{id: paneGutter, view: ScrollView{Top: 7, Cursor: 9}}
	content := &echoPane{id: paneContent}

	applied := sync.OnScroll(gutter, content)

	assert.True(t, applied)
	assert.Equal(t, ScrollView{Top: 7, Cursor: 9}, content.view)
	assert.Equal(t, 1, content.writes)
}

func TestOnCursorMoveMirrorsCursorOnly(t *testing.T) {
	sync := NewSynchronizer()
	content := &echoPane{id: paneContent, view: ScrollView{Top: 3, Cursor: 12}}
	gutter := &echoPane{id: paneGutter, view: ScrollView{Top: 3, Cursor: 1}}

	applied := sync.OnCursorMove(content, gutter)

	assert.True(t, applied)
	assert.Equal(t, 12, gutter.view.Cursor)
	assert.Equal(t, 3, gutter.view.Top)
}

func TestMirroredWriteDoesNotBounceBack(t *testing.T) {
	sync := NewSynchronizer()
	gutter := &echoPane{id: paneGutter, view: ScrollView{Top: 5, Cursor: 5}}
	content := &echoPane{id: paneContent}

	// The mirror write onto content fires content's own scroll event,
	// which tries to sync back onto the gutter. That echo must be
	// suppressed: exactly one write on content, none on the gutter.
	bounced := false
	content.onWrite = func(self *echoPane) {
		bounced = sync.OnScroll(self, gutter) || bounced
	}

	applied := sync.OnScroll(gutter, content)

	require.True(t, applied)
	assert.False(t, bounced, "echo event must be suppressed")
	assert.Equal(t, 1, content.writes)
	assert.Equal(t, 0, gutter.writes)
}

func TestSynchronizerIdleAfterSuppressedEcho(t *testing.T) {
	sync := NewSynchronizer()
	gutter := &echoPane{id: paneGutter, view: ScrollView{Top: 2, Cursor: 2}}
	content := &echoPane{id: paneContent}
	content.onWrite = func(self *echoPane) { sync.OnScroll(self, gutter) }

	sync.OnScroll(gutter, content)

	// a later, genuine event on the content pane syncs normally
	content.onWrite = nil
	content.view = ScrollView{Top: 11, Cursor: 13}
	assert.True(t, sync.OnScroll(content, gutter))
	assert.Equal(t, ScrollView{Top: 11, Cursor: 13}, gutter.view)
}

func TestCursorEchoSuppressed(t *testing.T) {
	sync := NewSynchronizer()
	gutter := &echoPane{id: paneGutter, view: ScrollView{Cursor: 4}}
	content := &echoPane{id: paneContent}
	content.onWrite = func(self *echoPane) {
		assert.False(t, sync.OnCursorMove(self, gutter))
	}

	require.True(t, sync.OnCursorMove(gutter, content))
	assert.Equal(t, 0, gutter.writes)
}
