package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cj3636/gblame/internal/config"
	"github.com/cj3636/gblame/internal/diff"
	"github.com/cj3636/gblame/internal/render"
)

// restoreCursorMsg re-applies a saved cursor line after a revision
// swap. Generation guards against a swap that happened in between.
type restoreCursorMsg struct {
	generation int
	line       int
}

// keyMap binds the configured key sequences to semantic actions.
type keyMap struct {
	Quit         key.Binding
	ToggleHelp   key.Binding
	ScrollDown   key.Binding
	ScrollUp     key.Binding
	PageDown     key.Binding
	PageUp       key.Binding
	GoTop        key.Binding
	GoBottom     key.Binding
	SwitchPane   key.Binding
	Reblame      key.Binding
	GotoParent   key.Binding
	Back         key.Binding
	Forward      key.Binding
	CommitDetail key.Binding
	CloseDetail  key.Binding
}

func newKeyMap(kb config.Keybindings) keyMap {
	bind := func(action, help string) key.Binding {
		keys := kb[action]
		return key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(keys, "/"), help),
		)
	}
	return keyMap{
		Quit:         bind("quit", "quit"),
		ToggleHelp:   bind("toggle_help", "help"),
		ScrollDown:   bind("scroll_down", "down"),
		ScrollUp:     bind("scroll_up", "up"),
		PageDown:     bind("page_down", "half page down"),
		PageUp:       bind("page_up", "half page up"),
		GoTop:        bind("go_top", "top"),
		GoBottom:     bind("go_bottom", "bottom"),
		SwitchPane:   bind("switch_pane", "switch pane"),
		Reblame:      bind("reblame", "reblame at commit"),
		GotoParent:   bind("goto_parent", "parent revision"),
		Back:         bind("back", "back"),
		Forward:      bind("forward", "forward"),
		CommitDetail: bind("commit_detail", "commit detail"),
		CloseDetail:  bind("close_detail", "close"),
	}
}

// viewportPane adapts one of the model's viewports to the synchronizer.
// Both panes share the single cursor line.
type viewportPane struct {
	id     paneID
	vp     *viewport.Model
	cursor *int
}

func (p *viewportPane) ID() paneID             { return p.id }
func (p *viewportPane) ScrollView() ScrollView { return ScrollView{Top: p.vp.YOffset, Cursor: *p.cursor} }
func (p *viewportPane) CursorLine() int        { return *p.cursor }
func (p *viewportPane) SetCursorLine(line int) { *p.cursor = line }
func (p *viewportPane) SetScrollView(v ScrollView) {
	p.vp.SetYOffset(v.Top)
	*p.cursor = v.Cursor
}

// Model represents the application state
type Model struct {
	session *Session
	config  *config.Config
	styles  *Styles
	keys    keyMap
	sync    *Synchronizer

	gutterVP  viewport.Model
	contentVP viewport.Model
	detailVP  viewport.Model

	cursor  int // 1-based line, shared by both panes
	focused paneID
	width   int
	height  int

	showHelp bool
	detail   *Detail
	notice   string
	err      error

	helpPanelHeight int
}

// NewModel creates a new TUI model around an open blame session.
func NewModel(session *Session, cfg *config.Config) Model {
	return Model{
		session:         session,
		config:          cfg,
		styles:          createStyles(cfg.Theme),
		keys:            newKeyMap(cfg.Keybindings),
		sync:            NewSynchronizer(),
		cursor:          1,
		focused:         paneContent,
		helpPanelHeight: 10,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.detail != nil {
			return m.handleDetailKey(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.detail != nil {
			var cmd tea.Cmd
			m.detailVP, cmd = m.detailVP.Update(msg)
			return m, cmd
		}
		return m.handleMouse(msg)

	case restoreCursorMsg:
		if msg.generation == m.session.Generation() {
			m.setCursor(msg.line)
			m.refreshPanes()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.refreshPanes()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.session.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.ToggleHelp):
		m.showHelp = !m.showHelp
		m.layout()
	case key.Matches(msg, m.keys.ScrollDown):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.ScrollUp):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.halfPage())
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.halfPage())
	case key.Matches(msg, m.keys.GoTop):
		m.setCursor(1)
	case key.Matches(msg, m.keys.GoBottom):
		m.setCursor(len(m.session.Records()))
	case key.Matches(msg, m.keys.SwitchPane):
		if m.focused == paneContent {
			m.focused = paneGutter
		} else {
			m.focused = paneContent
		}
	case key.Matches(msg, m.keys.Reblame):
		return m.reblameAtCursor()
	case key.Matches(msg, m.keys.GotoParent):
		return m.gotoParent()
	case key.Matches(msg, m.keys.Back):
		return m.historyMove(m.session.Back)
	case key.Matches(msg, m.keys.Forward):
		return m.historyMove(m.session.Forward)
	case key.Matches(msg, m.keys.CommitDetail):
		return m.openDetail()
	default:
		return m, nil
	}

	m.refreshPanes()
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.session.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.CloseDetail), key.Matches(msg, m.keys.CommitDetail):
		m.detail = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.detailVP, cmd = m.detailVP.Update(msg)
	return m, cmd
}

// handleMouse lets the focused viewport scroll and mirrors the result
// onto the other pane.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focused == paneGutter {
		m.gutterVP, cmd = m.gutterVP.Update(msg)
		m.sync.OnScroll(m.pane(paneGutter), m.pane(paneContent))
	} else {
		m.contentVP, cmd = m.contentVP.Update(msg)
		m.sync.OnScroll(m.pane(paneContent), m.pane(paneGutter))
	}
	return m, cmd
}

func (m *Model) reblameAtCursor() (tea.Model, tea.Cmd) {
	rec, ok := m.session.RecordAt(m.cursor)
	if !ok {
		return *m, nil
	}
	if !rec.Committed() {
		m.notice = "line is not committed yet"
		return *m, nil
	}
	m.session.NoteLine(m.cursor)
	line, err := m.session.Reblame(context.Background(), rec.Commit, m.cursor)
	return m.afterNavigation(line, err)
}

func (m *Model) gotoParent() (tea.Model, tea.Cmd) {
	m.session.NoteLine(m.cursor)
	line, err := m.session.GotoParent(context.Background(), m.cursor)
	return m.afterNavigation(line, err)
}

func (m *Model) historyMove(move func(context.Context) (int, error)) (tea.Model, tea.Cmd) {
	m.session.NoteLine(m.cursor)
	line, err := move(context.Background())
	return m.afterNavigation(line, err)
}

// afterNavigation applies the outcome of a session move: on success the
// panes re-render at the top and a deferred command restores the
// cursor; on failure the old view stays and the error becomes a notice.
func (m *Model) afterNavigation(line int, err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.notice = err.Error()
		return *m, nil
	}

	m.cursor = 1
	m.gutterVP.GotoTop()
	m.contentVP.GotoTop()
	m.refreshPanes()

	gen := m.session.Generation()
	return *m, tea.Tick(10*time.Millisecond, func(time.Time) tea.Msg {
		return restoreCursorMsg{generation: gen, line: line}
	})
}

func (m *Model) openDetail() (tea.Model, tea.Cmd) {
	rec, ok := m.session.RecordAt(m.cursor)
	if !ok {
		return *m, nil
	}
	if !rec.Committed() {
		m.notice = "line is not committed yet"
		return *m, nil
	}

	detail, err := LoadDetail(context.Background(), m.session.git, rec.Commit, m.session.Path())
	if err != nil {
		m.notice = err.Error()
		return *m, nil
	}

	m.detail = detail
	m.detailVP = viewport.New(m.width-4, max(m.height-6, 5))
	m.detailVP.SetContent(m.renderDetailBody())
	return *m, nil
}

// pane returns the synchronizer adapter for one of the two viewports.
func (m *Model) pane(id paneID) Pane {
	if id == paneGutter {
		return &viewportPane{id: paneGutter, vp: &m.gutterVP, cursor: &m.cursor}
	}
	return &viewportPane{id: paneContent, vp: &m.contentVP, cursor: &m.cursor}
}

func (m *Model) moveCursor(delta int) {
	m.setCursor(m.cursor + delta)
}

func (m *Model) setCursor(line int) {
	m.cursor = clampLine(line, len(m.session.Records()))
	m.scrollCursorIntoView()
}

// scrollCursorIntoView adjusts the focused pane so the cursor line is
// visible, then mirrors the scroll position onto the other pane.
func (m *Model) scrollCursorIntoView() {
	vp := &m.contentVP
	src, dst := paneContent, paneGutter
	if m.focused == paneGutter {
		vp = &m.gutterVP
		src, dst = paneGutter, paneContent
	}

	row := m.cursor - 1
	switch {
	case row < vp.YOffset:
		vp.SetYOffset(row)
	case row >= vp.YOffset+vp.Height:
		vp.SetYOffset(row - vp.Height + 1)
	}

	m.sync.OnScroll(m.pane(src), m.pane(dst))
}

func (m *Model) halfPage() int {
	half := m.contentVP.Height / 2
	if half < 1 {
		half = 1
	}
	return half
}

// layout sizes the viewports from the terminal dimensions and the
// toggled panels.
func (m *Model) layout() {
	gutterWidth := m.config.GutterWidth
	if gutterWidth >= m.width-20 && m.width > 0 {
		gutterWidth = max(m.width/3, 10)
	}

	// title + status bar
	paneHeight := m.height - 2
	if m.showHelp {
		paneHeight -= m.helpPanelHeight
	}
	if paneHeight < 3 {
		paneHeight = 3
	}

	contentWidth := max(m.width-gutterWidth-1, 10)

	m.gutterVP = viewport.New(gutterWidth, paneHeight)
	m.contentVP = viewport.New(contentWidth, paneHeight)
	m.scrollCursorIntoView()
}

// refreshPanes re-renders both pane bodies from the session state.
func (m *Model) refreshPanes() {
	if m.width == 0 {
		return
	}

	selected := ""
	if rec, ok := m.session.RecordAt(m.cursor); ok {
		selected = rec.Commit
	}

	rows := render.Render(m.session.Hunks(), m.gutterVP.Width, m.session.Colors())
	var gutter strings.Builder
	for i, row := range rows {
		if i > 0 {
			gutter.WriteByte('\n')
		}
		gutter.WriteString(m.renderGutterRow(row, row.Commit == selected && selected != "", row.Line == m.cursor))
	}
	m.gutterVP.SetContent(gutter.String())

	tab := strings.Repeat(" ", m.config.TabSize)
	var content strings.Builder
	for i, text := range m.session.Content() {
		if i > 0 {
			content.WriteByte('\n')
		}
		content.WriteString(m.renderContentLine(i+1, strings.ReplaceAll(text, "\t", tab)))
	}
	m.contentVP.SetContent(content.String())
}

func (m *Model) renderGutterRow(row render.Row, active, underCursor bool) string {
	var b strings.Builder
	for _, span := range row.Spans {
		if span.Slot == render.SlotNone {
			b.WriteString(m.styles.content.Render(span.Text))
			continue
		}
		b.WriteString(m.styles.slotStyle(span.Slot, active).Render(span.Text))
	}
	if underCursor {
		return m.styles.selected.Render(b.String())
	}
	return b.String()
}

func (m *Model) renderContentLine(line int, text string) string {
	no := m.styles.lineNumber.Render(fmt.Sprintf("%5d", line))
	body := m.styles.content.Render(" " + text)
	if line == m.cursor {
		body = m.styles.selected.Render(" " + text)
	}
	return no + body
}

// View renders the UI
func (m Model) View() string {
	if m.err != nil {
		return m.styles.errText.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	}
	if m.width == 0 {
		return "loading..."
	}

	var sections []string
	sections = append(sections, m.renderTitle())
	sections = append(sections,
		lipgloss.JoinHorizontal(lipgloss.Top, m.gutterVP.View(), " ", m.contentVP.View()))

	if m.showHelp {
		sections = append(sections, m.renderHelpPanel())
	}
	sections = append(sections, m.renderStatusBar())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.detail != nil {
		content = lipgloss.JoinVertical(lipgloss.Left, content, m.renderDetail())
	}

	return content
}

// renderTitle renders the title bar
func (m Model) renderTitle() string {
	rev := m.session.Rev()
	if rev == "" {
		rev = "working tree"
	} else {
		rev = render.ShortID(rev)
	}
	return m.styles.title.Render(fmt.Sprintf("gblame: %s @ %s", m.session.Path(), rev))
}

// renderStatusBar renders the status bar
func (m Model) renderStatusBar() string {
	pane := "content"
	if m.focused == paneGutter {
		pane = "gutter"
	}

	status := fmt.Sprintf(
		"Line %d/%d | History %d | Pane: %s | r:reblame p:parent b:back f:forward enter:detail ?:help q:quit",
		m.cursor, len(m.session.Records()),
		m.session.HistoryLen(), pane,
	)
	if m.notice != "" {
		status = m.styles.notice.Render(m.notice)
	}
	return m.styles.statusBar.Width(m.width).Render(status)
}

// renderHelpPanel renders the help panel below the main view
func (m Model) renderHelpPanel() string {
	helpText := []string{
		"",
		"Keyboard Shortcuts:",
		"  j, ↓      Cursor down     │  r         Reblame at line's commit",
		"  k, ↑      Cursor up       │  p, ~      Go to parent revision",
		"  d / u     Half page       │  b, ctrl+o Back in history",
		"  g / G     Top / bottom    │  f, ctrl+i Forward in history",
		"  tab       Switch pane     │  enter     Commit detail",
		"  ?         Toggle help     │  q         Quit",
		"",
	}

	helpStyle := m.styles.help.
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(m.config.Theme.BorderFg).
		Padding(0, 1).
		Width(m.width - 2)

	return helpStyle.Render(strings.Join(helpText, "\n"))
}

func (m Model) renderDetail() string {
	header := m.styles.title.Render("Commit " + render.ShortID(m.detail.Rev) + " (esc to close)")
	return m.styles.modal.Width(m.width - 4).Render(header + "\n" + m.detailVP.View())
}

// renderDetailBody lays out the overlay text: the commit header
// followed by the file's diff against its parent.
func (m Model) renderDetailBody() string {
	var lines []string
	for _, l := range m.detail.Header {
		lines = append(lines, m.styles.content.Render(l))
	}
	lines = append(lines, "")

	for _, dl := range m.detail.Diff {
		switch dl.Op {
		case diff.Added:
			lines = append(lines, m.styles.added.Render("+ "+dl.Content))
		case diff.Removed:
			lines = append(lines, m.styles.removed.Render("- "+dl.Content))
		default:
			lines = append(lines, m.styles.content.Render("  "+dl.Content))
		}
	}

	return strings.Join(lines, "\n")
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
