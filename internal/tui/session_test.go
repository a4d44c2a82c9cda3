package tui

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cj3636/gblame/internal/gitio"
	"github.com/cj3636/gblame/internal/history"
)

const (
	revFix  = "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef"
	revFeat = "cafef00dcafef00dcafef00dcafef00dcafef00d"
	revZero = "0000000000000000000000000000000000000000"
)

type blamedLine struct {
	commit  string
	author  string
	summary string
	content string
}

// porcelain builds `git blame --porcelain` output for the given lines,
// printing each commit's metadata only on first sight, the way git
// does.
func porcelain(lines []blamedLine) []string {
	var out []string
	seen := map[string]bool{}
	for i, l := range lines {
		n := strconv.Itoa(i + 1)
		out = append(out, l.commit+" "+n+" "+n)
		if !seen[l.commit] {
			seen[l.commit] = true
			out = append(out,
				"author "+l.author,
				"author-mail <"+l.author+"@example.com>",
				"author-time 1700000000",
				"author-tz +0000",
				"committer "+l.author,
				"committer-mail <"+l.author+"@example.com>",
				"committer-time 1700000000",
				"committer-tz +0000",
				"summary "+l.summary,
				"filename main.go",
			)
		}
		out = append(out, "\t"+l.content)
	}
	return out
}

// fakeGit replays canned results per revision and records the queries
// it served.
type fakeGit struct {
	blames     map[string]gitio.Result
	shows      map[string]gitio.Result
	blameRevs  []string
	contentArg []string
}

func (f *fakeGit) BlameFile(_ context.Context, _ string, rev string) gitio.Result {
	f.blameRevs = append(f.blameRevs, rev)
	if res, ok := f.blames[rev]; ok {
		return res
	}
	return gitio.Result{ExitCode: 128, Stderr: "fatal: bad revision '" + rev + "'"}
}

func (f *fakeGit) BlameContent(_ context.Context, _ string, content []string) gitio.Result {
	f.contentArg = content
	f.blameRevs = append(f.blameRevs, "<contents>")
	return f.blames["<contents>"]
}

func (f *fakeGit) ShowFile(_ context.Context, rev, _ string) gitio.Result {
	if res, ok := f.shows[rev]; ok {
		return res
	}
	return gitio.Result{ExitCode: 128, Stderr: "fatal: invalid object name '" + rev + "'"}
}

func (f *fakeGit) CommitDetail(_ context.Context, rev string) gitio.Result {
	return gitio.Result{Lines: []string{"commit " + rev}}
}

func workingBlame() gitio.Result {
	return gitio.Result{Lines: porcelain([]blamedLine{
		{revFix, "Alice", "fix parser", "package main"},
		{revFix, "Alice", "fix parser", ""},
		{revFeat, "Bob", "add feature", "func main() {}"},
	})}
}

func parentBlame() gitio.Result {
	return gitio.Result{Lines: porcelain([]blamedLine{
		{revFix, "Alice", "fix parser", "package main"},
	})}
}

func newTestSession(t *testing.T) (*Session, *fakeGit) {
	t.Helper()
	git := &fakeGit{
		blames: map[string]gitio.Result{"": workingBlame()},
		shows:  map[string]gitio.Result{},
	}
	s, err := OpenSession(git, "main.go", nil, 2)
	require.NoError(t, err)
	return s, git
}

func TestOpenSessionBlamesWorkingTree(t *testing.T) {
	s, _ := newTestSession(t)

	assert.Equal(t, "", s.Rev())
	assert.Len(t, s.Records(), 3)
	assert.Len(t, s.Hunks(), 2)
	assert.Equal(t, []string{"package main", "", "func main() {}"}, s.Content())
	assert.Equal(t, 1, s.HistoryLen())
	assert.False(t, s.CanGoBack())
	assert.False(t, s.CanGoForward())
}

func TestOpenSessionWithBufferUsesContentQuery(t *testing.T) {
	git := &fakeGit{blames: map[string]gitio.Result{"<contents>": workingBlame()}}
	buffer := []string{"unsaved line"}

	s, err := OpenSession(git, "main.go", buffer, 1)
	require.NoError(t, err)

	assert.Equal(t, buffer, git.contentArg)
	assert.Len(t, s.Records(), 3)
}

func TestOpenSessionFailure(t *testing.T) {
	git := &fakeGit{blames: map[string]gitio.Result{}}
	_, err := OpenSession(git, "main.go", nil, 1)

	var qerr *gitio.QueryError
	require.ErrorAs(t, err, &qerr)
}

func TestOpenSessionEmptyBlame(t *testing.T) {
	git := &fakeGit{blames: map[string]gitio.Result{"": {}}}
	_, err := OpenSession(git, "main.go", nil, 1)
	assert.ErrorIs(t, err, ErrEmptyBlame)
}

func TestReblameSwapsEverythingTogether(t *testing.T) {
	s, git := newTestSession(t)
	git.blames[revFix] = parentBlame()
	git.shows[revFix] = gitio.Result{Lines: []string{"historic content"}}
	gen := s.Generation()

	line, err := s.Reblame(context.Background(), revFix, 2)
	require.NoError(t, err)

	assert.Equal(t, 1, line, "cursor clamps to the new line count")
	assert.Equal(t, revFix, s.Rev())
	assert.Len(t, s.Records(), 1)
	assert.Equal(t, []string{"historic content"}, s.Content())
	assert.Equal(t, 2, s.HistoryLen())
	assert.True(t, s.CanGoBack())
	assert.Greater(t, s.Generation(), gen)
}

func TestReblameFailureLeavesStateUntouched(t *testing.T) {
	s, _ := newTestSession(t)
	before := s.Records()
	gen := s.Generation()

	_, err := s.Reblame(context.Background(), "nosuchrev", 1)

	var qerr *gitio.QueryError
	require.ErrorAs(t, err, &qerr)
	assert.Equal(t, before, s.Records())
	assert.Equal(t, "", s.Rev())
	assert.Equal(t, 1, s.HistoryLen())
	assert.Equal(t, gen, s.Generation())
}

func TestReblameContentFetchFailureLeavesStateUntouched(t *testing.T) {
	s, git := newTestSession(t)
	git.blames[revFix] = parentBlame()
	// ShowFile for revFix missing: fetch fails after a good blame

	_, err := s.Reblame(context.Background(), revFix, 1)

	require.Error(t, err)
	assert.Equal(t, "", s.Rev())
	assert.Len(t, s.Records(), 3)
	assert.Equal(t, 1, s.HistoryLen())
}

func TestGotoParentFromWorkingTreeTargetsLineCommit(t *testing.T) {
	s, git := newTestSession(t)
	git.blames[revFeat+"^"] = parentBlame()
	git.shows[revFeat+"^"] = gitio.Result{Lines: []string{"old"}}

	// line 3 belongs to revFeat
	_, err := s.GotoParent(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, revFeat+"^", s.Rev())
	assert.Equal(t, 2, s.HistoryLen())
}

func TestGotoParentFromRevisionAppendsOneSuffix(t *testing.T) {
	s, git := newTestSession(t)
	git.blames[revFix] = parentBlame()
	git.shows[revFix] = gitio.Result{Lines: []string{"x"}}
	git.blames[revFix+"^"] = parentBlame()
	git.shows[revFix+"^"] = gitio.Result{Lines: []string{"y"}}

	_, err := s.Reblame(context.Background(), revFix, 1)
	require.NoError(t, err)

	_, err = s.GotoParent(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, revFix+"^", s.Rev())
}

func TestGotoParentRefusesUncommittedLine(t *testing.T) {
	git := &fakeGit{blames: map[string]gitio.Result{"": {Lines: porcelain([]blamedLine{
		{revZero, "Not Committed Yet", "working copy", "draft"},
	})}}}
	s, err := OpenSession(git, "main.go", nil, 1)
	require.NoError(t, err)

	_, err = s.GotoParent(context.Background(), 1)
	assert.ErrorIs(t, err, ErrUncommittedLine)
	assert.Equal(t, 1, s.HistoryLen())
}

func TestBackAndForwardReplayWithoutPushing(t *testing.T) {
	s, git := newTestSession(t)
	git.blames[revFix] = parentBlame()
	git.shows[revFix] = gitio.Result{Lines: []string{"historic"}}

	_, err := s.Reblame(context.Background(), revFix, 3)
	require.NoError(t, err)

	line, err := s.Back(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", s.Rev())
	assert.Equal(t, 2, line, "line saved at open is restored")
	assert.Equal(t, 2, s.HistoryLen())

	_, err = s.Forward(context.Background())
	require.NoError(t, err)
	assert.Equal(t, revFix, s.Rev())
	assert.Equal(t, 2, s.HistoryLen())
}

func TestBackAtBoundaryFails(t *testing.T) {
	s, _ := newTestSession(t)
	_, err := s.Back(context.Background())
	assert.ErrorIs(t, err, history.ErrAtOldest)

	_, err = s.Forward(context.Background())
	assert.ErrorIs(t, err, history.ErrAtNewest)
}

func TestBackRollsBackCursorOnRefreshFailure(t *testing.T) {
	s, git := newTestSession(t)
	git.blames[revFix] = parentBlame()
	git.shows[revFix] = gitio.Result{Lines: []string{"historic"}}
	_, err := s.Reblame(context.Background(), revFix, 1)
	require.NoError(t, err)

	// make the working-tree refresh fail
	delete(git.blames, "")
	_, err = s.Back(context.Background())
	require.Error(t, err)

	// cursor rolled back: still on revFix, forward still impossible
	assert.Equal(t, revFix, s.Rev())
	assert.False(t, s.CanGoForward())
	assert.True(t, s.CanGoBack())
}

func TestNoteLineSurvivesRoundTrip(t *testing.T) {
	s, git := newTestSession(t)
	git.blames[revFix] = parentBlame()
	git.shows[revFix] = gitio.Result{Lines: []string{"historic"}}

	s.NoteLine(3)
	_, err := s.Reblame(context.Background(), revFix, 1)
	require.NoError(t, err)

	line, err := s.Back(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, line)
}

func TestCloseRestoresWorkingContent(t *testing.T) {
	s, git := newTestSession(t)
	git.blames[revFix] = parentBlame()
	git.shows[revFix] = gitio.Result{Lines: []string{"historic"}}
	_, err := s.Reblame(context.Background(), revFix, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"historic"}, s.Content())

	s.Close()

	assert.True(t, s.Closed())
	assert.Equal(t, "", s.Rev())
	assert.Equal(t, []string{"package main", "", "func main() {}"}, s.Content())

	_, err = s.Reblame(context.Background(), revFix, 1)
	assert.ErrorIs(t, err, ErrSessionClosed)
}
