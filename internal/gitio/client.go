package gitio

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cj3636/gblame/internal/logging"
)

// Result is the outcome of one git query: its stdout split into lines,
// plus the exit status and stderr text. A non-zero status is a query
// failure; zero lines with a zero status is an empty (but valid) result.
type Result struct {
	Lines    []string
	ExitCode int
	Stderr   string
}

// Failed reports whether the query exited non-zero.
func (r Result) Failed() bool {
	return r.ExitCode != 0
}

// Empty reports whether the query produced no output lines.
func (r Result) Empty() bool {
	return len(r.Lines) == 0
}

// Err converts a failed result into a QueryError, nil otherwise.
func (r Result) Err(op string) error {
	if !r.Failed() {
		return nil
	}
	return &QueryError{Op: op, ExitCode: r.ExitCode, Stderr: r.Stderr}
}

// QueryError is a git invocation that exited non-zero. The stderr text
// is what gets surfaced to the user.
type QueryError struct {
	Op       string
	ExitCode int
	Stderr   string
}

func (e *QueryError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("git %s: exit status %d", e.Op, e.ExitCode)
	}
	return fmt.Sprintf("git %s: %s", e.Op, e.Stderr)
}

// ParentRev appends the first-parent suffix to a revision spec.
func ParentRev(rev string) string {
	return rev + "^"
}

// Client issues blame and content queries against one repository.
type Client struct {
	root string
	exec Executor
	log  zerolog.Logger
}

// NewClient locates the repository containing startDir and returns a
// client rooted there.
func NewClient(exec Executor, startDir string) (*Client, error) {
	res := exec.RunDir(context.Background(), startDir, "git", "rev-parse", "--show-toplevel")
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("git repository not detected at %s: %s", startDir, res.Stderr)
	}
	root := strings.TrimSpace(string(res.Stdout))
	if root == "" {
		return nil, fmt.Errorf("git repository not detected at %s", startDir)
	}
	return &Client{root: root, exec: exec, log: logging.Component("gitio")}, nil
}

// Root returns the repository top-level directory.
func (c *Client) Root() string {
	return c.root
}

// RelPath converts path to a repo-relative, slash-separated path.
func (c *Client) RelPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(c.root, abs)
	if err != nil {
		return "", fmt.Errorf("%s is outside repository %s: %w", path, c.root, err)
	}
	return filepath.ToSlash(rel), nil
}

// BlameFile annotates path at rev, or the working tree when rev is
// empty, in porcelain format.
func (c *Client) BlameFile(ctx context.Context, path, rev string) Result {
	args := []string{"blame", "--porcelain"}
	if rev != "" {
		args = append(args, rev)
	}
	args = append(args, "--", path)
	return c.query(ctx, nil, args...)
}

// BlameContent annotates an in-memory buffer as if it were the working
// copy of path. Used for unsaved content piped in on stdin.
func (c *Client) BlameContent(ctx context.Context, path string, content []string) Result {
	stdin := strings.NewReader(joinLines(content))
	args := []string{"blame", "--porcelain", "--contents", "-", "--", path}
	return c.query(ctx, stdin, args...)
}

// ShowFile fetches the content of path at rev.
func (c *Client) ShowFile(ctx context.Context, rev, path string) Result {
	return c.query(ctx, nil, "show", rev+":"+path)
}

// CommitDetail fetches the header block of rev without its patch.
func (c *Client) CommitDetail(ctx context.Context, rev string) Result {
	return c.query(ctx, nil, "show", "--no-patch", "--date=iso", rev)
}

func (c *Client) query(ctx context.Context, stdin *strings.Reader, args ...string) Result {
	var res ExecResult
	if stdin != nil {
		res = c.exec.RunDirInput(ctx, c.root, stdin, "git", args...)
	} else {
		res = c.exec.RunDir(ctx, c.root, "git", args...)
	}
	c.log.Debug().
		Strs("args", args).
		Int("exit", res.ExitCode).
		Int("bytes", len(res.Stdout)).
		Msg("git query")
	return Result{
		Lines:    splitLines(string(res.Stdout)),
		ExitCode: res.ExitCode,
		Stderr:   res.Stderr,
	}
}

// splitLines splits command output into lines without a phantom final
// empty line, and with "" mapping to no lines at all.
func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
