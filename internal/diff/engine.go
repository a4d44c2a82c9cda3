// Package diff computes a line diff between two revisions of a file,
// used by the commit detail view.
package diff

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// Op classifies a diff line.
type Op int

const (
	Equal Op = iota
	Added
	Removed
)

// Line is one line of the computed diff. LineA/LineB are 1-based line
// numbers in the old and new revision, 0 where not applicable.
type Line struct {
	Op      Op
	Content string
	LineA   int
	LineB   int
}

// Compute diffs two revisions of a file's lines. When the sequence
// matcher fails it falls back to a naive positional pairing rather than
// reporting an error.
func Compute(a, b []string) []Line {
	opcodes, err := opCodes(a, b)
	if err != nil {
		return naive(a, b)
	}

	var lines []Line
	lineA, lineB := 1, 1
	for _, op := range opcodes {
		switch op.Tag {
		case 'e':
			for i := op.I1; i < op.I2; i++ {
				lines = append(lines, Line{Op: Equal, Content: a[i], LineA: lineA, LineB: lineB})
				lineA++
				lineB++
			}
		case 'd':
			for i := op.I1; i < op.I2; i++ {
				lines = append(lines, Line{Op: Removed, Content: a[i], LineA: lineA})
				lineA++
			}
		case 'i':
			for j := op.J1; j < op.J2; j++ {
				lines = append(lines, Line{Op: Added, Content: b[j], LineB: lineB})
				lineB++
			}
		case 'r':
			for i := op.I1; i < op.I2; i++ {
				lines = append(lines, Line{Op: Removed, Content: a[i], LineA: lineA})
				lineA++
			}
			for j := op.J1; j < op.J2; j++ {
				lines = append(lines, Line{Op: Added, Content: b[j], LineB: lineB})
				lineB++
			}
		}
	}
	return lines
}

// Stats counts added and removed lines.
func Stats(lines []Line) (added, removed int) {
	for _, l := range lines {
		switch l.Op {
		case Added:
			added++
		case Removed:
			removed++
		}
	}
	return added, removed
}

func opCodes(a, b []string) (opcodes []difflib.OpCode, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sequence matcher: %v", r)
		}
	}()
	return difflib.NewMatcher(a, b).GetOpCodes(), nil
}

func naive(a, b []string) []Line {
	var lines []Line
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		switch {
		case i < len(a) && i < len(b) && a[i] == b[i]:
			lines = append(lines, Line{Op: Equal, Content: a[i], LineA: i + 1, LineB: i + 1})
		default:
			if i < len(a) {
				lines = append(lines, Line{Op: Removed, Content: a[i], LineA: i + 1})
			}
			if i < len(b) {
				lines = append(lines, Line{Op: Added, Content: b[i], LineB: i + 1})
			}
		}
	}
	return lines
}
