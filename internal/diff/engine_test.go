package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeEqual(t *testing.T) {
	lines := Compute([]string{"a", "b"}, []string{"a", "b"})
	require.Len(t, lines, 2)
	for i, l := range lines {
		assert.Equal(t, Equal, l.Op)
		assert.Equal(t, i+1, l.LineA)
		assert.Equal(t, i+1, l.LineB)
	}
}

func TestComputeInsertAndDelete(t *testing.T) {
	lines := Compute([]string{"a", "b", "c"}, []string{"a", "c", "d"})

	added, removed := Stats(lines)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, added)

	var ops []Op
	for _, l := range lines {
		ops = append(ops, l.Op)
	}
	assert.Contains(t, ops, Removed)
	assert.Contains(t, ops, Added)
}

func TestComputeReplaceKeepsLineNumbers(t *testing.T) {
	lines := Compute([]string{"old"}, []string{"new"})
	require.Len(t, lines, 2)
	assert.Equal(t, Removed, lines[0].Op)
	assert.Equal(t, 1, lines[0].LineA)
	assert.Equal(t, 0, lines[0].LineB)
	assert.Equal(t, Added, lines[1].Op)
	assert.Equal(t, 1, lines[1].LineB)
}

func TestComputeEmptySides(t *testing.T) {
	assert.Empty(t, Compute(nil, nil))

	lines := Compute(nil, []string{"a"})
	require.Len(t, lines, 1)
	assert.Equal(t, Added, lines[0].Op)

	lines = Compute([]string{"a"}, nil)
	require.Len(t, lines, 1)
	assert.Equal(t, Removed, lines[0].Op)
}

func TestNaiveFallbackPairsPositionally(t *testing.T) {
	lines := naive([]string{"a", "x"}, []string{"a", "y", "z"})
	added, removed := Stats(lines)
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, removed)
}
