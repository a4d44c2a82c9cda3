// Package render lays out blame hunks as fixed-width annotation rows
// and assigns palette slots to commits.
package render

// Assigner maps commit identifiers to palette slots in first-seen
// order, wrapping when the palette is exhausted. A slot index is stable
// for the lifetime of one record sequence; Reset starts over when the
// sequence is replaced by another revision's records.
type Assigner struct {
	slots map[string]int
	next  int
	size  int
}

// NewAssigner returns an assigner cycling over size palette slots.
func NewAssigner(size int) *Assigner {
	if size < 1 {
		size = 1
	}
	return &Assigner{slots: make(map[string]int), size: size}
}

// SlotFor returns the palette slot for commit, allocating the next slot
// cyclically on first sight. The empty commit (working copy) gets a slot
// like any other identity.
func (a *Assigner) SlotFor(commit string) int {
	if slot, ok := a.slots[commit]; ok {
		return slot
	}
	slot := a.next % a.size
	a.slots[commit] = slot
	a.next++
	return slot
}

// Reset clears all assignments and restarts from the first slot.
func (a *Assigner) Reset() {
	a.slots = make(map[string]int)
	a.next = 0
}
