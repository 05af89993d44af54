// Package history records grid edits as versions and replays them for undo/redo.
package history

import "asciid/core"

// Edit is a single cell change.
type Edit struct {
	Index int       `json:"index"`
	From  rune      `json:"from"`
	To    rune      `json:"to"`
	Tool  core.Tool `json:"tool"`
}

// Version is one undoable batch of edits.
type Version struct {
	edits []Edit
}

// NewVersion creates a version holding the given edits.
func NewVersion(edits ...Edit) Version {
	return Version{edits: append([]Edit(nil), edits...)}
}

// Push appends an edit.
func (v *Version) Push(index int, from, to rune, tool core.Tool) {
	v.edits = append(v.edits, Edit{Index: index, From: from, To: to, Tool: tool})
}

// PushUnique appends an edit unless the index was already recorded.
// Area tools hit the same cell many times per gesture; the first write holds the
// original content.
func (v *Version) PushUnique(index int, from, to rune, tool core.Tool) {
	for _, e := range v.edits {
		if e.Index == index {
			return
		}
	}
	v.Push(index, from, to, tool)
}

// Append adds every edit of other.
func (v *Version) Append(other Version) {
	v.edits = append(v.edits, other.edits...)
}

// Clear drops all edits.
func (v *Version) Clear() {
	v.edits = nil
}

// Len returns the number of edits.
func (v Version) Len() int {
	return len(v.edits)
}

// Edits returns the edits in recording order.
func (v Version) Edits() []Edit {
	return v.edits
}

// Writer receives raw content writes during undo/redo.
type Writer interface {
	SetContent(index int, r rune)
}

// History is a linear undo/redo log. Versions before the cursor are applied,
// versions from the cursor on can be redone.
type History struct {
	versions []Version
	index    int
	max      int // 0 means unbounded
}

// New creates an unbounded history.
func New() *History {
	return &History{}
}

// NewWithLimit creates a history that keeps at most max versions, dropping the
// oldest ones first.
func NewWithLimit(max int) *History {
	if max < 0 {
		max = 0
	}
	return &History{max: max}
}

// Restore replaces the log with saved versions and cursor. Empty versions are
// skipped, the limit is applied to the oldest versions first and the cursor
// is clamped into range.
func (h *History) Restore(versions []Version, index int) {
	h.versions = nil
	for _, v := range versions {
		if v.Len() > 0 {
			h.versions = append(h.versions, NewVersion(v.edits...))
		}
	}
	if h.max > 0 && len(h.versions) > h.max {
		drop := len(h.versions) - h.max
		h.versions = h.versions[drop:]
		index -= drop
	}
	h.index = min(max(index, 0), len(h.versions))
}

// Save records a version. Empty versions are dropped. Saving after an undo
// discards everything that could have been redone.
func (h *History) Save(v Version) {
	if v.Len() == 0 {
		return
	}

	if h.index < len(h.versions) {
		h.versions = h.versions[:h.index]
	}
	h.versions = append(h.versions, v)

	if h.max > 0 && len(h.versions) > h.max {
		h.versions = h.versions[len(h.versions)-h.max:]
	}
	h.index = len(h.versions)
}

// CanUndo returns true if there is an applied version.
func (h *History) CanUndo() bool {
	return h.index > 0
}

// CanRedo returns true if there is an undone version.
func (h *History) CanRedo() bool {
	return h.index < len(h.versions)
}

// Undo reverts the last applied version by writing every edit's From value.
// Edits are replayed newest first so a cell touched twice ends at its oldest value.
func (h *History) Undo(w Writer) bool {
	if !h.CanUndo() {
		return false
	}

	h.index--
	edits := h.versions[h.index].edits
	for i := len(edits) - 1; i >= 0; i-- {
		w.SetContent(edits[i].Index, edits[i].From)
	}
	return true
}

// Redo reapplies the next undone version by writing every edit's To value.
func (h *History) Redo(w Writer) bool {
	if !h.CanRedo() {
		return false
	}

	for _, e := range h.versions[h.index].edits {
		w.SetContent(e.Index, e.To)
	}
	h.index++
	return true
}

// Clear clears all history.
func (h *History) Clear() {
	h.versions = nil
	h.index = 0
}

// Stats returns current position and total versions.
func (h *History) Stats() (current, total int) {
	return h.index, len(h.versions)
}

// Versions returns the recorded versions, oldest first.
func (h *History) Versions() []Version {
	return h.versions
}
