// Package history implements the bounded snapshot stack behind the canvas
// undo/redo surface.
package history

import (
	"time"

	"github.com/petrijr/crewcanvas/pkg/api"
)

// DefaultMaxSize is the snapshot cap used when New is given a
// non-positive size.
const DefaultMaxSize = 50

// History is a bounded undo/redo stack of deep-copied graph snapshots.
// It is not goroutine-safe; the owning controller serializes access.
type History struct {
	entries []api.Snapshot
	index   int
	maxSize int
}

// New creates an empty history holding at most maxSize snapshots.
func New(maxSize int) *History {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &History{index: -1, maxSize: maxSize}
}

// Push records a new snapshot. Any redo entries beyond the current index
// are discarded first: a push is truncate-then-append, which is what makes
// a stale redo branch unreachable after a new mutation. If the stack
// exceeds its cap the oldest entry is evicted, never the newest.
func (h *History) Push(nodes []api.Node, edges []api.Edge) {
	snap := api.Snapshot{
		Nodes:     api.CloneNodes(nodes),
		Edges:     api.CloneEdges(edges),
		Timestamp: time.Now(),
	}

	h.entries = append(h.entries[:h.index+1], snap)
	h.index++

	if len(h.entries) > h.maxSize {
		h.entries = h.entries[1:]
		h.index--
	}
}

// Undo steps back one snapshot and returns it, or nil at the left
// boundary. A nil return is a normal no-op, not an error.
func (h *History) Undo() *api.Snapshot {
	if h.index <= 0 {
		return nil
	}
	h.index--
	snap := h.entries[h.index].Clone()
	return &snap
}

// Redo steps forward one snapshot and returns it, or nil at the right
// boundary.
func (h *History) Redo() *api.Snapshot {
	if h.index >= len(h.entries)-1 {
		return nil
	}
	h.index++
	snap := h.entries[h.index].Clone()
	return &snap
}

// Current returns the snapshot at the cursor, or nil if the history is
// empty.
func (h *History) Current() *api.Snapshot {
	if h.index < 0 || h.index >= len(h.entries) {
		return nil
	}
	snap := h.entries[h.index].Clone()
	return &snap
}

// Clear resets the history to empty.
func (h *History) Clear() {
	h.entries = nil
	h.index = -1
}

// Len returns the number of stored snapshots.
func (h *History) Len() int { return len(h.entries) }

// Index returns the cursor position, -1 when empty.
func (h *History) Index() int { return h.index }

// CanUndo reports whether Undo would return a snapshot.
func (h *History) CanUndo() bool { return h.index > 0 }

// CanRedo reports whether Redo would return a snapshot.
func (h *History) CanRedo() bool { return h.index < len(h.entries)-1 }
