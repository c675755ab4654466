package gcd

import (
	"sort"

	"github.com/kpango/glg"
)

// RunKind classifies how a new move relates to the trailing records.
type RunKind int

const (
	// RunNone - the move starts no axis-aligned run
	RunNone RunKind = iota
	// RunHorizontal - three points sharing Y
	RunHorizontal
	// RunVertical - three points sharing X
	RunVertical
)

func (k RunKind) String() string {
	switch k {
	case RunHorizontal:
		return "horizontal"
	case RunVertical:
		return "vertical"
	default:
		return "none"
	}
}

// ClassifyRun reports whether appending next after the trailing moves prev and
// last would make a third point of an axis-aligned run. The horizontal check
// runs first: a degenerate move eligible for both counts as horizontal.
func ClassifyRun(prev, last, next Move) RunKind {
	if eq(last.Y, next.Y) && eq(prev.Y, next.Y) {
		return RunHorizontal
	}

	if eq(last.X, next.X) && eq(prev.X, next.X) {
		return RunVertical
	}

	return RunNone
}

// Document is an ordered sequence of move records. Insertion order is the
// path traversal order. It keeps at most one snapshot for undo.
type Document struct {
	records  []string
	snapshot []string
	hasSnap  bool
}

func NewDocument() *Document {
	return &Document{}
}

// Len returns the number of records.
func (d *Document) Len() int {
	return len(d.records)
}

// Records returns a copy of the record sequence.
func (d *Document) Records() []string {
	out := make([]string, len(d.records))
	copy(out, d.records)
	return out
}

// Moves re-parses every record into a Move, in order. Records that do not
// parse are skipped; the document only ever stores canonical move records, so
// in practice this returns one Move per record.
func (d *Document) Moves() []Move {
	moves := make([]Move, 0, len(d.records))
	for _, rec := range d.records {
		if m, ok := ParseMove(rec); ok {
			moves = append(moves, m)
		}
	}

	return moves
}

// Append adds the canonical record for (x, y). If the two trailing records
// and the new move all share Y (or, failing that, all share X) within Tol,
// the last record is overwritten instead: the third point of an axis-aligned
// run only slides the run's endpoint.
func (d *Document) Append(x, y float64) {
	next := Move{X: x, Y: y}
	rec := Record(x, y)

	if n := len(d.records); n >= 2 {
		last, okLast := ParseMove(d.records[n-1])
		prev, okPrev := ParseMove(d.records[n-2])
		if okLast && okPrev {
			if kind := ClassifyRun(prev, last, next); kind != RunNone {
				glg.Debugf("merging %s run: %q -> %q", kind, d.records[n-1], rec)
				d.records[n-1] = rec
				return
			}
		}
	}

	d.records = append(d.records, rec)
}

// RemoveAt deletes the records at the given 0-based positions. A snapshot is
// taken first. Indices out of range are ignored; duplicates delete once.
func (d *Document) RemoveAt(indices ...int) {
	if len(indices) == 0 {
		return
	}

	d.Snapshot()

	sorted := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	// descending order keeps the remaining indices valid while deleting
	deleted := -1
	for _, idx := range sorted {
		if idx < 0 || idx >= len(d.records) || idx == deleted {
			continue
		}
		d.records = append(d.records[:idx], d.records[idx+1:]...)
		deleted = idx
	}
}

// Clear empties the document. A snapshot is taken first. Asking the user for
// confirmation is the boundary's job, not the engine's.
func (d *Document) Clear() {
	d.Snapshot()
	d.reset()
}

func (d *Document) reset() {
	d.records = d.records[:0]
}

// Snapshot stores a full copy of the current records, replacing any previous
// snapshot. Single-level undo, not a stack.
func (d *Document) Snapshot() {
	d.snapshot = make([]string, len(d.records))
	copy(d.snapshot, d.records)
	d.hasSnap = true
}

// Restore copies the snapshot back and consumes it. Returns false when there
// is nothing to restore.
func (d *Document) Restore() bool {
	if !d.hasSnap {
		return false
	}

	d.records = d.snapshot
	d.snapshot = nil
	d.hasSnap = false

	return true
}
