package gcd

import (
	"fmt"

	"github.com/kpango/glg"
)

// Limit is an optional axis bound for Expand. The zero value means "no bound".
type Limit struct {
	Set   bool
	Value float64
}

// Bound returns a set Limit.
func Bound(v float64) Limit {
	return Limit{Set: true, Value: v}
}

func (l Limit) exceeded(v float64) bool {
	return l.Set && v > l.Value
}

// Expand uses the document's current records as the base block and appends
// offset copies of it: group k is the base shifted by k*(dx, dy). Expansion
// stops at the first group containing any move past a set limit; that group
// is discarded whole, partial groups are never appended. Each appended move
// goes through Document.Append, so the run-merge rule applies within and
// across groups. Returns the number of whole groups appended.
func Expand(doc *Document, dx, dy float64, maxX, maxY Limit) (int, error) {
	if doc.Len() == 0 {
		return 0, ErrEmptyDocument
	}

	if !maxX.Set && !maxY.Set {
		return 0, ErrNoLimit
	}

	// with both offsets zero no group ever moves toward a limit; the loop
	// would either stop at k=1 or never
	if dx == 0 && dy == 0 {
		return 0, ErrNoProgress
	}

	base := make([]Move, 0, doc.Len())
	for _, rec := range doc.Records() {
		m, ok := ParseMove(rec)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrBadRecord, rec)
		}
		base = append(base, m)
	}

	// a delta pointing at no set limit can never trigger the stop condition;
	// unless the very first group already violates one, expansion would never
	// terminate
	if !(maxX.Set && dx > 0) && !(maxY.Set && dy > 0) {
		firstViolates := false
		for _, m := range base {
			if maxX.exceeded(m.X+dx) || maxY.exceeded(m.Y+dy) {
				firstViolates = true
				break
			}
		}
		if !firstViolates {
			return 0, ErrNoProgress
		}
	}

	doc.Snapshot()

	appended := 0
	for k := 1; ; k++ {
		group := make([]Move, 0, len(base))
		violates := false
		for _, m := range base {
			xn := m.X + dx*float64(k)
			yn := m.Y + dy*float64(k)
			if maxX.exceeded(xn) || maxY.exceeded(yn) {
				violates = true
				break
			}
			group = append(group, Move{X: xn, Y: yn})
		}

		if violates {
			break
		}

		for _, m := range group {
			doc.Append(m.X, m.Y)
		}
		appended++
	}

	if appended == 0 {
		glg.Info("no additional groups appended, limits already reached")
	}

	return appended, nil
}
