// Package gcgen ties the move-document engine to presentation layers: a
// Session owns one document and exposes the operations a UI, CLI or HTTP
// surface drives.
package gcgen

import (
	"fmt"
	"io"
	"strconv"

	"github.com/kpango/glg"

	"github.com/BrandenOwens/Two-Axis-Pattern-G-Code-Generator/pkg/gcd"
)

// Session owns a single move document. It is not safe for concurrent use;
// callers exposing it as a service must keep one mutation in flight at a
// time (see pkg/server).
type Session struct {
	doc *gcd.Document
}

func NewSession() *Session {
	return &Session{doc: gcd.NewDocument()}
}

// Document exposes the underlying document for engine-level calls.
func (s *Session) Document() *gcd.Document {
	return s.doc
}

// Preview builds the live preview line for partially entered coordinates,
// with "?" standing in for whatever is still missing or unparsable.
func Preview(xText, yText string) string {
	x, y := gcd.Canon(xText), gcd.Canon(yText)
	if x == "" {
		x = "?"
	}
	if y == "" {
		y = "?"
	}

	return fmt.Sprintf("%s X%s Y%s", gcd.GCodeMove, x, y)
}

// Submit canonicalizes both coordinates and appends the move. Either
// coordinate failing to parse rejects the submit before any mutation.
// Returns the record that was appended (or that overwrote a run endpoint).
func (s *Session) Submit(xText, yText string) (string, error) {
	xc, yc := gcd.Canon(xText), gcd.Canon(yText)
	if xc == "" || yc == "" {
		return "", fmt.Errorf("%w: X=%q Y=%q", gcd.ErrBadNumber, xText, yText)
	}

	// canonical text always re-parses
	x, _ := strconv.ParseFloat(xc, 64)
	y, _ := strconv.ParseFloat(yc, 64)

	s.doc.Snapshot()
	s.doc.Append(x, y)

	records := s.doc.Records()

	return records[len(records)-1], nil
}

// Undo restores the state before the last mutating operation. Reports false
// when there is no snapshot to restore.
func (s *Session) Undo() bool {
	return s.doc.Restore()
}

func (s *Session) RemoveAt(indices ...int) {
	s.doc.RemoveAt(indices...)
}

func (s *Session) Clear() {
	s.doc.Clear()
}

// Loop appends offset copies of the current records until a limit is
// exceeded. See gcd.Expand.
func (s *Session) Loop(dx, dy float64, maxX, maxY gcd.Limit) (int, error) {
	return gcd.Expand(s.doc, dx, dy, maxX, maxY)
}

// ImportFrom parses moves out of arbitrary text and applies them, replacing
// the current records if replace is set. Returns how many moves were imported
// and how many lines were skipped.
func (s *Session) ImportFrom(r io.Reader, replace bool) (imported, skipped int, err error) {
	moves, skipped, err := gcd.ImportText(r)
	if err != nil {
		return 0, 0, err
	}

	if err := gcd.ApplyImport(s.doc, moves, replace); err != nil {
		return 0, skipped, err
	}

	glg.Infof("imported %d moves (skipped %d)", len(moves), skipped)

	return len(moves), skipped, nil
}

// ImportSVGFrom extracts moves from SVG data and applies them.
func (s *Session) ImportSVGFrom(data []byte, scale float64, replace bool) (imported, skipped int, err error) {
	moves, skipped, err := gcd.ImportSVG(data, scale)
	if err != nil {
		return 0, 0, err
	}

	if err := gcd.ApplyImport(s.doc, moves, replace); err != nil {
		return 0, skipped, err
	}

	return len(moves), skipped, nil
}

// ExportLines returns the wrapped command stream.
func (s *Session) ExportLines() ([]string, error) {
	return gcd.Export(s.doc)
}

// ExportTo writes the wrapped command stream to w.
func (s *Session) ExportTo(w io.Writer) error {
	return gcd.WriteProgram(w, s.doc)
}

// Moves returns the current toolpath for rendering. Read-only.
func (s *Session) Moves() []gcd.Move {
	return s.doc.Moves()
}

// Records returns the current record texts for display.
func (s *Session) Records() []string {
	return s.doc.Records()
}
