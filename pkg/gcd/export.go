package gcd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/kpango/glg"
)

// DefaultFeed is appended to the first exported record when it carries no
// feed-rate field of its own.
const DefaultFeed = "F200"

// ImportText offers every line of r to ParseMove. Lines that yield no move
// (comments, spindle tokens, malformed or incomplete pairs) are counted and
// skipped; a per-line miss never fails the import.
func ImportText(r io.Reader) (moves []Move, skipped int, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		m, ok := ParseMove(scanner.Text())
		if !ok {
			skipped++
			continue
		}
		moves = append(moves, m)
	}

	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("read import: %w", err)
	}

	return moves, skipped, nil
}

// ApplyImport appends parsed moves to the document, optionally replacing its
// contents first. Exactly one snapshot covers the whole operation, so a
// single undo reverts it. With zero moves the document is left untouched.
func ApplyImport(doc *Document, moves []Move, replace bool) error {
	if len(moves) == 0 {
		return ErrNoMoves
	}

	doc.Snapshot()
	if replace {
		doc.reset()
	}

	for _, m := range moves {
		doc.Append(m.X, m.Y)
	}

	glg.Debugf("imported %d moves (replace=%v), document now %d records", len(moves), replace, doc.Len())

	return nil
}

// Export wraps the document's records into the machine command stream:
// a leading spindle-on token, the records (the first one gaining a default
// feed rate if it has none), and a trailing spindle-off token.
func Export(doc *Document) ([]string, error) {
	records := doc.Records()
	if len(records) == 0 {
		return nil, ErrEmptyDocument
	}

	first := records[0]
	if !hasFeed(first) {
		first += " " + DefaultFeed
	}

	out := make([]string, 0, len(records)+2)
	out = append(out, string(GCodeSpindleOn), first)
	out = append(out, records[1:]...)
	out = append(out, string(GCodeSpindleOff))

	return out, nil
}

// hasFeed detects an existing feed field: an F preceded by whitespace.
func hasFeed(record string) bool {
	return strings.Contains(record, " F") || strings.Contains(record, "\tF")
}

// WriteProgram exports the document and writes it to w, newline-terminated.
func WriteProgram(w io.Writer, doc *Document) error {
	lines, err := Export(doc)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, strings.Join(lines, "\n")+"\n"); err != nil {
		return fmt.Errorf("write program: %w", err)
	}

	return nil
}
