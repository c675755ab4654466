package gcd

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Move is a single planar destination in the toolpath.
type Move struct {
	X, Y float64
}

// Eq compares two moves within Tol on both axes.
func (m Move) Eq(other Move) bool {
	return eq(m.X, other.X) && eq(m.Y, other.Y)
}

// Record builds the canonical textual record for a move to (x, y).
func Record(x, y float64) string {
	return fmt.Sprintf("%s X%s Y%s", GCodeMove, CanonFloat(x), CanonFloat(y))
}

// ParseMove extracts X and Y from a G-code-ish line. Comments (after ';' or
// '#') are ignored, spindle tokens are not moves. A malformed number on an
// X/Y token fails the whole line. ParseMove never fails with an error - a
// line either yields a move or it does not.
func ParseMove(line string) (Move, bool) {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return Move{}, false
	}

	upper := strings.ToUpper(line)
	if strings.HasPrefix(upper, string(M3)) || strings.HasPrefix(upper, string(M5)) {
		return Move{}, false
	}

	var (
		x, y         float64
		haveX, haveY bool
	)

	tokens := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	for _, token := range tokens {
		switch token[0] {
		case 'X', 'x':
			v, ok := parseCoord(token[1:])
			if !ok {
				return Move{}, false
			}
			x, haveX = v, true
		case 'Y', 'y':
			v, ok := parseCoord(token[1:])
			if !ok {
				return Move{}, false
			}
			y, haveY = v, true
		}
	}

	if !haveX || !haveY {
		return Move{}, false
	}

	return Move{X: x, Y: y}, true
}

// parseCoord accepts only finite numbers. strconv happily parses "NaN" and
// "Inf", neither of which has a canonical record form.
func parseCoord(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	return v, true
}
