// Package gcd implements the move-document engine behind the G-code generator:
// canonical numeric text, a tolerant per-line move parser, the ordered move
// document with its run-merge rule and single-slot undo snapshot, the
// batch-offset loop expander and the import/export service.
package gcd

import (
	"math"
	"strconv"
	"strings"
)

// Tol is the absolute tolerance used for all coordinate comparisons.
// Repeated offset arithmetic accumulates float noise well below this.
const Tol = 1e-9

// Canon parses text as a real number and returns its canonical form.
// Returns "" if the text is not a number.
func Canon(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return ""
	}

	return CanonFloat(v)
}

// CanonFloat renders v canonically: integers without a decimal point,
// everything else with up to 6 decimal digits, trailing zeros stripped.
// NaN and infinities have no canonical form and yield "".
func CanonFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}

	if math.Abs(v-math.Round(v)) < Tol {
		// past this magnitude int64 would overflow; the value is integral
		// anyway, so format it directly
		if math.Abs(v) >= 1e15 {
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
		return strconv.FormatInt(int64(math.Round(v)), 10)
	}

	text := strconv.FormatFloat(v, 'f', 6, 64)
	text = strings.TrimRight(text, "0")
	text = strings.TrimSuffix(text, ".")

	return text
}

func eq(a, b float64) bool {
	return math.Abs(a-b) <= Tol
}
