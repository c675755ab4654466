package gcd

import "errors"

var (
	ErrEmptyDocument = errors.New("document has no records")
	ErrNoLimit       = errors.New("no stopping limit - set max X or max Y")
	ErrNoProgress    = errors.New("zero offsets would never reach a limit")
	ErrNoMoves       = errors.New("no usable X/Y moves")
	ErrBadRecord     = errors.New("record does not parse as a move")
	ErrBadNumber     = errors.New("not a valid number")
)
