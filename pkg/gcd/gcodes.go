package gcd

// GCode represents a gcode or mcode word (e.g. G1, M3)
type GCode string

// list of codes used in this project. See https://marlinfw.org/docs/gcode/G000-G001.html
const (
	// G1 is a linear move
	G1 GCode = "G1"
	// M3 turns the spindle on
	M3 GCode = "M3"
	// M5 turns the spindle off
	M5 GCode = "M5"

	GCodeMove       = G1
	GCodeSpindleOn  = M3
	GCodeSpindleOff = M5
)
