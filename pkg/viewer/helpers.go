package viewer

import (
	"image/color"
	"math"
)

// GreenToRedHSV maps progress v ∈ [0,1] along the path to a hue sweep from
// green (start) to red (end).
func GreenToRedHSV(v float64) color.RGBA {
	v = math.Max(0, math.Min(1, v))
	return hueColor((1 - v) * 120)
}

// hueColor converts a hue in degrees, at full saturation and value, to RGBA.
func hueColor(h float64) color.RGBA {
	// secondary channel strength within the 60-degree sector
	x := uint8(255 * (1 - math.Abs(math.Mod(h/60, 2)-1)))

	var r, g, b uint8
	switch int(h/60) % 6 {
	case 0:
		r, g, b = 255, x, 0
	case 1:
		r, g, b = x, 255, 0
	case 2:
		r, g, b = 0, 255, x
	case 3:
		r, g, b = 0, x, 255
	case 4:
		r, g, b = x, 0, 255
	default:
		r, g, b = 255, 0, x
	}

	return color.RGBA{R: r, G: g, B: b, A: 255}
}
