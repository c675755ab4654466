// Package viewer renders a static preview of the toolpath in ebiten.
package viewer

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/image/colornames"

	"github.com/BrandenOwens/Two-Axis-Pattern-G-Code-Generator/pkg/gcd"
)

var _ ebiten.Game = &Viewer{}

const (
	canvasW = 800
	canvasH = 600
)

var (
	backgroundColor = colornames.Black
	gridColor       = colornames.Gray
)

// Viewer renders the move sequence once into an image and displays it,
// with mouse-wheel zoom.
type Viewer struct {
	scale   float64
	moves   []gcd.Move
	current *ebiten.Image
}

func NewViewer(moves []gcd.Move) *Viewer {
	result := &Viewer{
		scale: 1,
		moves: moves,
	}

	result.current = result.render()
	return result
}

// bounds returns the drawing window: min/max over the path plus padding of
// 5% of each span, at least 1.0 per axis.
func bounds(moves []gcd.Move) (minX, minY, maxX, maxY float64) {
	if len(moves) == 0 {
		return 0, 0, 10, 10
	}

	minX, maxX = moves[0].X, moves[0].X
	minY, maxY = moves[0].Y, moves[0].Y
	for _, m := range moves[1:] {
		if m.X < minX {
			minX = m.X
		}
		if m.X > maxX {
			maxX = m.X
		}
		if m.Y < minY {
			minY = m.Y
		}
		if m.Y > maxY {
			maxY = m.Y
		}
	}

	padX := (maxX - minX) * 0.05
	if padX < 1 {
		padX = 1
	}
	padY := (maxY - minY) * 0.05
	if padY < 1 {
		padY = 1
	}

	return minX - padX, minY - padY, maxX + padX, maxY + padY
}

func (v *Viewer) render() *ebiten.Image {
	dest := ebiten.NewImage(canvasW, canvasH)
	dest.Fill(backgroundColor)

	minX, minY, maxX, maxY := bounds(v.moves)
	scaleX := canvasW / (maxX - minX)
	scaleY := canvasH / (maxY - minY)

	// machine Y grows up, screen Y grows down
	toScreen := func(m gcd.Move) (float64, float64) {
		return (m.X - minX) * scaleX, canvasH - (m.Y-minY)*scaleY
	}

	// axis lines where the machine zero crosses the window
	if minX <= 0 && 0 <= maxX {
		x, _ := toScreen(gcd.Move{})
		ebitenutil.DrawLine(dest, x, 0, x, canvasH, gridColor)
	}
	if minY <= 0 && 0 <= maxY {
		_, y := toScreen(gcd.Move{})
		ebitenutil.DrawLine(dest, 0, y, canvasW, y, gridColor)
	}

	for i := 1; i < len(v.moves); i++ {
		x0, y0 := toScreen(v.moves[i-1])
		x1, y1 := toScreen(v.moves[i])

		// early segments green, late segments red
		c := GreenToRedHSV(float64(i) / float64(len(v.moves)))
		ebitenutil.DrawLine(dest, x0, y0, x1, y1, c)
	}

	return dest
}

func (v *Viewer) Update() error {
	_, wheelY := ebiten.Wheel()
	v.scale += wheelY * 0.1
	if v.scale < 1 {
		v.scale = 1
	}

	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	mouseX, mouseY := ebiten.CursorPosition()
	if mouseX < 0 {
		mouseX = 0
	}

	if mouseY < 0 {
		mouseY = 0
	}

	renderable := v.current.SubImage(image.Rect(
		int((v.scale-1)*float64(mouseX)), int((v.scale-1)*float64(mouseY)),
		int(canvasW+(v.scale-1)*float64(mouseX)), int(canvasH+(v.scale-1)*float64(mouseY))))

	if renderable.Bounds().Dx() == 0 || renderable.Bounds().Dy() == 0 {
		renderable = v.current
	}

	geom := ebiten.GeoM{}
	geom.Scale(v.scale, v.scale)
	screen.DrawImage(ebiten.NewImageFromImage(renderable),
		&ebiten.DrawImageOptions{
			GeoM: geom,
		})
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return outsideWidth, outsideHeight
}
