package gcd

import (
	"errors"
	"fmt"

	"github.com/kpango/glg"
	"github.com/rustyoz/svg"
)

// ImportSVG extracts moves from SVG drawing instructions. Move and line
// instructions become Moves (scaled); curves are flattened to their endpoint;
// circle, close and paint instructions are skipped and counted. The toolpath
// document only holds straight-line moves, so this is a lossy import by
// design of the output format, not of the SVG.
func ImportSVG(data []byte, scale float64) (moves []Move, skipped int, err error) {
	parsed, err := svg.ParseSvg(string(data), "", 1)
	if err != nil {
		return nil, 0, fmt.Errorf("parse svg: %w", err)
	}

	instructions, errs := parsed.ParseDrawingInstructions()
	if instructions == nil || errs == nil {
		return nil, 0, errors.New("nil instruction stream")
	}

	for {
		select {
		case cmd := <-instructions:
			if cmd == nil {
				return moves, skipped, nil
			}

			switch cmd.Kind {
			case svg.MoveInstruction, svg.LineInstruction:
				moves = append(moves, Move{X: cmd.M[0] * scale, Y: cmd.M[1] * scale})
			case svg.CurveInstruction:
				glg.Warn("curve flattened to its endpoint")
				moves = append(moves, Move{X: cmd.CurvePoints.T[0] * scale, Y: cmd.CurvePoints.T[1] * scale})
			case svg.CircleInstruction:
				glg.Warn("circle not supported, skipping")
				skipped++
			case svg.CloseInstruction, svg.PaintInstruction:
				skipped++
			}
		case err := <-errs:
			if err != nil {
				return nil, 0, fmt.Errorf("svg instructions: %w", err)
			}
		}
	}
}
