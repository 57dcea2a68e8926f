package gui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type shapeKind uint8

const (
	shapeLine shapeKind = iota
	shapeCircle
)

type shape struct {
	kind           shapeKind
	x0, y0, x1, y1 float32
	size           float32
	c              color.NRGBA
}

// displayList records one field frame during Update so Draw can replay it.
// It keeps the shapes of the last rendered frame while the field is paused.
type displayList struct {
	width, height int
	shapes        []shape
}

func (d *displayList) Resize(w, h int) { d.width, d.height = w, h }
func (d *displayList) Clear()          { d.shapes = d.shapes[:0] }

func (d *displayList) Line(x0, y0, x1, y1, width float64, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	d.shapes = append(d.shapes, shape{
		kind: shapeLine,
		x0:   float32(x0), y0: float32(y0), x1: float32(x1), y1: float32(y1),
		size: float32(width),
		c:    c,
	})
}

func (d *displayList) Circle(x, y, r float64, c color.NRGBA) {
	if c.A == 0 || r <= 0 {
		return
	}
	d.shapes = append(d.shapes, shape{kind: shapeCircle, x0: float32(x), y0: float32(y), size: float32(r), c: c})
}

func (d *displayList) draw(screen *ebiten.Image) {
	for _, s := range d.shapes {
		switch s.kind {
		case shapeLine:
			vector.StrokeLine(screen, s.x0, s.y0, s.x1, s.y1, s.size, s.c, true)
		case shapeCircle:
			vector.DrawFilledCircle(screen, s.x0, s.y0, s.size, s.c, true)
		}
	}
}
