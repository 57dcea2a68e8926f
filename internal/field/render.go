package field

import (
	"image/color"
	"math"
)

// Surface is a 2D drawing target addressed in field units. Resize is
// called before every frame and should be cheap when the size is unchanged.
type Surface interface {
	Resize(width, height int)
	Clear()
	Line(x0, y0, x1, y1, width float64, c color.NRGBA)
	Circle(x, y, r float64, c color.NRGBA)
}

// Render clears s and draws the current connections and nodes.
func (f *Field) Render(s Surface) {
	if f.inert() || s == nil {
		return
	}
	p := f.cfg.Palette
	s.Resize(int(math.Ceil(f.width)), int(math.Ceil(f.height)))
	s.Clear()

	for _, c := range f.conns {
		a, b := f.nodes[c.A], f.nodes[c.B]
		s.Line(a.X, a.Y, b.X, b.Y, p.Glow.Width, tint(p.Glow.Color, p.Glow.Alpha*c.Opacity))
		s.Line(a.X, a.Y, b.X, b.Y, p.Accent.Width, tint(p.Accent.Color, p.Accent.Alpha*c.Opacity))
	}

	for _, n := range f.nodes {
		r := n.Radius * n.Pulse()
		for _, d := range [...]Disc{p.Body, p.Halo, p.Core} {
			s.Circle(n.X, n.Y, r*d.Scale, tint(d.Color, d.Alpha))
		}
	}
}

func tint(c color.RGBA, alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(clamp(alpha, 0, 1)*255 + 0.5)}
}
