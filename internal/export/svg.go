package export

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"
)

// SVG is a field.Surface that records a frame as an SVG document.
type SVG struct {
	Width, Height int
	Background    color.RGBA
	body          strings.Builder
}

func NewSVG(bg color.RGBA) *SVG {
	return &SVG{Background: bg}
}

func (s *SVG) Resize(w, h int) {
	s.Width, s.Height = w, h
}

func (s *SVG) Clear() {
	s.body.Reset()
}

func (s *SVG) Line(x0, y0, x1, y1, width float64, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	fmt.Fprintf(&s.body, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-opacity="%.3f" stroke-width="%.2f" stroke-linecap="round"/>
`, x0, y0, x1, y1, hex(c), alpha(c), width)
}

func (s *SVG) Circle(x, y, r float64, c color.NRGBA) {
	if c.A == 0 || r <= 0 {
		return
	}
	fmt.Fprintf(&s.body, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.3f"/>
`, x, y, r, hex(c), alpha(c))
}

// Bytes returns the complete document for the last rendered frame.
func (s *SVG) Bytes() []byte {
	var b bytes.Buffer

	// SVG header
	fmt.Fprintf(&b, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.Width, s.Height, s.Width, s.Height, hex(color.NRGBA{R: s.Background.R, G: s.Background.G, B: s.Background.B, A: 255}))

	b.WriteString(s.body.String())
	b.WriteString("</svg>\n")
	return b.Bytes()
}

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func alpha(c color.NRGBA) float64 {
	return float64(c.A) / 255
}
