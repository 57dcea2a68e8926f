package viz

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	blank = 0x2800
	// MinAlpha is the faintest colour that still lights a dot.
	MinAlpha = 16
	// DefaultScale is field units per braille dot.
	DefaultScale = 4.0
)

// Canvas is a braille canvas that implements field.Surface. Field units are
// divided by Scale to get dot coordinates; each cell keeps the most opaque
// colour drawn into it.
type Canvas struct {
	Width, Height int
	Scale         float64
	Grid          [][]rune
	Colors        [][]color.NRGBA
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Scale: 1}
	c.alloc(w, h)
	return c
}

func (c *Canvas) alloc(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.Colors = make([][]color.NRGBA, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]color.NRGBA, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// Resize sizes the canvas for a field of w x h units.
func (c *Canvas) Resize(w, h int) {
	scale := c.scale()
	cols := int(math.Ceil(float64(w) / scale / 2))
	rows := int(math.Ceil(float64(h) / scale / 4))
	if cols == c.Width && rows == c.Height {
		return
	}
	c.alloc(cols, rows)
}

func (c *Canvas) scale() float64 {
	if c.Scale <= 0 {
		return 1
	}
	return c.Scale
}

// plot lights the dot at (x, y) in sub-pixel coordinates. The canvas is
// (Width*2) x (Height*4) dots.
func (c *Canvas) plot(x, y int, clr color.NRGBA) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if clr.A >= c.Colors[row][col].A {
		c.Colors[row][col] = clr
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = color.NRGBA{}
		}
	}
}

// Line draws a stroke between two field points. Stroke width is below one
// dot at the default scale, so lines are one dot thick.
func (c *Canvas) Line(x0, y0, x1, y1, width float64, clr color.NRGBA) {
	if clr.A < MinAlpha {
		return
	}
	s := c.scale()
	c.drawLine(round(x0/s), round(y0/s), round(x1/s), round(y1/s), clr)
}

// Circle fills a disc. A disc smaller than a dot still lights its centre.
func (c *Canvas) Circle(x, y, r float64, clr color.NRGBA) {
	if clr.A < MinAlpha {
		return
	}
	s := c.scale()
	cx, cy, rr := x/s, y/s, r/s
	if rr < 0.5 {
		c.plot(round(cx), round(cy), clr)
		return
	}
	for py := int(math.Floor(cy - rr)); py <= int(math.Ceil(cy+rr)); py++ {
		for px := int(math.Floor(cx - rr)); px <= int(math.Ceil(cx+rr)); px++ {
			dx, dy := float64(px)-cx, float64(py)-cy
			if dx*dx+dy*dy <= rr*rr {
				c.plot(px, py, clr)
			}
		}
	}
}

// drawLine uses Bresenham's algorithm
func (c *Canvas) drawLine(x0, y0, x1, y1 int, clr color.NRGBA) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.plot(x0, y0, clr)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Render colours each cell by blending its colour over bg by its alpha.
// Runs of equal colour share one style.
func (c *Canvas) Render(bg lipgloss.Color) string {
	base, err := colorful.Hex(string(bg))
	if err != nil {
		base = colorful.Color{}
	}

	var b strings.Builder
	for row := range c.Grid {
		var run strings.Builder
		runHex := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runHex == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runHex)).Render(run.String()))
			}
			run.Reset()
		}
		for col, r := range c.Grid[row] {
			hex := ""
			if r != blank {
				hex = blend(base, c.Colors[row][col])
			}
			if hex != runHex {
				flush()
				runHex = hex
			}
			run.WriteRune(r)
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

func blend(bg colorful.Color, fg color.NRGBA) string {
	top := colorful.Color{R: float64(fg.R) / 255, G: float64(fg.G) / 255, B: float64(fg.B) / 255}
	// Dots are sparse, so lift faint strokes to stay legible.
	alpha := math.Min(1, float64(fg.A)/255*1.6+0.25)
	return bg.BlendRgb(top, alpha).Clamped().Hex()
}

func round(v float64) int {
	return int(math.Round(v))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
