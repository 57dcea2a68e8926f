package export

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"
)

// Raster is a field.Surface that draws anti-aliased shapes into an RGBA
// image, one field unit per pixel.
type Raster struct {
	Background color.RGBA
	img        *image.RGBA
	z          *vector.Rasterizer
}

func NewRaster(bg color.RGBA) *Raster {
	return &Raster{Background: bg, img: image.NewRGBA(image.Rect(0, 0, 0, 0))}
}

func (r *Raster) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if b := r.img.Bounds(); b.Dx() == w && b.Dy() == h {
		return
	}
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
	r.z = vector.NewRasterizer(w, h)
}

func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(r.Background), image.Point{}, draw.Src)
}

// Line fills the stroke as a quad around the segment.
func (r *Raster) Line(x0, y0, x1, y1, width float64, c color.NRGBA) {
	length := math.Hypot(x1-x0, y1-y0)
	if !r.drawable(c) || length == 0 {
		return
	}
	half := math.Max(width, 0.5) / 2
	nx, ny := -(y1-y0)/length*half, (x1-x0)/length*half

	r.begin()
	r.z.MoveTo(float32(x0+nx), float32(y0+ny))
	r.z.LineTo(float32(x1+nx), float32(y1+ny))
	r.z.LineTo(float32(x1-nx), float32(y1-ny))
	r.z.LineTo(float32(x0-nx), float32(y0-ny))
	r.z.ClosePath()
	r.fill(c)
}

// Circle fills a polygon approximation of the disc.
func (r *Raster) Circle(x, y, radius float64, c color.NRGBA) {
	if !r.drawable(c) || radius <= 0 {
		return
	}
	segments := int(math.Max(12, math.Ceil(radius*4)))

	r.begin()
	r.z.MoveTo(float32(x+radius), float32(y))
	for i := 1; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		r.z.LineTo(float32(x+radius*math.Cos(a)), float32(y+radius*math.Sin(a)))
	}
	r.z.ClosePath()
	r.fill(c)
}

func (r *Raster) drawable(c color.NRGBA) bool {
	b := r.img.Bounds()
	return c.A > 0 && b.Dx() > 0 && b.Dy() > 0
}

func (r *Raster) begin() {
	b := r.img.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
	r.z.DrawOp = draw.Over
}

func (r *Raster) fill(c color.NRGBA) {
	r.z.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{})
}

// Image returns the backing image. It is reused across frames.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}
