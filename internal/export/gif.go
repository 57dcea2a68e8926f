package export

import (
	"errors"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"

	"github.com/san-kum/neuralfield/internal/field"
)

var ErrNoFrames = errors.New("export: no frames recorded")

// GIFRecorder captures the raster after every Every-th frame. It satisfies
// loop.Observer.
type GIFRecorder struct {
	raster *Raster
	every  uint64
	delay  int
	frames []*image.Paletted
}

// NewGIFRecorder records from r at fps, keeping one frame in every.
func NewGIFRecorder(r *Raster, fps int, every int) *GIFRecorder {
	if every < 1 {
		every = 1
	}
	if fps <= 0 {
		fps = 30
	}
	delay := 100 * every / fps
	if delay < 2 {
		delay = 2
	}
	return &GIFRecorder{raster: r, every: uint64(every), delay: delay}
}

func (g *GIFRecorder) OnFrame(frame uint64, f *field.Field) {
	if frame%g.every != 0 {
		return
	}
	src := g.raster.Image()
	if src.Bounds().Empty() {
		return
	}
	dst := image.NewPaletted(src.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(dst, src.Bounds(), src, src.Bounds().Min)
	g.frames = append(g.frames, dst)
}

func (g *GIFRecorder) Len() int { return len(g.frames) }

func (g *GIFRecorder) Encode(w io.Writer) error {
	if len(g.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range g.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, g.delay)
	}
	return gif.EncodeAll(w, &anim)
}
