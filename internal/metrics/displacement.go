package metrics

import (
	"math"

	"github.com/san-kum/neuralfield/internal/field"
)

// Displacement tracks the largest per-frame node move relative to the
// node's speed. A value above 1 means a node jumped further than its
// velocity allows. Frames after a resize are skipped.
type Displacement struct {
	name  string
	prev  []field.Node
	w, h  float64
	ratio float64
}

func NewDisplacement() *Displacement {
	return &Displacement{name: "displacement_ratio"}
}

func (d *Displacement) Name() string { return d.name }

func (d *Displacement) Observe(frame uint64, f *field.Field) {
	nodes := f.Nodes()
	w, h := f.Size()
	if len(d.prev) == len(nodes) && d.w == w && d.h == h {
		for i, n := range nodes {
			speed := d.prev[i].Speed()
			if speed == 0 {
				continue
			}
			moved := math.Hypot(n.X-d.prev[i].X, n.Y-d.prev[i].Y)
			if r := moved / speed; r > d.ratio {
				d.ratio = r
			}
		}
	}
	d.prev, d.w, d.h = nodes, w, h
}

func (d *Displacement) Value() float64 { return d.ratio }

func (d *Displacement) Reset() {
	d.prev = nil
	d.ratio = 0
}
