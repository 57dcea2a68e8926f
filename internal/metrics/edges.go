package metrics

import (
	"github.com/san-kum/neuralfield/internal/field"
)

// EdgeCount is the mean number of connections per frame.
type EdgeCount struct {
	name    string
	sum     int
	samples int
}

func NewEdgeCount() *EdgeCount {
	return &EdgeCount{name: "edges_mean"}
}

func (e *EdgeCount) Name() string { return e.name }

func (e *EdgeCount) Observe(frame uint64, f *field.Field) {
	e.sum += f.NumConnections()
	e.samples++
}

func (e *EdgeCount) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return float64(e.sum) / float64(e.samples)
}

func (e *EdgeCount) Reset() {
	e.sum = 0
	e.samples = 0
}

type PeakEdges struct {
	name string
	max  int
}

func NewPeakEdges() *PeakEdges {
	return &PeakEdges{name: "edges_max"}
}

func (p *PeakEdges) Name() string { return p.name }

func (p *PeakEdges) Observe(frame uint64, f *field.Field) {
	if n := f.NumConnections(); n > p.max {
		p.max = n
	}
}

func (p *PeakEdges) Value() float64 { return float64(p.max) }
func (p *PeakEdges) Reset()         { p.max = 0 }

// MeanOpacity averages connection opacity over every edge seen.
type MeanOpacity struct {
	name  string
	sum   float64
	edges int
}

func NewMeanOpacity() *MeanOpacity {
	return &MeanOpacity{name: "opacity_mean"}
}

func (m *MeanOpacity) Name() string { return m.name }

func (m *MeanOpacity) Observe(frame uint64, f *field.Field) {
	for _, c := range f.Connections() {
		m.sum += c.Opacity
		m.edges++
	}
}

func (m *MeanOpacity) Value() float64 {
	if m.edges == 0 {
		return 0
	}
	return m.sum / float64(m.edges)
}

func (m *MeanOpacity) Reset() {
	m.sum = 0
	m.edges = 0
}
