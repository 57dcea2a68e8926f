package metrics

import (
	"github.com/san-kum/neuralfield/internal/field"
)

type Metric interface {
	Name() string
	Observe(frame uint64, f *field.Field)
	Value() float64
	Reset()
}

// Set fans frames out to several metrics. It satisfies loop.Observer.
type Set struct {
	metrics []Metric
}

func NewSet(ms ...Metric) *Set {
	return &Set{metrics: ms}
}

func (s *Set) Add(m Metric) { s.metrics = append(s.metrics, m) }

func (s *Set) OnFrame(frame uint64, f *field.Field) {
	for _, m := range s.metrics {
		m.Observe(frame, f)
	}
}

// Values returns metric values keyed by name.
func (s *Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *Set) Reset() {
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Default is the set used by the stats command.
func Default() *Set {
	return NewSet(NewEdgeCount(), NewPeakEdges(), NewMeanOpacity(), NewDisplacement())
}
