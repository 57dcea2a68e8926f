package metrics

import (
	"github.com/san-kum/neuralfield/internal/field"
)

// History keeps the last Cap edge counts for plotting.
type History struct {
	Cap    int
	values []float64
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = 1
	}
	return &History{Cap: capacity, values: make([]float64, 0, capacity)}
}

func (h *History) OnFrame(frame uint64, f *field.Field) {
	h.Push(float64(f.NumConnections()))
}

func (h *History) Push(v float64) {
	h.values = append(h.values, v)
	if len(h.values) > h.Cap {
		h.values = h.values[1:]
	}
}

// Values returns a copy, oldest first.
func (h *History) Values() []float64 {
	out := make([]float64, len(h.values))
	copy(out, h.values)
	return out
}

func (h *History) Len() int { return len(h.values) }
