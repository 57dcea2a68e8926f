package field

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-logr/logr"
)

// Field is the particle field. It is not safe for concurrent use; the
// driver that owns the frame loop must also deliver resize and visibility
// events.
type Field struct {
	container Container
	cfg       Config
	rng       *rand.Rand
	log       logr.Logger

	width, height float64
	nodes         []Node
	conns         []Connection

	running bool
	pending bool
	frames  uint64
}

type Option func(*Field)

// WithRand sets the random source used to place nodes.
func WithRand(rng *rand.Rand) Option {
	return func(f *Field) { f.rng = rng }
}

func WithLogger(log logr.Logger) Option {
	return func(f *Field) { f.log = log }
}

// New measures the container and populates the node set. The loop is not
// started; call Start. A nil container returns an inert field.
func New(container Container, cfg Config, opts ...Option) *Field {
	f := &Field{
		container: container,
		cfg:       cfg.normalize(),
		log:       logr.Discard(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.rng == nil {
		f.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if f.inert() {
		f.log.V(1).Info("no container, field disabled")
		return f
	}
	f.Resize()
	return f
}

func (f *Field) inert() bool {
	return f == nil || f.container == nil
}

// Resize re-measures the container and regenerates every node. Existing
// positions are discarded rather than rescaled.
func (f *Field) Resize() {
	if f.inert() {
		return
	}
	w, h := f.container.Size()
	w, h = extent(w), extent(h)
	f.width, f.height = w, h

	f.nodes = make([]Node, f.cfg.NodeCount)
	for i := range f.nodes {
		f.nodes[i] = randomNode(f.rng, w, h, f.cfg)
	}
	f.conns = Connect(f.nodes, f.cfg.Threshold, f.conns[:0])
	f.log.V(1).Info("field resized", "width", w, "height", h, "nodes", len(f.nodes))
}

// Start begins the frame loop. It reports whether the caller must schedule
// a frame callback.
func (f *Field) Start() bool {
	return f.Resume()
}

// Resume restarts the loop from the current node state. It reports true
// only when no callback is already pending, so calling it repeatedly never
// stacks callbacks.
func (f *Field) Resume() bool {
	if f.inert() {
		return false
	}
	f.running = true
	if f.pending {
		return false
	}
	f.pending = true
	return true
}

// Pause stops the loop after the pending callback, keeping node state.
func (f *Field) Pause() {
	if f.inert() {
		return
	}
	f.running = false
}

// Stop is Pause; the field holds no external resources to release.
func (f *Field) Stop() {
	f.Pause()
}

// SetVisible maps a host visibility change to Resume or Pause. It reports
// whether a frame callback must be scheduled.
func (f *Field) SetVisible(visible bool) bool {
	if visible {
		return f.Resume()
	}
	f.Pause()
	return false
}

// Tick advances every node by dt frames and rebuilds the connection set.
func (f *Field) Tick(dt float64) {
	if f.inert() {
		return
	}
	for i := range f.nodes {
		f.nodes[i].step(f.width, f.height, dt, f.cfg.PhaseStep)
	}
	f.conns = Connect(f.nodes, f.cfg.Threshold, f.conns[:0])
}

// Frame is the frame callback. When the loop is running it ticks, renders
// to s and returns true to request the next callback. When paused it does
// nothing and returns false, ending the chain.
func (f *Field) Frame(s Surface, dt float64) bool {
	if f.inert() {
		return false
	}
	f.pending = false
	if !f.running {
		return false
	}
	f.Tick(dt)
	if s != nil {
		f.Render(s)
	}
	f.frames++
	f.pending = true
	return true
}

// Nodes returns a copy of the current node set.
func (f *Field) Nodes() []Node {
	if f.inert() {
		return nil
	}
	out := make([]Node, len(f.nodes))
	copy(out, f.nodes)
	return out
}

// Connections returns a copy of the connections from the last tick.
func (f *Field) Connections() []Connection {
	if f.inert() {
		return nil
	}
	out := make([]Connection, len(f.conns))
	copy(out, f.conns)
	return out
}

// NumConnections avoids the copy made by Connections.
func (f *Field) NumConnections() int {
	if f.inert() {
		return 0
	}
	return len(f.conns)
}

func (f *Field) Size() (width, height float64) {
	if f.inert() {
		return 0, 0
	}
	return f.width, f.height
}

// Frames counts rendered frames.
func (f *Field) Frames() uint64 {
	if f.inert() {
		return 0
	}
	return f.frames
}

func (f *Field) Running() bool {
	return !f.inert() && f.running
}

func (f *Field) Config() Config {
	if f == nil {
		return DefaultConfig()
	}
	return f.cfg
}

// SetPalette swaps the colours used by Render, e.g. on a theme change.
func (f *Field) SetPalette(p Palette) {
	if f.inert() {
		return
	}
	f.cfg.Palette = p
}

// extent maps negative and non-finite container sizes to zero.
func extent(v float64) float64 {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
