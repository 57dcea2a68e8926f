package field

import (
	"math"
	"math/rand"
)

// Node is a single drifting point. Velocity is in units per frame and is
// never renormalized; only its sign changes on a bounce.
type Node struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Phase  float64
}

// Pulse maps the node phase to a size multiplier in [0.5, 1.5].
func (n Node) Pulse() float64 {
	return math.Sin(n.Phase)*0.5 + 1
}

// Speed returns the magnitude of the node velocity.
func (n Node) Speed() float64 {
	return math.Hypot(n.VX, n.VY)
}

// step advances the node by dt frames inside [0,w]x[0,h].
func (n *Node) step(w, h, dt, phaseStep float64) {
	n.X += n.VX * dt
	n.Y += n.VY * dt

	if n.X <= 0 || n.X >= w {
		n.VX = -n.VX
	}
	if n.Y <= 0 || n.Y >= h {
		n.VY = -n.VY
	}

	n.X = clamp(n.X, 0, w)
	n.Y = clamp(n.Y, 0, h)

	n.Phase += phaseStep * dt
}

func randomNode(rng *rand.Rand, w, h float64, cfg Config) Node {
	return Node{
		X:      rng.Float64() * w,
		Y:      rng.Float64() * h,
		VX:     (rng.Float64() - 0.5) * cfg.Speed,
		VY:     (rng.Float64() - 0.5) * cfg.Speed,
		Radius: cfg.MinRadius + rng.Float64()*(cfg.MaxRadius-cfg.MinRadius),
		Phase:  rng.Float64() * 2 * math.Pi,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
