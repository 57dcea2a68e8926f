package field

import "math"

// Connection joins two nodes closer than the field threshold. A is always
// the lower index.
type Connection struct {
	A, B     int
	Distance float64
	Opacity  float64
}

// Connect appends to dst every pair of nodes whose distance is strictly
// below threshold and returns the extended slice. The scan is quadratic;
// fields hold a few dozen nodes at most.
func Connect(nodes []Node, threshold float64, dst []Connection) []Connection {
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			d := math.Hypot(nodes[i].X-nodes[j].X, nodes[i].Y-nodes[j].Y)
			if d < threshold {
				dst = append(dst, Connection{
					A:        i,
					B:        j,
					Distance: d,
					Opacity:  Opacity(d, threshold),
				})
			}
		}
	}
	return dst
}

// Opacity is the linear distance fade 1 - d/threshold clamped to [0, 1].
func Opacity(d, threshold float64) float64 {
	if threshold <= 0 {
		return 0
	}
	return clamp(1-d/threshold, 0, 1)
}
