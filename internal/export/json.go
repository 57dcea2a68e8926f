package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/neuralfield/internal/field"
)

type SnapshotNode struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Radius float64 `json:"radius"`
	Phase  float64 `json:"phase"`
}

type SnapshotEdge struct {
	A        int     `json:"a"`
	B        int     `json:"b"`
	Distance float64 `json:"distance"`
	Opacity  float64 `json:"opacity"`
}

// Snapshot is the JSON form of one field frame.
type Snapshot struct {
	Frame     uint64         `json:"frame"`
	Width     float64        `json:"width"`
	Height    float64        `json:"height"`
	Threshold float64        `json:"threshold"`
	Nodes     []SnapshotNode `json:"nodes"`
	Edges     []SnapshotEdge `json:"edges"`
}

func NewSnapshot(f *field.Field) Snapshot {
	w, h := f.Size()
	s := Snapshot{
		Frame:     f.Frames(),
		Width:     w,
		Height:    h,
		Threshold: f.Config().Threshold,
		Nodes:     []SnapshotNode{},
		Edges:     []SnapshotEdge{},
	}
	for _, n := range f.Nodes() {
		s.Nodes = append(s.Nodes, SnapshotNode{X: n.X, Y: n.Y, VX: n.VX, VY: n.VY, Radius: n.Radius, Phase: n.Phase})
	}
	for _, c := range f.Connections() {
		s.Edges = append(s.Edges, SnapshotEdge{A: c.A, B: c.B, Distance: c.Distance, Opacity: c.Opacity})
	}
	return s
}

func WriteJSON(w io.Writer, f *field.Field) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewSnapshot(f))
}
