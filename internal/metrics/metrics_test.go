package metrics

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/san-kum/neuralfield/internal/field"
)

func runFrames(t *testing.T, set *Set, c field.Container, n int) *field.Field {
	t.Helper()
	f := field.New(c, field.DefaultConfig(), field.WithRand(rand.New(rand.NewSource(9))))
	f.Start()
	for i := 0; i < n; i++ {
		if !f.Frame(nil, 1) {
			t.Fatalf("frame %d did not re-arm", i)
		}
		set.OnFrame(f.Frames(), f)
	}
	return f
}

func TestDefaultSet(t *testing.T) {
	set := Default()
	runFrames(t, set, field.Rect{W: 400, H: 300}, 200)

	vals := set.Values()
	for _, name := range []string{"edges_mean", "edges_max", "opacity_mean", "displacement_ratio"} {
		if _, ok := vals[name]; !ok {
			t.Errorf("metric %s missing", name)
		}
	}
	if vals["edges_max"] < vals["edges_mean"] {
		t.Errorf("peak %f below mean %f", vals["edges_max"], vals["edges_mean"])
	}
	if o := vals["opacity_mean"]; o < 0 || o > 1 {
		t.Errorf("mean opacity %f outside [0,1]", o)
	}
	if r := vals["displacement_ratio"]; r > 1+1e-9 {
		t.Errorf("node moved further than its speed, ratio %f", r)
	}
}

func TestEdgeCountReset(t *testing.T) {
	m := NewEdgeCount()
	set := NewSet(m)
	runFrames(t, set, field.Rect{W: 100, H: 100}, 5)

	// 15 nodes in a 100x100 box are all within 150 of each other.
	if m.Value() != 105 {
		t.Errorf("expected 105 edges, got %f", m.Value())
	}
	set.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestDisplacementSkipsResize(t *testing.T) {
	c := field.NewResizable(400, 300)
	f := field.New(c, field.DefaultConfig(), field.WithRand(rand.New(rand.NewSource(1))))
	d := NewDisplacement()

	f.Start()
	f.Frame(nil, 1)
	d.Observe(1, f)

	c.Set(200, 100)
	f.Resize()
	f.Frame(nil, 1)
	d.Observe(2, f)

	if d.Value() != 0 {
		t.Errorf("resize should not count as displacement, got %f", d.Value())
	}
}

func TestHistoryCapacity(t *testing.T) {
	h := NewHistory(3)
	for i := 1; i <= 5; i++ {
		h.Push(float64(i))
	}
	got := h.Values()
	if len(got) != 3 || got[0] != 3 || got[2] != 5 {
		t.Errorf("expected [3 4 5], got %v", got)
	}
}

func TestEnsemble(t *testing.T) {
	e := Ensemble{
		Config:    field.DefaultConfig(),
		Container: field.Rect{W: 400, H: 300},
		Frames:    60,
		Runs:      4,
		SeedStart: 1,
	}
	results, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results", len(results))
	}
	for i, r := range results {
		if len(r) != 4 {
			t.Errorf("run %d reported %d metrics", i, len(r))
		}
	}

	again, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if again[2]["edges_mean"] != results[2]["edges_mean"] {
		t.Error("same seed produced different metrics")
	}
}

func TestEnsembleEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		e    Ensemble
		want int
	}{
		{"nil container", Ensemble{Config: field.DefaultConfig(), Frames: 10, Runs: 2}, 2},
		{"negative runs", Ensemble{Config: field.DefaultConfig(), Container: field.Rect{W: 100, H: 100}, Runs: -1}, 0},
		{"zero frames", Ensemble{Config: field.DefaultConfig(), Container: field.Rect{W: 100, H: 100}, Runs: 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			results, err := tt.e.Run(ctx)
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if len(results) != tt.want {
				t.Errorf("got %d results, want %d", len(results), tt.want)
			}
		})
	}
}

func TestMean(t *testing.T) {
	got := Mean([]map[string]float64{
		{"a": 1, "b": 4},
		{"a": 3},
	})
	if got["a"] != 2 || got["b"] != 4 {
		t.Errorf("mean = %v", got)
	}
	names := Names([]map[string]float64{{"b": 1}, {"a": 1, "b": 2}})
	if len(names) != 2 || names[0] != "a" {
		t.Errorf("names = %v", names)
	}
}
