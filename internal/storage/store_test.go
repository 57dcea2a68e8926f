package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPrefsDefaultWhenMissing(t *testing.T) {
	st := New(t.TempDir())

	p, err := st.LoadPrefs()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if p.Theme != "" {
		t.Errorf("expected empty theme, got %q", p.Theme)
	}
}

func TestPrefsSaveLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	st := New(dir)

	if err := st.SavePrefs(Prefs{Theme: "light"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	p, err := st.LoadPrefs()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if p.Theme != "light" {
		t.Errorf("expected theme light, got %q", p.Theme)
	}
}

func TestPrefsCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, prefsFile), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(dir).LoadPrefs(); err == nil {
		t.Error("expected decode error")
	}
}

func TestSaveLoadRun(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := RunMetadata{
		Preset:    "portfolio",
		Seed:      42,
		Frames:    3,
		Nodes:     15,
		Threshold: 150,
		Metrics:   map[string]float64{"edges_mean": 4.5},
	}
	id, err := st.SaveRun(meta, []float64{4, 5, 4.5})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty run id")
	}

	got, err := st.LoadRun(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Seed != 42 || got.Preset != "portfolio" {
		t.Errorf("unexpected metadata %+v", got)
	}
	if got.Metrics["edges_mean"] != 4.5 {
		t.Errorf("expected edges_mean 4.5, got %f", got.Metrics["edges_mean"])
	}

	edges, err := st.LoadEdges(id)
	if err != nil {
		t.Fatalf("load edges failed: %v", err)
	}
	if len(edges) != 3 || edges[2] != 4.5 {
		t.Errorf("expected [4 5 4.5], got %v", edges)
	}
}

func TestListRuns(t *testing.T) {
	st := New(t.TempDir())

	runs, err := st.ListRuns()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	base := time.Now()
	for i, preset := range []string{"dense", "calm"} {
		meta := RunMetadata{Preset: preset, Timestamp: base.Add(time.Duration(i) * time.Second)}
		if _, err := st.SaveRun(meta, nil); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err = st.ListRuns()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 || runs[0].Preset != "dense" || runs[1].Preset != "calm" {
		t.Errorf("unexpected runs %+v", runs)
	}
}

func TestLoadUnknownRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.LoadRun("nope"); !errors.Is(err, ErrUnknownRun) {
		t.Errorf("expected ErrUnknownRun, got %v", err)
	}
	if _, err := st.LoadEdges("nope"); !errors.Is(err, ErrUnknownRun) {
		t.Errorf("expected ErrUnknownRun, got %v", err)
	}
}
