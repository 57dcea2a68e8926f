package viz

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/neuralfield/internal/field"
	"github.com/san-kum/neuralfield/internal/storage"
)

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	return NewModel(Options{
		Field: field.DefaultConfig(),
		FPS:   30,
		Store: store,
		Rand:  rand.New(rand.NewSource(1)),
	})
}

func TestInitStartsLoop(t *testing.T) {
	m := newTestModel(t, nil)

	if cmd := m.Init(); cmd == nil {
		t.Fatal("expected a frame command from Init")
	}
	if !m.Field().Running() {
		t.Error("field should be running after Init")
	}
}

func TestFrameMsgAdvancesAndReschedules(t *testing.T) {
	m := newTestModel(t, nil)
	m.Init()

	now := time.Now()
	for i := 0; i < 3; i++ {
		var cmd tea.Cmd
		m, cmd = m.handleMsg(frameMsg(now.Add(time.Duration(i) * time.Second / 30)))
		if cmd == nil {
			t.Fatalf("frame %d did not reschedule", i)
		}
	}
	if m.Field().Frames() != 3 {
		t.Errorf("expected 3 frames, got %d", m.Field().Frames())
	}
	if m.history.Len() != 3 {
		t.Errorf("expected 3 history samples, got %d", m.history.Len())
	}
	if m.rate <= 0 {
		t.Errorf("expected positive smoothed fps, got %f", m.rate)
	}
}

func TestBlurPausesAndFocusResumes(t *testing.T) {
	m := newTestModel(t, nil)
	m.Init()
	m, _ = m.handleMsg(frameMsg(time.Now()))

	m, cmd := m.handleMsg(tea.BlurMsg{})
	if cmd != nil {
		t.Error("blur must not schedule a frame")
	}
	// The in-flight frame lands while hidden and ends the chain.
	m, cmd = m.handleMsg(frameMsg(time.Now()))
	if cmd != nil {
		t.Error("hidden frame must not reschedule")
	}
	if m.Field().Frames() != 1 {
		t.Errorf("hidden frame should not render, frames=%d", m.Field().Frames())
	}

	m, cmd = m.handleMsg(tea.FocusMsg{})
	if cmd == nil {
		t.Fatal("focus should schedule a frame")
	}
	m, cmd = m.handleMsg(tea.FocusMsg{})
	if cmd != nil {
		t.Error("second focus must not stack another frame")
	}
	m, _ = m.handleMsg(frameMsg(time.Now()))
	if m.Field().Frames() != 2 {
		t.Errorf("expected 2 frames after resume, got %d", m.Field().Frames())
	}
}

func TestSpaceTogglesPause(t *testing.T) {
	m := newTestModel(t, nil)
	m.Init()
	m, _ = m.handleMsg(frameMsg(time.Now()))

	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	m, _ = m.handleMsg(space)
	if m.Field().Running() {
		t.Fatal("space should pause")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("view should show PAUSED")
	}

	m, _ = m.handleMsg(frameMsg(time.Now()))
	m, cmd := m.handleMsg(space)
	if !m.Field().Running() || cmd == nil {
		t.Error("space should resume and schedule a frame")
	}
}

func TestFocusKeepsUserPause(t *testing.T) {
	m := newTestModel(t, nil)
	m.Init()
	m, _ = m.handleMsg(frameMsg(time.Now()))

	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	m, _ = m.handleMsg(space)
	m, _ = m.handleMsg(tea.BlurMsg{})
	m, cmd := m.handleMsg(tea.FocusMsg{})
	if cmd != nil {
		t.Error("focus must not schedule a frame while paused by the user")
	}
	if m.Field().Running() {
		t.Fatal("focus undid the user pause")
	}

	m, _ = m.handleMsg(frameMsg(time.Now()))
	m, cmd = m.handleMsg(space)
	if !m.Field().Running() || cmd == nil {
		t.Error("space should resume after refocus")
	}
}

func TestWindowSizeResizesField(t *testing.T) {
	m := newTestModel(t, nil)
	m.Init()

	m, _ = m.handleMsg(tea.WindowSizeMsg{Width: 120, Height: 40})

	wantW := float64(120-4-statsWidth-1) * 2 * DefaultScale
	wantH := float64(40-4) * 4 * DefaultScale
	w, h := m.Field().Size()
	if w != wantW || h != wantH {
		t.Errorf("expected field %fx%f, got %fx%f", wantW, wantH, w, h)
	}
	for _, n := range m.Field().Nodes() {
		if n.X > w || n.Y > h {
			t.Errorf("node (%f, %f) outside resized field", n.X, n.Y)
		}
	}

	m, _ = m.handleMsg(frameMsg(time.Now()))
	if m.canvas.Width != 120-4-statsWidth-1 || m.canvas.Height != 36 {
		t.Errorf("unexpected canvas %dx%d", m.canvas.Width, m.canvas.Height)
	}
}

func TestTinyWindowDoesNotPanic(t *testing.T) {
	m := newTestModel(t, nil)
	m.Init()
	m, _ = m.handleMsg(tea.WindowSizeMsg{Width: 3, Height: 2})
	m, _ = m.handleMsg(frameMsg(time.Now()))

	if w, h := m.Field().Size(); w != 0 || h != 0 {
		t.Errorf("expected zero-area field, got %fx%f", w, h)
	}
	_ = m.View()
}

func TestThemeCyclePersists(t *testing.T) {
	store := storage.New(t.TempDir())
	m := newTestModel(t, store)

	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	if m.Theme().Name != "dark" {
		t.Errorf("expected dark after neon, got %s", m.Theme().Name)
	}
	if m.Field().Config().Palette != ThemeDark.Palette {
		t.Error("field palette should follow the theme")
	}

	prefs, err := store.LoadPrefs()
	if err != nil {
		t.Fatalf("load prefs: %v", err)
	}
	if prefs.Theme != "dark" {
		t.Errorf("expected saved theme dark, got %q", prefs.Theme)
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, nil)
	_, cmd := m.handleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
