package viz

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/neuralfield/internal/field"
	"github.com/san-kum/neuralfield/internal/metrics"
	"github.com/san-kum/neuralfield/internal/storage"
)

const (
	width           = 80
	height          = 24
	statsWidth      = 34
	historyCapacity = 300
	// referenceFPS is the frame rate node velocities are expressed in.
	referenceFPS = 60
)

type frameMsg time.Time

type Options struct {
	Field  field.Config
	Theme  Theme
	FPS    int
	Scale  float64
	Store  *storage.Store
	Rand   *rand.Rand
	Logger logr.Logger
}

// Model is the bubbletea program showing a live field with a stats panel.
type Model struct {
	field     *field.Field
	container *field.Resizable
	canvas    *Canvas
	theme     Theme
	styles    styles
	store     *storage.Store
	log       logr.Logger

	fps       int
	dt        float64
	history   *metrics.History
	spring    harmonica.Spring
	rate      float64
	rateVel   float64
	lastFrame time.Time

	width, height int
	showStats     bool
	showHelp      bool
	// userPaused holds a space-key pause across focus changes.
	userPaused bool
}

func NewModel(opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Scale <= 0 {
		opts.Scale = DefaultScale
	}
	if opts.Theme.Name == "" {
		opts.Theme = ThemeNeon
	}
	if opts.Logger.GetSink() == nil {
		opts.Logger = logr.Discard()
	}

	m := Model{
		theme:     opts.Theme,
		styles:    newStyles(opts.Theme),
		store:     opts.Store,
		log:       opts.Logger,
		fps:       opts.FPS,
		dt:        float64(referenceFPS) / float64(opts.FPS),
		history:   metrics.NewHistory(historyCapacity),
		spring:    harmonica.NewSpring(harmonica.FPS(opts.FPS), 4.0, 1.0),
		showStats: true,
		canvas:    NewCanvas(0, 0),
	}
	m.canvas.Scale = opts.Scale
	m.container = field.NewResizable(0, 0)
	m.width, m.height = width, height
	m.container.Set(m.fieldSize())

	cfg := opts.Field
	cfg.Palette = opts.Theme.Palette
	fieldOpts := []field.Option{field.WithLogger(opts.Logger)}
	if opts.Rand != nil {
		fieldOpts = append(fieldOpts, field.WithRand(opts.Rand))
	}
	m.field = field.New(m.container, cfg, fieldOpts...)
	return m
}

func (m Model) Field() *field.Field { return m.field }
func (m Model) Theme() Theme        { return m.theme }

func (m Model) Init() tea.Cmd {
	if m.field.Start() {
		return m.nextFrame()
	}
	return nil
}

func (m Model) nextFrame() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Update handles input events and frame callbacks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.relayout()

	case tea.FocusMsg:
		if !m.userPaused && m.field.SetVisible(true) {
			return m, m.nextFrame()
		}

	case tea.BlurMsg:
		m.field.SetVisible(false)

	case frameMsg:
		now := time.Time(msg)
		if !m.field.Frame(m.canvas, m.dt) {
			m.lastFrame = time.Time{}
			return m, nil
		}
		m.history.Push(float64(m.field.NumConnections()))
		if !m.lastFrame.IsZero() {
			if elapsed := now.Sub(m.lastFrame).Seconds(); elapsed > 0 {
				m.rate, m.rateVel = m.spring.Update(m.rate, m.rateVel, 1/elapsed)
			}
		}
		m.lastFrame = now
		return m, m.nextFrame()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.userPaused = !m.userPaused
		if m.userPaused {
			m.field.Pause()
		} else if m.field.Resume() {
			return m, m.nextFrame()
		}
	case "r":
		m.field.Resize()
	case "t":
		m.setTheme(NextTheme(m.theme.Name))
	case "s":
		m.showStats = !m.showStats
		m.relayout()
	case "?":
		m.showHelp = !m.showHelp
		m.relayout()
	}
	return m, nil
}

func (m *Model) setTheme(t Theme) {
	m.theme = t
	m.styles = newStyles(t)
	m.field.SetPalette(t.Palette)
	if m.store == nil {
		return
	}
	if err := m.store.SavePrefs(storage.Prefs{Theme: t.Name}); err != nil {
		m.log.Error(err, "save theme preference", "theme", t.Name)
	}
}

// fieldSize converts the space left for the canvas into field units.
func (m Model) fieldSize() (float64, float64) {
	cols := m.width - 4
	if m.showStats {
		cols -= statsWidth + 1
	}
	rows := m.height - 4
	if m.showHelp {
		rows--
	}
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return float64(cols) * 2 * m.canvas.Scale, float64(rows) * 4 * m.canvas.Scale
}

func (m *Model) relayout() {
	w, h := m.fieldSize()
	if cw, ch := m.container.Size(); cw == w && ch == h {
		return
	}
	m.container.Set(w, h)
	m.field.Resize()
	m.log.V(1).Info("terminal resized", "cols", m.width, "rows", m.height)
}

// View renders the TUI interface.
func (m Model) View() string {
	st := m.styles

	status := st.running.Render("RUNNING")
	if !m.field.Running() {
		status = st.paused.Render("PAUSED")
	}
	header := GradientText("NEURAL FIELD", m.theme.Primary, m.theme.Accent) + "  " + status

	var body strings.Builder
	body.WriteString(header + "\n")
	body.WriteString(m.canvas.Render(m.theme.Background))
	if m.showHelp {
		body.WriteString(st.help.Render("space pause  r regenerate  t theme  s stats  q quit"))
	}
	view := st.canvas.Render(body.String())

	if !m.showStats {
		return view
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, view, st.panel.Render(m.statsView()))
}

func (m Model) statsView() string {
	st := m.styles
	w, h := m.field.Size()
	rows := []struct{ label, value string }{
		{"theme", m.theme.Name},
		{"frame", fmt.Sprintf("%d", m.field.Frames())},
		{"nodes", fmt.Sprintf("%d", len(m.field.Nodes()))},
		{"edges", fmt.Sprintf("%d", m.field.NumConnections())},
		{"fps", fmt.Sprintf("%.1f", m.rate)},
		{"size", fmt.Sprintf("%.0fx%.0f", w, h)},
	}

	var s strings.Builder
	for _, r := range rows {
		s.WriteString(st.label.Render(r.label) + st.value.Render(r.value) + "\n")
	}

	if hist := m.history.Values(); len(hist) > 1 {
		graph := asciigraph.Plot(hist,
			asciigraph.Height(6),
			asciigraph.Width(statsWidth-10),
			asciigraph.Caption("edges"),
		)
		s.WriteString(st.graph.Render(graph))
	}
	return s.String()
}

// Run starts the live view and blocks until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(NewModel(opts),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
