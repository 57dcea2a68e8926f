package gui

import (
	"context"
	"image/color"
	"math/rand"

	"github.com/go-logr/logr"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/san-kum/neuralfield/internal/field"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 400
	TPS           = 60
)

type Options struct {
	Field      field.Config
	Background color.RGBA
	Width      int
	Height     int
	Title      string
	Rand       *rand.Rand
	Logger     logr.Logger
}

// Game runs a field in a desktop window. One field frame is produced per
// ebiten tick; window focus stands in for page visibility.
type Game struct {
	ctx        context.Context
	field      *field.Field
	container  *field.Resizable
	list       displayList
	background color.RGBA
	log        logr.Logger

	// focused reports window focus. Replaced in tests.
	focused func() bool

	armed         bool
	userPaused    bool
	width, height int
}

func NewGame(ctx context.Context, opts Options) *Game {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Logger.GetSink() == nil {
		opts.Logger = logr.Discard()
	}

	g := &Game{
		ctx:        ctx,
		container:  field.NewResizable(float64(opts.Width), float64(opts.Height)),
		background: opts.Background,
		log:        opts.Logger,
		focused:    ebiten.IsFocused,
		width:      opts.Width,
		height:     opts.Height,
	}
	fieldOpts := []field.Option{field.WithLogger(opts.Logger)}
	if opts.Rand != nil {
		fieldOpts = append(fieldOpts, field.WithRand(opts.Rand))
	}
	g.field = field.New(g.container, opts.Field, fieldOpts...)
	g.armed = g.field.Start()
	return g
}

func (g *Game) Field() *field.Field { return g.field }

func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if err := g.handleInput(); err != nil {
		return err
	}
	g.step()
	return nil
}

// step applies visibility and runs the pending frame, if any.
func (g *Game) step() {
	if g.field.SetVisible(g.focused() && !g.userPaused) {
		g.armed = true
	}
	if g.armed {
		g.armed = g.field.Frame(&g.list, 1)
	}
}

func (g *Game) handleInput() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.userPaused = !g.userPaused
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.field.Resize()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	g.list.draw(screen)
}

// Layout tracks the window size and regenerates the field when it changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.container.Set(float64(outsideWidth), float64(outsideHeight))
		g.field.Resize()
		g.log.V(1).Info("window resized", "width", outsideWidth, "height", outsideHeight)
	}
	return g.width, g.height
}

// Run opens the window and blocks until it is closed or ctx is done.
func Run(ctx context.Context, opts Options) error {
	g := NewGame(ctx, opts)
	title := opts.Title
	if title == "" {
		title = "neuralfield"
	}
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(TPS)
	defer g.field.Stop()

	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}
