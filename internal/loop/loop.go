package loop

import (
	"context"
	"errors"
	"time"

	"github.com/go-logr/logr"
	"github.com/san-kum/neuralfield/internal/field"
)

const DefaultFPS = 60

var ErrNoField = errors.New("loop: no field")

// Observer is notified after every rendered frame.
type Observer interface {
	OnFrame(frame uint64, f *field.Field)
}

type ObserverFunc func(frame uint64, f *field.Field)

func (fn ObserverFunc) OnFrame(frame uint64, f *field.Field) { fn(frame, f) }

// Driver runs a field's frame loop on a single goroutine. Visibility and
// resize events are delivered over unbuffered channels and applied between
// frames, so a send returns only once no frame is in progress.
type Driver struct {
	field     *field.Field
	surface   field.Surface
	fps       int
	source    <-chan time.Time
	maxFrames uint64
	observers []Observer
	log       logr.Logger

	visibility chan bool
	resizes    chan struct{}
}

type Option func(*Driver)

func WithFPS(fps int) Option {
	return func(d *Driver) {
		if fps > 0 {
			d.fps = fps
		}
	}
}

// WithFrameSource replaces the wall-clock ticker. Each receive is one host
// paint.
func WithFrameSource(src <-chan time.Time) Option {
	return func(d *Driver) { d.source = src }
}

// WithMaxFrames makes Run return after n rendered frames.
func WithMaxFrames(n uint64) Option {
	return func(d *Driver) { d.maxFrames = n }
}

func WithObserver(o Observer) Option {
	return func(d *Driver) { d.observers = append(d.observers, o) }
}

func WithLogger(log logr.Logger) Option {
	return func(d *Driver) { d.log = log }
}

func New(f *field.Field, s field.Surface, opts ...Option) *Driver {
	d := &Driver{
		field:      f,
		surface:    s,
		fps:        DefaultFPS,
		log:        logr.Discard(),
		visibility: make(chan bool),
		resizes:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Visibility accepts host visibility changes: true resumes, false pauses.
func (d *Driver) Visibility() chan<- bool { return d.visibility }

// Resizes accepts resize notifications. The field re-measures its
// container when one is received.
func (d *Driver) Resizes() chan<- struct{} { return d.resizes }

// Run drives the loop until ctx is done or the frame limit is reached.
func (d *Driver) Run(ctx context.Context) error {
	if d.field == nil {
		return ErrNoField
	}

	src := d.source
	if src == nil {
		ticker := time.NewTicker(time.Second / time.Duration(d.fps))
		defer ticker.Stop()
		src = ticker.C
	}

	defer d.field.Stop()

	armed := d.field.Start()
	if !armed && !d.field.Running() {
		d.log.V(1).Info("field is inert, nothing to drive")
		return nil
	}
	d.log.V(1).Info("loop started", "fps", d.fps, "armed", armed)

	for {
		select {
		case <-ctx.Done():
			d.log.V(1).Info("loop canceled", "frames", d.field.Frames())
			return ctx.Err()

		case visible := <-d.visibility:
			if d.field.SetVisible(visible) {
				armed = true
			}
			d.log.V(1).Info("visibility changed", "visible", visible)

		case <-d.resizes:
			d.field.Resize()

		case _, ok := <-src:
			if !ok {
				return nil
			}
			if !armed {
				continue
			}
			before := d.field.Frames()
			armed = d.field.Frame(d.surface, 1)
			if n := d.field.Frames(); n != before {
				for _, o := range d.observers {
					o.OnFrame(n, d.field)
				}
				if d.maxFrames > 0 && n >= d.maxFrames {
					d.log.V(1).Info("frame limit reached", "frames", n)
					return nil
				}
			}
		}
	}
}

// Unthrottled returns a frame source that delivers a tick whenever the
// driver is ready for one. It stops when ctx is done.
func Unthrottled(ctx context.Context) <-chan time.Time {
	ch := make(chan time.Time)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case ch <- time.Now():
			}
		}
	}()
	return ch
}
