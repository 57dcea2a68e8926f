package field

// Container is the host region a field is sized to.
type Container interface {
	Size() (width, height float64)
}

// ContainerFunc adapts a function to the Container interface.
type ContainerFunc func() (width, height float64)

func (fn ContainerFunc) Size() (float64, float64) { return fn() }

// Rect is a container with fixed dimensions.
type Rect struct {
	W, H float64
}

func (r Rect) Size() (float64, float64) { return r.W, r.H }

// Resizable is a container whose dimensions can be changed in place.
// Terminal and window frontends hold one and update it on resize events.
type Resizable struct {
	w, h float64
}

func NewResizable(w, h float64) *Resizable {
	return &Resizable{w: w, h: h}
}

func (r *Resizable) Set(w, h float64) {
	r.w, r.h = w, h
}

func (r *Resizable) Size() (float64, float64) { return r.w, r.h }
