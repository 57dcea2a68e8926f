package field_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/neuralfield/internal/field"
)

// host mimics a browser-style frame scheduler: callbacks are queued and
// run one at a time when the host paints.
type host struct {
	queue []func()
}

func (h *host) request(cb func()) { h.queue = append(h.queue, cb) }

func (h *host) paint() {
	q := h.queue
	h.queue = nil
	for _, cb := range q {
		cb()
	}
}

var _ = Describe("Field lifecycle", func() {
	var (
		h     *host
		f     *field.Field
		frame func()
	)

	arm := func(ok bool) {
		if ok {
			h.request(frame)
		}
	}

	BeforeEach(func() {
		h = &host{}
		f = field.New(field.Rect{W: 400, H: 300}, field.DefaultConfig(),
			field.WithRand(rand.New(rand.NewSource(11))))
		frame = func() { arm(f.Frame(nil, 1)) }
		arm(f.Start())
	})

	It("keeps exactly one callback in flight", func() {
		for i := 0; i < 5; i++ {
			h.paint()
			Expect(h.queue).To(HaveLen(1))
		}
		arm(f.Resume())
		arm(f.Resume())
		Expect(h.queue).To(HaveLen(1))
		Expect(f.Frames()).To(BeEquivalentTo(5))
	})

	It("stops counting frames while hidden and resumes after visible", func() {
		h.paint()
		h.paint()
		Expect(f.Frames()).To(BeEquivalentTo(2))

		arm(f.SetVisible(false))
		for i := 0; i < 10; i++ {
			h.paint()
		}
		Expect(f.Frames()).To(BeEquivalentTo(2))
		Expect(h.queue).To(BeEmpty())

		arm(f.SetVisible(true))
		Expect(f.Frames()).To(BeEquivalentTo(2), "no frame before the next paint")
		h.paint()
		Expect(f.Frames()).To(BeEquivalentTo(3))
	})

	It("picks up a resize on the next frame", func() {
		c := field.NewResizable(400, 300)
		f = field.New(c, field.DefaultConfig())
		frame = func() { arm(f.Frame(nil, 1)) }
		h.queue = nil
		arm(f.Start())
		h.paint()

		c.Set(80, 60)
		f.Resize()
		h.paint()

		Expect(f.Nodes()).To(HaveLen(field.DefaultNodeCount))
		for _, n := range f.Nodes() {
			Expect(n.X).To(BeNumerically("<=", 80))
			Expect(n.Y).To(BeNumerically("<=", 60))
		}
	})

	It("treats Stop like Pause", func() {
		f.Stop()
		h.paint()
		Expect(h.queue).To(BeEmpty())
		Expect(f.Nodes()).To(HaveLen(field.DefaultNodeCount))
		Expect(f.Running()).To(BeFalse())
	})

	Context("with a 400x300 container", func() {
		It("moves every node by at most its speed in one step", func() {
			before := f.Nodes()
			f.Tick(1)
			for i, n := range f.Nodes() {
				Expect(n.X).To(BeNumerically(">=", 0))
				Expect(n.X).To(BeNumerically("<=", 400))
				Expect(n.Y).To(BeNumerically(">=", 0))
				Expect(n.Y).To(BeNumerically("<=", 300))
				Expect(n.X - before[i].X).To(BeNumerically("~", 0, before[i].Speed()+1e-9))
				Expect(n.Y - before[i].Y).To(BeNumerically("~", 0, before[i].Speed()+1e-9))
			}
		})
	})
})
