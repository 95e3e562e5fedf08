package trace_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dpend/internal/pendulum"
	"github.com/san-kum/dpend/internal/trace"
)

func pos(x float64) pendulum.Position {
	return pendulum.Position{X: x, Y: -x}
}

var _ = Describe("Buffer", func() {
	var buf *trace.Buffer

	BeforeEach(func() {
		var err error
		buf, err = trace.New(3)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects a capacity below one", func() {
		_, err := trace.New(0)
		Expect(err).To(MatchError(trace.ErrInvalidCapacity))
	})

	It("starts empty", func() {
		Expect(buf.Len()).To(Equal(0))
		Expect(buf.Cap()).To(Equal(3))
		Expect(buf.Positions()).To(BeEmpty())
	})

	It("keeps the newest entry at the front", func() {
		buf.PushFront(pos(1))
		buf.PushFront(pos(2))

		Expect(buf.Len()).To(Equal(2))
		Expect(buf.At(0)).To(Equal(pos(2)))
		Expect(buf.Positions()).To(Equal([]pendulum.Position{pos(2), pos(1)}))
	})

	It("evicts the oldest entry once full", func() {
		for i := 1; i <= 5; i++ {
			buf.PushFront(pos(float64(i)))
		}

		Expect(buf.Len()).To(Equal(3))
		Expect(buf.Positions()).To(Equal([]pendulum.Position{pos(5), pos(4), pos(3)}))

		xs, ys := buf.XY()
		Expect(xs).To(Equal([]float64{5, 4, 3}))
		Expect(ys).To(Equal([]float64{-5, -4, -3}))
	})

	It("panics on out of range access", func() {
		buf.PushFront(pos(1))
		Expect(func() { buf.At(1) }).To(Panic())
	})

	It("is empty after Clear and reusable", func() {
		buf.PushFront(pos(1))
		buf.PushFront(pos(2))
		buf.Clear()
		Expect(buf.Len()).To(Equal(0))

		buf.PushFront(pos(9))
		Expect(buf.Positions()).To(Equal([]pendulum.Position{pos(9)}))
	})

	It("holds the default number of points", func() {
		b, err := trace.New(trace.DefaultCapacity)
		Expect(err).NotTo(HaveOccurred())
		for i := 0; i < 2*trace.DefaultCapacity; i++ {
			b.PushFront(pos(float64(i)))
		}
		Expect(b.Len()).To(Equal(500))
		Expect(b.At(0)).To(Equal(pos(float64(2*trace.DefaultCapacity - 1))))
	})
})

var _ = Describe("Recorder", func() {
	It("clears the history when a sequence restarts at frame 0", func() {
		rec, err := trace.NewRecorder(10)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 4; i++ {
			rec.Record(i, pos(float64(i)))
		}
		Expect(rec.Buffer().Len()).To(Equal(4))

		rec.Record(0, pos(100))
		Expect(rec.Buffer().Positions()).To(Equal([]pendulum.Position{pos(100)}))
	})

	It("does not clear on later frames", func() {
		rec, _ := trace.NewRecorder(10)
		rec.Record(5, pos(1))
		rec.Record(6, pos(2))
		Expect(rec.Buffer().Len()).To(Equal(2))
	})

	It("propagates invalid capacities", func() {
		_, err := trace.NewRecorder(-1)
		Expect(err).To(MatchError(trace.ErrInvalidCapacity))
	})
})
