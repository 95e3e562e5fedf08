// Package trace keeps the recent history of the far joint for drawing a
// trail behind the pendulum.
package trace

import (
	"errors"
	"fmt"

	"github.com/san-kum/dpend/internal/pendulum"
)

// DefaultCapacity is the number of trail points kept.
const DefaultCapacity = 500

var ErrInvalidCapacity = errors.New("trace: capacity must be at least 1")

// Buffer is a fixed-capacity ring of positions. New entries go to the front;
// once full, each insert evicts the oldest entry.
type Buffer struct {
	data []pendulum.Position
	head int
	size int
}

func New(capacity int) (*Buffer, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidCapacity, capacity)
	}
	return &Buffer{data: make([]pendulum.Position, capacity)}, nil
}

// PushFront inserts p as the newest entry.
func (b *Buffer) PushFront(p pendulum.Position) {
	b.head--
	if b.head < 0 {
		b.head = len(b.data) - 1
	}
	b.data[b.head] = p
	if b.size < len(b.data) {
		b.size++
	}
}

func (b *Buffer) Len() int { return b.size }
func (b *Buffer) Cap() int { return len(b.data) }

// At returns the i-th entry, 0 being the newest.
func (b *Buffer) At(i int) pendulum.Position {
	if i < 0 || i >= b.size {
		panic(fmt.Sprintf("trace: index %d out of range [0,%d)", i, b.size))
	}
	return b.data[(b.head+i)%len(b.data)]
}

// Positions returns a copy of the contents, newest first.
func (b *Buffer) Positions() []pendulum.Position {
	out := make([]pendulum.Position, b.size)
	for i := range out {
		out[i] = b.data[(b.head+i)%len(b.data)]
	}
	return out
}

// XY returns the contents as parallel coordinate slices, newest first.
func (b *Buffer) XY() (xs, ys []float64) {
	xs = make([]float64, b.size)
	ys = make([]float64, b.size)
	for i := 0; i < b.size; i++ {
		p := b.data[(b.head+i)%len(b.data)]
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys
}

func (b *Buffer) Clear() {
	b.head = 0
	b.size = 0
}
