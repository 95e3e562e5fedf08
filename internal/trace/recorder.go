package trace

import "github.com/san-kum/dpend/internal/pendulum"

// Recorder feeds a Buffer from a frame sequence. Frame 0 marks the start of
// a sequence, so the history is dropped before it is recorded.
type Recorder struct {
	buf *Buffer
}

func NewRecorder(capacity int) (*Recorder, error) {
	buf, err := New(capacity)
	if err != nil {
		return nil, err
	}
	return &Recorder{buf: buf}, nil
}

func (r *Recorder) Record(frame int, p pendulum.Position) {
	if frame == 0 {
		r.buf.Clear()
	}
	r.buf.PushFront(p)
}

func (r *Recorder) Buffer() *Buffer { return r.buf }
