package pendulum

type Position struct {
	X, Y float64
}

// Add returns the vector sum p + q.
func (p Position) Add(q Position) Position {
	return Position{X: p.X + q.X, Y: p.Y + q.Y}
}
