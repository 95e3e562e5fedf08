package pendulum

import (
	"fmt"
	"math"
)

// DefaultGravity is standard gravity in m/s².
const DefaultGravity = 9.80665

// State is the full configuration of a double pendulum. Arm1 hangs from the
// fixed pivot and Arm2 hangs from the free end of Arm1.
type State struct {
	Arm1    Arm
	Arm2    Arm
	Gravity float64
}

// New validates both arms and returns a state under standard gravity.
func New(arm1, arm2 Arm) (State, error) {
	return NewWithGravity(arm1, arm2, DefaultGravity)
}

func NewWithGravity(arm1, arm2 Arm, gravity float64) (State, error) {
	s := State{Arm1: arm1, Arm2: arm2, Gravity: gravity}
	if err := s.Validate(); err != nil {
		return State{}, err
	}
	return s, nil
}

func (s State) Validate() error {
	if err := s.Arm1.Validate(1); err != nil {
		return err
	}
	if err := s.Arm2.Validate(2); err != nil {
		return err
	}
	if math.IsNaN(s.Gravity) || math.IsInf(s.Gravity, 0) {
		return fmt.Errorf("%w, got %v", ErrInvalidGravity, s.Gravity)
	}
	return nil
}

// Joint1 is the absolute position of the first arm's free end.
func (s State) Joint1() Position {
	return s.Arm1.Position()
}

// Joint2 is the absolute position of the second arm's free end.
func (s State) Joint2() Position {
	return s.Arm1.Position().Add(s.Arm2.Position())
}

func (s State) Joints() (Position, Position) {
	return s.Joint1(), s.Joint2()
}

// TotalLength is the reach of the fully extended pendulum.
func (s State) TotalLength() float64 {
	return s.Arm1.Length + s.Arm2.Length
}
