package pendulum

import "math"

// Arm is one pendulum segment.
type Arm struct {
	Mass                float64
	Length              float64
	Angle               float64
	AngularVelocity     float64
	AngularAcceleration float64
}

// NewArm returns an arm at rest at the given angle.
func NewArm(mass, length, angle float64) Arm {
	return Arm{Mass: mass, Length: length, Angle: angle}
}

// Position is the displacement of the arm's free end relative to its own pivot.
func (a Arm) Position() Position {
	return Position{
		X: a.Length * math.Sin(a.Angle),
		Y: a.Length * math.Cos(a.Angle),
	}
}

// Validate reports whether mass and length are usable. The index is only
// used to label the error.
func (a Arm) Validate(index int) error {
	// written as !(v > 0) so NaN is rejected too
	if !(a.Mass > 0) {
		return &ArmError{Arm: index, Field: "mass", Value: a.Mass, Err: ErrInvalidMass}
	}
	if !(a.Length > 0) {
		return &ArmError{Arm: index, Field: "length", Value: a.Length, Err: ErrInvalidLength}
	}
	return nil
}
