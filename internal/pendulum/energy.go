package pendulum

import "math"

// Kinetic returns the kinetic energy of both point masses.
func (s State) Kinetic() float64 {
	m1, m2 := s.Arm1.Mass, s.Arm2.Mass
	l1, l2 := s.Arm1.Length, s.Arm2.Length
	w1, w2 := s.Arm1.AngularVelocity, s.Arm2.AngularVelocity

	v1sq := l1 * l1 * w1 * w1
	v2sq := l1*l1*w1*w1 + l2*l2*w2*w2 +
		2*l1*l2*w1*w2*math.Cos(s.Arm1.Angle-s.Arm2.Angle)

	return 0.5*m1*v1sq + 0.5*m2*v2sq
}

// Potential returns the potential energy relative to the pivot height.
// y grows downward, hence the sign.
func (s State) Potential() float64 {
	y1 := s.Joint1().Y
	y2 := s.Joint2().Y
	return -s.Gravity * (s.Arm1.Mass*y1 + s.Arm2.Mass*y2)
}

// Energy is the total mechanical energy. It is only observed, never used to
// correct the state.
func (s State) Energy() float64 {
	return s.Kinetic() + s.Potential()
}
