// Package pendulum holds the physical parameters and kinematic state of a
// planar double pendulum.
//
// Angles are measured from the downward vertical, in radians. Positions use
// the fixed pivot as origin with y growing downward, so an arm hanging at
// rest sits at (0, length).
//
//   - [Arm]: one massless rod with a point mass at its free end
//   - [Position]: a point in the plane
//   - [State]: both arms plus the gravity constant
package pendulum
