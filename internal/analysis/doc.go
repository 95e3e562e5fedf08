// Package analysis provides post-run tools for pendulum trajectories:
//
//   - [PowerSpectrum] / [DominantFrequency]: frequency content of an angle series
//   - [LyapunovExponent]: largest exponent from two nearby runs; positive means chaos
package analysis
