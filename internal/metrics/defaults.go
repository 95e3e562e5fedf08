package metrics

import "github.com/san-kum/dpend/internal/sim"

// Defaults returns the metrics attached to every recorded run.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewEnergy(),
		NewEnergyDrift(),
		NewStability(),
		NewFlips(),
	}
}
