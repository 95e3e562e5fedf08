// Package viz draws the pendulum in the terminal.
//
// It is a consumer of the simulation: every tick it asks the simulator for
// one step, records the far joint in a trace buffer and renders both arms
// and the trail on a braille [Canvas]. Frame indices restart at 0 after a
// reset, which is also when the trail is dropped.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	.     - Single step while paused
//	R     - Reset to initial state
//	?     - Show help overlay
//	Q     - Quit
package viz
