// Package viz renders scenes in the terminal.
//
// [Model] is a Bubble Tea program that steps a simulation at 60 ticks per
// second and draws every body's outline on a braille [Canvas], next to a
// panel with the tracked body's pose and an asciigraph trail of its height.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Rebuild the world and start over
//	+/-   - Double/halve steps per tick
//	Q     - Quit
package viz
