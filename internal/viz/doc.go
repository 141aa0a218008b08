// Package viz renders epidemic trajectories in the terminal.
//
// Batch charts are drawn with asciigraph, one chart per compartment,
// plus combined comparison charts for the constant vs. time-decaying
// transmission runs. The live view steps the outbreak day by day in a
// Bubble Tea program.
//
// # Key Bindings (live view)
//
//	Space - Pause/Resume
//	R     - Reset to the initial seed state
//	Tab   - Cycle tunable parameters
//	Up/Dn - Adjust the selected parameter (±5%)
//	+/-   - Faster/slower simulation speed
//	Q     - Quit
package viz
