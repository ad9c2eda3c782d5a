// Package viz is the terminal front end.
//
//   - [Model]: bubbletea live view of a running experiment
//   - [App]: preset picker that hands over to a [Model]
//   - [Canvas]: braille pixel canvas colored per particle type
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Randomize type rules with the current parameters
//	N     - Respawn particles
//	↑↓    - Select a parameter
//	←→    - Tune it
//	[ ]   - Ticks per frame
//	T     - Cycle themes
//	?     - Show help overlay
package viz
