// Package viz runs a particle field in the terminal.
//
// The package implements a live TUI using the Bubble Tea framework:
//
//   - [Model]: the live view with a stats panel
//   - [Canvas]: Braille-based pixel canvas implementing field.Surface
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Regenerate nodes
//	T     - Cycle color themes (saved as a preference)
//	S     - Toggle stats panel
//	?     - Show help overlay
//	Q     - Quit
//
// Losing terminal focus pauses the field; regaining it resumes from the
// same node state.
package viz
