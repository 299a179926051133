// Package intent defines the per-frame player input consumed by the
// game core. The core never sees raw device events; input plumbing
// translates keys, clicks, or scripted decisions into one Frame per
// tick.
package intent

// Frame is the full set of player intents for a single frame.
// Boolean intents are edge-triggered: true means the action fired
// this frame, not that a key is held (movement is the exception, as a
// continuous vector).
type Frame struct {
	// MoveX and MoveY form the movement vector in tile units per
	// second of player speed. Diagonals are normalized by the
	// consuming system, so raw -1/0/1 components are fine.
	MoveX float64
	MoveY float64

	// Dodge requests a dodge roll (subject to cooldown).
	Dodge bool
	// Attack triggers one discrete attack resolution.
	Attack bool
	// Interact operates the environment: item pickup, shop entry.
	Interact bool

	// Confirm commits the current selection (choice, purchase).
	Confirm bool
	// Cancel backs out of the current interaction (leave shop).
	Cancel bool
	// SelectDelta moves the selection cursor: negative is up,
	// positive is down. Zero means no movement.
	SelectDelta int
	// Numeric is a direct 1-based shortcut selection; 0 means none.
	Numeric int

	// AcceptRisk and DeclineRisk resolve a push-your-luck offer.
	AcceptRisk  bool
	DeclineRisk bool

	// Restart begins a new run from the reset screen.
	Restart bool
	// Quit asks the outer loop to stop; the core itself ignores it.
	Quit bool
	// PauseToggle flips the paused flag.
	PauseToggle bool
}

// Moving reports whether the frame carries a non-zero movement vector.
func (f Frame) Moving() bool {
	return f.MoveX != 0 || f.MoveY != 0
}
