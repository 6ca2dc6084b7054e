// Package game defines the session contract and the live-session registry
// for the mini-game bot. Each mini-game is a state machine implementing the
// Game interface; the registry owns session lifecycle, ownership checks and
// deadline timers, so adding a new mini-game only requires implementing the
// interface and registering a factory for its kind.
package game

import "time"

// Game is the contract every mini-game state machine implements.
// Implementations are plain mutable state; the registry guarantees that at
// most one Advance or expiry runs at a time for a given session, so no
// internal locking is needed.
type Game interface {
	// Kind returns the machine-readable game kind (e.g. "avoid", "story").
	Kind() string

	// Opening returns the directive to display when the session starts.
	Opening() RenderDirective

	// Advance applies one player action and returns the directive for the
	// resulting state. Returns ErrInvalidMove (possibly wrapped) if the
	// action is not legal in the current state. A directive with Terminal
	// set means the game finished and the session must be retired.
	Advance(action string) (RenderDirective, error)

	// Expired returns the directive to display when the session's deadline
	// elapses before the game finishes.
	Expired() RenderDirective

	// Timeout returns how long the session may live from creation.
	Timeout() time.Duration
}

// Factory builds a fresh game instance for one session. Params carry
// game-specific creation options (e.g. "difficulty" for tic-tac-toe);
// invalid params are reported as ErrConfig-wrapped errors.
type Factory func(params map[string]any) (Game, error)

// Status is the lifecycle state of a session. Completed and Expired are
// terminal; there are no transitions out of them.
type Status int

const (
	StatusActive Status = iota
	StatusCompleted
	StatusExpired
)

// String returns the status name for logging.
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusCompleted:
		return "completed"
	case StatusExpired:
		return "expired"
	default:
		return "unknown"
	}
}
