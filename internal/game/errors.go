package game

import "errors"

// Error kinds reported by the registry and the game state machines.
// All of them are recoverable: they are answered to the acting player and
// never affect other sessions.
var (
	// ErrNotFound means the referenced session is unknown or already over.
	ErrNotFound = errors.New("session not found")

	// ErrForbidden means the actor is not the session's owner. The session
	// state is untouched; the reply goes only to the offending actor.
	ErrForbidden = errors.New("not your game")

	// ErrInvalidMove means a well-formed action that is illegal in the
	// current state (occupied cell, already-cleared tile, unknown choice).
	ErrInvalidMove = errors.New("invalid move")

	// ErrConfig means session creation was attempted with invalid
	// parameters (unknown kind, unknown difficulty, out-of-range options).
	ErrConfig = errors.New("invalid game configuration")
)
