package tictactoe

import (
	"fmt"
	"time"

	"telegram-minigame-bot/internal/game"
)

const (
	// PickKind is the session kind of the difficulty picker.
	PickKind = "pick"

	// DefaultPickTimeout is the default deadline for choosing a difficulty.
	DefaultPickTimeout = 30 * time.Second
)

// PickerConfig holds configuration for the difficulty picker.
type PickerConfig struct {
	Timeout time.Duration
}

// Picker is the short-lived session preceding a tic-tac-toe game. It holds
// one pending choice; on timeout with no choice made, no game is created.
type Picker struct {
	timeout time.Duration
	chosen  Difficulty
	done    bool
}

// PickerFactory returns a session factory bound to cfg.
func PickerFactory(cfg PickerConfig) game.Factory {
	return func(_ map[string]any) (game.Game, error) {
		return NewPicker(cfg.Timeout), nil
	}
}

// NewPicker creates a difficulty picker.
func NewPicker(timeout time.Duration) *Picker {
	if timeout <= 0 {
		timeout = DefaultPickTimeout
	}
	return &Picker{timeout: timeout}
}

// Kind returns the session kind.
func (p *Picker) Kind() string { return PickKind }

// Timeout returns the selection deadline.
func (p *Picker) Timeout() time.Duration { return p.timeout }

// Chosen returns the selected difficulty, or "" if none was chosen.
func (p *Picker) Chosen() Difficulty { return p.chosen }

// Opening returns the difficulty menu.
func (p *Picker) Opening() game.RenderDirective {
	return game.RenderDirective{
		Text: "Select AI difficulty:",
		Controls: [][]game.Control{
			game.Row(
				game.Control{Label: "Easy · random moves", Data: string(Easy), Style: game.StylePrimary},
			),
			game.Row(
				game.Control{Label: "Medium · basic strategy", Data: string(Medium), Style: game.StylePrimary},
			),
			game.Row(
				game.Control{Label: "Hard · unbeatable", Data: string(Hard), Style: game.StylePrimary},
			),
		},
	}
}

// Advance records the difficulty choice and ends the session.
func (p *Picker) Advance(action string) (game.RenderDirective, error) {
	if p.done {
		return game.RenderDirective{}, fmt.Errorf("%w: difficulty already selected", game.ErrInvalidMove)
	}
	d, err := ParseDifficulty(action)
	if err != nil {
		return game.RenderDirective{}, fmt.Errorf("%w: unknown difficulty %q", game.ErrInvalidMove, action)
	}
	p.chosen = d
	p.done = true
	return game.RenderDirective{
		Text:     fmt.Sprintf("Difficulty selected: %s. Starting game...", d.Title()),
		Terminal: true,
	}, nil
}

// Expired returns the timeout view.
func (p *Picker) Expired() game.RenderDirective {
	return game.RenderDirective{
		Text:     "❌ You didn't select a difficulty in time!",
		Terminal: true,
	}
}
