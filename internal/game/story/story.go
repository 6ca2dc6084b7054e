// Package story implements the trash-story mini-game: a branching narrative
// where each choice leads to another stage or to one of the fixed endings.
// Purely data-driven; no randomness.
package story

import (
	"fmt"
	"time"

	"telegram-minigame-bot/internal/game"
)

const (
	// Kind is the game kind registered with the session registry.
	Kind = "story"

	// DefaultTimeout is the default session deadline.
	DefaultTimeout = 120 * time.Second
)

// Config holds configuration for the story game.
type Config struct {
	Timeout time.Duration
}

// Game is the story state machine. The current position is a single stage
// id until an ending is reached.
type Game struct {
	timeout   time.Duration
	stage     int
	over      bool
	endingID  string
	finalText string
}

// Factory returns a session factory bound to cfg.
func Factory(cfg Config) game.Factory {
	return func(_ map[string]any) (game.Game, error) {
		return New(cfg.Timeout), nil
	}
}

// New creates a story game positioned at the root stage.
func New(timeout time.Duration) *Game {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Game{timeout: timeout, stage: rootStage}
}

// Kind returns the game kind.
func (g *Game) Kind() string { return Kind }

// Timeout returns the session deadline.
func (g *Game) Timeout() time.Duration { return g.timeout }

// Stage returns the current stage id.
func (g *Game) Stage() int { return g.stage }

// Over reports whether an ending was reached.
func (g *Game) Over() bool { return g.over }

// EndingID returns the reached ending id, or "" while the story runs.
func (g *Game) EndingID() string { return g.endingID }

// Opening returns the root stage with its choices.
func (g *Game) Opening() game.RenderDirective {
	return game.RenderDirective{
		Text:     "Begin your trashy story. Choose wisely.",
		Controls: choicesFor(g.stage),
	}
}

// Advance follows the choice with the given label. Labels not offered at
// the current stage are rejected without changing state.
func (g *Game) Advance(action string) (game.RenderDirective, error) {
	if g.over {
		return game.RenderDirective{}, fmt.Errorf("%w: the story is over", game.ErrInvalidMove)
	}

	var to target
	found := false
	for _, c := range stages[g.stage] {
		if c.label == action {
			to = c.to
			found = true
			break
		}
	}
	if !found {
		return game.RenderDirective{}, fmt.Errorf("%w: %q is not a choice here", game.ErrInvalidMove, action)
	}

	if to.ending != "" {
		g.over = true
		g.endingID = to.ending
		g.finalText = endings[to.ending]
		return game.RenderDirective{
			Text:     g.finalText,
			Terminal: true,
		}, nil
	}

	g.stage = to.stage
	return game.RenderDirective{
		Text:     fmt.Sprintf("📖 Stage %d: What do you choose?", g.stage),
		Controls: choicesFor(g.stage),
	}, nil
}

// Expired returns the timeout view.
func (g *Game) Expired() game.RenderDirective {
	d := game.RenderDirective{
		Text:     "⏰ Time's up! Story ended.",
		Controls: choicesFor(g.stage),
		Terminal: true,
	}
	return d.DisableAll()
}

// choicesFor renders the labeled choices of a stage, one per row, in
// authored order. The label doubles as the action payload.
func choicesFor(stage int) [][]game.Control {
	opts := stages[stage]
	rows := make([][]game.Control, 0, len(opts))
	for _, c := range opts {
		rows = append(rows, game.Row(game.Control{
			Label: c.label,
			Data:  c.label,
			Style: game.StylePrimary,
		}))
	}
	return rows
}
