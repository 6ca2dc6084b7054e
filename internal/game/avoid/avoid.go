// Package avoid implements the trash-avoid mini-game: a 3x3 grid with one
// hidden trash tile. The player wins by clicking a configured number of safe
// tiles without ever hitting the trash.
package avoid

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"telegram-minigame-bot/internal/game"
)

const (
	// Kind is the game kind registered with the session registry.
	Kind = "avoid"

	// Cells is the number of tiles on the board.
	Cells = 9

	// DefaultMaxSafe is the default number of safe clicks needed to win.
	DefaultMaxSafe = 5

	// DefaultTimeout is the default session deadline.
	DefaultTimeout = 60 * time.Second
)

// Errors for the avoid game.
var (
	ErrMaxSafeRange = errors.New("max_safe must be between 1 and 8")
)

// Config holds configuration for the avoid game.
type Config struct {
	MaxSafe int
	Timeout time.Duration
}

// Cell states on the board.
type cellState int

const (
	cellUntouched cellState = iota
	cellCleared
)

// Game is the avoid game state machine. The trash index is chosen uniformly
// at random at creation and never relocated.
type Game struct {
	maxSafe    int
	timeout    time.Duration
	trashIndex int
	safeClicks int
	cells      [Cells]cellState
	over       bool
	won        bool
}

// Factory returns a session factory bound to cfg.
// Accepts an optional "max_safe" param overriding the configured value.
func Factory(cfg Config) game.Factory {
	return func(params map[string]any) (game.Game, error) {
		maxSafe := cfg.MaxSafe
		if v, ok := params["max_safe"]; ok {
			n, ok := toInt(v)
			if !ok {
				return nil, fmt.Errorf("%w: max_safe is not a number", game.ErrConfig)
			}
			maxSafe = n
		}
		return New(maxSafe, cfg.Timeout)
	}
}

// New creates an avoid game with a random trash tile.
func New(maxSafe int, timeout time.Duration) (*Game, error) {
	return NewWithTrash(maxSafe, timeout, rand.Intn(Cells))
}

// NewWithTrash creates an avoid game with a fixed trash tile.
// Exported for deterministic tests.
func NewWithTrash(maxSafe int, timeout time.Duration, trashIndex int) (*Game, error) {
	if maxSafe < 1 || maxSafe > Cells-1 {
		return nil, fmt.Errorf("%w: %w: got %d", game.ErrConfig, ErrMaxSafeRange, maxSafe)
	}
	if trashIndex < 0 || trashIndex >= Cells {
		return nil, fmt.Errorf("%w: trash index %d out of range", game.ErrConfig, trashIndex)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Game{
		maxSafe:    maxSafe,
		timeout:    timeout,
		trashIndex: trashIndex,
	}, nil
}

// Kind returns the game kind.
func (g *Game) Kind() string { return Kind }

// Timeout returns the session deadline.
func (g *Game) Timeout() time.Duration { return g.timeout }

// MaxSafe returns the number of safe clicks needed to win.
func (g *Game) MaxSafe() int { return g.maxSafe }

// SafeClicks returns the number of safe clicks made so far.
func (g *Game) SafeClicks() int { return g.safeClicks }

// TrashIndex returns the hidden trash tile index.
func (g *Game) TrashIndex() int { return g.trashIndex }

// Over reports whether the game reached a terminal outcome.
func (g *Game) Over() bool { return g.over }

// Won reports whether the player won. Only meaningful once Over is true.
func (g *Game) Won() bool { return g.won }

// Opening returns the initial board.
func (g *Game) Opening() game.RenderDirective {
	return game.RenderDirective{
		Text: fmt.Sprintf("Avoid the trash! Click safely %d times without hitting the trash tile.",
			g.maxSafe),
		Controls: g.board(),
	}
}

// Advance applies a tile click. The action is the cell index as a decimal
// string ("0" through "8").
func (g *Game) Advance(action string) (game.RenderDirective, error) {
	if g.over {
		return game.RenderDirective{}, fmt.Errorf("%w: game is over", game.ErrInvalidMove)
	}
	idx, err := strconv.Atoi(action)
	if err != nil || idx < 0 || idx >= Cells {
		return game.RenderDirective{}, fmt.Errorf("%w: bad tile %q", game.ErrInvalidMove, action)
	}
	if g.cells[idx] == cellCleared {
		return game.RenderDirective{}, fmt.Errorf("%w: tile %d already cleared", game.ErrInvalidMove, idx)
	}

	if idx == g.trashIndex {
		g.over = true
		return game.RenderDirective{
			Text:     "💥 Oh no, you fell in the trash! Game Over!",
			Controls: g.board(),
			Terminal: true,
		}, nil
	}

	g.cells[idx] = cellCleared
	g.safeClicks++
	if g.safeClicks == g.maxSafe {
		g.over = true
		g.won = true
		return game.RenderDirective{
			Text:     "🎉 Congrats, you dodged the trash and won!",
			Controls: g.board(),
			Terminal: true,
		}, nil
	}

	return game.RenderDirective{
		Text: fmt.Sprintf("🟢 Safe! %d/%d safe clicks. Keep avoiding trash!",
			g.safeClicks, g.maxSafe),
		Controls: g.board(),
	}, nil
}

// Expired returns the timeout view with every tile disabled.
func (g *Game) Expired() game.RenderDirective {
	d := game.RenderDirective{
		Text:     "⏰ Time's up! Game ended.",
		Controls: g.board(),
		Terminal: true,
	}
	return d.DisableAll()
}

// board renders the 3x3 grid for the current state. While the game runs,
// untouched tiles are green and enabled, cleared tiles are check-marked and
// disabled. On loss the trash is revealed in red and everything else shown
// neutral; on win the trash is revealed passively.
func (g *Game) board() [][]game.Control {
	rows := make([][]game.Control, 0, 3)
	for r := 0; r < 3; r++ {
		row := make([]game.Control, 0, 3)
		for c := 0; c < 3; c++ {
			i := r*3 + c
			row = append(row, g.tile(i))
		}
		rows = append(rows, row)
	}
	return rows
}

func (g *Game) tile(i int) game.Control {
	ctl := game.Control{Data: strconv.Itoa(i)}

	switch {
	case !g.over:
		if g.cells[i] == cellCleared {
			ctl.Label = "✅"
			ctl.Style = game.StylePositive
			ctl.Disabled = true
		} else {
			ctl.Label = "🟩"
			ctl.Style = game.StyleNeutral
		}
	case g.won:
		ctl.Disabled = true
		if i == g.trashIndex {
			ctl.Label = "💩"
			ctl.Style = game.StyleNeutral
		} else {
			ctl.Label = "✅"
			ctl.Style = game.StylePositive
		}
	default: // lost
		ctl.Disabled = true
		if i == g.trashIndex {
			ctl.Label = "💩"
			ctl.Style = game.StyleDanger
		} else {
			ctl.Label = "⬜"
			ctl.Style = game.StyleNeutral
		}
	}
	return ctl
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
