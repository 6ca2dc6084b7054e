// Package tictactoe implements tic-tac-toe against an AI opponent with
// selectable difficulty, plus the short-lived difficulty picker session that
// precedes a game.
package tictactoe

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"telegram-minigame-bot/internal/game"
)

const (
	// Kind is the game kind registered with the session registry.
	Kind = "ttt"

	// DefaultTimeout is the default session deadline.
	DefaultTimeout = 120 * time.Second
)

// Cell is one board position. The human always plays X and moves first.
type Cell int8

const (
	Empty Cell = iota
	Human
	AI
)

// Board is the 3x3 grid in row-major order. Value semantics: copies are
// cheap, which the minimax search relies on.
type Board [9]Cell

// lines are the eight three-in-a-row winning lines.
var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Wins reports whether c holds a complete line.
func (b Board) Wins(c Cell) bool {
	for _, l := range lines {
		if b[l[0]] == c && b[l[1]] == c && b[l[2]] == c {
			return true
		}
	}
	return false
}

// Full reports whether no empty cell remains.
func (b Board) Full() bool {
	for _, c := range b {
		if c == Empty {
			return false
		}
	}
	return true
}

// Empties returns the empty cell indexes in ascending order.
func (b Board) Empties() []int {
	var out []int
	for i, c := range b {
		if c == Empty {
			out = append(out, i)
		}
	}
	return out
}

// Difficulty selects the AI tier.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ParseDifficulty validates a difficulty string.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case Easy, Medium, Hard:
		return Difficulty(s), nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q", game.ErrConfig, s)
	}
}

// Title returns the difficulty with its first letter capitalized, for
// display.
func (d Difficulty) Title() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[0])) + string(d[1:])
}

// Outcome is the game result.
type Outcome int

const (
	InProgress Outcome = iota
	HumanWin
	AIWin
	Draw
)

// Config holds configuration for the tic-tac-toe game.
type Config struct {
	Timeout time.Duration
}

// Game is the tic-tac-toe state machine. Each accepted human move is
// immediately answered by an AI move unless the human move ended the game.
type Game struct {
	timeout    time.Duration
	board      Board
	difficulty Difficulty
	outcome    Outcome
}

// Factory returns a session factory bound to cfg. The "difficulty" param is
// required and must be one of easy, medium, hard.
func Factory(cfg Config) game.Factory {
	return func(params map[string]any) (game.Game, error) {
		s, _ := params["difficulty"].(string)
		d, err := ParseDifficulty(s)
		if err != nil {
			return nil, err
		}
		return New(d, cfg.Timeout), nil
	}
}

// New creates a game with the given difficulty.
func New(difficulty Difficulty, timeout time.Duration) *Game {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Game{timeout: timeout, difficulty: difficulty}
}

// Kind returns the game kind.
func (g *Game) Kind() string { return Kind }

// Timeout returns the session deadline.
func (g *Game) Timeout() time.Duration { return g.timeout }

// Difficulty returns the AI tier fixed at creation.
func (g *Game) Difficulty() Difficulty { return g.difficulty }

// Outcome returns the current game result.
func (g *Game) Outcome() Outcome { return g.outcome }

// BoardState returns a copy of the board.
func (g *Game) BoardState() Board { return g.board }

// Opening returns the empty board.
func (g *Game) Opening() game.RenderDirective {
	return game.RenderDirective{
		Text: fmt.Sprintf("Starting TicTacToe on %s mode. Your move (X).",
			g.difficulty.Title()),
		Controls: g.grid(),
	}
}

// Advance applies a human move (cell index as a decimal string) and, if the
// game is still running afterwards, the AI's reply.
func (g *Game) Advance(action string) (game.RenderDirective, error) {
	if g.outcome != InProgress {
		return game.RenderDirective{}, fmt.Errorf("%w: the game is over", game.ErrInvalidMove)
	}
	idx, err := strconv.Atoi(action)
	if err != nil || idx < 0 || idx >= len(g.board) {
		return game.RenderDirective{}, fmt.Errorf("%w: bad cell %q", game.ErrInvalidMove, action)
	}
	if g.board[idx] != Empty {
		return game.RenderDirective{}, fmt.Errorf("%w: cell %d is taken", game.ErrInvalidMove, idx)
	}

	g.board[idx] = Human
	if d, done := g.checkOver(); done {
		return d, nil
	}

	g.board[chooseMove(g.board, g.difficulty)] = AI
	if d, done := g.checkOver(); done {
		return d, nil
	}

	return game.RenderDirective{
		Text:     "Your turn (X). Choose your move:",
		Controls: g.grid(),
	}, nil
}

// checkOver evaluates the terminal condition after a move.
func (g *Game) checkOver() (game.RenderDirective, bool) {
	switch {
	case g.board.Wins(Human):
		g.outcome = HumanWin
		return g.terminal("🎉 You win!"), true
	case g.board.Wins(AI):
		g.outcome = AIWin
		return g.terminal("🤖 AI wins! Better luck next time."), true
	case g.board.Full():
		g.outcome = Draw
		return g.terminal("It's a draw!"), true
	default:
		return game.RenderDirective{}, false
	}
}

func (g *Game) terminal(text string) game.RenderDirective {
	d := game.RenderDirective{
		Text:     text,
		Controls: g.grid(),
		Terminal: true,
	}
	return d.DisableAll()
}

// Expired returns the timeout view.
func (g *Game) Expired() game.RenderDirective {
	d := game.RenderDirective{
		Text:     "⏰ Time's up! Game ended.",
		Controls: g.grid(),
		Terminal: true,
	}
	return d.DisableAll()
}

// grid renders the board as three rows of three controls. Occupied cells
// are disabled; the human's marks are emphasized green, the AI's red.
func (g *Game) grid() [][]game.Control {
	rows := make([][]game.Control, 0, 3)
	for r := 0; r < 3; r++ {
		row := make([]game.Control, 0, 3)
		for c := 0; c < 3; c++ {
			i := r*3 + c
			ctl := game.Control{Data: strconv.Itoa(i)}
			switch g.board[i] {
			case Human:
				ctl.Label = "❌"
				ctl.Style = game.StylePositive
				ctl.Disabled = true
			case AI:
				ctl.Label = "⭕"
				ctl.Style = game.StyleDanger
				ctl.Disabled = true
			default:
				ctl.Label = "·"
				ctl.Style = game.StyleNeutral
				ctl.Disabled = g.outcome != InProgress
			}
			row = append(row, ctl)
		}
		rows = append(rows, row)
	}
	return rows
}
