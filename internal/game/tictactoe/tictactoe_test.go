package tictactoe

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-minigame-bot/internal/game"
)

func TestBoard_Wins(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		cell  Cell
		want  bool
	}{
		{"empty board", Board{}, Human, false},
		{"top row", Board{Human, Human, Human}, Human, true},
		{"left column", Board{AI, Empty, Empty, AI, Empty, Empty, AI}, AI, true},
		{"diagonal", Board{Human, Empty, Empty, Empty, Human, Empty, Empty, Empty, Human}, Human, true},
		{"anti-diagonal", Board{Empty, Empty, AI, Empty, AI, Empty, AI}, AI, true},
		{"mixed line", Board{Human, AI, Human}, Human, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.board.Wins(tt.cell))
		})
	}
}

func TestBoard_FullAndEmpties(t *testing.T) {
	var b Board
	assert.False(t, b.Full())
	assert.Len(t, b.Empties(), 9)

	for i := range b {
		b[i] = Human
	}
	assert.True(t, b.Full())
	assert.Empty(t, b.Empties())

	b[4] = Empty
	assert.False(t, b.Full())
	assert.Equal(t, []int{4}, b.Empties())
}

func TestParseDifficulty(t *testing.T) {
	for _, s := range []string{"easy", "medium", "hard"} {
		d, err := ParseDifficulty(s)
		require.NoError(t, err)
		assert.Equal(t, Difficulty(s), d)
	}

	_, err := ParseDifficulty("impossible")
	assert.ErrorIs(t, err, game.ErrConfig)
	_, err = ParseDifficulty("")
	assert.ErrorIs(t, err, game.ErrConfig)
}

func TestFactory_RequiresDifficulty(t *testing.T) {
	f := Factory(Config{Timeout: time.Minute})

	g, err := f(map[string]any{"difficulty": "hard"})
	require.NoError(t, err)
	assert.Equal(t, Hard, g.(*Game).Difficulty())

	_, err = f(nil)
	assert.ErrorIs(t, err, game.ErrConfig)
	_, err = f(map[string]any{"difficulty": "extreme"})
	assert.ErrorIs(t, err, game.ErrConfig)
}

func TestGame_OccupiedCellRejected(t *testing.T) {
	g := New(Hard, time.Minute)

	_, err := g.Advance("0")
	require.NoError(t, err)

	// Against a corner opening the hard AI takes the center.
	require.Equal(t, AI, g.BoardState()[4])

	_, err = g.Advance("0")
	assert.ErrorIs(t, err, game.ErrInvalidMove)
	_, err = g.Advance("4")
	assert.ErrorIs(t, err, game.ErrInvalidMove)
}

func TestGame_BadActionRejected(t *testing.T) {
	g := New(Easy, time.Minute)

	for _, action := range []string{"", "x", "-1", "9"} {
		_, err := g.Advance(action)
		assert.ErrorIs(t, err, game.ErrInvalidMove, "action %q", action)
	}
	assert.Equal(t, Board{}, g.BoardState())
}

func TestGame_EasyAIRepliesOnce(t *testing.T) {
	g := New(Easy, time.Minute)

	d, err := g.Advance("0")
	require.NoError(t, err)
	assert.False(t, d.Terminal)
	assert.Equal(t, InProgress, g.Outcome())

	b := g.BoardState()
	assert.Equal(t, Human, b[0])

	humans, ais := 0, 0
	for _, c := range b {
		switch c {
		case Human:
			humans++
		case AI:
			ais++
		}
	}
	assert.Equal(t, 1, humans)
	assert.Equal(t, 1, ais)
}

func TestGame_HumanWinStopsAI(t *testing.T) {
	g := New(Easy, time.Minute)
	g.board = Board{
		Human, Human, Empty,
		AI, AI, Empty,
		Empty, Empty, Empty,
	}

	d, err := g.Advance("2")
	require.NoError(t, err)
	assert.True(t, d.Terminal)
	assert.Equal(t, HumanWin, g.Outcome())
	assert.Contains(t, d.Text, "You win")

	// No AI move may follow a human win.
	count := 0
	for _, c := range g.BoardState() {
		if c == AI {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestGame_DrawOnHumanFinalMove(t *testing.T) {
	g := New(Hard, time.Minute)
	// X O X
	// X O O
	// O X _   -> X at 8 fills the board with no winner.
	g.board = Board{
		Human, AI, Human,
		Human, AI, AI,
		AI, Human, Empty,
	}

	d, err := g.Advance("8")
	require.NoError(t, err)
	assert.True(t, d.Terminal)
	assert.Equal(t, Draw, g.Outcome())
	assert.Contains(t, d.Text, "draw")
}

func TestGame_AIWinEndsGame(t *testing.T) {
	g := New(Medium, time.Minute)
	// The AI has two in a row and wins on its reply.
	g.board = Board{
		AI, AI, Empty,
		Human, Human, Empty,
		Empty, Empty, Empty,
	}

	// Human plays 8; medium first checks its own winning move at 2 before
	// blocking the human's at 5.
	d, err := g.Advance("8")
	require.NoError(t, err)
	assert.True(t, d.Terminal)
	assert.Equal(t, AIWin, g.Outcome())
	assert.Equal(t, AI, g.BoardState()[2])
}

func TestGame_NoMovesAfterFinish(t *testing.T) {
	g := New(Easy, time.Minute)
	g.outcome = Draw

	_, err := g.Advance("0")
	assert.ErrorIs(t, err, game.ErrInvalidMove)
}

func TestHeuristicMove_WinBeforeBlock(t *testing.T) {
	// Both sides threaten a win; medium must take its own at index 2.
	b := Board{
		AI, AI, Empty,
		Human, Human, Empty,
		Empty, Empty, Empty,
	}
	assert.Equal(t, 2, heuristicMove(b))
}

func TestHeuristicMove_BlocksImmediateLoss(t *testing.T) {
	b := Board{
		Human, Human, Empty,
		AI, Empty, Empty,
		Empty, Empty, Empty,
	}
	assert.Equal(t, 2, heuristicMove(b))
}

func TestHeuristicMove_AscendingScanOrder(t *testing.T) {
	// Two winning cells: 2 completes the top row, 6 the left column. The
	// ascending scan must take 2.
	b := Board{
		AI, AI, Empty,
		AI, Human, Human,
		Empty, Human, Empty,
	}
	assert.Equal(t, 2, heuristicMove(b))
}

func TestBestMove_FirstReplyDeterministic(t *testing.T) {
	// Corner opening: every non-center reply loses to optimal play, so the
	// center is the unique best move and repeated searches agree.
	b := Board{Human}
	first := bestMove(b)
	assert.Equal(t, 4, first)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, bestMove(b))
	}
}

func TestMinimax_TerminalScores(t *testing.T) {
	aiWin := Board{AI, AI, AI, Human, Human, Empty, Empty, Empty, Empty}
	assert.Equal(t, 1, minimax(aiWin, false))

	humanWin := Board{Human, Human, Human, AI, AI, Empty, Empty, Empty, Empty}
	assert.Equal(t, -1, minimax(humanWin, true))

	draw := Board{
		Human, AI, Human,
		Human, AI, AI,
		AI, Human, Human,
	}
	assert.Equal(t, 0, minimax(draw, true))
}

func TestGame_GridRendering(t *testing.T) {
	g := New(Hard, time.Minute)
	_, err := g.Advance("0")
	require.NoError(t, err)

	d := g.Opening() // re-render of current state uses the same grid
	rows := d.Controls
	require.Len(t, rows, 3)

	for r, row := range rows {
		require.Len(t, row, 3)
		for c, ctl := range row {
			i := r*3 + c
			assert.Equal(t, strconv.Itoa(i), ctl.Data)
			switch g.BoardState()[i] {
			case Human:
				assert.Equal(t, "❌", ctl.Label)
				assert.True(t, ctl.Disabled)
			case AI:
				assert.Equal(t, "⭕", ctl.Label)
				assert.True(t, ctl.Disabled)
			default:
				assert.False(t, ctl.Disabled)
			}
		}
	}
}

func TestPicker_Choose(t *testing.T) {
	p := NewPicker(time.Minute)

	d, err := p.Advance("medium")
	require.NoError(t, err)
	assert.True(t, d.Terminal)
	assert.Equal(t, Medium, p.Chosen())
	assert.Contains(t, d.Text, "Medium")
}

func TestPicker_InvalidChoice(t *testing.T) {
	p := NewPicker(time.Minute)

	_, err := p.Advance("extreme")
	assert.ErrorIs(t, err, game.ErrInvalidMove)
	assert.Equal(t, Difficulty(""), p.Chosen())
}

func TestPicker_SecondChoiceRejected(t *testing.T) {
	p := NewPicker(time.Minute)

	_, err := p.Advance("easy")
	require.NoError(t, err)

	_, err = p.Advance("hard")
	assert.ErrorIs(t, err, game.ErrInvalidMove)
	assert.Equal(t, Easy, p.Chosen())
}

func TestPicker_Expired(t *testing.T) {
	p := NewPicker(time.Minute)

	d := p.Expired()
	assert.True(t, d.Terminal)
	assert.Empty(t, p.Chosen())
	assert.Contains(t, d.Text, "didn't select")
}

func TestPicker_OpeningOffersAllTiers(t *testing.T) {
	p := NewPicker(time.Minute)

	d := p.Opening()
	require.Len(t, d.Controls, 3)
	assert.Equal(t, string(Easy), d.Controls[0][0].Data)
	assert.Equal(t, string(Medium), d.Controls[1][0].Data)
	assert.Equal(t, string(Hard), d.Controls[2][0].Data)
}
