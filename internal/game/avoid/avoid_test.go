package avoid

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-minigame-bot/internal/game"
)

func TestNew_MaxSafeRange(t *testing.T) {
	tests := []struct {
		name    string
		maxSafe int
		wantErr bool
	}{
		{"zero", 0, true},
		{"negative", -1, true},
		{"min", 1, false},
		{"default", 5, false},
		{"max", 8, false},
		{"all cells", 9, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.maxSafe, 0)
			if tt.wantErr {
				assert.ErrorIs(t, err, game.ErrConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.maxSafe, g.MaxSafe())
			assert.Equal(t, DefaultTimeout, g.Timeout())
		})
	}
}

func TestFactory_MaxSafeParam(t *testing.T) {
	f := Factory(Config{MaxSafe: 5, Timeout: time.Minute})

	g, err := f(map[string]any{"max_safe": 2})
	require.NoError(t, err)
	assert.Equal(t, 2, g.(*Game).MaxSafe())

	_, err = f(map[string]any{"max_safe": "lots"})
	assert.ErrorIs(t, err, game.ErrConfig)

	_, err = f(map[string]any{"max_safe": 0})
	assert.ErrorIs(t, err, game.ErrConfig)
}

func TestGame_LossOnTrashClick(t *testing.T) {
	g, err := NewWithTrash(5, time.Minute, 4)
	require.NoError(t, err)

	d, err := g.Advance("4")
	require.NoError(t, err)
	assert.True(t, d.Terminal)
	assert.True(t, g.Over())
	assert.False(t, g.Won())
	assert.Contains(t, d.Text, "Game Over")

	// The trash tile is revealed in red, everything else shown neutral.
	tiles := flatten(d.Controls)
	require.Len(t, tiles, Cells)
	assert.Equal(t, "💩", tiles[4].Label)
	assert.Equal(t, game.StyleDanger, tiles[4].Style)
	for i, tile := range tiles {
		assert.True(t, tile.Disabled, "tile %d should be disabled", i)
		if i != 4 {
			assert.Equal(t, "⬜", tile.Label)
		}
	}
}

func TestGame_WinAfterMaxSafeClicks(t *testing.T) {
	g, err := NewWithTrash(2, time.Minute, 8)
	require.NoError(t, err)

	d, err := g.Advance("0")
	require.NoError(t, err)
	assert.False(t, d.Terminal)
	assert.Equal(t, 1, g.SafeClicks())
	assert.Contains(t, d.Text, "1/2")

	d, err = g.Advance("1")
	require.NoError(t, err)
	assert.True(t, d.Terminal)
	assert.True(t, g.Won())
	assert.Contains(t, d.Text, "won")

	// On a win the trash is revealed passively.
	tiles := flatten(d.Controls)
	assert.Equal(t, "💩", tiles[8].Label)
	assert.Equal(t, game.StyleNeutral, tiles[8].Style)
	assert.Equal(t, "✅", tiles[0].Label)
}

func TestGame_RepeatClickRejected(t *testing.T) {
	g, err := NewWithTrash(5, time.Minute, 8)
	require.NoError(t, err)

	_, err = g.Advance("3")
	require.NoError(t, err)
	require.Equal(t, 1, g.SafeClicks())

	_, err = g.Advance("3")
	assert.ErrorIs(t, err, game.ErrInvalidMove)
	assert.Equal(t, 1, g.SafeClicks())
	assert.False(t, g.Over())
}

func TestGame_BadActionRejected(t *testing.T) {
	g, err := NewWithTrash(5, time.Minute, 8)
	require.NoError(t, err)

	for _, action := range []string{"", "x", "-1", "9", "3.5"} {
		_, err := g.Advance(action)
		assert.ErrorIs(t, err, game.ErrInvalidMove, "action %q", action)
	}
	assert.Equal(t, 0, g.SafeClicks())
}

func TestGame_NoMovesAfterLoss(t *testing.T) {
	g, err := NewWithTrash(5, time.Minute, 0)
	require.NoError(t, err)

	_, err = g.Advance("0")
	require.NoError(t, err)

	_, err = g.Advance("1")
	assert.ErrorIs(t, err, game.ErrInvalidMove)
}

func TestGame_OpeningBoard(t *testing.T) {
	g, err := NewWithTrash(5, time.Minute, 4)
	require.NoError(t, err)

	d := g.Opening()
	assert.False(t, d.Terminal)
	assert.Contains(t, d.Text, "5 times")
	require.Len(t, d.Controls, 3)

	for i, tile := range flatten(d.Controls) {
		assert.Equal(t, "🟩", tile.Label)
		assert.False(t, tile.Disabled)
		assert.Equal(t, strconv.Itoa(i), tile.Data)
	}
}

func TestGame_ExpiredDisablesBoard(t *testing.T) {
	g, err := NewWithTrash(5, time.Minute, 4)
	require.NoError(t, err)
	_, err = g.Advance("0")
	require.NoError(t, err)

	d := g.Expired()
	assert.True(t, d.Terminal)
	assert.Contains(t, d.Text, "Time's up")
	for i, tile := range flatten(d.Controls) {
		assert.True(t, tile.Disabled, "tile %d should be disabled", i)
	}
}

func flatten(rows [][]game.Control) []game.Control {
	var out []game.Control
	for _, row := range rows {
		out = append(out, row...)
	}
	return out
}
