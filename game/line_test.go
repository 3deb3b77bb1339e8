package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWinningLineThrough(t *testing.T) {
	t.Run("horizontal five", func(t *testing.T) {
		var b Board
		place(&b, Black, row(9, 5, 6, 7, 8, 9)...)

		line, ok := WinningLineThrough(&b, Black, Move{Row: 9, Col: 7})

		require.True(t, ok)
		require.Equal(t, row(9, 5, 6, 7, 8, 9), line)
	})

	t.Run("diagonal five", func(t *testing.T) {
		var b Board
		for i := 0; i < 5; i++ {
			b[2+i][10-i] = White
		}

		line, ok := WinningLineThrough(&b, White, Move{Row: 4, Col: 8})

		require.True(t, ok)
		require.Len(t, line, 5)
		require.Contains(t, line, Move{Row: 4, Col: 8})
	})

	t.Run("long run is trimmed to five containing the move", func(t *testing.T) {
		var b Board
		place(&b, Black, row(3, 0, 1, 2, 3, 4, 5, 6)...)

		line, ok := WinningLineThrough(&b, Black, Move{Row: 3, Col: 6})

		require.True(t, ok)
		require.Equal(t, row(3, 2, 3, 4, 5, 6), line)
	})

	t.Run("four is not a win", func(t *testing.T) {
		var b Board
		place(&b, Black, row(9, 9, 10, 11, 12)...)

		_, ok := WinningLineThrough(&b, Black, Move{Row: 9, Col: 12})
		require.False(t, ok)
	})

	t.Run("wrong color at the move", func(t *testing.T) {
		var b Board
		place(&b, Black, row(9, 5, 6, 7, 8, 9)...)

		_, ok := WinningLineThrough(&b, White, Move{Row: 9, Col: 7})
		require.False(t, ok)
	})
}

func TestRulesResult(t *testing.T) {
	overline := func(p Player) *Board {
		var b Board
		place(&b, p, row(9, 4, 5, 6, 7, 8, 9)...)
		return &b
	}

	t.Run("freestyle overline wins", func(t *testing.T) {
		require.Equal(t, Win, Freestyle.Result(overline(Black), Black, Move{Row: 9, Col: 9}))
	})

	t.Run("renju overline loses for black", func(t *testing.T) {
		require.Equal(t, Overline, Renju.Result(overline(Black), Black, Move{Row: 9, Col: 9}))
	})

	t.Run("renju overline wins for white", func(t *testing.T) {
		require.Equal(t, Win, Renju.Result(overline(White), White, Move{Row: 9, Col: 9}))
	})

	t.Run("renju exact five wins for black", func(t *testing.T) {
		var b Board
		place(&b, Black, row(9, 4, 5, 6, 7, 8)...)
		require.Equal(t, Win, Renju.Result(&b, Black, Move{Row: 9, Col: 8}))
	})
}

func TestWinningMoves(t *testing.T) {
	var b Board
	place(&b, Black, row(9, 9, 10, 11, 12)...)
	before := b

	moves := Freestyle.WinningMoves(&b, Black)

	require.ElementsMatch(t, []Move{{Row: 9, Col: 8}, {Row: 9, Col: 13}}, moves)
	require.Empty(t, Freestyle.WinningMoves(&b, White))
	require.Equal(t, before, b, "Board should be unchanged")
}

func TestParseRules(t *testing.T) {
	r, err := ParseRules("renju")
	require.NoError(t, err)
	require.Equal(t, Renju, r)

	r, err = ParseRules("")
	require.NoError(t, err)
	require.Equal(t, Freestyle, r)

	_, err = ParseRules("caro")
	require.Error(t, err)
}
