package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetScore(t *testing.T) {
	cases := []struct {
		count, openEnds int
		want            float64
	}{
		{5, 0, ScoreFive},
		{6, 2, ScoreFive},
		{4, 2, ScoreOpenFour},
		{4, 1, ScoreClosedFour},
		{4, 0, 0},
		{3, 2, ScoreOpenThree},
		{3, 1, ScoreClosedThree},
		{2, 2, ScoreOpenTwo},
		{2, 1, ScoreClosedTwo},
		{1, 1, ScoreOne},
		{0, 2, 0},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, getScore(tc.count, tc.openEnds), "count=%d openEnds=%d", tc.count, tc.openEnds)
	}
}

func TestScoreMove(t *testing.T) {
	t.Run("lone stone in the center", func(t *testing.T) {
		var b Board
		// 5 windows with one stone and two open ends, on each of 4 axes.
		require.Equal(t, 20.0, ScoreMove(&b, Move{Row: 9, Col: 9}, Black))
	})

	t.Run("completing five dominates", func(t *testing.T) {
		var b Board
		place(&b, Black, row(9, 5, 6, 7, 8)...)
		require.GreaterOrEqual(t, ScoreMove(&b, Move{Row: 9, Col: 9}, Black), ScoreFive)
	})

	t.Run("opponent windows carry the blocking bonus", func(t *testing.T) {
		foreign := []Relation{Foreign, Empty, Empty, Empty, Empty, Empty}
		own := []Relation{Own, Empty, Empty, Empty, Empty, Empty}

		require.Equal(t, ScoreOne, scoreLine(own))
		require.InDelta(t, BlockingBonus*ScoreOne, scoreLine(foreign), 1e-9)
	})

	t.Run("symmetric under color swap and mirror", func(t *testing.T) {
		var b, swapped, mirrored Board
		place(&b, Black, Move{Row: 4, Col: 4}, Move{Row: 4, Col: 5}, Move{Row: 6, Col: 7})
		place(&b, White, Move{Row: 5, Col: 5}, Move{Row: 3, Col: 6})
		for r := 0; r < Size; r++ {
			for c := 0; c < Size; c++ {
				if b[r][c] != None {
					swapped[r][c] = b[r][c].Opponent()
				}
				mirrored[r][Size-1-c] = b[r][c]
			}
		}
		m := Move{Row: 4, Col: 6}
		want := ScoreMove(&b, m, Black)

		require.InDelta(t, want, ScoreMove(&swapped, m, White), 1e-9)
		require.InDelta(t, want, ScoreMove(&mirrored, Move{Row: 4, Col: Size - 1 - m.Col}, Black), 1e-9)
	})

	t.Run("does not modify the board", func(t *testing.T) {
		var b Board
		place(&b, White, row(2, 2, 3)...)
		before := b
		ScoreMove(&b, Move{Row: 2, Col: 4}, Black)
		require.Equal(t, before, b)
	})
}

func TestBestMove(t *testing.T) {
	var b Board
	place(&b, Black, row(9, 5, 6, 7, 8)...)
	place(&b, White, Move{Row: 10, Col: 5})

	got, ok := BestMove(&b, Black, CandidateMoves(&b, 1))
	require.True(t, ok)
	require.Contains(t, []Move{{Row: 9, Col: 4}, {Row: 9, Col: 9}}, got)

	_, ok = BestMove(&b, Black, nil)
	require.False(t, ok)
}

func TestEvaluateBoard(t *testing.T) {
	t.Run("empty and lone stones score nothing", func(t *testing.T) {
		var b Board
		require.Zero(t, EvaluateBoard(&b, Black))

		place(&b, Black, Move{Row: 9, Col: 9})
		require.Zero(t, EvaluateBoard(&b, Black))
		require.Zero(t, EvaluateBoard(&b, White))
	})

	t.Run("own two counts every window holding it", func(t *testing.T) {
		var b Board
		place(&b, Black, row(9, 9, 10)...)

		require.Equal(t, 4*ScoreOpenTwo, EvaluateBoard(&b, Black))
		require.Zero(t, EvaluateBoard(&b, White), "Opponent twos are not penalised")
	})

	t.Run("opponent three is penalised", func(t *testing.T) {
		var b Board
		place(&b, White, row(9, 9, 10, 11)...)

		require.Equal(t, -3*ScoreOpenThree*ThreatPenalty, EvaluateBoard(&b, Black))
		require.Equal(t, 3*ScoreOpenThree+2*ScoreOpenTwo, EvaluateBoard(&b, White))
	})

	t.Run("five dominates", func(t *testing.T) {
		var b Board
		place(&b, Black, row(9, 5, 6, 7, 8, 9)...)
		place(&b, White, row(10, 5, 6, 7)...)

		require.GreaterOrEqual(t, EvaluateBoard(&b, Black), ScoreFive)
		require.LessOrEqual(t, EvaluateBoard(&b, White), -ScoreFive)
	})

	t.Run("transposing the board keeps the score", func(t *testing.T) {
		var b, transposed Board
		stones := []Move{{Row: 3, Col: 4}, {Row: 4, Col: 5}, {Row: 5, Col: 6}, {Row: 4, Col: 4}, {Row: 0, Col: 0}}
		for i, m := range stones {
			p := Black
			if i%2 == 1 {
				p = White
			}
			b.Set(m, p)
			transposed.Set(Move{Row: m.Col, Col: m.Row}, p)
		}

		require.InDelta(t, EvaluateBoard(&b, Black), EvaluateBoard(&transposed, Black), 1e-9)
		require.InDelta(t, EvaluateBoard(&b, White), EvaluateBoard(&transposed, White), 1e-9)
	})

	t.Run("does not modify the board", func(t *testing.T) {
		var b Board
		place(&b, Black, row(9, 9, 10)...)
		place(&b, White, row(8, 9)...)
		before := b

		EvaluateBoard(&b, White)

		require.Equal(t, before, b)
	})
}
