package searcher

import (
	"testing"
	"time"

	"gomoku/game"
	"gomoku/knowledge"
	"gomoku/pattern"

	"github.com/stretchr/testify/require"
)

func TestNewMCTS(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		m := NewMCTS()

		require.Equal(t, DefaultIterations, m.iterations)
		require.Equal(t, DefaultDuration, m.duration)
		require.Equal(t, DefaultExploration, m.exploration)
		require.Equal(t, DefaultCutoff, m.cutoff)
		require.Equal(t, DefaultRadius, m.radius)
		require.Equal(t, game.Freestyle, m.Rules())
	})

	t.Run("options override defaults and ignore invalid values", func(t *testing.T) {
		m := NewMCTS(WithIterations(10), WithDuration(-1), WithCutoff(0), WithRadius(1), WithRules(game.Renju))

		require.Equal(t, 10, m.iterations)
		require.Equal(t, DefaultDuration, m.duration)
		require.Equal(t, DefaultCutoff, m.cutoff)
		require.Equal(t, 1, m.Radius())
		require.Equal(t, game.Renju, m.Rules())
	})
}

func TestMCTSSearch(t *testing.T) {
	t.Run("empty board plays the center", func(t *testing.T) {
		var b game.Board
		m := NewMCTS(WithIterations(20), WithMetrics())

		move, ok, metric := m.Search(&b, game.Black, nil)

		require.True(t, ok)
		require.Equal(t, game.Move{Row: 9, Col: 9}, move)
		require.Equal(t, 20, metric.Episodes)
		require.Equal(t, DefaultCutoff, metric.Cutoff)
	})

	t.Run("expired budget plays the first candidate in board order", func(t *testing.T) {
		b := boardWith([]game.Move{{Row: 9, Col: 9}}, nil)
		m := NewMCTS(WithDuration(time.Nanosecond), WithRadius(1), WithMetrics())

		move, ok, metric := m.Search(b, game.White, nil)

		require.True(t, ok)
		require.Equal(t, game.Move{Row: 8, Col: 8}, move)
		require.Zero(t, metric.Episodes)
	})

	t.Run("full board has no move", func(t *testing.T) {
		var b game.Board
		for r := 0; r < game.Size; r++ {
			for c := 0; c < game.Size; c++ {
				b[r][c] = game.Player((r/2+c)%2 + 1)
			}
		}
		m := NewMCTS(WithIterations(5))

		move, ok, _ := m.Search(&b, game.Black, nil)

		require.False(t, ok)
		require.Equal(t, game.NoMove, move)
	})

	t.Run("finds the winning move", func(t *testing.T) {
		b := boardWith(
			[]game.Move{{Row: 9, Col: 9}, {Row: 9, Col: 10}, {Row: 9, Col: 11}, {Row: 9, Col: 12}},
			[]game.Move{{Row: 10, Col: 9}, {Row: 10, Col: 10}, {Row: 10, Col: 11}, {Row: 8, Col: 9}},
		)
		m := NewMCTS(WithIterations(200), WithRadius(1), WithCutoff(10))

		move, ok, _ := m.Search(b, game.Black, nil)

		require.True(t, ok)
		require.Contains(t, []game.Move{{Row: 9, Col: 8}, {Row: 9, Col: 13}}, move)
	})

	t.Run("does not modify the board", func(t *testing.T) {
		b := boardWith([]game.Move{{Row: 9, Col: 9}}, []game.Move{{Row: 9, Col: 10}})
		before := *b
		m := NewMCTS(WithIterations(30), WithRadius(1), WithCutoff(6))

		m.Search(b, game.Black, nil)

		require.Equal(t, before, *b)
	})

	t.Run("deadline stops the search", func(t *testing.T) {
		b := boardWith([]game.Move{{Row: 9, Col: 9}}, []game.Move{{Row: 9, Col: 10}})
		m := NewMCTS(WithIterations(1_000_000), WithDuration(50*time.Millisecond), WithMetrics())

		start := time.Now()
		_, ok, metric := m.Search(b, game.Black, nil)

		require.True(t, ok)
		require.Less(t, time.Since(start), 2*time.Second)
		require.Less(t, metric.Episodes, 1_000_000)
	})

	t.Run("seeded root child is preferred", func(t *testing.T) {
		b := boardWith([]game.Move{{Row: 9, Col: 9}}, nil)
		good := game.Move{Row: 9, Col: 10}
		src := knowledge.Map{pattern.KeyOf(b, good, game.White): {Wins: 500, Losses: 0}}
		m := NewMCTS(WithIterations(10), WithRadius(1), WithCutoff(2), WithMetrics())

		move, ok, metric := m.Search(b, game.White, src)

		require.True(t, ok)
		require.Equal(t, 4, metric.Seeded, "All orthogonal neighbors share the key")
		require.Contains(t, []game.Move{{Row: 8, Col: 9}, {Row: 9, Col: 8}, good, {Row: 10, Col: 9}}, move)
	})
}

func TestRollout(t *testing.T) {
	t.Run("side to move completes its five", func(t *testing.T) {
		b := boardWith([]game.Move{{Row: 9, Col: 5}, {Row: 9, Col: 6}, {Row: 9, Col: 7}, {Row: 9, Col: 8}}, nil)

		require.Equal(t, Win, rollout(*b, game.Black, DefaultCutoff, 1, NewMCTS().metrics))
	})

	t.Run("opponent completes its five", func(t *testing.T) {
		b := boardWith([]game.Move{{Row: 9, Col: 5}, {Row: 9, Col: 6}, {Row: 9, Col: 7}, {Row: 9, Col: 8}}, nil)

		require.Equal(t, Loss, rollout(*b, game.White, DefaultCutoff, 1, NewMCTS().metrics),
			"White blocks one end, Black wins at the other")
	})

	t.Run("cutoff scores a draw", func(t *testing.T) {
		var b game.Board

		require.Equal(t, Draw, rollout(b, game.Black, 1, 1, NewMCTS().metrics))
	})
}
