package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts one search", func(t *testing.T) {
		c := NewCollector()
		c.Start(80)
		c.AddEpisode()
		c.AddEpisode()
		c.AddFullPlayout()
		c.AddSeeded()

		m := c.Complete(42)

		require.Equal(t, 2, m.Episodes)
		require.Equal(t, 1, m.FullPlayouts)
		require.Equal(t, 1, m.Seeded)
		require.Equal(t, 80, m.Cutoff)
		require.Equal(t, 42, m.TreeSize)
	})

	t.Run("start resets counters", func(t *testing.T) {
		c := NewCollector()
		c.Start(10)
		c.AddEpisode()
		c.Start(10)

		require.Zero(t, c.Complete(0).Episodes)
	})

	t.Run("dummy collector reports nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(80)
		c.AddEpisode()

		require.Equal(t, SearchMetric{}, c.Complete(5))
	})
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "selfplay")
	require.NoError(t, err)

	now := time.Now()
	err = w.WriteGameRecords([]GameRecord{{
		ID:    "g1",
		Agent: 1,
		GameMetric: GameMetric{
			Winner: "black", Reason: "five", StartTime: now, EndTime: now, TotalMoves: 9,
		},
	}})
	require.NoError(t, err)

	err = w.WriteMoveRecords([]MoveRecord{
		{Game: "g1", MoveMetric: MoveMetric{Step: 1, Player: "black", Row: 9, Col: 9, Stage: "search"}},
		{Game: "g1", MoveMetric: MoveMetric{Step: 2, Player: "white", Row: 9, Col: 10, Stage: "search"}},
	})
	require.NoError(t, err)

	err = w.WriteAgentConfigs([]AgentConfig{{ID: 1, Iterations: 100, Rules: "renju", Policy: "alphabeta", Depth: 3}})
	require.NoError(t, err)

	read := func(name string) [][]string {
		f, err := os.Open(filepath.Join(w.Dir(), name))
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		return rows
	}

	games := read("game_records.csv")
	require.Len(t, games, 2, "Header plus one game")
	require.Equal(t, []string{"g1", "1", "black", "five", "9"}, games[1][:5])

	moves := read("move_records.csv")
	require.Len(t, moves, 3)
	require.Equal(t, "white", moves[2][2])

	configs := read("agent_configs.csv")
	require.Equal(t, "renju", configs[1][6])
	require.Equal(t, []string{"alphabeta", "3"}, configs[1][7:])
}
