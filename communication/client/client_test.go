package client

import (
	"context"
	"net/http/httptest"
	"testing"

	"gomoku/communication"
	"gomoku/communication/server"
	"gomoku/engine"
	"gomoku/game"
	"gomoku/searcher"

	"github.com/stretchr/testify/require"
)

func board(stones map[game.Move]string) [][]*string {
	rows := make([][]*string, game.Size)
	for r := range rows {
		rows[r] = make([]*string, game.Size)
	}
	for m, s := range stones {
		s := s
		rows[m.Row][m.Col] = &s
	}
	return rows
}

func TestClientDecide(t *testing.T) {
	e := engine.New(engine.WithSearchOptions(searcher.WithIterations(20)))
	ts := httptest.NewServer(server.NewServer(communication.Local(e)).Handler())
	defer ts.Close()

	var c communication.Decider = NewClient(ts.URL + "/")

	t.Run("takes the winning cell", func(t *testing.T) {
		stones := map[game.Move]string{}
		for col := 5; col < 9; col++ {
			stones[game.Move{Row: 3, Col: col}] = "white"
		}
		stones[game.Move{Row: 3, Col: 4}] = "black"

		resp, err := c.Decide(context.Background(), engine.Request{Board: board(stones), Player: "white"})

		require.NoError(t, err)
		require.Equal(t, engine.Response{Row: 3, Col: 9}, resp)
	})

	t.Run("rejected request", func(t *testing.T) {
		resp, err := c.Decide(context.Background(), engine.Request{Board: board(nil), Player: "green"})

		require.Error(t, err)
		require.Contains(t, err.Error(), engine.ErrUnknownPlayer.Error())
		require.Equal(t, engine.Response{Row: -1, Col: -1}, resp)
	})

	t.Run("unreachable server", func(t *testing.T) {
		_, err := NewClient("http://127.0.0.1:1").Decide(context.Background(), engine.Request{Board: board(nil), Player: "black"})

		require.Error(t, err)
	})

	t.Run("local and remote agree", func(t *testing.T) {
		req := engine.Request{Board: board(map[game.Move]string{{Row: 9, Col: 9}: "black"}), Player: "white"}
		local := communication.Local(engine.New(engine.WithSearchOptions(searcher.WithIterations(20))))

		want, err := local.Decide(context.Background(), req)
		require.NoError(t, err)
		got, err := c.Decide(context.Background(), req)
		require.NoError(t, err)
		require.Equal(t, want, got)
	})
}

func TestLocalHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := communication.Local(engine.New()).Decide(ctx, engine.Request{Board: board(nil), Player: "black"})

	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, engine.Response{Row: -1, Col: -1}, resp)
}
