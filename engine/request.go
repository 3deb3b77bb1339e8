package engine

import (
	"errors"
	"fmt"

	"gomoku/game"
	"gomoku/knowledge"
	"gomoku/pattern"

	"github.com/rs/zerolog/log"
)

var (
	ErrMalformedBoard = errors.New("malformed board")
	ErrUnknownPlayer  = errors.New("unknown player")
	ErrUnknownCell    = errors.New("unknown cell")
)

// Request is a decision request as it arrives on the wire. Board cells are
// null, "black" or "white".
type Request struct {
	Board     [][]*string                `json:"board"`
	Player    string                     `json:"player"`
	Knowledge map[string]knowledge.Entry `json:"knowledge,omitempty"`
}

// Response carries the chosen cell, or -1/-1 when no move was found.
type Response struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

var noResponse = Response{Row: game.NoMove.Row, Col: game.NoMove.Col}

func ParseBoard(cells [][]*string) (game.Board, error) {
	var b game.Board
	if len(cells) != game.Size {
		return b, fmt.Errorf("%w: %d rows, want %d", ErrMalformedBoard, len(cells), game.Size)
	}
	for r, row := range cells {
		if len(row) != game.Size {
			return b, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedBoard, r, len(row), game.Size)
		}
		for c, cell := range row {
			if cell == nil {
				continue
			}
			p, err := game.ParsePlayer(*cell)
			if err != nil {
				return b, fmt.Errorf("%w at (%d,%d): %q", ErrUnknownCell, r, c, *cell)
			}
			b[r][c] = p
		}
	}
	return b, nil
}

// Parse validates req and converts it into engine types.
func (req Request) Parse() (game.Board, game.Player, knowledge.Map, error) {
	b, err := ParseBoard(req.Board)
	if err != nil {
		return b, game.None, nil, err
	}
	p, err := game.ParsePlayer(req.Player)
	if err != nil {
		return b, game.None, nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, req.Player)
	}
	src := make(knowledge.Map, len(req.Knowledge))
	for k, e := range req.Knowledge {
		src[pattern.Key(k)] = e
	}
	return b, p, src, nil
}

// Handle answers one request. Invalid input is an error. A full board, or
// any failure inside the decision itself, yields the -1/-1 response with a
// nil error.
func (e *Engine) Handle(req Request) (resp Response, err error) {
	b, p, src, err := req.Parse()
	if err != nil {
		return noResponse, err
	}
	if game.IsFull(&b) {
		log.Info().Msg("board is full, no move to play")
		return noResponse, nil
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error().Msgf("decision for %s failed: %v", p, r)
			resp, err = noResponse, nil
		}
	}()

	d := e.Decide(&b, p, src)
	return Response{Row: d.Move.Row, Col: d.Move.Col}, nil
}

// RootKeys lists the pattern keys of p's candidate moves on b, which is the
// set of knowledge entries a decision can use at the root.
func RootKeys(b *game.Board, p game.Player, radius int) []knowledge.Key {
	moves := game.CandidateMoves(b, radius)
	keys := make([]knowledge.Key, 0, len(moves))
	seen := make(map[knowledge.Key]bool, len(moves))
	for _, m := range moves {
		k := pattern.KeyOf(b, m, p)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}
