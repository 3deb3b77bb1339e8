package game

import "fmt"

const (
	Size   = 19       // Board edge length
	Center = Size / 2 // Opening cell coordinate on both axes
	WinLen = 5        // Stones in a row needed to win
)

// Player is both a side and a board cell value (None for an empty cell).
type Player int8

const (
	None Player = iota
	Black
	White
)

func (p Player) Opponent() Player {
	switch p {
	case Black:
		return White
	case White:
		return Black
	default:
		return None
	}
}

func (p Player) String() string {
	switch p {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "none"
	}
}

// ParsePlayer maps the wire names "black" and "white" to a Player.
func ParsePlayer(s string) (Player, error) {
	switch s {
	case "black":
		return Black, nil
	case "white":
		return White, nil
	default:
		return None, fmt.Errorf("unknown player %q", s)
	}
}

// Move is a 0-indexed (row, col) board coordinate.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NoMove is the sentinel for "no move found"; it is never a board index.
var NoMove = Move{Row: -1, Col: -1}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

// Relation is a cell seen from one player's perspective. The numeric values
// are the pattern key symbols.
type Relation int8

const (
	Empty Relation = iota
	Own
	Foreign
	Edge
)

// Direction is one of the 4 line axes, as a (row, col) step.
type Direction struct {
	DR, DC int
}

var Directions = [4]Direction{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
