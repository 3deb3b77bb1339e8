package game

import "strings"

// Board is a 19x19 grid indexed [row][col]. It is a value type: assigning a
// Board copies every cell.
type Board [Size][Size]Player

func InBounds(r, c int) bool {
	return r >= 0 && r < Size && c >= 0 && c < Size
}

func (b *Board) At(m Move) Player {
	return b[m.Row][m.Col]
}

func (b *Board) Set(m Move, p Player) {
	b[m.Row][m.Col] = p
}

func (b *Board) IsEmpty(m Move) bool {
	return InBounds(m.Row, m.Col) && b[m.Row][m.Col] == None
}

// Try places p at m, evaluates fn, and restores the previous cell value on
// every exit path, including a panic inside fn.
func (b *Board) Try(m Move, p Player, fn func() bool) bool {
	prev := b[m.Row][m.Col]
	b[m.Row][m.Col] = p
	defer func() { b[m.Row][m.Col] = prev }()
	return fn()
}

// RelationAt reports the cell at (r, c) as seen by perspective.
func (b *Board) RelationAt(r, c int, perspective Player) Relation {
	if !InBounds(r, c) {
		return Edge
	}
	switch b[r][c] {
	case None:
		return Empty
	case perspective:
		return Own
	default:
		return Foreign
	}
}

// Stones counts occupied cells.
func (b *Board) Stones() int {
	n := 0
	for r := range b {
		for c := range b[r] {
			if b[r][c] != None {
				n++
			}
		}
	}
	return n
}

func IsFull(b *Board) bool {
	for r := range b {
		for c := range b[r] {
			if b[r][c] == None {
				return false
			}
		}
	}
	return true
}

// CandidateMoves returns every empty cell within radius (Chebyshev distance)
// of a stone, in row-major order. An empty board yields only the center.
func CandidateMoves(b *Board, radius int) []Move {
	var near [Size][Size]bool
	hasStones := false
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] == None {
				continue
			}
			hasStones = true
			for i := -radius; i <= radius; i++ {
				for j := -radius; j <= radius; j++ {
					if InBounds(r+i, c+j) {
						near[r+i][c+j] = true
					}
				}
			}
		}
	}
	if !hasStones {
		return []Move{{Row: Center, Col: Center}}
	}

	moves := make([]Move, 0, 64)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if near[r][c] && b[r][c] == None {
				moves = append(moves, Move{Row: r, Col: c})
			}
		}
	}
	return moves
}

// EmptyCells lists every empty cell in row-major order.
func EmptyCells(b *Board) []Move {
	moves := make([]Move, 0, Size*Size)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] == None {
				moves = append(moves, Move{Row: r, Col: c})
			}
		}
	}
	return moves
}

// String renders the board one row per line: '.' empty, 'X' black, 'O' white.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			switch b[r][c] {
			case Black:
				sb.WriteByte('X')
			case White:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
