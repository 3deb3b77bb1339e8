package game

import "fmt"

// count returns how many consecutive p stones follow m along (dr, dc),
// not counting m itself.
func (b *Board) count(m Move, dr, dc int, p Player) int {
	n := 0
	r, c := m.Row+dr, m.Col+dc
	for InBounds(r, c) && b[r][c] == p {
		n++
		r += dr
		c += dc
	}
	return n
}

// Run is the length of the contiguous p line through m along d, counting m
// as p whatever it currently holds.
func (b *Board) Run(m Move, d Direction, p Player) int {
	return 1 + b.count(m, d.DR, d.DC, p) + b.count(m, -d.DR, -d.DC, p)
}

// MaxRun is the longest Run through m over the 4 axes.
func (b *Board) MaxRun(m Move, p Player) int {
	best := 0
	for _, d := range Directions {
		if n := b.Run(m, d, p); n > best {
			best = n
		}
	}
	return best
}

// WinningLineThrough applies the plain rule: if the p stone at m is part of
// 5 or more in a row, it returns 5 ordered cells of that line containing m.
func WinningLineThrough(b *Board, p Player, m Move) ([]Move, bool) {
	if !InBounds(m.Row, m.Col) || b.At(m) != p {
		return nil, false
	}
	for _, d := range Directions {
		back := b.count(m, -d.DR, -d.DC, p)
		fwd := b.count(m, d.DR, d.DC, p)
		if 1+back+fwd < WinLen {
			continue
		}
		// Offset of the first cell, measured backwards from m, so that the
		// window stays inside the run and covers m.
		start := min(back, WinLen-1)
		line := make([]Move, 0, WinLen)
		for i := 0; i < WinLen; i++ {
			k := i - start
			line = append(line, Move{Row: m.Row + k*d.DR, Col: m.Col + k*d.DC})
		}
		return line, true
	}
	return nil, false
}

// Rules selects the rule set used to judge a five.
type Rules int

const (
	// Freestyle: 5 or more in a row wins for either color.
	Freestyle Rules = iota
	// Renju: Black wins with exactly 5 and loses on an overline; Black is
	// also barred from double-three and double-four cells. White plays
	// freestyle.
	Renju
)

func (r Rules) String() string {
	if r == Renju {
		return "renju"
	}
	return "freestyle"
}

func ParseRules(s string) (Rules, error) {
	switch s {
	case "freestyle", "":
		return Freestyle, nil
	case "renju":
		return Renju, nil
	default:
		return Freestyle, fmt.Errorf("unknown rules %q", s)
	}
}

type Result int

const (
	NoResult Result = iota
	Win
	Overline // loss for the constrained color
)

// Result judges the stone p at m (already placed) under r.
func (r Rules) Result(b *Board, p Player, m Move) Result {
	if r == Renju && p == Black {
		// An exact five takes precedence over an overline on another axis.
		over := false
		for _, d := range Directions {
			switch n := b.Run(m, d, p); {
			case n == WinLen:
				return Win
			case n > WinLen:
				over = true
			}
		}
		if over {
			return Overline
		}
		return NoResult
	}
	if b.MaxRun(m, p) >= WinLen {
		return Win
	}
	return NoResult
}

// Wins reports whether p playing the empty cell m wins outright under r.
// The board is left unchanged.
func (r Rules) Wins(b *Board, p Player, m Move) bool {
	return b.Try(m, p, func() bool {
		return r.Result(b, p, m) == Win
	})
}

// WinningMoves returns every empty cell where p wins outright under r.
func (r Rules) WinningMoves(b *Board, p Player) []Move {
	var moves []Move
	for _, m := range EmptyCells(b) {
		if r.Wins(b, p, m) {
			moves = append(moves, m)
		}
	}
	return moves
}
