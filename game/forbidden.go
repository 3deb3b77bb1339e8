package game

const reach = 5

// axisLine holds the cells at offsets -reach..reach from a move along one
// axis. The move itself sits at index reach.
type axisLine [2*reach + 1]Relation

func (b *Board) axisLine(m Move, d Direction, p Player) axisLine {
	var l axisLine
	for i := -reach; i <= reach; i++ {
		l[i+reach] = b.RelationAt(m.Row+i*d.DR, m.Col+i*d.DC, p)
	}
	l[reach] = Own
	return l
}

// runAt is the contiguous Own run through index i.
func (l *axisLine) runAt(i int) int {
	n := 1
	for j := i - 1; j >= 0 && l[j] == Own; j-- {
		n++
	}
	for j := i + 1; j < len(l) && l[j] == Own; j++ {
		n++
	}
	return n
}

// openThree reports a three through the center that one more stone turns
// into an open four: _XXX_ with room to extend, or the split _XX_X_ and
// _X_XX_ shapes.
func (l *axisLine) openThree() bool {
	for s := reach - 2; s <= reach; s++ {
		if l[s] != Own || l[s+1] != Own || l[s+2] != Own {
			continue
		}
		if l[s-1] != Empty || l[s+3] != Empty {
			continue
		}
		// A stone beyond either flank would make this a four, not a three.
		if l[s-2] == Own || l[s+4] == Own {
			continue
		}
		if l[s-2] == Empty || l[s+4] == Empty {
			return true
		}
	}
	for a := reach - 4; a <= reach-1; a++ {
		if l[a] != Empty || l[a+5] != Empty {
			continue
		}
		if l[a-1] == Own || l[a+6] == Own {
			continue
		}
		inner := [4]Relation{l[a+1], l[a+2], l[a+3], l[a+4]}
		if inner == [4]Relation{Own, Own, Empty, Own} || inner == [4]Relation{Own, Empty, Own, Own} {
			return true
		}
	}
	return false
}

// four reports whether a single empty cell on this axis would complete
// exactly five through the center.
func (l *axisLine) four() bool {
	for i := 1; i < len(l)-1; i++ {
		if l[i] != Empty || i == reach {
			continue
		}
		l[i] = Own
		five := l.runAt(reach) == WinLen
		l[i] = Empty
		if five {
			return true
		}
	}
	return false
}

// Forbidden reports whether the empty cell m is illegal for p. Only Black
// under Renju is ever restricted. A move that makes exactly five is always
// legal; otherwise an overline, two open threes, or two fours are
// forbidden. The board is left unchanged.
func (r Rules) Forbidden(b *Board, m Move, p Player) bool {
	if r != Renju || p != Black || !b.IsEmpty(m) {
		return false
	}
	return b.Try(m, p, func() bool {
		threes, fours := 0, 0
		overline := false
		for _, d := range Directions {
			switch n := b.Run(m, d, p); {
			case n == WinLen:
				return false
			case n > WinLen:
				overline = true
				continue
			}
			l := b.axisLine(m, d, p)
			if l.four() {
				fours++
			} else if l.openThree() {
				threes++
			}
		}
		return overline || threes >= 2 || fours >= 2
	})
}

// ForbiddenMoves lists every empty cell that is forbidden for p, in
// row-major order.
func (r Rules) ForbiddenMoves(b *Board, p Player) []Move {
	if r != Renju || p != Black {
		return nil
	}
	var moves []Move
	for _, m := range EmptyCells(b) {
		if r.Forbidden(b, m, p) {
			moves = append(moves, m)
		}
	}
	return moves
}

// ForbiddenMoves applies the Renju restrictions, which only ever bind Black.
func ForbiddenMoves(b *Board, p Player) []Move {
	return Renju.ForbiddenMoves(b, p)
}

// LegalCandidates is CandidateMoves with the cells forbidden for p removed.
func (r Rules) LegalCandidates(b *Board, p Player, radius int) []Move {
	moves := CandidateMoves(b, radius)
	if r != Renju || p != Black {
		return moves
	}
	legal := moves[:0]
	for _, m := range moves {
		if !r.Forbidden(b, m, p) {
			legal = append(legal, m)
		}
	}
	return legal
}
