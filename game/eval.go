package game

// Heuristic weights for a 5-cell window, by stone count and open ends.
const (
	ScoreFive        = 10_000_000.0
	ScoreOpenFour    = 500_000.0
	ScoreClosedFour  = 4_000.0
	ScoreOpenThree   = 2_500.0
	ScoreClosedThree = 100.0
	ScoreOpenTwo     = 20.0
	ScoreClosedTwo   = 2.0
	ScoreOne         = 1.0

	// BlockingBonus weights opponent shapes so that stopping a threat beats
	// building an equally ranked one.
	BlockingBonus = 1.1
)

// getScore rates count same-colored stones in a window with openEnds empty
// cells just outside it.
func getScore(count, openEnds int) float64 {
	if count >= WinLen {
		return ScoreFive
	}
	if openEnds == 0 {
		return 0
	}
	switch count {
	case 4:
		if openEnds >= 2 {
			return ScoreOpenFour
		}
		return ScoreClosedFour
	case 3:
		if openEnds >= 2 {
			return ScoreOpenThree
		}
		return ScoreClosedThree
	case 2:
		if openEnds >= 2 {
			return ScoreOpenTwo
		}
		return ScoreClosedTwo
	case 1:
		return ScoreOne
	default:
		return 0
	}
}

// moveLine is the line through a move along one axis: the move itself plus
// up to 5 cells either side. The first cell past an edge is kept as Foreign
// so the edge never counts as an open end.
func (b *Board) moveLine(m Move, d Direction, p Player) []Relation {
	var back, fwd []Relation
	for i := 1; i <= reach; i++ {
		rel := b.RelationAt(m.Row-i*d.DR, m.Col-i*d.DC, p)
		if rel == Edge {
			back = append(back, Foreign)
			break
		}
		back = append(back, rel)
	}
	for i := 1; i <= reach; i++ {
		rel := b.RelationAt(m.Row+i*d.DR, m.Col+i*d.DC, p)
		if rel == Edge {
			fwd = append(fwd, Foreign)
			break
		}
		fwd = append(fwd, rel)
	}

	line := make([]Relation, 0, len(back)+1+len(fwd))
	for i := len(back) - 1; i >= 0; i-- {
		line = append(line, back[i])
	}
	line = append(line, Own)
	return append(line, fwd...)
}

// scoreLine slides a 5-cell window along line. Windows holding both colors
// are not threats and score nothing.
func scoreLine(line []Relation) float64 {
	score := 0.0
	for i := 0; i+WinLen <= len(line); i++ {
		own, foreign := 0, 0
		for _, rel := range line[i : i+WinLen] {
			switch rel {
			case Own:
				own++
			case Foreign:
				foreign++
			}
		}
		if own > 0 && foreign > 0 {
			continue
		}

		openEnds := 0
		if i > 0 && line[i-1] == Empty {
			openEnds++
		}
		if i+WinLen < len(line) && line[i+WinLen] == Empty {
			openEnds++
		}

		if own > 0 {
			score += getScore(own, openEnds)
		}
		if foreign > 0 {
			score += getScore(foreign, openEnds) * BlockingBonus
		}
	}
	return score
}

// ScoreMove rates p playing the empty cell m: the shapes the stone builds
// plus the opponent shapes it sits next to. The board is not modified.
func ScoreMove(b *Board, m Move, p Player) float64 {
	total := 0.0
	for _, d := range Directions {
		total += scoreLine(b.moveLine(m, d, p))
	}
	return total
}

// BestMove returns the candidate with the highest ScoreMove for p; ties go
// to the earliest candidate.
func BestMove(b *Board, p Player, candidates []Move) (Move, bool) {
	if len(candidates) == 0 {
		return NoMove, false
	}
	best := candidates[0]
	bestScore := -1.0
	for _, m := range candidates {
		if s := ScoreMove(b, m, p); s > bestScore {
			bestScore = s
			best = m
		}
	}
	return best, true
}

// ThreatPenalty weights the opponent's fours and threes in EvaluateBoard.
const ThreatPenalty = 1.5

// EvaluateBoard scores the whole position for p by summing every 5-cell
// window on all four axes. Positive favours p.
func EvaluateBoard(b *Board, p Player) float64 {
	total := 0.0
	for _, d := range Directions {
		for r := 0; r < Size; r++ {
			for c := 0; c < Size; c++ {
				if !InBounds(r+(WinLen-1)*d.DR, c+(WinLen-1)*d.DC) {
					continue
				}
				total += b.scoreWindow(Move{Row: r, Col: c}, d, p)
			}
		}
	}
	return total
}

// scoreWindow rates the WinLen cells starting at m along d.
func (b *Board) scoreWindow(m Move, d Direction, p Player) float64 {
	own, foreign := 0, 0
	for i := 0; i < WinLen; i++ {
		switch b.RelationAt(m.Row+i*d.DR, m.Col+i*d.DC, p) {
		case Own:
			own++
		case Foreign:
			foreign++
		}
	}
	switch {
	case own == WinLen:
		return ScoreFive
	case foreign == WinLen:
		return -ScoreFive
	case own > 0 && foreign > 0:
		return 0
	}

	switch own {
	case 4:
		return ScoreOpenFour
	case 3:
		return ScoreOpenThree
	case 2:
		return ScoreOpenTwo
	}
	switch foreign {
	case 4:
		return -ScoreOpenFour * ThreatPenalty
	case 3:
		return -ScoreOpenThree * ThreatPenalty
	}
	return 0
}
