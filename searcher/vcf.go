package searcher

import "gomoku/game"

// findThreats lists the empty cells where p makes a line of targetLen. For
// targetLen 5 any run of five or more counts. Shorter targets need a run of
// exactly targetLen with both cells past its ends empty. b is restored
// before returning.
func findThreats(b *game.Board, p game.Player, targetLen int) []game.Move {
	var threats []game.Move
	for _, m := range game.EmptyCells(b) {
		if b.Try(m, p, func() bool { return isThreat(b, p, m, targetLen) }) {
			threats = append(threats, m)
		}
	}
	return threats
}

func isThreat(b *game.Board, p game.Player, m game.Move, targetLen int) bool {
	for _, d := range game.Directions {
		fwd, fwdOpen := extent(b, p, m, d.DR, d.DC)
		back, backOpen := extent(b, p, m, -d.DR, -d.DC)
		n := 1 + fwd + back
		if targetLen >= game.WinLen && n >= game.WinLen {
			return true
		}
		if targetLen < game.WinLen && n == targetLen && fwdOpen && backOpen {
			return true
		}
	}
	return false
}

// extent counts p stones after m along (dr, dc) and reports whether the
// first cell past them is empty.
func extent(b *game.Board, p game.Player, m game.Move, dr, dc int) (int, bool) {
	n := 0
	r, c := m.Row+dr, m.Col+dc
	for game.InBounds(r, c) && b[r][c] == p {
		n++
		r += dr
		c += dc
	}
	return n, game.InBounds(r, c) && b[r][c] == game.None
}

// FindVCF searches for a victory by continuous fours: a first move for p
// such that every forced block still leaves p a win within depth threats.
// A false result at the depth limit is inconclusive. b is left unchanged.
func FindVCF(b *game.Board, p game.Player, depth int) (game.Move, bool) {
	if depth <= 0 {
		return game.NoMove, false
	}
	if wins := findThreats(b, p, game.WinLen); len(wins) > 0 {
		return wins[0], true
	}

	opponent := p.Opponent()
	for _, threat := range findThreats(b, p, game.WinLen-1) {
		forced := b.Try(threat, p, func() bool {
			// A counter-five refutes the threat outright.
			if len(findThreats(b, opponent, game.WinLen)) > 0 {
				return false
			}
			for _, block := range findThreats(b, p, game.WinLen) {
				escaped := b.Try(block, opponent, func() bool {
					_, ok := FindVCF(b, p, depth-1)
					return !ok
				})
				if escaped {
					return false
				}
			}
			return true
		})
		if forced {
			return threat, true
		}
	}
	return game.NoMove, false
}
