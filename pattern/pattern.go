// Package pattern computes symmetry-invariant keys for the neighborhood
// around a move, used to index learned win/loss statistics.
package pattern

import (
	"strings"

	"gomoku/game"
)

const (
	Radius = 3
	Width  = 2*Radius + 1
)

// Key is the canonical encoding of a Width x Width neighborhood: one digit
// per cell (game.Relation values), rows separated by '|'.
type Key string

type window [Width][Width]game.Relation

func extract(b *game.Board, m game.Move, perspective game.Player) window {
	var w window
	for i := 0; i < Width; i++ {
		for j := 0; j < Width; j++ {
			w[i][j] = b.RelationAt(m.Row+i-Radius, m.Col+j-Radius, perspective)
		}
	}
	return w
}

// rotate turns the window a quarter turn clockwise.
func (w window) rotate() window {
	var out window
	for i := 0; i < Width; i++ {
		for j := 0; j < Width; j++ {
			out[j][Width-1-i] = w[i][j]
		}
	}
	return out
}

// flip mirrors the window left to right.
func (w window) flip() window {
	var out window
	for i := 0; i < Width; i++ {
		for j := 0; j < Width; j++ {
			out[i][Width-1-j] = w[i][j]
		}
	}
	return out
}

func (w window) encode() string {
	var sb strings.Builder
	sb.Grow(Width*Width + Width - 1)
	for i := 0; i < Width; i++ {
		if i > 0 {
			sb.WriteByte('|')
		}
		for j := 0; j < Width; j++ {
			sb.WriteByte(byte('0' + w[i][j]))
		}
	}
	return sb.String()
}

// transforms returns the 8 dihedral images of a window:
// each of the 4 rotations, unflipped and flipped.
func transforms(w window) [8]window {
	var out [8]window
	cur := w
	for i := 0; i < 4; i++ {
		out[2*i] = cur
		out[2*i+1] = cur.flip()
		cur = cur.rotate()
	}
	return out
}

// KeyOf returns the canonical key for the neighborhood around m as seen by
// perspective: the lexicographically smallest encoding over all 8
// rotations and reflections. Cells off the board encode as game.Edge.
func KeyOf(b *game.Board, m game.Move, perspective game.Player) Key {
	images := transforms(extract(b, m, perspective))
	best := images[0].encode()
	for _, w := range images[1:] {
		if s := w.encode(); s < best {
			best = s
		}
	}
	return Key(best)
}
