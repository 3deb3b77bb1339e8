package knowledge

import (
	"gomoku/game"
	"gomoku/pattern"
)

// Update is one learning signal: the side that played Key won or lost.
type Update struct {
	Key Key
	Won bool
}

type observation struct {
	key   Key
	mover game.Player
}

// Recorder collects the pattern keys of the moves played in one game.
// It is not safe for concurrent use.
type Recorder struct {
	seen []observation
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// Observe records the key of m as seen by mover. Call it before the stone
// is placed on b.
func (r *Recorder) Observe(b *game.Board, m game.Move, mover game.Player) {
	r.seen = append(r.seen, observation{key: pattern.KeyOf(b, m, mover), mover: mover})
}

func (r *Recorder) Len() int {
	return len(r.seen)
}

// Updates turns the recorded moves into learning signals for winner. A key
// played several times by one side is reported once for that side. A
// draw (game.None) produces nothing.
func (r *Recorder) Updates(winner game.Player) []Update {
	if winner == game.None {
		return nil
	}
	type sided struct {
		key   Key
		mover game.Player
	}
	done := make(map[sided]bool, len(r.seen))
	updates := make([]Update, 0, len(r.seen))
	for _, o := range r.seen {
		s := sided{o.key, o.mover}
		if done[s] {
			continue
		}
		done[s] = true
		updates = append(updates, Update{Key: o.key, Won: o.mover == winner})
	}
	return updates
}
