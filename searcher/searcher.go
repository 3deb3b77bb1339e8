package searcher

import (
	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/knowledge"
)

// Searcher picks a move for p once the tactical checks have found nothing.
// It reports false only when p has no candidate move.
type Searcher interface {
	Search(b *game.Board, p game.Player, src knowledge.Source) (game.Move, bool, metrics.SearchMetric)
	Rules() game.Rules
	Radius() int
}

var (
	_ Searcher = (*MCTS)(nil)
	_ Searcher = (*AlphaBeta)(nil)
)
