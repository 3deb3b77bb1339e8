package searcher

import (
	"math"

	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/knowledge"

	"github.com/rs/zerolog/log"
)

// abWin outranks any EvaluateBoard score. Quicker wins add the plies left.
const abWin = 1e13

type AlphaBetaOption func(ab *AlphaBeta)

// AlphaBeta is a fixed-depth minimax search with alpha-beta pruning over
// game.EvaluateBoard.
type AlphaBeta struct {
	depth   int
	breadth int
	radius  int
	rules   game.Rules
	metrics metrics.Collector
}

func WithDepth(depth int) AlphaBetaOption {
	return func(ab *AlphaBeta) {
		if depth > 0 {
			ab.depth = depth
		}
	}
}

// WithBreadth keeps only the n best ordered moves of every position.
func WithBreadth(n int) AlphaBetaOption {
	return func(ab *AlphaBeta) {
		if n >= 0 {
			ab.breadth = n
		}
	}
}

func WithAlphaBetaRadius(radius int) AlphaBetaOption {
	return func(ab *AlphaBeta) {
		if radius > 0 {
			ab.radius = radius
		}
	}
}

func WithAlphaBetaRules(rules game.Rules) AlphaBetaOption {
	return func(ab *AlphaBeta) {
		ab.rules = rules
	}
}

func WithAlphaBetaMetrics() AlphaBetaOption {
	return func(ab *AlphaBeta) {
		ab.metrics = metrics.NewCollector()
	}
}

func NewAlphaBeta(options ...AlphaBetaOption) *AlphaBeta {
	ab := &AlphaBeta{
		depth:   DefaultDepth,
		breadth: DefaultBreadth,
		radius:  DefaultRadius,
		rules:   game.Freestyle,
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(ab)
	}
	return ab
}

func (ab *AlphaBeta) Rules() game.Rules {
	return ab.rules
}

func (ab *AlphaBeta) Radius() int {
	return ab.radius
}

// abSearch holds the state of one Search call.
type abSearch struct {
	ordering
	breadth int
	root    game.Player
	nodes   int
	metrics metrics.Collector
}

// Search plays every ordered candidate of p on a private copy of b and keeps
// the one with the best minimax value. Ties go to the earlier candidate.
func (ab *AlphaBeta) Search(b *game.Board, p game.Player, src knowledge.Source) (game.Move, bool, metrics.SearchMetric) {
	ab.metrics.Start(ab.depth)
	s := &abSearch{
		ordering: newOrdering(ab.rules, ab.radius, src),
		breadth:  ab.breadth,
		root:     p,
		metrics:  ab.metrics,
	}
	work := *b

	moves := s.moves(&work, p)
	if len(moves) == 0 {
		return game.NoMove, false, ab.metrics.Complete(0)
	}
	for _, c := range moves {
		if c.known {
			ab.metrics.AddSeeded()
		}
	}

	best, bestValue := moves[0].move, math.Inf(-1)
	alpha := math.Inf(-1)
	for _, c := range moves {
		value := s.play(&work, c.move, p, ab.depth, alpha, math.Inf(1))
		if value > bestValue {
			best, bestValue = c.move, value
		}
		alpha = max(alpha, value)
	}

	metric := ab.metrics.Complete(s.nodes)
	log.Debug().Msgf("alpha-beta for %s searched %d nodes at depth %d, playing %s (%.1f)", p, s.nodes, ab.depth, best, bestValue)
	return best, true, metric
}

func (s *abSearch) moves(b *game.Board, p game.Player) []candidate {
	moves := s.candidates(b, p)
	if s.breadth > 0 && len(moves) > s.breadth {
		moves = moves[:s.breadth]
	}
	return moves
}

// play scores mover placing m with depth plies left, measured for the root
// player. The stone is removed again before play returns.
func (s *abSearch) play(b *game.Board, m game.Move, mover game.Player, depth int, alpha, beta float64) float64 {
	var value float64
	b.Try(m, mover, func() bool {
		s.nodes++
		switch s.rules.Result(b, mover, m) {
		case game.Win:
			value = terminal(mover == s.root, depth)
		case game.Overline:
			value = terminal(mover != s.root, depth)
		default:
			value = s.minimax(b, depth-1, alpha, beta, mover.Opponent())
		}
		return true
	})
	return value
}

func (s *abSearch) minimax(b *game.Board, depth int, alpha, beta float64, toMove game.Player) float64 {
	if depth == 0 {
		s.metrics.AddEpisode()
		return game.EvaluateBoard(b, s.root)
	}
	moves := s.moves(b, toMove)
	if len(moves) == 0 {
		s.metrics.AddFullPlayout()
		return 0
	}

	if toMove == s.root {
		best := math.Inf(-1)
		for _, c := range moves {
			best = max(best, s.play(b, c.move, toMove, depth, alpha, beta))
			alpha = max(alpha, best)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := math.Inf(1)
	for _, c := range moves {
		best = min(best, s.play(b, c.move, toMove, depth, alpha, beta))
		beta = min(beta, best)
		if beta <= alpha {
			break
		}
	}
	return best
}

func terminal(rootWins bool, depth int) float64 {
	value := abWin + float64(depth)
	if rootWins {
		return value
	}
	return -value
}
