package searcher

import (
	"time"

	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/knowledge"

	"github.com/rs/zerolog/log"
)

type Option func(mcts *MCTS)

type MCTS struct {
	iterations  int
	duration    time.Duration
	exploration float64
	cutoff      int
	radius      int
	rules       game.Rules
	metrics     metrics.Collector
}

func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations > 0 {
			m.iterations = iterations
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

func WithCutoff(plies int) Option {
	return func(m *MCTS) {
		if plies > 0 {
			m.cutoff = plies
		}
	}
}

func WithRadius(radius int) Option {
	return func(m *MCTS) {
		if radius > 0 {
			m.radius = radius
		}
	}
}

// WithRules sets the rule set used to judge fives in the tree and, under
// Renju, to keep Black's forbidden cells out of it.
func WithRules(rules game.Rules) Option {
	return func(m *MCTS) {
		m.rules = rules
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		iterations:  DefaultIterations,
		duration:    DefaultDuration,
		exploration: DefaultExploration,
		cutoff:      DefaultCutoff,
		radius:      DefaultRadius,
		rules:       game.Freestyle,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *MCTS) Rules() game.Rules {
	return m.rules
}

func (m *MCTS) Radius() int {
	return m.radius
}

// Search runs MCTS for p on a private copy of b until the iteration cap or
// the deadline, whichever comes first. src supplies priors and may be nil.
// It reports false only when p has no candidate move.
func (m *MCTS) Search(b *game.Board, p game.Player, src knowledge.Source) (game.Move, bool, metrics.SearchMetric) {
	m.metrics.Start(m.cutoff)
	t := newTree(b, p, m.rules, m.radius, src)
	if t.fallback == game.NoMove {
		return game.NoMove, false, m.metrics.Complete(len(t.nodes))
	}
	for i := t.seedRoot(); i > 0; i-- {
		m.metrics.AddSeeded()
	}

	deadline := time.Now().Add(m.duration)
	episodes := 0
	for episodes < m.iterations && time.Now().Before(deadline) {
		m.simulate(t)
		m.metrics.AddEpisode()
		episodes++
	}

	move, ok := t.best()
	if !ok {
		move = t.fallback
	}
	metric := m.metrics.Complete(len(t.nodes))
	log.Debug().Msgf("search for %s finished after %d episodes with %d nodes, playing %s", p, episodes, len(t.nodes), move)
	return move, true, metric
}

func (m *MCTS) simulate(t *tree) {
	idx := t.selectThenExpand(m.exploration)
	n := &t.nodes[idx]
	result := n.result
	if !n.terminal {
		result = rollout(n.board, n.toMove(), m.cutoff, m.radius, m.metrics)
		// rollout scores for the player to move, the node stores the mover's view
		result = 1 - result
	} else {
		m.metrics.AddFullPlayout()
	}
	t.backup(idx, result)
}

// rollout plays the greedy heuristic move for each side in turn, starting
// with p, and returns the reward for p. Fives are judged by the plain rule.
// A full board or the cutoff scores a draw.
func rollout(b game.Board, p game.Player, cutoff, radius int, metrics metrics.Collector) float64 {
	player := p
	for depth := 0; depth < cutoff; depth++ {
		move, ok := game.BestMove(&b, player, game.CandidateMoves(&b, radius))
		if !ok {
			metrics.AddFullPlayout()
			return Draw
		}
		b.Set(move, player)
		if _, won := game.WinningLineThrough(&b, player, move); won {
			metrics.AddFullPlayout()
			if player == p {
				return Win
			}
			return Loss
		}
		player = player.Opponent()
	}
	return Draw
}
