package engine

import (
	"fmt"

	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/knowledge"
	"gomoku/searcher"

	"github.com/rs/zerolog/log"
)

// Stage names the step of the decision sequence that produced a move.
type Stage int

const (
	StageNone Stage = iota
	StageWin
	StageBlock
	StageVCFWin
	StageVCFBlock
	StageSearch
)

func (s Stage) String() string {
	switch s {
	case StageWin:
		return "win"
	case StageBlock:
		return "block"
	case StageVCFWin:
		return "vcf-win"
	case StageVCFBlock:
		return "vcf-block"
	case StageSearch:
		return "search"
	default:
		return "none"
	}
}

// Policy selects the search run after the tactical stages.
type Policy int

const (
	PolicyMCTS Policy = iota
	PolicyAlphaBeta
)

func (p Policy) String() string {
	if p == PolicyAlphaBeta {
		return "alphabeta"
	}
	return "mcts"
}

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "mcts", "":
		return PolicyMCTS, nil
	case "alphabeta":
		return PolicyAlphaBeta, nil
	default:
		return PolicyMCTS, fmt.Errorf("unknown policy %q", s)
	}
}

type Decision struct {
	Move   game.Move
	Stage  Stage
	Metric metrics.SearchMetric // set for StageSearch
}

type Option func(e *Engine)

// WithVCF turns on the forced-win stage between blocking and search.
func WithVCF(enabled bool) Option {
	return func(e *Engine) {
		e.vcf = enabled
	}
}

func WithVCFDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.vcfDepth = depth
		}
	}
}

func WithRules(rules game.Rules) Option {
	return func(e *Engine) {
		e.rules = rules
	}
}

func WithPolicy(policy Policy) Option {
	return func(e *Engine) {
		e.policy = policy
	}
}

// WithSearchOptions configures the MCTS policy.
func WithSearchOptions(options ...searcher.Option) Option {
	return func(e *Engine) {
		e.searchOptions = append(e.searchOptions, options...)
	}
}

// WithAlphaBetaOptions configures the alpha-beta policy.
func WithAlphaBetaOptions(options ...searcher.AlphaBetaOption) Option {
	return func(e *Engine) {
		e.alphaBetaOptions = append(e.alphaBetaOptions, options...)
	}
}

// Engine picks one move per call. It keeps no state between decisions, but
// a search metrics collector is not safe for concurrent use, so each
// goroutine should own its Engine.
type Engine struct {
	vcf              bool
	vcfDepth         int
	rules            game.Rules
	policy           Policy
	searchOptions    []searcher.Option
	alphaBetaOptions []searcher.AlphaBetaOption
	searcher         searcher.Searcher
}

func New(options ...Option) *Engine {
	e := &Engine{
		vcfDepth: searcher.DefaultVCFDepth,
		rules:    game.Freestyle,
	}
	for _, option := range options {
		option(e)
	}
	switch e.policy {
	case PolicyAlphaBeta:
		e.searcher = searcher.NewAlphaBeta(append(e.alphaBetaOptions, searcher.WithAlphaBetaRules(e.rules))...)
	default:
		e.searcher = searcher.NewMCTS(append(e.searchOptions, searcher.WithRules(e.rules))...)
	}
	return e
}

func (e *Engine) Rules() game.Rules {
	return e.rules
}

func (e *Engine) Policy() Policy {
	return e.policy
}

// Radius is the candidate radius the search expands with.
func (e *Engine) Radius() int {
	return e.searcher.Radius()
}

// Decide returns the move for p on b: an immediate win, a block of the
// opponent's immediate win, optionally a forced win or its block, and
// otherwise the search result. b is never modified.
func (e *Engine) Decide(b *game.Board, p game.Player, src knowledge.Source) Decision {
	board := *b
	opponent := p.Opponent()

	if m, ok := e.first(&board, p, e.rules.WinningMoves(&board, p)); ok {
		return e.decided(p, Decision{Move: m, Stage: StageWin})
	}
	if m, ok := e.first(&board, p, e.rules.WinningMoves(&board, opponent)); ok {
		return e.decided(p, Decision{Move: m, Stage: StageBlock})
	}

	if e.vcf {
		if m, ok := searcher.FindVCF(&board, p, e.vcfDepth); ok && e.playable(&board, p, m) {
			return e.decided(p, Decision{Move: m, Stage: StageVCFWin})
		}
		if m, ok := searcher.FindVCF(&board, opponent, e.vcfDepth); ok && e.playable(&board, p, m) {
			return e.decided(p, Decision{Move: m, Stage: StageVCFBlock})
		}
	}

	if m, ok, metric := e.searcher.Search(&board, p, src); ok {
		return e.decided(p, Decision{Move: m, Stage: StageSearch, Metric: metric})
	}
	return e.decided(p, Decision{Move: game.NoMove, Stage: StageNone})
}

func (e *Engine) decided(p game.Player, d Decision) Decision {
	log.Debug().
		Str("player", p.String()).
		Str("stage", d.Stage.String()).
		Str("move", d.Move.String()).
		Int("episodes", d.Metric.Episodes).
		Dur("duration", d.Metric.Duration).
		Msg("decided")
	return d
}

// playable reports whether p may place a stone at m under the engine rules.
func (e *Engine) playable(b *game.Board, p game.Player, m game.Move) bool {
	return b.IsEmpty(m) && !e.rules.Forbidden(b, m, p)
}

func (e *Engine) first(b *game.Board, p game.Player, moves []game.Move) (game.Move, bool) {
	for _, m := range moves {
		if e.playable(b, p, m) {
			return m, true
		}
	}
	return game.NoMove, false
}
