package experiments

import (
	"fmt"
	"time"

	"gomoku/engine"
	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/knowledge"
	"gomoku/searcher"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

const (
	NumGames      = 10
	NumWorkers    = 4
	RandomOpening = 2 // Random plies at the start of each game
	TimeBudget    = 200 * time.Millisecond
)

type Config struct {
	Games         int
	Workers       int
	RandomOpening int
	MaxMoves      int    // Defaults to a full board
	Seed          uint64 // 0 seeds from the clock
	Agent         metrics.AgentConfig
}

func DefaultConfig() Config {
	return Config{
		Games:         NumGames,
		Workers:       NumWorkers,
		RandomOpening: RandomOpening,
		MaxMoves:      game.Size * game.Size,
		Agent: metrics.AgentConfig{
			ID:         1,
			Iterations: searcher.DefaultIterations,
			Duration:   TimeBudget,
			Cutoff:     searcher.DefaultCutoff,
			Radius:     searcher.DefaultRadius,
			Rules:      game.Freestyle.String(),
			Policy:     engine.PolicyMCTS.String(),
			Depth:      searcher.DefaultDepth,
		},
	}
}

// Results of one self-play run
type Results struct {
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
}

// RunSelfPlay plays cfg.Games games of the agent against itself on
// cfg.Workers goroutines. Every game reads its priors from store and feeds
// its outcome back into it when it ends.
func RunSelfPlay(cfg Config, store *knowledge.Memory) (Results, error) {
	if cfg.Games <= 0 {
		return Results{}, nil
	}
	if store == nil {
		store = knowledge.NewMemory()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.MaxMoves <= 0 {
		cfg.MaxMoves = game.Size * game.Size
	}
	rules, err := game.ParseRules(cfg.Agent.Rules)
	if err != nil {
		return Results{}, err
	}
	policy, err := engine.ParsePolicy(cfg.Agent.Policy)
	if err != nil {
		return Results{}, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	log.Info().Msgf("starting self-play: %d games on %d workers with agent=%+v", cfg.Games, cfg.Workers, cfg.Agent)

	games := make([]metrics.GameRecord, cfg.Games)
	moves := make([][]metrics.MoveRecord, cfg.Games)

	var g errgroup.Group
	g.SetLimit(cfg.Workers)
	for i := 0; i < cfg.Games; i++ {
		i := i
		g.Go(func() error {
			m := match{
				id:      uuid.NewString(),
				engine:  createEngine(cfg.Agent, rules, policy),
				rules:   rules,
				store:   store,
				rng:     rand.New(rand.NewSource(seed + uint64(i))),
				opening: cfg.RandomOpening,
				limit:   cfg.MaxMoves,
			}
			log.Info().Msgf("starting game %d of %d (%s)...", i+1, cfg.Games, m.id)

			var b game.Board
			record, moveRecords, err := m.play(b, game.Black)
			if err != nil {
				return fmt.Errorf("game %s: %w", m.id, err)
			}
			record.Agent = cfg.Agent.ID
			games[i] = record
			moves[i] = moveRecords

			log.Info().Msgf("completed game %d of %d after %d moves with winner: %s (%s)",
				i+1, cfg.Games, record.TotalMoves, record.Winner, record.Reason)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Results{}, err
	}

	results := Results{Games: games}
	for _, mm := range moves {
		results.Moves = append(results.Moves, mm...)
	}
	log.Info().Msgf("completed self-play, knowledge holds %d patterns", store.Len())
	return results, nil
}

// WriteResults stores the agent config and the game and move records of a
// run under dir.
func WriteResults(dir string, agent metrics.AgentConfig, results Results) (string, error) {
	writer, err := metrics.NewWriter(dir, "selfplay")
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err = writer.WriteAgentConfigs([]metrics.AgentConfig{agent}); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err = writer.WriteGameRecords(results.Games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err = writer.WriteMoveRecords(results.Moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored self-play records in %s", writer.Dir())
	return writer.Dir(), nil
}

func createEngine(config metrics.AgentConfig, rules game.Rules, policy engine.Policy) *engine.Engine {
	options := []searcher.Option{}

	if config.Iterations > 0 {
		options = append(options, searcher.WithIterations(config.Iterations))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	if config.Radius > 0 {
		options = append(options, searcher.WithRadius(config.Radius))
	}

	options = append(options, searcher.WithMetrics())

	abOptions := []searcher.AlphaBetaOption{searcher.WithAlphaBetaMetrics()}
	if config.Depth > 0 {
		abOptions = append(abOptions, searcher.WithDepth(config.Depth))
	}
	if config.Radius > 0 {
		abOptions = append(abOptions, searcher.WithAlphaBetaRadius(config.Radius))
	}

	return engine.New(
		engine.WithRules(rules),
		engine.WithPolicy(policy),
		engine.WithVCF(config.VCF),
		engine.WithSearchOptions(options...),
		engine.WithAlphaBetaOptions(abOptions...),
	)
}
