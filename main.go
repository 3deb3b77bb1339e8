package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"gomoku/communication"
	"gomoku/communication/server"
	"gomoku/engine"
	"gomoku/experiments"
	"gomoku/game"
	"gomoku/knowledge"
	"gomoku/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type config struct {
	request    string
	serve      string
	games      int
	workers    int
	iterations int
	duration   time.Duration
	vcf        bool
	renju      bool
	policy     string
	depth      int
	seed       uint64
	out        string
	verbose    bool
}

func parseFlags() config {
	var cfg config
	flag.StringVar(&cfg.request, "request", "", "answer one JSON decision request read from this file (- for stdin)")
	flag.StringVar(&cfg.serve, "serve", "", "serve decisions over HTTP on this address, e.g. :8080")
	flag.IntVar(&cfg.games, "games", experiments.NumGames, "self-play games to run")
	flag.IntVar(&cfg.workers, "workers", experiments.NumWorkers, "self-play games played in parallel")
	flag.IntVar(&cfg.iterations, "iterations", searcher.DefaultIterations, "MCTS iterations per move")
	flag.DurationVar(&cfg.duration, "duration", searcher.DefaultDuration, "MCTS time budget per move")
	flag.BoolVar(&cfg.vcf, "vcf", false, "run the forced-win solver before searching")
	flag.BoolVar(&cfg.renju, "renju", false, "play under Renju restrictions")
	flag.StringVar(&cfg.policy, "policy", engine.PolicyMCTS.String(), "search policy: mcts or alphabeta")
	flag.IntVar(&cfg.depth, "depth", searcher.DefaultDepth, "alpha-beta plies")
	flag.Uint64Var(&cfg.seed, "seed", 0, "self-play seed (0 seeds from the clock)")
	flag.StringVar(&cfg.out, "out", "results", "directory for self-play records")
	flag.BoolVar(&cfg.verbose, "v", false, "log search progress")
	flag.Parse()
	return cfg
}

func main() {
	cfg := parseFlags()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	policy, err := engine.ParsePolicy(cfg.policy)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid -policy")
	}

	switch {
	case cfg.request != "":
		err = answerRequest(cfg, policy, os.Stdout)
	case cfg.serve != "":
		err = server.NewServer(communication.Local(createEngine(cfg, policy))).Start(cfg.serve)
	default:
		err = runSelfPlay(cfg, policy)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("gomoku failed")
	}
}

func rules(cfg config) game.Rules {
	if cfg.renju {
		return game.Renju
	}
	return game.Freestyle
}

func createEngine(cfg config, policy engine.Policy) *engine.Engine {
	return engine.New(
		engine.WithRules(rules(cfg)),
		engine.WithPolicy(policy),
		engine.WithVCF(cfg.vcf),
		engine.WithSearchOptions(
			searcher.WithIterations(cfg.iterations),
			searcher.WithDuration(cfg.duration),
		),
		engine.WithAlphaBetaOptions(searcher.WithDepth(cfg.depth)),
	)
}

func answerRequest(cfg config, policy engine.Policy, out io.Writer) error {
	in := os.Stdin
	if cfg.request != "-" {
		f, err := os.Open(cfg.request)
		if err != nil {
			return fmt.Errorf("failed to open request: %w", err)
		}
		defer f.Close()
		in = f
	}

	var req engine.Request
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return fmt.Errorf("failed to decode request: %w", err)
	}
	resp, err := communication.Local(createEngine(cfg, policy)).Decide(context.Background(), req)
	if err != nil {
		return err
	}
	return json.NewEncoder(out).Encode(resp)
}

func runSelfPlay(cfg config, policy engine.Policy) error {
	sp := experiments.DefaultConfig()
	sp.Games = cfg.games
	sp.Workers = cfg.workers
	sp.Seed = cfg.seed
	sp.Agent.Iterations = cfg.iterations
	sp.Agent.VCF = cfg.vcf
	sp.Agent.Rules = rules(cfg).String()
	sp.Agent.Policy = policy.String()
	sp.Agent.Depth = cfg.depth
	if cfg.duration != searcher.DefaultDuration {
		sp.Agent.Duration = cfg.duration
	}

	store := knowledge.NewMemory()
	results, err := experiments.RunSelfPlay(sp, store)
	if err != nil {
		return err
	}
	_, err = experiments.WriteResults(cfg.out, sp.Agent, results)
	return err
}
