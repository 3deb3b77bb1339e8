package searcher

import "time"

// Hyperparameters for MCTS

const (
	DefaultIterations  = 3000
	DefaultDuration    = 10 * time.Second
	DefaultExploration = 1.414
	DefaultCutoff      = 80 // Rollout plies before scoring a draw
	DefaultRadius      = 2  // Candidate cells lie within this distance of a stone
)

// DefaultVCFDepth bounds the number of own four-threats in a forced line.
const DefaultVCFDepth = 8

// Rewards from the perspective of the player who moved into a node
const (
	Win  = 1.0
	Draw = 0.5
	Loss = 1 - Win
)

// Hyperparameters for alpha-beta
const (
	DefaultDepth   = 2 // Plies searched before the static evaluation
	DefaultBreadth = 0 // Moves tried per position, 0 tries them all
)
