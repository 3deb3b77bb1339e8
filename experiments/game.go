package experiments

import (
	"fmt"
	"time"

	"gomoku/engine"
	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/knowledge"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Why a game ended
const (
	ReasonFive      = "five"
	ReasonOverline  = "overline"
	ReasonForbidden = "forbidden"
	ReasonFull      = "full"
	ReasonMoveLimit = "move-limit"
	ReasonNoMove    = "no-move"
)

const stageOpening = "opening"

// knowledgeStore is the knowledge a match reads priors from and teaches.
type knowledgeStore interface {
	knowledge.BulkReader
	Apply(updates []knowledge.Update)
}

// match drives one self-play game; both sides share its engine.
type match struct {
	id      string
	engine  *engine.Engine
	rules   game.Rules
	store   knowledgeStore
	rng     *rand.Rand
	opening int
	limit   int
}

// play runs a game from b with first to move and applies its learning
// signal to the store.
func (m *match) play(b game.Board, first game.Player) (metrics.GameRecord, []metrics.MoveRecord, error) {
	start := time.Now()
	recorder := knowledge.NewRecorder()
	moveRecords := []metrics.MoveRecord{}

	current := first
	winner := game.None
	reason := ReasonMoveLimit
	step := 0
	for step < m.limit {
		if game.IsFull(&b) {
			reason = ReasonFull
			break
		}

		move, stage, metric := m.next(&b, current, step)
		if move == game.NoMove {
			reason = ReasonNoMove
			break
		}
		if !b.IsEmpty(move) {
			return metrics.GameRecord{}, nil, fmt.Errorf("%s played occupied cell %s", current, move)
		}
		step++
		moveRecords = append(moveRecords, metrics.MoveRecord{
			Game: m.id,
			MoveMetric: metrics.MoveMetric{
				Step:         step,
				Player:       current.String(),
				Row:          move.Row,
				Col:          move.Col,
				Stage:        stage,
				SearchMetric: metric,
			},
		})

		if m.rules.Forbidden(&b, move, current) {
			winner, reason = current.Opponent(), ReasonForbidden
			break
		}
		recorder.Observe(&b, move, current)
		b.Set(move, current)

		switch m.rules.Result(&b, current, move) {
		case game.Win:
			winner, reason = current, ReasonFive
		case game.Overline:
			winner, reason = current.Opponent(), ReasonOverline
		}
		if winner != game.None {
			break
		}
		current = current.Opponent()
	}

	m.store.Apply(recorder.Updates(winner))

	end := time.Now()
	return metrics.GameRecord{
		ID: m.id,
		GameMetric: metrics.GameMetric{
			Winner:     winner.String(),
			Reason:     reason,
			StartTime:  start,
			EndTime:    end,
			Duration:   end.Sub(start),
			TotalMoves: step,
		},
	}, moveRecords, nil
}

// next picks a random nearby cell during the opening and asks the engine
// afterwards. A panic in the decision ends the game without a move.
func (m *match) next(b *game.Board, current game.Player, step int) (move game.Move, stage string, metric metrics.SearchMetric) {
	if step < m.opening {
		moves := m.rules.LegalCandidates(b, current, 1)
		if len(moves) == 0 {
			return game.NoMove, stageOpening, metrics.SearchMetric{}
		}
		return moves[m.rng.Intn(len(moves))], stageOpening, metrics.SearchMetric{}
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error().Msgf("game %s: decision for %s at step %d failed: %v", m.id, current, step+1, r)
			move, stage, metric = game.NoMove, engine.StageNone.String(), metrics.SearchMetric{}
		}
	}()

	src := knowledge.Fetch(m.store, engine.RootKeys(b, current, m.engine.Radius()))
	d := m.engine.Decide(b, current, src)
	return d.Move, d.Stage.String(), d.Metric
}
