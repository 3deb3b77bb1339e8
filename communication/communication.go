package communication

import (
	"context"

	"gomoku/engine"
)

// Decider answers decision requests, in process or across the network.
type Decider interface {
	Decide(ctx context.Context, req engine.Request) (engine.Response, error)
}

// DecideResponse is the wire form of a decision. Error is set when the
// request was rejected, in which case the move is -1/-1.
type DecideResponse struct {
	engine.Response
	Error string `json:"error,omitempty"`
}

type local struct {
	engine *engine.Engine
}

// Local serves decisions from e on the calling goroutine.
func Local(e *engine.Engine) Decider {
	return &local{engine: e}
}

func (l *local) Decide(ctx context.Context, req engine.Request) (engine.Response, error) {
	if err := ctx.Err(); err != nil {
		return engine.Response{Row: -1, Col: -1}, err
	}
	return l.engine.Handle(req)
}
