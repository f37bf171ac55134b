package mcp

import (
	"context"
	"fmt"

	"github.com/peterkuimelis/sinkisle/internal/game"
	"github.com/peterkuimelis/sinkisle/internal/log"
	islenet "github.com/peterkuimelis/sinkisle/internal/net"
)

// MCPController implements game.Controller by sending decisions to the
// session's pending channel and blocking on a response channel. It answers
// for every seat.
type MCPController struct {
	session    *GameSession
	responseCh chan any
}

// NewMCPController creates a controller bound to session.
func NewMCPController(session *GameSession) *MCPController {
	return &MCPController{
		session:    session,
		responseCh: make(chan any),
	}
}

// await publishes a decision and blocks until a tool answers it.
func (c *MCPController) await(ctx context.Context, p *PendingDecision) (any, error) {
	select {
	case c.session.pendingCh <- p:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case resp := <-c.responseCh:
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ChooseAction implements game.Controller.
func (c *MCPController) ChooseAction(ctx context.Context, state *game.GameState, player int, actions []game.Request) (int, error) {
	views := make([]islenet.ActionView, 0, len(actions))
	for i, a := range actions {
		views = append(views, islenet.ActionView{Index: i, Kind: a.Kind.String(), Desc: a.String()})
	}

	resp, err := c.await(ctx, &PendingDecision{
		Type:    DecisionChooseAction,
		Player:  player,
		State:   islenet.BuildStateView(state),
		Actions: views,
	})
	if err != nil {
		return 0, err
	}
	ar, ok := resp.(ActionResponse)
	if !ok {
		return 0, fmt.Errorf("unexpected response %T to choose_action", resp)
	}
	if ar.Index < 0 || ar.Index >= len(actions) {
		return 0, nil
	}
	return ar.Index, nil
}

// ChooseOption implements game.ChoiceProvider.
func (c *MCPController) ChooseOption(ctx context.Context, state *game.GameState, player int, prompt string, options []string) (int, error) {
	resp, err := c.await(ctx, &PendingDecision{
		Type:    DecisionChooseOption,
		Player:  player,
		State:   islenet.BuildStateView(state),
		Prompt:  prompt,
		Options: options,
	})
	if err != nil {
		return -1, err
	}
	or, ok := resp.(OptionResponse)
	if !ok {
		return -1, fmt.Errorf("unexpected response %T to choose_option", resp)
	}
	if or.Cancelled {
		return -1, game.ErrCancelled
	}
	return or.Index, nil
}

// Notify implements game.Notifier.
func (c *MCPController) Notify(ctx context.Context, event log.GameEvent) error {
	c.session.appendEvent(*islenet.BuildEventView(event))
	return nil
}
