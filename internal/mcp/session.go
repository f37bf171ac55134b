package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/peterkuimelis/sinkisle/internal/game"
	islenet "github.com/peterkuimelis/sinkisle/internal/net"
)

// DecisionType identifies what kind of decision the game engine is waiting for.
type DecisionType string

const (
	DecisionChooseAction DecisionType = "choose_action"
	DecisionChooseOption DecisionType = "choose_option"
	DecisionGameOver     DecisionType = "game_over"
)

// PendingDecision represents a decision the game engine is waiting for.
type PendingDecision struct {
	Type    DecisionType         `json:"type"`
	Player  int                  `json:"player"`
	State   *islenet.StateView   `json:"state"`
	Actions []islenet.ActionView `json:"actions,omitempty"`
	Prompt  string               `json:"prompt,omitempty"`
	Options []string             `json:"options,omitempty"`
}

// Response types sent back from MCP tools to the controller.

type ActionResponse struct {
	Index int
}

type OptionResponse struct {
	Index     int
	Cancelled bool
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	SessionID string              `json:"session_id"`
	Events    []islenet.EventView `json:"events"`
	State     *islenet.StateView  `json:"state,omitempty"`
	Pending   *PendingView        `json:"pending,omitempty"`
	GameOver  bool                `json:"game_over"`
	Won       bool                `json:"won,omitempty"`
	Result    string              `json:"result,omitempty"`
}

// PendingView is the pending decision as presented in the tool response JSON.
type PendingView struct {
	Type      DecisionType         `json:"type"`
	ForPlayer string               `json:"for_player"`
	Actions   []islenet.ActionView `json:"actions,omitempty"`
	Prompt    string               `json:"prompt,omitempty"`
	Options   []string             `json:"options,omitempty"`
}

// GameSession holds one hot-seat game driven through MCP tools. The game runs
// in its own goroutine and parks on the controller whenever it needs input.
type GameSession struct {
	ID string

	game   *game.Game
	ctrl   *MCPController
	cancel context.CancelFunc

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision

	mu       sync.Mutex
	events   []islenet.EventView
	gameOver bool
	won      bool
	result   string
}

// NewGameSession creates the game and starts playing it.
func NewGameSession(cfg game.Config, maxTurns int) (*GameSession, error) {
	sess := &GameSession{
		ID:        uuid.NewString(),
		pendingCh: make(chan *PendingDecision, 1),
	}
	sess.ctrl = NewMCPController(sess)
	cfg.Choices = sess.ctrl
	cfg.Notifiers = append(cfg.Notifiers, sess.ctrl)

	g, err := game.NewGame(cfg)
	if err != nil {
		return nil, err
	}
	sess.game = g

	ctx, cancel := context.WithCancel(context.Background())
	sess.cancel = cancel

	go func() {
		out, err := game.Play(ctx, g, sess.ctrl, maxTurns)
		result := out.Reason
		if err != nil {
			result = fmt.Sprintf("error: %v", err)
		}

		sess.mu.Lock()
		sess.gameOver = true
		sess.won = out.Won
		sess.result = result
		sess.mu.Unlock()

		// Nobody may be listening once the session is abandoned.
		select {
		case sess.pendingCh <- &PendingDecision{
			Type:   DecisionGameOver,
			Player: -1,
			State:  islenet.BuildStateView(g.State),
		}:
		default:
		}
	}()

	return sess, nil
}

// Close abandons the game.
func (s *GameSession) Close() {
	s.cancel()
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *GameSession) appendEvent(ev islenet.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []islenet.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []islenet.EventView{}
	}
	return events
}

// waitForPending blocks until the next decision arrives from the game engine,
// then builds a ToolResponse with accumulated events + the pending decision.
func (s *GameSession) waitForPending(ctx context.Context) (*ToolResponse, error) {
	var pending *PendingDecision
	select {
	case pending = <-s.pendingCh:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	s.currentPending = pending

	resp := &ToolResponse{
		SessionID: s.ID,
		Events:    s.drainEvents(),
		State:     pending.State,
	}

	if pending.Type == DecisionGameOver {
		s.mu.Lock()
		resp.GameOver = true
		resp.Won = s.won
		resp.Result = s.result
		s.mu.Unlock()
		return resp, nil
	}

	resp.Pending = pendingView(pending)
	return resp, nil
}

// snapshot reports the current pending decision without answering it.
func (s *GameSession) snapshot() *ToolResponse {
	resp := &ToolResponse{SessionID: s.ID, Events: s.drainEvents()}
	s.mu.Lock()
	resp.GameOver = s.gameOver
	resp.Won = s.won
	resp.Result = s.result
	s.mu.Unlock()
	if p := s.currentPending; p != nil {
		resp.State = p.State
		if p.Type != DecisionGameOver {
			resp.Pending = pendingView(p)
		}
	}
	return resp
}

func pendingView(p *PendingDecision) *PendingView {
	return &PendingView{
		Type:      p.Type,
		ForPlayer: fmt.Sprintf("P%d", p.Player+1),
		Actions:   p.Actions,
		Prompt:    p.Prompt,
		Options:   p.Options,
	}
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
