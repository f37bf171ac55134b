package mcp

import (
	"context"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/sinkisle/internal/game"
)

// Tables tracks the running sessions of one MCP server process.
type Tables struct {
	// Base is copied into every new game; start_game overrides players,
	// seed and roles.
	Base     game.Config
	MaxTurns int

	mu       sync.Mutex
	sessions map[string]*GameSession
}

// NewTables creates an empty session registry.
func NewTables(base game.Config, maxTurns int) *Tables {
	return &Tables{Base: base, MaxTurns: maxTurns, sessions: make(map[string]*GameSession)}
}

func (t *Tables) get(id string) *GameSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessions[id]
}

func (t *Tables) drop(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if sess, ok := t.sessions[id]; ok {
		sess.Close()
		delete(t.sessions, id)
	}
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer, t *Tables) {
	s.AddTool(startGameTool(), t.handleStartGame)
	s.AddTool(takeActionTool(), t.handleTakeAction)
	s.AddTool(chooseOptionTool(), t.handleChooseOption)
	s.AddTool(cancelChoiceTool(), t.handleCancelChoice)
	s.AddTool(getGameStateTool(), t.handleGetGameState)
	s.AddTool(endGameTool(), t.handleEndGame)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new game of Sinking Isle. The caller sits at the whole table and decides for every seat. "+
			"Returns the session id, the opening state and the first pending decision."),
		mcp.WithNumber("players", mcp.Required(), mcp.Description("Number of players, 2 to 4")),
		mcp.WithNumber("seed", mcp.Description("Shuffle seed; 0 picks a random one")),
		mcp.WithString("roles", mcp.Description("Optional comma-separated roles in seat order, e.g. 'Pilot,Diver'")),
	)
}

func takeActionTool() mcp.Tool {
	return mcp.NewTool("take_action",
		mcp.WithDescription("Choose an action from the pending action list. Use this when the pending decision type is 'choose_action'."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id returned by start_game")),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index of the action to take from the actions list")),
	)
}

func chooseOptionTool() mcp.Tool {
	return mcp.NewTool("choose_option",
		mcp.WithDescription("Answer a prompt by picking one of its options. Use this when the pending decision type is 'choose_option'."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id returned by start_game")),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index into the options list")),
	)
}

func cancelChoiceTool() mcp.Tool {
	return mcp.NewTool("cancel_choice",
		mcp.WithDescription("Back out of the pending 'choose_option' prompt. The action being built is rejected and costs nothing."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id returned by start_game")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current game state, accumulated events, and pending decision without submitting a response. Read-only."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id returned by start_game")),
	)
}

func endGameTool() mcp.Tool {
	return mcp.NewTool("end_game",
		mcp.WithDescription("Abandon a running game and free its session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id returned by start_game")),
	)
}

// --- Tool handlers ---

func (t *Tables) handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := t.Base
	cfg.Players = request.GetInt("players", 0)
	if seed := request.GetInt("seed", 0); seed > 0 {
		cfg.Seed = uint64(seed)
	}
	if roles := strings.TrimSpace(request.GetString("roles", "")); roles != "" {
		cfg.Roles = nil
		for _, name := range strings.Split(roles, ",") {
			r, err := game.ParseRole(strings.TrimSpace(name))
			if err != nil {
				return mcp.NewToolResultErrorf("Invalid roles: %v", err), nil
			}
			cfg.Roles = append(cfg.Roles, r)
		}
	}

	sess, err := NewGameSession(cfg, t.MaxTurns)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}

	t.mu.Lock()
	t.sessions[sess.ID] = sess
	t.mu.Unlock()

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for first decision: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

// pendingOf looks up the session and checks the decision it is waiting for.
func (t *Tables) pendingOf(request mcp.CallToolRequest, want DecisionType) (*GameSession, *PendingDecision, *mcp.CallToolResult) {
	sess := t.get(request.GetString("session_id", ""))
	if sess == nil {
		return nil, nil, mcp.NewToolResultError("Unknown session. Use start_game first.")
	}
	pending := sess.currentPending
	if pending == nil || pending.Type == DecisionGameOver {
		return nil, nil, mcp.NewToolResultError("No pending decision.")
	}
	if pending.Type != want {
		return nil, nil, mcp.NewToolResultErrorf("Wrong tool: pending decision is '%s', not '%s'. Use the correct tool.", pending.Type, want)
	}
	return sess, pending, nil
}

// answer hands resp to the game and returns the decision that follows.
func (t *Tables) answer(ctx context.Context, sess *GameSession, resp any) (*mcp.CallToolResult, error) {
	sess.ctrl.responseCh <- resp

	next, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}
	if next.GameOver {
		t.drop(sess.ID)
	}
	return mcp.NewToolResultText(respondJSON(next)), nil
}

func (t *Tables) handleTakeAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, pending, bad := t.pendingOf(request, DecisionChooseAction)
	if bad != nil {
		return bad, nil
	}

	index := request.GetInt("index", -1)
	if index < 0 || index >= len(pending.Actions) {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d.", index, len(pending.Actions)-1), nil
	}
	return t.answer(ctx, sess, ActionResponse{Index: index})
}

func (t *Tables) handleChooseOption(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, pending, bad := t.pendingOf(request, DecisionChooseOption)
	if bad != nil {
		return bad, nil
	}

	index := request.GetInt("index", -1)
	if index < 0 || index >= len(pending.Options) {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d.", index, len(pending.Options)-1), nil
	}
	return t.answer(ctx, sess, OptionResponse{Index: index})
}

func (t *Tables) handleCancelChoice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, _, bad := t.pendingOf(request, DecisionChooseOption)
	if bad != nil {
		return bad, nil
	}
	return t.answer(ctx, sess, OptionResponse{Cancelled: true})
}

func (t *Tables) handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := t.get(request.GetString("session_id", ""))
	if sess == nil {
		return mcp.NewToolResultError("Unknown session. Use start_game first."), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.snapshot())), nil
}

func (t *Tables) handleEndGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("session_id", "")
	if t.get(id) == nil {
		return mcp.NewToolResultError("Unknown session."), nil
	}
	t.drop(id)
	return mcp.NewToolResultText(`{"ended": true}`), nil
}
