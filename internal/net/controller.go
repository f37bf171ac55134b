package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/peterkuimelis/sinkisle/internal/game"
	"github.com/peterkuimelis/sinkisle/internal/log"
)

// NetworkController implements game.Controller over a connection. One client
// sits at the whole table and answers for every seat.
type NetworkController struct {
	conn net.Conn
	enc  *json.Encoder
	dec  *json.Decoder
	mu   sync.Mutex
}

// NewNetworkController creates a new controller for the given connection.
func NewNetworkController(conn net.Conn) *NetworkController {
	return &NetworkController{
		conn: conn,
		enc:  json.NewEncoder(conn),
		dec:  json.NewDecoder(conn),
	}
}

// BuildStateView snapshots the table.
func BuildStateView(state *game.GameState) *StateView {
	sv := &StateView{
		Turn:          state.Turn,
		Phase:         state.Phase.String(),
		Current:       state.Current,
		WaterLevel:    state.WaterLevel,
		MaxWaterLevel: state.MaxWaterLevel,
		DiscardsOwed:  state.DiscardsOwed,
		Emergency:     state.Emergency.Pending(),
		Rows:          state.Board.Rows,
		Cols:          state.Board.Cols,
		Treasure:      deckView(state.TreasureDeck.Deck),
		Flood:         deckView(state.FloodDeck.Deck),
		Over:          state.Over,
		Won:           state.Won,
		Result:        state.Result,
	}
	for _, t := range state.CollectedList() {
		sv.Collected = append(sv.Collected, t.String())
	}

	for _, t := range state.Board.Tiles() {
		tv := TileView{
			Name:   t.Name,
			Row:    t.Row,
			Col:    t.Col,
			State:  t.State.String(),
			Rescue: t == state.Rescue,
		}
		if tr, ok := state.SourceOf(t); ok {
			tv.Treasure = tr.String()
		}
		for _, p := range state.PlayersOn(t) {
			tv.Players = append(tv.Players, p.Index)
		}
		sv.Tiles = append(sv.Tiles, tv)
	}

	for _, p := range state.Players {
		pv := PlayerView{
			Index:   p.Index,
			Role:    p.Role.String(),
			Tile:    p.Tile.Name,
			Actions: p.Actions,
			Hand:    []CardView{},
		}
		for _, c := range p.Hand {
			pv.Hand = append(pv.Hand, CardView{ID: c.ID, Name: c.Name()})
		}
		sv.Players = append(sv.Players, pv)
	}
	return sv
}

func deckView(d *game.Deck[*game.Card]) DeckView {
	dv := DeckView{Draw: d.DrawCount(), Discard: d.DiscardCount()}
	if pile := d.DiscardPile(); len(pile) > 0 {
		dv.TopDiscard = pile[len(pile)-1].Name()
	}
	return dv
}

// BuildEventView converts a game event for the wire.
func BuildEventView(event log.GameEvent) *EventView {
	return &EventView{
		Seq:      event.Seq,
		Turn:     event.Turn,
		Phase:    event.Phase,
		Player:   event.Player,
		Type:     event.Type.String(),
		Category: event.Type.Category().String(),
		Card:     event.Card,
		Tile:     event.Tile,
		Details:  event.Details,
	}
}

// send sends a server message to the client. Must be called with mu held.
func (nc *NetworkController) send(msg ServerMessage) error {
	return nc.enc.Encode(msg)
}

// recv reads a client message. Must be called with mu held.
func (nc *NetworkController) recv() (ClientMessage, error) {
	var msg ClientMessage
	err := nc.dec.Decode(&msg)
	return msg, err
}

// ChooseAction implements game.Controller.
func (nc *NetworkController) ChooseAction(ctx context.Context, state *game.GameState, player int, actions []game.Request) (int, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	var views []ActionView
	for i, a := range actions {
		views = append(views, ActionView{Index: i, Kind: a.Kind.String(), Desc: a.String()})
	}

	msg := ServerMessage{
		Type:    MsgChooseAction,
		Player:  player,
		Actions: views,
		State:   BuildStateView(state),
	}
	if err := nc.send(msg); err != nil {
		return 0, fmt.Errorf("send choose_action: %w", err)
	}

	resp, err := nc.recv()
	if err != nil {
		return 0, fmt.Errorf("recv action: %w", err)
	}

	if resp.Index < 0 || resp.Index >= len(actions) {
		return 0, nil // fallback to first action
	}
	return resp.Index, nil
}

// ChooseOption implements game.ChoiceProvider.
func (nc *NetworkController) ChooseOption(ctx context.Context, state *game.GameState, player int, prompt string, options []string) (int, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	msg := ServerMessage{
		Type:    MsgChooseOption,
		Player:  player,
		Prompt:  prompt,
		Options: options,
		State:   BuildStateView(state),
	}
	if err := nc.send(msg); err != nil {
		return -1, fmt.Errorf("send choose_option: %w", err)
	}

	resp, err := nc.recv()
	if err != nil {
		return -1, fmt.Errorf("recv option: %w", err)
	}
	if resp.Type == MsgCancel {
		return -1, game.ErrCancelled
	}
	return resp.Index, nil
}

// SendGameOver sends a game_over message to the client.
func (nc *NetworkController) SendGameOver(out game.Outcome) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(ServerMessage{Type: MsgGameOver, Won: out.Won, Result: out.Reason})
}

// Notify implements game.Notifier.
func (nc *NetworkController) Notify(ctx context.Context, event log.GameEvent) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(ServerMessage{Type: MsgNotify, Event: BuildEventView(event)})
}
