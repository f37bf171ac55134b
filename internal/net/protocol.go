package net

// Message types for the JSON protocol over TCP.

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "choose_action" and "choose_option"
	Player  int          `json:"player"`
	State   *StateView   `json:"state,omitempty"`
	Actions []ActionView `json:"actions,omitempty"`

	// For "choose_option"
	Prompt  string   `json:"prompt,omitempty"`
	Options []string `json:"options,omitempty"`

	// For "game_over"
	Won    bool   `json:"won,omitempty"`
	Result string `json:"result,omitempty"`
}

// EventView is a simplified game event for the client.
type EventView struct {
	Seq      int    `json:"seq,omitempty"`
	Turn     int    `json:"turn"`
	Phase    string `json:"phase"`
	Player   int    `json:"player"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Card     string `json:"card,omitempty"`
	Tile     string `json:"tile,omitempty"`
	Details  string `json:"details"`
}

// ActionView is a numbered action choice.
type ActionView struct {
	Index int    `json:"index"`
	Kind  string `json:"kind"`
	Desc  string `json:"desc"`
}

// StateView is the whole table as every seat sees it; nothing is hidden in
// a cooperative game.
type StateView struct {
	Turn          int          `json:"turn"`
	Phase         string       `json:"phase"`
	Current       int          `json:"current"`
	WaterLevel    int          `json:"water_level"`
	MaxWaterLevel int          `json:"max_water_level"`
	Collected     []string     `json:"collected"`
	DiscardsOwed  int          `json:"discards_owed,omitempty"`
	Emergency     []int        `json:"emergency,omitempty"`
	Rows          int          `json:"rows"`
	Cols          int          `json:"cols"`
	Tiles         []TileView   `json:"tiles"`
	Players       []PlayerView `json:"players"`
	Treasure      DeckView     `json:"treasure_deck"`
	Flood         DeckView     `json:"flood_deck"`
	Over          bool         `json:"over,omitempty"`
	Won           bool         `json:"won,omitempty"`
	Result        string       `json:"result,omitempty"`
}

// TileView describes one island tile.
type TileView struct {
	Name     string `json:"name"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	State    string `json:"state"`
	Treasure string `json:"treasure,omitempty"`
	Rescue   bool   `json:"rescue,omitempty"`
	Players  []int  `json:"players,omitempty"`
}

// PlayerView shows one adventurer.
type PlayerView struct {
	Index   int        `json:"index"`
	Role    string     `json:"role"`
	Tile    string     `json:"tile"`
	Actions int        `json:"actions"`
	Hand    []CardView `json:"hand"`
}

// CardView describes a card in hand.
type CardView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// DeckView gives pile sizes and the visible top of the discard pile.
type DeckView struct {
	Draw       int    `json:"draw"`
	Discard    int    `json:"discard"`
	TopDiscard string `json:"top_discard,omitempty"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "action" and "option"
	Index int `json:"index,omitempty"`

	// For "join" (initial handshake)
	Players int    `json:"players,omitempty"`
	Seed    uint64 `json:"seed,omitempty"`
}

// Message type names.
const (
	MsgNotify       = "notify"
	MsgChooseAction = "choose_action"
	MsgChooseOption = "choose_option"
	MsgGameOver     = "game_over"

	MsgJoin   = "join"
	MsgAction = "action"
	MsgOption = "option"
	MsgCancel = "cancel"
)
