package game

import (
	"github.com/zyedidia/generic/mapset"
)

const (
	MinPlayers = 2
	MaxPlayers = 4
)

// GameState holds the complete state of a game. It is owned by a single Game
// and mutated only from its synchronous action path.
type GameState struct {
	Board        *Board
	Players      []*Player
	TreasureDeck *TreasureDeck
	FloodDeck    *FloodDeck

	Turn    int // 1-based turn counter
	Current int // index of the active player
	Phase   Phase

	WaterLevel    int // monotonically non-decreasing
	MaxWaterLevel int

	Collected mapset.Set[Treasure]
	Emergency *EmergencyQueue

	Rescue  *Tile
	Sources map[Treasure][2]*Tile

	// Discard sub-phase bookkeeping
	DiscardsOwed int

	// Game result
	Over   bool
	Won    bool
	Result string
}

// NewGameState creates an empty state around a board.
func NewGameState(b *Board) *GameState {
	return &GameState{
		Board:     b,
		Turn:      1,
		Collected: mapset.New[Treasure](),
		Emergency: NewEmergencyQueue(),
		Sources:   make(map[Treasure][2]*Tile, len(AllTreasures)),
	}
}

// CurrentPlayer returns the active player.
func (gs *GameState) CurrentPlayer() *Player {
	return gs.Players[gs.Current]
}

// PlayersOn returns the players standing on t, in seat order.
func (gs *GameState) PlayersOn(t *Tile) []*Player {
	var out []*Player
	for _, p := range gs.Players {
		if p.Tile == t {
			out = append(out, p)
		}
	}
	return out
}

// SourceOf reports which treasure, if any, t is a source tile for.
func (gs *GameState) SourceOf(t *Tile) (Treasure, bool) {
	for _, tr := range AllTreasures {
		pair := gs.Sources[tr]
		if pair[0] == t || pair[1] == t {
			return tr, true
		}
	}
	return 0, false
}

// HasCollected reports whether the team holds treasure t.
func (gs *GameState) HasCollected(t Treasure) bool {
	return gs.Collected.Has(t)
}

// CollectedList returns the collected treasures in canonical order.
func (gs *GameState) CollectedList() []Treasure {
	var out []Treasure
	for _, t := range AllTreasures {
		if gs.Collected.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// HeldCards counts treasure-deck cards currently in players' hands.
func (gs *GameState) HeldCards() int {
	n := 0
	for _, p := range gs.Players {
		n += len(p.Hand)
	}
	return n
}
