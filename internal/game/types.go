package game

import (
	"fmt"
	"strings"
)

// --- Enums ---

type TileState int

const (
	TileNormal TileState = iota
	TileFlooded
	TileSunk
)

func (s TileState) String() string {
	switch s {
	case TileNormal:
		return "normal"
	case TileFlooded:
		return "flooded"
	case TileSunk:
		return "sunk"
	default:
		return "unknown"
	}
}

type Treasure int

const (
	TreasureEarth Treasure = iota
	TreasureFire
	TreasureWind
	TreasureWater
)

// AllTreasures lists the four collectible treasures in canonical order.
var AllTreasures = []Treasure{TreasureEarth, TreasureFire, TreasureWind, TreasureWater}

func (t Treasure) String() string {
	switch t {
	case TreasureEarth:
		return "EARTH"
	case TreasureFire:
		return "FIRE"
	case TreasureWind:
		return "WIND"
	case TreasureWater:
		return "WATER"
	default:
		return "UNKNOWN"
	}
}

// ParseTreasure maps a case-insensitive treasure name to its value.
func ParseTreasure(s string) (Treasure, error) {
	for _, t := range AllTreasures {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown treasure %q", s)
}

type Role int

const (
	RolePilot Role = iota
	RoleNavigator
	RoleEngineer
	RoleExplorer
	RoleDiver
	RoleMessenger
)

// AllRoles lists every role in canonical order.
var AllRoles = []Role{RolePilot, RoleNavigator, RoleEngineer, RoleExplorer, RoleDiver, RoleMessenger}

func (r Role) String() string {
	switch r {
	case RolePilot:
		return "Pilot"
	case RoleNavigator:
		return "Navigator"
	case RoleEngineer:
		return "Engineer"
	case RoleExplorer:
		return "Explorer"
	case RoleDiver:
		return "Diver"
	case RoleMessenger:
		return "Messenger"
	default:
		return "Unknown"
	}
}

// ParseRole maps a case-insensitive role name to its value.
func ParseRole(s string) (Role, error) {
	for _, r := range AllRoles {
		if strings.EqualFold(s, r.String()) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

// Phase is the turn engine's state.
type Phase int

const (
	PhaseAwaitingAction Phase = iota
	PhaseActionResolving
	PhaseDiscard
	PhaseEndOfTurn
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingAction:
		return "Actions"
	case PhaseActionResolving:
		return "Resolving"
	case PhaseDiscard:
		return "Discard"
	case PhaseEndOfTurn:
		return "End of Turn"
	case PhaseGameOver:
		return "Game Over"
	default:
		return "None"
	}
}

// --- Action types ---

type ActionKind int

const (
	ActionMove ActionKind = iota
	ActionShoreUp
	ActionGiveCard
	ActionCaptureTreasure
	ActionSpecial
	ActionSkip
	ActionDiscard  // only during the hand-limit discard phase
	ActionPlayCard // Sandbag / Helicopter, costs no action point
)

func (a ActionKind) String() string {
	switch a {
	case ActionMove:
		return "Move"
	case ActionShoreUp:
		return "Shore Up"
	case ActionGiveCard:
		return "Give Card"
	case ActionCaptureTreasure:
		return "Capture Treasure"
	case ActionSpecial:
		return "Special"
	case ActionSkip:
		return "Skip"
	case ActionDiscard:
		return "Discard"
	case ActionPlayCard:
		return "Play Card"
	default:
		return "Unknown"
	}
}

// Coord addresses a grid cell.
type Coord struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// At is shorthand for building a *Coord inside a Request.
func At(row, col int) *Coord {
	return &Coord{Row: row, Col: col}
}

// Seat is shorthand for building a *int player reference inside a Request.
func Seat(i int) *int {
	return &i
}

// Request is an action request from the UI layer. Unset optional targets are
// resolved by asking the choice provider.
type Request struct {
	Player int
	Kind   ActionKind
	Tile   *Coord  // destination / shore-up / sandbag target
	Tiles  []Coord // follow-ups: Engineer second tile, Navigator moves
	Target *int    // other player (give card, navigator)
	CardID int     // card in hand (0 = ask)
	Movers []int   // helicopter passengers
	Desc   string  // human-readable description
}

func (r Request) String() string {
	if r.Desc != "" {
		return r.Desc
	}
	return r.Kind.String()
}
