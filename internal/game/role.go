package game

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// Ability is a role's special action.
type Ability int

const (
	AbilityNone     Ability = iota
	AbilityFly              // Pilot: move to any non-sunk tile, once per turn
	AbilityNavigate         // Navigator: move another player up to two steps
)

func (a Ability) String() string {
	switch a {
	case AbilityFly:
		return "Fly"
	case AbilityNavigate:
		return "Navigate"
	default:
		return "None"
	}
}

// MoveRule selects how a role's Move action computes destinations.
type MoveRule int

const (
	MoveOrthogonal MoveRule = iota // Manhattan distance 1
	MoveDiagonal                   // Chebyshev distance 1
	MoveSwim                       // through chains of flooded/sunk tiles
)

func (m MoveRule) String() string {
	switch m {
	case MoveDiagonal:
		return "Diagonal"
	case MoveSwim:
		return "Swim"
	default:
		return "Orthogonal"
	}
}

// RoleTraits captures every way a role bends the default rules.
type RoleTraits struct {
	Move          MoveRule
	ShoreCapacity int  // tiles repaired by one Shore Up action
	GiveAnywhere  bool // Give Card ignores co-location
	Special       Ability
}

// TraitsOf returns the rule modifiers for a role. Every role must be listed
// here; an unknown role is a programming error.
func TraitsOf(r Role) RoleTraits {
	switch r {
	case RolePilot:
		return RoleTraits{Move: MoveOrthogonal, ShoreCapacity: 1, Special: AbilityFly}
	case RoleNavigator:
		return RoleTraits{Move: MoveOrthogonal, ShoreCapacity: 1, Special: AbilityNavigate}
	case RoleEngineer:
		return RoleTraits{Move: MoveOrthogonal, ShoreCapacity: 2}
	case RoleExplorer:
		return RoleTraits{Move: MoveDiagonal, ShoreCapacity: 1}
	case RoleDiver:
		return RoleTraits{Move: MoveSwim, ShoreCapacity: 1}
	case RoleMessenger:
		return RoleTraits{Move: MoveOrthogonal, ShoreCapacity: 1, GiveAnywhere: true}
	default:
		panic(fmt.Sprintf("unhandled role %d", int(r)))
	}
}

// AdjacencyRule reports whether to lies within one step of from under the
// role's reach: Chebyshev ≤ 1 for the Explorer, Manhattan = 1 otherwise.
// Tile state is not considered.
func AdjacencyRule(r Role, from, to *Tile) bool {
	if from == to {
		return false
	}
	if TraitsOf(r).Move == MoveDiagonal {
		return chebyshev(from, to) == 1
	}
	return manhattan(from, to) == 1
}

// stepTargets returns non-sunk tiles one step from from under the role's reach.
func stepTargets(r Role, b *Board, from *Tile) []*Tile {
	return b.FilterTiles(func(t *Tile) bool {
		return !t.Sunk() && AdjacencyRule(r, from, t)
	})
}

// orthogonalTargets returns non-sunk tiles at Manhattan distance 1.
func orthogonalTargets(b *Board, from *Tile) []*Tile {
	var out []*Tile
	for _, t := range b.AdjacentTiles(from) {
		if !t.Sunk() {
			out = append(out, t)
		}
	}
	sortTiles(out)
	return out
}

// MoveTargets returns the legal destinations of a Move action.
func MoveTargets(r Role, b *Board, from *Tile) []*Tile {
	switch TraitsOf(r).Move {
	case MoveSwim:
		return swimTargets(b, from)
	case MoveDiagonal:
		return stepTargets(r, b, from)
	default:
		return orthogonalTargets(b, from)
	}
}

// swimTargets runs a breadth-first search in which flooded and sunk tiles are
// free to traverse. Every non-sunk tile reached is a destination.
func swimTargets(b *Board, from *Tile) []*Tile {
	visited := mapset.New[*Tile]()
	visited.Put(from)
	found := mapset.New[*Tile]()
	queue := []*Tile{from}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, n := range b.AdjacentTiles(current) {
			if visited.Has(n) {
				continue
			}
			visited.Put(n)
			if !n.Sunk() {
				found.Put(n)
			}
			// Only water carries the diver further.
			if n.State != TileNormal {
				queue = append(queue, n)
			}
		}
	}

	var out []*Tile
	found.Each(func(t *Tile) {
		out = append(out, t)
	})
	sortTiles(out)
	return out
}

// ShoreTargets returns flooded tiles the role may shore up from its position:
// its own tile or any tile within one step under the role's reach.
func ShoreTargets(r Role, b *Board, from *Tile) []*Tile {
	return b.FilterTiles(func(t *Tile) bool {
		return t.State == TileFlooded && (t == from || AdjacencyRule(r, from, t))
	})
}

// EscapeTargets returns the tiles a player may swim to when their tile sinks.
func EscapeTargets(r Role, b *Board, from *Tile) []*Tile {
	return stepTargets(r, b, from)
}

// FlightTargets returns every non-sunk tile other than from.
func FlightTargets(b *Board, from *Tile) []*Tile {
	return b.FilterTiles(func(t *Tile) bool {
		return !t.Sunk() && t != from
	})
}
