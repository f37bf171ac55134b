package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(tiles []*Tile) []string {
	out := make([]string, len(tiles))
	for i, t := range tiles {
		out[i] = t.Name
	}
	return out
}

// Every role must have traits; adding a role without one panics here first.
func TestTraitsCoverEveryRole(t *testing.T) {
	for _, r := range AllRoles {
		assert.NotPanics(t, func() {
			traits := TraitsOf(r)
			assert.GreaterOrEqual(t, traits.ShoreCapacity, 1, r.String())
		}, r.String())
	}
	assert.Panics(t, func() { TraitsOf(Role(len(AllRoles))) })
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("messenger")
	require.NoError(t, err)
	assert.Equal(t, RoleMessenger, r)

	_, err = ParseRole("cook")
	assert.Error(t, err)
}

func TestAdjacencyRule(t *testing.T) {
	b, _ := newClassicBoard(t)
	landing := b.TileByName("Fools' Landing")
	gold := b.TileByName("Gold Gate")
	observatory := b.TileByName("Observatory")

	assert.True(t, AdjacencyRule(RolePilot, landing, gold))
	assert.False(t, AdjacencyRule(RolePilot, landing, observatory))
	assert.True(t, AdjacencyRule(RoleExplorer, landing, observatory))
	assert.False(t, AdjacencyRule(RoleExplorer, landing, landing))
}

func TestMoveTargets(t *testing.T) {
	b, _ := newClassicBoard(t)
	landing := b.TileByName("Fools' Landing")

	assert.Equal(t, []string{"Bronze Gate", "Copper Gate", "Gold Gate", "Silver Gate"},
		names(MoveTargets(RoleMessenger, b, landing)))
	assert.Len(t, MoveTargets(RoleExplorer, b, landing), 8)

	b.TileByName("Gold Gate").State = TileSunk
	b.TileByName("Bronze Gate").State = TileFlooded
	assert.Equal(t, []string{"Bronze Gate", "Copper Gate", "Silver Gate"},
		names(MoveTargets(RolePilot, b, landing)), "flooded tiles are fine, sunk ones are not")
}

func TestDiverSwimsThroughWater(t *testing.T) {
	b, _ := newClassicBoard(t)
	landing := b.TileByName("Fools' Landing")
	b.TileByName("Silver Gate").State = TileFlooded
	b.TileByName("Crimson Forest").State = TileSunk

	targets := names(MoveTargets(RoleDiver, b, landing))
	assert.ElementsMatch(t, []string{
		"Bronze Gate", "Copper Gate", "Gold Gate", "Silver Gate",
		"Iron Gate", "Observatory",
		"Cave of Shadows", "Coral Palace", "Tidal Palace",
	}, targets)
	assert.NotContains(t, targets, "Crimson Forest", "sunk tiles are passed through, never landed on")
	assert.NotContains(t, targets, "Lost Lagoon", "dry tiles stop the swim")
	assert.NotContains(t, targets, "Fools' Landing")
}

func TestShoreTargets(t *testing.T) {
	b, _ := newClassicBoard(t)
	landing := b.TileByName("Fools' Landing")
	for _, n := range []string{"Fools' Landing", "Gold Gate", "Observatory", "Watchtower"} {
		b.TileByName(n).State = TileFlooded
	}

	assert.Equal(t, []string{"Fools' Landing", "Gold Gate"}, names(ShoreTargets(RoleEngineer, b, landing)))
	assert.Equal(t, []string{"Fools' Landing", "Gold Gate", "Observatory"}, names(ShoreTargets(RoleExplorer, b, landing)))
}

func TestEscapeTargets(t *testing.T) {
	b, _ := newClassicBoard(t)
	cliffs := b.TileByName("Cliffs of Abandon")
	cliffs.State = TileSunk
	b.TileByName("Breakers Bridge").State = TileSunk
	b.TileByName("Bronze Gate").State = TileSunk

	assert.Empty(t, EscapeTargets(RoleMessenger, b, cliffs))
	assert.Empty(t, EscapeTargets(RoleDiver, b, cliffs))
	assert.Equal(t, []string{"Temple of the Moon", "Temple of the Sun"}, names(EscapeTargets(RoleExplorer, b, cliffs)))
}

func TestFlightTargets(t *testing.T) {
	b, _ := newClassicBoard(t)
	landing := b.TileByName("Fools' Landing")
	b.TileByName("Misty Marsh").State = TileSunk

	targets := names(FlightTargets(b, landing))
	assert.Len(t, targets, 22)
	assert.NotContains(t, targets, "Misty Marsh")
	assert.NotContains(t, targets, "Fools' Landing")
}
