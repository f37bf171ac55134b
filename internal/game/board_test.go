package game

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClassicBoard(t *testing.T) (*Board, *[]*Tile) {
	t.Helper()
	var sunk []*Tile
	b, err := NewBoard(ClassicLayout(), func(tile *Tile) { sunk = append(sunk, tile) })
	require.NoError(t, err)
	return b, &sunk
}

func TestClassicLayout(t *testing.T) {
	l := ClassicLayout()
	require.NoError(t, l.Validate())
	assert.Len(t, l.Tiles, 24)

	b, _ := newClassicBoard(t)
	assert.Len(t, b.Tiles(), 24)
	assert.Equal(t, "Fools' Landing", b.TileAt(2, 2).Name)
	assert.Nil(t, b.TileAt(0, 0), "corner cells are sea")
	assert.Nil(t, b.TileAt(-1, 3))
	assert.Nil(t, b.TileAt(6, 0))
	assert.Equal(t, 24, b.Count(TileNormal))
}

func TestNewBoardRequiresSinkCallback(t *testing.T) {
	_, err := NewBoard(ClassicLayout(), nil)
	assert.Error(t, err)
}

func TestFloodProgression(t *testing.T) {
	b, sunk := newClassicBoard(t)
	tile := b.TileByName("Observatory")

	state, err := b.Flood(tile)
	require.NoError(t, err)
	assert.Equal(t, TileFlooded, state)
	assert.Empty(t, *sunk)

	state, err = b.Flood(tile)
	require.NoError(t, err)
	assert.Equal(t, TileSunk, state)
	assert.Equal(t, []*Tile{tile}, *sunk)

	_, err = b.Flood(tile)
	assert.Equal(t, KindInvalidTarget, KindOf(err))
	assert.Len(t, *sunk, 1, "sinking is reported once")
}

func TestRepairOnlyFloodedTiles(t *testing.T) {
	b, _ := newClassicBoard(t)
	tile := b.TileByName("Gold Gate")

	assert.Equal(t, KindInvalidTarget, KindOf(b.Repair(tile)), "normal tile")

	tile.State = TileFlooded
	require.NoError(t, b.Repair(tile))
	assert.Equal(t, TileNormal, tile.State)

	tile.State = TileSunk
	assert.Equal(t, KindInvalidTarget, KindOf(b.Repair(tile)), "sunk tile")
	assert.Equal(t, TileSunk, tile.State)
}

func TestAdjacencyIsOrthogonal(t *testing.T) {
	b, _ := newClassicBoard(t)
	landing := b.TileByName("Fools' Landing")

	var names []string
	for _, n := range b.AdjacentTiles(landing) {
		names = append(names, n.Name)
	}
	assert.ElementsMatch(t, []string{"Bronze Gate", "Silver Gate", "Copper Gate", "Gold Gate"}, names)
	assert.True(t, b.IsAdjacent(landing, b.TileByName("Gold Gate")))
	assert.False(t, b.IsAdjacent(landing, b.TileByName("Observatory")))
	assert.False(t, b.IsAdjacent(landing, landing))
}

func TestResolveRejectsEmptyCell(t *testing.T) {
	b, _ := newClassicBoard(t)
	_, err := b.Resolve(Coord{Row: 0, Col: 0})
	assert.Equal(t, KindInvalidTarget, KindOf(err))

	tile, err := b.Resolve(Coord{Row: 3, Col: 3})
	require.NoError(t, err)
	assert.Equal(t, "Observatory", tile.Name)
}

func TestLayoutValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(l *Layout)
	}{
		{"duplicate name", func(l *Layout) { l.Tiles[1].Name = l.Tiles[0].Name }},
		{"shared cell", func(l *Layout) { l.Tiles[1].Row, l.Tiles[1].Col = l.Tiles[0].Row, l.Tiles[0].Col }},
		{"outside grid", func(l *Layout) { l.Tiles[0].Row = l.Rows }},
		{"unknown rescue", func(l *Layout) { l.Rescue = "Atlantis" }},
		{"one source", func(l *Layout) { l.Treasures["fire"] = l.Treasures["fire"][:1] }},
		{"missing start", func(l *Layout) { delete(l.Starts, "diver") }},
		{"unknown treasure", func(l *Layout) { l.Treasures["air"] = []string{"Observatory", "Watchtower"} }},
		{"treasure named twice", func(l *Layout) { l.Treasures["FIRE"] = l.Treasures["fire"] }},
		{"unknown role", func(l *Layout) { l.Starts["captain"] = "Iron Gate" }},
		{"role named twice", func(l *Layout) { l.Starts["Diver"] = "Iron Gate" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ClassicLayout()
			tt.mutate(l)
			assert.Error(t, l.Validate())
		})
	}
}

func TestParseLayoutRejectsUnknownKeysEveryTime(t *testing.T) {
	data := bytes.Replace(classicLayoutYAML, []byte("treasures:\n"), []byte("treasures:\n  air: [Observatory, Watchtower]\n"), 1)
	for range 50 {
		_, err := ParseLayout(data)
		require.ErrorContains(t, err, `unknown treasure "air"`)
	}
}

func TestParseLayout(t *testing.T) {
	data := []byte(`
name: Tiny
rows: 2
cols: 5
rescue: Dock
tiles:
  - {name: Dock, row: 0, col: 0}
  - {name: A1, row: 0, col: 1}
  - {name: A2, row: 0, col: 2}
  - {name: B1, row: 0, col: 3}
  - {name: B2, row: 0, col: 4}
  - {name: C1, row: 1, col: 0}
  - {name: C2, row: 1, col: 1}
  - {name: D1, row: 1, col: 2}
  - {name: D2, row: 1, col: 3}
treasures:
  earth: [A1, A2]
  fire: [B1, B2]
  wind: [C1, C2]
  water: [D1, D2]
starts:
  pilot: Dock
  navigator: A1
  engineer: A2
  explorer: B1
  diver: B2
  messenger: C1
`)
	l, err := ParseLayout(data)
	require.NoError(t, err)
	assert.Equal(t, "Tiny", l.Name)

	b, err := NewBoard(l, func(*Tile) {})
	require.NoError(t, err)
	assert.Len(t, b.Tiles(), 9)
	assert.Nil(t, b.TileAt(1, 4))

	_, err = ParseLayout([]byte("rows: [oops"))
	assert.Error(t, err)
}

func TestShuffledLayoutKeepsCells(t *testing.T) {
	l := ClassicLayout()
	s := l.Shuffled(newRNG(7))
	require.NoError(t, s.Validate())
	require.Len(t, s.Tiles, len(l.Tiles))
	for i := range l.Tiles {
		assert.Equal(t, l.Tiles[i].Row, s.Tiles[i].Row)
		assert.Equal(t, l.Tiles[i].Col, s.Tiles[i].Col)
	}
	assert.Equal(t, "Fools' Landing", l.Tiles[8].Name, "original is untouched")
}
