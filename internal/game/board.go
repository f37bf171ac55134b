package game

import (
	"errors"
	"fmt"
	"sort"
)

// Tile is one cell of the island. Adjacency edges are axis-aligned only;
// diagonal reach is a role query, not a structural edge.
type Tile struct {
	Name  string
	Row   int
	Col   int
	State TileState

	adjacent []*Tile
}

func (t *Tile) String() string {
	if t == nil {
		return "(none)"
	}
	return t.Name
}

// Coord returns the tile's grid position.
func (t *Tile) Coord() Coord {
	return Coord{Row: t.Row, Col: t.Col}
}

// Sunk reports whether the tile has left the game.
func (t *Tile) Sunk() bool {
	return t.State == TileSunk
}

// SinkFunc is invoked synchronously whenever a tile transitions to SUNK.
type SinkFunc func(t *Tile)

// Board is the fixed grid of tiles with a precomputed adjacency graph.
type Board struct {
	Rows int
	Cols int

	grid   [][]*Tile
	tiles  []*Tile // row-major order
	byName map[string]*Tile
	onSink SinkFunc
}

// NewBoard builds the grid described by layout. onSink is required: the flood
// escalation relies on it to queue stranded players.
func NewBoard(layout *Layout, onSink SinkFunc) (*Board, error) {
	if onSink == nil {
		return nil, errors.New("board: sink callback is required")
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	b := &Board{
		Rows:   layout.Rows,
		Cols:   layout.Cols,
		grid:   make([][]*Tile, layout.Rows),
		byName: make(map[string]*Tile, len(layout.Tiles)),
		onSink: onSink,
	}
	for r := range b.grid {
		b.grid[r] = make([]*Tile, layout.Cols)
	}
	for _, entry := range layout.Tiles {
		t := &Tile{Name: entry.Name, Row: entry.Row, Col: entry.Col}
		b.grid[entry.Row][entry.Col] = t
		b.byName[t.Name] = t
	}
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			if t := b.grid[r][c]; t != nil {
				b.tiles = append(b.tiles, t)
			}
		}
	}

	// Precompute axis adjacency.
	deltas := [4][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}
	for _, t := range b.tiles {
		for _, d := range deltas {
			if n := b.TileAt(t.Row+d[0], t.Col+d[1]); n != nil {
				t.adjacent = append(t.adjacent, n)
			}
		}
	}
	return b, nil
}

// TileAt returns the tile at (row, col), or nil for an empty cell or out of bounds.
func (b *Board) TileAt(row, col int) *Tile {
	if row < 0 || row >= b.Rows || col < 0 || col >= b.Cols {
		return nil
	}
	return b.grid[row][col]
}

// TileByName returns the named tile or nil.
func (b *Board) TileByName(name string) *Tile {
	return b.byName[name]
}

// Tiles returns every tile in row-major order.
func (b *Board) Tiles() []*Tile {
	return b.tiles
}

// AdjacentTiles returns the structural (axis) neighbours of t, regardless of state.
func (b *Board) AdjacentTiles(t *Tile) []*Tile {
	return t.adjacent
}

// IsAdjacent reports whether a and b are at Manhattan distance exactly 1.
func (b *Board) IsAdjacent(x, y *Tile) bool {
	return manhattan(x, y) == 1
}

// Flood advances a tile one hazard step: NORMAL→FLOODED or FLOODED→SUNK.
// Sinking fires the board's sink callback before returning.
func (b *Board) Flood(t *Tile) (TileState, error) {
	switch t.State {
	case TileNormal:
		t.State = TileFlooded
	case TileFlooded:
		t.State = TileSunk
		b.onSink(t)
	default:
		return t.State, reject(KindInvalidTarget, "%s has already sunk", t.Name)
	}
	return t.State, nil
}

// Repair returns a FLOODED tile to NORMAL. Any other state is rejected.
func (b *Board) Repair(t *Tile) error {
	if t.State != TileFlooded {
		return reject(KindInvalidTarget, "%s is %s, not flooded", t.Name, t.State)
	}
	t.State = TileNormal
	return nil
}

// Resolve converts a coordinate into a tile, rejecting empty cells.
func (b *Board) Resolve(c Coord) (*Tile, error) {
	t := b.TileAt(c.Row, c.Col)
	if t == nil {
		return nil, reject(KindInvalidTarget, "no tile at %s", c)
	}
	return t, nil
}

// Count returns how many tiles are in the given state.
func (b *Board) Count(state TileState) int {
	n := 0
	for _, t := range b.tiles {
		if t.State == state {
			n++
		}
	}
	return n
}

// FilterTiles returns the tiles matching keep, in row-major order.
func (b *Board) FilterTiles(keep func(*Tile) bool) []*Tile {
	var out []*Tile
	for _, t := range b.tiles {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// sortTiles orders tiles row-major so prompts list options deterministically.
func sortTiles(tiles []*Tile) {
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].Row != tiles[j].Row {
			return tiles[i].Row < tiles[j].Row
		}
		return tiles[i].Col < tiles[j].Col
	})
}

func manhattan(a, b *Tile) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func chebyshev(a, b *Tile) int {
	return max(abs(a.Row-b.Row), abs(a.Col-b.Col))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func containsTile(tiles []*Tile, t *Tile) bool {
	for _, x := range tiles {
		if x == t {
			return true
		}
	}
	return false
}

func tileNames(tiles []*Tile) []string {
	names := make([]string, len(tiles))
	for i, t := range tiles {
		names[i] = fmt.Sprintf("%s %s", t.Name, t.Coord())
	}
	return names
}
