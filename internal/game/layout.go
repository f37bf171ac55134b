package game

import (
	_ "embed"
	"fmt"
	"maps"
	"math/rand/v2"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed layouts/classic.yaml
var classicLayoutYAML []byte

// Layout represents the top-level YAML structure of an island definition.
type Layout struct {
	Name      string              `yaml:"name" json:"name"`
	Rows      int                 `yaml:"rows" json:"rows"`
	Cols      int                 `yaml:"cols" json:"cols"`
	Rescue    string              `yaml:"rescue" json:"rescue"`
	Tiles     []TileEntry         `yaml:"tiles" json:"tiles"`
	Treasures map[string][]string `yaml:"treasures" json:"treasures"` // treasure name → two source tiles
	Starts    map[string]string   `yaml:"starts" json:"starts"`       // role name → start tile
}

// TileEntry places a named tile on the grid.
type TileEntry struct {
	Name string `yaml:"name" json:"name"`
	Row  int    `yaml:"row" json:"row"`
	Col  int    `yaml:"col" json:"col"`
}

// ClassicLayout returns the embedded 24-tile island.
func ClassicLayout() *Layout {
	l, err := ParseLayout(classicLayoutYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded classic layout: %v", err))
	}
	return l
}

// ParseLayout decodes and validates a YAML layout.
func ParseLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse layout YAML: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// LoadLayout reads a layout file from disk.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseLayout(data)
}

// Validate checks that every reference in the layout resolves to a placed tile.
func (l *Layout) Validate() error {
	if l.Rows <= 0 || l.Cols <= 0 {
		return fmt.Errorf("layout %q: grid must be at least 1x1, got %dx%d", l.Name, l.Rows, l.Cols)
	}
	names := make(map[string]bool, len(l.Tiles))
	cells := make(map[Coord]string, len(l.Tiles))
	for _, t := range l.Tiles {
		if t.Name == "" {
			return fmt.Errorf("layout %q: tile at (%d,%d) has no name", l.Name, t.Row, t.Col)
		}
		if t.Row < 0 || t.Row >= l.Rows || t.Col < 0 || t.Col >= l.Cols {
			return fmt.Errorf("layout %q: tile %q at (%d,%d) is outside the grid", l.Name, t.Name, t.Row, t.Col)
		}
		if names[t.Name] {
			return fmt.Errorf("layout %q: duplicate tile %q", l.Name, t.Name)
		}
		c := Coord{Row: t.Row, Col: t.Col}
		if other, ok := cells[c]; ok {
			return fmt.Errorf("layout %q: %q and %q share cell %s", l.Name, other, t.Name, c)
		}
		names[t.Name] = true
		cells[c] = t.Name
	}
	if !names[l.Rescue] {
		return fmt.Errorf("layout %q: rescue tile %q is not placed", l.Name, l.Rescue)
	}
	if err := l.checkKeys(); err != nil {
		return err
	}
	for _, tr := range AllTreasures {
		sources, err := l.treasureSources(tr)
		if err != nil {
			return err
		}
		for _, s := range sources {
			if !names[s] {
				return fmt.Errorf("layout %q: %s source %q is not placed", l.Name, tr, s)
			}
		}
	}
	for _, r := range AllRoles {
		start, ok := l.StartFor(r)
		if !ok {
			return fmt.Errorf("layout %q: no start tile for %s", l.Name, r)
		}
		if !names[start] {
			return fmt.Errorf("layout %q: %s start %q is not placed", l.Name, r, start)
		}
	}
	return nil
}

// checkKeys rejects treasure and role keys that do not parse or that name the
// same thing twice. Keys are visited in sorted order so the error is stable.
func (l *Layout) checkKeys() error {
	treasures := make(map[Treasure]string, len(l.Treasures))
	for _, key := range slices.Sorted(maps.Keys(l.Treasures)) {
		t, err := ParseTreasure(key)
		if err != nil {
			return fmt.Errorf("layout %q: %w", l.Name, err)
		}
		if prev, ok := treasures[t]; ok {
			return fmt.Errorf("layout %q: %q and %q both name %s", l.Name, prev, key, t)
		}
		treasures[t] = key
	}
	roles := make(map[Role]string, len(l.Starts))
	for _, key := range slices.Sorted(maps.Keys(l.Starts)) {
		r, err := ParseRole(key)
		if err != nil {
			return fmt.Errorf("layout %q: start: %w", l.Name, err)
		}
		if prev, ok := roles[r]; ok {
			return fmt.Errorf("layout %q: starts %q and %q both name %s", l.Name, prev, key, r)
		}
		roles[r] = key
	}
	return nil
}

func (l *Layout) treasureSources(t Treasure) ([]string, error) {
	for _, key := range slices.Sorted(maps.Keys(l.Treasures)) {
		if parsed, err := ParseTreasure(key); err != nil || parsed != t {
			continue
		}
		sources := l.Treasures[key]
		if len(sources) != 2 {
			return nil, fmt.Errorf("layout %q: %s needs exactly 2 source tiles, got %d", l.Name, t, len(sources))
		}
		return sources, nil
	}
	return nil, fmt.Errorf("layout %q: no source tiles for %s", l.Name, t)
}

// StartFor names the tile a role begins on. Validate guarantees one key per
// role.
func (l *Layout) StartFor(r Role) (string, bool) {
	for _, key := range slices.Sorted(maps.Keys(l.Starts)) {
		if parsed, err := ParseRole(key); err == nil && parsed == r {
			return l.Starts[key], true
		}
	}
	return "", false
}

// Shuffled returns a copy with tile names randomly permuted over the same cells.
func (l *Layout) Shuffled(rng *rand.Rand) *Layout {
	out := *l
	out.Tiles = make([]TileEntry, len(l.Tiles))
	copy(out.Tiles, l.Tiles)
	rng.Shuffle(len(out.Tiles), func(i, j int) {
		out.Tiles[i].Name, out.Tiles[j].Name = out.Tiles[j].Name, out.Tiles[i].Name
	})
	return &out
}
