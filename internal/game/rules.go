package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules holds the tunable constants of a game.
type Rules struct {
	StartingWaterLevel   int  `yaml:"starting_water_level" json:"starting_water_level"`
	MaxWaterLevel        int  `yaml:"max_water_level" json:"max_water_level"`
	ActionsPerTurn       int  `yaml:"actions_per_turn" json:"actions_per_turn"`
	HandLimit            int  `yaml:"hand_limit" json:"hand_limit"`
	TreasureCardsPerType int  `yaml:"treasure_cards_per_type" json:"treasure_cards_per_type"`
	HelicopterCards      int  `yaml:"helicopter_cards" json:"helicopter_cards"`
	WaterRiseCards       int  `yaml:"water_rise_cards" json:"water_rise_cards"`
	SandbagCards         int  `yaml:"sandbag_cards" json:"sandbag_cards"`
	CardsToCapture       int  `yaml:"cards_to_capture" json:"cards_to_capture"`
	InitialHandSize      int  `yaml:"initial_hand_size" json:"initial_hand_size"`
	TreasureDrawsPerTurn int  `yaml:"treasure_draws_per_turn" json:"treasure_draws_per_turn"`
	InitialFloodDraws    int  `yaml:"initial_flood_draws" json:"initial_flood_draws"`
	ShuffleTiles         bool `yaml:"shuffle_tiles" json:"shuffle_tiles"`
}

// DefaultRules returns the standard rules.
func DefaultRules() Rules {
	return Rules{
		StartingWaterLevel:   1,
		MaxWaterLevel:        10,
		ActionsPerTurn:       3,
		HandLimit:            5,
		TreasureCardsPerType: 5,
		HelicopterCards:      3,
		WaterRiseCards:       3,
		SandbagCards:         0,
		CardsToCapture:       4,
		InitialHandSize:      2,
		TreasureDrawsPerTurn: 2,
		InitialFloodDraws:    6,
	}
}

// LoadRules overlays a YAML file onto DefaultRules.
func LoadRules(path string) (Rules, error) {
	r := DefaultRules()
	data, err := os.ReadFile(path)
	if err != nil {
		return r, err
	}
	if err := yaml.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("parse rules YAML: %w", err)
	}
	return r, r.Validate()
}

// Validate rejects rule sets the engine cannot run.
func (r Rules) Validate() error {
	switch {
	case r.MaxWaterLevel < 2:
		return fmt.Errorf("rules: max_water_level must be at least 2, got %d", r.MaxWaterLevel)
	case r.StartingWaterLevel < 1 || r.StartingWaterLevel >= r.MaxWaterLevel:
		return fmt.Errorf("rules: starting_water_level must be in [1,%d), got %d", r.MaxWaterLevel, r.StartingWaterLevel)
	case r.ActionsPerTurn < 1:
		return fmt.Errorf("rules: actions_per_turn must be positive, got %d", r.ActionsPerTurn)
	case r.HandLimit < 1:
		return fmt.Errorf("rules: hand_limit must be positive, got %d", r.HandLimit)
	case r.CardsToCapture < 1 || r.CardsToCapture > r.TreasureCardsPerType:
		return fmt.Errorf("rules: cards_to_capture must be in [1,%d], got %d", r.TreasureCardsPerType, r.CardsToCapture)
	case r.HelicopterCards < 0 || r.WaterRiseCards < 0 || r.SandbagCards < 0:
		return fmt.Errorf("rules: special card counts must not be negative")
	case r.InitialHandSize < 0 || r.TreasureDrawsPerTurn < 0 || r.InitialFloodDraws < 0:
		return fmt.Errorf("rules: draw counts must not be negative")
	}
	return nil
}

// FloodCount is the number of flood cards drawn at the end of a turn for the given water level.
func FloodCount(waterLevel int) int {
	switch {
	case waterLevel <= 2:
		return 2
	case waterLevel <= 5:
		return 3
	case waterLevel <= 7:
		return 4
	default:
		return 5
	}
}
