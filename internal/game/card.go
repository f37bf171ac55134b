package game

import "fmt"

type CardKind int

const (
	CardTreasure CardKind = iota
	CardFlood
	CardSandbag
	CardHelicopter
	CardWaterRise
)

func (k CardKind) String() string {
	switch k {
	case CardTreasure:
		return "Treasure"
	case CardFlood:
		return "Flood"
	case CardSandbag:
		return "Sandbag"
	case CardHelicopter:
		return "Helicopter Lift"
	case CardWaterRise:
		return "Water Rise"
	default:
		return "Unknown"
	}
}

// Card is a tagged union over the five card kinds. Treasure is meaningful only
// for CardTreasure and Tile only for CardFlood. Two treasure cards of the same
// type are interchangeable for collection but keep distinct IDs.
type Card struct {
	ID       int
	Kind     CardKind
	Treasure Treasure
	Tile     *Tile
}

// Name returns the display name of the card.
func (c *Card) Name() string {
	switch c.Kind {
	case CardTreasure:
		return fmt.Sprintf("%s Treasure", c.Treasure)
	case CardFlood:
		return fmt.Sprintf("Flood: %s", c.Tile.Name)
	default:
		return c.Kind.String()
	}
}

func (c *Card) String() string {
	if c == nil {
		return "(none)"
	}
	return c.Name()
}

// IsSpecial reports whether the card can be played from hand (Sandbag, Helicopter).
func (c *Card) IsSpecial() bool {
	return c.Kind == CardSandbag || c.Kind == CardHelicopter
}

// cardIDs hands out unique card IDs within one game.
type cardIDs struct {
	next int
}

func (ids *cardIDs) newCard(kind CardKind) *Card {
	ids.next++
	return &Card{ID: ids.next, Kind: kind}
}
