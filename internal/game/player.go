package game

import "fmt"

// Player represents one adventurer's state.
type Player struct {
	Index   int
	Role    Role
	Tile    *Tile
	Hand    []*Card
	Actions int // remaining action points this turn

	// Per-turn tracking
	FlightUsed bool // Pilot has flown this turn
}

func (p *Player) String() string {
	return fmt.Sprintf("P%d (%s)", p.Index+1, p.Role)
}

// HandCount returns the number of cards in hand.
func (p *Player) HandCount() int {
	return len(p.Hand)
}

// CardByID returns the held card with the given ID, or nil.
func (p *Player) CardByID(id int) *Card {
	for _, c := range p.Hand {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// AddToHand appends a card to the hand.
func (p *Player) AddToHand(c *Card) {
	p.Hand = append(p.Hand, c)
}

// RemoveFromHand removes a card from the hand by ID. Returns false if not held.
func (p *Player) RemoveFromHand(card *Card) bool {
	for i, c := range p.Hand {
		if c.ID == card.ID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// CardsOfKind returns held cards of the given kind, in hand order.
func (p *Player) CardsOfKind(kind CardKind) []*Card {
	var out []*Card
	for _, c := range p.Hand {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// TreasureCards returns held treasure cards of type t, in hand order.
func (p *Player) TreasureCards(t Treasure) []*Card {
	var out []*Card
	for _, c := range p.Hand {
		if c.Kind == CardTreasure && c.Treasure == t {
			out = append(out, c)
		}
	}
	return out
}

// SpecialCards returns held Sandbag and Helicopter cards.
func (p *Player) SpecialCards() []*Card {
	var out []*Card
	for _, c := range p.Hand {
		if c.IsSpecial() {
			out = append(out, c)
		}
	}
	return out
}

// ResetTurn restores the action budget and clears per-turn flags.
func (p *Player) ResetTurn(actions int) {
	p.Actions = actions
	p.FlightUsed = false
}
