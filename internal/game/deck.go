package game

import "math/rand/v2"

// Deck is an ordered draw pile plus an ordered discard pile. The top of each
// pile is the last element. A nil rng leaves piles in construction order,
// which tests rely on for determinism.
type Deck[T any] struct {
	draw    []T
	discard []T
	rng     *rand.Rand

	// pinned cards stay in the discard pile when it is reshuffled.
	pinned func(T) bool

	// OnReshuffle, when set, is called after the discard pile is recycled.
	OnReshuffle func()
}

// NewDeck creates a deck whose draw pile holds cards (last element on top).
func NewDeck[T any](cards []T, rng *rand.Rand) *Deck[T] {
	d := &Deck[T]{rng: rng}
	d.draw = append(d.draw, cards...)
	return d
}

// Draw takes the top card. An empty draw pile is first refilled from the
// shuffled discard pile. ok is false only when both piles are empty.
func (d *Deck[T]) Draw() (card T, ok bool) {
	if len(d.draw) == 0 {
		d.Reshuffle()
	}
	if len(d.draw) == 0 {
		return card, false
	}
	card = d.draw[len(d.draw)-1]
	d.draw = d.draw[:len(d.draw)-1]
	return card, true
}

// Discard puts a card on top of the discard pile.
func (d *Deck[T]) Discard(card T) {
	d.discard = append(d.discard, card)
}

// Reshuffle moves every unpinned discard onto the draw pile beneath any
// remaining cards and shuffles the moved cards.
func (d *Deck[T]) Reshuffle() {
	moved := d.takeDiscards()
	if len(moved) == 0 {
		return
	}
	d.shuffle(moved)
	d.draw = append(moved, d.draw...)
	if d.OnReshuffle != nil {
		d.OnReshuffle()
	}
}

// Shuffle randomizes the draw pile.
func (d *Deck[T]) Shuffle() {
	d.shuffle(d.draw)
}

// PutBottom places a card at the bottom of the draw pile.
func (d *Deck[T]) PutBottom(card T) {
	d.draw = append([]T{card}, d.draw...)
}

// PutTop places cards on the draw pile; the last argument ends up on top.
func (d *Deck[T]) PutTop(cards ...T) {
	d.draw = append(d.draw, cards...)
}

// RecycleToTop shuffles the unpinned discard pile and stacks it on top of the draw pile.
func (d *Deck[T]) RecycleToTop() int {
	moved := d.takeDiscards()
	d.shuffle(moved)
	d.draw = append(d.draw, moved...)
	return len(moved)
}

// DrawCount returns the number of cards in the draw pile.
func (d *Deck[T]) DrawCount() int {
	return len(d.draw)
}

// DiscardCount returns the number of cards in the discard pile.
func (d *Deck[T]) DiscardCount() int {
	return len(d.discard)
}

// Size returns |draw| + |discard|.
func (d *Deck[T]) Size() int {
	return len(d.draw) + len(d.discard)
}

// DrawPile returns a copy of the draw pile, bottom first.
func (d *Deck[T]) DrawPile() []T {
	return append([]T(nil), d.draw...)
}

// DiscardPile returns a copy of the discard pile, bottom first.
func (d *Deck[T]) DiscardPile() []T {
	return append([]T(nil), d.discard...)
}

func (d *Deck[T]) takeDiscards() []T {
	var moved, kept []T
	for _, c := range d.discard {
		if d.pinned != nil && d.pinned(c) {
			kept = append(kept, c)
			continue
		}
		moved = append(moved, c)
	}
	d.discard = kept
	return moved
}

func (d *Deck[T]) shuffle(cards []T) {
	if d.rng == nil {
		return
	}
	d.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// --- TreasureDeck ---

// TreasureDeck holds treasure and special-action cards.
type TreasureDeck struct {
	*Deck[*Card]

	isFirstDraw bool
	removed     int // cards consumed by treasure captures
}

// NewTreasureDeck seeds the deck from the rules and shuffles it.
func NewTreasureDeck(rules Rules, ids *cardIDs, rng *rand.Rand) *TreasureDeck {
	var cards []*Card
	for _, t := range AllTreasures {
		for i := 0; i < rules.TreasureCardsPerType; i++ {
			c := ids.newCard(CardTreasure)
			c.Treasure = t
			cards = append(cards, c)
		}
	}
	for i := 0; i < rules.SandbagCards; i++ {
		cards = append(cards, ids.newCard(CardSandbag))
	}
	for i := 0; i < rules.HelicopterCards; i++ {
		cards = append(cards, ids.newCard(CardHelicopter))
	}
	for i := 0; i < rules.WaterRiseCards; i++ {
		cards = append(cards, ids.newCard(CardWaterRise))
	}

	td := &TreasureDeck{Deck: NewDeck(cards, rng), isFirstDraw: true}
	td.Shuffle()
	return td
}

// DrawInitialCard draws for the opening deal. Water Rise cards met on top are
// cycled to the bottom of the draw pile instead of being dealt. After
// EndInitialDeal it behaves exactly like Draw.
func (td *TreasureDeck) DrawInitialCard() (*Card, bool) {
	if !td.isFirstDraw {
		return td.Draw()
	}
	for attempts := td.Size(); attempts >= 0; attempts-- {
		c, ok := td.Draw()
		if !ok {
			return nil, false
		}
		if c.Kind != CardWaterRise {
			return c, true
		}
		td.PutBottom(c)
	}
	return nil, false
}

// EndInitialDeal permanently disables the opening-deal rule.
func (td *TreasureDeck) EndInitialDeal() {
	td.isFirstDraw = false
}

// InitialDeal reports whether the opening-deal rule is still active.
func (td *TreasureDeck) InitialDeal() bool {
	return td.isFirstDraw
}

// RecordRemoved notes cards taken out of the game by a treasure capture.
func (td *TreasureDeck) RecordRemoved(n int) {
	td.removed += n
}

// Removed returns how many cards have left the game through captures.
func (td *TreasureDeck) Removed() int {
	return td.removed
}

// --- FloodDeck ---

// FloodDeck holds one card per tile. Cards for sunk tiles stay in the
// discard pile for the rest of the game and are never reshuffled.
type FloodDeck struct {
	*Deck[*Card]
}

// NewFloodDeck seeds one flood card per tile and shuffles.
func NewFloodDeck(tiles []*Tile, ids *cardIDs, rng *rand.Rand) *FloodDeck {
	cards := make([]*Card, 0, len(tiles))
	for _, t := range tiles {
		c := ids.newCard(CardFlood)
		c.Tile = t
		cards = append(cards, c)
	}
	fd := &FloodDeck{Deck: NewDeck(cards, rng)}
	fd.pinned = func(c *Card) bool { return c.Tile.Sunk() }
	fd.Shuffle()
	return fd
}

// Retired returns the number of cards whose tile has sunk.
func (fd *FloodDeck) Retired() int {
	n := 0
	for _, c := range fd.discard {
		if c.Tile.Sunk() {
			n++
		}
	}
	return n
}
