package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/peterkuimelis/sinkisle/internal/log"
)

// Act validates and applies one action request. All choices are gathered
// before anything changes, so a rejected request leaves the state untouched.
func (g *Game) Act(ctx context.Context, req Request) ActionResult {
	g.ctx = ctx
	err := g.act(ctx, req)
	if err != nil {
		g.log(log.NewActionRejectedEvent(g.State.Turn, g.phase(), req.Player, req.String(), err.Error()))
	}
	return resultOf(err)
}

func (g *Game) act(ctx context.Context, req Request) error {
	gs := g.State
	if gs.Over {
		return reject(KindIllegalRoleAction, "the game is over")
	}
	if req.Player < 0 || req.Player >= len(gs.Players) {
		return reject(KindInvalidTarget, "no player %d", req.Player+1)
	}

	if gs.Phase == PhaseDiscard {
		if req.Kind != ActionDiscard {
			return reject(KindIllegalRoleAction, "%s must discard %d card(s) first", gs.CurrentPlayer(), gs.DiscardsOwed)
		}
		if req.Player != gs.Current {
			return reject(KindNotCurrentPlayer, "%s is discarding", gs.CurrentPlayer())
		}
		return g.discard(ctx, req)
	}

	switch req.Kind {
	case ActionDiscard:
		return reject(KindIllegalRoleAction, "no discard is owed")
	case ActionPlayCard:
		return g.playCard(ctx, req)
	}

	if req.Player != gs.Current {
		return reject(KindNotCurrentPlayer, "it is %s's turn", gs.CurrentPlayer())
	}
	p := gs.CurrentPlayer()
	if p.Actions < 1 {
		return reject(KindInsufficientActionPoints, "%s has no actions left", p)
	}

	gs.Phase = PhaseActionResolving
	var err error
	switch req.Kind {
	case ActionMove:
		err = g.move(ctx, p, req)
	case ActionShoreUp:
		err = g.shoreUp(ctx, p, req)
	case ActionGiveCard:
		err = g.giveCard(ctx, p, req)
	case ActionCaptureTreasure:
		err = g.captureTreasure(p)
	case ActionSpecial:
		err = g.special(ctx, p, req)
	case ActionSkip:
		p.Actions = 0
	default:
		err = reject(KindIllegalRoleAction, "unknown action %d", int(req.Kind))
	}
	gs.Phase = PhaseAwaitingAction
	if err != nil {
		return err
	}

	if g.evaluate(false) {
		return nil
	}
	if p.Actions == 0 {
		g.endTurn(ctx)
	}
	return nil
}

func (g *Game) spend(p *Player) {
	p.Actions--
}

func (g *Game) move(ctx context.Context, p *Player, req Request) error {
	gs := g.State
	dest, err := g.chooseTile(ctx, p.Index, "Move to", MoveTargets(p.Role, gs.Board, p.Tile), req.Tile)
	if err != nil {
		return err
	}
	how := "moves"
	if TraitsOf(p.Role).Move == MoveSwim {
		how = "swims"
	}
	from := p.Tile
	p.Tile = dest
	g.spend(p)
	g.log(log.NewMoveEvent(gs.Turn, g.phase(), p.Index, from.Name, dest.Name, how))
	return nil
}

// shoreUp repairs one tile, or up to ShoreCapacity tiles for one action. A
// fully preset request (Tile without Tiles) repairs just the one tile.
func (g *Game) shoreUp(ctx context.Context, p *Player, req Request) error {
	gs := g.State
	targets := ShoreTargets(p.Role, gs.Board, p.Tile)
	first, err := g.chooseTile(ctx, p.Index, "Shore up", targets, req.Tile)
	if err != nil {
		return err
	}
	chosen := []*Tile{first}

	capacity := TraitsOf(p.Role).ShoreCapacity
	for i := 0; len(chosen) < capacity; i++ {
		var rest []*Tile
		for _, t := range targets {
			if !containsTile(chosen, t) {
				rest = append(rest, t)
			}
		}
		var next *Tile
		switch {
		case i < len(req.Tiles):
			next, err = g.chooseTile(ctx, p.Index, "Shore up another", rest, &req.Tiles[i])
		case req.Tile == nil:
			next, err = g.chooseOptionalTile(ctx, p.Index, "Shore up another", rest)
		}
		if err != nil {
			return err
		}
		if next == nil {
			break
		}
		chosen = append(chosen, next)
	}
	if len(req.Tiles) > len(chosen)-1 {
		return reject(KindIllegalRoleAction, "%s can shore up at most %d tile(s)", p, capacity)
	}

	for _, t := range chosen {
		if err := gs.Board.Repair(t); err != nil {
			return err
		}
		g.log(log.NewShoreUpEvent(gs.Turn, g.phase(), p.Index, t.Name))
	}
	g.spend(p)
	return nil
}

// giveRecipients returns the players p may hand a card to, ignoring hand size.
func (g *Game) giveRecipients(p *Player) []*Player {
	anywhere := TraitsOf(p.Role).GiveAnywhere
	var out []*Player
	for _, o := range g.State.Players {
		if o != p && (anywhere || o.Tile == p.Tile) {
			out = append(out, o)
		}
	}
	return out
}

func (g *Game) giveCard(ctx context.Context, p *Player, req Request) error {
	gs := g.State
	recipients := g.giveRecipients(p)

	var to *Player
	if req.Target != nil {
		t := *req.Target
		if t < 0 || t >= len(gs.Players) || t == p.Index {
			return reject(KindInvalidTarget, "cannot give a card to player %d", t+1)
		}
		o := gs.Players[t]
		found := false
		for _, r := range recipients {
			found = found || r == o
		}
		if !found {
			return reject(KindInvalidTarget, "%s is not on %s", o, p.Tile.Name)
		}
		to = o
	} else if len(recipients) == 0 {
		return reject(KindInvalidTarget, "no one shares %s with %s", p.Tile.Name, p)
	}

	if to != nil && len(to.Hand) >= g.Rules.HandLimit {
		return reject(KindHandFull, "%s already holds %d cards", to, len(to.Hand))
	}

	cards := p.CardsOfKind(CardTreasure)
	if req.CardID != 0 {
		c := p.CardByID(req.CardID)
		if c == nil {
			return reject(KindNoSuchCard, "%s does not hold card %d", p, req.CardID)
		}
		if c.Kind != CardTreasure {
			return reject(KindNoSuchCard, "only treasure cards can be given, not %s", c.Name())
		}
	}

	if to == nil {
		var open []*Player
		for _, r := range recipients {
			if len(r.Hand) < g.Rules.HandLimit {
				open = append(open, r)
			}
		}
		if len(open) == 0 {
			return reject(KindHandFull, "every eligible recipient holds %d cards", g.Rules.HandLimit)
		}
		if len(cards) == 0 {
			return reject(KindNoSuchCard, "%s holds no treasure cards", p)
		}
		var err error
		if to, err = g.choosePlayer(ctx, p.Index, "Give a card to", open, nil); err != nil {
			return err
		}
	}

	card, err := g.chooseCard(ctx, p.Index, fmt.Sprintf("Give which card to %s", to), cards, req.CardID)
	if err != nil {
		return err
	}

	p.RemoveFromHand(card)
	to.AddToHand(card)
	g.spend(p)
	g.log(log.NewGiveCardEvent(gs.Turn, g.phase(), p.Index, to.Index, card.Name()))
	return nil
}

// captureTreasure trades CardsToCapture matching cards for the treasure of
// the source tile the player stands on.
func (g *Game) captureTreasure(p *Player) error {
	gs := g.State
	tr, ok := gs.SourceOf(p.Tile)
	if !ok {
		return reject(KindInvalidTarget, "%s is not a treasure source", p.Tile.Name)
	}
	if gs.HasCollected(tr) {
		return reject(KindInvalidTarget, "the %s treasure is already captured", tr)
	}
	need := g.Rules.CardsToCapture
	cards := p.TreasureCards(tr)
	if len(cards) < need {
		return reject(KindNoSuchCard, "%s holds %d %s card(s), needs %d", p, len(cards), tr, need)
	}

	for _, c := range cards[:need] {
		p.RemoveFromHand(c)
	}
	gs.TreasureDeck.RecordRemoved(need)
	gs.Collected.Put(tr)
	g.spend(p)
	g.log(log.NewTreasureCapturedEvent(gs.Turn, g.phase(), p.Index, tr.String(), p.Tile.Name))
	return nil
}

func (g *Game) special(ctx context.Context, p *Player, req Request) error {
	switch TraitsOf(p.Role).Special {
	case AbilityFly:
		return g.fly(ctx, p, req)
	case AbilityNavigate:
		return g.navigate(ctx, p, req)
	default:
		return reject(KindIllegalRoleAction, "%s has no special action", p)
	}
}

func (g *Game) fly(ctx context.Context, p *Player, req Request) error {
	gs := g.State
	if p.FlightUsed {
		return reject(KindIllegalRoleAction, "%s has already flown this turn", p)
	}
	dest, err := g.chooseTile(ctx, p.Index, "Fly to", FlightTargets(gs.Board, p.Tile), req.Tile)
	if err != nil {
		return err
	}
	from := p.Tile
	p.Tile = dest
	p.FlightUsed = true
	g.spend(p)
	g.log(log.NewMoveEvent(gs.Turn, g.phase(), p.Index, from.Name, dest.Name, "flies"))
	return nil
}

// navigate moves another player up to two orthogonal steps for one of the
// Navigator's actions. The moved player's own budget is untouched.
func (g *Game) navigate(ctx context.Context, p *Player, req Request) error {
	gs := g.State
	var others []*Player
	for _, o := range gs.Players {
		if o != p {
			others = append(others, o)
		}
	}
	target, err := g.choosePlayer(ctx, p.Index, "Navigate which player", others, req.Target)
	if err != nil {
		return err
	}

	first, err := g.chooseTile(ctx, p.Index, fmt.Sprintf("Move %s to", target), orthogonalTargets(gs.Board, target.Tile), req.Tile)
	if err != nil {
		return err
	}

	var second *Tile
	onward := orthogonalTargets(gs.Board, first)
	switch {
	case len(req.Tiles) > 1:
		return reject(KindIllegalRoleAction, "a navigated player moves at most two tiles")
	case len(req.Tiles) == 1:
		second, err = g.chooseTile(ctx, p.Index, fmt.Sprintf("Move %s on to", target), onward, &req.Tiles[0])
	case req.Tile == nil:
		second, err = g.chooseOptionalTile(ctx, p.Index, fmt.Sprintf("Move %s on to", target), onward)
	}
	if err != nil {
		return err
	}

	path := []*Tile{first}
	if second != nil {
		path = append(path, second)
	}
	for _, t := range path {
		from := target.Tile
		target.Tile = t
		g.log(log.NewMoveEvent(gs.Turn, g.phase(), target.Index, from.Name, t.Name, "is navigated"))
	}
	g.spend(p)
	return nil
}

// playCard resolves a Sandbag or Helicopter Lift. Any player may play one at
// any time outside the discard phase, for free.
func (g *Game) playCard(ctx context.Context, req Request) error {
	gs := g.State
	p := gs.Players[req.Player]

	var card *Card
	if req.CardID != 0 {
		card = p.CardByID(req.CardID)
		if card == nil {
			return reject(KindNoSuchCard, "%s does not hold card %d", p, req.CardID)
		}
		if !card.IsSpecial() {
			return reject(KindIllegalRoleAction, "%s cannot be played", card.Name())
		}
	} else {
		var err error
		card, err = g.chooseCard(ctx, p.Index, "Play which card", p.SpecialCards(), 0)
		if err != nil {
			return err
		}
	}

	var err error
	switch card.Kind {
	case CardSandbag:
		err = g.sandbag(ctx, p, card, req)
	case CardHelicopter:
		err = g.helicopter(ctx, p, card, req)
	}
	if err != nil {
		return err
	}
	g.evaluate(false)
	return nil
}

func (g *Game) sandbag(ctx context.Context, p *Player, card *Card, req Request) error {
	gs := g.State
	flooded := gs.Board.FilterTiles(func(t *Tile) bool { return t.State == TileFlooded })
	t, err := g.chooseTile(ctx, p.Index, "Sandbag which tile", flooded, req.Tile)
	if err != nil {
		return err
	}
	if err := gs.Board.Repair(t); err != nil {
		return err
	}
	p.RemoveFromHand(card)
	gs.TreasureDeck.Discard(card)
	g.log(log.NewCardPlayedEvent(gs.Turn, g.phase(), p.Index, card.Name(), t.Name))
	g.log(log.NewShoreUpEvent(gs.Turn, g.phase(), p.Index, t.Name))
	return nil
}

// helicopter flies any set of players, wherever they stand, to one non-sunk
// tile. Passengers already on the destination stay put.
func (g *Game) helicopter(ctx context.Context, p *Player, card *Card, req Request) error {
	gs := g.State
	var movers []*Player
	if len(req.Movers) > 0 {
		for _, i := range req.Movers {
			if i < 0 || i >= len(gs.Players) {
				return reject(KindInvalidTarget, "no player %d", i+1)
			}
			m := gs.Players[i]
			for _, prev := range movers {
				if prev == m {
					return reject(KindInvalidTarget, "%s listed twice", m)
				}
			}
			movers = append(movers, m)
		}
	} else {
		var err error
		if movers, err = g.chooseMovers(ctx, p.Index); err != nil {
			return err
		}
	}

	dest, err := g.chooseTile(ctx, p.Index, "Fly to", liftTargets(gs.Board, movers), req.Tile)
	if err != nil {
		return err
	}

	p.RemoveFromHand(card)
	gs.TreasureDeck.Discard(card)
	names := make([]string, len(movers))
	for i, m := range movers {
		names[i] = m.String()
	}
	g.log(log.NewCardPlayedEvent(gs.Turn, g.phase(), p.Index, card.Name(),
		fmt.Sprintf("%s to %s", strings.Join(names, ", "), dest.Name)))
	for _, m := range movers {
		if m.Tile == dest {
			continue
		}
		from := m.Tile
		m.Tile = dest
		g.log(log.NewMoveEvent(gs.Turn, g.phase(), m.Index, from.Name, dest.Name, "flies"))
	}
	return nil
}

// liftTargets returns the non-sunk tiles that would move at least one of the
// passengers.
func liftTargets(b *Board, movers []*Player) []*Tile {
	return b.FilterTiles(func(t *Tile) bool {
		if t.Sunk() {
			return false
		}
		for _, m := range movers {
			if m.Tile != t {
				return true
			}
		}
		return false
	})
}

// chooseMovers asks for a first passenger, then for more passengers until the
// player is done.
func (g *Game) chooseMovers(ctx context.Context, player int) ([]*Player, error) {
	gs := g.State
	first, err := g.choosePlayer(ctx, player, "Who boards the helicopter", gs.Players, nil)
	if err != nil {
		return nil, err
	}
	movers := []*Player{first}
	for {
		var rest []*Player
		for _, o := range gs.Players {
			chosen := false
			for _, m := range movers {
				chosen = chosen || m == o
			}
			if !chosen {
				rest = append(rest, o)
			}
		}
		if len(rest) == 0 {
			return movers, nil
		}
		options := []string{"Done"}
		for _, o := range rest {
			options = append(options, o.String())
		}
		idx, err := g.ask(ctx, player, "Who else boards", options)
		if err != nil {
			return nil, err
		}
		if idx == 0 {
			return movers, nil
		}
		movers = append(movers, rest[idx-1])
	}
}
