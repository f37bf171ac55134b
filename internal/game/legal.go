package game

import "fmt"

// AvailableActions lists the requests player could make right now, with
// targets left open for the choice provider. Rejections are still possible
// (for example every recipient's hand being full).
func (g *Game) AvailableActions(player int) []Request {
	gs := g.State
	if gs.Over || player < 0 || player >= len(gs.Players) {
		return nil
	}
	p := gs.Players[player]

	var actions []Request
	if gs.Phase == PhaseDiscard {
		if player != gs.Current {
			return nil
		}
		for _, c := range p.Hand {
			actions = append(actions, Request{
				Player: player, Kind: ActionDiscard, CardID: c.ID,
				Desc: fmt.Sprintf("Discard %s", c.Name()),
			})
		}
		return actions
	}

	if player == gs.Current && p.Actions > 0 {
		b := gs.Board
		if len(MoveTargets(p.Role, b, p.Tile)) > 0 {
			actions = append(actions, Request{Player: player, Kind: ActionMove, Desc: "Move"})
		}
		if len(ShoreTargets(p.Role, b, p.Tile)) > 0 {
			actions = append(actions, Request{Player: player, Kind: ActionShoreUp, Desc: "Shore up"})
		}
		if len(g.giveRecipients(p)) > 0 && len(p.CardsOfKind(CardTreasure)) > 0 {
			actions = append(actions, Request{Player: player, Kind: ActionGiveCard, Desc: "Give a treasure card"})
		}
		if tr, ok := gs.SourceOf(p.Tile); ok && !gs.HasCollected(tr) && len(p.TreasureCards(tr)) >= g.Rules.CardsToCapture {
			actions = append(actions, Request{Player: player, Kind: ActionCaptureTreasure, Desc: fmt.Sprintf("Capture the %s treasure", tr)})
		}
		switch TraitsOf(p.Role).Special {
		case AbilityFly:
			if !p.FlightUsed && len(FlightTargets(b, p.Tile)) > 0 {
				actions = append(actions, Request{Player: player, Kind: ActionSpecial, Desc: "Fly anywhere"})
			}
		case AbilityNavigate:
			if g.canNavigate(p) {
				actions = append(actions, Request{Player: player, Kind: ActionSpecial, Desc: "Navigate another player"})
			}
		}
		actions = append(actions, Request{Player: player, Kind: ActionSkip, Desc: "End turn"})
	}

	for _, c := range p.SpecialCards() {
		actions = append(actions, Request{
			Player: player, Kind: ActionPlayCard, CardID: c.ID,
			Desc: fmt.Sprintf("Play %s", c.Name()),
		})
	}
	return actions
}

// canNavigate reports whether some other player has a tile to be pushed to.
func (g *Game) canNavigate(p *Player) bool {
	for _, o := range g.State.Players {
		if o != p && len(orthogonalTargets(g.State.Board, o.Tile)) > 0 {
			return true
		}
	}
	return false
}
