package game

import (
	"context"
	"fmt"

	"github.com/peterkuimelis/sinkisle/internal/log"
)

// endTurn runs the end-of-turn sequence for the current player: treasure
// draws, Water Rise resolution, then either the discard phase or the flood.
func (g *Game) endTurn(ctx context.Context) {
	gs := g.State
	gs.Phase = PhaseEndOfTurn
	p := gs.CurrentPlayer()

	for i := 0; i < g.Rules.TreasureDrawsPerTurn; i++ {
		c, ok := gs.TreasureDeck.Draw()
		if !ok {
			// Running out of treasure cards is not a loss.
			g.log(log.NewDeckExhaustedEvent(gs.Turn, g.phase(), "Treasure"))
			break
		}
		p.AddToHand(c)
		g.log(log.NewDrawEvent(gs.Turn, g.phase(), p.Index, c.Name()))
	}

	for _, c := range p.CardsOfKind(CardWaterRise) {
		p.RemoveFromHand(c)
		gs.TreasureDeck.Discard(c)
		g.raiseWater(p.Index)
		if gs.Over {
			return
		}
	}

	if owed := len(p.Hand) - g.Rules.HandLimit; owed > 0 {
		gs.Phase = PhaseDiscard
		gs.DiscardsOwed = owed
		g.log(log.NewHandLimitEvent(gs.Turn, g.phase(), p.Index, len(p.Hand), owed))
		return
	}
	g.finishTurn(ctx)
}

// discard drops one card during the discard phase. Any held card counts.
func (g *Game) discard(ctx context.Context, req Request) error {
	gs := g.State
	p := gs.CurrentPlayer()
	card, err := g.chooseCard(ctx, p.Index, fmt.Sprintf("Discard down to %d (%d more)", g.Rules.HandLimit, gs.DiscardsOwed), p.Hand, req.CardID)
	if err != nil {
		return err
	}
	p.RemoveFromHand(card)
	gs.TreasureDeck.Discard(card)
	gs.DiscardsOwed--
	g.log(log.NewDiscardEvent(gs.Turn, g.phase(), p.Index, card.Name()))

	if gs.DiscardsOwed == 0 {
		gs.Phase = PhaseEndOfTurn
		g.finishTurn(ctx)
	}
	return nil
}

// finishTurn floods the island and hands play to the next seat.
func (g *Game) finishTurn(ctx context.Context) {
	g.floodEscalation(ctx)
	if g.State.Over {
		return
	}
	g.advance()
}

func (g *Game) advance() {
	gs := g.State
	gs.Current = (gs.Current + 1) % len(gs.Players)
	gs.Turn++
	gs.Phase = PhaseAwaitingAction
	gs.DiscardsOwed = 0
	p := gs.CurrentPlayer()
	p.ResetTurn(g.Rules.ActionsPerTurn)
	g.log(log.NewTurnEvent(gs.Turn, p.Index, p.Role.String()))
}
