package game

import (
	"context"

	"github.com/peterkuimelis/sinkisle/internal/log"
)

// floodEscalation draws FloodCount(water level) flood cards, then resolves
// emergency moves and checks the outcome. The evaluator runs after every
// draw so a loss stops the sequence on the card that caused it.
func (g *Game) floodEscalation(ctx context.Context) {
	gs := g.State
	n := FloodCount(gs.WaterLevel)
	for i := 0; i < n; i++ {
		c, ok := gs.FloodDeck.Draw()
		if !ok {
			g.log(log.NewDeckExhaustedEvent(gs.Turn, g.phase(), "Flood"))
			break
		}
		g.floodTile(c.Tile, g.phase())
		gs.FloodDeck.Discard(c)
		if g.evaluate(false) {
			return
		}
	}

	g.resolveEmergencies(ctx)
	if gs.Over {
		return
	}
	g.evaluate(true)
}

func (g *Game) floodTile(t *Tile, phase string) {
	state, err := g.State.Board.Flood(t)
	if err != nil {
		return
	}
	if state == TileSunk {
		g.log(log.NewTileSunkEvent(g.State.Turn, phase, t.Name))
	} else {
		g.log(log.NewTileFloodedEvent(g.State.Turn, phase, t.Name))
	}
}

// raiseWater resolves one Water Rise card: the level climbs, and the flood
// discard pile is shuffled back on top of the flood draw pile.
func (g *Game) raiseWater(player int) {
	gs := g.State
	old := gs.WaterLevel
	gs.WaterLevel = min(old+1, gs.MaxWaterLevel)
	g.log(log.NewWaterRiseEvent(gs.Turn, g.phase(), player, old, gs.WaterLevel))
	if n := gs.FloodDeck.RecycleToTop(); n > 0 {
		g.log(log.NewShuffleEvent(gs.Turn, g.phase(), "Flood"))
	}
	if gs.WaterLevel >= gs.MaxWaterLevel {
		g.finish(Outcome{Over: true, Reason: ReasonWaterMaxed})
	}
}
