package game

import "fmt"

// Loss reasons reported by Evaluate.
const (
	ReasonRescueSunk   = "rescue tile sunk"
	ReasonWaterMaxed   = "water level reached maximum"
	ReasonTeamEscaped  = "all treasures collected and team on rescue tile"
	reasonSourcesSunk  = "both %s source tiles sunk"
	reasonStranded     = "%s stranded on sunken %s"
	reasonNoEscapeTile = "%s has nowhere to swim from %s"
)

// Outcome is the evaluator's verdict.
type Outcome struct {
	Over   bool
	Won    bool
	Reason string
}

// Evaluate checks loss conditions in priority order (first match wins), then
// the win condition. strandedCheck enables the occupied-sunk-tile check, which
// is only meaningful once the emergency queue has been exhausted.
func Evaluate(gs *GameState, strandedCheck bool) Outcome {
	if gs.Rescue.Sunk() {
		return Outcome{Over: true, Reason: ReasonRescueSunk}
	}

	for _, t := range AllTreasures {
		if gs.Collected.Has(t) {
			continue
		}
		pair := gs.Sources[t]
		if pair[0].Sunk() && pair[1].Sunk() {
			return Outcome{Over: true, Reason: fmt.Sprintf(reasonSourcesSunk, t)}
		}
	}

	if strandedCheck {
		for _, p := range gs.Players {
			if p.Tile.Sunk() && len(EscapeTargets(p.Role, gs.Board, p.Tile)) == 0 {
				return Outcome{Over: true, Reason: fmt.Sprintf(reasonStranded, p, p.Tile.Name)}
			}
		}
	}

	if gs.WaterLevel >= gs.MaxWaterLevel {
		return Outcome{Over: true, Reason: ReasonWaterMaxed}
	}

	if gs.Collected.Size() == len(AllTreasures) {
		for _, p := range gs.Players {
			if p.Tile != gs.Rescue {
				return Outcome{}
			}
		}
		return Outcome{Over: true, Won: true, Reason: ReasonTeamEscaped}
	}
	return Outcome{}
}
