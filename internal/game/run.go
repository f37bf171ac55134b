package game

import (
	"context"
	"fmt"
)

// Controller drives a whole game: it picks actions for the active seat,
// answers prompts and receives events.
type Controller interface {
	ChoiceProvider
	Notifier

	// ChooseAction presents the available actions and waits for a pick.
	ChooseAction(ctx context.Context, state *GameState, player int, actions []Request) (int, error)
}

// ReasonTurnLimit is reported when Play stops at maxTurns.
const ReasonTurnLimit = "turn limit reached"

const maxRejections = 100

// Play runs the game to completion, asking ctrl for every action of the
// active seat. Card plays open to the other seats are offered alongside, so a
// hot-seat controller can sandbag or lift out of turn. maxTurns of 0 means no
// limit. Rejected actions (including
// cancelled prompts) are logged and the seat is asked again. If the game was
// created without a choice provider, ctrl also answers prompts and receives
// events.
func Play(ctx context.Context, g *Game, ctrl Controller, maxTurns int) (Outcome, error) {
	if g.choices == nil {
		g.choices = ctrl
		g.notifiers = append(g.notifiers, ctrl)
	}
	gs := g.State
	rejected := 0
	for !gs.Over {
		if maxTurns > 0 && gs.Turn > maxTurns {
			return Outcome{Reason: ReasonTurnLimit}, nil
		}
		if err := ctx.Err(); err != nil {
			return g.Outcome(), err
		}

		player := g.ActivePlayer()
		actions := g.offeredActions(player)
		if len(actions) == 0 {
			return g.Outcome(), fmt.Errorf("no actions available for P%d", player+1)
		}
		idx, err := ctrl.ChooseAction(ctx, gs, player, actions)
		if err != nil {
			return g.Outcome(), err
		}
		if idx < 0 || idx >= len(actions) {
			idx = 0
		}
		if res := g.Act(ctx, actions[idx]); res.Accepted {
			rejected = 0
		} else if rejected++; rejected >= maxRejections {
			return g.Outcome(), fmt.Errorf("P%d: %d rejected actions in a row, last: %s", player+1, rejected, res.Detail)
		}
	}
	return g.Outcome(), nil
}

// offeredActions is the active seat's actions followed by every other seat's
// card plays, labelled with the seat.
func (g *Game) offeredActions(active int) []Request {
	actions := g.AvailableActions(active)
	for seat, p := range g.State.Players {
		if seat == active {
			continue
		}
		for _, a := range g.AvailableActions(seat) {
			if a.Kind != ActionPlayCard {
				continue
			}
			a.Desc = fmt.Sprintf("%s: %s", p, a)
			actions = append(actions, a)
		}
	}
	return actions
}
