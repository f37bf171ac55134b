package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/sinkisle/internal/log"
)

func TestNewGameSetup(t *testing.T) {
	g, _, logger := newTestGame(t, func() *Rules { r := DefaultRules(); return &r }(), RolePilot, RoleDiver)
	gs := g.State

	assert.Equal(t, 1, gs.Turn)
	assert.Equal(t, 0, gs.Current)
	assert.Equal(t, PhaseAwaitingAction, gs.Phase)
	assert.Equal(t, 1, gs.WaterLevel)
	assert.Equal(t, 3, gs.CurrentPlayer().Actions)
	assert.Equal(t, "Fools' Landing", gs.Players[0].Tile.Name)
	assert.Equal(t, "Iron Gate", gs.Players[1].Tile.Name)
	assert.Equal(t, "Fools' Landing", gs.Rescue.Name)
	assert.Equal(t, 6, gs.Board.Count(TileFlooded))

	for _, p := range gs.Players {
		require.Len(t, p.Hand, 2)
		for _, c := range p.Hand {
			assert.NotEqual(t, CardWaterRise, c.Kind)
		}
	}
	assert.Equal(t, 26, gs.TreasureDeck.Size()+gs.HeldCards())
	assert.False(t, gs.TreasureDeck.InitialDeal())

	require.NotEmpty(t, logger.Events())
	assert.Equal(t, log.EventNewTurn, logger.LastEvent().Type)
}

func TestNewGameRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"one player", Config{Players: 1}},
		{"five players", Config{Players: 5}},
		{"role count mismatch", Config{Players: 2, Roles: []Role{RolePilot}}},
		{"duplicate role", Config{Players: 2, Roles: []Role{RoleDiver, RoleDiver}}},
		{"bad rules", Config{Players: 2, Rules: &Rules{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGame(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestNewGameRandomRolesAreDistinct(t *testing.T) {
	g, err := NewGame(Config{Players: 4, Seed: 42})
	require.NoError(t, err)

	seen := map[Role]bool{}
	for _, p := range g.State.Players {
		assert.False(t, seen[p.Role], "%s dealt twice", p.Role)
		seen[p.Role] = true
	}
}

func TestSameSeedSameGame(t *testing.T) {
	a, err := NewGame(Config{Players: 3, Seed: 99})
	require.NoError(t, err)
	b, err := NewGame(Config{Players: 3, Seed: 99})
	require.NoError(t, err)

	for i := range a.State.Players {
		assert.Equal(t, a.State.Players[i].Role, b.State.Players[i].Role)
		assert.Equal(t, len(a.State.Players[i].Hand), len(b.State.Players[i].Hand))
	}
	for i, tile := range a.State.Board.Tiles() {
		assert.Equal(t, tile.State, b.State.Board.Tiles()[i].State, tile.Name)
	}
}

func TestEmergencyQueue(t *testing.T) {
	q := NewEmergencyQueue()
	assert.True(t, q.Enqueue(2))
	assert.False(t, q.Enqueue(2), "a player is queued once")
	assert.True(t, q.Enqueue(0))
	assert.Equal(t, []int{2, 0}, q.Pending())

	p, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, 2, p)
	assert.Equal(t, 1, q.Len())
	assert.True(t, q.Enqueue(2), "popped players may be queued again")

	q.Clear()
	assert.Equal(t, 0, q.Len())
	_, ok = q.Peek()
	assert.False(t, ok)
}

func TestEvaluate(t *testing.T) {
	t.Run("rescue sunk beats water", func(t *testing.T) {
		g, _, _ := newTestGame(t, nil, RolePilot, RoleDiver)
		g.State.Rescue.State = TileSunk
		g.State.WaterLevel = g.State.MaxWaterLevel
		out := Evaluate(g.State, true)
		assert.True(t, out.Over)
		assert.Equal(t, ReasonRescueSunk, out.Reason)
	})

	t.Run("both sources of an uncollected treasure", func(t *testing.T) {
		g, _, _ := newTestGame(t, nil, RolePilot, RoleDiver)
		setState(t, g, TileSunk, "Cave of Embers", "Cave of Shadows")
		out := Evaluate(g.State, false)
		assert.True(t, out.Over)
		assert.Equal(t, "both FIRE source tiles sunk", out.Reason)

		g.State.Collected.Put(TreasureFire)
		assert.False(t, Evaluate(g.State, false).Over, "a captured treasure no longer needs its sources")
	})

	t.Run("stranded only when asked", func(t *testing.T) {
		g, _, _ := newTestGame(t, nil, RolePilot, RoleMessenger)
		placeAt(t, g, 1, "Cliffs of Abandon")
		setState(t, g, TileSunk, "Cliffs of Abandon", "Breakers Bridge", "Bronze Gate")
		assert.False(t, Evaluate(g.State, false).Over)
		out := Evaluate(g.State, true)
		assert.True(t, out.Over)
		assert.Contains(t, out.Reason, "stranded")
	})

	t.Run("water", func(t *testing.T) {
		g, _, _ := newTestGame(t, nil, RolePilot, RoleDiver)
		g.State.WaterLevel = g.State.MaxWaterLevel
		assert.Equal(t, ReasonWaterMaxed, Evaluate(g.State, false).Reason)
	})

	t.Run("win needs everyone home", func(t *testing.T) {
		g, _, _ := newTestGame(t, nil, RolePilot, RoleDiver)
		for _, tr := range AllTreasures {
			g.State.Collected.Put(tr)
		}
		assert.False(t, Evaluate(g.State, false).Over)
		placeAt(t, g, 1, "Fools' Landing")
		out := Evaluate(g.State, false)
		assert.True(t, out.Won)
		assert.Equal(t, ReasonTeamEscaped, out.Reason)
	})
}

func TestPlayRunsToCompletion(t *testing.T) {
	ctrl := NewScriptedController(t)
	g, err := NewGame(Config{Players: 4, Seed: 3})
	require.NoError(t, err)

	out, err := Play(context.Background(), g, ctrl, 1000)
	require.NoError(t, err)
	assert.True(t, out.Over)
	assert.False(t, out.Won, "nobody shores up or captures anything")
	assert.NotEmpty(t, out.Reason)

	require.NotEmpty(t, ctrl.events)
	assert.Equal(t, log.EventLoss, ctrl.events[len(ctrl.events)-1].Type)
	assert.Equal(t, PhaseGameOver, g.State.Phase)
	assert.Nil(t, g.AvailableActions(g.ActivePlayer()))
}

func TestPlayOffersOtherSeatsCardPlays(t *testing.T) {
	g, _, logger := newTestGame(t, nil, RolePilot, RoleDiver)
	setState(t, g, TileFlooded, "Gold Gate")
	bag := giveCards(g, 1, CardSandbag, 0, 1)

	ctrl := NewScriptedController(t)
	ctrl.AddAction(ActionPlayCard)
	var offered []Request
	seats := map[int]int{}
	wrapped := &recordingController{ScriptedController: ctrl, onChoose: func(player int, actions []Request) {
		seats[player]++
		if offered == nil {
			offered = actions
		}
	}}

	_, err := Play(context.Background(), g, wrapped, 1)
	require.NoError(t, err)

	assert.Equal(t, map[int]int{0: 2}, seats, "only the active seat is asked")
	last := offered[len(offered)-1]
	assert.Equal(t, ActionPlayCard, last.Kind)
	assert.Equal(t, 1, last.Player)
	assert.Equal(t, bag[0].ID, last.CardID)
	assert.Contains(t, last.Desc, "P2 (Diver)")

	played := logger.EventsOfType(log.EventCardPlayed)
	require.Len(t, played, 1)
	assert.Equal(t, 1, played[0].Player)
	assert.Equal(t, 1, played[0].Turn)
	assert.Contains(t, played[0].Details, "Gold Gate")
	assert.Empty(t, g.State.Players[1].Hand)
}

// recordingController reports every ChooseAction call before delegating.
type recordingController struct {
	*ScriptedController
	onChoose func(player int, actions []Request)
}

func (rc *recordingController) ChooseAction(ctx context.Context, state *GameState, player int, actions []Request) (int, error) {
	rc.onChoose(player, actions)
	return rc.ScriptedController.ChooseAction(ctx, state, player, actions)
}

func TestPlayStopsAtTurnLimit(t *testing.T) {
	ctrl := NewScriptedController(t)
	g, _, _ := newTestGame(t, nil, RolePilot, RoleDiver)

	out, err := Play(context.Background(), g, ctrl, 2)
	require.NoError(t, err)
	assert.False(t, out.Over)
	assert.Equal(t, ReasonTurnLimit, out.Reason)
	assert.Equal(t, 3, g.State.Turn)
}

func TestPlayHonoursContext(t *testing.T) {
	ctx, cancelFn := context.WithCancel(context.Background())
	cancelFn()
	g, _, _ := newTestGame(t, nil, RolePilot, RoleDiver)

	_, err := Play(ctx, g, NewScriptedController(t), 0)
	assert.ErrorIs(t, err, context.Canceled)
}
