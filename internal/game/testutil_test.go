package game

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/sinkisle/internal/log"
)

const cancel = "<cancel>"

// ScriptedChoices is a ChoiceProvider that answers prompts from a script.
// Each answer is matched as a substring against the offered options; when the
// script runs out, the first option is picked.
type ScriptedChoices struct {
	t       *testing.T
	answers []string
	pos     int

	Prompts []string
}

func NewScriptedChoices(t *testing.T) *ScriptedChoices {
	return &ScriptedChoices{t: t}
}

// Answer queues answers. Use cancel to back out of a prompt.
func (sc *ScriptedChoices) Answer(answers ...string) *ScriptedChoices {
	sc.answers = append(sc.answers, answers...)
	return sc
}

func (sc *ScriptedChoices) ChooseOption(ctx context.Context, state *GameState, player int, prompt string, options []string) (int, error) {
	sc.Prompts = append(sc.Prompts, prompt)
	if sc.pos >= len(sc.answers) {
		return 0, nil
	}
	answer := sc.answers[sc.pos]
	sc.pos++
	if answer == cancel {
		return -1, ErrCancelled
	}
	for i, o := range options {
		if strings.Contains(o, answer) {
			return i, nil
		}
	}
	sc.t.Errorf("prompt %q: no option matches %q in %v", prompt, answer, options)
	return -1, ErrCancelled
}

// ScriptedController picks actions by kind, falling back to ending the turn
// (or the first action offered when that is not possible).
type ScriptedController struct {
	*ScriptedChoices
	kinds  []ActionKind
	pos    int
	events []log.GameEvent
}

func NewScriptedController(t *testing.T) *ScriptedController {
	return &ScriptedController{ScriptedChoices: NewScriptedChoices(t)}
}

func (sc *ScriptedController) AddAction(kind ActionKind) *ScriptedController {
	sc.kinds = append(sc.kinds, kind)
	return sc
}

func (sc *ScriptedController) ChooseAction(ctx context.Context, state *GameState, player int, actions []Request) (int, error) {
	if sc.pos < len(sc.kinds) {
		for i, a := range actions {
			if a.Kind == sc.kinds[sc.pos] {
				sc.pos++
				return i, nil
			}
		}
	}
	for i, a := range actions {
		if a.Kind == ActionSkip {
			return i, nil
		}
	}
	return 0, nil
}

func (sc *ScriptedController) Notify(ctx context.Context, event log.GameEvent) error {
	sc.events = append(sc.events, event)
	return nil
}

// quietRules starts with empty hands, a dry island and a treasure deck with
// no special cards, so tests control every card that matters. With
// NoShuffle the treasure deck deals WATER cards first.
func quietRules() *Rules {
	r := DefaultRules()
	r.InitialHandSize = 0
	r.InitialFloodDraws = 0
	r.WaterRiseCards = 0
	r.HelicopterCards = 0
	return &r
}

// newTestGame creates an unshuffled classic game with the given roles seated
// in order.
func newTestGame(t *testing.T, rules *Rules, roles ...Role) (*Game, *ScriptedChoices, *log.MemoryLogger) {
	t.Helper()
	if rules == nil {
		rules = quietRules()
	}
	choices := NewScriptedChoices(t)
	logger := log.NewMemoryLogger()
	g, err := NewGame(Config{
		Players:   len(roles),
		Roles:     roles,
		Rules:     rules,
		NoShuffle: true,
		Logger:    logger,
		Choices:   choices,
	})
	require.NoError(t, err)
	return g, choices, logger
}

func tileNamed(t *testing.T, g *Game, name string) *Tile {
	t.Helper()
	tile := g.State.Board.TileByName(name)
	require.NotNil(t, tile, "no tile %q", name)
	return tile
}

func placeAt(t *testing.T, g *Game, player int, name string) {
	t.Helper()
	g.State.Players[player].Tile = tileNamed(t, g, name)
}

func setState(t *testing.T, g *Game, state TileState, names ...string) {
	t.Helper()
	for _, n := range names {
		tileNamed(t, g, n).State = state
	}
}

// giveCards puts fresh cards straight into a player's hand.
func giveCards(g *Game, player int, kind CardKind, treasure Treasure, n int) []*Card {
	var out []*Card
	for i := 0; i < n; i++ {
		c := g.ids.newCard(kind)
		c.Treasure = treasure
		g.State.Players[player].AddToHand(c)
		out = append(out, c)
	}
	return out
}

// stackFlood reorders the flood draw pile so the named tiles are drawn next,
// in the given order.
func stackFlood(t *testing.T, g *Game, names ...string) {
	t.Helper()
	fd := g.State.FloodDeck
	for i := len(names) - 1; i >= 0; i-- {
		tile := tileNamed(t, g, names[i])
		idx := -1
		for j, c := range fd.draw {
			if c.Tile == tile {
				idx = j
			}
		}
		require.GreaterOrEqual(t, idx, 0, "%s is not in the flood draw pile", names[i])
		c := fd.draw[idx]
		fd.draw = append(fd.draw[:idx], fd.draw[idx+1:]...)
		fd.draw = append(fd.draw, c)
	}
}

func act(g *Game, req Request) ActionResult {
	return g.Act(context.Background(), req)
}
