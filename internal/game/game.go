package game

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/peterkuimelis/sinkisle/internal/log"
)

// ChoiceProvider is implemented by the UI layer. The engine calls it whenever
// a player has to pick one of several options and blocks until it returns.
// Returning ErrCancelled (or any error) aborts the triggering action.
type ChoiceProvider interface {
	ChooseOption(ctx context.Context, state *GameState, player int, prompt string, options []string) (int, error)
}

// Notifier receives every game event as it happens.
type Notifier interface {
	Notify(ctx context.Context, event log.GameEvent) error
}

// Config holds configuration for creating a new game.
type Config struct {
	Players   int       // 2–4
	Roles     []Role    // fixed roles by seat (nil = random permutation)
	Rules     *Rules    // nil = DefaultRules()
	Layout    *Layout   // nil = ClassicLayout()
	Seed      uint64    // RNG seed (0 for random)
	NoShuffle bool      // skip all shuffles (for deterministic tests)
	Logger    log.EventLogger
	Choices   ChoiceProvider
	Notifiers []Notifier
}

// Game owns a GameState and is its only writer.
type Game struct {
	State  *GameState
	Rules  Rules
	Layout *Layout
	Logger log.EventLogger

	choices   ChoiceProvider
	notifiers []Notifier
	ids       cardIDs
	rng       *rand.Rand
	ctx       context.Context
}

// NewGame builds the board and decks, seats the players, deals the opening
// hands and floods the opening tiles.
func NewGame(cfg Config) (*Game, error) {
	rules := DefaultRules()
	if cfg.Rules != nil {
		rules = *cfg.Rules
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if cfg.Players < MinPlayers || cfg.Players > MaxPlayers {
		return nil, fmt.Errorf("player count must be %d–%d, got %d", MinPlayers, MaxPlayers, cfg.Players)
	}
	if cfg.Roles != nil && len(cfg.Roles) != cfg.Players {
		return nil, fmt.Errorf("got %d roles for %d players", len(cfg.Roles), cfg.Players)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	var deckRNG *rand.Rand
	if !cfg.NoShuffle {
		deckRNG = rng
	}

	layout := cfg.Layout
	if layout == nil {
		layout = ClassicLayout()
	}
	if rules.ShuffleTiles && !cfg.NoShuffle {
		layout = layout.Shuffled(rng)
	}

	g := &Game{
		Rules:     rules,
		Layout:    layout,
		Logger:    logger,
		choices:   cfg.Choices,
		notifiers: cfg.Notifiers,
		rng:       rng,
		ctx:       context.Background(),
	}

	board, err := NewBoard(layout, g.onTileSunk)
	if err != nil {
		return nil, err
	}
	gs := NewGameState(board)
	g.State = gs
	gs.WaterLevel = rules.StartingWaterLevel
	gs.MaxWaterLevel = rules.MaxWaterLevel
	gs.Rescue = board.TileByName(layout.Rescue)
	for _, t := range AllTreasures {
		names, err := layout.treasureSources(t)
		if err != nil {
			return nil, err
		}
		gs.Sources[t] = [2]*Tile{board.TileByName(names[0]), board.TileByName(names[1])}
	}

	gs.FloodDeck = NewFloodDeck(board.Tiles(), &g.ids, deckRNG)
	gs.TreasureDeck = NewTreasureDeck(rules, &g.ids, deckRNG)
	gs.FloodDeck.OnReshuffle = func() { g.log(log.NewShuffleEvent(gs.Turn, g.phase(), "Flood")) }
	gs.TreasureDeck.OnReshuffle = func() { g.log(log.NewShuffleEvent(gs.Turn, g.phase(), "Treasure")) }

	roles := cfg.Roles
	if roles == nil {
		roles = g.assignRoles(cfg.Players, cfg.NoShuffle)
	}
	seen := make(map[Role]bool, len(roles))
	for i, r := range roles {
		if seen[r] {
			return nil, fmt.Errorf("role %s assigned twice", r)
		}
		seen[r] = true
		start, _ := layout.StartFor(r)
		gs.Players = append(gs.Players, &Player{
			Index: i,
			Role:  r,
			Tile:  board.TileByName(start),
		})
	}

	g.dealOpeningHands()
	g.floodOpeningTiles()

	gs.Current = 0
	gs.Phase = PhaseAwaitingAction
	gs.CurrentPlayer().ResetTurn(rules.ActionsPerTurn)
	g.log(log.NewTurnEvent(gs.Turn, gs.Current, gs.CurrentPlayer().Role.String()))

	return g, nil
}

// assignRoles draws a permutation of roles without replacement.
func (g *Game) assignRoles(n int, noShuffle bool) []Role {
	pool := append([]Role(nil), AllRoles...)
	if !noShuffle {
		g.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	}
	return pool[:n]
}

func (g *Game) dealOpeningHands() {
	gs := g.State
	for _, p := range gs.Players {
		for i := 0; i < g.Rules.InitialHandSize; i++ {
			c, ok := gs.TreasureDeck.DrawInitialCard()
			if !ok {
				g.log(log.NewDeckExhaustedEvent(gs.Turn, "Setup", "Treasure"))
				break
			}
			p.AddToHand(c)
			g.log(log.NewDrawEvent(gs.Turn, "Setup", p.Index, c.Name()))
		}
	}
	gs.TreasureDeck.EndInitialDeal()
}

// floodOpeningTiles floods distinct tiles from a fresh flood deck; capping
// at the tile count keeps every draw unique so nothing sinks during setup.
func (g *Game) floodOpeningTiles() {
	gs := g.State
	n := min(g.Rules.InitialFloodDraws, len(gs.Board.Tiles()))
	for i := 0; i < n; i++ {
		c, ok := gs.FloodDeck.Draw()
		if !ok {
			return
		}
		g.floodTile(c.Tile, "Setup")
		gs.FloodDeck.Discard(c)
	}
}

// onTileSunk is the board's sink callback: every occupant is queued for an
// emergency move.
func (g *Game) onTileSunk(t *Tile) {
	for _, p := range g.State.PlayersOn(t) {
		g.State.Emergency.Enqueue(p.Index)
	}
}

// Outcome returns the current verdict.
func (g *Game) Outcome() Outcome {
	gs := g.State
	return Outcome{Over: gs.Over, Won: gs.Won, Reason: gs.Result}
}

// ActivePlayer returns the seat whose input the engine is waiting for.
func (g *Game) ActivePlayer() int {
	return g.State.Current
}

// finish ends the game. A loss clears any pending emergency moves.
func (g *Game) finish(out Outcome) {
	gs := g.State
	if gs.Over {
		return
	}
	gs.Over = true
	gs.Won = out.Won
	gs.Result = out.Reason
	if !out.Won {
		gs.Emergency.Clear()
	}
	phase := g.phase()
	gs.Phase = PhaseGameOver
	if out.Won {
		g.log(log.NewWinEvent(gs.Turn, phase, out.Reason))
	} else {
		g.log(log.NewLossEvent(gs.Turn, phase, out.Reason))
	}
}

// evaluate runs the win/lose evaluator and ends the game on a verdict.
func (g *Game) evaluate(strandedCheck bool) bool {
	if out := Evaluate(g.State, strandedCheck); out.Over {
		g.finish(out)
		return true
	}
	return false
}

func (g *Game) phase() string {
	return g.State.Phase.String()
}

// log emits a game event through the logger and every notifier.
func (g *Game) log(event log.GameEvent) {
	g.Logger.Log(event)
	// pick up the sequence number the logger assigned
	if evs := g.Logger.Events(); len(evs) > 0 {
		event = evs[len(evs)-1]
	}
	// Notification failures never affect the rules.
	for _, n := range g.notifiers {
		_ = n.Notify(g.ctx, event)
	}
}
