package game

import (
	"context"
	"errors"
	"fmt"
)

const stopOption = "Stop"

// ask forwards a prompt to the choice provider. Any failure, including an
// out-of-range answer, is reported as a cancellation.
func (g *Game) ask(ctx context.Context, player int, prompt string, options []string) (int, error) {
	if g.choices == nil {
		return -1, reject(KindCancelled, "%s: no one to ask", prompt)
	}
	idx, err := g.choices.ChooseOption(ctx, g.State, player, prompt, options)
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			return -1, reject(KindCancelled, "%s", prompt)
		}
		return -1, &RuleError{Kind: KindCancelled, Msg: fmt.Sprintf("%s: %v", prompt, err)}
	}
	if idx < 0 || idx >= len(options) {
		return -1, reject(KindCancelled, "%s: option %d out of range", prompt, idx)
	}
	return idx, nil
}

// chooseTile resolves a tile either from a preset coordinate, which must be
// one of the candidates, or by asking.
func (g *Game) chooseTile(ctx context.Context, player int, prompt string, candidates []*Tile, preset *Coord) (*Tile, error) {
	if len(candidates) == 0 {
		return nil, reject(KindInvalidTarget, "%s: no legal tile", prompt)
	}
	if preset != nil {
		t, err := g.State.Board.Resolve(*preset)
		if err != nil {
			return nil, err
		}
		if !containsTile(candidates, t) {
			return nil, reject(KindInvalidTarget, "%s: %s is not a legal choice", prompt, t)
		}
		return t, nil
	}
	idx, err := g.ask(ctx, player, prompt, tileNames(candidates))
	if err != nil {
		return nil, err
	}
	return candidates[idx], nil
}

// chooseOptionalTile is chooseTile with a leading "Stop" option; nil means
// the player stopped.
func (g *Game) chooseOptionalTile(ctx context.Context, player int, prompt string, candidates []*Tile) (*Tile, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	options := append([]string{stopOption}, tileNames(candidates)...)
	idx, err := g.ask(ctx, player, prompt, options)
	if err != nil {
		return nil, err
	}
	if idx == 0 {
		return nil, nil
	}
	return candidates[idx-1], nil
}

// mustChooseTile is for prompts that cannot be declined. A cancelled prompt
// falls back to the first candidate.
func (g *Game) mustChooseTile(ctx context.Context, player int, prompt string, candidates []*Tile) *Tile {
	t, err := g.chooseTile(ctx, player, prompt, candidates, nil)
	if err != nil {
		return candidates[0]
	}
	return t
}

func (g *Game) choosePlayer(ctx context.Context, player int, prompt string, candidates []*Player, preset *int) (*Player, error) {
	if len(candidates) == 0 {
		return nil, reject(KindInvalidTarget, "%s: no eligible player", prompt)
	}
	if preset != nil {
		for _, p := range candidates {
			if p.Index == *preset {
				return p, nil
			}
		}
		return nil, reject(KindInvalidTarget, "%s: P%d is not eligible", prompt, *preset+1)
	}
	options := make([]string, len(candidates))
	for i, p := range candidates {
		options[i] = fmt.Sprintf("%s on %s", p, p.Tile.Name)
	}
	idx, err := g.ask(ctx, player, prompt, options)
	if err != nil {
		return nil, err
	}
	return candidates[idx], nil
}

// chooseCard resolves a card from candidates by ID (0 = ask).
func (g *Game) chooseCard(ctx context.Context, player int, prompt string, candidates []*Card, id int) (*Card, error) {
	if len(candidates) == 0 {
		return nil, reject(KindNoSuchCard, "%s: no eligible card", prompt)
	}
	if id != 0 {
		for _, c := range candidates {
			if c.ID == id {
				return c, nil
			}
		}
		return nil, reject(KindNoSuchCard, "%s: card %d is not eligible", prompt, id)
	}
	options := make([]string, len(candidates))
	for i, c := range candidates {
		options[i] = c.Name()
	}
	idx, err := g.ask(ctx, player, prompt, options)
	if err != nil {
		return nil, err
	}
	return candidates[idx], nil
}
