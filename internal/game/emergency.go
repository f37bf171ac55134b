package game

import (
	"context"
	"fmt"

	"github.com/peterkuimelis/sinkisle/internal/log"
	"github.com/zyedidia/generic/mapset"
)

// EmergencyQueue holds players whose tile sank, in the order they were
// stranded. A player appears at most once.
type EmergencyQueue struct {
	order  []int
	queued mapset.Set[int]
}

func NewEmergencyQueue() *EmergencyQueue {
	return &EmergencyQueue{queued: mapset.New[int]()}
}

// Enqueue adds a player. Returns false if they are already waiting.
func (q *EmergencyQueue) Enqueue(player int) bool {
	if q.queued.Has(player) {
		return false
	}
	q.queued.Put(player)
	q.order = append(q.order, player)
	return true
}

// Peek returns the player at the head of the queue.
func (q *EmergencyQueue) Peek() (int, bool) {
	if len(q.order) == 0 {
		return -1, false
	}
	return q.order[0], true
}

// Pop removes and returns the head of the queue.
func (q *EmergencyQueue) Pop() (int, bool) {
	p, ok := q.Peek()
	if !ok {
		return -1, false
	}
	q.order = q.order[1:]
	q.queued.Remove(p)
	return p, true
}

func (q *EmergencyQueue) Len() int {
	return len(q.order)
}

// Pending returns a copy of the waiting players, head first.
func (q *EmergencyQueue) Pending() []int {
	return append([]int(nil), q.order...)
}

func (q *EmergencyQueue) Clear() {
	q.order = nil
	q.queued.Clear()
}

// resolveEmergencies moves every stranded player off their sunk tile, one at
// a time. A player with no legal escape ends the game.
func (g *Game) resolveEmergencies(ctx context.Context) {
	gs := g.State
	for gs.Emergency.Len() > 0 {
		idx, _ := gs.Emergency.Peek()
		p := gs.Players[idx]

		candidates := EscapeTargets(p.Role, gs.Board, p.Tile)
		if len(candidates) == 0 {
			g.finish(Outcome{Over: true, Reason: fmt.Sprintf(reasonNoEscapeTile, p, p.Tile.Name)})
			return
		}

		dest := g.mustChooseTile(ctx, idx, fmt.Sprintf("%s is sinking! Swim to", p.Tile.Name), candidates)
		from := p.Tile
		p.Tile = dest
		gs.Emergency.Pop()
		g.log(log.NewEmergencyMoveEvent(gs.Turn, g.phase(), idx, from.Name, dest.Name))
	}
}
