package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// PlayerName returns "P1".."P4" for display.
func PlayerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	if phase == "" {
		phase = "          "
	}
	// Pad phase to 12 chars for alignment
	for len(phase) < 12 {
		phase += " "
	}

	return fmt.Sprintf("T%-2d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewTurnEvent(turn int, player int, role string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Actions",
		Player:  player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s, %s) ===", turn, PlayerName(player), role),
	}
}

func NewMoveEvent(turn int, phase string, player int, from, to string, how string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventMove,
		Tile:    to,
		Details: fmt.Sprintf("%s %s from %s to %s", PlayerName(player), how, from, to),
	}
}

func NewShoreUpEvent(turn int, phase string, player int, tile string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventShoreUp,
		Tile:    tile,
		Details: fmt.Sprintf("%s shores up %s", PlayerName(player), tile),
	}
}

func NewTileFloodedEvent(turn int, phase string, tile string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  -1,
		Type:    EventTileFlooded,
		Tile:    tile,
		Details: fmt.Sprintf("%s is flooded", tile),
	}
}

func NewTileSunkEvent(turn int, phase string, tile string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  -1,
		Type:    EventTileSunk,
		Tile:    tile,
		Details: fmt.Sprintf("%s sinks into the sea", tile),
	}
}

func NewDrawEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("%s draws %s", PlayerName(player), cardName),
	}
}

func NewDiscardEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDiscard,
		Card:    cardName,
		Details: fmt.Sprintf("%s discards %s", PlayerName(player), cardName),
	}
}

func NewGiveCardEvent(turn int, phase string, from, to int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  from,
		Type:    EventGiveCard,
		Card:    cardName,
		Details: fmt.Sprintf("%s gives %s to %s", PlayerName(from), cardName, PlayerName(to)),
	}
}

func NewTreasureCapturedEvent(turn int, phase string, player int, treasure string, tile string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventTreasureCaptured,
		Card:    treasure,
		Tile:    tile,
		Details: fmt.Sprintf("%s captures the %s treasure at %s", PlayerName(player), treasure, tile),
	}
}

func NewWaterRiseEvent(turn int, phase string, player int, oldLevel, newLevel int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventWaterRise,
		Card:    "Water Rise",
		Details: fmt.Sprintf("Water level: %d → %d", oldLevel, newLevel),
	}
}

func NewShuffleEvent(turn int, phase string, deck string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  -1,
		Type:    EventShuffle,
		Details: fmt.Sprintf("%s discard pile reshuffled", deck),
	}
}

func NewCardPlayedEvent(turn int, phase string, player int, cardName string, details string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventCardPlayed,
		Card:    cardName,
		Details: fmt.Sprintf("%s plays %s: %s", PlayerName(player), cardName, details),
	}
}

func NewEmergencyMoveEvent(turn int, phase string, player int, from, to string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventEmergencyMove,
		Tile:    to,
		Details: fmt.Sprintf("%s swims from sunken %s to %s", PlayerName(player), from, to),
	}
}

func NewHandLimitEvent(turn int, phase string, player int, handSize, owed int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventHandLimit,
		Details: fmt.Sprintf("%s holds %d cards and must discard %d", PlayerName(player), handSize, owed),
	}
}

func NewDeckExhaustedEvent(turn int, phase string, deck string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  -1,
		Type:    EventDeckExhausted,
		Details: fmt.Sprintf("%s deck is exhausted", deck),
	}
}

func NewActionRejectedEvent(turn int, phase string, player int, action string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventActionRejected,
		Details: fmt.Sprintf("%s: %s rejected (%s)", PlayerName(player), action, reason),
	}
}

func NewWinEvent(turn int, phase string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  -1,
		Type:    EventWin,
		Details: fmt.Sprintf("The team escapes! (%s)", reason),
	}
}

func NewLossEvent(turn int, phase string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  -1,
		Type:    EventLoss,
		Details: fmt.Sprintf("The island claims the team (%s)", reason),
	}
}
