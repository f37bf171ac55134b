package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLoggerSequence(t *testing.T) {
	l := NewMemoryLogger()
	assert.Equal(t, GameEvent{}, l.LastEvent())

	l.Log(NewTurnEvent(1, 0, "Pilot"))
	l.Log(NewTileFloodedEvent(1, "Flood", "Iron Gate"))
	l.Log(NewTileFloodedEvent(1, "Flood", "Gold Gate"))

	events := l.Events()
	require.Len(t, events, 3)
	for i, e := range events {
		assert.Equal(t, i+1, e.Seq)
	}
	assert.Len(t, l.EventsOfType(EventTileFlooded), 2)
	assert.Empty(t, l.EventsOfType(EventWin))
	assert.Equal(t, "Gold Gate", l.LastEvent().Tile)
}

func TestTextLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf)
	l.Log(NewShoreUpEvent(3, "Actions", 1, "Observatory"))
	l.Log(NewWaterRiseEvent(3, "Draw", 1, 2, 3))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "T3  Actions     | P2 shores up Observatory", lines[0])
	assert.Contains(t, lines[1], "Water level: 2 → 3")
	assert.Len(t, l.Events(), 2)
}

func TestFormatAll(t *testing.T) {
	out := FormatAll([]GameEvent{
		NewWinEvent(9, "Actions", "helicopter lift"),
		NewLossEvent(9, "", "water"),
	})
	assert.Equal(t, 2, strings.Count(out, "\n"))
	assert.Contains(t, out, "The team escapes! (helicopter lift)")
	assert.Contains(t, out, "T9              | The island claims the team (water)")
}

func TestCategories(t *testing.T) {
	cases := map[EventType]Category{
		EventTileSunk:         CategoryTile,
		EventShoreUp:          CategoryTile,
		EventDraw:             CategoryHand,
		EventTreasureCaptured: CategoryHand,
		EventWaterRise:        CategoryWater,
		EventNewTurn:          CategoryTurn,
		EventLoss:             CategoryGameEnd,
		EventShuffle:          CategoryOther,
	}
	for ev, want := range cases {
		assert.Equal(t, want, ev.Category(), ev.String())
	}
	assert.Equal(t, "game_end", CategoryGameEnd.String())
	assert.Equal(t, "Unknown", EventType(99).String())
}
