package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventNewTurn EventType = iota
	EventMove
	EventShoreUp
	EventTileFlooded
	EventTileSunk
	EventDraw
	EventDiscard
	EventGiveCard
	EventTreasureCaptured
	EventWaterRise
	EventShuffle
	EventCardPlayed
	EventEmergencyMove
	EventHandLimit
	EventDeckExhausted
	EventActionRejected
	EventWin
	EventLoss
)

func (e EventType) String() string {
	switch e {
	case EventNewTurn:
		return "NewTurn"
	case EventMove:
		return "Move"
	case EventShoreUp:
		return "ShoreUp"
	case EventTileFlooded:
		return "TileFlooded"
	case EventTileSunk:
		return "TileSunk"
	case EventDraw:
		return "Draw"
	case EventDiscard:
		return "Discard"
	case EventGiveCard:
		return "GiveCard"
	case EventTreasureCaptured:
		return "TreasureCaptured"
	case EventWaterRise:
		return "WaterRise"
	case EventShuffle:
		return "Shuffle"
	case EventCardPlayed:
		return "CardPlayed"
	case EventEmergencyMove:
		return "EmergencyMove"
	case EventHandLimit:
		return "HandLimit"
	case EventDeckExhausted:
		return "DeckExhausted"
	case EventActionRejected:
		return "ActionRejected"
	case EventWin:
		return "Win"
	case EventLoss:
		return "Loss"
	default:
		return "Unknown"
	}
}

// Category groups event types into the notification channels a UI subscribes to.
type Category int

const (
	CategoryOther Category = iota
	CategoryTile
	CategoryHand
	CategoryWater
	CategoryTurn
	CategoryGameEnd
)

func (c Category) String() string {
	switch c {
	case CategoryTile:
		return "tile"
	case CategoryHand:
		return "hand"
	case CategoryWater:
		return "water"
	case CategoryTurn:
		return "turn"
	case CategoryGameEnd:
		return "game_end"
	default:
		return "other"
	}
}

// Category reports which notification channel the event belongs to.
func (e EventType) Category() Category {
	switch e {
	case EventShoreUp, EventTileFlooded, EventTileSunk:
		return CategoryTile
	case EventDraw, EventDiscard, EventGiveCard, EventTreasureCaptured, EventCardPlayed:
		return CategoryHand
	case EventWaterRise:
		return CategoryWater
	case EventNewTurn:
		return CategoryTurn
	case EventWin, EventLoss:
		return CategoryGameEnd
	default:
		return CategoryOther
	}
}

// GameEvent represents a single observable event in a game.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based)
	Phase   string    // turn phase name (e.g. "Actions")
	Player  int       // acting player, -1 for none
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Tile    string    // tile name (if applicable)
	Details string    // human-readable detail string
}
