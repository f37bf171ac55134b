package game

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an action request was rejected. Every kind is
// locally recoverable: a rejected request leaves the game state untouched.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindInvalidTarget
	KindInsufficientActionPoints
	KindNotCurrentPlayer
	KindHandFull
	KindNoSuchCard
	KindIllegalRoleAction
	KindDeckExhausted
	KindCancelled
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindInvalidTarget:
		return "InvalidTarget"
	case KindInsufficientActionPoints:
		return "InsufficientActionPoints"
	case KindNotCurrentPlayer:
		return "NotCurrentPlayer"
	case KindHandFull:
		return "HandFull"
	case KindNoSuchCard:
		return "NoSuchCard"
	case KindIllegalRoleAction:
		return "IllegalRoleAction"
	case KindDeckExhausted:
		return "DeckExhausted"
	case KindCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// RuleError is returned for expected rejection paths.
type RuleError struct {
	Kind ErrorKind
	Msg  string
}

func (e *RuleError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func reject(kind ErrorKind, format string, args ...any) error {
	return &RuleError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the ErrorKind from err, or KindNone for nil and foreign errors.
func KindOf(err error) ErrorKind {
	var re *RuleError
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindNone
}

// ErrCancelled is returned by a ChoiceProvider when the user backs out of a prompt.
var ErrCancelled = errors.New("choice cancelled")

// ActionResult reports the outcome of an action request.
type ActionResult struct {
	Accepted bool
	Reason   ErrorKind
	Detail   string
}

func resultOf(err error) ActionResult {
	if err == nil {
		return ActionResult{Accepted: true}
	}
	kind := KindOf(err)
	if kind == KindNone {
		kind = KindCancelled
	}
	return ActionResult{Reason: kind, Detail: err.Error()}
}
