package game

import (
	"go-memmatch/internal/board"
	"go-memmatch/internal/scoring"

	"github.com/google/uuid"
)

type EventKind int

const (
	CardFlipped EventKind = iota
	Matched
	TurnSwitched
	GameOver
	MovesChanged
	Ticked
)

func (k EventKind) String() string {
	switch k {
	case CardFlipped:
		return "card-flipped"
	case Matched:
		return "match"
	case TurnSwitched:
		return "turn-switch"
	case GameOver:
		return "game-over"
	case MovesChanged:
		return "moves"
	case Ticked:
		return "tick"
	default:
		return "unknown"
	}
}

// Event is a notification published by a Session. Only the fields relevant
// to Kind are set.
type Event struct {
	Kind      EventKind
	SessionID uuid.UUID
	CardID    int
	Count     int
	Moves     int
	Elapsed   int
	Active    scoring.Player
	Snapshot  *Snapshot
}

// Observer receives session notifications on the goroutine that drives the session.
type Observer interface {
	Notify(Event)
}

type ObserverFunc func(Event)

func (f ObserverFunc) Notify(e Event) { f(e) }

// Snapshot is a read-only view of a session.
type Snapshot struct {
	SessionID    uuid.UUID
	Difficulty   board.Difficulty
	Mode         Mode
	Moves        int
	Elapsed      int
	MatchedPairs int
	Pairs        int
	Started      bool
	Over         bool

	// Versus only.
	Names  [2]string
	Scores [2]int
	Active scoring.Player
	Winner *scoring.Outcome
}
