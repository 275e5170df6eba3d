package game

import (
	"fmt"
	"math/rand"
	"time"

	"go-memmatch/internal/board"
	"go-memmatch/internal/clock"
	"go-memmatch/internal/scoring"
	"go-memmatch/internal/state"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TickPeriod is the resolution of the session clock.
const TickPeriod = time.Second

// SessionConfig carries everything a Session needs at creation.
type SessionConfig struct {
	Settings  Settings
	Icons     []string
	Rand      *rand.Rand
	Scheduler clock.Scheduler
	Audio     state.Audio
	Log       zerolog.Logger
	Notify    func(Event)
}

// Session owns all mutable gameplay state for one board: the flip state
// machine, the versus scoreboard and the clock.
type Session struct {
	ID         uuid.UUID
	Difficulty board.Difficulty
	Mode       Mode
	State      *state.State
	Scoreboard *scoring.Scoreboard // nil in single mode
	Elapsed    int

	scheduler clock.Scheduler
	notify    func(Event)
	log       zerolog.Logger
	ticker    clock.Task
	over      *Snapshot
	closed    bool
}

func NewSession(cfg SessionConfig) (*Session, error) {
	b, err := board.Generate(cfg.Settings.Difficulty, cfg.Icons, cfg.Rand)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s board: %w", cfg.Settings.Difficulty, err)
	}

	s := &Session{
		ID:         uuid.New(),
		Difficulty: cfg.Settings.Difficulty,
		Mode:       cfg.Settings.Mode,
		scheduler:  cfg.Scheduler,
		notify:     cfg.Notify,
	}
	if s.notify == nil {
		s.notify = func(Event) {}
	}
	s.log = cfg.Log.With().Str("session", s.ID.String()).Logger()

	if s.Mode == Versus {
		s.Scoreboard = scoring.NewScoreboard(cfg.Settings.Player1, cfg.Settings.Player2)
	}

	s.State = state.NewState(b, cfg.Scheduler, cfg.Audio, state.Hooks{
		Flipped:      s.handleFlipped,
		Moved:        s.handleMoved,
		Matched:      s.handleMatch,
		TurnSwitched: s.handleTurnSwitch,
		Completed:    s.handleComplete,
	}, s.log)

	s.log.Info().
		Str("difficulty", string(s.Difficulty)).
		Str("mode", string(s.Mode)).
		Int("cards", b.Len()).
		Msg("session created")

	return s, nil
}

// Start opens the board and starts the clock.
func (s *Session) Start() {
	if s.closed || s.State.Started() {
		return
	}
	s.State.Start()
	s.ticker = clock.Every(s.scheduler, TickPeriod, s.HandleTick)
	s.log.Info().Msg("session started")
}

// Flip forwards a flip command to the state machine.
func (s *Session) Flip(cardID int) bool {
	if s.closed {
		return false
	}
	return s.State.Flip(cardID)
}

// HandleTick advances the clock by one second while the game is running.
func (s *Session) HandleTick() {
	if s.closed || !s.State.Started() || s.State.IsOver() {
		return
	}
	s.Elapsed++
	s.notify(Event{Kind: Ticked, SessionID: s.ID, Elapsed: s.Elapsed})
}

// Close cancels the clock and any pending mismatch resolution.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.stopClock()
	s.State.Stop()
	s.log.Info().Msg("session closed")
}

func (s *Session) Started() bool {
	return s.State.Started()
}

func (s *Session) IsOver() bool {
	return s.State.IsOver()
}

func (s *Session) Moves() int {
	return s.State.Moves
}

func (s *Session) MatchedPairs() int {
	return s.State.MatchedPairs
}

func (s *Session) Board() *board.Board {
	return s.State.Board
}

// Snapshot returns the current view of the session.
func (s *Session) Snapshot() Snapshot {
	if s.over != nil {
		return *s.over
	}
	snap := Snapshot{
		SessionID:    s.ID,
		Difficulty:   s.Difficulty,
		Mode:         s.Mode,
		Moves:        s.State.Moves,
		Elapsed:      s.Elapsed,
		MatchedPairs: s.State.MatchedPairs,
		Pairs:        s.State.Board.PairCount(),
		Started:      s.State.Started(),
		Over:         s.State.IsOver(),
	}
	if s.Scoreboard != nil {
		snap.Names = s.Scoreboard.Names
		snap.Scores = s.Scoreboard.Scores
		snap.Active = s.Scoreboard.Active
		if snap.Over {
			winner := s.Scoreboard.Winner()
			snap.Winner = &winner
		}
	}
	return snap
}

func (s *Session) stopClock() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
}

func (s *Session) handleFlipped(cardID int) {
	s.notify(Event{Kind: CardFlipped, SessionID: s.ID, CardID: cardID})
}

func (s *Session) handleMoved(moves int) {
	s.notify(Event{Kind: MovesChanged, SessionID: s.ID, Moves: moves})
}

func (s *Session) handleMatch(pairs int) {
	if s.Scoreboard != nil {
		s.Scoreboard.AddMatch(pairs)
	}
	s.notify(Event{Kind: Matched, SessionID: s.ID, Count: pairs, Active: s.active()})
}

func (s *Session) handleTurnSwitch() {
	if s.Scoreboard != nil {
		s.Scoreboard.SwitchTurn()
	}
	s.notify(Event{Kind: TurnSwitched, SessionID: s.ID, Active: s.active()})
}

func (s *Session) handleComplete() {
	s.stopClock()
	snap := s.Snapshot()
	s.over = &snap

	ev := s.log.Info().Int("moves", snap.Moves).Int("elapsed", snap.Elapsed)
	if snap.Winner != nil {
		ev = ev.Str("winner", snap.Winner.String()).Ints("scores", snap.Scores[:])
	}
	ev.Msg("game over")

	s.notify(Event{Kind: GameOver, SessionID: s.ID, Moves: snap.Moves, Elapsed: snap.Elapsed, Snapshot: &snap})
}

func (s *Session) active() scoring.Player {
	if s.Scoreboard == nil {
		return 0
	}
	return s.Scoreboard.Active
}
