package state

import (
	"context"
	"time"

	"go-memmatch/internal/board"
	"go-memmatch/internal/clock"

	"github.com/looplab/fsm"
	"github.com/rs/zerolog"
)

// ResolveDelay is how long a mismatched pair stays face up.
const ResolveDelay = 1000 * time.Millisecond

// FSM states.
const (
	Ready      = "ready"
	Idle       = "idle"
	OnePending = "onePending"
	Resolving  = "resolving"
	Over       = "over"
)

type Sound string

const (
	SoundFlip     Sound = "card-flip"
	SoundMatch    Sound = "match"
	SoundGameOver Sound = "game-over"
)

// Audio plays sound effects for flip outcomes.
type Audio interface {
	Play(Sound)
}

type NopAudio struct{}

func (NopAudio) Play(Sound) {}

// Hooks receive flip outcomes. Nil hooks are skipped.
type Hooks struct {
	Flipped      func(cardID int)
	Moved        func(moves int)
	Matched      func(pairs int)
	TurnSwitched func()
	Completed    func()
}

// State is the flip state machine for one board.
type State struct {
	Board        *board.Board
	Pending      []int
	MatchedPairs int
	Moves        int
	FSM          *fsm.FSM

	scheduler   clock.Scheduler
	audio       Audio
	hooks       Hooks
	log         zerolog.Logger
	resolveTask clock.Task
}

func NewState(b *board.Board, scheduler clock.Scheduler, audio Audio, hooks Hooks, log zerolog.Logger) *State {
	if audio == nil {
		audio = NopAudio{}
	}
	s := &State{
		Board:     b,
		Pending:   make([]int, 0, 2),
		scheduler: scheduler,
		audio:     audio,
		hooks:     hooks,
		log:       log,
	}

	s.FSM = fsm.NewFSM(
		Ready,
		getStateTransitions(),
		getStateCallbacks(s),
	)

	return s
}

// Start opens the board for flips. Calling it again has no effect.
func (s *State) Start() {
	_ = s.FSM.Event(context.Background(), "begin")
}

// Flip reveals a card. It reports whether the flip was accepted; rejected
// flips leave the state untouched.
func (s *State) Flip(cardID int) bool {
	if err := s.FSM.Event(context.Background(), "flip", cardID); err != nil {
		s.log.Debug().
			Int("card", cardID).
			Str("phase", s.FSM.Current()).
			Str("reason", s.rejectReason(cardID)).
			Msg("flip ignored")
		return false
	}
	return true
}

// Stop cancels an outstanding mismatch resolution.
func (s *State) Stop() {
	if s.resolveTask != nil {
		s.resolveTask.Stop()
		s.resolveTask = nil
	}
}

func (s *State) resolveMismatch() {
	s.resolveTask = nil
	_ = s.FSM.Event(context.Background(), "resolve")
}

func getStateTransitions() []fsm.EventDesc {
	return fsm.Events{
		{Name: "begin", Src: []string{Ready}, Dst: Idle},

		{Name: "flip", Src: []string{Idle}, Dst: OnePending},
		{Name: "flip", Src: []string{OnePending}, Dst: Resolving},

		// Outcomes of the second flip
		{Name: "matched", Src: []string{Resolving}, Dst: Idle},
		{Name: "complete", Src: []string{Resolving}, Dst: Over},
		{Name: "resolve", Src: []string{Resolving}, Dst: Idle},
	}
}

func getStateCallbacks(s *State) map[string]fsm.Callback {
	return fsm.Callbacks{
		"before_flip": func(ctx context.Context, e *fsm.Event) {
			id, ok := e.Args[0].(int)
			if !ok || s.cardRejectReason(id) != "" {
				e.Cancel()
				return
			}
			s.Pending = append(s.Pending, id)
			s.audio.Play(SoundFlip)
			if s.hooks.Flipped != nil {
				s.hooks.Flipped(id)
			}
		},
		"enter_" + OnePending: func(ctx context.Context, e *fsm.Event) {
			s.Moves++
			if s.hooks.Moved != nil {
				s.hooks.Moved(s.Moves)
			}
		},
		"enter_" + Resolving: func(ctx context.Context, e *fsm.Event) {
			first, second := s.Board.Card(s.Pending[0]), s.Board.Card(s.Pending[1])

			if first.Icon != second.Icon {
				s.log.Debug().Int("first", first.ID).Int("second", second.ID).Msg("mismatch")
				s.resolveTask = s.scheduler.Schedule(ResolveDelay, s.resolveMismatch)
				return
			}

			first.Matched = true
			second.Matched = true
			s.MatchedPairs++
			s.Pending = s.Pending[:0]
			s.log.Debug().Str("icon", first.Icon).Int("pairs", s.MatchedPairs).Msg("match")

			s.audio.Play(SoundMatch)
			if s.hooks.Matched != nil {
				s.hooks.Matched(1)
			}

			if s.IsComplete() {
				e.FSM.Event(ctx, "complete")
				return
			}
			e.FSM.Event(ctx, "matched")
		},
		"after_resolve": func(ctx context.Context, e *fsm.Event) {
			s.Pending = s.Pending[:0]
			if s.hooks.TurnSwitched != nil {
				s.hooks.TurnSwitched()
			}
		},
		"enter_" + Over: func(ctx context.Context, e *fsm.Event) {
			s.Stop()
			s.audio.Play(SoundGameOver)
			if s.hooks.Completed != nil {
				s.hooks.Completed()
			}
		},
	}
}
