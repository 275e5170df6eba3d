package state

import (
	"math/rand"
	"testing"
	"time"

	"go-memmatch/internal/board"
	"go-memmatch/internal/clock"

	"github.com/rs/zerolog"
)

// recorder collects hook calls and sounds in order.
type recorder struct {
	events []string
	sounds []Sound
	moves  int
}

func (r *recorder) Play(s Sound) { r.sounds = append(r.sounds, s) }

func (r *recorder) hooks() Hooks {
	return Hooks{
		Flipped:      func(int) { r.events = append(r.events, "flipped") },
		Moved:        func(m int) { r.moves = m; r.events = append(r.events, "moved") },
		Matched:      func(int) { r.events = append(r.events, "match") },
		TurnSwitched: func() { r.events = append(r.events, "turn-switch") },
		Completed:    func() { r.events = append(r.events, "game-over") },
	}
}

func (r *recorder) count(kind string) int {
	n := 0
	for _, e := range r.events {
		if e == kind {
			n++
		}
	}
	return n
}

func newTestState(t *testing.T, d board.Difficulty) (*State, *clock.Manual, *recorder) {
	t.Helper()
	b, err := board.Generate(d, board.DefaultIcons, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	sched := clock.NewManual()
	rec := &recorder{}
	s := NewState(b, sched, rec, rec.hooks(), zerolog.Nop())
	s.Start()
	return s, sched, rec
}

// pairs returns the card ids grouped by icon.
func pairs(b *board.Board) [][2]int {
	byIcon := make(map[string][]int)
	var order []string
	for _, c := range b.Cards {
		if _, ok := byIcon[c.Icon]; !ok {
			order = append(order, c.Icon)
		}
		byIcon[c.Icon] = append(byIcon[c.Icon], c.ID)
	}
	out := make([][2]int, 0, len(order))
	for _, icon := range order {
		ids := byIcon[icon]
		out = append(out, [2]int{ids[0], ids[1]})
	}
	return out
}

func TestState_RejectsBeforeStart(t *testing.T) {
	b, _ := board.Generate(board.Easy, board.DefaultIcons, rand.New(rand.NewSource(1)))
	rec := &recorder{}
	s := NewState(b, clock.NewManual(), rec, rec.hooks(), zerolog.Nop())

	if s.Flip(0) {
		t.Error("flip accepted before start")
	}
	if s.Moves != 0 || len(s.Pending) != 0 || len(rec.events) != 0 || len(rec.sounds) != 0 {
		t.Errorf("rejected flip changed state: moves=%d pending=%v events=%v", s.Moves, s.Pending, rec.events)
	}
	if s.Started() {
		t.Error("state should not be started")
	}
}

func TestState_FirstFlip(t *testing.T) {
	s, _, rec := newTestState(t, board.Easy)

	if !s.Flip(3) {
		t.Fatal("first flip rejected")
	}
	if s.FSM.Current() != OnePending {
		t.Errorf("expected %s, got %s", OnePending, s.FSM.Current())
	}
	if s.Moves != 1 || rec.moves != 1 {
		t.Errorf("expected moveCount 1, got %d", s.Moves)
	}
	if len(s.Pending) != 1 || s.Pending[0] != 3 {
		t.Errorf("expected pending [3], got %v", s.Pending)
	}
	if len(rec.sounds) != 1 || rec.sounds[0] != SoundFlip {
		t.Errorf("expected flip sound, got %v", rec.sounds)
	}
}

func TestState_DuplicateFlipIgnored(t *testing.T) {
	s, _, rec := newTestState(t, board.Easy)
	s.Flip(0)
	before := len(rec.events)

	if s.Flip(0) {
		t.Error("flipping a pending card should be rejected")
	}
	if s.Moves != 1 || len(s.Pending) != 1 || len(rec.events) != before {
		t.Errorf("duplicate flip changed state: moves=%d pending=%v events=%v", s.Moves, s.Pending, rec.events)
	}
}

func TestState_UnknownCardIgnored(t *testing.T) {
	s, _, rec := newTestState(t, board.Easy)

	if s.Flip(-1) || s.Flip(s.Board.Len()) {
		t.Error("out of range flip accepted")
	}
	if s.Moves != 0 || len(rec.events) != 0 {
		t.Error("out of range flip changed state")
	}
}

func TestState_Match(t *testing.T) {
	s, sched, rec := newTestState(t, board.Easy)
	p := pairs(s.Board)[0]

	s.Flip(p[0])
	s.Flip(p[1])

	if len(s.Pending) != 0 {
		t.Errorf("pending should clear synchronously on match, got %v", s.Pending)
	}
	if s.MatchedPairs != 1 {
		t.Errorf("expected 1 matched pair, got %d", s.MatchedPairs)
	}
	if !s.Board.Card(p[0]).Matched || !s.Board.Card(p[1]).Matched {
		t.Error("both cards should be marked matched")
	}
	if s.FSM.Current() != Idle {
		t.Errorf("expected %s after match, got %s", Idle, s.FSM.Current())
	}
	if rec.count("match") != 1 || rec.count("turn-switch") != 0 {
		t.Errorf("unexpected events %v", rec.events)
	}
	if sched.Pending() != 0 {
		t.Error("match should not schedule a resolution")
	}
	if s.Moves != 1 {
		t.Errorf("expected one move for the pair, got %d", s.Moves)
	}
}

func TestState_MatchedCardIgnored(t *testing.T) {
	s, _, rec := newTestState(t, board.Easy)
	p := pairs(s.Board)[0]
	s.Flip(p[0])
	s.Flip(p[1])
	before := len(rec.events)

	if s.Flip(p[0]) {
		t.Error("flipping a matched card should be rejected")
	}
	if s.Moves != 1 || len(s.Pending) != 0 || len(rec.events) != before {
		t.Error("flipping a matched card changed state")
	}
}

func TestState_MismatchResolvesAfterDelay(t *testing.T) {
	s, sched, rec := newTestState(t, board.Easy)
	ps := pairs(s.Board)
	a, b := ps[0][0], ps[1][0]

	s.Flip(a)
	s.Flip(b)

	if s.FSM.Current() != Resolving {
		t.Fatalf("expected %s, got %s", Resolving, s.FSM.Current())
	}

	// Third flip is blocked while the pair is face up.
	if s.Flip(ps[2][0]) {
		t.Error("flip accepted while resolving")
	}

	sched.Advance(ResolveDelay - time.Millisecond)
	if len(s.Pending) != 2 || s.Pending[0] != a || s.Pending[1] != b {
		t.Fatalf("pending should hold both cards before the delay, got %v", s.Pending)
	}
	if rec.count("turn-switch") != 0 {
		t.Fatal("turn switched early")
	}

	sched.Advance(time.Millisecond)
	if len(s.Pending) != 0 {
		t.Errorf("pending should clear after the delay, got %v", s.Pending)
	}
	if rec.count("turn-switch") != 1 {
		t.Errorf("expected exactly one turn-switch, got %d", rec.count("turn-switch"))
	}
	if s.FSM.Current() != Idle {
		t.Errorf("expected %s, got %s", Idle, s.FSM.Current())
	}
	if s.Board.Card(a).Matched || s.Board.Card(b).Matched {
		t.Error("mismatched cards must not be marked matched")
	}

	sched.Advance(10 * time.Second)
	if rec.count("turn-switch") != 1 {
		t.Error("resolution fired more than once")
	}

	// Play continues after the resolution.
	if !s.Flip(a) {
		t.Error("flip rejected after resolution")
	}
	if s.Moves != 2 {
		t.Errorf("expected 2 moves, got %d", s.Moves)
	}
}

func TestState_StopCancelsResolution(t *testing.T) {
	s, sched, rec := newTestState(t, board.Easy)
	ps := pairs(s.Board)
	s.Flip(ps[0][0])
	s.Flip(ps[1][0])

	s.Stop()
	sched.Advance(5 * time.Second)

	if rec.count("turn-switch") != 0 {
		t.Error("stopped resolution still fired")
	}
	if sched.Pending() != 0 {
		t.Errorf("expected no pending tasks, got %d", sched.Pending())
	}
}

func TestState_Completion(t *testing.T) {
	s, _, rec := newTestState(t, board.Easy)

	for _, p := range pairs(s.Board) {
		s.Flip(p[0])
		s.Flip(p[1])
	}

	if !s.IsOver() || !s.IsComplete() {
		t.Fatalf("expected game over, phase %s", s.FSM.Current())
	}
	if s.Moves != 6 || s.MatchedPairs != 6 {
		t.Errorf("expected 6 moves and 6 pairs, got %d and %d", s.Moves, s.MatchedPairs)
	}
	if rec.count("game-over") != 1 {
		t.Errorf("expected one game-over, got %d", rec.count("game-over"))
	}
	if last := rec.sounds[len(rec.sounds)-1]; last != SoundGameOver {
		t.Errorf("expected game-over sound last, got %s", last)
	}

	// game-over follows the final match notification
	n := len(rec.events)
	if rec.events[n-2] != "match" || rec.events[n-1] != "game-over" {
		t.Errorf("unexpected tail of events %v", rec.events[n-2:])
	}

	before := len(rec.events)
	for id := 0; id < s.Board.Len(); id++ {
		if s.Flip(id) {
			t.Errorf("flip %d accepted after game over", id)
		}
	}
	if len(rec.events) != before {
		t.Error("flips after game over emitted events")
	}
}

func TestState_IsFaceUp(t *testing.T) {
	s, _, _ := newTestState(t, board.Easy)
	p := pairs(s.Board)[0]

	if s.IsFaceUp(p[0]) {
		t.Error("card should start face down")
	}
	s.Flip(p[0])
	if !s.IsFaceUp(p[0]) {
		t.Error("pending card should be face up")
	}
	s.Flip(p[1])
	if !s.IsFaceUp(p[0]) || !s.IsFaceUp(p[1]) {
		t.Error("matched cards should stay face up")
	}
}

func TestState_RejectReason(t *testing.T) {
	s, _, _ := newTestState(t, board.Easy)
	ps := pairs(s.Board)

	tests := []struct {
		name  string
		setup func()
		card  int
		want  string
	}{
		{"allowed", func() {}, ps[0][0], ""},
		{"unknown", func() {}, 99, "unknown card"},
		{"face up", func() { s.Flip(ps[0][0]) }, ps[0][0], "already face up"},
		{"matched", func() { s.Flip(ps[0][1]) }, ps[0][0], "already matched"},
	}

	for _, tt := range tests {
		tt.setup()
		if got := s.rejectReason(tt.card); got != tt.want {
			t.Errorf("%s: rejectReason = %q, want %q", tt.name, got, tt.want)
		}
	}
}
