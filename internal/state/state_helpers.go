package state

import "slices"

func (s *State) Started() bool {
	return !s.FSM.Is(Ready)
}

func (s *State) IsOver() bool {
	return s.FSM.Is(Over)
}

func (s *State) IsPending(cardID int) bool {
	return slices.Contains(s.Pending, cardID)
}

// IsFaceUp reports whether a card should be shown: pending or already matched.
func (s *State) IsFaceUp(cardID int) bool {
	c := s.Board.Card(cardID)
	return c != nil && (c.Matched || s.IsPending(cardID))
}

// IsComplete reports whether every pair on the board has been found.
func (s *State) IsComplete() bool {
	return s.MatchedPairs*2 == s.Board.Len()
}

// rejectReason explains why a flip of cardID would be ignored, or "" when it is allowed.
func (s *State) rejectReason(cardID int) string {
	switch {
	case !s.Started():
		return "not started"
	case s.IsOver():
		return "game over"
	case len(s.Pending) >= 2:
		return "resolving"
	}
	return s.cardRejectReason(cardID)
}

// cardRejectReason checks the card itself, ignoring the machine's phase.
func (s *State) cardRejectReason(cardID int) string {
	c := s.Board.Card(cardID)
	switch {
	case c == nil:
		return "unknown card"
	case c.Matched:
		return "already matched"
	case s.IsPending(cardID):
		return "already face up"
	}
	return ""
}
