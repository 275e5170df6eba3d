package scoring

import (
	"fmt"
	"sort"
	"time"
)

// Result records one completed game.
type Result struct {
	SessionID  string
	Difficulty string
	Mode       string
	Moves      int
	Elapsed    int
	Winner     string
	Timestamp  time.Time
}

// Better reports whether r beats other: fewer moves first, then less time.
func (r Result) Better(other Result) bool {
	if r.Moves != other.Moves {
		return r.Moves < other.Moves
	}
	return r.Elapsed < other.Elapsed
}

// History keeps the results of the current process, grouped on demand by difficulty.
type History struct {
	store ResultStore
}

func NewHistory(store ResultStore) *History {
	return &History{store: store}
}

// Record appends a finished game to the store.
func (h *History) Record(r Result) error {
	all, err := h.store.LoadAll()
	if err != nil {
		return fmt.Errorf("could not load results: %w", err)
	}
	return h.store.SaveAll(append(all, r))
}

// Best returns up to n results for a difficulty, best first.
func (h *History) Best(difficulty string, n int) ([]Result, error) {
	all, err := h.store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("could not load results: %w", err)
	}

	filtered := make([]Result, 0, len(all))
	for _, r := range all {
		if r.Difficulty == difficulty {
			filtered = append(filtered, r)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Better(filtered[j])
	})

	if len(filtered) < n {
		return filtered, nil
	}
	return filtered[:n], nil
}

// IsBest reports whether r is at least as good as every other result for its difficulty.
func (h *History) IsBest(r Result) bool {
	best, err := h.Best(r.Difficulty, 1)
	if err != nil || len(best) == 0 {
		return true
	}
	return !best[0].Better(r)
}
