package board

import (
	"fmt"
	"math/rand"
	"strings"
)

// DefaultIcons is the fixed icon pool boards are drawn from.
var DefaultIcons = []string{"🍎", "🍌", "🍇", "🍊", "🍉", "🥝", "🍍", "🥥", "🍓", "🥑", "🍒", "🍑"}

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists the supported presets from smallest to largest board.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// PairCount returns the number of pairs a board of this difficulty holds.
// Unknown values fall back to the hard preset.
func (d Difficulty) PairCount() int {
	switch d {
	case Easy:
		return 6
	case Medium:
		return 8
	default:
		return 12
	}
}

// Columns is the grid width used when laying the board out.
func (d Difficulty) Columns() int {
	switch d {
	case Easy:
		return 3
	case Medium:
		return 4
	default:
		return 6
	}
}

func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case Easy, Medium, Hard:
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (use easy, medium or hard)", s)
}

// ConfigurationError reports an icon pool that cannot supply a board.
type ConfigurationError struct {
	Requested int
	Available int
	Reason    string
}

func (e *ConfigurationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid icon pool: %s", e.Reason)
	}
	return fmt.Sprintf("icon pool has %d icons, %d pairs requested", e.Available, e.Requested)
}

// Card is a single tile. Only Matched changes after generation.
type Card struct {
	ID      int
	Icon    string
	Matched bool
}

type Board struct {
	Difficulty Difficulty
	Cards      []Card
}

// Generate builds a shuffled board for difficulty d using icons drawn from pool.
// The pool must hold at least d.PairCount() distinct icons.
func Generate(d Difficulty, pool []string, rng *rand.Rand) (*Board, error) {
	pairs := d.PairCount()
	if len(pool) < pairs {
		return nil, &ConfigurationError{Requested: pairs, Available: len(pool)}
	}
	seen := make(map[string]struct{}, len(pool))
	for _, icon := range pool {
		if icon == "" {
			return nil, &ConfigurationError{Requested: pairs, Available: len(pool), Reason: "empty icon"}
		}
		if _, dup := seen[icon]; dup {
			return nil, &ConfigurationError{Requested: pairs, Available: len(pool), Reason: fmt.Sprintf("duplicate icon %q", icon)}
		}
		seen[icon] = struct{}{}
	}

	// Pick pairs icons without replacement.
	selected := make([]string, len(pool))
	copy(selected, pool)
	rng.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})
	selected = selected[:pairs]

	icons := make([]string, 0, 2*pairs)
	icons = append(icons, selected...)
	icons = append(icons, selected...)

	// rand.Shuffle is a Fisher-Yates permutation.
	rng.Shuffle(len(icons), func(i, j int) {
		icons[i], icons[j] = icons[j], icons[i]
	})

	cards := make([]Card, len(icons))
	for i, icon := range icons {
		cards[i] = Card{ID: i, Icon: icon}
	}

	return &Board{Difficulty: d, Cards: cards}, nil
}

func (b *Board) Len() int {
	return len(b.Cards)
}

func (b *Board) PairCount() int {
	return len(b.Cards) / 2
}

// Card returns the card with the given id, or nil when out of range.
func (b *Board) Card(id int) *Card {
	if id < 0 || id >= len(b.Cards) {
		return nil
	}
	return &b.Cards[id]
}

func (b *Board) AllMatched() bool {
	for _, c := range b.Cards {
		if !c.Matched {
			return false
		}
	}
	return true
}
