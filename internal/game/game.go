package game

import (
	"fmt"
	"strings"

	"go-memmatch/internal/board"
)

type Mode string

const (
	Single Mode = "single"
	Versus Mode = "versus"
)

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "normal", "solo":
		return Single, nil
	case "versus", "1v1", "vs":
		return Versus, nil
	}
	return "", fmt.Errorf("unknown mode %q (use single or versus)", s)
}

// Settings are the choices that survive a restart.
type Settings struct {
	Difficulty board.Difficulty
	Mode       Mode
	Player1    string
	Player2    string
}

func DefaultSettings() Settings {
	return Settings{
		Difficulty: board.Easy,
		Mode:       Single,
		Player1:    "Player 1",
		Player2:    "Player 2",
	}
}
