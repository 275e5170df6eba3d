package scoring

import "fmt"

// Player identifies a seat in versus mode.
type Player int

const (
	PlayerOne Player = 1
	PlayerTwo Player = 2
)

func (p Player) Other() Player {
	if p == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

func (p Player) String() string {
	return fmt.Sprintf("Player %d", int(p))
}

// Outcome is the result of a finished versus game.
type Outcome struct {
	Tie    bool
	Player Player
	Name   string
}

func (o Outcome) String() string {
	if o.Tie {
		return "Tie"
	}
	return o.Name
}

// Scoreboard tracks the active player and both scores in versus mode.
type Scoreboard struct {
	Names  [2]string
	Scores [2]int
	Active Player

	scoreTable map[string]int
}

// NewScoreboard starts a game with player one to act and both scores at zero.
// Empty names fall back to "Player 1" and "Player 2".
func NewScoreboard(player1, player2 string) *Scoreboard {
	if player1 == "" {
		player1 = PlayerOne.String()
	}
	if player2 == "" {
		player2 = PlayerTwo.String()
	}
	return &Scoreboard{
		Names:      [2]string{player1, player2},
		Active:     PlayerOne,
		scoreTable: getScoreTable(),
	}
}

// AddMatch credits the active player for pairs found. The turn does not change.
func (sb *Scoreboard) AddMatch(pairs int) {
	sb.Scores[sb.Active-1] += pairs * sb.scoreTable["pair"]
}

// SwitchTurn hands the turn to the other player.
func (sb *Scoreboard) SwitchTurn() {
	sb.Active = sb.Active.Other()
}

func (sb *Scoreboard) Score(p Player) int {
	return sb.Scores[p-1]
}

func (sb *Scoreboard) Name(p Player) string {
	return sb.Names[p-1]
}

func (sb *Scoreboard) Reset() {
	sb.Scores = [2]int{}
	sb.Active = PlayerOne
}

// Winner compares the scores; equal scores are a tie.
func (sb *Scoreboard) Winner() Outcome {
	switch {
	case sb.Scores[0] > sb.Scores[1]:
		return Outcome{Player: PlayerOne, Name: sb.Names[0]}
	case sb.Scores[1] > sb.Scores[0]:
		return Outcome{Player: PlayerTwo, Name: sb.Names[1]}
	default:
		return Outcome{Tie: true}
	}
}

// getScoreTable returns the points awarded per scoring event.
func getScoreTable() map[string]int {
	return map[string]int{
		"pair": 10,
	}
}
