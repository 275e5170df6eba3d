package main

import (
	"fmt"
	"strings"

	"go-memmatch/internal/board"
	"go-memmatch/internal/game"
	"go-memmatch/internal/scoring"

	"github.com/charmbracelet/lipgloss"
)

var (
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boldStyle   = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().Reverse(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(6).
			Align(lipgloss.Center)
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("10")).
			Padding(1, 3)
)

const cardBack = "??"

func (m *model) View() string {
	var view string
	switch m.screen {
	case screenMenu:
		view = m.viewMenu()
	case screenNames:
		view = m.viewNames()
	default:
		view = m.viewBoard()
	}
	if m.err != nil {
		view += "\n" + redStyle.Render("Error: "+m.err.Error())
	}
	return view + "\n"
}

func (m *model) viewMenu() string {
	var b strings.Builder
	b.WriteString(boldStyle.Render("MEMORY MATCH") + "\n\n")

	labels := map[game.Mode]string{
		game.Single: "Single player",
		game.Versus: "Versus (two players)",
	}
	for i, mode := range menuModes {
		line := "  " + labels[mode]
		if i == m.menuIndex {
			line = cursorStyle.Render("> " + labels[mode])
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + difficultyLine(m.ctrl.Settings().Difficulty) + "\n\n")
	b.WriteString(dimStyle.Render("↑/↓ choose • 1/2/3 difficulty • enter select • q quit"))
	return b.String()
}

func (m *model) viewNames() string {
	var b strings.Builder
	b.WriteString(boldStyle.Render("VERSUS") + "\n\n")
	for i := range m.names {
		fmt.Fprintf(&b, "Player %d: %s\n", i+1, m.names[i].View())
	}
	b.WriteString("\n" + dimStyle.Render("tab switch • enter confirm • esc back"))
	return b.String()
}

func (m *model) viewBoard() string {
	s := m.ctrl.Current
	if s == nil {
		return ""
	}
	snap := s.Snapshot()

	var b strings.Builder
	b.WriteString(boldStyle.Render("MEMORY MATCH") + "  " + difficultyLine(snap.Difficulty) + "\n")
	b.WriteString(m.renderGrid(s) + "\n")
	b.WriteString(scoreStyle.Render(statusLine(snap)) + "\n")

	if snap.Over {
		b.WriteString(m.renderGameOver(snap) + "\n")
	} else if !snap.Started {
		b.WriteString(greenStyle.Render("Press s to start.") + "\n")
	} else if m.status != "" {
		b.WriteString(m.status + "\n")
	}

	b.WriteString(dimStyle.Render("arrows move • enter flip • s start • r restart • 1/2/3 difficulty • m menu • q quit"))
	return b.String()
}

func (m *model) renderGrid(s *game.Session) string {
	bd := s.Board()
	cols := s.Difficulty.Columns()

	var rows []string
	for start := 0; start < bd.Len(); start += cols {
		var cells []string
		for id := start; id < start+cols && id < bd.Len(); id++ {
			cells = append(cells, m.renderCard(s, id))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *model) renderCard(s *game.Session, id int) string {
	c := s.Board().Card(id)
	style := cardStyle
	face := cardBack

	switch {
	case c.Matched:
		face = c.Icon
		style = style.BorderForeground(lipgloss.Color("8"))
	case s.State.IsPending(id):
		face = c.Icon
		style = style.BorderForeground(lipgloss.Color("11"))
	}
	if id == m.cursor && !s.IsOver() {
		style = style.BorderForeground(lipgloss.Color("10")).Bold(true)
		face = cursorStyle.Render(face)
	}
	return style.Render(face)
}

func (m *model) renderGameOver(snap game.Snapshot) string {
	var b strings.Builder
	if snap.Winner != nil {
		if snap.Winner.Tie {
			b.WriteString(boldStyle.Render("It's a tie!"))
		} else {
			b.WriteString(boldStyle.Render(snap.Winner.Name + " wins!"))
		}
		fmt.Fprintf(&b, "\n%s %d - %d %s", snap.Names[0], snap.Scores[0], snap.Scores[1], snap.Names[1])
	} else {
		b.WriteString(boldStyle.Render("All pairs found!"))
	}
	fmt.Fprintf(&b, "\nMoves: %d  Time: %s", snap.Moves, formatElapsed(snap.Elapsed))

	if m.newBest {
		b.WriteString("\n" + greenStyle.Render("New best for "+string(snap.Difficulty)+"!"))
	}
	if len(m.best) > 0 {
		b.WriteString("\n\nBest " + string(snap.Difficulty) + " games:")
		for i, r := range m.best {
			fmt.Fprintf(&b, "\n  %d. %d moves in %s", i+1, r.Moves, formatElapsed(r.Elapsed))
			if r.Winner != "" {
				fmt.Fprintf(&b, " (%s)", r.Winner)
			}
		}
	}
	b.WriteString("\n\n" + dimStyle.Render("r play again • m menu"))
	return modalStyle.Render(b.String())
}

func statusLine(snap game.Snapshot) string {
	line := fmt.Sprintf("MOVES: %d | PAIRS: %d/%d | TIME: %s",
		snap.Moves, snap.MatchedPairs, snap.Pairs, formatElapsed(snap.Elapsed))
	if snap.Mode == game.Versus {
		line += fmt.Sprintf(" | %s: %d | %s: %d | TURN: %s",
			snap.Names[0], snap.Scores[0], snap.Names[1], snap.Scores[1], activeName(snap))
	}
	return line
}

func activeName(snap game.Snapshot) string {
	if snap.Active == scoring.PlayerOne || snap.Active == scoring.PlayerTwo {
		return snap.Names[snap.Active-1]
	}
	return ""
}

func difficultyLine(current board.Difficulty) string {
	parts := make([]string, 0, len(board.Difficulties))
	for i, d := range board.Difficulties {
		label := fmt.Sprintf("%d:%s", i+1, d)
		if d == current {
			label = greenStyle.Render("[" + label + "]")
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " ")
}

func formatElapsed(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
