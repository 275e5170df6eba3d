package main

import (
	"errors"
	"fmt"
	"strings"

	"go-memmatch/internal/board"
	"go-memmatch/internal/game"
	"go-memmatch/internal/scoring"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

type screen int

const (
	screenMenu screen = iota
	screenNames
	screenBoard
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Flip    key.Binding
	Start   key.Binding
	Restart key.Binding
	Menu    key.Binding
	Easy    key.Binding
	Medium  key.Binding
	Hard    key.Binding
	Next    key.Binding
	Back    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Flip:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/space", "flip")),
	Start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
	Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
	Menu:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
	Easy:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "easy")),
	Medium:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "medium")),
	Hard:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "hard")),
	Next:    key.NewBinding(key.WithKeys("tab", "shift+tab", "up", "down"), key.WithHelp("tab", "next field")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var menuModes = []game.Mode{game.Single, game.Versus}

// model is the terminal front end. It only issues controller commands and
// renders what the session reports back.
type model struct {
	ctrl   *game.Controller
	keys   keyMap
	screen screen
	log    zerolog.Logger

	menuIndex int
	names     []textinput.Model
	focus     int

	cursor  int
	status  string
	err     error
	best    []scoring.Result
	newBest bool
}

// newModel opens on the menu with the mode and names from settings preselected.
func newModel(ctrl *game.Controller, settings game.Settings, log zerolog.Logger) *model {
	names := make([]textinput.Model, 2)
	for i, name := range []string{settings.Player1, settings.Player2} {
		ti := textinput.New()
		ti.Placeholder = fmt.Sprintf("Player %d", i+1)
		ti.CharLimit = 16
		ti.Width = 20
		ti.SetValue(name)
		names[i] = ti
	}

	m := &model{
		ctrl:   ctrl,
		keys:   keys,
		screen: screenMenu,
		log:    log,
		names:  names,
	}
	if settings.Mode == game.Versus {
		m.menuIndex = 1
	}
	ctrl.Subscribe(m)
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

// Notify receives session events. It runs inside Update, either while a
// command is being handled or while a scheduled task fires.
func (m *model) Notify(e game.Event) {
	switch e.Kind {
	case game.Matched:
		m.status = "Match!"
		if e.Active != 0 {
			m.status = fmt.Sprintf("Match for %s!", m.ctrl.Current.Scoreboard.Name(e.Active))
		}
	case game.TurnSwitched:
		m.status = "No match."
		if e.Active != 0 {
			m.status = fmt.Sprintf("No match. %s's turn.", m.ctrl.Current.Scoreboard.Name(e.Active))
		}
	case game.CardFlipped:
		m.status = ""
	case game.GameOver:
		m.status = ""
		m.loadBest(e.Snapshot)
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskMsg:
		msg.task.run()
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		switch m.screen {
		case screenMenu:
			return m.updateMenu(msg)
		case screenNames:
			return m.updateNames(msg)
		case screenBoard:
			return m.updateBoard(msg)
		}
	}
	return m, nil
}

func (m *model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Up):
		m.menuIndex = (m.menuIndex + len(menuModes) - 1) % len(menuModes)
	case key.Matches(msg, m.keys.Down):
		m.menuIndex = (m.menuIndex + 1) % len(menuModes)
	case key.Matches(msg, m.keys.Easy):
		m.setDifficulty(board.Easy)
	case key.Matches(msg, m.keys.Medium):
		m.setDifficulty(board.Medium)
	case key.Matches(msg, m.keys.Hard):
		m.setDifficulty(board.Hard)
	case key.Matches(msg, m.keys.Flip):
		if menuModes[m.menuIndex] == game.Versus {
			m.screen = screenNames
			m.focus = 0
			m.err = nil
			return m, m.focusName(0)
		}
		m.enterBoard(game.Single, "", "")
	}
	return m, nil
}

func (m *model) updateNames(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = screenMenu
		m.err = nil
		return m, nil
	case key.Matches(msg, m.keys.Next):
		return m, m.focusName(1 - m.focus)
	case msg.Type == tea.KeyEnter:
		if m.focus == 0 {
			return m, m.focusName(1)
		}
		p1 := strings.TrimSpace(m.names[0].Value())
		p2 := strings.TrimSpace(m.names[1].Value())
		if p1 == "" || p2 == "" {
			m.err = errors.New("both players need a name")
			return m, nil
		}
		m.enterBoard(game.Versus, p1, p2)
		return m, nil
	}

	var cmd tea.Cmd
	m.names[m.focus], cmd = m.names[m.focus].Update(msg)
	return m, cmd
}

func (m *model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.ctrl.Current
	if s == nil {
		m.screen = screenMenu
		return m, nil
	}
	cols := s.Difficulty.Columns()
	n := s.Board().Len()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Up):
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor+cols < n {
			m.cursor += cols
		}
	case key.Matches(msg, m.keys.Left):
		if m.cursor%cols > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor%cols < cols-1 && m.cursor+1 < n {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Start):
		m.ctrl.Start()
		m.status = ""
	case key.Matches(msg, m.keys.Flip):
		if !s.Started() {
			m.status = "Press s to start."
			return m, nil
		}
		if !m.ctrl.Flip(m.cursor) {
			m.log.Debug().Int("card", m.cursor).Msg("flip ignored")
		}
	case key.Matches(msg, m.keys.Restart):
		m.reset()
		if err := m.ctrl.Restart(); err != nil {
			m.err = err
		}
	case key.Matches(msg, m.keys.Menu):
		m.ctrl.ReturnToMenu()
		m.reset()
		m.menuIndex = 0
		m.screen = screenMenu
	case key.Matches(msg, m.keys.Easy):
		m.setDifficulty(board.Easy)
	case key.Matches(msg, m.keys.Medium):
		m.setDifficulty(board.Medium)
	case key.Matches(msg, m.keys.Hard):
		m.setDifficulty(board.Hard)
	}
	return m, nil
}

// enterBoard fixes the mode and deals a fresh board.
func (m *model) enterBoard(mode game.Mode, p1, p2 string) {
	m.reset()
	if err := m.ctrl.SetMode(mode, p1, p2); err != nil {
		m.err = err
		return
	}
	m.screen = screenBoard
}

func (m *model) setDifficulty(d board.Difficulty) {
	m.reset()
	if err := m.ctrl.SetDifficulty(d); err != nil {
		m.err = err
		return
	}
	if m.screen == screenMenu {
		// The menu has no session until a mode is picked.
		m.ctrl.ReturnToMenu()
	}
}

func (m *model) focusName(i int) tea.Cmd {
	m.names[m.focus].Blur()
	m.focus = i
	return m.names[i].Focus()
}

func (m *model) reset() {
	m.cursor = 0
	m.status = ""
	m.err = nil
	m.best = nil
	m.newBest = false
}

func (m *model) loadBest(snap *game.Snapshot) {
	if snap == nil {
		return
	}
	best, err := m.ctrl.History().Best(string(snap.Difficulty), 5)
	if err != nil {
		m.log.Warn().Err(err).Msg("could not load best results")
		return
	}
	m.best = best
	m.newBest = len(best) > 0 && best[0].SessionID == snap.SessionID.String()
}

func (m *model) quit() tea.Cmd {
	m.ctrl.Close()
	return tea.Quit
}
