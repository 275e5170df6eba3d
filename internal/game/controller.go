package game

import (
	"math/rand"
	"time"

	"go-memmatch/internal/board"
	"go-memmatch/internal/clock"
	"go-memmatch/internal/scoring"
	"go-memmatch/internal/state"

	"github.com/rs/zerolog"
)

// Options configure a Controller. Zero values pick the defaults.
type Options struct {
	Settings  Settings
	Icons     []string
	Rand      *rand.Rand
	Scheduler clock.Scheduler
	Audio     state.Audio
	Log       zerolog.Logger
	History   *scoring.History
}

// Controller accepts commands from the front end and owns at most one
// Session at a time. Replacing the session always closes the old one first.
type Controller struct {
	Current *Session

	settings  Settings
	icons     []string
	rng       *rand.Rand
	scheduler clock.Scheduler
	audio     state.Audio
	log       zerolog.Logger
	history   *scoring.History
	observers []Observer
}

// NewController builds the controller and its first session.
func NewController(opts Options) (*Controller, error) {
	c := &Controller{
		settings:  opts.Settings,
		icons:     opts.Icons,
		rng:       opts.Rand,
		scheduler: opts.Scheduler,
		audio:     opts.Audio,
		log:       opts.Log,
		history:   opts.History,
	}

	defaults := DefaultSettings()
	if c.settings.Difficulty == "" {
		c.settings.Difficulty = defaults.Difficulty
	}
	if c.settings.Mode == "" {
		c.settings.Mode = defaults.Mode
	}
	if c.settings.Player1 == "" {
		c.settings.Player1 = defaults.Player1
	}
	if c.settings.Player2 == "" {
		c.settings.Player2 = defaults.Player2
	}
	if len(c.icons) == 0 {
		c.icons = board.DefaultIcons
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.scheduler == nil {
		c.scheduler = clock.NewManual()
	}
	if c.audio == nil {
		c.audio = state.NopAudio{}
	}
	if c.history == nil {
		c.history = scoring.NewHistory(scoring.NewMemoryStore())
	}

	if err := c.newSession(); err != nil {
		return nil, err
	}
	return c, nil
}

// Subscribe registers an observer for every current and future session.
func (c *Controller) Subscribe(o Observer) {
	c.observers = append(c.observers, o)
}

func (c *Controller) Settings() Settings {
	return c.settings
}

func (c *Controller) History() *scoring.History {
	return c.history
}

// SetDifficulty switches preset and deals a fresh, unstarted board.
func (c *Controller) SetDifficulty(d board.Difficulty) error {
	prev := c.settings.Difficulty
	c.settings.Difficulty = d
	if err := c.newSession(); err != nil {
		c.settings.Difficulty = prev
		return err
	}
	return nil
}

// SetMode fixes single or versus play for a new session. Names are display
// labels only; empty names keep the defaults.
func (c *Controller) SetMode(mode Mode, player1, player2 string) error {
	defaults := DefaultSettings()
	c.settings.Mode = mode
	c.settings.Player1, c.settings.Player2 = defaults.Player1, defaults.Player2
	if mode == Versus {
		if player1 != "" {
			c.settings.Player1 = player1
		}
		if player2 != "" {
			c.settings.Player2 = player2
		}
	}
	return c.newSession()
}

// Start starts the current session, if any.
func (c *Controller) Start() {
	if c.Current != nil {
		c.Current.Start()
	}
}

// Restart replaces the session with a fresh one using the same settings.
// The new session waits for Start.
func (c *Controller) Restart() error {
	return c.newSession()
}

// Flip forwards a flip to the current session.
func (c *Controller) Flip(cardID int) bool {
	if c.Current == nil {
		return false
	}
	return c.Current.Flip(cardID)
}

// ReturnToMenu drops the session and resets mode and names.
func (c *Controller) ReturnToMenu() {
	c.closeCurrent()
	difficulty := c.settings.Difficulty
	c.settings = DefaultSettings()
	c.settings.Difficulty = difficulty
}

// Close releases the current session's timers.
func (c *Controller) Close() {
	c.closeCurrent()
}

func (c *Controller) newSession() error {
	s, err := NewSession(SessionConfig{
		Settings:  c.settings,
		Icons:     c.icons,
		Rand:      c.rng,
		Scheduler: c.scheduler,
		Audio:     c.audio,
		Log:       c.log,
		Notify:    c.dispatch,
	})
	if err != nil {
		c.log.Error().Err(err).Str("difficulty", string(c.settings.Difficulty)).Msg("could not create session")
		return err
	}
	c.closeCurrent()
	c.Current = s
	return nil
}

func (c *Controller) closeCurrent() {
	if c.Current != nil {
		c.Current.Close()
		c.Current = nil
	}
}

func (c *Controller) dispatch(e Event) {
	if e.Kind == GameOver && e.Snapshot != nil {
		c.record(*e.Snapshot)
	}
	for _, o := range c.observers {
		o.Notify(e)
	}
}

func (c *Controller) record(snap Snapshot) {
	r := scoring.Result{
		SessionID:  snap.SessionID.String(),
		Difficulty: string(snap.Difficulty),
		Mode:       string(snap.Mode),
		Moves:      snap.Moves,
		Elapsed:    snap.Elapsed,
		Timestamp:  time.Now(),
	}
	if snap.Winner != nil {
		r.Winner = snap.Winner.String()
	}
	if err := c.history.Record(r); err != nil {
		c.log.Warn().Err(err).Msg("could not record result")
	}
}
