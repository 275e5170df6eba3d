package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"go-memmatch/internal/board"
	"go-memmatch/internal/config"
	"go-memmatch/internal/game"
	"go-memmatch/internal/state"

	tea "github.com/charmbracelet/bubbletea"
)

// bellAudio rings the terminal bell for flip outcomes.
type bellAudio struct {
	out     io.Writer
	enabled bool
}

func (a bellAudio) Play(s state.Sound) {
	if !a.enabled {
		return
	}
	switch s {
	case state.SoundMatch:
		fmt.Fprint(a.out, "\a")
	case state.SoundGameOver:
		fmt.Fprint(a.out, "\a\a")
	}
}

func loadOptions() (config.Options, error) {
	if err := config.LoadEnv(); err != nil {
		return config.Options{}, err
	}
	opts, err := config.FromEnv(config.Defaults(), os.Getenv)
	if err != nil {
		return opts, err
	}
	return config.Parse(opts, os.Args[1:], os.Stderr)
}

func main() {
	opts, err := loadOptions()
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Printf("Error reading options: %v\n", err)
		os.Exit(2)
	}

	logger, logCloser, err := config.NewLogger(opts)
	if err != nil {
		fmt.Printf("Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	icons := board.DefaultIcons
	if len(opts.IconPaths) > 0 {
		icons, err = board.LoadIconPool(opts.IconPaths)
		if err != nil {
			fmt.Printf("Error loading icons: %v\n", err)
			os.Exit(1)
		}
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info().Int64("seed", seed).Int("icons", len(icons)).Msg("starting")

	scheduler := newTeaScheduler()
	ctrl, err := game.NewController(game.Options{
		Settings:  opts.Settings(),
		Icons:     icons,
		Rand:      rand.New(rand.NewSource(seed)),
		Scheduler: scheduler,
		Audio:     bellAudio{out: os.Stderr, enabled: opts.Sound},
		Log:       logger,
	})
	if err != nil {
		fmt.Printf("Error initializing game: %v\n", err)
		os.Exit(1)
	}
	// The menu picks the mode; no session exists until then.
	ctrl.ReturnToMenu()

	m := newModel(ctrl, opts.Settings(), logger)

	p := tea.NewProgram(m)
	scheduler.Attach(p)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error starting the program: %v\n", err)
		os.Exit(1)
	}
	ctrl.Close()
}
