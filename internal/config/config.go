package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go-memmatch/internal/board"
	"go-memmatch/internal/game"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Options struct {
	Difficulty board.Difficulty
	Mode       game.Mode
	Player1    string
	Player2    string
	Seed       int64
	IconPaths  []string
	Sound      bool
	LogFile    string
	LogLevel   zerolog.Level
}

func Defaults() Options {
	s := game.DefaultSettings()
	return Options{
		Difficulty: s.Difficulty,
		Mode:       s.Mode,
		Player1:    s.Player1,
		Player2:    s.Player2,
		Sound:      true,
		LogLevel:   zerolog.InfoLevel,
	}
}

// Settings returns the game settings these options select.
func (o Options) Settings() game.Settings {
	return game.Settings{
		Difficulty: o.Difficulty,
		Mode:       o.Mode,
		Player1:    o.Player1,
		Player2:    o.Player2,
	}
}

// LoadEnv loads a .env file when present. A missing file is not an error.
func LoadEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// FromEnv applies MEMMATCH_* and LOG_LEVEL variables on top of o.
func FromEnv(o Options, getenv func(string) string) (Options, error) {
	if v := getenv("MEMMATCH_DIFFICULTY"); v != "" {
		d, err := board.ParseDifficulty(v)
		if err != nil {
			return o, err
		}
		o.Difficulty = d
	}
	if v := getenv("MEMMATCH_MODE"); v != "" {
		m, err := game.ParseMode(v)
		if err != nil {
			return o, err
		}
		o.Mode = m
	}
	if v := getenv("MEMMATCH_PLAYER1"); v != "" {
		o.Player1 = v
	}
	if v := getenv("MEMMATCH_PLAYER2"); v != "" {
		o.Player2 = v
	}
	if v := getenv("MEMMATCH_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return o, fmt.Errorf("invalid MEMMATCH_SEED %q: %w", v, err)
		}
		o.Seed = seed
	}
	if v := getenv("MEMMATCH_ICONS"); v != "" {
		o.IconPaths = strings.Split(v, string(os.PathListSeparator))
	}
	if v := getenv("MEMMATCH_SOUND"); v != "" {
		sound, err := strconv.ParseBool(v)
		if err != nil {
			return o, fmt.Errorf("invalid MEMMATCH_SOUND %q: %w", v, err)
		}
		o.Sound = sound
	}
	if v := getenv("MEMMATCH_LOG_FILE"); v != "" {
		o.LogFile = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		lvl, err := zerolog.ParseLevel(v)
		if err != nil {
			return o, fmt.Errorf("invalid LOG_LEVEL %q: %w", v, err)
		}
		o.LogLevel = lvl
	}
	return o, nil
}

// Parse applies command-line flags on top of o.
func Parse(o Options, args []string, output io.Writer) (Options, error) {
	fs := flag.NewFlagSet("memmatch", flag.ContinueOnError)
	fs.SetOutput(output)

	difficulty := difficultyFlag(o.Difficulty)
	mode := modeFlag(o.Mode)
	icons := listFlag(o.IconPaths)

	fs.Var(&difficulty, "difficulty", "Board size: easy, medium or hard")
	fs.Var(&difficulty, "d", "Board size (shorthand)")
	fs.Var(&mode, "mode", "Game mode: single or versus")
	fs.Var(&mode, "m", "Game mode (shorthand)")
	fs.StringVar(&o.Player1, "p1", o.Player1, "Name of player one (versus)")
	fs.StringVar(&o.Player2, "p2", o.Player2, "Name of player two (versus)")
	fs.Int64Var(&o.Seed, "seed", o.Seed, "Seed for board layout (0 picks a random seed)")
	fs.Var(&icons, "icons", "Icon theme file or directory (repeatable)")
	fs.BoolVar(&o.Sound, "sound", o.Sound, "Ring the terminal bell on flips and matches")
	fs.StringVar(&o.LogFile, "log", o.LogFile, "Write logs to this file")

	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: memmatch [options]\n")
		fmt.Fprintf(output, "\nOptions:\n")
		fmt.Fprintf(output, "   -d, --difficulty=LEVEL   easy (6 pairs), medium (8) or hard (12)\n")
		fmt.Fprintf(output, "   -m, --mode=MODE          single or versus\n")
		fmt.Fprintf(output, "       --p1=NAME --p2=NAME  Player names for versus mode\n")
		fmt.Fprintf(output, "       --seed=N             Reproducible board layout\n")
		fmt.Fprintf(output, "       --icons=PATH         Icon theme file or directory\n")
		fmt.Fprintf(output, "       --sound=false        Silence the terminal bell\n")
		fmt.Fprintf(output, "       --log=FILE           Write logs to FILE\n")
		fmt.Fprintf(output, "   -h, --help               Show this help message\n")
	}

	if err := fs.Parse(args); err != nil {
		return o, err
	}

	o.Difficulty = board.Difficulty(difficulty)
	o.Mode = game.Mode(mode)
	o.IconPaths = icons
	return o, nil
}

// NewLogger opens the log file named in o. Without one, logging is disabled.
func NewLogger(o Options) (zerolog.Logger, io.Closer, error) {
	if o.LogFile == "" {
		return zerolog.Nop(), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(o.LogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := zerolog.New(f).Level(o.LogLevel).With().Timestamp().Logger()
	return logger, f, nil
}

type difficultyFlag board.Difficulty

func (d *difficultyFlag) String() string {
	return string(*d)
}

func (d *difficultyFlag) Set(s string) error {
	v, err := board.ParseDifficulty(s)
	if err != nil {
		return err
	}
	*d = difficultyFlag(v)
	return nil
}

type modeFlag game.Mode

func (m *modeFlag) String() string {
	return string(*m)
}

func (m *modeFlag) Set(s string) error {
	v, err := game.ParseMode(s)
	if err != nil {
		return err
	}
	*m = modeFlag(v)
	return nil
}

type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, ",")
}

func (l *listFlag) Set(s string) error {
	*l = append(*l, s)
	return nil
}
