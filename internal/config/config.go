package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/sinkisle/internal/game"
)

// Settings are the process-level knobs shared by every command. Environment
// variables (optionally from a .env file) provide defaults; flags override.
type Settings struct {
	Players    int
	Seed       uint64
	RulesFile  string
	LayoutFile string
	MaxTurns   int
	Addr       string
	LogLevel   logrus.Level
}

// Load reads SINKISLE_* variables. envFile is loaded first when it exists;
// variables already set in the process win over the file.
func Load(envFile string) (Settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	s := Settings{
		RulesFile:  os.Getenv("SINKISLE_RULES"),
		LayoutFile: os.Getenv("SINKISLE_LAYOUT"),
		Addr:       envOr("SINKISLE_ADDR", ":8080"),
	}

	var err error
	if s.Players, err = envInt("SINKISLE_PLAYERS", 2); err != nil {
		return Settings{}, err
	}
	if s.MaxTurns, err = envInt("SINKISLE_MAX_TURNS", 0); err != nil {
		return Settings{}, err
	}
	if v := os.Getenv("SINKISLE_SEED"); v != "" {
		if s.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return Settings{}, fmt.Errorf("invalid SINKISLE_SEED %q: %w", v, err)
		}
	}
	if s.LogLevel, err = logrus.ParseLevel(envOr("SINKISLE_LOG_LEVEL", "info")); err != nil {
		return Settings{}, fmt.Errorf("invalid SINKISLE_LOG_LEVEL: %w", err)
	}
	return s, nil
}

// RegisterFlags binds the table flags to fs, using the current values as
// defaults.
func (s *Settings) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&s.Players, "players", s.Players, "number of players (2-4)")
	fs.Uint64Var(&s.Seed, "seed", s.Seed, "shuffle seed (0 = random)")
	fs.StringVar(&s.RulesFile, "rules", s.RulesFile, "path to a rules YAML file (default: standard rules)")
	fs.StringVar(&s.LayoutFile, "layout", s.LayoutFile, "path to a layout YAML file (default: classic island)")
	fs.IntVar(&s.MaxTurns, "max-turns", s.MaxTurns, "stop after this many turns (0 = no limit)")
}

// GameConfig builds a game config from the settings, reading the rules and
// layout files if given.
func (s Settings) GameConfig() (game.Config, error) {
	cfg := game.Config{Players: s.Players, Seed: s.Seed}
	if s.RulesFile != "" {
		rules, err := game.LoadRules(s.RulesFile)
		if err != nil {
			return cfg, fmt.Errorf("rules %s: %w", s.RulesFile, err)
		}
		cfg.Rules = &rules
	}
	if s.LayoutFile != "" {
		layout, err := game.LoadLayout(s.LayoutFile)
		if err != nil {
			return cfg, fmt.Errorf("layout %s: %w", s.LayoutFile, err)
		}
		cfg.Layout = layout
	}
	return cfg, nil
}

// Logger returns a process logger writing to stderr at the configured level.
func (s Settings) Logger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(s.LogLevel)
	return l
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}
