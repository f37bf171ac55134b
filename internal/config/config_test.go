package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"SINKISLE_PLAYERS", "SINKISLE_SEED", "SINKISLE_RULES", "SINKISLE_LAYOUT", "SINKISLE_MAX_TURNS", "SINKISLE_ADDR", "SINKISLE_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Players)
	assert.Zero(t, s.Seed)
	assert.Equal(t, ":8080", s.Addr)
	assert.Equal(t, logrus.InfoLevel, s.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SINKISLE_PLAYERS", "4")
	t.Setenv("SINKISLE_SEED", "42")
	t.Setenv("SINKISLE_MAX_TURNS", "50")
	t.Setenv("SINKISLE_LOG_LEVEL", "debug")

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4, s.Players)
	assert.Equal(t, uint64(42), s.Seed)
	assert.Equal(t, 50, s.MaxTurns)
	assert.Equal(t, logrus.DebugLevel, s.LogLevel)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SINKISLE_PLAYERS", "lots")
	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("SINKISLE_PLAYERS", "")
	t.Setenv("SINKISLE_SEED", "-1")
	_, err = Load("")
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv("SINKISLE_PLAYERS", "")
	t.Setenv("SINKISLE_ADDR", "")
	// godotenv.Load sets variables for the whole process; t.Setenv above
	// restores them afterwards.
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SINKISLE_ADDR=:9090\n"), 0o644))
	os.Unsetenv("SINKISLE_ADDR")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", s.Addr)

	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err, "a missing env file is fine")
}

func TestFlagsOverride(t *testing.T) {
	s := Settings{Players: 2, MaxTurns: 10}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	s.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-players", "3", "-seed", "9"}))
	assert.Equal(t, 3, s.Players)
	assert.Equal(t, uint64(9), s.Seed)
	assert.Equal(t, 10, s.MaxTurns)
}

func TestGameConfig(t *testing.T) {
	dir := t.TempDir()
	rules := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(rules, []byte("starting_water_level: 3\n"), 0o644))

	cfg, err := Settings{Players: 3, Seed: 7, RulesFile: rules}.GameConfig()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Players)
	assert.Equal(t, uint64(7), cfg.Seed)
	require.NotNil(t, cfg.Rules)
	assert.Equal(t, 3, cfg.Rules.StartingWaterLevel)
	assert.Equal(t, 5, cfg.Rules.HandLimit)
	assert.Nil(t, cfg.Layout)

	_, err = Settings{Players: 2, LayoutFile: filepath.Join(dir, "nope.yaml")}.GameConfig()
	assert.Error(t, err)
}
