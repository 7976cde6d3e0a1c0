package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "HARD", cfg.Match.Difficulty)
	assert.Equal(t, 99*time.Second, cfg.Match.Duration)
	assert.Equal(t, 1, cfg.Match.RoundsToWin)
	assert.Equal(t, 2*time.Second, cfg.Match.DeathDelay)
	assert.Equal(t, 200*time.Millisecond, cfg.Combat.HitDelay)
	assert.Equal(t, 60*time.Millisecond, cfg.Combat.HitStop)
	assert.Equal(t, -100.0, cfg.Combat.KnockbackY)
	assert.False(t, cfg.Stamina.Enabled)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, "prefabs", cfg.Prefabs.Dir)
	assert.Equal(t, cfg, Default())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brawler.yaml")
	content := `
logging:
  level: debug
  format: json
match:
  difficulty: easy
  rounds_to_win: 2
  duration: 60s
stamina:
  enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "easy", cfg.Match.Difficulty)
	assert.Equal(t, 2, cfg.Match.RoundsToWin)
	assert.Equal(t, 60*time.Second, cfg.Match.Duration)
	assert.True(t, cfg.Stamina.Enabled)
	assert.Equal(t, 100.0, cfg.Stamina.Max, "unset keys keep defaults")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BRAWLER_MATCH_DIFFICULTY", "MEDIUM")
	t.Setenv("BRAWLER_STAMINA_ENABLED", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "MEDIUM", cfg.Match.Difficulty)
	assert.True(t, cfg.Stamina.Enabled)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateCollectsEveryViolation(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "trace"
	cfg.Match.Difficulty = "NIGHTMARE"
	cfg.Match.RoundsToWin = 0
	cfg.Combat.BlockFactor = 2

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"logging.level", "match.difficulty", "match.rounds_to_win", "combat.block_factor"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidateStaminaOnlyWhenEnabled(t *testing.T) {
	cfg := Default()
	cfg.Stamina.Max = 0
	assert.NoError(t, cfg.Validate())

	cfg.Stamina.Enabled = true
	assert.Error(t, cfg.Validate())
}

func TestPropertyBlockFactorRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := Default()
		cfg.Combat.BlockFactor = rapid.Float64Range(0, 1).Draw(t, "factor")
		if err := cfg.Validate(); err != nil {
			t.Fatalf("factor %v rejected: %v", cfg.Combat.BlockFactor, err)
		}
	})
}
