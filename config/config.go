// Package config loads game settings with viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. BRAWLER_MATCH_DIFFICULTY.
const EnvPrefix = "BRAWLER"

type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`
	// Format is json or console.
	Format string `mapstructure:"format"`
}

type WindowConfig struct {
	Width  int     `mapstructure:"width"`
	Height int     `mapstructure:"height"`
	Title  string  `mapstructure:"title"`
	Scale  float64 `mapstructure:"scale"`
}

type MatchConfig struct {
	Difficulty  string        `mapstructure:"difficulty"`
	Duration    time.Duration `mapstructure:"duration"`
	RoundsToWin int           `mapstructure:"rounds_to_win"`
	DeathDelay  time.Duration `mapstructure:"death_delay"`
	TickRate    int           `mapstructure:"tick_rate"`
	// Seed drives the bot and enemy pick. Zero seeds from the clock.
	Seed uint64 `mapstructure:"seed"`
}

type CombatConfig struct {
	HitDelay          time.Duration `mapstructure:"hit_delay"`
	HitStop           time.Duration `mapstructure:"hit_stop"`
	KnockbackX        float64       `mapstructure:"knockback_x"`
	KnockbackY        float64       `mapstructure:"knockback_y"`
	BlockFactor       float64       `mapstructure:"block_factor"`
	PointBlank        float64       `mapstructure:"point_blank"`
	VerticalTolerance float64       `mapstructure:"vertical_tolerance"`
}

type StaminaConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Max     float64 `mapstructure:"max"`
	Drain   float64 `mapstructure:"drain"`
	Regen   float64 `mapstructure:"regen"`
}

type AIConfig struct {
	// Script names a tengo decide script under prefabs/scripts. Empty uses
	// the built-in policy.
	Script string `mapstructure:"script"`
}

type PrefabsConfig struct {
	Dir   string `mapstructure:"dir"`
	Watch bool   `mapstructure:"watch"`
}

type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Window  WindowConfig  `mapstructure:"window"`
	Match   MatchConfig   `mapstructure:"match"`
	Combat  CombatConfig  `mapstructure:"combat"`
	Stamina StaminaConfig `mapstructure:"stamina"`
	AI      AIConfig      `mapstructure:"ai"`
	Prefabs PrefabsConfig `mapstructure:"prefabs"`
}

// Load reads the optional YAML file at path, applies BRAWLER_ environment
// overrides, and validates the result. An empty path uses defaults and the
// environment only.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already configured viper instance.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration with nothing overridden.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("window.width", 800)
	v.SetDefault("window.height", 600)
	v.SetDefault("window.title", "Stickman Brawler")
	v.SetDefault("window.scale", 1.0)

	v.SetDefault("match.difficulty", "HARD")
	v.SetDefault("match.duration", "99s")
	v.SetDefault("match.rounds_to_win", 1)
	v.SetDefault("match.death_delay", "2s")
	v.SetDefault("match.tick_rate", 60)
	v.SetDefault("match.seed", 0)

	v.SetDefault("combat.hit_delay", "200ms")
	v.SetDefault("combat.hit_stop", "60ms")
	v.SetDefault("combat.knockback_x", 200)
	v.SetDefault("combat.knockback_y", -100)
	v.SetDefault("combat.block_factor", 0.1)
	v.SetDefault("combat.point_blank", 50)
	v.SetDefault("combat.vertical_tolerance", 100)

	v.SetDefault("stamina.enabled", false)
	v.SetDefault("stamina.max", 100)
	v.SetDefault("stamina.drain", 31.25)
	v.SetDefault("stamina.regen", 18.75)

	v.SetDefault("ai.script", "")

	v.SetDefault("prefabs.dir", "prefabs")
	v.SetDefault("prefabs.watch", false)
}

// Validate reports every violation at once.
func (c Config) Validate() error {
	return errors.Join(
		validateLogging(c.Logging),
		validateWindow(c.Window),
		validateMatch(c.Match),
		validateCombat(c.Combat),
		validateStamina(c.Stamina),
	)
}

func validateLogging(l LoggingConfig) error {
	var errs []error
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		errs = append(errs, fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		errs = append(errs, fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format))
	}
	return errors.Join(errs...)
}

func validateWindow(w WindowConfig) error {
	var errs []error
	if w.Width <= 0 || w.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", w.Width, w.Height))
	}
	if w.Scale <= 0 {
		errs = append(errs, fmt.Errorf("window.scale must be positive, got %v", w.Scale))
	}
	return errors.Join(errs...)
}

func validateMatch(m MatchConfig) error {
	var errs []error
	validDifficulties := map[string]bool{"EASY": true, "MEDIUM": true, "HARD": true}
	if !validDifficulties[strings.ToUpper(m.Difficulty)] {
		errs = append(errs, fmt.Errorf("match.difficulty must be one of [EASY, MEDIUM, HARD], got %q", m.Difficulty))
	}
	if m.Duration < time.Second {
		errs = append(errs, fmt.Errorf("match.duration must be at least 1s, got %s", m.Duration))
	}
	if m.RoundsToWin < 1 {
		errs = append(errs, fmt.Errorf("match.rounds_to_win must be >= 1, got %d", m.RoundsToWin))
	}
	if m.DeathDelay < 0 {
		errs = append(errs, fmt.Errorf("match.death_delay must not be negative, got %s", m.DeathDelay))
	}
	if m.TickRate < 1 {
		errs = append(errs, fmt.Errorf("match.tick_rate must be >= 1, got %d", m.TickRate))
	}
	return errors.Join(errs...)
}

func validateCombat(c CombatConfig) error {
	var errs []error
	if c.HitDelay < 0 || c.HitStop < 0 {
		errs = append(errs, errors.New("combat.hit_delay and combat.hit_stop must not be negative"))
	}
	if c.BlockFactor < 0 || c.BlockFactor > 1 {
		errs = append(errs, fmt.Errorf("combat.block_factor must be within [0, 1], got %v", c.BlockFactor))
	}
	if c.PointBlank < 0 || c.VerticalTolerance <= 0 {
		errs = append(errs, errors.New("combat.point_blank must be >= 0 and combat.vertical_tolerance > 0"))
	}
	return errors.Join(errs...)
}

func validateStamina(s StaminaConfig) error {
	if !s.Enabled {
		return nil
	}
	var errs []error
	if s.Max <= 0 {
		errs = append(errs, fmt.Errorf("stamina.max must be positive, got %v", s.Max))
	}
	if s.Drain < 0 || s.Regen < 0 {
		errs = append(errs, errors.New("stamina.drain and stamina.regen must not be negative"))
	}
	return errors.Join(errs...)
}
