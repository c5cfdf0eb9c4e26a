package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Game      GameConfig      `toml:"game"`
	Speed     SpeedConfig     `toml:"speed"`
	Input     InputConfig     `toml:"input"`
	Logging   LoggingConfig   `toml:"logging"`
	Database  DatabaseConfig  `toml:"database"`
	Scripting ScriptingConfig `toml:"scripting"`
	Audio     AudioConfig     `toml:"audio"`
}

type GameConfig struct {
	Level      string `toml:"level"` // path to a level YAML file
	PlayerName string `toml:"player_name"`
	Seed       int64  `toml:"seed"`  // 0 = seed from the clock
	Debug      bool   `toml:"debug"` // draw per-entity debug lines
}

// SpeedConfig drives the fallback tick interval formula used when no Lua
// script overrides it.
type SpeedConfig struct {
	MinInterval    time.Duration `toml:"min_interval"`
	MaxInterval    time.Duration `toml:"max_interval"`
	MaxSpeed       int           `toml:"max_speed"`
	ApplesPerLevel int           `toml:"apples_per_level"` // apples eaten per speed step
}

type InputConfig struct {
	QueueSize int               `toml:"queue_size"`
	Keys      map[string]string `toml:"keys"` // key name -> action name
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // the terminal belongs to the game screen
}

// DatabaseConfig enables high-score persistence when DSN is non-empty.
type DatabaseConfig struct {
	DSN             string        `toml:"dsn"`
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
	TopScores       int           `toml:"top_scores"`
}

type ScriptingConfig struct {
	Dir string `toml:"dir"`
}

type AudioConfig struct {
	Enabled   bool          `toml:"enabled"`
	Frequency float64       `toml:"frequency"`
	Duration  time.Duration `toml:"duration"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the game cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Speed.MinInterval <= 0 {
		errs = append(errs, errors.New("speed.min_interval must be positive"))
	}
	if c.Speed.MaxInterval < c.Speed.MinInterval {
		errs = append(errs, errors.New("speed.max_interval must not be below speed.min_interval"))
	}
	if c.Speed.MaxSpeed <= 0 {
		errs = append(errs, errors.New("speed.max_speed must be positive"))
	}
	if c.Speed.ApplesPerLevel <= 0 {
		errs = append(errs, errors.New("speed.apples_per_level must be positive"))
	}
	if c.Input.QueueSize <= 0 {
		errs = append(errs, errors.New("input.queue_size must be positive"))
	}
	if c.Game.Level == "" {
		errs = append(errs, errors.New("game.level is required"))
	}
	return errors.Join(errs...)
}

func Defaults() *Config {
	return &Config{
		Game: GameConfig{
			Level:      "data/levels/classic.yaml",
			PlayerName: "player",
		},
		Speed: SpeedConfig{
			MinInterval:    200 * time.Millisecond,
			MaxInterval:    700 * time.Millisecond,
			MaxSpeed:       20,
			ApplesPerLevel: 1,
		},
		Input: InputConfig{
			QueueSize: 16,
			Keys: map[string]string{
				"w":      "up",
				"a":      "left",
				"s":      "down",
				"d":      "right",
				"Up":     "up",
				"Left":   "left",
				"Down":   "down",
				"Right":  "right",
				"q":      "exit",
				"Esc":    "exit",
				"Ctrl+C": "exit",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "snek.log",
		},
		Database: DatabaseConfig{
			MaxOpenConns:    4,
			MaxIdleConns:    1,
			ConnMaxLifetime: 30 * time.Minute,
			TopScores:       10,
		},
		Scripting: ScriptingConfig{
			Dir: "scripts",
		},
		Audio: AudioConfig{
			Enabled:   false,
			Frequency: 880,
			Duration:  50 * time.Millisecond,
		},
	}
}
