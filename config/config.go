package config

import (
	"fmt"
	"os"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"github.com/they4kman/gosenku/game"
	"gopkg.in/yaml.v2"
)

var (
	cfgFile = "gosenku/config.yaml"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("config error: %s", e.err)
}

type GameConfig struct {
	UndoDepth int  `yaml:"undo_depth" env:"GOSENKU_UNDO_DEPTH"`
	Tracking  bool `yaml:"tracking" env:"GOSENKU_TRACKING"`
}

// Theme holds the symbols used to draw the board in the terminal
type Theme struct {
	Peg   string `yaml:"peg"`
	Hole  string `yaml:"hole"`
	Blank string `yaml:"blank"`
}

type DirectorConfig struct {
	// Pause between moves when the computer plays
	MoveDelay time.Duration `yaml:"move_delay" env:"GOSENKU_MOVE_DELAY"`
}

type Config struct {
	Game     GameConfig     `yaml:"game"`
	Theme    Theme          `yaml:"theme"`
	Director DirectorConfig `yaml:"director"`
}

// InitConfig loads the user's config file from the XDG config directory, if
// there is one, then applies environment overrides.
func InitConfig() (*Config, error) {
	config := DefaultConfig
	if absPath, err := xdg.SearchConfigFile(cfgFile); err == nil {
		if err := config.readFile(absPath); err != nil {
			return nil, err
		}
	}
	return config.finish()
}

// Load reads the config file at path, which must exist, then applies
// environment overrides.
func Load(path string) (*Config, error) {
	config := DefaultConfig
	if err := config.readFile(path); err != nil {
		return nil, err
	}
	return config.finish()
}

func (c Config) finish() (*Config, error) {
	if err := env.Parse(&c); err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c.Game.UndoDepth < 1 {
		return &InvalidConfig{fmt.Sprintf("undo_depth must be at least 1, got %d", c.Game.UndoDepth)}
	}
	if c.Director.MoveDelay < 0 {
		return &InvalidConfig{"move_delay must not be negative"}
	}
	symbols := []struct{ name, symbol string }{
		{"peg", c.Theme.Peg},
		{"hole", c.Theme.Hole},
		{"blank", c.Theme.Blank},
	}
	for _, s := range symbols {
		name, symbol := s.name, s.symbol
		if utf8.RuneCountInString(symbol) != 1 {
			return &InvalidConfig{fmt.Sprintf("theme %s must be a single character, got %q", name, symbol)}
		}
		if r, _ := utf8.DecodeRuneInString(symbol); !unicode.IsPrint(r) {
			return &InvalidConfig{fmt.Sprintf("theme %s must be printable, got %q", name, symbol)}
		}
	}
	return nil
}

// GameConfig returns the engine settings this config describes
func (c *Config) GameConfig() game.GameConfig {
	gameConfig := game.NewGameConfig()
	gameConfig.UndoDepth = c.Game.UndoDepth
	gameConfig.Tracking = c.Game.Tracking
	return gameConfig
}

// Save writes the config to the user's XDG config directory, returning the
// path written.
func (c *Config) Save() (string, error) {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return "", errors.Wrap(err, "locate config file")
	}
	return absPath, c.SaveTo(absPath)
}

func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	if err := os.WriteFile(path, data, 0664); err != nil {
		return errors.Wrapf(err, "write config %s", path)
	}
	return nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return errors.Wrapf(err, "decode config %s", path)
	}
	return nil
}
