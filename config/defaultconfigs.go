package config

import (
	"time"

	"github.com/they4kman/gosenku/game"
)

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		Peg:   "o",
		Hole:  ".",
		Blank: " ",
	}

	DefaultConfig = Config{
		Game: GameConfig{
			UndoDepth: game.DefaultUndoDepth,
			Tracking:  game.DefaultTracking,
		},
		Theme: DefaultTheme,
		Director: DirectorConfig{
			MoveDelay: 300 * time.Millisecond,
		},
	}
}
