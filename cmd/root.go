package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/they4kman/gosenku/config"
	"github.com/they4kman/gosenku/director/random"
	"github.com/they4kman/gosenku/game"
	"github.com/they4kman/gosenku/ui"
)

var options struct {
	configPath   string
	positionPath string
	undoDepth    int
	tracking     bool
	useDirector  bool
	delay        time.Duration
	seed         int64
	logLevel     logrus.Level
	saveConfig   bool
}

var rootCmd = &cobra.Command{
	Use:   "gosenku",
	Short: "Play peg solitaire (Senku) in the terminal",
	Long: `gosenku is the classic 33-hole peg solitaire. Jump pegs over each
other to remove them, and try to finish with a single peg in the center.

Run with no arguments to play manually
	gosenku

Use the director flag to watch the computer play random moves
	gosenku --director
`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if options.configPath != "" {
		cfg, err = config.Load(options.configPath)
	} else {
		cfg, err = config.InitConfig()
	}
	if err != nil {
		return nil, err
	}

	// Flags given on the command line win over the config file
	if cmd.Flags().Changed("undo-depth") {
		cfg.Game.UndoDepth = options.undoDepth
	}
	if cmd.Flags().Changed("tracking") {
		cfg.Game.Tracking = options.tracking
	}
	if cmd.Flags().Changed("delay") {
		cfg.Director.MoveDelay = options.delay
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, in io.Reader, out io.Writer) error {
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(options.logLevel)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if options.saveConfig {
		path, err := cfg.Save()
		if err != nil {
			return err
		}
		logger.WithField("path", path).Info("Saved config")
	}

	gameConfig := cfg.GameConfig()
	gameConfig.Logger = logger
	if options.positionPath != "" {
		data, err := os.ReadFile(options.positionPath)
		if err != nil {
			return errors.Wrap(err, "read position")
		}
		if gameConfig.Snapshot, err = game.LoadSnapshot(string(data)); err != nil {
			return errors.Wrapf(err, "position %s", options.positionPath)
		}
	}

	engine, err := game.NewEngine(gameConfig)
	if err != nil {
		return err
	}
	terminal := ui.NewTerminal(engine, cfg.Theme, out)
	defer terminal.Detach()

	if options.useDirector {
		seed := options.seed
		if !cmd.Flags().Changed("seed") {
			seed = time.Now().UnixNano()
		}
		logger.WithField("seed", seed).Debug("Starting director")
		playDirected(engine, terminal, random.NewDirector(seed, logger), cfg.Director.MoveDelay)
		return nil
	}

	return terminal.Run(in)
}

// playDirected lets the director play until it runs out of moves
func playDirected(engine *game.Engine, terminal *ui.Terminal, director game.Director, delay time.Duration) {
	director.Init(engine)
	defer director.End()

	terminal.Render()
	for director.Act() {
		terminal.Render()
		time.Sleep(delay)
	}
	if engine.State() != game.Over {
		engine.CheckEnd()
		terminal.Render()
	}
}

type logLevelValue logrus.Level

func newLogLevelValue(val logrus.Level, p *logrus.Level) *logLevelValue {
	*p = val
	return (*logLevelValue)(p)
}

func (levelVal *logLevelValue) String() string {
	return logrus.Level(*levelVal).String()
}

func (levelVal *logLevelValue) Set(value string) error {
	level, err := logrus.ParseLevel(value)
	if err != nil {
		return fmt.Errorf("invalid log level %q", value)
	}
	*levelVal = logLevelValue(level)
	return nil
}

func (levelVal *logLevelValue) Type() string {
	return "level"
}

func init() {
	flags := rootCmd.Flags()
	defaults := config.DefaultConfig

	flags.StringVarP(&options.configPath, "config", "c", "", "Read settings from this YAML file instead of the user config")
	flags.StringVarP(&options.positionPath, "position", "p", "", "Start from the board position in this YAML snapshot")
	flags.IntVarP(&options.undoDepth, "undo-depth", "u", defaults.Game.UndoDepth, "Number of moves that can be undone")
	flags.BoolVar(&options.tracking, "tracking", defaults.Game.Tracking, "Detect the end of the game after every move")
	flags.BoolVarP(&options.useDirector, "director", "d", false, "Make the computer play random moves")
	flags.DurationVar(&options.delay, "delay", defaults.Director.MoveDelay, "Pause between computer moves")
	flags.Int64Var(&options.seed, "seed", 0, "Random seed for the director (default: current time)")
	flags.BoolVar(&options.saveConfig, "save-config", false, "Write the effective settings to the user config file")
	flags.Var(newLogLevelValue(logrus.WarnLevel, &options.logLevel), "log-level", `Logging verbosity, written to stderr.
One of: trace, debug, info, warn, error, fatal, panic`)
}
