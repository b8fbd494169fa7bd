package cmd

import (
	"fmt"
	"os"
	"tictactoe/config"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
)

var (
	cfgFile string
	cfg     *config.Config
	v       = config.NewViper()
)

// Config keys and the flags that set them. Not every command defines every
// flag.
var flagKeys = map[string]string{
	"model_path":    "model",
	"progress_path": "progress",
	"chart_path":    "chart",
	"history_path":  "history-db",
	"records_dir":   "records-dir",
	"episodes":      "episodes",
	"eval_games":    "games",
	"learning_rate": "learning-rate",
	"discount":      "discount",
	"exploration":   "exploration",
	"seed":          "seed",
	"log_level":     "log-level",
	"addr":          "addr",
}

var rootCmd = &cobra.Command{
	Use:   "tictactoe",
	Short: "Tic-tac-toe with a Q-learning agent",
	Long: `A tabular Q-learning agent that learns tic-tac-toe by playing a random
opponent, then plays you or proves itself against random play.

Run without a command for the interactive menu.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runMenu,
}

func init() {
	d := config.Default()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (yaml, json or toml)")
	flags.String("model", d.ModelPath, "Model file")
	flags.String("history-db", d.HistoryPath, "Training history database")
	flags.String("log-level", d.LogLevel, "Log level (debug, info, warn, error)")
	flags.Uint64("seed", d.Seed, "Random seed, 0 seeds from the clock")
	flags.Int("games", d.EvalGames, "Games to play against the random player")
}

func Execute() error {
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, _ []string) error {
	for key, name := range flagKeys {
		if err := config.BindFlag(v, cmd.Flags(), key, name); err != nil {
			return err
		}
	}

	var err error
	if cfg, err = config.Load(v, cfgFile); err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	return nil
}

// resolveSeed resolves the configured seed, drawing one from the clock for 0 so
// that it can still be recorded.
func resolveSeed() uint64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return uint64(time.Now().UnixNano())
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
