package cmd

import (
	"errors"
	"tictactoe/agent"
	"tictactoe/config"
	"tictactoe/experiments"
	"tictactoe/game"

	"github.com/spf13/cobra"
)

var records bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Pit the trained agent against a random player",
	Long: `Plays the trained model as X against a random O without learning and
reports the results. With --records every game and move is written as CSV
under the records directory.`,
	RunE: runWatch,
}

func init() {
	flags := watchCmd.Flags()
	flags.BoolVar(&records, "records", false, "Write game and move records")
	flags.String("records-dir", config.Default().RecordsDir, "Directory for evaluation records")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	c := newConsole(cmd)
	rng := newRand(resolveSeed())
	a, err := loadAgent(cfg.ModelPath, game.X, rng)
	if errors.Is(err, agent.ErrModelNotFound) {
		c.Println(noModel)
		return nil
	}
	if err != nil {
		return err
	}

	var options []experiments.Option
	if records {
		options = append(options, experiments.WithMetrics())
	}
	ev, err := experiments.RunEvaluation(a, cfg.EvalGames, rng, options...)
	if err != nil {
		return err
	}
	printEvaluation(c, ev)

	if records {
		dir, err := experiments.Store(cfg.RecordsDir, ev)
		if err != nil {
			return err
		}
		c.Printf("Records: %s\n", dir)
	}
	return nil
}
