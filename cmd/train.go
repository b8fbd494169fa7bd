package cmd

import (
	"fmt"
	"sort"
	"strings"
	"tictactoe/agent"
	"tictactoe/config"
	"tictactoe/game"
	"tictactoe/history"
	"tictactoe/meta"
	"tictactoe/report"
	"tictactoe/trainer"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var preset string

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the agent against a random opponent",
	Long: `Plays the agent as X against a random O, learning from every game.

Progress is reported at episodes 100, 500, 1000, 5000 and 10000 and at the
last episode. The exploration rate is lowered after checkpoints 500, 1000
and 5000. The model is saved once, when training is done.`,
	RunE: runTrain,
}

func init() {
	d := config.Default()
	flags := trainCmd.Flags()
	flags.Int("episodes", d.Episodes, "Number of training games")
	flags.StringVar(&preset, "preset", "", "Named training length ("+strings.Join(presetNames(), ", ")+"), overrides --episodes")
	flags.Float64("learning-rate", d.LearningRate, "Learning rate (alpha)")
	flags.Float64("discount", d.Discount, "Discount factor (gamma)")
	flags.Float64("exploration", d.Exploration, "Initial exploration rate (epsilon)")
	flags.String("progress", d.ProgressPath, "Progress log")
	flags.String("chart", d.ChartPath, "Training chart, empty to skip")
	rootCmd.AddCommand(trainCmd)
}

func presetNames() []string {
	names := make([]string, 0, len(meta.Presets))
	for name := range meta.Presets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return meta.Presets[names[i]] < meta.Presets[names[j]] })
	return names
}

func runTrain(cmd *cobra.Command, _ []string) error {
	episodes := cfg.Episodes
	if preset != "" {
		n, ok := meta.Presets[preset]
		if !ok {
			return fmt.Errorf("unknown preset %q, expected one of %s", preset, strings.Join(presetNames(), ", "))
		}
		episodes = n
	}

	seed := resolveSeed()
	rng := newRand(seed)
	a := agent.New(game.X,
		agent.WithLearningRate(cfg.LearningRate),
		agent.WithDiscount(cfg.Discount),
		agent.WithExploration(cfg.Exploration),
		agent.WithRand(rng),
	)

	progress, err := trainer.OpenProgressLog(cfg.ProgressPath)
	if err != nil {
		return err
	}
	defer progress.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Training with %d games...\n", episodes)

	started := time.Now()
	t := trainer.New(a, rng, trainer.WithProgress(progress), trainer.WithModelPath(cfg.ModelPath))
	summary, err := t.Train(episodes)
	if err != nil {
		return err
	}
	finished := time.Now()

	for _, c := range summary.Checkpoints {
		fmt.Fprintln(out, c)
	}

	if cfg.ChartPath != "" {
		if err := report.WriteTrainingChartFile(cfg.ChartPath, summary.Checkpoints); err != nil {
			return err
		}
	}

	store, err := history.NewStore(cfg.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()
	id, err := store.Record(runRecord(summary, cfg, seed, started, finished))
	if err != nil {
		return err
	}
	log.Info().Msgf("recorded training run %s", id)

	fmt.Fprintf(out, "\nTraining complete in %s\n", finished.Sub(started).Round(time.Millisecond))
	fmt.Fprintf(out, "Model file: %s\n", cfg.ModelPath)
	fmt.Fprintf(out, "Progress log: %s\n", cfg.ProgressPath)
	if cfg.ChartPath != "" {
		fmt.Fprintf(out, "Chart: %s\n", cfg.ChartPath)
	}
	return nil
}

func runRecord(summary trainer.Summary, conf *config.Config, seed uint64, started, finished time.Time) history.Run {
	run := history.Run{
		StartedAt:     started,
		FinishedAt:    finished,
		Episodes:      summary.Episodes,
		LearningRate:  conf.LearningRate,
		Discount:      conf.Discount,
		Exploration:   conf.Exploration,
		Seed:          seed,
		Wins:          summary.Results.Wins,
		Losses:        summary.Results.Losses,
		Ties:          summary.Results.Ties,
		StatesLearned: summary.Stats.StatesLearned,
		TotalValues:   summary.Stats.TotalValues,
		AverageValue:  summary.Stats.AverageValue,
		ModelPath:     conf.ModelPath,
	}
	for _, c := range summary.Checkpoints {
		run.Checkpoints = append(run.Checkpoints, history.Checkpoint{
			Episode:       c.Episode,
			Wins:          c.Results.Wins,
			Losses:        c.Results.Losses,
			Ties:          c.Results.Ties,
			WinRate:       c.WinRate,
			StatesLearned: c.Stats.StatesLearned,
			AverageValue:  c.Stats.AverageValue,
			Exploration:   c.Exploration,
		})
	}
	return run
}
