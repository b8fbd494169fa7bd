package cmd

import (
	"fmt"
	"text/tabwriter"
	"tictactoe/history"
	"time"

	"github.com/spf13/cobra"
)

var limit int

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List past training runs, or show one with its checkpoints",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&limit, "limit", 10, "Number of runs to list")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(cfg.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	if len(args) == 1 {
		run, err := store.Get(args[0])
		if err != nil {
			return fmt.Errorf("training run %s: %w", args[0], err)
		}
		fmt.Fprintf(w, "Run\t%s\n", run.ID)
		fmt.Fprintf(w, "Started\t%s\n", run.StartedAt.Local().Format(time.DateTime))
		fmt.Fprintf(w, "Duration\t%s\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
		fmt.Fprintf(w, "Hyperparameters\talpha=%.2f gamma=%.2f epsilon=%.2f seed=%d\n", run.LearningRate, run.Discount, run.Exploration, run.Seed)
		fmt.Fprintf(w, "Model\t%s\n\n", run.ModelPath)
		fmt.Fprintln(w, "EPISODE\tWINS\tLOSSES\tTIES\tWIN RATE\tSTATES\tAVG Q\tEPSILON")
		for _, c := range run.Checkpoints {
			fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%.2f%%\t%d\t%.3f\t%.2f\n",
				c.Episode, c.Wins, c.Losses, c.Ties, c.WinRate, c.StatesLearned, c.AverageValue, c.Exploration)
		}
		return nil
	}

	runs, err := store.Recent(limit)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "RUN\tSTARTED\tEPISODES\tWINS\tLOSSES\tTIES\tSTATES\tAVG Q")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%.3f\n",
			run.ID, run.StartedAt.Local().Format(time.DateTime), run.Episodes,
			run.Wins, run.Losses, run.Ties, run.StatesLearned, run.AverageValue)
	}
	return nil
}
