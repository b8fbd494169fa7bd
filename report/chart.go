package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"tictactoe/trainer"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteTrainingChart renders the checkpoints of a training run as an HTML
// page with the win rate, the average value and the table growth.
func WriteTrainingChart(w io.Writer, checkpoints []trainer.Checkpoint) error {
	episodes := make([]string, 0, len(checkpoints))
	winRates := make([]opts.LineData, 0, len(checkpoints))
	averages := make([]opts.LineData, 0, len(checkpoints))
	states := make([]opts.LineData, 0, len(checkpoints))
	for _, c := range checkpoints {
		episodes = append(episodes, strconv.Itoa(c.Episode))
		winRates = append(winRates, opts.LineData{Value: c.WinRate})
		averages = append(averages, opts.LineData{Value: c.Stats.AverageValue})
		states = append(states, opts.LineData{Value: c.Stats.StatesLearned})
	}

	performance := charts.NewLine()
	performance.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Training progress",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)
	performance.SetXAxis(episodes).
		AddSeries("win rate (%)", winRates).
		AddSeries("average value", averages)

	growth := charts.NewLine()
	growth.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "States learned",
		}),
	)
	growth.SetXAxis(episodes).AddSeries("states", states)

	page := components.NewPage()
	page.AddCharts(performance, growth)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

func WriteTrainingChartFile(path string, checkpoints []trainer.Checkpoint) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create chart directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()
	return WriteTrainingChart(f, checkpoints)
}
