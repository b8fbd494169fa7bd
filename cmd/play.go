package cmd

import (
	"errors"
	"os"
	"tictactoe/agent"
	"tictactoe/console"
	"tictactoe/engine"
	"tictactoe/game"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var remote string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game against the trained agent",
	Long: `Plays one game against the trained model, or against a move server
with --remote. A coin flip decides who moves first and the first mover
plays X.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&remote, "remote", "", "URL of a move server to play instead of the local model")
	rootCmd.AddCommand(playCmd)
}

func newConsole(cmd *cobra.Command) *console.Console {
	return console.New(cmd.InOrStdin(), cmd.OutOrStdout(), isatty.IsTerminal(os.Stdout.Fd()))
}

func runPlay(cmd *cobra.Command, _ []string) error {
	c := newConsole(cmd)
	rng := newRand(resolveSeed())

	if remote != "" {
		player := engine.NewRemotePlayer(remote, nil)
		_, err := playGame(c, func(game.Mark) engine.Player { return player }, rng.Intn(2) == 0)
		return err
	}

	a, err := loadAgent(cfg.ModelPath, game.O, rng)
	if errors.Is(err, agent.ErrModelNotFound) {
		c.Println(noModel)
		return nil
	}
	if err != nil {
		return err
	}

	_, err = playGame(c, agentOpponent(a), rng.Intn(2) == 0)
	return err
}
