package cmd

import (
	"github.com/spf13/cobra"
)

func runMenu(cmd *cobra.Command, _ []string) error {
	return menu(newConsole(cmd), cfg.ModelPath, cfg.EvalGames, newRand(resolveSeed()))
}
