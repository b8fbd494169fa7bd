package cmd

import (
	"github.com/spf13/cobra"
)

var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Explain how the agent learns",
	Run: func(cmd *cobra.Command, _ []string) {
		printAbout(newConsole(cmd))
	},
}

func init() {
	rootCmd.AddCommand(aboutCmd)
}
