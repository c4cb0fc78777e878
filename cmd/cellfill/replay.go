package main

import (
	"strings"

	"github.com/aretw0/cellfill/internal/cli"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay <draws>...",
	Short: "Render the list produced by a fixed sequence of draws",
	Long: `Feeds the given draws to a fresh list and prints the result.
A, 1, t and + draw Alive; D, 0, f and - draw Dead.

  cellfill replay AAA DDD`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		trace, _ := cmd.Flags().GetBool("trace")
		noColor, _ := cmd.Flags().GetBool("no-color")
		count, _ := cmd.Flags().GetInt("count")

		_, err = cli.Replay(cmd.Context(), cmd.OutOrStdout(), strings.Join(args, " "), cli.ReplayOptions{
			Locale: locale(cfg),
			Color:  cfg.Display.Color && !noColor,
			Trace:  trace,
			Count:  count,
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().BoolP("trace", "t", false, "Print the rule applied by each draw")
	replayCmd.Flags().Bool("no-color", false, "Disable colors")
	replayCmd.Flags().IntP("count", "n", 0, "Number of creates to perform (default: one per draw)")
}
