package main

import (
	"github.com/aretw0/cellfill/internal/cli"
	"github.com/aretw0/cellfill/internal/config"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the interactive list",
	Long: `Shows the list and the create button. Press Enter or Space to create a cell,
q to quit. With --session the list is resumed from and saved to the store.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		sessionID, _ := flags.GetString("session")
		if flags.Changed("seed") {
			cfg.Seed, _ = flags.GetUint64("seed")
		}
		if flags.Changed("height") {
			cfg.Display.Height, _ = flags.GetInt("height")
		}
		if noColor, _ := flags.GetBool("no-color"); noColor {
			cfg.Display.Color = false
		}
		if noBanner, _ := flags.GetBool("no-banner"); noBanner {
			cfg.Display.Banner = false
		}

		opts := cli.RunOptions{
			SessionID: sessionID,
			Locale:    locale(cfg),
			Seed:      cfg.Seed,
			Height:    cfg.Display.Height,
			Color:     cfg.Display.Color,
			Banner:    cfg.Display.Banner,
			Logger:    logger,
		}

		if sessionID != "" {
			// A named session outlives the process.
			if cfg.Store.Backend == config.StoreMemory {
				cfg.Store.Backend = config.StoreFile
			}
			p, err := cli.OpenStore(cmd.Context(), cfg.Store, logger)
			if err != nil {
				return err
			}
			defer p.Close()
			opts.Store = p.Store
		}

		return cli.RunSession(opts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("session", "s", "", "Resume and persist the named session")
	runCmd.Flags().Uint64("seed", 0, "Seed the random source (0 uses the clock)")
	runCmd.Flags().Int("height", 0, "Visible rows (0 follows the terminal)")
	runCmd.Flags().Bool("no-color", false, "Disable colors")
	runCmd.Flags().Bool("no-banner", false, "Skip the startup banner")

	// 'run' is the default if no command is provided
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
	rootCmd.Args = runCmd.Args
	rootCmd.RunE = runCmd.RunE
}
