package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/cellfill/internal/cli"
	"github.com/aretw0/cellfill/internal/config"
	"github.com/aretw0/cellfill/internal/presentation/tui"
	"github.com/aretw0/cellfill/pkg/domain"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage persistent sessions",
	Long:  `List, inspect, and remove sessions kept in the configured store (.cellfill/sessions by default).`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all stored sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openSessionStore(cmd)
		if err != nil {
			return err
		}
		defer p.Close()

		sessions, err := p.Store.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No sessions found.")
			return nil
		}

		fmt.Fprintln(out, "Sessions:")
		for _, s := range sessions {
			fmt.Fprintln(out, "- "+s)
		}
		return nil
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Show the cells of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID := args[0]
		p, err := openSessionStore(cmd)
		if err != nil {
			return err
		}
		defer p.Close()

		snap, err := p.Store.Load(cmd.Context(), sessionID)
		if err != nil {
			return fmt.Errorf("loading session '%s': %w", sessionID, err)
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			data, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		cfg, _ := loadConfig(cmd)
		theme := tui.NewTheme(out, locale(cfg), 0, false)
		fmt.Fprint(out, theme.List(snap.Cells, tui.NewViewport(0)))
		fmt.Fprintf(out, "\n%d cells (%d alive, %d dead, %d life) after %d creates\n",
			len(snap.Cells),
			snap.Cells.Count(domain.Alive),
			snap.Cells.Count(domain.Dead),
			snap.Cells.Count(domain.Life),
			snap.Created,
		)
		return nil
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if !all && len(args) == 0 {
			return fmt.Errorf("requires at least 1 session id, or --all")
		}

		p, err := openSessionStore(cmd)
		if err != nil {
			return err
		}
		defer p.Close()

		ctx := cmd.Context()
		if all {
			if args, err = p.Store.List(ctx); err != nil {
				return fmt.Errorf("listing sessions: %w", err)
			}
		}

		out := cmd.OutOrStdout()
		failed := 0
		for _, sessionID := range args {
			if err := p.Store.Delete(ctx, sessionID); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error removing '%s': %v\n", sessionID, err)
				failed++
				continue
			}
			fmt.Fprintf(out, "Removed session '%s'\n", sessionID)
		}

		if failed > 0 {
			return fmt.Errorf("%d session(s) could not be removed", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)

	sessionInspectCmd.Flags().Bool("json", false, "Print the raw snapshot")
	sessionRmCmd.Flags().Bool("all", false, "Remove every stored session")
}

// openSessionStore opens the configured store. The in-memory backend has
// nothing to manage between processes, so it falls back to the file store.
func openSessionStore(cmd *cobra.Command) (*cli.Persistence, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Store.Backend == config.StoreMemory {
		cfg.Store.Backend = config.StoreFile
	}
	return cli.OpenStore(cmd.Context(), cfg.Store, logger)
}
