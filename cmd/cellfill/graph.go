package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/cellfill/internal/presentation/graph"
	"github.com/aretw0/cellfill/pkg/domain"
	"github.com/aretw0/cellfill/pkg/random"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [<draws>...]",
	Short: "Export a sequence as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart (graph LR) of a stored session (--session) or of
the list produced by the given draws.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		sessionID, _ := cmd.Flags().GetString("session")

		var seq domain.Sequence
		switch {
		case sessionID != "" && len(args) > 0:
			return fmt.Errorf("--session and draws cannot be used together")
		case sessionID != "":
			p, err := openSessionStore(cmd)
			if err != nil {
				return err
			}
			defer p.Close()
			snap, err := p.Store.Load(cmd.Context(), sessionID)
			if err != nil {
				return fmt.Errorf("loading session '%s': %w", sessionID, err)
			}
			seq = snap.Cells
		default:
			script, err := random.ParseScript(strings.Join(args, " "))
			if err != nil {
				return err
			}
			for script.Remaining() > 0 {
				seq = domain.AppendAndReduce(seq, script.Draw())
			}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(seq, locale(cfg), &graph.Overlay{ScrollTo: seq.LastIndex()}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("session", "s", "", "Render a stored session")
}
