package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/aretw0/cellfill/internal/presentation/tui"
	"github.com/aretw0/cellfill/pkg/domain"
	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Show the display metadata of every tag",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		catalog := domain.Catalog(locale(cfg))
		out := cmd.OutOrStdout()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			data, err := json.MarshalIndent(catalog, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		if preview, _ := cmd.Flags().GetBool("preview"); preview {
			theme := tui.NewTheme(out, locale(cfg), 0, cfg.Display.Color)
			for _, tag := range domain.Tags {
				fmt.Fprintln(out, theme.Row(tag))
			}
			return nil
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TAG\tGLYPH\tLABEL\tDESCRIPTION\tICON\tCOLOR")
		for _, m := range catalog {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", m.Tag, m.Glyph, m.Label, m.Description, m.Icon, m.Color)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
	tagsCmd.Flags().Bool("json", false, "Print as JSON")
	tagsCmd.Flags().Bool("preview", false, "Render each tag as a list row")
}
