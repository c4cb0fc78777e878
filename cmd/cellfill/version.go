package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/cellfill"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cellfill",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cellfill version %s\n", strings.TrimSpace(cellfill.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
