package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wyng-health/billaudit/internal/engine"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the detection rule catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintf(os.Stdout, "Catalog version %s\n\n", engine.CatalogVersion)

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tSEVERITY")
		for _, r := range engine.Catalog() {
			fmt.Fprintf(tw, "%s\t%s\n", r.Key, r.Severity)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
