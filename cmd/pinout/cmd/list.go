package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available chips",
	Long: `List every chip from the built-in catalogue and --file with its
manufacturer, variants and function groups.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	defs, err := loadChips()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, d := range defs {
		labels := make([]string, len(d.Variants))
		for i := range d.Variants {
			labels[i] = d.Variants[i].Label(d.Name)
		}
		fmt.Fprintf(out, "%-16s %-20s %s\n", d.Name, d.Manufacturer, strings.Join(labels, ", "))

		if verbose {
			for _, g := range d.Data {
				state := "shown"
				if g.DefaultHidden {
					state = "hidden"
				}
				fmt.Fprintf(out, "    %-24s %-8s %d functions\n", g.Name, state, len(g.Functions))
			}
		}
	}
	return nil
}
