package main

import (
	"fmt"

	"github.com/Nomadcxx/jellydiff/internal/similarity"
	"github.com/Nomadcxx/jellydiff/internal/ui"
	"github.com/spf13/cobra"
)

func newAlgorithmsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List the comparison algorithms",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			algs := similarity.Algorithms()
			rows := make([][]string, 0, len(algs))
			for _, a := range algs {
				rows = append(rows, []string{a.Name, a.Description})
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderTable([]string{"Algorithm", "Description"}, rows, nil))
		},
	}
}
