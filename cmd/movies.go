package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newMoviesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "movies",
		Short: "List the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.service(cmd)
			if err != nil {
				return err
			}
			defer svc.Stop()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY")
			for _, m := range svc.Movies(cmd.Context()) {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", m.ID, m.Title, m.Category)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&c.dataPath, "data", "d", "", "YAML dataset file (default built-in sample)")
	return cmd
}
