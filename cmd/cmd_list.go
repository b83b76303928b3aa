package main

import (
	"github.com/okian/scout/internal/adapters/render"
	"github.com/spf13/cobra"
)

func newListCmd(c *cli) *cobra.Command {
	var (
		team   int
		format string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded observations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, err := c.startService(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			rows, err := svc.Observations(ctx, team)
			if err != nil {
				return err
			}
			return render.Observations(c.out, c.outputFormat(cmd, format), rows)
		},
	}
	cmd.Flags().IntVar(&team, "team", 0, "only this team's observations")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json, csv")
	return cmd
}
