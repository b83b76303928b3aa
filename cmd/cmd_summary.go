package main

import (
	"strings"

	"github.com/okian/scout/internal/adapters/render"
	"github.com/okian/scout/internal/domain/aggregate"
	"github.com/spf13/cobra"
)

func newSummaryCmd(c *cli) *cobra.Command {
	var (
		sortBy string
		desc   bool
		format string
	)
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Recompute and show per-team summaries",
		Long: `Rescans every observation and prints one summary per team. Teams appear in
the order they were first recorded unless --sort names a column:
  ` + strings.Join(aggregate.SortKeys(), ", ") + `
Teams that never attempted the minibot show "-" as their average place and
sort last.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("sort") {
				sortBy = c.cfg.SortBy
			}
			if !cmd.Flags().Changed("desc") {
				desc = c.cfg.SortDesc
			}
			svc, err := c.startService(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			entries, err := svc.Summaries(ctx, sortBy, desc)
			if err != nil {
				return err
			}
			return render.Summaries(c.out, c.outputFormat(cmd, format), entries)
		},
	}
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort by column")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json, csv")
	return cmd
}
