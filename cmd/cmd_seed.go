package main

import (
	"fmt"

	"github.com/okian/scout/internal/adapters/render"
	repository "github.com/okian/scout/internal/adapters/repository"
	app "github.com/okian/scout/internal/app"
	"github.com/okian/scout/internal/seed"
	"github.com/okian/scout/pkg/logger"
	"github.com/spf13/cobra"
)

func newSeedCmd(c *cli) *cobra.Command {
	var (
		opts   seed.Options
		output string
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert synthetic observations for demos and load checks",
		Long: `Generates a reproducible event: --matches matches with up to six teams each,
drawn from a pool of --teams team numbers. The same --seed always produces the
same observations. With --dry-run nothing is written to the database; the
summaries of the generated data are printed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if output != "" {
				if err := seed.SaveToFile(output, seed.Generate(opts)); err != nil {
					return err
				}
				logger.Get().Info(ctx, "saved generated observations", logger.String("output", output))
			}

			var svc *app.Service
			if dryRun {
				svc = app.New(app.WithStore(repository.NewMemoryStore()), app.WithLogger(logger.Get()))
				if err := svc.Start(ctx); err != nil {
					return err
				}
			} else {
				var err error
				if svc, err = c.startService(ctx); err != nil {
					return err
				}
			}
			defer svc.Stop()

			stats, err := seed.Run(ctx, svc, opts)
			if err != nil {
				return err
			}
			if dryRun {
				entries, err := svc.Summaries(ctx, c.cfg.SortBy, c.cfg.SortDesc)
				if err != nil {
					return err
				}
				return render.Summaries(c.out, c.cfg.Format, entries)
			}
			_, err = fmt.Fprintf(c.out, "seeded %d observations for %d teams into %s\n", stats.Recorded, stats.Teams, c.cfg.DBPath)
			return err
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.Teams, "teams", seed.DefaultTeams, "size of the team pool")
	f.IntVar(&opts.Matches, "matches", seed.DefaultMatches, "number of matches")
	f.Int64Var(&opts.Seed, "seed", 1, "random seed")
	f.StringVar(&output, "output", "", "also write the generated observations to this JSON file")
	f.BoolVar(&dryRun, "dry-run", false, "generate into memory and print summaries")
	return cmd
}
