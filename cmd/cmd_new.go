package main

import (
	"errors"
	"fmt"

	repository "github.com/okian/scout/internal/adapters/repository"
	"github.com/okian/scout/pkg/logger"
	"github.com/spf13/cobra"
)

func newNewCmd(c *cli) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create an empty observation database",
		Long: `Creates the database file named by --db with an empty observations table.
An existing file is kept unless --force is given, in which case it is replaced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := repository.Create(ctx, c.cfg.DBPath, force, repository.WithLogger(logger.Named("repository")))
			if err != nil {
				if errors.Is(err, repository.ErrDatabaseExists) {
					return fmt.Errorf("%w; pass --force to replace it", err)
				}
				return err
			}
			if err := store.Close(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.out, "created %s\n", store.Path())
			return err
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing database")
	return cmd
}
