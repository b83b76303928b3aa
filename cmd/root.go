package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	repository "github.com/okian/scout/internal/adapters/repository"
	app "github.com/okian/scout/internal/app"
	"github.com/okian/scout/internal/config"
	"github.com/okian/scout/pkg/logger"
	"github.com/spf13/cobra"
)

// cli holds state shared by every subcommand.
type cli struct {
	out    io.Writer
	errOut io.Writer

	configPath string
	dbPath     string
	logLevel   string

	cfg *config.Config
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "scout",
		Short: "Record match scouting observations and summarize teams",
		Long: `scout keeps one observation per team per match in a local SQLite file and
recomputes per-team averages, minibot statistics and card counts on demand.

Start with "scout new", record with "scout add" and review with "scout summary"
or the local page served by "scout serve".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "YAML config file (or set SCOUT_CONFIG)")
	root.PersistentFlags().StringVar(&c.dbPath, "db", "", "observation database file (default from config: scout.db)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newNewCmd(c),
		newAddCmd(c),
		newListCmd(c),
		newSummaryCmd(c),
		newSeedCmd(c),
		newServeCmd(c),
	)
	return root
}

// setup loads configuration, applies flag overrides and configures logging.
func (c *cli) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := config.Load(ctx, c.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath = c.dbPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.SetFormat(cfg.LogFormat, c.errOut); err != nil {
		_ = logger.Init(logger.WithWriter(c.errOut))
		logger.Get().Warn(ctx, "invalid log_format; falling back to text", logger.String("log_format", cfg.LogFormat))
	}
	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	c.cfg = cfg
	logger.Get().Debug(ctx, "configuration loaded",
		logger.String("db", cfg.DBPath),
		logger.String("config", c.configPath))
	return nil
}

// startService opens the configured database behind a service.
func (c *cli) startService(ctx context.Context) (*app.Service, error) {
	svc := app.New(
		app.WithDatabasePath(c.cfg.DBPath),
		app.WithLogger(logger.Get()),
	)
	if err := svc.Start(ctx); err != nil {
		if errors.Is(err, repository.ErrDatabaseNotFound) {
			return nil, fmt.Errorf("%w; create it with \"scout new\"", err)
		}
		return nil, err
	}
	return svc, nil
}

// outputFormat returns the --format flag when set, else the configured format.
func (c *cli) outputFormat(cmd *cobra.Command, flagValue string) string {
	if cmd.Flags().Changed("format") {
		return flagValue
	}
	return c.cfg.Format
}
