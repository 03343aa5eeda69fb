package main

import (
	"context"
	"fmt"

	"github.com/okian/rentals/internal/adapters/catalog"
	"github.com/okian/rentals/internal/config"
	"github.com/okian/rentals/pkg/logger"
	"github.com/spf13/cobra"
)

// cli holds flag values and the state shared by subcommands after the
// persistent pre-run has loaded configuration.
type cli struct {
	cfgFile  string
	logLevel string
	dataPath string

	cfg *config.Config
	log logger.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "rentals",
		Short: "Compute movie rental charges and render customer statements",
		Long: `rentals prices movie rentals by category and renders per-customer
billing statements with loyalty points.

Examples:
  rentals statement
  rentals statement --data rentals.yaml --customer martin
  rentals serve --config rentals.yaml`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "YAML config file (default $RENTALS_CONFIG)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		newStatementCmd(c),
		newMoviesCmd(c),
		newServeCmd(c),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration (defaults -> file -> env) and initializes logging.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		cfg *config.Config
		err error
	)
	if c.cfgFile != "" {
		cfg, err = config.LoadFile(ctx, c.cfgFile)
	} else {
		cfg, err = config.Load(ctx)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithOutput(cmd.ErrOrStderr())); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	c.log = logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		c.log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	c.cfg = cfg
	return nil
}

// dataset returns the dataset named by --data, then data_path, falling back
// to the built-in sample.
func (c *cli) dataset(ctx context.Context) (*catalog.Dataset, error) {
	path := c.dataPath
	if path == "" && c.cfg != nil {
		path = c.cfg.DataPath
	}
	if path == "" {
		return catalog.Sample(), nil
	}
	ds, err := catalog.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	c.log.Debug(ctx, "dataset loaded", logger.String("path", path), logger.Int("customers", len(ds.Customers)))
	return ds, nil
}
