package main

import (
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"mis-dashboard/internal/config"
	"mis-dashboard/internal/gateway"
	"mis-dashboard/internal/logging"
	"mis-dashboard/internal/usecase"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg       *config.Config
	logger    zerolog.Logger
	logCloser io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var configFile string

	root := &cobra.Command{
		Use:   "dashboard",
		Short: "Production MIS dashboard reconciliation",
		Long: `dashboard reads the dtm, combine, dispatch and stock datasets for a single
report date, joins dispatch with combine by normalized item category, appends
the stock summary rows and publishes the resulting item view.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			a.cfg = cfg
			logCfg := logging.DefaultConfig()
			logCfg.Level = cfg.Log.Level
			logCfg.Format = cfg.Log.Format
			logCfg.Output = cfg.Log.Output
			a.logger, a.logCloser = logging.New(logCfg)
			if cfg.ConfigFile != "" {
				a.logger.Debug().Str("file", cfg.ConfigFile).Msg("using config file")
			}
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.logCloser != nil {
				return a.logCloser.Close()
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (default is ./dashboard.yaml)")
	pf.String("source", "", "dataset backend: odata, csv or sqlite")
	pf.String("url", "", "OData service root URL")
	pf.String("csv-dir", "", "directory with one CSV file per dataset")
	pf.String("db", "", "SQLite database path")
	pf.String("date-field", "", "field the report date is filtered on")
	pf.String("log-level", "", "log level (trace, debug, info, warn, error)")
	pf.String("log-format", "", "log format (auto, json, console)")
	pf.StringP("output", "o", "", "output format (table, json, yaml)")

	root.AddCommand(newRunCmd(a), newServeCmd(a), newImportCmd(a))
	return root
}

// newReader builds the dataset reader selected by configuration. The
// returned close function releases the backend.
func (a *app) newReader() (usecase.DatasetReader, func() error, error) {
	noop := func() error { return nil }
	src := a.cfg.Source

	switch src.Kind {
	case config.SourceOData:
		return gateway.NewODataReader(src.URL,
			gateway.WithHTTPClient(&http.Client{Timeout: src.Timeout}),
			gateway.WithEntitySets(src.EntitySetsByDataset()),
		), noop, nil
	case config.SourceCSV:
		return gateway.NewCSVDatasetReader(src.Dir), noop, nil
	case config.SourceSQLite:
		store, err := gateway.NewSQLiteStore(src.DB)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
	return nil, nil, fmt.Errorf("unsupported source kind %q", src.Kind)
}

// newDashboard wires reader, fetcher, store and orchestrator together.
func (a *app) newDashboard() (*usecase.Dashboard, func() error, error) {
	reader, closeFn, err := a.newReader()
	if err != nil {
		return nil, nil, err
	}
	fetcher := usecase.NewFetcher(reader, a.cfg.Source.DateField)
	return usecase.NewDashboard(fetcher, usecase.NewResultStore(), a.logger), closeFn, nil
}
