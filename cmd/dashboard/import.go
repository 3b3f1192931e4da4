package main

import (
	"github.com/spf13/cobra"

	"mis-dashboard/internal/domain"
	"mis-dashboard/internal/gateway"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Load the CSV datasets into the SQLite database",
		Long: `import replaces every source table in the SQLite database (--db) with the
contents of the matching CSV file in --csv-dir.`,
		Example: `  dashboard import --csv-dir ./data --db dashboard.db
  dashboard run --source sqlite --db dashboard.db --date 2025-01-15`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := gateway.NewSQLiteStore(a.cfg.Source.DB)
			if err != nil {
				return err
			}
			defer store.Close()

			counts, err := store.Import(cmd.Context(), gateway.NewCSVDatasetReader(a.cfg.Source.Dir))
			if err != nil {
				return err
			}
			for _, ds := range domain.SourceDatasets {
				a.logger.Info().Str("dataset", string(ds)).Int("rows", counts[ds]).Msg("imported")
			}
			return nil
		},
	}
}
