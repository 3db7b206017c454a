package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/gravemap/internal/progress"
	"github.com/ziadkadry99/gravemap/internal/records"
	"github.com/ziadkadry99/gravemap/internal/rows"
)

var importCmd = &cobra.Command{
	Use:   "import [file-or-url]",
	Short: "Import the burial spreadsheet into the snapshot database",
	Long: `Reads the burial spreadsheet as CSV, from the configured source URL or the
given file or URL, and replaces the stored snapshot. The snapshot is used
whenever the live spreadsheet cannot be fetched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	location := cfg.Source.URL
	if len(args) == 1 {
		location = args[0]
	}
	if location == "" {
		return fmt.Errorf("no spreadsheet given: pass a file or URL, or set source.url in %s", cfgFile)
	}

	src := rows.NewCSVSource(location, cfg.Source.Columns)
	data, err := src.Rows(ctx)
	if err != nil {
		return err
	}

	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	reporter := progress.NewReporter("Importing rows")
	reporter.Start(len(data))
	imp, err := rows.NewSnapshotStore(database).Save(ctx, src.Name(), data, func(done int) {
		reporter.Update(done, "")
	})
	reporter.Finish()
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	store := records.Aggregate(data)
	fmt.Fprintf(os.Stderr, "Imported %d rows from %s (import %s)\n", imp.RowCount, location, imp.ID)
	fmt.Fprintf(os.Stderr, "  %d persons in %d plots, %d rows skipped\n", store.PersonCount(), store.Len(), store.Skipped())
	return nil
}
