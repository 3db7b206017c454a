package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/gravemap/internal/photos"
)

var (
	photoPattern string
	photoJSON    bool
)

var photosCmd = &cobra.Command{
	Use:   "photos",
	Short: "Inspect grave photo storage",
}

var photosAuditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Report grave photos that are missing or unreferenced",
	Long: `Compares the photos every plot expects (images/<section>_<row>_<spot>_1.jpg
and _2.jpg) with the files in the configured photo store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		cat, database, err := loadCatalog(ctx, cfg, nil)
		if err != nil {
			return err
		}
		defer database.Close()

		store, err := buildPhotoStore(ctx, cfg)
		if err != nil {
			return err
		}

		report, err := photos.Audit(ctx, store, cat.Store().Records(), photoPattern)
		if err != nil {
			return fmt.Errorf("auditing photos: %w", err)
		}

		if photoJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		fmt.Printf("Referenced: %d\nStored:     %d\n", report.Referenced, report.Stored)
		fmt.Printf("\nMissing (%d):\n", len(report.Missing))
		for _, name := range report.Missing {
			fmt.Printf("  %s\n", name)
		}
		fmt.Printf("\nOrphaned (%d):\n", len(report.Orphaned))
		for _, name := range report.Orphaned {
			fmt.Printf("  %s\n", name)
		}
		return nil
	},
}

func init() {
	photosAuditCmd.Flags().StringVar(&photoPattern, "pattern", photos.DefaultPattern, "glob of stored files to consider")
	photosAuditCmd.Flags().BoolVar(&photoJSON, "json", false, "print the report as JSON")
	photosCmd.AddCommand(photosAuditCmd)
	rootCmd.AddCommand(photosCmd)
}
