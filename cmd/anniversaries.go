package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/gravemap/internal/anniversary"
)

var (
	anniversaryDays int
	anniversaryDate string
)

var anniversariesCmd = &cobra.Command{
	Use:   "anniversaries",
	Short: "List upcoming death anniversaries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		today := time.Now()
		if anniversaryDate != "" {
			today, err = time.Parse("2006-01-02", anniversaryDate)
			if err != nil {
				return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
			}
		}
		days := cfg.AnniversaryWindowDays
		if cmd.Flags().Changed("days") {
			days = anniversaryDays
		}

		cat, database, err := loadCatalog(context.Background(), cfg, nil)
		if err != nil {
			return err
		}
		defer database.Close()

		items := anniversary.Items(anniversary.Upcoming(cat.Store(), today, days))
		if len(items) == 0 {
			fmt.Fprintf(os.Stderr, "No anniversaries after %s.\n", anniversary.FormatDate(today))
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tWHEN\tNAME\tKEY")
		for _, it := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", it.Date, it.Label, it.Name, it.Key)
		}
		return w.Flush()
	},
}

func init() {
	anniversariesCmd.Flags().IntVar(&anniversaryDays, "days", anniversary.DefaultWindowDays, "days ahead to look")
	anniversariesCmd.Flags().StringVar(&anniversaryDate, "date", "", "start date as YYYY-MM-DD (default today)")
	rootCmd.AddCommand(anniversariesCmd)
}
