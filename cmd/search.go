package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/gravemap/internal/location"
	"github.com/ziadkadry99/gravemap/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Search buried persons by name",
	Long:  `Finds persons whose first name or surname contains the given text and prints them sorted by surname, then by plot.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		cat, database, err := loadCatalog(context.Background(), cfg, nil)
		if err != nil {
			return err
		}
		defer database.Close()

		query := strings.Join(args, " ")
		matches := search.Search(cat.Store(), query, location.ParseLocale(cfg.Locale))
		if len(matches) == 0 {
			fmt.Fprintf(os.Stderr, "No persons matching %q.\n", query)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tBORN\tDIED\tPLOT\tKEY")
		for _, r := range search.Rows(matches) {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Name, r.Birth, r.Death, r.Location, r.Key)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
