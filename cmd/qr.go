package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/gravemap/internal/qr"
)

var (
	qrOutput string
	qrSize   int
)

var qrCmd = &cobra.Command{
	Use:   "qr <key>",
	Short: "Render the plaque QR code for a plot",
	Long:  `Writes a PNG QR code linking to the plot on the public map. Requires public_url in the config.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.PublicURL == "" {
			return fmt.Errorf("public_url is not set in %s", cfgFile)
		}

		cat, database, err := loadCatalog(context.Background(), cfg, nil)
		if err != nil {
			return err
		}
		defer database.Close()

		key := args[0]
		if _, ok := cat.Store().Get(key); !ok {
			return fmt.Errorf("no plot with key %q", key)
		}

		out := qrOutput
		if out == "" {
			out = key + ".png"
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		defer f.Close()

		link := qr.GraveURL(cfg.PublicURL, key)
		if err := qr.EncodePNG(f, link, qr.Options{Size: qrSize}); err != nil {
			return fmt.Errorf("encoding QR code: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s (%s)\n", out, link)
		return nil
	},
}

func init() {
	qrCmd.Flags().StringVarP(&qrOutput, "output", "o", "", "output file (default <key>.png)")
	qrCmd.Flags().IntVar(&qrSize, "size", qr.DefaultSize, "image size in pixels")
	rootCmd.AddCommand(qrCmd)
}
