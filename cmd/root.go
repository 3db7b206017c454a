package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/gravemap/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "gravemap",
	Short: "Interactive cemetery map and burial directory",
	Long: `Gravemap serves an interactive map of a cemetery built from a published
burial spreadsheet. Visitors search by name, open a plot to see who rests
there with photos of the grave, and browse upcoming death anniversaries.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
