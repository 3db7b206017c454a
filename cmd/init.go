package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/gravemap/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a gravemap configuration with an interactive wizard",
	Long:  `Runs an interactive wizard asking for the spreadsheet URL, snapshot database, photo storage and server settings, then writes .gravemap.yml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.RunWizard(cfgFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Configuration written to %s (serving on %s)\n", cfgFile, cfg.Addr())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
