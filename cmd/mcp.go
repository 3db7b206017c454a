package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/gravemap/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing burial search and anniversary tools for AI agents.`,
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

		mcpserver.Version = Version

		st := cat.Status()
		fmt.Fprintf(os.Stderr, "gravemap MCP server started on stdio (source=%s, persons=%d)\n", st.Source, st.Persons)

		srv := mcpserver.NewServer(cat, cfg.Locale, cfg.AnniversaryWindowDays)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
