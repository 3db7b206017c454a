package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/gravemap/internal/api"
	"github.com/ziadkadry99/gravemap/internal/metrics"
	"github.com/ziadkadry99/gravemap/internal/server"
	"github.com/ziadkadry99/gravemap/internal/session"
	"github.com/ziadkadry99/gravemap/internal/site"
)

var (
	servePort  int
	serveTitle string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the cemetery map web server",
	Long: `Starts the HTTP server with the map page, the JSON API and the live
session websocket. When server.domain is set, certificates are obtained
from Let's Encrypt and the server listens on :80 and :443.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort > 0 {
			cfg.Server.Port = servePort
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		m := metrics.New()
		cat, database, err := loadCatalog(ctx, cfg, m)
		if err != nil {
			return err
		}
		defer database.Close()

		if cfg.Source.RefreshMinutes > 0 {
			go cat.Watch(ctx, time.Duration(cfg.Source.RefreshMinutes)*time.Minute)
		}

		photoStore, err := buildPhotoStore(ctx, cfg)
		if err != nil {
			return err
		}

		pages, err := site.New(site.Options{Title: serveTitle, Locale: cfg.Locale, AboutFile: cfg.AboutFile})
		if err != nil {
			return fmt.Errorf("rendering pages: %w", err)
		}

		srv := server.New(server.Config{
			Host:           cfg.Server.Host,
			Port:           cfg.Server.Port,
			Domain:         cfg.Server.Domain,
			CertDir:        cfg.Server.CertDir,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		}, m)

		r := srv.Router()
		api.New(cat, photoStore, m, api.Settings{
			Map:        cfg.Map,
			Locale:     cfg.Locale,
			WindowDays: cfg.AnniversaryWindowDays,
			PublicURL:  cfg.PublicURL,
		}).RegisterRoutes(r)
		session.NewHub(cat, m, cfg.Locale).RegisterRoutes(r)
		pages.RegisterRoutes(r)

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		st := cat.Status()
		fmt.Fprintf(os.Stderr, "gravemap v%s starting on %s\n", Version, cfg.Addr())
		if cfg.Server.Domain != "" {
			fmt.Fprintf(os.Stderr, "  Domain: %s (TLS via Let's Encrypt)\n", cfg.Server.Domain)
		}
		fmt.Fprintf(os.Stderr, "  Source: %s\n", st.Source)
		fmt.Fprintf(os.Stderr, "  Persons: %d in %d plots\n", st.Persons, st.Records)

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveTitle, "title", "", "page title")
	rootCmd.AddCommand(serveCmd)
}
