package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/crypto/acme/autocert"

	"github.com/ziadkadry99/gravemap/internal/metrics"
)

// Config holds server configuration.
type Config struct {
	Host           string
	Port           int
	Domain         string   // when set, serve HTTPS on :443 with Let's Encrypt certificates
	CertDir        string   // autocert cache directory
	AllowedOrigins []string // CORS origins; empty means localhost only
}

// Server is the gravemap HTTP server.
type Server struct {
	cfg        Config
	metrics    *metrics.Metrics
	router     chi.Router
	httpServer *http.Server
	acmeServer *http.Server
}

// New creates a server. m may be nil, in which case /metrics is not served.
func New(cfg Config, m *metrics.Metrics) *Server {
	s := &Server{cfg: cfg, metrics: m}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}
	if len(s.cfg.AllowedOrigins) > 0 {
		corsOpts.AllowedOrigins = s.cfg.AllowedOrigins
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	// Pages, API and sessions are registered by feature packages via
	// RegisterRoutes.
	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Start serves plain HTTP on Host:Port, or HTTPS with automatic
// certificates when a domain is configured. It blocks until the server
// stops; a graceful Shutdown yields nil.
func (s *Server) Start() error {
	if s.cfg.Domain != "" {
		return s.startTLS()
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.httpServer = s.newHTTPServer(addr, s.router)

	log.Printf("gravemap server listening on %s", addr)
	return ignoreClosed(s.httpServer.ListenAndServe())
}

func (s *Server) startTLS() error {
	mgr := s.certManager()

	// :80 answers ACME challenges and redirects everything else.
	redirect := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "https://"+s.cfg.Domain+r.URL.RequestURI(), http.StatusMovedPermanently)
	})
	s.acmeServer = &http.Server{
		Addr:              ":80",
		Handler:           mgr.HTTPHandler(redirect),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("gravemap ACME and redirect listener on :80")
		if err := ignoreClosed(s.acmeServer.ListenAndServe()); err != nil {
			log.Printf("server: acme listener: %v", err)
		}
	}()

	s.httpServer = s.newHTTPServer(":443", s.router)
	s.httpServer.TLSConfig = mgr.TLSConfig()
	s.httpServer.TLSConfig.MinVersion = tls.VersionTLS12

	log.Printf("gravemap server for %s listening on :443", s.cfg.Domain)
	return ignoreClosed(s.httpServer.ListenAndServeTLS("", ""))
}

// certManager issues certificates for the domain and its www. alias only.
func (s *Server) certManager() *autocert.Manager {
	dir := s.cfg.CertDir
	if dir == "" {
		dir = "certs"
	}
	return &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(dir),
		HostPolicy: autocert.HostWhitelist(s.cfg.Domain, "www."+s.cfg.Domain),
	}
}

func (s *Server) newHTTPServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if s.acmeServer != nil {
		errs = append(errs, s.acmeServer.Shutdown(ctx))
	}
	if s.httpServer != nil {
		errs = append(errs, s.httpServer.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

func ignoreClosed(err error) error {
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
