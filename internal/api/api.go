// Package api serves the map page's JSON API: markers, panels, search,
// anniversaries, plaque QR codes and photos.
package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/text/language"

	"github.com/ziadkadry99/gravemap/internal/catalog"
	"github.com/ziadkadry99/gravemap/internal/config"
	"github.com/ziadkadry99/gravemap/internal/metrics"
	"github.com/ziadkadry99/gravemap/internal/photos"
)

// Settings are the display settings handed to the page.
type Settings struct {
	Map        config.MapConfig
	Locale     string
	WindowDays int
	PublicURL  string
}

// API holds the handlers' dependencies.
type API struct {
	catalog  *catalog.Catalog
	photos   photos.Store
	metrics  *metrics.Metrics
	settings Settings
	tag      language.Tag
	now      func() time.Time
}

// New creates the API. photoStore and m may be nil.
func New(cat *catalog.Catalog, photoStore photos.Store, m *metrics.Metrics, settings Settings) *API {
	tag, err := language.Parse(settings.Locale)
	if err != nil {
		tag = language.Polish
	}
	return &API{
		catalog:  cat,
		photos:   photoStore,
		metrics:  m,
		settings: settings,
		tag:      tag,
		now:      time.Now,
	}
}

// RegisterRoutes mounts the API under /api and photos under /images.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/config", a.handleConfig())
		r.Get("/status", a.handleStatus())
		r.Get("/records", a.handleMarkers())
		r.Get("/records/{key}", a.handleRecord())
		r.Get("/records/{key}/qr.png", a.handleQR())
		r.Get("/search", a.handleSearch())
		r.Get("/anniversaries", a.handleAnniversaries())
		r.Post("/reload", a.handleReload())
	})
	r.Get("/images/*", a.handlePhoto())
}
