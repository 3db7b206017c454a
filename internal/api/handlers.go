package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/gravemap/internal/anniversary"
	"github.com/ziadkadry99/gravemap/internal/catalog"
	"github.com/ziadkadry99/gravemap/internal/config"
	"github.com/ziadkadry99/gravemap/internal/location"
	"github.com/ziadkadry99/gravemap/internal/panel"
	"github.com/ziadkadry99/gravemap/internal/photos"
	"github.com/ziadkadry99/gravemap/internal/qr"
	"github.com/ziadkadry99/gravemap/internal/search"
)

// Marker is one map pin.
type Marker struct {
	Key       string  `json:"key"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

type configResponse struct {
	Map         config.MapConfig `json:"map"`
	Locale      string           `json:"locale"`
	WindowDays  int              `json:"anniversary_window_days"`
	PublicURL   string           `json:"public_url,omitempty"`
	Placeholder string           `json:"placeholder"`
}

type anniversariesResponse struct {
	Date    string             `json:"date"`
	Days    int                `json:"days"`
	Entries []anniversary.Item `json:"entries"`
}

func (a *API) handleConfig() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, configResponse{
			Map:         a.settings.Map,
			Locale:      a.tag.String(),
			WindowDays:  a.windowDays(),
			PublicURL:   a.settings.PublicURL,
			Placeholder: panel.Placeholder,
		})
	}
}

func (a *API) handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, a.catalog.Status())
	}
}

func (a *API) handleMarkers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs := a.catalog.Store().Records()
		markers := make([]Marker, 0, len(recs))
		for _, rec := range recs {
			markers = append(markers, Marker{Key: rec.Key, Latitude: rec.Latitude, Longitude: rec.Longitude})
		}
		writeJSON(w, http.StatusOK, markers)
	}
}

func (a *API) handleRecord() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vm, err := panel.Render(a.catalog.Store(), chi.URLParam(r, "key"))
		if errors.Is(err, panel.ErrNotFound) {
			writeError(w, http.StatusNotFound, "record not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, vm)
	}
}

func (a *API) handleQR() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		if _, ok := a.catalog.Store().Get(key); !ok {
			writeError(w, http.StatusNotFound, "record not found")
			return
		}

		size := qr.DefaultSize
		if v := r.URL.Query().Get("size"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 64 || n > 2048 {
				writeError(w, http.StatusBadRequest, "size must be between 64 and 2048")
				return
			}
			size = n
		}

		var buf bytes.Buffer
		if err := qr.EncodePNG(&buf, qr.GraveURL(a.settings.PublicURL, key), qr.Options{Size: size}); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.Write(buf.Bytes())
	}
}

func (a *API) handleSearch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		matches := search.Search(a.catalog.Store(), q, a.tag)
		a.metrics.SearchServed()
		writeJSON(w, http.StatusOK, search.NewResult(q, matches))
	}
}

func (a *API) handleAnniversaries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		days := a.windowDays()
		if v := query.Get("days"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 || n > 366 {
				writeError(w, http.StatusBadRequest, "days must be between 0 and 366")
				return
			}
			days = n
		}

		today := a.now()
		if v := query.Get("date"); v != "" {
			t, err := time.Parse("2006-01-02", v)
			if err != nil {
				writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
				return
			}
			today = t
		}

		entries := anniversary.Upcoming(a.catalog.Store(), today, days)
		writeJSON(w, http.StatusOK, anniversariesResponse{
			Date:    anniversary.FormatDate(today),
			Days:    days,
			Entries: anniversary.Items(entries),
		})
	}
}

func (a *API) handleReload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := a.catalog.Reload(r.Context()); err != nil {
			log.Printf("api: reload failed: %v", err)
			writeJSON(w, http.StatusBadGateway, struct {
				Error  string         `json:"error"`
				Status catalog.Status `json:"status"`
			}{err.Error(), a.catalog.Status()})
			return
		}
		writeJSON(w, http.StatusOK, a.catalog.Status())
	}
}

func (a *API) handlePhoto() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if a.photos == nil {
			writeError(w, http.StatusNotFound, "photo not found")
			return
		}
		name := location.PhotoDir + "/" + chi.URLParam(r, "*")

		rc, info, err := a.photos.Open(r.Context(), name)
		if errors.Is(err, photos.ErrNotFound) {
			writeError(w, http.StatusNotFound, "photo not found")
			return
		}
		if err != nil {
			log.Printf("api: opening photo %s: %v", name, err)
			writeError(w, http.StatusBadGateway, "photo unavailable")
			return
		}
		defer rc.Close()

		w.Header().Set("Content-Type", info.ContentType)
		if info.Size > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
		}
		w.Header().Set("Cache-Control", "public, max-age=3600")
		if _, err := io.Copy(w, rc); err != nil {
			log.Printf("api: sending photo %s: %v", name, err)
		}
	}
}

func (a *API) windowDays() int {
	if a.settings.WindowDays >= 0 {
		return a.settings.WindowDays
	}
	return anniversary.DefaultWindowDays
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
