package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/gravemap/internal/records"
)

func TestReloadFinished(t *testing.T) {
	m := New()
	store := records.Aggregate([]records.RawRow{
		{Section: "A", Latitude: "1", Longitude: "2", LastName: "Nowak"},
		{Section: "A", Latitude: "1", Longitude: "2", LastName: "Nowakowa"},
		{Section: "B"},
	})

	m.ReloadFinished(store, 20*time.Millisecond, nil)
	m.ReloadFinished(nil, time.Millisecond, errors.New("offline"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.records))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.persons))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.skipped))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reloads.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reloads.WithLabelValues("error")))
}

func TestCountersAndHandler(t *testing.T) {
	m := New()
	m.SearchServed()
	m.SearchServed()
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.searches))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sessions))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "gravemap_searches_total 2")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.SearchServed()
	m.SessionOpened()
	m.SessionClosed()
	m.ReloadFinished(nil, 0, errors.New("x"))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 404, rec.Code)
}
