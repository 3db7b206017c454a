package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/gravemap/internal/catalog"
	"github.com/ziadkadry99/gravemap/internal/metrics"
	"github.com/ziadkadry99/gravemap/internal/records"
	"github.com/ziadkadry99/gravemap/internal/rows"
)

func dial(t *testing.T) *websocket.Conn {
	t.Helper()
	cat := catalog.New(&rows.Static{Data: []records.RawRow{
		{Section: "A", Row: "II", Spot: "3", Latitude: "49.1", Longitude: "19.1", FirstName: "Jan", LastName: "Kowalski"},
		{Section: "B", Row: "I", Spot: "1", Latitude: "49.2", Longitude: "19.2", FirstName: "Anna", LastName: "Nowak"},
	}}, nil)
	require.NoError(t, cat.Reload(context.Background()))

	r := chi.NewRouter()
	NewHub(cat, metrics.New(), "pl").RegisterRoutes(r)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/session"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func exchange(t *testing.T, conn *websocket.Conn, req request, n int) []response {
	t.Helper()
	require.NoError(t, conn.WriteJSON(req))
	out := make([]response, 0, n)
	for i := 0; i < n; i++ {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var resp response
		require.NoError(t, conn.ReadJSON(&resp))
		out = append(out, resp)
	}
	return out
}

func TestSelectPushesSelectionThenPanel(t *testing.T) {
	conn := dial(t)

	got := exchange(t, conn, request{Type: "select", Key: "A_II_3"}, 2)
	assert.Equal(t, "selection", got[0].Type)
	assert.Equal(t, &Selection{Previous: "", Current: "A_II_3"}, got[0].Selection)
	assert.Equal(t, "panel", got[1].Type)
	require.NotNil(t, got[1].Panel)
	assert.Equal(t, "Jan Kowalski", got[1].Panel.Persons[0].Name)
	assert.NotEmpty(t, got[1].SessionID)
	assert.Equal(t, got[0].SessionID, got[1].SessionID)

	got = exchange(t, conn, request{Type: "select", Key: "B_I_1"}, 2)
	assert.Equal(t, &Selection{Previous: "A_II_3", Current: "B_I_1"}, got[0].Selection)
}

func TestSelectMissKeepsSelection(t *testing.T) {
	conn := dial(t)
	exchange(t, conn, request{Type: "select", Key: "A_II_3"}, 2)

	got := exchange(t, conn, request{Type: "select", Key: "nope"}, 1)
	assert.Equal(t, "error", got[0].Type)
	assert.Equal(t, "record not found", got[0].Error)

	// The viewer still opens the photos of the kept selection.
	got = exchange(t, conn, request{Type: "viewer_open", Index: 1}, 1)
	require.NotNil(t, got[0].Viewer)
	assert.Equal(t, "images/A_II_3_2.jpg", got[0].Viewer.Photo)
}

func TestClear(t *testing.T) {
	conn := dial(t)
	exchange(t, conn, request{Type: "select", Key: "A_II_3"}, 2)
	exchange(t, conn, request{Type: "viewer_open"}, 1)

	got := exchange(t, conn, request{Type: "clear"}, 2)
	assert.Equal(t, "selection", got[0].Type)
	assert.Equal(t, &Selection{Previous: "A_II_3", Current: ""}, got[0].Selection)
	assert.Equal(t, "viewer", got[1].Type)
	assert.False(t, got[1].Viewer.Open)
}

func TestSelectClosesViewer(t *testing.T) {
	conn := dial(t)
	exchange(t, conn, request{Type: "select", Key: "A_II_3"}, 2)
	exchange(t, conn, request{Type: "viewer_open"}, 1)
	exchange(t, conn, request{Type: "viewer_zoom", Delta: 1000}, 1)

	got := exchange(t, conn, request{Type: "select", Key: "B_I_1"}, 3)
	assert.Equal(t, "selection", got[0].Type)
	assert.Equal(t, "panel", got[1].Type)
	assert.Equal(t, "viewer", got[2].Type)
	require.NotNil(t, got[2].Viewer)
	assert.False(t, got[2].Viewer.Open)

	got = exchange(t, conn, request{Type: "viewer_next"}, 1)
	assert.False(t, got[0].Viewer.Open)
	assert.Empty(t, got[0].Viewer.Photos)

	got = exchange(t, conn, request{Type: "viewer_open"}, 1)
	assert.Equal(t, []string{"images/B_I_1_1.jpg", "images/B_I_1_2.jpg"}, got[0].Viewer.Photos)
	assert.Equal(t, 1.0, got[0].Viewer.Scale)
}

func TestSearch(t *testing.T) {
	conn := dial(t)
	got := exchange(t, conn, request{Type: "search", Query: "NOWAK"}, 1)
	assert.Equal(t, "results", got[0].Type)
	require.NotNil(t, got[0].Results)
	require.Len(t, got[0].Results.Matches, 1)
	assert.Equal(t, "Anna Nowak", got[0].Results.Matches[0].Name)
	assert.Equal(t, []string{"B_I_1"}, got[0].Results.Keys)
}

func TestViewerFlow(t *testing.T) {
	conn := dial(t)

	got := exchange(t, conn, request{Type: "viewer_open"}, 1)
	assert.Equal(t, "no record selected", got[0].Error)

	exchange(t, conn, request{Type: "select", Key: "A_II_3"}, 2)

	got = exchange(t, conn, request{Type: "viewer_open", Index: 0}, 1)
	st := got[0].Viewer
	require.NotNil(t, st)
	assert.True(t, st.Open)
	assert.Equal(t, 1.0, st.Scale)

	got = exchange(t, conn, request{Type: "viewer_wheel", Delta: -500}, 1)
	assert.InDelta(t, 1.5, got[0].Viewer.Scale, 1e-9)

	exchange(t, conn, request{Type: "pan_start", X: 10, Y: 10}, 1)
	got = exchange(t, conn, request{Type: "pan_move", X: 40, Y: 0}, 1)
	assert.Equal(t, 30.0, got[0].Viewer.OffsetX)
	assert.Equal(t, -10.0, got[0].Viewer.OffsetY)
	got = exchange(t, conn, request{Type: "pan_end"}, 1)
	assert.False(t, got[0].Viewer.Panning)

	got = exchange(t, conn, request{Type: "viewer_next"}, 1)
	assert.Equal(t, 1, got[0].Viewer.Index)
	assert.Equal(t, 1.0, got[0].Viewer.Scale)
	assert.Equal(t, 0.0, got[0].Viewer.OffsetX)

	got = exchange(t, conn, request{Type: "viewer_next"}, 1)
	assert.Equal(t, 0, got[0].Viewer.Index)

	got = exchange(t, conn, request{Type: "viewer_prev"}, 1)
	assert.Equal(t, 1, got[0].Viewer.Index)

	got = exchange(t, conn, request{Type: "viewer_zoom", Delta: 100000}, 1)
	assert.Equal(t, 5.0, got[0].Viewer.Scale)

	got = exchange(t, conn, request{Type: "viewer_close"}, 1)
	assert.False(t, got[0].Viewer.Open)
}

func TestInvalidMessages(t *testing.T) {
	conn := dial(t)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	var resp response
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "invalid message format", resp.Error)

	got := exchange(t, conn, request{Type: "dance"}, 1)
	assert.Equal(t, "unknown message type: dance", got[0].Error)

	got = exchange(t, conn, request{Type: "select"}, 1)
	assert.Equal(t, "key is required", got[0].Error)
}
