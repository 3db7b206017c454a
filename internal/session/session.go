// Package session runs one websocket session per map visitor. Each session
// owns the visitor's selection and photo viewer and answers input events
// with the state the page should paint.
package session

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/text/language"

	"github.com/ziadkadry99/gravemap/internal/catalog"
	"github.com/ziadkadry99/gravemap/internal/metrics"
	"github.com/ziadkadry99/gravemap/internal/panel"
	"github.com/ziadkadry99/gravemap/internal/search"
	"github.com/ziadkadry99/gravemap/internal/viewer"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const maxMessageSize = 4096

// request is the incoming WebSocket message format.
type request struct {
	Type  string  `json:"type"`
	Key   string  `json:"key,omitempty"`
	Query string  `json:"query,omitempty"`
	Index int     `json:"index,omitempty"`
	Delta float64 `json:"delta,omitempty"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
}

// Selection tells the map which marker to un-highlight and highlight.
type Selection struct {
	Previous string `json:"previous"`
	Current  string `json:"current"`
}

// response is the outgoing WebSocket message format.
type response struct {
	Type      string           `json:"type"` // panel, selection, viewer, results or error
	SessionID string           `json:"session_id"`
	Panel     *panel.ViewModel `json:"panel,omitempty"`
	Selection *Selection       `json:"selection,omitempty"`
	Viewer    *viewer.State    `json:"viewer,omitempty"`
	Results   *search.Result   `json:"results,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// Hub accepts visitor sessions.
type Hub struct {
	catalog *catalog.Catalog
	metrics *metrics.Metrics
	tag     language.Tag
}

// NewHub creates a hub. m may be nil.
func NewHub(cat *catalog.Catalog, m *metrics.Metrics, locale string) *Hub {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Polish
	}
	return &Hub{catalog: cat, metrics: m, tag: tag}
}

// RegisterRoutes mounts the session endpoint.
func (h *Hub) RegisterRoutes(r chi.Router) {
	r.Get("/ws/session", h.handleWebSocket)
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("session: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	h.metrics.SessionOpened()
	defer h.metrics.SessionClosed()

	s := newSession(h, conn)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("session %s: websocket read: %v", s.id, err)
			}
			return
		}

		var req request
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendError("invalid message format")
			continue
		}
		s.handle(req)
	}
}

// session is the state of one visitor. It is used only by the goroutine
// reading the connection.
type session struct {
	id       string
	hub      *Hub
	conn     *websocket.Conn
	selector *panel.Selector
	viewer   *viewer.Viewer
}

func newSession(h *Hub, conn *websocket.Conn) *session {
	s := &session{
		id:     uuid.New().String(),
		hub:    h,
		conn:   conn,
		viewer: viewer.New(),
	}
	s.selector = panel.NewSelector(panel.SelectionFunc(func(previous, current string) {
		s.send(response{Type: "selection", Selection: &Selection{Previous: previous, Current: current}})
	}))
	return s
}

func (s *session) handle(req request) {
	switch req.Type {
	case "select":
		s.handleSelect(req.Key)
	case "clear":
		s.handleClear()
	case "search":
		s.handleSearch(req.Query)
	case "viewer_open":
		s.handleViewerOpen(req.Index)
	case "viewer_next":
		s.updateViewer(s.viewer.Next)
	case "viewer_prev":
		s.updateViewer(s.viewer.Prev)
	case "viewer_zoom":
		s.updateViewer(func() { s.viewer.Zoom(req.Delta) })
	case "viewer_wheel":
		s.updateViewer(func() { s.viewer.Wheel(req.Delta) })
	case "pan_start":
		s.updateViewer(func() { s.viewer.PanStart(req.X, req.Y) })
	case "pan_move":
		s.updateViewer(func() { s.viewer.PanMove(req.X, req.Y) })
	case "pan_end":
		s.updateViewer(s.viewer.PanEnd)
	case "viewer_close":
		s.updateViewer(s.viewer.Close)
	default:
		s.sendError("unknown message type: " + req.Type)
	}
}

func (s *session) handleSelect(key string) {
	if key == "" {
		s.sendError("key is required")
		return
	}
	vm, err := s.selector.Open(s.hub.catalog.Store(), key)
	if err != nil {
		s.sendError(err.Error())
		return
	}
	s.send(response{Type: "panel", Panel: &vm})
	// The viewer belongs to the previous panel's photos.
	if s.viewer.IsOpen() {
		s.updateViewer(s.viewer.Close)
	}
}

// handleClear drops the selection and closes the viewer if it is open.
func (s *session) handleClear() {
	s.selector.Clear()
	if s.viewer.IsOpen() {
		s.updateViewer(s.viewer.Close)
	}
}

func (s *session) handleSearch(query string) {
	matches := search.Search(s.hub.catalog.Store(), query, s.hub.tag)
	s.hub.metrics.SearchServed()
	res := search.NewResult(query, matches)
	s.send(response{Type: "results", Results: &res})
}

func (s *session) handleViewerOpen(index int) {
	key := s.selector.Current()
	if key == "" {
		s.sendError("no record selected")
		return
	}
	rec, ok := s.hub.catalog.Store().Get(key)
	if !ok {
		s.sendError(panel.ErrNotFound.Error())
		return
	}
	s.updateViewer(func() { s.viewer.Open(rec.PhotoRefs[:], index) })
}

func (s *session) updateViewer(apply func()) {
	apply()
	st := s.viewer.State()
	s.send(response{Type: "viewer", Viewer: &st})
}

func (s *session) send(resp response) {
	resp.SessionID = s.id
	if err := s.conn.WriteJSON(resp); err != nil {
		log.Printf("session %s: websocket write: %v", s.id, err)
	}
}

func (s *session) sendError(message string) {
	s.send(response{Type: "error", Error: message})
}
