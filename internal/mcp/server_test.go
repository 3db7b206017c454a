package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/gravemap/internal/catalog"
	"github.com/ziadkadry99/gravemap/internal/records"
	"github.com/ziadkadry99/gravemap/internal/rows"
)

func newTestServer(t *testing.T) (*Server, *rows.Static) {
	t.Helper()
	src := &rows.Static{Label: "test", Data: []records.RawRow{
		{Section: "A", Row: "II", Spot: "3", Latitude: "49.4964", Longitude: "19.8593", FirstName: "Jan", LastName: "Kowalski", BirthDate: "1920-01-01", DeathDate: "1990-06-12"},
		{Section: "A", Row: "II", Spot: "3", Latitude: "49.4964", Longitude: "19.8593", FirstName: "Anna", LastName: "Kowalska", DeathDate: "2001-03-01"},
		{Section: "B", Latitude: "49.4965", Longitude: "19.8594", FirstName: "Piotr", LastName: "Nowak", DeathDate: "1970-06-10"},
	}}
	cat := catalog.New(src, nil)
	require.NoError(t, cat.Reload(context.Background()))
	s := NewServer(cat, "pl", 5)
	s.now = func() time.Time { return time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC) }
	return s, src
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func extractText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestNewServer(t *testing.T) {
	s, _ := newTestServer(t)
	assert.NotNil(t, s.mcp)
}

func TestNewServerBadLocale(t *testing.T) {
	s := NewServer(catalog.New(&rows.Static{}, nil), "not a locale!", 5)
	assert.Equal(t, "pl", s.tag.String())
}

func TestNewServerNegativeWindow(t *testing.T) {
	s := NewServer(catalog.New(&rows.Static{}, nil), "pl", -1)
	assert.Equal(t, 5, s.windowDays)
}

func TestHandleSearchGraves(t *testing.T) {
	s, _ := newTestServer(t)

	result, err := s.handleSearchGraves(context.Background(), callRequest(map[string]any{"query": "kowal"}))
	require.NoError(t, err)
	require.False(t, result.IsError, extractText(result))

	text := extractText(result)
	assert.Contains(t, text, "Found 2 persons")
	assert.Contains(t, text, "key: A_II_3")
	assert.NotContains(t, text, "Nowak")
}

func TestHandleSearchGravesLimit(t *testing.T) {
	s, _ := newTestServer(t)

	result, err := s.handleSearchGraves(context.Background(), callRequest(map[string]any{"query": "a", "limit": float64(1)}))
	require.NoError(t, err)

	text := extractText(result)
	assert.Contains(t, text, "(showing 1)")
	assert.Equal(t, 1, strings.Count(text, "\n- "), text)
}

func TestHandleSearchGravesNoMatch(t *testing.T) {
	s, _ := newTestServer(t)

	result, _ := s.handleSearchGraves(context.Background(), callRequest(map[string]any{"query": "zzz"}))
	assert.Contains(t, extractText(result), "No persons matching")
}

func TestHandleSearchGravesMissingQuery(t *testing.T) {
	s, _ := newTestServer(t)

	result, err := s.handleSearchGraves(context.Background(), callRequest(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleGetGrave(t *testing.T) {
	s, _ := newTestServer(t)

	result, err := s.handleGetGrave(context.Background(), callRequest(map[string]any{"key": "A_II_3"}))
	require.NoError(t, err)

	text := extractText(result)
	for _, want := range []string{"# A II 3", "Jan Kowalski", "Anna Kowalska", "ur. brak danych", "images/A_II_3_1.jpg"} {
		assert.Contains(t, text, want)
	}
}

func TestHandleGetGraveUnknown(t *testing.T) {
	s, _ := newTestServer(t)

	result, err := s.handleGetGrave(context.Background(), callRequest(map[string]any{"key": "Z_9"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleUpcomingAnniversaries(t *testing.T) {
	s, _ := newTestServer(t)

	result, err := s.handleUpcomingAnniversaries(context.Background(), callRequest(map[string]any{}))
	require.NoError(t, err)

	text := extractText(result)
	assert.Contains(t, text, "Anniversaries from 10.06.2024")
	nowak := strings.Index(text, "Piotr Nowak")
	kowalski := strings.Index(text, "Jan Kowalski")
	require.GreaterOrEqual(t, nowak, 0, text)
	require.GreaterOrEqual(t, kowalski, 0, text)
	assert.Less(t, nowak, kowalski, "today before in two days")
	assert.NotContains(t, text, "Anna Kowalska", "March is outside the window")
}

func TestHandleUpcomingAnniversariesDate(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	result, _ := s.handleUpcomingAnniversaries(ctx, callRequest(map[string]any{"date": "2024-02-28", "days": float64(3)}))
	assert.Contains(t, extractText(result), "Anna Kowalska")

	result, _ = s.handleUpcomingAnniversaries(ctx, callRequest(map[string]any{"date": "28.02.2024"}))
	assert.True(t, result.IsError, "malformed date")

	result, _ = s.handleUpcomingAnniversaries(ctx, callRequest(map[string]any{"days": float64(-1)}))
	assert.True(t, result.IsError, "negative days")
}

func TestHandleUpcomingAnniversariesZeroDays(t *testing.T) {
	s, _ := newTestServer(t)

	result, _ := s.handleUpcomingAnniversaries(context.Background(), callRequest(map[string]any{"days": float64(0)}))
	text := extractText(result)
	assert.Contains(t, text, "Piotr Nowak")
	assert.NotContains(t, text, "Jan Kowalski")
}

func TestHandleCatalogStatus(t *testing.T) {
	s, src := newTestServer(t)

	result, _ := s.handleCatalogStatus(context.Background(), mcp.CallToolRequest{})
	text := extractText(result)
	for _, want := range []string{"Source: test", "Plots: 2", "Persons: 3"} {
		assert.Contains(t, text, want)
	}

	src.Err = errors.New("sheet unavailable")
	_ = s.catalog.Reload(context.Background())
	result, _ = s.handleCatalogStatus(context.Background(), mcp.CallToolRequest{})
	assert.Contains(t, extractText(result), "Last reload failed")
}

func TestToolDefinitions(t *testing.T) {
	tools := []struct {
		name string
		tool mcp.Tool
	}{
		{"search_graves", searchGravesTool},
		{"get_grave", getGraveTool},
		{"upcoming_anniversaries", upcomingAnniversariesTool},
		{"catalog_status", catalogStatusTool},
	}

	for _, tt := range tools {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.tool.Name)
			assert.NotEmpty(t, tt.tool.Description)
		})
	}
}
