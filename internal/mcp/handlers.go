package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/gravemap/internal/anniversary"
	"github.com/ziadkadry99/gravemap/internal/panel"
	"github.com/ziadkadry99/gravemap/internal/search"
)

// handleSearchGraves searches persons by name.
func (s *Server) handleSearchGraves(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 20)
	if limit <= 0 {
		limit = 20
	}

	matches := search.Search(s.catalog.Store(), query, s.tag)
	if len(matches) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No persons matching %q.", query)), nil
	}

	rows := search.Rows(matches)
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d persons matching %q", len(rows), query)
	if len(rows) > limit {
		fmt.Fprintf(&b, " (showing %d)", limit)
		rows = rows[:limit]
	}
	b.WriteString(":\n\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "- %s (ur. %s, zm. %s), %s [key: %s]\n", r.Name, r.Birth, r.Death, r.Location, r.Key)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// handleGetGrave describes one plot.
func (s *Server) handleGetGrave(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: key"), nil
	}

	vm, err := panel.Render(s.catalog.Store(), key)
	if errors.Is(err, panel.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("No plot with key %q.", key)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", vm.Location.Label)
	for _, p := range vm.Persons {
		fmt.Fprintf(&b, "- %s: ur. %s, zm. %s\n", p.Name, p.Birth, p.Death)
	}
	fmt.Fprintf(&b, "\nKwatera: %s, rząd: %s, miejsce: %s\n",
		panel.OrPlaceholder(vm.Location.Section), panel.OrPlaceholder(vm.Location.Row), panel.OrPlaceholder(vm.Location.Spot))
	fmt.Fprintf(&b, "Coordinates: %.6f, %.6f\n", vm.Latitude, vm.Longitude)
	fmt.Fprintf(&b, "Photos: %s, %s\n", vm.Photos[0], vm.Photos[1])
	return mcp.NewToolResultText(b.String()), nil
}

// handleUpcomingAnniversaries lists anniversaries in the window.
func (s *Server) handleUpcomingAnniversaries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := request.GetInt("days", s.windowDays)
	if days < 0 {
		return mcp.NewToolResultError("days must be non-negative"), nil
	}

	today := s.now()
	if v := request.GetString("date", ""); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return mcp.NewToolResultError("date must be YYYY-MM-DD"), nil
		}
		today = t
	}

	items := anniversary.Items(anniversary.Upcoming(s.catalog.Store(), today, days))
	if len(items) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No anniversaries in the days after %s.", anniversary.FormatDate(today))), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Anniversaries from %s:\n\n", anniversary.FormatDate(today))
	for _, it := range items {
		fmt.Fprintf(&b, "- %s: %s (%s) [key: %s]\n", it.Date, it.Name, it.Label, it.Key)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// handleCatalogStatus reports catalog counts.
func (s *Server) handleCatalogStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st := s.catalog.Status()

	var b strings.Builder
	fmt.Fprintf(&b, "Source: %s\nPlots: %d\nPersons: %d\nRows skipped: %d\n", st.Source, st.Records, st.Persons, st.Skipped)
	if !st.LoadedAt.IsZero() {
		fmt.Fprintf(&b, "Loaded at: %s\n", st.LoadedAt.Format(time.RFC3339))
	}
	if st.LastError != "" {
		fmt.Fprintf(&b, "Last reload failed: %s\n", st.LastError)
	}
	return mcp.NewToolResultText(b.String()), nil
}
