package search

import (
	"github.com/ziadkadry99/gravemap/internal/location"
	"github.com/ziadkadry99/gravemap/internal/panel"
)

// Row is the flattened, JSON-friendly form of a Match used by the results
// table. Missing dates carry the panel placeholder.
type Row struct {
	Name      string  `json:"name"`
	Birth     string  `json:"birth"`
	Death     string  `json:"death"`
	Key       string  `json:"key"`
	Location  string  `json:"location"`
	Section   string  `json:"section"`
	Row       string  `json:"row"`
	Spot      string  `json:"spot"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Result is a sorted result set plus the keys of the markers to keep on
// the map.
type Result struct {
	Query   string   `json:"query"`
	Matches []Row    `json:"matches"`
	Keys    []string `json:"keys"`
}

// Rows flattens matches for display.
func Rows(matches []Match) []Row {
	out := make([]Row, 0, len(matches))
	for _, m := range matches {
		r := m.Record
		out = append(out, Row{
			Name:      m.Person.Name,
			Birth:     panel.OrPlaceholder(m.Person.BirthDate),
			Death:     panel.OrPlaceholder(m.Person.DeathDate),
			Key:       r.Key,
			Location:  location.Label(r.Section, r.Row, r.Spot),
			Section:   r.Section,
			Row:       r.Row,
			Spot:      r.Spot,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		})
	}
	return out
}

// NewResult packages sorted matches for a query.
func NewResult(query string, matches []Match) Result {
	return Result{Query: query, Matches: Rows(matches), Keys: MatchedKeys(matches)}
}
