// Package panel projects a burial record into the view model shown in the
// detail panel, and tracks which record is selected so the map can
// highlight its marker.
package panel

import (
	"errors"

	"github.com/ziadkadry99/gravemap/internal/location"
	"github.com/ziadkadry99/gravemap/internal/records"
)

// Placeholder replaces missing dates ("no data").
const Placeholder = "brak danych"

// ErrNotFound is returned when no record exists for a key.
var ErrNotFound = errors.New("record not found")

// PersonEntry is one person line in the panel.
type PersonEntry struct {
	Name  string `json:"name"`
	Birth string `json:"birth"`
	Death string `json:"death"`
}

// Location is the plot address shown under the persons.
type Location struct {
	Section string `json:"section"`
	Row     string `json:"row"`
	Spot    string `json:"spot"`
	Label   string `json:"label"`
}

// ViewModel is everything the panel needs to paint a record.
type ViewModel struct {
	Key       string        `json:"key"`
	Persons   []PersonEntry `json:"persons"`
	Location  Location      `json:"location"`
	Photos    [2]string     `json:"photos"`
	Latitude  float64       `json:"lat"`
	Longitude float64       `json:"lng"`
}

// OrPlaceholder returns s, or Placeholder when s is empty.
func OrPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

// Render builds the view model of the record stored under key.
func Render(store *records.Store, key string) (ViewModel, error) {
	rec, ok := store.Get(key)
	if !ok {
		return ViewModel{}, ErrNotFound
	}

	persons := make([]PersonEntry, 0, len(rec.Persons))
	for _, p := range rec.Persons {
		persons = append(persons, PersonEntry{
			Name:  p.Name,
			Birth: OrPlaceholder(p.BirthDate),
			Death: OrPlaceholder(p.DeathDate),
		})
	}

	return ViewModel{
		Key:     rec.Key,
		Persons: persons,
		Location: Location{
			Section: rec.Section,
			Row:     rec.Row,
			Spot:    rec.Spot,
			Label:   location.Label(rec.Section, rec.Row, rec.Spot),
		},
		Photos:    rec.PhotoRefs,
		Latitude:  rec.Latitude,
		Longitude: rec.Longitude,
	}, nil
}
