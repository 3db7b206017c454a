package records

import (
	"strconv"
	"strings"

	"github.com/ziadkadry99/gravemap/internal/location"
)

// Aggregate groups rows into records keyed by location.DeriveKey. Rows
// without a section or with missing or unparseable coordinates are dropped
// and counted in Store.Skipped. Every remaining row adds one person to its
// record, in input order; repeated rows are appended, never merged.
func Aggregate(rows []RawRow) *Store {
	s := NewStore()
	for _, raw := range rows {
		row := normalize(raw)
		if row.Section == "" || row.Latitude == "" || row.Longitude == "" {
			s.skipped++
			continue
		}
		lat, err := strconv.ParseFloat(row.Latitude, 64)
		if err != nil {
			s.skipped++
			continue
		}
		lng, err := strconv.ParseFloat(row.Longitude, 64)
		if err != nil {
			s.skipped++
			continue
		}

		key := location.DeriveKey(row.Section, row.Row, row.Spot)
		rec, ok := s.records[key]
		if !ok {
			rec = &Record{
				Key:       key,
				Latitude:  lat,
				Longitude: lng,
				Section:   row.Section,
				Row:       row.Row,
				Spot:      row.Spot,
				Persons:   []Person{},
				PhotoRefs: location.PhotoRefs(row.Section, row.Row, row.Spot),
			}
			s.records[key] = rec
			s.keys = append(s.keys, key)
		}
		rec.Persons = append(rec.Persons, Person{
			Name:      FullName(row.FirstName, row.LastName),
			BirthDate: row.BirthDate,
			DeathDate: row.DeathDate,
		})
	}
	return s
}

// FullName joins the non-empty name parts with a single space.
func FullName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}

func normalize(r RawRow) RawRow {
	return RawRow{
		Section:   strings.TrimSpace(r.Section),
		Row:       strings.TrimSpace(r.Row),
		Spot:      strings.TrimSpace(r.Spot),
		Latitude:  strings.TrimSpace(r.Latitude),
		Longitude: strings.TrimSpace(r.Longitude),
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		BirthDate: strings.TrimSpace(r.BirthDate),
		DeathDate: strings.TrimSpace(r.DeathDate),
	}
}
