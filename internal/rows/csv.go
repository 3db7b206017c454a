// Package rows delivers raw spreadsheet rows to the catalog: from a
// published CSV (URL or file) or from a snapshot stored in the database.
package rows

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ziadkadry99/gravemap/internal/records"
)

// Columns names the CSV header of each field.
type Columns struct {
	Section   string `yaml:"section" koanf:"section"`
	Row       string `yaml:"row" koanf:"row"`
	Spot      string `yaml:"spot" koanf:"spot"`
	Latitude  string `yaml:"lat" koanf:"lat"`
	Longitude string `yaml:"lng" koanf:"lng"`
	FirstName string `yaml:"first_name" koanf:"first_name"`
	LastName  string `yaml:"last_name" koanf:"last_name"`
	BirthDate string `yaml:"birth_date" koanf:"birth_date"`
	DeathDate string `yaml:"death_date" koanf:"death_date"`
}

// DefaultColumns matches the header of the cemetery spreadsheet.
func DefaultColumns() Columns {
	return Columns{
		Section:   "kwatera",
		Row:       "rzad",
		Spot:      "miejsce",
		Latitude:  "lat",
		Longitude: "lng",
		FirstName: "imie",
		LastName:  "nazwisko",
		BirthDate: "data_urodzenia",
		DeathDate: "data_smierci",
	}
}

// withDefaults fills empty column names from DefaultColumns.
func (c Columns) withDefaults() Columns {
	d := DefaultColumns()
	pick := func(v, def string) string {
		if strings.TrimSpace(v) == "" {
			return def
		}
		return v
	}
	return Columns{
		Section:   pick(c.Section, d.Section),
		Row:       pick(c.Row, d.Row),
		Spot:      pick(c.Spot, d.Spot),
		Latitude:  pick(c.Latitude, d.Latitude),
		Longitude: pick(c.Longitude, d.Longitude),
		FirstName: pick(c.FirstName, d.FirstName),
		LastName:  pick(c.LastName, d.LastName),
		BirthDate: pick(c.BirthDate, d.BirthDate),
		DeathDate: pick(c.DeathDate, d.DeathDate),
	}
}

// ErrNoHeader is returned for a CSV without a header line.
var ErrNoHeader = errors.New("csv has no header row")

// ParseCSV reads a headed CSV into raw rows. Header names are matched
// case-insensitively; unknown columns are ignored and missing ones read as
// empty strings. Blank lines are skipped.
func ParseCSV(r io.Reader, cols Columns) ([]records.RawRow, error) {
	cols = cols.withDefaults()

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	field := func(rec []string, name string) string {
		i, ok := index[strings.ToLower(name)]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var out []records.RawRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		if isBlank(rec) {
			continue
		}
		out = append(out, records.RawRow{
			Section:   field(rec, cols.Section),
			Row:       field(rec, cols.Row),
			Spot:      field(rec, cols.Spot),
			Latitude:  field(rec, cols.Latitude),
			Longitude: field(rec, cols.Longitude),
			FirstName: field(rec, cols.FirstName),
			LastName:  field(rec, cols.LastName),
			BirthDate: field(rec, cols.BirthDate),
			DeathDate: field(rec, cols.DeathDate),
		})
	}
	return out, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// CSVSource reads rows from a published CSV. Location is either an
// http(s) URL or a local file path.
type CSVSource struct {
	Location string
	Columns  Columns
	Client   *http.Client
}

// NewCSVSource returns a CSV source with a default HTTP client.
func NewCSVSource(location string, cols Columns) *CSVSource {
	return &CSVSource{
		Location: location,
		Columns:  cols,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Name describes the source for logs.
func (s *CSVSource) Name() string { return "csv:" + s.Location }

// Rows fetches and parses the CSV.
func (s *CSVSource) Rows(ctx context.Context) ([]records.RawRow, error) {
	if s.Location == "" {
		return nil, fmt.Errorf("csv source location is empty")
	}
	if strings.HasPrefix(s.Location, "http://") || strings.HasPrefix(s.Location, "https://") {
		return s.fetch(ctx)
	}

	f, err := os.Open(s.Location)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.Location, err)
	}
	defer f.Close()
	return ParseCSV(f, s.Columns)
}

func (s *CSVSource) fetch(ctx context.Context) ([]records.RawRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Location, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching csv: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching csv: unexpected status %s", resp.Status)
	}
	return ParseCSV(resp.Body, s.Columns)
}
