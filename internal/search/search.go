// Package search finds persons by name across a records.Store and orders
// the matches the way a visitor expects to read them: by surname, then by
// plot location with Roman-numeral rows and numbered spots.
package search

import (
	"sort"
	"strings"

	"golang.org/x/text/language"

	"github.com/ziadkadry99/gravemap/internal/location"
	"github.com/ziadkadry99/gravemap/internal/records"
)

// Match is one person whose name matched a query, together with the plot
// they are buried in.
type Match struct {
	Person records.Person
	Record *records.Record
}

// Filter returns one Match per person whose name contains query,
// case-insensitively. An empty query matches nothing. Matches come out in
// store order; use Sort or Search for display order.
func Filter(store *records.Store, query string) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var matches []Match
	for _, rec := range store.Records() {
		for _, p := range rec.Persons {
			if strings.Contains(strings.ToLower(p.Name), q) {
				matches = append(matches, Match{Person: p, Record: rec})
			}
		}
	}
	return matches
}

// Sort orders matches by surname-first name, section, row (as a Roman
// numeral), spot number and spot suffix. Text comparisons use the
// base-strength collation of tag. The sort is stable.
func Sort(matches []Match, tag language.Tag) {
	c := location.NewCollator(tag)
	sort.SliceStable(matches, func(i, j int) bool {
		return compare(c, matches[i], matches[j]) < 0
	})
}

// Search filters and sorts in one step.
func Search(store *records.Store, query string, tag language.Tag) []Match {
	matches := Filter(store, query)
	Sort(matches, tag)
	return matches
}

// MatchedKeys returns the distinct record keys of matches in result order.
func MatchedKeys(matches []Match) []string {
	seen := make(map[string]bool, len(matches))
	keys := make([]string, 0, len(matches))
	for _, m := range matches {
		if seen[m.Record.Key] {
			continue
		}
		seen[m.Record.Key] = true
		keys = append(keys, m.Record.Key)
	}
	return keys
}

// SurnameFirst reverses the space-separated tokens of a name, so
// "Jan Maria Nowak" becomes "Nowak Maria Jan".
func SurnameFirst(name string) string {
	tokens := strings.Fields(name)
	for i, j := 0, len(tokens)-1; i < j; i, j = i+1, j-1 {
		tokens[i], tokens[j] = tokens[j], tokens[i]
	}
	return strings.Join(tokens, " ")
}

func compare(c *location.Collator, a, b Match) int {
	if d := c.Compare(SurnameFirst(a.Person.Name), SurnameFirst(b.Person.Name)); d != 0 {
		return d
	}
	ra, rb := a.Record, b.Record
	if d := c.Compare(ra.Section, rb.Section); d != 0 {
		return d
	}
	if d := location.ParseRoman(ra.Row) - location.ParseRoman(rb.Row); d != 0 {
		return d
	}
	sa, sb := location.ParsePlotSpot(ra.Spot), location.ParsePlotSpot(rb.Spot)
	if sa.Number != sb.Number {
		if sa.Number < sb.Number {
			return -1
		}
		return 1
	}
	return c.Compare(sa.Suffix, sb.Suffix)
}
