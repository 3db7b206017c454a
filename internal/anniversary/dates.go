package anniversary

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are the death-date spellings found in the spreadsheet. Dotted
// and slashed day-first forms follow Polish convention.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"02.01.2006",
	"2.1.2006",
	"2006.01.02",
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseDate parses a free-form date. Only the calendar day is kept. Dates
// without a day (a bare year, "05.1944") are rejected.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a date the Polish way: 12.06.2024.
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// Describe renders the distance to an anniversary: "dzisiaj" (today),
// "jutro" (tomorrow) or "za N dni" (in N days).
func Describe(days int) string {
	switch days {
	case 0:
		return "dzisiaj"
	case 1:
		return "jutro"
	default:
		return fmt.Sprintf("za %d dni", days)
	}
}
