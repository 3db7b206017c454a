// Package anniversary lists the death anniversaries that fall within the
// next few days.
package anniversary

import (
	"math"
	"sort"
	"time"

	"github.com/ziadkadry99/gravemap/internal/records"
)

// DefaultWindowDays is how far ahead Upcoming looks when no window is set.
const DefaultWindowDays = 5

// Entry is one upcoming anniversary.
type Entry struct {
	Name      string    `json:"name"`
	Key       string    `json:"key"`
	Date      time.Time `json:"date"`
	DaysUntil int       `json:"days_until"`
}

// Upcoming returns the anniversaries falling between today and today plus
// windowDays, inclusive, nearest first. Only the calendar day of today is
// used. Persons without a parseable death date are skipped. A zero window
// keeps today's anniversaries only; a negative one means DefaultWindowDays.
func Upcoming(store *records.Store, today time.Time, windowDays int) []Entry {
	if windowDays < 0 {
		windowDays = DefaultWindowDays
	}
	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	entries := []Entry{}
	for _, rec := range store.Records() {
		for _, p := range rec.Persons {
			death, ok := ParseDate(p.DeathDate)
			if !ok {
				continue
			}
			date := Next(death, start)
			days := DaysBetween(start, date)
			if days < 0 || days > windowDays {
				continue
			}
			entries = append(entries, Entry{
				Name:      p.Name,
				Key:       rec.Key,
				Date:      date,
				DaysUntil: days,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DaysUntil < entries[j].DaysUntil
	})
	return entries
}

// Next returns the first anniversary of date on or after today. Both are
// treated as UTC calendar days. A 29 February date falls on 1 March in
// common years.
func Next(date, today time.Time) time.Time {
	anniversary := time.Date(today.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	if anniversary.Before(today) {
		anniversary = time.Date(today.Year()+1, date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	}
	return anniversary
}

// DaysBetween returns the number of days from a to b, rounded up.
func DaysBetween(a, b time.Time) int {
	return int(math.Ceil(b.Sub(a).Hours() / 24))
}
