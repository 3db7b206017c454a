package photos

import (
	"context"
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ziadkadry99/gravemap/internal/records"
)

// DefaultPattern selects the files that count as grave photos.
const DefaultPattern = "images/**/*.{jpg,jpeg,JPG,JPEG,png,PNG}"

// Report lists photos referenced by records but absent from the store, and
// stored photos no record references.
type Report struct {
	Referenced int      `json:"referenced"`
	Stored     int      `json:"stored"`
	Missing    []string `json:"missing"`
	Orphaned   []string `json:"orphaned"`
}

// Audit compares the photo references of recs with the contents of store.
// Only stored files matching pattern (DefaultPattern when empty) are
// considered for the orphan list.
func Audit(ctx context.Context, store Store, recs []*records.Record, pattern string) (*Report, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid photo pattern %q", pattern)
	}

	names, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	stored := make(map[string]bool, len(names))
	for _, n := range names {
		if ok, _ := doublestar.Match(pattern, n); ok {
			stored[n] = true
		}
	}

	referenced := make(map[string]bool)
	for _, rec := range recs {
		for _, ref := range rec.PhotoRefs {
			if ref != "" {
				referenced[ref] = true
			}
		}
	}

	rep := &Report{
		Referenced: len(referenced),
		Stored:     len(stored),
		Missing:    []string{},
		Orphaned:   []string{},
	}
	for ref := range referenced {
		if !stored[ref] {
			rep.Missing = append(rep.Missing, ref)
		}
	}
	for name := range stored {
		if !referenced[name] {
			rep.Orphaned = append(rep.Orphaned, name)
		}
	}
	sort.Strings(rep.Missing)
	sort.Strings(rep.Orphaned)
	return rep, nil
}
