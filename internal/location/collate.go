package location

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale is the language the directory is written in.
const DefaultLocale = "pl"

// ParseLocale resolves a BCP 47 tag, falling back to Polish when the tag is
// empty or invalid.
func ParseLocale(tag string) language.Tag {
	if tag == "" {
		return language.Polish
	}
	t, err := language.Parse(tag)
	if err != nil {
		return language.Polish
	}
	return t
}

// Collator compares strings at base strength: case and accent differences
// are ignored, so "KOWALSKI" and "kowalski" compare equal, while letters the
// locale treats as distinct (Polish "ć" after "c") keep their own place.
// A Collator is not safe for concurrent use; create one per sort.
type Collator struct {
	c *collate.Collator
}

// NewCollator returns a base-strength collator for the given language.
func NewCollator(tag language.Tag) *Collator {
	return &Collator{c: collate.New(tag, collate.Loose)}
}

// Compare returns -1, 0 or 1.
func (c *Collator) Compare(a, b string) int {
	return c.c.CompareString(a, b)
}
