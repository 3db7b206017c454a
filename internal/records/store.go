// Package records groups spreadsheet rows into burial-plot records and
// holds them in a read-only Store.
package records

// Store maps record keys to records and remembers the order in which keys
// were first seen. A Store is built by Aggregate and must not be modified
// afterwards, which makes it safe to share between goroutines.
type Store struct {
	records map[string]*Record
	keys    []string
	skipped int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{records: make(map[string]*Record)}
}

// Get returns the record stored under key.
func (s *Store) Get(key string) (*Record, bool) {
	if s == nil {
		return nil, false
	}
	r, ok := s.records[key]
	return r, ok
}

// Len returns the number of records.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Keys returns record keys in first-seen order.
func (s *Store) Keys() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Records returns all records in first-seen order. Callers must treat the
// returned records as read-only.
func (s *Store) Records() []*Record {
	if s == nil {
		return nil
	}
	out := make([]*Record, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, s.records[k])
	}
	return out
}

// PersonCount returns the number of persons across all records.
func (s *Store) PersonCount() int {
	n := 0
	for _, r := range s.Records() {
		n += len(r.Persons)
	}
	return n
}

// Skipped returns how many input rows were dropped while aggregating.
func (s *Store) Skipped() int {
	if s == nil {
		return 0
	}
	return s.skipped
}
