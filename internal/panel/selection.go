package panel

import "github.com/ziadkadry99/gravemap/internal/records"

// SelectionListener is notified when the selected record changes. The map
// un-highlights previous and highlights current; either may be empty.
type SelectionListener interface {
	SelectionChanged(previous, current string)
}

// SelectionFunc adapts a function to SelectionListener.
type SelectionFunc func(previous, current string)

// SelectionChanged calls f.
func (f SelectionFunc) SelectionChanged(previous, current string) { f(previous, current) }

// Selector remembers the selected record of one visitor. It is not safe for
// concurrent use.
type Selector struct {
	listener SelectionListener
	current  string
}

// NewSelector returns a Selector reporting to listener, which may be nil.
func NewSelector(listener SelectionListener) *Selector {
	return &Selector{listener: listener}
}

// Current returns the selected key, or "" when nothing is selected.
func (s *Selector) Current() string { return s.current }

// Open renders the record under key and makes it the selection. On a miss
// it returns ErrNotFound and keeps the previous selection.
func (s *Selector) Open(store *records.Store, key string) (ViewModel, error) {
	vm, err := Render(store, key)
	if err != nil {
		return ViewModel{}, err
	}
	prev := s.current
	s.current = key
	s.notify(prev, key)
	return vm, nil
}

// Clear drops the selection.
func (s *Selector) Clear() {
	if s.current == "" {
		return
	}
	prev := s.current
	s.current = ""
	s.notify(prev, "")
}

func (s *Selector) notify(previous, current string) {
	if s.listener != nil {
		s.listener.SelectionChanged(previous, current)
	}
}
