// Package catalog owns the process-wide record store. A reload fetches the
// rows, aggregates a fresh store and swaps it in atomically, so readers
// always see a complete store.
package catalog

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ziadkadry99/gravemap/internal/records"
	"github.com/ziadkadry99/gravemap/internal/rows"
)

// LoadFailedText is shown to visitors while no data could be loaded.
const LoadFailedText = "Nie udało się załadować danych."

// Observer is told about every reload attempt.
type Observer interface {
	ReloadFinished(store *records.Store, took time.Duration, err error)
}

// Status describes the published store and the last reload attempt.
type Status struct {
	Source    string    `json:"source"`
	Records   int       `json:"records"`
	Persons   int       `json:"persons"`
	Skipped   int       `json:"skipped"`
	LoadedAt  time.Time `json:"loaded_at,omitempty"`
	LastError string    `json:"last_error,omitempty"`
	Message   string    `json:"message,omitempty"`
}

// Catalog publishes the current store.
type Catalog struct {
	source   rows.Source
	observer Observer

	store atomic.Pointer[records.Store]

	mu       sync.Mutex // serializes reloads and guards the fields below
	loadedAt time.Time
	lastErr  error
}

// New creates a catalog with an empty store. observer may be nil.
func New(source rows.Source, observer Observer) *Catalog {
	c := &Catalog{source: source, observer: observer}
	c.store.Store(records.NewStore())
	return c
}

// Store returns the published store. It is never nil.
func (c *Catalog) Store() *records.Store {
	return c.store.Load()
}

// Reload rebuilds the store from the source. On failure the previous store
// stays published and the error is returned.
func (c *Catalog) Reload(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	raw, err := c.source.Rows(ctx)
	if err != nil {
		err = fmt.Errorf("loading rows from %s: %w", c.source.Name(), err)
		c.lastErr = err
		c.notify(nil, time.Since(start), err)
		return err
	}

	store := records.Aggregate(raw)
	c.store.Store(store)
	c.loadedAt = time.Now().UTC()
	c.lastErr = nil

	log.Printf("catalog: loaded %d records (%d persons, %d rows skipped) from %s",
		store.Len(), store.PersonCount(), store.Skipped(), c.source.Name())
	c.notify(store, time.Since(start), nil)
	return nil
}

func (c *Catalog) notify(store *records.Store, took time.Duration, err error) {
	if c.observer != nil {
		c.observer.ReloadFinished(store, took, err)
	}
}

// Status reports counts and the outcome of the last reload.
func (c *Catalog) Status() Status {
	store := c.Store()

	c.mu.Lock()
	defer c.mu.Unlock()

	st := Status{
		Source:   c.source.Name(),
		Records:  store.Len(),
		Persons:  store.PersonCount(),
		Skipped:  store.Skipped(),
		LoadedAt: c.loadedAt,
	}
	if c.lastErr != nil {
		st.LastError = c.lastErr.Error()
		if store.Len() == 0 {
			st.Message = LoadFailedText
		}
	}
	return st
}

// Watch reloads every interval until ctx is done. A non-positive interval
// returns immediately.
func (c *Catalog) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Reload(ctx); err != nil {
				log.Printf("catalog: reload failed: %v", err)
			}
		}
	}
}
