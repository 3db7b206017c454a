package rows

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ziadkadry99/gravemap/internal/records"
)

// Source delivers the current spreadsheet rows.
type Source interface {
	Name() string
	Rows(ctx context.Context) ([]records.RawRow, error)
}

// Fallback reads from Primary and, when that fails, from Secondary. It lets
// the server come up from the stored snapshot while the spreadsheet is
// unreachable.
type Fallback struct {
	Primary   Source
	Secondary Source
}

// Name describes both sources.
func (f *Fallback) Name() string {
	if f.Secondary == nil {
		return f.Primary.Name()
	}
	return f.Primary.Name() + " (fallback " + f.Secondary.Name() + ")"
}

// Rows tries Primary first.
func (f *Fallback) Rows(ctx context.Context) ([]records.RawRow, error) {
	out, err := f.Primary.Rows(ctx)
	if err == nil || f.Secondary == nil {
		return out, err
	}
	log.Printf("rows: %s failed: %v; trying %s", f.Primary.Name(), err, f.Secondary.Name())

	out, err2 := f.Secondary.Rows(ctx)
	if err2 != nil {
		return nil, fmt.Errorf("%w (fallback: %w)", err, err2)
	}
	return out, nil
}

// Static serves a fixed set of rows. Useful in tests and for one-off imports.
type Static struct {
	Label string
	Data  []records.RawRow
	Err   error
}

// Name returns the label.
func (s *Static) Name() string {
	if s.Label == "" {
		return "static"
	}
	return s.Label
}

// Rows returns a copy of Data, or Err.
func (s *Static) Rows(context.Context) ([]records.RawRow, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]records.RawRow(nil), s.Data...), nil
}

// IsNoSnapshot reports whether err means no snapshot has been imported.
func IsNoSnapshot(err error) bool { return errors.Is(err, ErrNoSnapshot) }
