package rows

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/gravemap/internal/db"
	"github.com/ziadkadry99/gravemap/internal/records"
)

// ErrNoSnapshot is returned when no import has been stored yet.
var ErrNoSnapshot = errors.New("no snapshot imported yet")

// Import describes one stored snapshot.
type Import struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	RowCount   int       `json:"row_count"`
	ImportedAt time.Time `json:"imported_at"`
}

// SnapshotStore keeps the last imported rows in the database so the server
// can start without reaching the spreadsheet.
type SnapshotStore struct {
	db *db.DB
}

// NewSnapshotStore creates a snapshot store.
func NewSnapshotStore(database *db.DB) *SnapshotStore {
	return &SnapshotStore{db: database}
}

// Name describes the source for logs.
func (s *SnapshotStore) Name() string { return "snapshot:" + s.db.Driver() }

// Save replaces the stored snapshot with rows in a single transaction.
// progress, if non-nil, is called after each row is written.
func (s *SnapshotStore) Save(ctx context.Context, source string, rows []records.RawRow, progress func(done int)) (*Import, error) {
	imp := &Import{
		ID:         uuid.New().String(),
		Source:     source,
		RowCount:   len(rows),
		ImportedAt: time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM burial_rows`); err != nil {
		return nil, fmt.Errorf("clearing rows: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM imports`); err != nil {
		return nil, fmt.Errorf("clearing imports: %w", err)
	}
	if _, err := tx.ExecContext(ctx, s.db.Rebind(
		`INSERT INTO imports (id, source, row_count, imported_at) VALUES (?, ?, ?, ?)`),
		imp.ID, imp.Source, imp.RowCount, imp.ImportedAt.Format(time.RFC3339Nano),
	); err != nil {
		return nil, fmt.Errorf("inserting import: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, s.db.Rebind(
		`INSERT INTO burial_rows (import_id, position, section, plot_row, spot, latitude, longitude, first_name, last_name, birth_date, death_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return nil, fmt.Errorf("preparing row insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range rows {
		if _, err := stmt.ExecContext(ctx, imp.ID, i,
			r.Section, r.Row, r.Spot, r.Latitude, r.Longitude,
			r.FirstName, r.LastName, r.BirthDate, r.DeathDate,
		); err != nil {
			return nil, fmt.Errorf("inserting row %d: %w", i, err)
		}
		if progress != nil {
			progress(i + 1)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing snapshot: %w", err)
	}
	return imp, nil
}

// Latest returns the stored import, or ErrNoSnapshot.
func (s *SnapshotStore) Latest(ctx context.Context) (*Import, error) {
	var imp Import
	var importedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source, row_count, imported_at FROM imports ORDER BY imported_at DESC LIMIT 1`,
	).Scan(&imp.ID, &imp.Source, &imp.RowCount, &importedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("reading import: %w", err)
	}
	if t, err := time.Parse(time.RFC3339Nano, importedAt); err == nil {
		imp.ImportedAt = t
	}
	return &imp, nil
}

// Rows returns the rows of the latest import in their original order.
func (s *SnapshotStore) Rows(ctx context.Context) ([]records.RawRow, error) {
	imp, err := s.Latest(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, s.db.Rebind(
		`SELECT section, plot_row, spot, latitude, longitude, first_name, last_name, birth_date, death_date
		 FROM burial_rows WHERE import_id = ? ORDER BY position`), imp.ID)
	if err != nil {
		return nil, fmt.Errorf("listing rows: %w", err)
	}
	defer rows.Close()

	out := make([]records.RawRow, 0, imp.RowCount)
	for rows.Next() {
		var r records.RawRow
		if err := rows.Scan(&r.Section, &r.Row, &r.Spot, &r.Latitude, &r.Longitude,
			&r.FirstName, &r.LastName, &r.BirthDate, &r.DeathDate); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
