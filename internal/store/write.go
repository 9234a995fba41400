package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/roach88/retailgrid/internal/dataset"
)

// SaveSnapshot persists one normalized dataset with its fetch metadata.
// The previous snapshot (if any) is replaced in the same transaction, so a
// reader never observes a half-written snapshot and a failed save leaves
// the old one intact.
func (s *Store) SaveSnapshot(ctx context.Context, sourceURL string, fetchedAt time.Time, d *dataset.Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot save: %w", err)
	}
	defer tx.Rollback()

	// One live snapshot at a time; cascades clear the old index and cells.
	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots`); err != nil {
		return fmt.Errorf("clear previous snapshot: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (source_url, fetched_at, row_count, col_count)
		VALUES (?, ?, ?, ?)
	`, sourceURL, fetchedAt.Unix(), d.NumRows(), d.NumCols())
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	snapshotID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("snapshot id: %w", err)
	}

	if err := writeIndex(ctx, tx, snapshotID, d); err != nil {
		return err
	}
	if err := writeCells(ctx, tx, snapshotID, d); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func writeIndex(ctx context.Context, tx *sql.Tx, snapshotID int64, d *dataset.Dataset) error {
	rowStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshot_rows (snapshot_id, ord, year, month, state)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare row insert: %w", err)
	}
	defer rowStmt.Close()

	for ord, r := range d.Rows() {
		if _, err := rowStmt.ExecContext(ctx, snapshotID, ord, r.Year, r.Month, r.State); err != nil {
			return fmt.Errorf("insert row %d: %w", ord, err)
		}
	}

	colStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshot_cols (snapshot_id, ord, sector, metric, unit)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare col insert: %w", err)
	}
	defer colStmt.Close()

	for ord, c := range d.Cols() {
		if _, err := colStmt.ExecContext(ctx, snapshotID, ord, c.Sector, c.Metric, c.Unit); err != nil {
			return fmt.Errorf("insert col %d: %w", ord, err)
		}
	}
	return nil
}

func writeCells(ctx context.Context, tx *sql.Tx, snapshotID int64, d *dataset.Dataset) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshot_cells (snapshot_id, row_ord, col_ord, value)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare cell insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < d.NumRows(); i++ {
		for j := 0; j < d.NumCols(); j++ {
			v := d.Cell(i, j)
			var value any
			if !dataset.IsMissing(v) {
				value = v
			}
			if _, err := stmt.ExecContext(ctx, snapshotID, i, j, value); err != nil {
				return fmt.Errorf("insert cell (%d,%d): %w", i, j, err)
			}
		}
	}
	return nil
}
