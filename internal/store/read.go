package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/retailgrid/internal/dataset"
)

// Meta describes a stored snapshot.
type Meta struct {
	SourceURL string
	FetchedAt time.Time
	RowCount  int
	ColCount  int
}

// ErrNoSnapshot is returned when no snapshot has ever been saved.
var ErrNoSnapshot = errors.New("store: no snapshot available")

// LatestMeta returns the stored snapshot's metadata without loading cells.
// Used for the freshness check before deciding whether to refetch.
func (s *Store) LatestMeta(ctx context.Context) (Meta, error) {
	var m Meta
	var fetchedAt int64
	err := s.db.QueryRowContext(ctx, `
		SELECT source_url, fetched_at, row_count, col_count
		FROM snapshots
		ORDER BY id DESC
		LIMIT 1
	`).Scan(&m.SourceURL, &fetchedAt, &m.RowCount, &m.ColCount)
	if errors.Is(err, sql.ErrNoRows) {
		return Meta{}, ErrNoSnapshot
	}
	if err != nil {
		return Meta{}, fmt.Errorf("query snapshot meta: %w", err)
	}
	m.FetchedAt = time.Unix(fetchedAt, 0)
	return m, nil
}

// LoadSnapshot reconstructs the stored dataset in its original row and
// column order.
func (s *Store) LoadSnapshot(ctx context.Context) (*dataset.Dataset, Meta, error) {
	meta, err := s.LatestMeta(ctx)
	if err != nil {
		return nil, Meta{}, err
	}

	var snapshotID int64
	if err := s.db.QueryRowContext(ctx, `
		SELECT id FROM snapshots ORDER BY id DESC LIMIT 1
	`).Scan(&snapshotID); err != nil {
		return nil, Meta{}, fmt.Errorf("query snapshot id: %w", err)
	}

	rows, err := s.readRows(ctx, snapshotID)
	if err != nil {
		return nil, Meta{}, err
	}
	cols, err := s.readCols(ctx, snapshotID)
	if err != nil {
		return nil, Meta{}, err
	}
	cells, err := s.readCells(ctx, snapshotID, len(rows), len(cols))
	if err != nil {
		return nil, Meta{}, err
	}

	d, err := dataset.New(rows, cols, cells)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("rebuild snapshot: %w", err)
	}
	return d, meta, nil
}

func (s *Store) readRows(ctx context.Context, snapshotID int64) ([]dataset.RowKey, error) {
	rs, err := s.db.QueryContext(ctx, `
		SELECT year, month, state
		FROM snapshot_rows
		WHERE snapshot_id = ?
		ORDER BY ord ASC
	`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}
	defer rs.Close()

	var rows []dataset.RowKey
	for rs.Next() {
		var r dataset.RowKey
		if err := rs.Scan(&r.Year, &r.Month, &r.State); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		rows = append(rows, r)
	}
	return rows, rs.Err()
}

func (s *Store) readCols(ctx context.Context, snapshotID int64) ([]dataset.ColKey, error) {
	rs, err := s.db.QueryContext(ctx, `
		SELECT sector, metric, unit
		FROM snapshot_cols
		WHERE snapshot_id = ?
		ORDER BY ord ASC
	`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("query cols: %w", err)
	}
	defer rs.Close()

	var cols []dataset.ColKey
	for rs.Next() {
		var c dataset.ColKey
		if err := rs.Scan(&c.Sector, &c.Metric, &c.Unit); err != nil {
			return nil, fmt.Errorf("scan col: %w", err)
		}
		cols = append(cols, c)
	}
	return cols, rs.Err()
}

func (s *Store) readCells(ctx context.Context, snapshotID int64, numRows, numCols int) ([][]float64, error) {
	cells := make([][]float64, numRows)
	for i := range cells {
		row := make([]float64, numCols)
		for j := range row {
			row[j] = dataset.Missing
		}
		cells[i] = row
	}

	rs, err := s.db.QueryContext(ctx, `
		SELECT row_ord, col_ord, value
		FROM snapshot_cells
		WHERE snapshot_id = ?
		ORDER BY row_ord ASC, col_ord ASC
	`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("query cells: %w", err)
	}
	defer rs.Close()

	for rs.Next() {
		var rowOrd, colOrd int
		var value sql.NullFloat64
		if err := rs.Scan(&rowOrd, &colOrd, &value); err != nil {
			return nil, fmt.Errorf("scan cell: %w", err)
		}
		if rowOrd < 0 || rowOrd >= numRows || colOrd < 0 || colOrd >= numCols {
			return nil, fmt.Errorf("cell (%d,%d) outside snapshot bounds", rowOrd, colOrd)
		}
		if value.Valid {
			cells[rowOrd][colOrd] = value.Float64
		}
	}
	return cells, rs.Err()
}
