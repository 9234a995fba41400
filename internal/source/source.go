package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/roach88/retailgrid/internal/dataset"
	"github.com/roach88/retailgrid/internal/store"
)

// DefaultURL is the published monthly sales and revenue workbook.
const DefaultURL = "https://www.eia.gov/electricity/data/eia861m/xls/sales_revenue.xlsx"

// DefaultRefresh is how long a snapshot stays fresh.
const DefaultRefresh = 24 * time.Hour

// FetchFunc downloads the raw workbook bytes. Swappable for tests.
type FetchFunc func(ctx context.Context, url string) ([]byte, error)

// Cache owns the fetch/refresh policy over the snapshot store.
type Cache struct {
	URL     string
	Refresh time.Duration
	Store   *store.Store

	// RawDir, when set, receives a copy of the raw workbook file.
	RawDir string

	// Fetch downloads the workbook; defaults to an HTTP GET.
	Fetch FetchFunc

	// Now is the clock; defaults to time.Now.
	Now func() time.Time

	snapshot *dataset.Dataset
}

// New builds a Cache with defaults filled in.
func New(st *store.Store, url string, refresh time.Duration) *Cache {
	if url == "" {
		url = DefaultURL
	}
	if refresh <= 0 {
		refresh = DefaultRefresh
	}
	return &Cache{
		URL:     url,
		Refresh: refresh,
		Store:   st,
		Fetch:   httpFetch(http.DefaultClient),
		Now:     time.Now,
	}
}

// Load returns the canonical dataset snapshot for this invocation.
//
// A stored snapshot younger than the refresh interval is used as-is.
// Otherwise the workbook is refetched; on fetch or parse failure the stale
// snapshot (if any) is returned instead, and the error surfaces only when
// there is no snapshot at all. Repeated calls within one process return
// the same pinned snapshot.
func (c *Cache) Load(ctx context.Context) (*dataset.Dataset, error) {
	if c.snapshot != nil {
		return c.snapshot, nil
	}

	meta, metaErr := c.Store.LatestMeta(ctx)
	if metaErr == nil && meta.SourceURL == c.URL && c.Now().Sub(meta.FetchedAt) < c.Refresh {
		d, _, err := c.Store.LoadSnapshot(ctx)
		if err == nil {
			slog.Debug("using cached snapshot", "fetched_at", meta.FetchedAt, "rows", meta.RowCount)
			c.snapshot = d
			return d, nil
		}
		slog.Warn("cached snapshot unreadable, refetching", "error", err)
	}

	d, err := c.refresh(ctx)
	if err != nil {
		// Stale-cache fallback: a failed refresh never disturbs the
		// previous snapshot. A snapshot fetched from a different URL is
		// not a substitute for this source.
		if metaErr == nil && meta.SourceURL == c.URL {
			if stale, m, loadErr := c.Store.LoadSnapshot(ctx); loadErr == nil {
				slog.Warn("refresh failed, falling back to stale snapshot",
					"error", err, "fetched_at", m.FetchedAt)
				c.snapshot = stale
				return stale, nil
			}
		}
		return nil, err
	}
	c.snapshot = d
	return d, nil
}

// refresh fetches, persists, and parses a new snapshot.
func (c *Cache) refresh(ctx context.Context) (*dataset.Dataset, error) {
	slog.Info("fetching source workbook", "url", c.URL)
	raw, err := c.Fetch(ctx, c.URL)
	if err != nil {
		return nil, &SourceError{
			Code:    ErrCodeSourceUnavailable,
			Message: "fetch failed",
			Err:     err,
		}
	}

	if c.RawDir != "" {
		c.persistRaw(raw)
	}

	d, err := ParseWorkbook(raw)
	if err != nil {
		return nil, &SourceError{
			Code:    ErrCodeSourceUnavailable,
			Message: "workbook unreadable",
			Err:     err,
		}
	}

	if err := c.Store.SaveSnapshot(ctx, c.URL, c.Now(), d); err != nil {
		// The dataset is already in hand; a cache write failure costs the
		// next invocation a refetch, nothing more.
		slog.Warn("snapshot save failed", "error", err)
	}
	slog.Info("snapshot refreshed", "rows", d.NumRows(), "cols", d.NumCols())
	return d, nil
}

// persistRaw keeps a copy of the raw workbook next to the snapshot store.
func (c *Cache) persistRaw(raw []byte) {
	name := path.Base(c.URL)
	if name == "." || name == "/" {
		name = "source.xlsx"
	}
	dst := filepath.Join(c.RawDir, name)
	if err := os.WriteFile(dst, raw, 0o644); err != nil {
		slog.Warn("raw workbook save failed", "path", dst, "error", err)
	}
}

// httpFetch returns a FetchFunc backed by a plain HTTP GET.
func httpFetch(client *http.Client) FetchFunc {
	return func(ctx context.Context, url string) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
		}
		return io.ReadAll(resp.Body)
	}
}
