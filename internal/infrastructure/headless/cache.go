package headless

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/embedview/internal/logging"
	_ "github.com/ncruces/go-sqlite3/driver" // SQLite driver (pure Go)
	_ "github.com/ncruces/go-sqlite3/embed"  // Embed SQLite WASM binary
)

const cacheFileName = "pages.sqlite"

const pageCacheSchema = `
CREATE TABLE IF NOT EXISTS pages (
	url          TEXT PRIMARY KEY,
	body         TEXT NOT NULL,
	content_type TEXT NOT NULL DEFAULT '',
	etag         TEXT NOT NULL DEFAULT '',
	fetched_at   INTEGER NOT NULL
)`

// CachedPage is a validated HTTP response kept for conditional requests.
type CachedPage struct {
	URL         string
	Body        string
	ContentType string
	ETag        string
	FetchedAt   time.Time
}

// PageCache persists fetched documents under the engine cache path.
type PageCache struct {
	db *sql.DB
}

// OpenPageCache opens (creating if needed) the cache database in dir.
func OpenPageCache(ctx context.Context, dir string) (*PageCache, error) {
	const dbDirPerm = 0o750
	log := logging.FromContext(ctx)

	if dir == "" {
		return nil, fmt.Errorf("cache path cannot be empty")
	}
	if err := os.MkdirAll(dir, dbDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, cacheFileName)
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open page cache: %w", err)
	}

	// SQLite is single-writer; workers share one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to page cache: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, pageCacheSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create page cache schema: %w", err)
	}

	log.Debug().Str("path", dbPath).Msg("page cache opened")
	return &PageCache{db: db}, nil
}

// Get returns the cached page for url, or nil when absent.
func (c *PageCache) Get(ctx context.Context, url string) (*CachedPage, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT url, body, content_type, etag, fetched_at FROM pages WHERE url = ?`, url)

	var page CachedPage
	var fetchedAt int64
	err := row.Scan(&page.URL, &page.Body, &page.ContentType, &page.ETag, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached page: %w", err)
	}
	page.FetchedAt = time.Unix(fetchedAt, 0)
	return &page, nil
}

// Put stores page, replacing any previous entry for its URL.
func (c *PageCache) Put(ctx context.Context, page CachedPage) error {
	if page.FetchedAt.IsZero() {
		page.FetchedAt = time.Now()
	}
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO pages (url, body, content_type, etag, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			body = excluded.body,
			content_type = excluded.content_type,
			etag = excluded.etag,
			fetched_at = excluded.fetched_at`,
		page.URL, page.Body, page.ContentType, page.ETag, page.FetchedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to store cached page: %w", err)
	}
	return nil
}

// Touch refreshes the fetch time of a revalidated entry.
func (c *PageCache) Touch(ctx context.Context, url string) error {
	_, err := c.db.ExecContext(ctx, `UPDATE pages SET fetched_at = ? WHERE url = ?`, time.Now().Unix(), url)
	return err
}

// Len returns the number of cached pages.
func (c *PageCache) Len(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pages`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Close closes the database connection gracefully.
func (c *PageCache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}
