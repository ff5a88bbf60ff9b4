// Package history keeps a SQLite index of downloaded wallpapers so repeated
// runs skip what is already on disk.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultFilename is the index file kept inside the download directory.
const DefaultFilename = ".walldl.db"

// Entry records one downloaded wallpaper.
type Entry struct {
	ID           string
	Source       string
	URL          string
	Path         string
	Size         int64
	DownloadedAt time.Time
}

// DB is the download history store.
type DB struct {
	db *sql.DB
}

// Open creates or opens the history database at dbPath.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating history directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", "file:"+dbPath+"?_loc=auto")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	// Multiple download workers write concurrently.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting synchronous mode: %w", err)
	}

	h := &DB{db: db}
	if err := h.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return h, nil
}

func (h *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS downloads (
		id            TEXT PRIMARY KEY,
		source        TEXT NOT NULL,
		url           TEXT NOT NULL,
		path          TEXT NOT NULL,
		size          INTEGER NOT NULL,
		downloaded_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_downloads_source ON downloads(source);
	`
	if _, err := h.db.Exec(schema); err != nil {
		return fmt.Errorf("initializing history schema: %w", err)
	}
	return nil
}

// Add records a download. Re-adding an id replaces the previous entry.
func (h *DB) Add(e Entry) error {
	_, err := h.db.Exec(`
		INSERT OR REPLACE INTO downloads (id, source, url, path, size, downloaded_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Source, e.URL, e.Path, e.Size, e.DownloadedAt)
	if err != nil {
		return fmt.Errorf("recording download %s: %w", e.ID, err)
	}
	return nil
}

// Seen reports whether a wallpaper id has been downloaded before.
func (h *DB) Seen(id string) (bool, error) {
	var one int
	err := h.db.QueryRow("SELECT 1 FROM downloads WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("looking up download %s: %w", id, err)
	}
	return true, nil
}

// Recent returns the most recent downloads, newest first.
func (h *DB) Recent(limit int) ([]Entry, error) {
	rows, err := h.db.Query(`
		SELECT id, source, url, path, size, downloaded_at
		FROM downloads ORDER BY downloaded_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent downloads: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Source, &e.URL, &e.Path, &e.Size, &e.DownloadedAt); err != nil {
			return nil, fmt.Errorf("scanning download row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating download rows: %w", err)
	}
	return entries, nil
}

// Close closes the underlying database.
func (h *DB) Close() error {
	return h.db.Close()
}
