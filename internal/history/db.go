package history

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps sql.DB with the run history methods
type DB struct {
	*sql.DB
}

// Open creates a new database connection
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("database open failed: %w", err)
	}

	// Enable WAL mode for better concurrent access
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA synchronous=NORMAL")

	return &DB{db}, nil
}

// InitSchema creates all necessary tables
func (db *DB) InitSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS runs (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        started_at DATETIME NOT NULL,
        rounds INTEGER NOT NULL,
        server_id TEXT,
        server_name TEXT,
        server_country TEXT,
        server_sponsor TEXT,
        ping_mean_ms REAL NOT NULL,
        ping_stddev_ms REAL NOT NULL,
        download_mean_mbps REAL NOT NULL,
        download_stddev_mbps REAL NOT NULL,
        upload_mean_mbps REAL NOT NULL,
        upload_stddev_mbps REAL NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );

    CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);

    CREATE TABLE IF NOT EXISTS samples (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        run_id INTEGER NOT NULL REFERENCES runs(id),
        round INTEGER NOT NULL,
        ping_ms REAL NOT NULL,
        download_mbps REAL NOT NULL,
        upload_mbps REAL NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_samples_run_id ON samples(run_id);
    `

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}

	return nil
}
