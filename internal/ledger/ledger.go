// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger persists per-archive conversion outcomes in SQLite, so
// later runs can list history and skip archives that are already up to date.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/comicbind/pkg/types"
)

const defaultHistoryLimit = 20

// Ledger records conversion outcomes across runs.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the ledger database at path. Parent directories and
// the schema are created as needed.
func Open(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	_, err := l.db.Exec(`CREATE TABLE IF NOT EXISTS conversions (
		archive_path TEXT PRIMARY KEY,
		archive_mod_time TEXT NOT NULL,
		status TEXT NOT NULL,
		output_path TEXT NOT NULL DEFAULT '',
		pages INTEGER NOT NULL DEFAULT 0,
		output_bytes INTEGER NOT NULL DEFAULT 0,
		detail TEXT NOT NULL DEFAULT '',
		completed_at INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record upserts one archive's outcome, keyed by its source path. modTime is
// the archive's modification time at conversion, the key for change
// detection on later runs.
func (l *Ledger) Record(ctx context.Context, res types.ArchiveResult, modTime time.Time) error {
	detail := res.Reason
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO conversions (archive_path, archive_mod_time, status, output_path, pages, output_bytes, detail, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(archive_path) DO UPDATE SET
			archive_mod_time=excluded.archive_mod_time, status=excluded.status,
			output_path=excluded.output_path, pages=excluded.pages,
			output_bytes=excluded.output_bytes, detail=excluded.detail,
			completed_at=excluded.completed_at`,
		res.Path, modTime.UTC().Format(time.RFC3339Nano), string(res.Status),
		res.OutputPath, res.Pages, res.OutputBytes, detail,
		time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", filepath.Base(res.Path), err)
	}
	return nil
}

// Unchanged reports whether archivePath was already converted at the given
// modification time and its recorded output file still exists. Any miss,
// prior failure, or missing output means the archive needs converting.
func (l *Ledger) Unchanged(ctx context.Context, archivePath string, modTime time.Time) bool {
	var storedMod, status, outputPath string
	err := l.db.QueryRowContext(ctx,
		`SELECT archive_mod_time, status, output_path FROM conversions WHERE archive_path = ?`,
		archivePath,
	).Scan(&storedMod, &status, &outputPath)
	if err != nil {
		return false
	}
	if status != string(types.StatusConverted) {
		return false
	}
	if storedMod != modTime.UTC().Format(time.RFC3339Nano) {
		return false
	}
	if outputPath == "" {
		return false
	}
	_, err = os.Stat(outputPath)
	return err == nil
}

// Entry is one recorded conversion outcome.
type Entry struct {
	ArchivePath string
	Status      types.Status
	OutputPath  string
	Pages       int
	OutputBytes int64
	Detail      string
	CompletedAt time.Time
}

// History returns recorded outcomes, most recent first. limit <= 0 applies
// the default of 20.
func (l *Ledger) History(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	rows, err := l.db.QueryContext(ctx,
		`SELECT archive_path, status, output_path, pages, output_bytes, detail, completed_at
		 FROM conversions ORDER BY completed_at DESC, archive_path LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var status string
		var completedAt int64
		if err := rows.Scan(&e.ArchivePath, &status, &e.OutputPath, &e.Pages, &e.OutputBytes, &e.Detail, &completedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Status = types.Status(status)
		e.CompletedAt = time.Unix(0, completedAt).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history rows: %w", err)
	}
	return entries, nil
}
