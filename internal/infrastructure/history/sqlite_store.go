package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"
	_ "modernc.org/sqlite"

	"github.com/doeshing/qrgen/internal/domain"
	"github.com/doeshing/qrgen/internal/pkg/logger"
	"github.com/doeshing/qrgen/internal/ports"
)

// SQLiteStore persists the history log in a SQLite database. Rows keep
// insertion order through their autoincrement id.
type SQLiteStore struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewSQLiteStore opens (or creates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
			return nil, goerr.Wrap(domain.ErrIO, "failed to create history directory",
				goerr.V("dir", dir), goerr.V("cause", err.Error()))
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, goerr.Wrap(domain.ErrIO, "failed to open history database",
			goerr.V("path", path), goerr.V("cause", err.Error()))
	}
	store := &SQLiteStore{db: db, path: path, now: time.Now}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		text TEXT NOT NULL,
		file_path TEXT NOT NULL,
		created_at TEXT
	);`)
	if err != nil {
		return goerr.Wrap(domain.ErrCorruptHistory, "failed to initialise history database",
			goerr.V("path", s.path), goerr.V("cause", err.Error()))
	}
	return nil
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load implements ports.HistoryRepository.
func (s *SQLiteStore) Load(ctx context.Context) (domain.HistoryLog, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT text, file_path, created_at FROM records ORDER BY id")
	if err != nil {
		return nil, goerr.Wrap(domain.ErrIO, "failed to query history",
			goerr.V("path", s.path), goerr.V("cause", err.Error()))
	}
	defer rows.Close()

	log := domain.HistoryLog{}
	for rows.Next() {
		var rec domain.HistoryRecord
		var ts sql.NullString
		if err := rows.Scan(&rec.Text, &rec.FilePath, &ts); err != nil {
			return nil, goerr.Wrap(domain.ErrCorruptHistory, "failed to scan history row",
				goerr.V("path", s.path), goerr.V("cause", err.Error()))
		}
		if ts.Valid && ts.String != "" {
			if t, err := time.Parse(time.RFC3339Nano, ts.String); err == nil {
				rec.CreatedAt = t
			}
		}
		log = append(log, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(domain.ErrIO, "failed to read history rows",
			goerr.V("path", s.path), goerr.V("cause", err.Error()))
	}
	return log, nil
}

// Save implements ports.HistoryRepository by replacing every row in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, log domain.HistoryLog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return goerr.Wrap(domain.ErrIO, "failed to begin history transaction", goerr.V("cause", err.Error()))
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM records"); err != nil {
		return goerr.Wrap(domain.ErrIO, "failed to clear history rows", goerr.V("cause", err.Error()))
	}
	// reset ids so insertion order restarts with the new snapshot
	if _, err := tx.ExecContext(ctx, "DELETE FROM sqlite_sequence WHERE name = 'records'"); err != nil {
		return goerr.Wrap(domain.ErrIO, "failed to reset history sequence", goerr.V("cause", err.Error()))
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO records (text, file_path, created_at) VALUES (?, ?, ?)")
	if err != nil {
		return goerr.Wrap(domain.ErrIO, "failed to prepare history insert", goerr.V("cause", err.Error()))
	}
	defer stmt.Close()

	for _, rec := range log {
		if _, err := stmt.ExecContext(ctx, rec.Text, rec.FilePath, formatTime(rec.CreatedAt)); err != nil {
			return goerr.Wrap(domain.ErrIO, "failed to insert history row",
				goerr.V("file_path", rec.FilePath), goerr.V("cause", err.Error()))
		}
	}

	if err := tx.Commit(); err != nil {
		return goerr.Wrap(domain.ErrIO, "failed to commit history", goerr.V("cause", err.Error()))
	}
	logger.From(ctx).Debug("history saved", "path", s.path, "records", len(log))
	return nil
}

// Add implements ports.HistoryRepository with a single insert.
func (s *SQLiteStore) Add(ctx context.Context, text, filePath string) error {
	_, err := s.db.ExecContext(ctx, "INSERT INTO records (text, file_path, created_at) VALUES (?, ?, ?)",
		text, filePath, formatTime(s.now().UTC()))
	if err != nil {
		return goerr.Wrap(domain.ErrIO, "failed to insert history row",
			goerr.V("file_path", filePath), goerr.V("cause", err.Error()))
	}
	return nil
}

func formatTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
