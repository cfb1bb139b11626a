package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	dbutil "github.com/llehouerou/tunedeck/internal/db"
)

const dbFileName = "tunedeck.db"

// SQLite keeps every overlay as one row of the overlays table.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// SQLitePath returns the database location inside dataDir.
func SQLitePath(dataDir string) string {
	return filepath.Join(dataDir, dbFileName)
}

// OpenSQLite opens (or creates) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer; one connection also keeps :memory: coherent.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db, now: time.Now}, nil
}

func (s *SQLite) Read(ctx context.Context, name string) ([]byte, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM overlays WHERE name = ?`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(body), nil
}

func (s *SQLite) Write(ctx context.Context, name string, data []byte) error {
	return dbutil.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO overlays (name, body, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET
				body = excluded.body,
				updated_at = excluded.updated_at
		`, name, string(data), s.now().UnixMilli())
		return err
	})
}

func (s *SQLite) Delete(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM overlays WHERE name = ?`, name)
	return err
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// Verify SQLite implements Backend at compile time.
var _ Backend = (*SQLite)(nil)
