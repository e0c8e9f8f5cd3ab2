// Package db reads folders and notes straight from a Joplin desktop profile
// database (database.sqlite).
package db

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lherron/joplin2fnx/internal/domain"
)

//go:embed schema/joplin.sql
var schemaSQL string

// DB wraps a SQLite connection to a Joplin profile.
type DB struct {
	*sql.DB
	path       string
	hasDeleted bool
}

// Open opens the Joplin database at path read-only.
func Open(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("joplin database: %w", err)
	}
	dsn, err := fileDSN(path, "mode=ro")
	if err != nil {
		return nil, err
	}
	return open(path, dsn, []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA query_only = ON",
	})
}

// Create creates a writable database at path with the Joplin tables read by
// this package. It backs fixtures and local experiments.
func Create(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	dsn, err := fileDSN(path, "")
	if err != nil {
		return nil, err
	}
	d, err := open(path, dsn, []string{
		"PRAGMA busy_timeout = 5000",
	})
	if err != nil {
		return nil, err
	}
	if _, err := d.Exec(schemaSQL); err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	d.hasDeleted = true
	return d, nil
}

// fileDSN builds a SQLite URI for path. Characters such as ? # and % in the
// path are percent-encoded so they are not read as URI syntax.
func fileDSN(path, query string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve database path: %w", err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: query}
	return u.String(), nil
}

func open(path, dsn string, pragmas []string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Pragmas are per connection.
	sqlDB.SetMaxOpenConns(1)
	for _, pragma := range pragmas {
		if _, err := sqlDB.Exec(pragma); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to apply pragma %q: %w", pragma, err)
		}
	}

	d := &DB{DB: sqlDB, path: path}
	// Older profiles predate the trash and have no deleted_time column.
	d.hasDeleted, err = d.hasColumn("folders", "deleted_time")
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	return d, nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

func (db *DB) hasColumn(table, column string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			dflt       sql.NullString
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &primaryKey); err != nil {
			return false, fmt.Errorf("failed to scan %s columns: %w", table, err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

func (db *DB) liveFilter() string {
	if db.hasDeleted {
		return " AND deleted_time = 0"
	}
	return ""
}

// Folders returns every live folder in insertion order.
func (db *DB) Folders(ctx context.Context) ([]domain.FolderRecord, error) {
	query := "SELECT id, parent_id, title FROM folders WHERE 1 = 1" + db.liveFilter() + " ORDER BY rowid"
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query folders: %w", err)
	}
	defer rows.Close()

	var folders []domain.FolderRecord
	for rows.Next() {
		var f domain.FolderRecord
		if err := rows.Scan(&f.ID, &f.ParentID, &f.Title); err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating folders: %w", err)
	}
	return folders, nil
}

// Notes returns every live, non-conflict note in insertion order.
func (db *DB) Notes(ctx context.Context) ([]domain.NoteRecord, error) {
	query := "SELECT id, parent_id, title FROM notes WHERE is_conflict = 0" + db.liveFilter() + " ORDER BY rowid"
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.NoteRecord
	for rows.Next() {
		var n domain.NoteRecord
		if err := rows.Scan(&n.ID, &n.ParentID, &n.Title); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}
	return notes, nil
}

// NoteBody returns the markdown body of note id.
func (db *DB) NoteBody(ctx context.Context, id string) (string, error) {
	var body string
	err := db.QueryRowContext(ctx, "SELECT body FROM notes WHERE id = ?", id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", &domain.NotFoundError{Kind: "note", ID: id}
	}
	if err != nil {
		return "", fmt.Errorf("failed to read note %s: %w", id, err)
	}
	return body, nil
}

// InsertFolder adds a folder row. Only meaningful on a database from Create.
func (db *DB) InsertFolder(f domain.FolderRecord) error {
	_, err := db.Exec("INSERT INTO folders (id, parent_id, title) VALUES (?, ?, ?)", f.ID, f.ParentID, f.Title)
	if err != nil {
		return fmt.Errorf("failed to insert folder %s: %w", f.ID, err)
	}
	return nil
}

// InsertNote adds a note row. Only meaningful on a database from Create.
func (db *DB) InsertNote(n domain.NoteRecord, body string) error {
	_, err := db.Exec("INSERT INTO notes (id, parent_id, title, body) VALUES (?, ?, ?, ?)", n.ID, n.ParentID, n.Title, body)
	if err != nil {
		return fmt.Errorf("failed to insert note %s: %w", n.ID, err)
	}
	return nil
}
