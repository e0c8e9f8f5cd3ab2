package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lherron/joplin2fnx/internal/db"
	"github.com/lherron/joplin2fnx/internal/domain"
)

// Note is a note fixture with its markdown body.
type Note struct {
	domain.NoteRecord
	Body string
}

// JoplinDB creates a temporary Joplin profile database holding folders and
// notes, and returns its path. The writable handle is closed before return.
func JoplinDB(t *testing.T, folders []domain.FolderRecord, notes []Note) string {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "database.sqlite")
	database, err := db.Create(dbPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	defer database.Close()

	for _, f := range folders {
		if err := database.InsertFolder(f); err != nil {
			t.Fatalf("Failed to insert folder: %v", err)
		}
	}
	for _, n := range notes {
		if err := database.InsertNote(n.NoteRecord, n.Body); err != nil {
			t.Fatalf("Failed to insert note: %v", err)
		}
	}
	return dbPath
}

// Folder builds a folder record.
func Folder(id, parentID, title string) domain.FolderRecord {
	return domain.FolderRecord{ID: id, ParentID: parentID, Title: title}
}

// NoteIn builds a note fixture.
func NoteIn(id, parentID, title, body string) Note {
	return Note{NoteRecord: domain.NoteRecord{ID: id, ParentID: parentID, Title: title}, Body: body}
}

// WriteFile writes content to a file in dir and returns its path.
func WriteFile(t *testing.T, dir, filename, content string) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}

// ReadFile reads content from a file.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(data)
}
