package db_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lherron/joplin2fnx/internal/db"
	"github.com/lherron/joplin2fnx/internal/domain"
	"github.com/lherron/joplin2fnx/internal/testutil"
)

func TestReadFoldersAndNotes(t *testing.T) {
	path := testutil.JoplinDB(t,
		[]domain.FolderRecord{
			testutil.Folder("1", "", "Work"),
			testutil.Folder("2", "1", "Projects"),
		},
		[]testutil.Note{
			testutil.NoteIn("10", "2", "Plan", "# plan"),
			testutil.NoteIn("11", "1", "Todo", "- a"),
		},
	)

	database, err := db.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()
	ctx := context.Background()

	folders, err := database.Folders(ctx)
	if err != nil {
		t.Fatalf("Folders: %v", err)
	}
	if len(folders) != 2 || folders[0].Title != "Work" || folders[1].ParentID != "1" {
		t.Fatalf("unexpected folders: %+v", folders)
	}

	notes, err := database.Notes(ctx)
	if err != nil {
		t.Fatalf("Notes: %v", err)
	}
	if len(notes) != 2 || notes[0].ID != "10" {
		t.Fatalf("unexpected notes: %+v", notes)
	}

	body, err := database.NoteBody(ctx, "10")
	if err != nil {
		t.Fatalf("NoteBody: %v", err)
	}
	if body != "# plan" {
		t.Errorf("body = %q, want %q", body, "# plan")
	}
}

func TestNoteBodyMissing(t *testing.T) {
	path := testutil.JoplinDB(t, nil, nil)
	database, err := db.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()

	_, err = database.NoteBody(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSkipsConflictsAndTrash(t *testing.T) {
	path := testutil.JoplinDB(t,
		[]domain.FolderRecord{testutil.Folder("1", "", "Work")},
		[]testutil.Note{testutil.NoteIn("10", "1", "Keep", "")},
	)
	rw, err := db.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := rw.Exec(`INSERT INTO notes (id, parent_id, title, is_conflict) VALUES ('11', '1', 'Conflict', 1)`); err != nil {
		t.Fatalf("insert conflict: %v", err)
	}
	if _, err := rw.Exec(`INSERT INTO folders (id, parent_id, title, deleted_time) VALUES ('2', '', 'Trash', 17)`); err != nil {
		t.Fatalf("insert trashed: %v", err)
	}
	rw.Close()

	database, err := db.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()

	notes, _ := database.Notes(context.Background())
	if len(notes) != 1 || notes[0].Title != "Keep" {
		t.Errorf("unexpected notes: %+v", notes)
	}
	folders, _ := database.Folders(context.Background())
	if len(folders) != 1 {
		t.Errorf("unexpected folders: %+v", folders)
	}
}

func TestOpenIsReadOnly(t *testing.T) {
	path := testutil.JoplinDB(t, nil, nil)
	database, err := db.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()

	if err := database.InsertFolder(testutil.Folder("1", "", "x")); err == nil {
		t.Fatal("expected write to fail on read-only handle")
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := db.Open(filepath.Join(t.TempDir(), "missing.sqlite")); err == nil {
		t.Fatal("expected error for missing database")
	}
}

func TestOpenPathWithURICharacters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "we?ird #1 100%", "database.sqlite")
	rw, err := db.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := rw.InsertFolder(testutil.Folder("1", "", "Work")); err != nil {
		t.Fatalf("InsertFolder: %v", err)
	}
	rw.Close()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("database not created at %s: %v", path, err)
	}

	database, err := db.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()

	folders, err := database.Folders(context.Background())
	if err != nil {
		t.Fatalf("Folders: %v", err)
	}
	if len(folders) != 1 || folders[0].Title != "Work" {
		t.Fatalf("unexpected folders: %+v", folders)
	}
}
