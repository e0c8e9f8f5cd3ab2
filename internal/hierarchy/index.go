// Package hierarchy rebuilds the folder tree from flat parent-pointer records.
//
// All records live in one slice owned by the Index; parent and child relations
// are id references resolved on demand, so no record holds a pointer to another.
package hierarchy

import (
	"github.com/lherron/joplin2fnx/internal/domain"
)

// Index is a read-only lookup structure over a snapshot of folders and notes.
// It is safe for concurrent readers once built.
type Index struct {
	folders  []domain.FolderRecord
	notes    []domain.NoteRecord
	byID     map[string]int
	children map[string][]int
	notesOf  map[string][]int
}

// New builds an Index. Structural problems in the input (empty or duplicate
// ids) are returned as *domain.ValidationError and must abort the run.
func New(folders []domain.FolderRecord, notes []domain.NoteRecord) (*Index, error) {
	if err := domain.ValidateFolders(folders); err != nil {
		return nil, err
	}
	if err := domain.ValidateNotes(notes); err != nil {
		return nil, err
	}

	idx := &Index{
		folders:  append([]domain.FolderRecord(nil), folders...),
		notes:    append([]domain.NoteRecord(nil), notes...),
		byID:     make(map[string]int, len(folders)),
		children: make(map[string][]int),
		notesOf:  make(map[string][]int),
	}
	for i, f := range idx.folders {
		idx.byID[f.ID] = i
		idx.children[f.ParentID] = append(idx.children[f.ParentID], i)
	}
	for i, n := range idx.notes {
		idx.notesOf[n.ParentID] = append(idx.notesOf[n.ParentID], i)
	}
	return idx, nil
}

// Len returns the number of folders in the index.
func (idx *Index) Len() int {
	return len(idx.folders)
}

// Folders returns all folders in input order.
func (idx *Index) Folders() []domain.FolderRecord {
	return append([]domain.FolderRecord(nil), idx.folders...)
}

// Notes returns all notes in input order.
func (idx *Index) Notes() []domain.NoteRecord {
	return append([]domain.NoteRecord(nil), idx.notes...)
}

// Find returns the folder with the given id.
func (idx *Index) Find(id string) (domain.FolderRecord, error) {
	i, ok := idx.byID[id]
	if !ok {
		return domain.FolderRecord{}, &domain.NotFoundError{Kind: "folder", ID: id}
	}
	return idx.folders[i], nil
}

// ChildrenOf returns the folders whose parent is parentID, in input order.
// An empty parentID yields the root folders.
func (idx *Index) ChildrenOf(parentID string) []domain.FolderRecord {
	positions := idx.children[parentID]
	out := make([]domain.FolderRecord, len(positions))
	for i, p := range positions {
		out[i] = idx.folders[p]
	}
	return out
}

// Roots returns the folders without a parent, in input order.
func (idx *Index) Roots() []domain.FolderRecord {
	return idx.ChildrenOf("")
}

// NotesOf returns the notes whose parent is folderID, in input order.
func (idx *Index) NotesOf(folderID string) []domain.NoteRecord {
	positions := idx.notesOf[folderID]
	out := make([]domain.NoteRecord, len(positions))
	for i, p := range positions {
		out[i] = idx.notes[p]
	}
	return out
}

// Orphans returns notes whose parent folder is absent from the index.
func (idx *Index) Orphans() []domain.NoteRecord {
	var out []domain.NoteRecord
	for _, n := range idx.notes {
		if _, ok := idx.byID[n.ParentID]; !ok {
			out = append(out, n)
		}
	}
	return out
}
