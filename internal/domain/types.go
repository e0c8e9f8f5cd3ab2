package domain

import "strings"

// FolderRecord represents a Joplin folder (notebook) as returned by the fetch layer.
// ParentID is empty for folders at the collection root.
type FolderRecord struct {
	ID       string `json:"id" yaml:"id" db:"id"`
	ParentID string `json:"parent_id" yaml:"parent_id" db:"parent_id"`
	Title    string `json:"title" yaml:"title" db:"title"`
}

// IsRoot reports whether the folder has no parent.
func (f FolderRecord) IsRoot() bool {
	return f.ParentID == ""
}

// NoteRecord represents a Joplin note. The body is fetched separately by id.
type NoteRecord struct {
	ID       string `json:"id" yaml:"id" db:"id"`
	ParentID string `json:"parent_id" yaml:"parent_id" db:"parent_id"`
	Title    string `json:"title" yaml:"title" db:"title"`
}

// PathEntry is one element of a root-first ancestor chain.
type PathEntry struct {
	Title string `json:"title" yaml:"title"`
	ID    string `json:"id" yaml:"id"`
}

// Path is a root-first chain of PathEntry values.
type Path []PathEntry

// Titles returns the titles of the path in order.
func (p Path) Titles() []string {
	titles := make([]string, len(p))
	for i, e := range p {
		titles[i] = e.Title
	}
	return titles
}

// IDs returns the ids of the path in order.
func (p Path) IDs() []string {
	ids := make([]string, len(p))
	for i, e := range p {
		ids[i] = e.ID
	}
	return ids
}

// Parent returns the path without its final entry.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// String renders the path as slash-joined titles, e.g. "Work/Projects".
func (p Path) String() string {
	return strings.Join(p.Titles(), "/")
}
