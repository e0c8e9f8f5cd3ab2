package domain

import (
	"fmt"
)

// ValidationError describes a structurally invalid input record.
type ValidationError struct {
	Kind   string
	ID     string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("invalid %s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.ID, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRecord
}

// ValidateFolders checks that every folder has a unique, non-empty id and
// does not name itself as parent.
func ValidateFolders(folders []FolderRecord) error {
	seen := make(map[string]struct{}, len(folders))
	for i, f := range folders {
		if f.ID == "" {
			return &ValidationError{Kind: "folder", Reason: fmt.Sprintf("empty id at position %d", i)}
		}
		if _, dup := seen[f.ID]; dup {
			return &ValidationError{Kind: "folder", ID: f.ID, Reason: "duplicate id"}
		}
		if f.ParentID == f.ID {
			return &ValidationError{Kind: "folder", ID: f.ID, Reason: "folder is its own parent"}
		}
		seen[f.ID] = struct{}{}
	}
	return nil
}

// ValidateNotes checks that every note has a unique, non-empty id.
// Dangling parent ids are not rejected here; they surface per note as NotFound.
func ValidateNotes(notes []NoteRecord) error {
	seen := make(map[string]struct{}, len(notes))
	for i, n := range notes {
		if n.ID == "" {
			return &ValidationError{Kind: "note", Reason: fmt.Sprintf("empty id at position %d", i)}
		}
		if _, dup := seen[n.ID]; dup {
			return &ValidationError{Kind: "note", ID: n.ID, Reason: "duplicate id"}
		}
		seen[n.ID] = struct{}{}
	}
	return nil
}
