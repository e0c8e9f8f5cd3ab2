package domain

import (
	"errors"
	"testing"
)

func TestValidateFolders(t *testing.T) {
	tests := []struct {
		name    string
		folders []FolderRecord
		wantErr bool
	}{
		{name: "empty list", folders: nil, wantErr: false},
		{
			name: "valid tree",
			folders: []FolderRecord{
				{ID: "1", Title: "Work"},
				{ID: "2", ParentID: "1", Title: "Projects"},
			},
			wantErr: false,
		},
		{
			name:    "empty id",
			folders: []FolderRecord{{ID: "", Title: "Work"}},
			wantErr: true,
		},
		{
			name: "duplicate id",
			folders: []FolderRecord{
				{ID: "1", Title: "Work"},
				{ID: "1", Title: "Home"},
			},
			wantErr: true,
		},
		{
			name:    "self parent",
			folders: []FolderRecord{{ID: "1", ParentID: "1", Title: "Loop"}},
			wantErr: true,
		},
		{
			name: "duplicate titles are allowed",
			folders: []FolderRecord{
				{ID: "1", Title: "Ideas"},
				{ID: "2", Title: "Ideas"},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFolders(tt.folders)
			if tt.wantErr && err == nil {
				t.Error("ValidateFolders() expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateFolders() unexpected error: %v", err)
			}
			if err != nil && !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("ValidateFolders() error should match ErrInvalidRecord, got %v", err)
			}
		})
	}
}

func TestValidateNotes(t *testing.T) {
	tests := []struct {
		name    string
		notes   []NoteRecord
		wantErr bool
	}{
		{name: "valid", notes: []NoteRecord{{ID: "10", ParentID: "2", Title: "Plan"}}},
		{name: "dangling parent is fine", notes: []NoteRecord{{ID: "10", ParentID: "missing", Title: "Plan"}}},
		{name: "empty id", notes: []NoteRecord{{ParentID: "2", Title: "Plan"}}, wantErr: true},
		{
			name:    "duplicate id",
			notes:   []NoteRecord{{ID: "10", Title: "a"}, {ID: "10", Title: "b"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNotes(tt.notes)
			if tt.wantErr != (err != nil) {
				t.Errorf("ValidateNotes() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTypedErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not found", &NotFoundError{Kind: "folder", ID: "x"}, ErrNotFound},
		{"cycle", &CycleDetectedError{ID: "x", Steps: 3}, ErrCycleDetected},
		{"path", &PathNotFoundError{Path: []string{"a", "b"}, Missing: "a"}, ErrPathNotFound},
		{"ambiguous", &AmbiguousError{Selector: "Ideas", IDs: []string{"1", "2"}}, ErrAmbiguous},
		{"validation", &ValidationError{Kind: "note", Reason: "x"}, ErrInvalidRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.sentinel)
			}
			if tt.err.Error() == "" {
				t.Error("Error() should not be empty")
			}
		})
	}
}
