package hierarchy

import (
	"testing"

	"github.com/lherron/joplin2fnx/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleFolders builds:
//
//	Work (1)
//	├── Projects (2)
//	│   └── 2024 (4)
//	└── Meetings (3)
//	Home (5)
func sampleFolders() []domain.FolderRecord {
	return []domain.FolderRecord{
		{ID: "1", Title: "Work"},
		{ID: "2", ParentID: "1", Title: "Projects"},
		{ID: "3", ParentID: "1", Title: "Meetings"},
		{ID: "4", ParentID: "2", Title: "2024"},
		{ID: "5", Title: "Home"},
	}
}

func sampleNotes() []domain.NoteRecord {
	return []domain.NoteRecord{
		{ID: "10", ParentID: "2", Title: "Plan"},
		{ID: "11", ParentID: "3", Title: "Standup"},
		{ID: "12", ParentID: "2", Title: "Budget"},
		{ID: "13", ParentID: "gone", Title: "Orphan"},
	}
}

func newSampleIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := New(sampleFolders(), sampleNotes())
	require.NoError(t, err)
	return idx
}

func TestNew_RejectsInvalidInput(t *testing.T) {
	_, err := New([]domain.FolderRecord{{ID: "1"}, {ID: "1"}}, nil)
	require.ErrorIs(t, err, domain.ErrInvalidRecord)

	_, err = New(nil, []domain.NoteRecord{{ID: ""}})
	require.ErrorIs(t, err, domain.ErrInvalidRecord)
}

func TestIndex_ChildrenOfKeepsInputOrder(t *testing.T) {
	idx := newSampleIndex(t)

	children := idx.ChildrenOf("1")
	require.Len(t, children, 2)
	assert.Equal(t, "Projects", children[0].Title)
	assert.Equal(t, "Meetings", children[1].Title)

	assert.Empty(t, idx.ChildrenOf("4"))
	assert.Empty(t, idx.ChildrenOf("unknown"))
}

func TestIndex_Roots(t *testing.T) {
	idx := newSampleIndex(t)

	roots := idx.Roots()
	require.Len(t, roots, 2)
	assert.Equal(t, "1", roots[0].ID)
	assert.Equal(t, "5", roots[1].ID)
}

func TestIndex_NotesOf(t *testing.T) {
	idx := newSampleIndex(t)

	notes := idx.NotesOf("2")
	require.Len(t, notes, 2)
	assert.Equal(t, "Plan", notes[0].Title)
	assert.Equal(t, "Budget", notes[1].Title)
	assert.Empty(t, idx.NotesOf("5"))
}

func TestIndex_Find(t *testing.T) {
	idx := newSampleIndex(t)

	f, err := idx.Find("3")
	require.NoError(t, err)
	assert.Equal(t, "Meetings", f.Title)

	_, err = idx.Find("nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIndex_Orphans(t *testing.T) {
	idx := newSampleIndex(t)

	orphans := idx.Orphans()
	require.Len(t, orphans, 1)
	assert.Equal(t, "13", orphans[0].ID)
}

func TestIndex_DoesNotAliasInput(t *testing.T) {
	folders := sampleFolders()
	idx, err := New(folders, nil)
	require.NoError(t, err)

	folders[0].Title = "Changed"
	f, err := idx.Find("1")
	require.NoError(t, err)
	assert.Equal(t, "Work", f.Title)
}
