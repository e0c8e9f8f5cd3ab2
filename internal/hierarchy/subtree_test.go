package hierarchy

import (
	"testing"

	"github.com/lherron/joplin2fnx/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(folders []domain.FolderRecord) []string {
	out := make([]string, len(folders))
	for i, f := range folders {
		out[i] = f.ID
	}
	return out
}

func TestCollectSubtree_PreOrder(t *testing.T) {
	idx := newSampleIndex(t)

	got, err := idx.CollectSubtree("1")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "4", "3"}, ids(got))
}

func TestCollectSubtree_Leaf(t *testing.T) {
	idx := newSampleIndex(t)

	got, err := idx.CollectSubtree("4")
	require.NoError(t, err)
	assert.Equal(t, []string{"4"}, ids(got))
}

func TestCollectSubtree_Deterministic(t *testing.T) {
	idx := newSampleIndex(t)

	first, err := idx.CollectSubtree("1")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := idx.CollectSubtree("1")
		require.NoError(t, err)
		assert.Equal(t, ids(first), ids(again))
	}
}

func TestCollectSubtree_UnknownRoot(t *testing.T) {
	idx := newSampleIndex(t)

	_, err := idx.CollectSubtree("missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCollectSubtree_CycleIsNoop(t *testing.T) {
	idx, err := New([]domain.FolderRecord{
		{ID: "a", ParentID: "b", Title: "A"},
		{ID: "b", ParentID: "a", Title: "B"},
	}, nil)
	require.NoError(t, err)

	got, err := idx.CollectSubtree("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(got))
}

func TestCollectSubtreeFunc_Prune(t *testing.T) {
	idx := newSampleIndex(t)

	prune := func(f domain.FolderRecord) bool { return f.Title == "Projects" }
	got, err := idx.CollectSubtreeFunc("1", prune)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, ids(got))

	got, err = idx.CollectSubtreeFunc("2", prune)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCollectAll_Dedupes(t *testing.T) {
	idx := newSampleIndex(t)

	got, err := idx.CollectAll([]string{"1", "2", "5"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "4", "3", "5"}, ids(got))
}
