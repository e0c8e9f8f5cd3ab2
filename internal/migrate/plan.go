package migrate

import (
	"github.com/lherron/joplin2fnx/internal/domain"
	"github.com/lherron/joplin2fnx/internal/hierarchy"
)

// Plan lists what a run merges. Structural folders are in parent-first
// order; Content folders are the ones whose notes are merged.
type Plan struct {
	Structural []domain.FolderRecord
	Content    []domain.FolderRecord
	Orphans    []domain.NoteRecord
}

// PlanAll covers the whole collection. Folders no root reaches (a parent
// cycle) are kept at the end so the structural pass reports them, and notes
// pointing at unknown folders are returned as orphans.
func PlanAll(idx *hierarchy.Index, prune hierarchy.PruneFunc) (Plan, error) {
	collected, err := idx.CollectAll(folderIDs(idx.Roots()), prune)
	if err != nil {
		return Plan{}, err
	}
	seen := make(map[string]bool, len(collected))
	for _, f := range collected {
		seen[f.ID] = true
	}
	structural := append([]domain.FolderRecord(nil), collected...)
	content := append([]domain.FolderRecord(nil), collected...)
	for _, f := range idx.Folders() {
		if seen[f.ID] {
			continue
		}
		if _, err := idx.ResolvePath(f.ID); err != nil {
			structural = append(structural, f)
			content = append(content, f)
		}
	}
	return Plan{Structural: structural, Content: content, Orphans: idx.Orphans()}, nil
}

// PlanSelected covers the subtrees of roots. Each root's ancestors are
// merged as empty containers first so deep selections keep their full path.
func PlanSelected(idx *hierarchy.Index, roots []domain.FolderRecord, prune hierarchy.PruneFunc) (Plan, error) {
	subtree, err := idx.CollectAll(folderIDs(roots), prune)
	if err != nil {
		return Plan{}, err
	}
	inSubtree := make(map[string]bool, len(subtree))
	for _, f := range subtree {
		inSubtree[f.ID] = true
	}

	var structural []domain.FolderRecord
	added := make(map[string]bool)
	for _, root := range roots {
		if !inSubtree[root.ID] {
			continue
		}
		parents, err := idx.ResolveParentPath(root.ID)
		if err != nil {
			// the structural pass reports the root itself
			continue
		}
		for _, id := range parents.IDs() {
			if added[id] || inSubtree[id] {
				continue
			}
			folder, err := idx.Find(id)
			if err != nil {
				continue
			}
			added[id] = true
			structural = append(structural, folder)
		}
	}
	structural = append(structural, subtree...)
	return Plan{Structural: structural, Content: subtree}, nil
}

func folderIDs(folders []domain.FolderRecord) []string {
	ids := make([]string, len(folders))
	for i, f := range folders {
		ids[i] = f.ID
	}
	return ids
}
