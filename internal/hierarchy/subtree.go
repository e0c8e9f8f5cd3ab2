package hierarchy

import (
	"github.com/lherron/joplin2fnx/internal/domain"
)

// PruneFunc reports whether a folder and everything below it should be skipped.
type PruneFunc func(domain.FolderRecord) bool

// CollectSubtree returns rootID and every folder reachable through child links,
// in depth-first pre-order. Ids already visited are skipped silently.
func (idx *Index) CollectSubtree(rootID string) ([]domain.FolderRecord, error) {
	return idx.CollectSubtreeFunc(rootID, nil)
}

// CollectSubtreeFunc is CollectSubtree with an optional prune predicate.
// A pruned root yields an empty result.
func (idx *Index) CollectSubtreeFunc(rootID string, prune PruneFunc) ([]domain.FolderRecord, error) {
	root, err := idx.Find(rootID)
	if err != nil {
		return nil, err
	}

	var out []domain.FolderRecord
	visited := make(map[string]bool)
	stack := []domain.FolderRecord{root}

	for len(stack) > 0 {
		folder := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[folder.ID] {
			continue
		}
		visited[folder.ID] = true
		if prune != nil && prune(folder) {
			continue
		}
		out = append(out, folder)

		// Push in reverse so the first child is visited first.
		children := idx.ChildrenOf(folder.ID)
		for i := len(children) - 1; i >= 0; i-- {
			if !visited[children[i].ID] {
				stack = append(stack, children[i])
			}
		}
	}
	return out, nil
}

// CollectAll collects the subtrees of several roots, keeping the first
// occurrence of any folder reached more than once.
func (idx *Index) CollectAll(rootIDs []string, prune PruneFunc) ([]domain.FolderRecord, error) {
	var out []domain.FolderRecord
	seen := make(map[string]bool)
	for _, id := range rootIDs {
		folders, err := idx.CollectSubtreeFunc(id, prune)
		if err != nil {
			return nil, err
		}
		for _, f := range folders {
			if seen[f.ID] {
				continue
			}
			seen[f.ID] = true
			out = append(out, f)
		}
	}
	return out, nil
}
