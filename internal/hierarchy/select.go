package hierarchy

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/lherron/joplin2fnx/internal/domain"
	"github.com/lherron/joplin2fnx/internal/paths"
)

// Select resolves a user supplied folder selector to the folders it names.
//
//	""  or "/"      every root folder
//	"Work/Projects" a root-first title path
//	"Projects"      the single folder with that exact title
func (idx *Index) Select(selector string) ([]domain.FolderRecord, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" || selector == "/" {
		return idx.Roots(), nil
	}

	if strings.Contains(selector, "/") {
		folder, err := idx.lookupPath(paths.SplitPath(selector))
		if err != nil {
			return nil, err
		}
		return []domain.FolderRecord{folder}, nil
	}

	var matches []domain.FolderRecord
	for _, f := range idx.folders {
		if f.Title == selector {
			matches = append(matches, f)
		}
	}
	switch len(matches) {
	case 0:
		return nil, &domain.NotFoundError{Kind: "folder", ID: selector}
	case 1:
		return matches, nil
	default:
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.ID
		}
		return nil, &domain.AmbiguousError{Selector: selector, IDs: ids}
	}
}

func (idx *Index) lookupPath(segments []string) (domain.FolderRecord, error) {
	var current domain.FolderRecord
	parentID := ""
	for depth, segment := range segments {
		var matches []domain.FolderRecord
		for _, child := range idx.ChildrenOf(parentID) {
			if child.Title == segment {
				matches = append(matches, child)
			}
		}
		joined := paths.JoinPath(segments[:depth+1]...)
		switch len(matches) {
		case 0:
			return domain.FolderRecord{}, &domain.NotFoundError{Kind: "folder", ID: joined}
		case 1:
			current = matches[0]
			parentID = current.ID
		default:
			ids := make([]string, len(matches))
			for i, m := range matches {
				ids[i] = m.ID
			}
			return domain.FolderRecord{}, &domain.AmbiguousError{Selector: joined, IDs: ids}
		}
	}
	return current, nil
}

// ExcludeTitles compiles glob patterns into a PruneFunc matching folder titles.
// No patterns yields a nil PruneFunc.
func ExcludeTitles(patterns []string) (PruneFunc, error) {
	var globs []glob.Glob
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	if len(globs) == 0 {
		return nil, nil
	}
	return func(f domain.FolderRecord) bool {
		for _, g := range globs {
			if g.Match(f.Title) {
				return true
			}
		}
		return false
	}, nil
}
