package hierarchy

import (
	"github.com/lherron/joplin2fnx/internal/domain"
)

// ResolvePath returns the root-first chain of folders ending at id.
// A chain without a loop needs at most Len()+1 lookups, the last one being
// a dangling parent (*domain.NotFoundError). Running past that bound means
// the parent pointers loop and yields *domain.CycleDetectedError.
func (idx *Index) ResolvePath(id string) (domain.Path, error) {
	var reversed domain.Path
	current := id
	for steps := 0; steps <= idx.Len(); steps++ {
		folder, err := idx.Find(current)
		if err != nil {
			return nil, err
		}
		reversed = append(reversed, domain.PathEntry{Title: folder.Title, ID: folder.ID})
		if !folder.IsRoot() {
			current = folder.ParentID
			continue
		}

		path := make(domain.Path, len(reversed))
		for i, e := range reversed {
			path[len(reversed)-1-i] = e
		}
		return path, nil
	}
	return nil, &domain.CycleDetectedError{ID: id, Steps: idx.Len()}
}

// ResolveParentPath returns the ancestor chain of a folder, excluding the folder.
// Root folders yield an empty path.
func (idx *Index) ResolveParentPath(id string) (domain.Path, error) {
	path, err := idx.ResolvePath(id)
	if err != nil {
		return nil, err
	}
	return path.Parent(), nil
}

// ResolveNotePath returns the path of the folder containing note.
func (idx *Index) ResolveNotePath(note domain.NoteRecord) (domain.Path, error) {
	if note.ParentID == "" {
		return nil, &domain.NotFoundError{Kind: "folder", ID: note.ParentID}
	}
	return idx.ResolvePath(note.ParentID)
}
