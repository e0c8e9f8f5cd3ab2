package feather

import (
	"github.com/lherron/joplin2fnx/internal/domain"
)

// Outcome describes what a single Insert changed.
type Outcome struct {
	// ContainerCreated is set when the node for the final path entry did not
	// exist and was created.
	ContainerCreated bool
	// Inserted is false when a sibling with the leaf's name already existed.
	Inserted bool
}

// Insert merges a leaf named name with content text under the node addressed
// by path, matching path titles level by level from the forest roots.
//
// An empty path targets the forest roots. A missing final path entry is
// created before the leaf is added; a missing earlier entry fails with
// *domain.PathNotFoundError and leaves the forest untouched. Existing names are
// never duplicated, so repeating an Insert is a no-op. Nodes are never removed
// or reordered.
func Insert(forest *[]*Node, path domain.Path, name, content string) (Outcome, error) {
	var out Outcome
	level := forest
	last := len(path) - 1

	for depth, entry := range path {
		node := findChild(*level, entry.Title)
		if node == nil {
			if depth != last {
				return Outcome{}, &domain.PathNotFoundError{
					Path:    path.Titles(),
					Missing: entry.Title,
					Depth:   depth,
				}
			}
			node = &Node{Name: entry.Title}
			*level = append(*level, node)
			out.ContainerCreated = true
		}
		level = &node.Children
	}

	if findChild(*level, name) != nil {
		return out, nil
	}
	*level = append(*level, &Node{Name: name, Text: content})
	out.Inserted = true
	return out, nil
}

// Insert merges a leaf into the document's forest. See the package-level Insert.
func (d *Document) Insert(path domain.Path, name, content string) (Outcome, error) {
	return Insert(&d.Nodes, path, name, content)
}
