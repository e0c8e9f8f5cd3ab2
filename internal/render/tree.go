package render

import (
	"fmt"
)

// TreeNode is a labelled node for tree output.
type TreeNode struct {
	Label    string      `json:"name" yaml:"name"`
	Detail   string      `json:"detail,omitempty" yaml:"detail,omitempty"`
	Children []*TreeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// RenderTree prints root followed by nodes drawn with box connectors.
// maxDepth limits the levels shown; 0 shows everything. In porcelain mode
// each line is the indented label and detail separated by a tab.
func (r *Renderer) RenderTree(root string, nodes []*TreeNode, maxDepth int) error {
	if _, err := fmt.Fprintln(r.writer, root); err != nil {
		return err
	}
	return r.printTree(nodes, "", 1, maxDepth)
}

func (r *Renderer) printTree(nodes []*TreeNode, prefix string, depth, maxDepth int) error {
	for i, child := range nodes {
		isLastChild := i == len(nodes)-1

		var line string
		if r.opts.Porcelain {
			line = fmt.Sprintf("%s%s\t%s", prefix, child.Label, child.Detail)
		} else {
			connector := "├── "
			if isLastChild {
				connector = "└── "
			}
			line = prefix + connector + child.Label
			if child.Detail != "" {
				line += " " + dimStyle.Render("("+child.Detail+")")
			}
		}
		if _, err := fmt.Fprintln(r.writer, line); err != nil {
			return err
		}

		if len(child.Children) == 0 || (maxDepth > 0 && depth >= maxDepth) {
			continue
		}
		var newPrefix string
		switch {
		case r.opts.Porcelain:
			newPrefix = prefix + "  "
		case isLastChild:
			newPrefix = prefix + "    "
		default:
			newPrefix = prefix + "│   "
		}
		if err := r.printTree(child.Children, newPrefix, depth+1, maxDepth); err != nil {
			return err
		}
	}
	return nil
}

// Prune returns a copy of nodes cut below maxDepth levels. 0 keeps everything.
func Prune(nodes []*TreeNode, maxDepth int) []*TreeNode {
	if maxDepth <= 0 {
		return nodes
	}
	out := make([]*TreeNode, len(nodes))
	for i, n := range nodes {
		cp := *n
		if maxDepth == 1 {
			cp.Children = nil
		} else {
			cp.Children = Prune(n.Children, maxDepth-1)
		}
		out[i] = &cp
	}
	return out
}
