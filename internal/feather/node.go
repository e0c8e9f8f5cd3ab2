// Package feather models FeatherNotes documents: a forest of named nodes,
// each carrying rich-text content and its own children.
package feather

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Default fonts written into new documents.
const (
	DefaultTxtFont  = "Monospace,11,-1,5,400,0,0,0,0,0,0,0,0,0,0,1"
	DefaultNodeFont = "Cantarell,11,-1,5,400,0,0,0,0,0,0,0,0,0,0,1"
)

// Node is one named entry of the document tree.
// Siblings never share a Name.
type Node struct {
	Name     string     `xml:"name,attr" json:"name" yaml:"name"`
	Attrs    []xml.Attr `xml:",any,attr" json:"-" yaml:"-"`
	Text     string     `xml:",chardata" json:"text,omitempty" yaml:"text,omitempty"`
	Children []*Node    `xml:"node" json:"children,omitempty" yaml:"children,omitempty"`
}

// Document is the root <feathernotes> element.
type Document struct {
	XMLName  xml.Name   `xml:"feathernotes" json:"-" yaml:"-"`
	TxtFont  string     `xml:"txtfont,attr,omitempty" json:"txtfont,omitempty" yaml:"txtfont,omitempty"`
	NodeFont string     `xml:"nodefont,attr,omitempty" json:"nodefont,omitempty" yaml:"nodefont,omitempty"`
	Attrs    []xml.Attr `xml:",any,attr" json:"-" yaml:"-"`
	Nodes    []*Node    `xml:"node" json:"nodes" yaml:"nodes"`
}

// New returns an empty document with the given fonts, falling back to the defaults.
func New(txtFont, nodeFont string) *Document {
	if txtFont == "" {
		txtFont = DefaultTxtFont
	}
	if nodeFont == "" {
		nodeFont = DefaultNodeFont
	}
	return &Document{TxtFont: txtFont, NodeFont: nodeFont}
}

// Child returns the child of n named name, or nil.
func (n *Node) Child(name string) *Node {
	return findChild(n.Children, name)
}

func findChild(nodes []*Node, name string) *Node {
	for _, c := range nodes {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Lookup follows names level by level from the forest roots.
// It returns nil when any name is missing or no names are given.
func (d *Document) Lookup(names ...string) *Node {
	if len(names) == 0 {
		return nil
	}
	level := d.Nodes
	var node *Node
	for _, name := range names {
		node = findChild(level, name)
		if node == nil {
			return nil
		}
		level = node.Children
	}
	return node
}

// WalkFunc is called for every node with its root-first ancestor names.
type WalkFunc func(ancestors []string, n *Node) error

// Walk visits the forest depth-first, pre-order. Returning an error stops the walk.
func (d *Document) Walk(fn WalkFunc) error {
	type frame struct {
		node      *Node
		ancestors []string
	}
	stack := make([]frame, 0, len(d.Nodes))
	for i := len(d.Nodes) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: d.Nodes[i]})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := fn(f.ancestors, f.node); err != nil {
			return err
		}
		childAncestors := append(append([]string(nil), f.ancestors...), f.node.Name)
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: f.node.Children[i], ancestors: childAncestors})
		}
	}
	return nil
}

// Count returns the number of nodes in the forest.
func (d *Document) Count() int {
	count := 0
	_ = d.Walk(func([]string, *Node) error {
		count++
		return nil
	})
	return count
}

// DuplicateSiblingError reports two siblings sharing a name.
type DuplicateSiblingError struct {
	Parent []string
	Name   string
}

func (e *DuplicateSiblingError) Error() string {
	parent := strings.Join(e.Parent, "/")
	if parent == "" {
		parent = "/"
	}
	return fmt.Sprintf("duplicate node %q under %s", e.Name, parent)
}

// Validate checks sibling-name uniqueness across the whole forest.
func (d *Document) Validate() error {
	if err := uniqueNames(nil, d.Nodes); err != nil {
		return err
	}
	return d.Walk(func(ancestors []string, n *Node) error {
		return uniqueNames(append(append([]string(nil), ancestors...), n.Name), n.Children)
	})
}

func uniqueNames(parent []string, nodes []*Node) error {
	seen := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if _, dup := seen[n.Name]; dup {
			return &DuplicateSiblingError{Parent: parent, Name: n.Name}
		}
		seen[n.Name] = struct{}{}
	}
	return nil
}
