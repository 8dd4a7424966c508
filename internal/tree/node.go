package tree

import (
	"sort"
	"strings"
)

// Loader retrieves child entries for a directory path relative to the root.
type Loader interface {
	List(path string) ([]*Node, error)
}

// Node is a single entry in the picker tree.
type Node struct {
	Name     string
	Path     string
	IsDir    bool
	Open     bool
	Parent   *Node
	Children []*Node

	loader Loader
	loaded bool
}

// Line is a node as it appears in the flattened, expanded tree.
type Line struct {
	Node  *Node
	Depth int
}

// NewRoot creates the root node for the tree.
func NewRoot(name string, loader Loader) *Node {
	return &Node{
		Name:   name,
		Path:   "",
		IsDir:  true,
		Open:   true,
		loader: loader,
	}
}

// ChildByName returns the child node with the given name if it exists.
func (n *Node) ChildByName(name string) *Node {
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// EnsureLoaded lazily loads child entries for directory nodes.
func (n *Node) EnsureLoaded() error {
	if !n.IsDir || n.loaded || n.loader == nil {
		return nil
	}

	children, err := n.loader.List(n.Path)
	if err != nil {
		return err
	}

	n.Children = children
	for _, child := range n.Children {
		child.Parent = n
		child.loader = n.loader
	}
	n.sortChildren()
	n.loaded = true
	return nil
}

// Expand opens every directory along path, loading them as needed, and
// returns the node at path. It returns nil when path does not exist.
func (n *Node) Expand(path string) (*Node, error) {
	n.Open = true
	if path == "" {
		return n, nil
	}
	current := n
	for _, part := range strings.Split(path, "/") {
		if err := current.EnsureLoaded(); err != nil {
			return nil, err
		}
		child := current.ChildByName(part)
		if child == nil {
			return nil, nil
		}
		if child.IsDir {
			child.Open = true
		}
		current = child
	}
	return current, nil
}

// Flatten lists the visible nodes in display order: the root, then the
// children of every open directory depth first.
func (n *Node) Flatten() ([]Line, error) {
	var lines []Line
	var walk func(*Node, int) error
	walk = func(node *Node, depth int) error {
		lines = append(lines, Line{Node: node, Depth: depth})
		if !node.IsDir || !node.Open {
			return nil
		}
		if err := node.EnsureLoaded(); err != nil {
			return err
		}
		for _, child := range node.Children {
			if err := walk(child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(n, 0); err != nil {
		return lines, err
	}
	return lines, nil
}

// Label formats the line for display.
func (l Line) Label() string {
	if l.Depth == 0 {
		return l.Node.Name + "/"
	}
	indent := strings.Repeat("  ", l.Depth-1)
	indicator := "  "
	if l.Node.IsDir {
		if l.Node.Open {
			indicator = "- "
		} else {
			indicator = "+ "
		}
	}
	label := indent + indicator + l.Node.Name
	if l.Node.IsDir {
		label += "/"
	}
	return label
}

func (n *Node) sortChildren() {
	sort.Slice(n.Children, func(i, j int) bool {
		ci, cj := n.Children[i], n.Children[j]
		switch {
		case ci.IsDir == cj.IsDir:
			return strings.ToLower(ci.Name) < strings.ToLower(cj.Name)
		case ci.IsDir:
			return true
		default:
			return false
		}
	})
}
