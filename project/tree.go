package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Node is a file or folder of a project tree. Children of folders are sorted,
// folders first, then by name.
type Node struct {
	Name     string
	Path     string
	IsDir    bool
	Children []*Node
}

// Build reads the tree below root. Hidden entries are skipped.
func Build(root string) (*Node, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("project tree: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project tree: %s is not a folder", root)
	}
	n := &Node{Name: filepath.Base(root), Path: root, IsDir: true}
	if err := n.read(); err != nil {
		return nil, fmt.Errorf("project tree: %w", err)
	}
	return n, nil
}

func (n *Node) read() error {
	entries, err := os.ReadDir(n.Path)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if isHidden(e.Name()) {
			continue
		}
		child := &Node{Name: e.Name(), Path: filepath.Join(n.Path, e.Name()), IsDir: e.IsDir()}
		if child.IsDir {
			if err := child.read(); err != nil {
				return err
			}
		}
		n.Children = append(n.Children, child)
	}
	sort.Slice(n.Children, func(i, j int) bool {
		a, b := n.Children[i], n.Children[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return a.Name < b.Name
	})
	return nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// Walk calls fn for n and all nodes below it, depth first. The depth of n is 0.
func (n *Node) Walk(fn func(node *Node, depth int)) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int), depth int) {
	fn(n, depth)
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Find returns the node for a path relative to n, or nil.
func (n *Node) Find(rel string) *Node {
	cur := n
	for _, part := range strings.Split(filepath.ToSlash(filepath.Clean(rel)), "/") {
		if part == "." || part == "" {
			continue
		}
		var next *Node
		for _, c := range cur.Children {
			if c.Name == part {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// Count returns the number of folders and files below n.
func (n *Node) Count() (dirs, files int) {
	n.Walk(func(node *Node, depth int) {
		if depth == 0 {
			return
		}
		if node.IsDir {
			dirs++
		} else {
			files++
		}
	})
	return
}

// Render returns an indented listing of the tree. Folder names end in a
// slash.
func (n *Node) Render() string {
	var b strings.Builder
	n.Walk(func(node *Node, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(node.Name)
		if node.IsDir {
			b.WriteByte('/')
		}
		b.WriteByte('\n')
	})
	return b.String()
}
