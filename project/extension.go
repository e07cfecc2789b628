package project

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/npillmayer/qalam"
)

// Extension shows the project tree and opens project files.
type Extension struct {
	mu      sync.Mutex
	host    qalam.Host
	caps    qalam.Capabilities
	lang    qalam.UILanguage
	root    string
	tree    *Node
	watcher *Watcher
}

var _ qalam.Extension = (*Extension)(nil)
var _ qalam.Closer = (*Extension)(nil)

// NewExtension creates the project panel for folder root.
func NewExtension(root string, lang qalam.UILanguage) *Extension {
	return &Extension{root: root, lang: lang}
}

// Name is part of interface qalam.Extension.
func (x *Extension) Name() string {
	return "project"
}

// Attach is part of interface qalam.Extension. A project folder which cannot
// be read is reported; the extension stays registered with an empty tree.
func (x *Extension) Attach(host qalam.Host, caps qalam.Capabilities) error {
	x.host = host
	x.caps = caps
	w, err := Watch(x.root, func(tree *Node) {
		caps.RunOnUI(func() { x.setTree(tree) })
	})
	if err != nil {
		caps.ShowError(titleLabel.In(x.lang), err)
		return nil
	}
	x.mu.Lock()
	x.watcher = w
	x.tree = w.Tree()
	x.mu.Unlock()
	return nil
}

func (x *Extension) setTree(tree *Node) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.tree = tree
}

// Tree returns the project tree as last seen. It is nil if the project folder
// could not be read.
func (x *Extension) Tree() *Node {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.tree
}

var (
	showLabel    = qalam.Label{En: "Show project tree", Ar: "عرض شجرة المشروع"}
	refreshLabel = qalam.Label{En: "Refresh project tree", Ar: "تحديث شجرة المشروع"}
	titleLabel   = qalam.Label{En: "Project", Ar: "المشروع"}
)

// MenuItems is part of interface qalam.Extension.
func (x *Extension) MenuItems() []qalam.MenuItem {
	return []qalam.MenuItem{
		{Name: showLabel.In(x.lang), Callback: func() {
			x.caps.ShowError(titleLabel.In(x.lang), x.ShowTree())
		}},
		{Name: refreshLabel.In(x.lang), Callback: func() {
			x.caps.ShowError(titleLabel.In(x.lang), x.Refresh())
		}},
	}
}

// ShowTree renders the project tree into a new tab or, if the host has no
// tabs, into the status bar.
func (x *Extension) ShowTree() error {
	tree := x.Tree()
	if tree == nil {
		if err := x.Refresh(); err != nil {
			return err
		}
		tree = x.Tree()
	}
	listing := tree.Render()
	if x.caps.Tabs != nil {
		return x.caps.Tabs.CreateNewTab(filepath.Join(x.root, ".project-tree"), listing)
	}
	dirs, files := tree.Count()
	x.caps.Notify(fmt.Sprintf("%s: %d folders, %d files", tree.Name, dirs, files))
	return nil
}

// Refresh rebuilds the project tree.
func (x *Extension) Refresh() error {
	x.mu.Lock()
	w := x.watcher
	x.mu.Unlock()
	var tree *Node
	var err error
	if w != nil {
		tree, err = w.Refresh()
	} else {
		tree, err = Build(x.root)
	}
	if err != nil {
		return err
	}
	x.setTree(tree)
	return nil
}

// OpenFile opens a file given by a path relative to the project folder.
func (x *Extension) OpenFile(rel string) error {
	tree := x.Tree()
	if tree == nil {
		return fmt.Errorf("no project tree for %s", x.root)
	}
	n := tree.Find(rel)
	if n == nil || n.IsDir {
		return fmt.Errorf("%s: no such file in project", rel)
	}
	return Open(x.caps, n.Path)
}

// Close is part of interface qalam.Closer.
func (x *Extension) Close() error {
	x.mu.Lock()
	w := x.watcher
	x.watcher = nil
	x.mu.Unlock()
	if w != nil {
		return w.Close()
	}
	return nil
}
