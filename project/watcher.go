package project

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned for operations on a closed watcher.
var ErrWatcherClosed = errors.New("watcher closed")

// DefaultSettle is the time a watcher waits after a change before the tree
// is rebuilt. Changes arriving meanwhile are collected.
const DefaultSettle = 100 * time.Millisecond

// Watcher keeps the tree of a project folder current. After changes have
// settled, the tree is rebuilt and handed to a refresh callback.
type Watcher struct {
	mu        sync.Mutex
	root      string
	fsw       *fsnotify.Watcher
	tree      *Node
	onRefresh func(*Node)
	settle    time.Duration
	closed    bool
	closeCh   chan struct{}
	wg        sync.WaitGroup
}

// Watch builds the tree of root and starts watching it. onRefresh may be nil.
func Watch(root string, onRefresh func(*Node)) (*Watcher, error) {
	return watch(root, onRefresh, DefaultSettle)
}

func watch(root string, onRefresh func(*Node), settle time.Duration) (*Watcher, error) {
	tree, err := Build(root)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		root:      root,
		fsw:       fsw,
		tree:      tree,
		onRefresh: onRefresh,
		settle:    settle,
		closeCh:   make(chan struct{}),
	}
	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}
	w.wg.Add(1)
	go w.loop()
	tracer().Infof("watching project %s", root)
	return w, nil
}

// addRecursive watches a folder and all non-hidden folders below it.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		return w.fsw.Add(p)
	})
}

// Tree returns the current tree.
func (w *Watcher) Tree() *Node {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tree
}

// Refresh rebuilds the tree immediately and calls the refresh callback.
func (w *Watcher) Refresh() (*Node, error) {
	tree, err := Build(w.root)
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil, ErrWatcherClosed
	}
	w.tree = tree
	fn := w.onRefresh
	w.mu.Unlock()
	if fn != nil {
		fn(tree)
	}
	return tree, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	timer := time.NewTimer(w.settle)
	timer.Stop()
	for {
		select {
		case <-w.closeCh:
			timer.Stop()
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if isHidden(filepath.Base(ev.Name)) {
				continue
			}
			if ev.Op.Has(fsnotify.Create) {
				_ = w.addRecursive(ev.Name)
			}
			tracer().Debugf("project change: %s", ev)
			timer.Reset(w.settle)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			tracer().Errorf("watching %s: %v", w.root, err)
		case <-timer.C:
			if _, err := w.Refresh(); err != nil {
				tracer().Errorf("refreshing project tree: %v", err)
			}
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()
	close(w.closeCh)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}
