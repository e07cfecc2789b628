package qalam

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// MenuItem is an entry of an extension's menu.
type MenuItem struct {
	Name     string
	Callback func()
}

// ContextMenuItem is an entry of the editor's context menu. Shortcut may be
// empty.
type ContextMenuItem struct {
	Name     string
	Callback func()
	Shortcut string
}

// Shortcut binds a key chord like "Ctrl+Shift+R" to a callback.
type Shortcut struct {
	Shortcut string
	Callback func()
}

// Extension is implemented by every extension module.
//
// Attach is called once, at registration time, with the host and the
// capabilities the host supports. MenuItems is called after Attach.
type Extension interface {
	Name() string
	Attach(host Host, caps Capabilities) error
	MenuItems() []MenuItem
}

// ContextMenuProvider is implemented by extensions contributing to the
// editor's context menu.
type ContextMenuProvider interface {
	ContextMenuItems() []ContextMenuItem
}

// ShortcutProvider is implemented by extensions with keyboard shortcuts.
type ShortcutProvider interface {
	Shortcuts() []Shortcut
}

// EditorListener is implemented by extensions which need to know when the
// active editor changes. ed may be nil.
type EditorListener interface {
	EditorChanged(ed Editor)
}

// Closer is implemented by extensions holding resources.
type Closer interface {
	Close() error
}

// ErrUnknownItem is returned when triggering an item which no extension
// provides.
var ErrUnknownItem = errors.New("unknown menu item or shortcut")

// ErrDuplicateShortcut is returned when registering an extension which uses a
// shortcut that is already taken.
var ErrDuplicateShortcut = errors.New("duplicate shortcut")

// Loader is the host side of the extension contract. It registers extensions,
// collects their items and dispatches activations.
type Loader struct {
	mu         sync.Mutex
	host       Host
	caps       Capabilities
	extensions []Extension
	menu       []MenuItem
	context    []ContextMenuItem
	shortcuts  map[string]func()
}

// NewLoader creates a loader for a host with a fixed set of capabilities.
func NewLoader(host Host, caps Capabilities) *Loader {
	return &Loader{
		host:      host,
		caps:      caps,
		shortcuts: make(map[string]func()),
	}
}

// Register attaches an extension and collects its items. Shortcuts from
// context-menu items are registered as shortcuts as well. A shortcut bound
// twice is an error; in that case nothing of the extension is registered and
// the extension is closed again.
func (l *Loader) Register(ext Extension) error {
	if err := ext.Attach(l.host, l.caps); err != nil {
		return fmt.Errorf("attaching extension %s: %w", ext.Name(), err)
	}
	var items []ContextMenuItem
	var shortcuts []Shortcut
	if cmp, ok := ext.(ContextMenuProvider); ok {
		items = cmp.ContextMenuItems()
		for _, item := range items {
			if item.Shortcut != "" {
				shortcuts = append(shortcuts, Shortcut{Shortcut: item.Shortcut, Callback: item.Callback})
			}
		}
	}
	if sp, ok := ext.(ShortcutProvider); ok {
		shortcuts = append(shortcuts, sp.Shortcuts()...)
	}
	l.mu.Lock()
	err := l.checkShortcuts(shortcuts)
	if err == nil {
		l.extensions = append(l.extensions, ext)
		l.menu = append(l.menu, ext.MenuItems()...)
		l.context = append(l.context, items...)
		for _, sc := range shortcuts {
			l.shortcuts[normalizeShortcut(sc.Shortcut)] = sc.Callback
		}
	}
	l.mu.Unlock()
	if err != nil {
		if c, ok := ext.(Closer); ok {
			if cerr := c.Close(); cerr != nil {
				CT().Errorf("closing extension %s: %v", ext.Name(), cerr)
			}
		}
		return fmt.Errorf("registering extension %s: %w", ext.Name(), err)
	}
	CT().Infof("registered extension %s", ext.Name())
	return nil
}

// checkShortcuts fails if any of shortcuts is bound already or occurs twice.
func (l *Loader) checkShortcuts(shortcuts []Shortcut) error {
	seen := make(map[string]bool, len(shortcuts))
	for _, sc := range shortcuts {
		key := normalizeShortcut(sc.Shortcut)
		if _, exists := l.shortcuts[key]; exists || seen[key] {
			return fmt.Errorf("shortcut %s bound twice: %w", sc.Shortcut, ErrDuplicateShortcut)
		}
		seen[key] = true
	}
	return nil
}

func normalizeShortcut(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", ""))
}

// MenuItems returns the menu items of all registered extensions, in
// registration order.
func (l *Loader) MenuItems() []MenuItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	items := make([]MenuItem, len(l.menu))
	copy(items, l.menu)
	return items
}

// ContextMenuItems returns all context-menu items.
func (l *Loader) ContextMenuItems() []ContextMenuItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	items := make([]ContextMenuItem, len(l.context))
	copy(items, l.context)
	return items
}

// Trigger activates the first menu or context-menu item with the given name.
func (l *Loader) Trigger(name string) error {
	l.mu.Lock()
	var fn func()
	for _, item := range l.menu {
		if item.Name == name {
			fn = item.Callback
			break
		}
	}
	if fn == nil {
		for _, item := range l.context {
			if item.Name == name {
				fn = item.Callback
				break
			}
		}
	}
	l.mu.Unlock()
	if fn == nil {
		return fmt.Errorf("%q: %w", name, ErrUnknownItem)
	}
	fn()
	return nil
}

// TriggerShortcut activates the callback bound to a shortcut.
func (l *Loader) TriggerShortcut(shortcut string) error {
	l.mu.Lock()
	fn, ok := l.shortcuts[normalizeShortcut(shortcut)]
	l.mu.Unlock()
	if !ok {
		return fmt.Errorf("%q: %w", shortcut, ErrUnknownItem)
	}
	fn()
	return nil
}

// SetActiveEditor informs all extensions implementing EditorListener about a
// change of the active editor.
func (l *Loader) SetActiveEditor(ed Editor) {
	l.mu.Lock()
	exts := make([]Extension, len(l.extensions))
	copy(exts, l.extensions)
	l.mu.Unlock()
	for _, ext := range exts {
		if el, ok := ext.(EditorListener); ok {
			el.EditorChanged(ed)
		}
	}
}

// Close closes all extensions implementing Closer and returns the first
// error encountered.
func (l *Loader) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var first error
	for _, ext := range l.extensions {
		if c, ok := ext.(Closer); ok {
			if err := c.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}
