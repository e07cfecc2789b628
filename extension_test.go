package qalam_test

import (
	"errors"
	"testing"

	"github.com/npillmayer/qalam"
	"github.com/npillmayer/qalam/internal/memhost"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	attached bool
	caps     qalam.Capabilities
	fired    []string
	editors  int
}

func (p *recorder) Name() string { return "recorder" }

func (p *recorder) Attach(host qalam.Host, caps qalam.Capabilities) error {
	p.attached = true
	p.caps = caps
	return nil
}

func (p *recorder) MenuItems() []qalam.MenuItem {
	return []qalam.MenuItem{{Name: "Recorder", Callback: func() { p.fired = append(p.fired, "menu") }}}
}

func (p *recorder) ContextMenuItems() []qalam.ContextMenuItem {
	return []qalam.ContextMenuItem{{
		Name:     "Recorder context",
		Callback: func() { p.fired = append(p.fired, "context") },
		Shortcut: "Ctrl+Shift+P",
	}}
}

func (p *recorder) Shortcuts() []qalam.Shortcut {
	return []qalam.Shortcut{{Shortcut: "F9", Callback: func() { p.fired = append(p.fired, "f9") }}}
}

func (p *recorder) EditorChanged(ed qalam.Editor) { p.editors++ }

type failing struct{ recorder }

// clash binds the same shortcut as recorder, as a plain shortcut, and counts
// how often it was closed.
type clash struct {
	closed int
}

func (c *clash) Name() string { return "clash" }
func (c *clash) Attach(qalam.Host, qalam.Capabilities) error { return nil }

func (c *clash) Close() error {
	c.closed++
	return nil
}

func (c *clash) MenuItems() []qalam.MenuItem {
	return []qalam.MenuItem{{Name: "Clash", Callback: func() {}}}
}

func (c *clash) Shortcuts() []qalam.Shortcut {
	return []qalam.Shortcut{
		{Shortcut: "Alt+C", Callback: func() {}},
		{Shortcut: "ctrl+shift+p", Callback: func() {}},
	}
}

func (f *failing) Attach(qalam.Host, qalam.Capabilities) error { return errors.New("no way") }

func TestLoaderCollectsAndTriggers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.core")
	defer teardown()
	//
	host := memhost.New()
	loader := qalam.NewLoader(host, host.Capabilities())
	p := &recorder{}
	require.NoError(t, loader.Register(p))
	assert.True(t, p.attached)
	assert.NotNil(t, p.caps.Dialogs)
	assert.Len(t, loader.MenuItems(), 1)
	assert.Len(t, loader.ContextMenuItems(), 1)
	//
	require.NoError(t, loader.Trigger("Recorder"))
	require.NoError(t, loader.Trigger("Recorder context"))
	require.NoError(t, loader.TriggerShortcut("ctrl+shift+p"))
	require.NoError(t, loader.TriggerShortcut("F9"))
	assert.Equal(t, []string{"menu", "context", "context", "f9"}, p.fired)
	//
	err := loader.Trigger("nothing")
	assert.True(t, errors.Is(err, qalam.ErrUnknownItem))
}

func TestLoaderPropagatesEditorChanges(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.core")
	defer teardown()
	//
	host := memhost.New()
	loader := qalam.NewLoader(host, host.Capabilities())
	host.OnSwitch(loader.SetActiveEditor)
	p := &recorder{}
	require.NoError(t, loader.Register(p))
	host.Open(memhost.NewDocument("a.txt", "a"))
	host.Open(memhost.NewDocument("b.txt", "b"))
	assert.Equal(t, 2, p.editors)
}

func TestLoaderRejectsDuplicateShortcut(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.core")
	defer teardown()
	//
	host := memhost.New()
	loader := qalam.NewLoader(host, qalam.Capabilities{})
	require.NoError(t, loader.Register(&recorder{}))
	assert.Error(t, loader.Register(&recorder{}))
	assert.Error(t, loader.Register(&failing{}))
}

func TestLoaderRollsBackFailedRegistration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.core")
	defer teardown()
	//
	host := memhost.New()
	loader := qalam.NewLoader(host, qalam.Capabilities{})
	require.NoError(t, loader.Register(&recorder{}))
	c := &clash{}
	err := loader.Register(c)
	assert.True(t, errors.Is(err, qalam.ErrDuplicateShortcut))
	assert.Equal(t, 1, c.closed)
	// nothing of the rejected extension is left behind
	assert.Len(t, loader.MenuItems(), 1)
	assert.True(t, errors.Is(loader.Trigger("Clash"), qalam.ErrUnknownItem))
	assert.True(t, errors.Is(loader.TriggerShortcut("Alt+C"), qalam.ErrUnknownItem))
	require.NoError(t, loader.Close())
	assert.Equal(t, 1, c.closed)
}
