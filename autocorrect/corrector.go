package autocorrect

import (
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/npillmayer/qalam"
)

// Corrector replaces misspelled words as they are typed. It is subscribed to
// at most one editor at a time.
type Corrector struct {
	mu      sync.Mutex
	enabled bool
	editor  qalam.Editor    // editor to watch, may be nil
	handler qalam.HandlerID // non-empty while subscribed
	busy    atomic.Bool     // set while we change the text ourselves
	count   int
}

// NewCorrector creates a disabled corrector.
func NewCorrector() *Corrector {
	return &Corrector{}
}

// Enabled reports whether the corrector is active.
func (c *Corrector) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Corrections returns the number of corrections made so far.
func (c *Corrector) Corrections() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// SetEnabled switches the corrector on or off. Switching it off removes the
// subscription to the current editor.
func (c *Corrector) SetEnabled(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = on
	c.resubscribe()
	tracer().Infof("auto-correction enabled: %v", on)
}

// Toggle flips the enabled state and returns the new state.
func (c *Corrector) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = !c.enabled
	c.resubscribe()
	tracer().Infof("auto-correction enabled: %v", c.enabled)
	return c.enabled
}

// EditorChanged moves the subscription to a new active editor. ed may be nil.
func (c *Corrector) EditorChanged(ed qalam.Editor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editor != nil && c.editor == ed && c.handler != "" {
		return
	}
	c.unsubscribe()
	c.editor = ed
	c.resubscribe()
}

// resubscribe ensures a single subscription if enabled, and none otherwise.
// Callers hold c.mu.
func (c *Corrector) resubscribe() {
	if !c.enabled || c.editor == nil {
		c.unsubscribe()
		return
	}
	if c.handler != "" {
		return
	}
	ed := c.editor
	c.handler = ed.OnTextChanged(func() { c.textChanged(ed) })
	tracer().Debugf("subscribed to editor, handler %s", c.handler)
}

func (c *Corrector) unsubscribe() {
	if c.handler == "" {
		return
	}
	if c.editor != nil {
		c.editor.Off(c.handler)
	}
	tracer().Debugf("unsubscribed handler %s", c.handler)
	c.handler = ""
}

func (c *Corrector) textChanged(ed qalam.Editor) {
	if c.busy.Load() || !c.Enabled() {
		return
	}
	c.busy.Store(true)
	defer c.busy.Store(false)
	if c.correct(ed) {
		c.mu.Lock()
		c.count++
		c.mu.Unlock()
	}
}

// correct replaces the word under the cursor of ed if it has a correction.
func (c *Corrector) correct(ed qalam.Editor) bool {
	cur := ed.Cursor()
	pos := cur.Position()
	if pos == 0 {
		return false
	}
	cur.SelectWordUnderCursor()
	if !cur.HasSelection() {
		cur.SetPosition(pos)
		return false
	}
	word := cur.SelectedText()
	fix, ok := Lookup(word)
	if !ok {
		cur.ClearSelection()
		cur.SetPosition(pos)
		return false
	}
	cur.InsertText(fix)
	delta := utf8.RuneCountInString(fix) - utf8.RuneCountInString(word)
	cur.SetPosition(clamp(pos+delta, 0, ed.Len()))
	tracer().Debugf("corrected %q to %q", word, fix)
	return true
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
