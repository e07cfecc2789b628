/*
Package memhost is an in-memory editor host. It implements the host contract
of package qalam without any user interface and is used by tests and by the
interactive shell.
*/
package memhost

import (
	"sync"
	"unicode"

	"github.com/google/uuid"
	"github.com/npillmayer/qalam"
	"github.com/rivo/uniseg"
)

// Document is an editor tab. It implements both qalam.Editor and
// qalam.Cursor; every document has exactly one cursor.
//
// Handlers are called synchronously after each modification, outside of the
// document's lock, in subscription order.
type Document struct {
	mu       sync.Mutex
	path     string
	text     []rune
	pos      int
	anchor   int // selection anchor; == pos if nothing is selected
	handlers []handler
}

type handler struct {
	id HandlerID
	fn func()
}

// HandlerID is an alias for brevity.
type HandlerID = qalam.HandlerID

var _ qalam.Editor = (*Document)(nil)
var _ qalam.Cursor = (*Document)(nil)

// NewDocument creates a document with initial content. The cursor is placed
// at the end of the content.
func NewDocument(path string, content string) *Document {
	doc := &Document{path: path, text: []rune(content)}
	doc.pos = len(doc.text)
	doc.anchor = doc.pos
	return doc
}

// Path returns the file path of the document; it may be empty.
func (doc *Document) Path() string {
	return doc.path
}

// --- qalam.Editor ----------------------------------------------------------

// Cursor returns the document itself.
func (doc *Document) Cursor() qalam.Cursor {
	return doc
}

// Text returns the complete text.
func (doc *Document) Text() string {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	return string(doc.text)
}

// Len returns the length of the text in runes.
func (doc *Document) Len() int {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	return len(doc.text)
}

// OnTextChanged registers a handler and returns its ID.
func (doc *Document) OnTextChanged(fn func()) HandlerID {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	id := HandlerID(uuid.NewString())
	doc.handlers = append(doc.handlers, handler{id: id, fn: fn})
	return id
}

// Off removes a handler.
func (doc *Document) Off(id HandlerID) {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	for i, h := range doc.handlers {
		if h.id == id {
			doc.handlers = append(doc.handlers[:i], doc.handlers[i+1:]...)
			return
		}
	}
}

// HandlerCount returns the number of subscribed handlers.
func (doc *Document) HandlerCount() int {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	return len(doc.handlers)
}

func (doc *Document) notify() {
	doc.mu.Lock()
	hs := make([]handler, len(doc.handlers))
	copy(hs, doc.handlers)
	doc.mu.Unlock()
	for _, h := range hs {
		h.fn()
	}
}

// --- qalam.Cursor ----------------------------------------------------------

// Position returns the cursor position.
func (doc *Document) Position() int {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	return doc.pos
}

// SetPosition moves the cursor and clears the selection. pos is clamped to the
// document bounds.
func (doc *Document) SetPosition(pos int) {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	doc.pos = doc.clamp(pos)
	doc.anchor = doc.pos
}

// Selection returns the selected interval, start <= end.
func (doc *Document) Selection() (int, int) {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	return doc.selection()
}

func (doc *Document) selection() (int, int) {
	if doc.anchor <= doc.pos {
		return doc.anchor, doc.pos
	}
	return doc.pos, doc.anchor
}

// HasSelection is true if a non-empty interval is selected.
func (doc *Document) HasSelection() bool {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	return doc.anchor != doc.pos
}

// Select selects [start, end) and moves the cursor to end.
func (doc *Document) Select(start, end int) {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	doc.anchor = doc.clamp(start)
	doc.pos = doc.clamp(end)
}

// ClearSelection keeps the cursor where it is.
func (doc *Document) ClearSelection() {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	doc.anchor = doc.pos
}

// SelectedText returns the selected text.
func (doc *Document) SelectedText() string {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	from, to := doc.selection()
	return string(doc.text[from:to])
}

// InsertText replaces the selection by text and places the cursor after it.
// Handlers are notified afterwards.
func (doc *Document) InsertText(text string) {
	doc.mu.Lock()
	from, to := doc.selection()
	ins := []rune(text)
	t := make([]rune, 0, len(doc.text)-(to-from)+len(ins))
	t = append(t, doc.text[:from]...)
	t = append(t, ins...)
	t = append(t, doc.text[to:]...)
	doc.text = t
	doc.pos = from + len(ins)
	doc.anchor = doc.pos
	doc.mu.Unlock()
	doc.notify()
}

// Type inserts text at the cursor one rune at a time, notifying handlers after
// each rune, as a user typing would.
func (doc *Document) Type(text string) {
	for _, r := range text {
		doc.InsertText(string(r))
	}
}

// SelectWordUnderCursor selects the word the cursor is in or directly behind.
// Word boundaries follow UAX#29 as implemented by uniseg. If there is no such
// word the selection is cleared.
func (doc *Document) SelectWordUnderCursor() {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	doc.anchor = doc.pos
	start := 0
	state := -1
	rest := string(doc.text)
	var word string
	for len(rest) > 0 {
		word, rest, state = uniseg.FirstWordInString(rest, state)
		end := start + len([]rune(word))
		if start <= doc.pos && doc.pos <= end && isWord(word) {
			doc.anchor = start
			doc.pos = end
			return
		}
		if start > doc.pos {
			return
		}
		start = end
	}
}

func isWord(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func (doc *Document) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(doc.text) {
		return len(doc.text)
	}
	return pos
}
