package memhost

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/npillmayer/qalam"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("qalam.core")
}

// Message is a recorded dialog or status bar message.
type Message struct {
	Title string
	Text  string
}

// Host holds a list of documents, one of them active. It implements
// qalam.Host and all optional capabilities. Dialog and status messages are
// recorded for inspection.
//
// Posted UI functions are queued and run by RunPending, which plays the role
// of the host's event loop.
type Host struct {
	mu       sync.Mutex
	docs     []*Document
	active   int
	Errors   []Message
	Infos    []Message
	Status   []string
	Answers  []string // scripted answers for Choose, consumed front to back
	Choices  []Message
	ui       chan func()
	onSwitch func(qalam.Editor)
}

var _ qalam.Host = (*Host)(nil)
var _ qalam.TabCreator = (*Host)(nil)
var _ qalam.FileOpener = (*Host)(nil)
var _ qalam.StatusBar = (*Host)(nil)
var _ qalam.Dialogs = (*Host)(nil)
var _ qalam.Chooser = (*Host)(nil)
var _ qalam.UIThread = (*Host)(nil)

// New creates a host without documents.
func New() *Host {
	return &Host{active: -1, ui: make(chan func(), 256)}
}

// Capabilities returns the full set of capabilities of h.
func (h *Host) Capabilities() qalam.Capabilities {
	return qalam.Capabilities{
		Tabs:    h,
		Opener:  h,
		Status:  h,
		Dialogs: h,
		Chooser: h,
		UI:      h,
	}
}

// OnSwitch installs a function called whenever the active document changes,
// typically qalam.Loader.SetActiveEditor.
func (h *Host) OnSwitch(fn func(qalam.Editor)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onSwitch = fn
}

// CurrentEditor returns the active document or nil.
func (h *Host) CurrentEditor() qalam.Editor {
	doc := h.Active()
	if doc == nil {
		return nil
	}
	return doc
}

// Active returns the active document or nil.
func (h *Host) Active() *Document {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active < 0 || h.active >= len(h.docs) {
		return nil
	}
	return h.docs[h.active]
}

// Documents returns all open documents.
func (h *Host) Documents() []*Document {
	h.mu.Lock()
	defer h.mu.Unlock()
	docs := make([]*Document, len(h.docs))
	copy(docs, h.docs)
	return docs
}

// Open adds a document and makes it the active one.
func (h *Host) Open(doc *Document) {
	h.mu.Lock()
	h.docs = append(h.docs, doc)
	inx := len(h.docs) - 1
	h.mu.Unlock()
	_ = h.Activate(inx)
}

// Activate switches the active document.
func (h *Host) Activate(inx int) error {
	h.mu.Lock()
	if inx < 0 || inx >= len(h.docs) {
		h.mu.Unlock()
		return fmt.Errorf("no document #%d", inx)
	}
	h.active = inx
	doc := h.docs[inx]
	fn := h.onSwitch
	h.mu.Unlock()
	if fn != nil {
		fn(doc)
	}
	return nil
}

// CreateNewTab opens a new document.
func (h *Host) CreateNewTab(path string, content string) error {
	h.Open(NewDocument(path, content))
	return nil
}

// OpenFile reads a file into a new document.
func (h *Host) OpenFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return h.CreateNewTab(path, string(data))
}

// ShowMessage records a status message.
func (h *Host) ShowMessage(text string, timeout time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	tracer().Debugf("status: %s (%v)", text, timeout)
	h.Status = append(h.Status, text)
}

// ShowError records an error dialog.
func (h *Host) ShowError(title string, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Errors = append(h.Errors, Message{Title: title, Text: message})
}

// ShowInfo records an info dialog.
func (h *Host) ShowInfo(title string, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Infos = append(h.Infos, Message{Title: title, Text: message})
}

// Choose answers with the next scripted answer. Without answers left, the
// choice is cancelled.
func (h *Host) Choose(title string, options []string, current string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Choices = append(h.Choices, Message{Title: title, Text: current})
	if len(h.Answers) == 0 {
		return "", false
	}
	a := h.Answers[0]
	h.Answers = h.Answers[1:]
	return a, true
}

// Post queues fn for the UI loop.
func (h *Host) Post(fn func()) {
	h.ui <- fn
}

// RunPending runs all queued UI functions and returns how many ran.
func (h *Host) RunPending() int {
	n := 0
	for {
		select {
		case fn := <-h.ui:
			fn()
			n++
		default:
			return n
		}
	}
}

// RunNext waits up to timeout for a queued UI function and runs it.
func (h *Host) RunNext(timeout time.Duration) bool {
	select {
	case fn := <-h.ui:
		fn()
		return true
	case <-time.After(timeout):
		return false
	}
}

// LastError returns the most recent error dialog, if any.
func (h *Host) LastError() (Message, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.Errors) == 0 {
		return Message{}, false
	}
	return h.Errors[len(h.Errors)-1], true
}

// Drain returns and clears all recorded dialog and status messages.
func (h *Host) Drain() (errs []Message, infos []Message, status []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	errs, infos, status = h.Errors, h.Infos, h.Status
	h.Errors, h.Infos, h.Status = nil, nil, nil
	return
}

// Answer queues an answer for the next Choose.
func (h *Host) Answer(a string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Answers = append(h.Answers, a)
}
