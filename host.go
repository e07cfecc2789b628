package qalam

import (
	"errors"
	"time"
)

// ErrNoEditor is returned by extension operations which need an active editor
// while the host has none.
var ErrNoEditor = errors.New("no active editor")

// HandlerID identifies a text-changed handler registered with an Editor.
// IDs are issued by the editor and are opaque to extensions.
type HandlerID string

// Cursor is the text cursor of an editor. Positions are rune offsets into the
// document; a selection is the half-open interval [start, end).
//
// InsertText replaces the current selection (if any) and leaves the cursor
// after the inserted text.
type Cursor interface {
	Position() int
	SetPosition(pos int)
	Selection() (start, end int)
	HasSelection() bool
	Select(start, end int)
	ClearSelection()
	SelectedText() string
	InsertText(text string)
	SelectWordUnderCursor() // selects the word touching the cursor position, if any
}

// Editor is a single document opened by the host.
type Editor interface {
	Cursor() Cursor
	Text() string
	Len() int // length in runes
	// OnTextChanged subscribes a handler to text changes of the document.
	OnTextChanged(handler func()) HandlerID
	// Off removes a handler. Removing an unknown handler is a no-op.
	Off(id HandlerID)
}

// Host is the editor application. CurrentEditor returns nil if no document is
// open.
type Host interface {
	CurrentEditor() Editor
}

// --- Optional capabilities -------------------------------------------------

// TabCreator is implemented by hosts which can open a new tab with content.
type TabCreator interface {
	CreateNewTab(path string, content string) error
}

// FileOpener is implemented by hosts which can open a file from disk.
type FileOpener interface {
	OpenFile(path string) error
}

// StatusBar shows transient messages.
type StatusBar interface {
	ShowMessage(text string, timeout time.Duration)
}

// Dialogs shows blocking modal messages.
type Dialogs interface {
	ShowError(title string, message string)
	ShowInfo(title string, message string)
}

// Chooser lets the user pick one of a list of options.
// It returns false if the user cancelled.
type Chooser interface {
	Choose(title string, options []string, current string) (string, bool)
}

// UIThread is the host's event loop. Post schedules fn to run on it;
// it must not block.
type UIThread interface {
	Post(fn func())
}

// Capabilities is the set of optional capabilities a host declares when
// registering an extension. Nil members are not supported by the host.
type Capabilities struct {
	Tabs    TabCreator
	Opener  FileOpener
	Status  StatusBar
	Dialogs Dialogs
	Chooser Chooser
	UI      UIThread
}

// ShowError reports an error through the Dialogs capability, if present.
// Errors are always traced.
func (caps Capabilities) ShowError(title string, err error) {
	if err == nil {
		return
	}
	CT().Errorf("%s: %v", title, err)
	if caps.Dialogs != nil {
		caps.Dialogs.ShowError(title, err.Error())
	}
}

// Notify shows a message in the status bar, if present.
func (caps Capabilities) Notify(text string) {
	CT().Infof(text)
	if caps.Status != nil {
		caps.Status.ShowMessage(text, 3*time.Second)
	}
}

// RunOnUI runs fn on the UI thread, if the host provided one, or else
// synchronously.
func (caps Capabilities) RunOnUI(fn func()) {
	if caps.UI != nil {
		caps.UI.Post(fn)
		return
	}
	fn()
}
