/*
Package theme lets the user pick the syntax highlighting theme of the editor.

The selected theme lives in the editor's shared settings file, at key
"editor.syntax_highlighting.theme". The themes to choose from are listed
under "editor.syntax_highlighting.available_themes"; without such a list,
the built-in themes are offered.
*/
package theme

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/npillmayer/qalam"
	"github.com/npillmayer/qalam/settings"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("qalam.theme")
}

// Default is the theme used when none is selected.
const Default = "default"

// Builtin lists the themes offered if the settings do not list any.
var Builtin = []string{Default, "monokai", "solarized-light", "solarized-dark", "dracula", "nord"}

// ErrUnknownTheme is returned when selecting a theme which is not available.
var ErrUnknownTheme = errors.New("unknown theme")

// Extension is the theme picker.
type Extension struct {
	mu   sync.Mutex
	host qalam.Host
	caps qalam.Capabilities
	lang qalam.UILanguage
	path string
	file *settings.File
}

var _ qalam.Extension = (*Extension)(nil)

// NewExtension creates a theme picker working on the shared settings file at
// settingsPath.
func NewExtension(settingsPath string, lang qalam.UILanguage) *Extension {
	return &Extension{path: settingsPath, lang: lang}
}

// Name is part of interface qalam.Extension.
func (x *Extension) Name() string {
	return "theme"
}

// Attach is part of interface qalam.Extension. Settings which cannot be read
// are reported and the built-in defaults are used.
func (x *Extension) Attach(host qalam.Host, caps qalam.Capabilities) error {
	x.host = host
	x.caps = caps
	f, err := settings.Open(x.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		caps.ShowError(titleLabel.In(x.lang), err)
	}
	x.mu.Lock()
	x.file = f
	x.mu.Unlock()
	tracer().Debugf("current theme is %s", x.Current())
	return nil
}

var (
	selectLabel = qalam.Label{En: "Select theme", Ar: "اختيار السمة"}
	titleLabel  = qalam.Label{En: "Theme", Ar: "السمة"}
)

// MenuItems is part of interface qalam.Extension.
func (x *Extension) MenuItems() []qalam.MenuItem {
	return []qalam.MenuItem{{
		Name: selectLabel.In(x.lang),
		Callback: func() {
			x.caps.ShowError(titleLabel.In(x.lang), x.Choose())
		},
	}}
}

// Current returns the selected theme.
func (x *Extension) Current() string {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.file == nil {
		return Default
	}
	if current, _ := settings.Theme(x.file); current != "" {
		return current
	}
	return Default
}

// Available returns the themes to choose from.
func (x *Extension) Available() []string {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.file != nil {
		if _, available := settings.Theme(x.file); len(available) > 0 {
			return available
		}
	}
	return append([]string(nil), Builtin...)
}

// Select makes theme the current one and saves the settings.
func (x *Extension) Select(theme string) error {
	found := false
	for _, t := range x.Available() {
		if t == theme {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%q: %w", theme, ErrUnknownTheme)
	}
	x.mu.Lock()
	f := x.file
	x.mu.Unlock()
	if f == nil {
		return fmt.Errorf("theme extension not attached")
	}
	if err := settings.SetTheme(f, theme); err != nil {
		return err
	}
	tracer().Infof("theme changed to %s", theme)
	x.caps.Notify(titleLabel.In(x.lang) + ": " + theme)
	return nil
}

// Choose asks the user for a theme. Cancelling keeps the current theme.
func (x *Extension) Choose() error {
	if x.caps.Chooser == nil {
		return errors.New("host cannot show choices")
	}
	current := x.Current()
	theme, ok := x.caps.Chooser.Choose(selectLabel.In(x.lang), x.Available(), current)
	if !ok || theme == current {
		return nil
	}
	return x.Select(theme)
}
