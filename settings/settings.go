/*
Package settings reads and writes the JSON settings files of extensions.

Settings are small JSON documents. Keys are addressed by dotted paths, e.g.
"editor.syntax_highlighting.theme" addresses

	{ "editor": { "syntax_highlighting": { "theme": "monokai" } } }

Values are read with gjson and written with sjson, which leaves all other
content of a file untouched. Clients should treat a failing Load as a
recoverable condition: report the error and continue with defaults.
*/
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

func tracer() tracing.Trace {
	return tracing.Select("qalam.settings")
}

// ErrMalformed is returned for settings files which are not valid JSON.
var ErrMalformed = errors.New("malformed settings")

// File is a JSON settings file. The zero value is not usable, use Open.
type File struct {
	mu     sync.Mutex
	path   string
	data   []byte
	broken error // set if the file on disk could not be parsed
}

// Open reads a settings file. If the file does not exist or is malformed,
// a usable empty File is returned together with an error describing the
// problem. Saving creates a missing file, but never overwrites a malformed
// one.
func Open(path string) (*File, error) {
	f := &File{path: path, data: []byte("{}")}
	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("reading settings %s: %w", path, err)
	}
	if len(data) == 0 {
		return f, nil
	}
	if !gjson.ValidBytes(data) {
		f.broken = fmt.Errorf("settings %s: %w", path, ErrMalformed)
		return f, f.broken
	}
	f.data = data
	tracer().Debugf("loaded settings from %s", path)
	return f, nil
}

// Path returns the file path.
func (f *File) Path() string {
	return f.path
}

// Get returns the value at a dotted path.
func (f *File) Get(key string) gjson.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return gjson.GetBytes(f.data, key)
}

// Set changes the value at a dotted path in memory. Call Save to persist it.
func (f *File) Set(key string, value interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := sjson.SetBytes(f.data, key, value)
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	f.data = data
	return nil
}

// Save writes the settings, pretty-printed, to the file. The file is
// replaced atomically. A file which was malformed when opened is left alone,
// and Save returns an error wrapping ErrMalformed.
func (f *File) Save() error {
	f.mu.Lock()
	data, broken := pretty.Pretty(f.data), f.broken
	f.mu.Unlock()
	if broken != nil {
		return fmt.Errorf("not saving: %w", broken)
	}
	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("saving settings: %w", err)
	}
	tracer().Debugf("saved settings to %s", f.path)
	return nil
}

// Bytes returns a copy of the raw JSON.
func (f *File) Bytes() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := make([]byte, len(f.data))
	copy(b, f.data)
	return b
}
