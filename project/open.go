package project

import (
	"errors"
	"fmt"
	"os"

	"github.com/npillmayer/qalam"
)

// ErrCannotOpen is returned if the host can neither open files nor create
// tabs.
var ErrCannotOpen = errors.New("host cannot open files")

// Open opens a file in the host. Hosts able to open files themselves are
// preferred; otherwise the file is read and its content put into a new tab.
func Open(caps qalam.Capabilities, path string) error {
	switch {
	case caps.Opener != nil:
		tracer().Debugf("opening %s with host", path)
		if err := caps.Opener.OpenFile(path); err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		return nil
	case caps.Tabs != nil:
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		tracer().Debugf("opening %s in new tab", path)
		if err := caps.Tabs.CreateNewTab(path, string(data)); err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		return nil
	}
	return fmt.Errorf("opening %s: %w", path, ErrCannotOpen)
}
