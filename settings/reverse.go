package settings

import (
	"fmt"

	"github.com/npillmayer/qalam"
)

// Direction values as stored in settings files.
const (
	RightToLeft = "right_to_left"
	LeftToRight = "left_to_right"
)

// Reverse holds the settings of the directional reverser.
type Reverse struct {
	Direction    string `json:"direction"`
	MaxWorkers   int    `json:"max_workers"`
	DiscardStale bool   `json:"discard_stale"`
}

// DefaultReverse returns the built-in defaults.
func DefaultReverse() Reverse {
	return Reverse{
		Direction:  RightToLeft,
		MaxWorkers: qalam.DefaultWorkers,
	}
}

// LoadReverse reads reverser settings from a file. Missing keys take their
// default value. On error, the defaults are returned together with the error;
// invalid single values are replaced by their defaults and reported.
func LoadReverse(path string) (Reverse, *File, error) {
	r := DefaultReverse()
	f, err := Open(path)
	if err != nil {
		return r, f, err
	}
	if v := f.Get("direction"); v.Exists() {
		switch v.String() {
		case RightToLeft, LeftToRight:
			r.Direction = v.String()
		default:
			err = fmt.Errorf("settings %s: invalid direction %q: %w", path, v.String(), ErrMalformed)
		}
	}
	if v := f.Get("max_workers"); v.Exists() {
		n := int(v.Int())
		if n < qalam.MinWorkers || n > qalam.MaxWorkers {
			err = fmt.Errorf("settings %s: max_workers %d out of range [%d, %d]: %w",
				path, n, qalam.MinWorkers, qalam.MaxWorkers, ErrMalformed)
		} else {
			r.MaxWorkers = n
		}
	}
	if v := f.Get("discard_stale"); v.Exists() {
		r.DiscardStale = v.Bool()
	}
	return r, f, err
}

// Store writes reverser settings into f and saves it.
func (r Reverse) Store(f *File) error {
	if err := f.Set("direction", r.Direction); err != nil {
		return err
	}
	if err := f.Set("max_workers", qalam.ClampWorkers(r.MaxWorkers)); err != nil {
		return err
	}
	if err := f.Set("discard_stale", r.DiscardStale); err != nil {
		return err
	}
	return f.Save()
}
