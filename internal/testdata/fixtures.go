// Package testdata locates test fixtures.
package testdata

import (
	"path/filepath"
	"runtime"
)

// Path returns the path of a fixture file or folder, given relative to this
// package's folder.
func Path(name string) string {
	_, pkgfile, _, ok := runtime.Caller(0)
	if !ok {
		panic("no debug info")
	}
	return filepath.Join(filepath.Dir(pkgfile), filepath.FromSlash(name))
}

// Project returns the path of the sample project folder.
func Project() string {
	return Path("project")
}
