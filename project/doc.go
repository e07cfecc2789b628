/*
Package project shows the folder tree of a project and opens its files in
the editor.

The tree is kept current by a file system watcher (fsnotify). Entries with
names starting with a dot are not part of the tree.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package project

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'qalam.project'
func tracer() tracing.Trace {
	return tracing.Select("qalam.project")
}
