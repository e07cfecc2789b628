/*
Package backup manages numbered backup folders of a project.

Backups live in a backup root folder, each in a sub-folder named

	<n>-<YYYY_MM_DD_HH_MM>

where n is a running number, starting at 1, and the timestamp is the time
of creation with minute precision. Folders not matching this pattern are
ignored. Every backup carries a manifest file with the BLAKE3 checksums of
its files, which allows checking a backup before it is restored.

Backups may be exported as tar.xz archives.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package backup

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'qalam.backup'
func tracer() tracing.Trace {
	return tracing.Select("qalam.backup")
}
