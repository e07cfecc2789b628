/*
Package autocorrect fixes common misspellings of Arabic words while typing.

A Corrector watches the text of the active editor. Whenever the text
changes, the word under the cursor is looked up in a table of corrections
and, on an exact match, replaced. There is no fuzzy matching.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package autocorrect

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'qalam.autocorrect'
func tracer() tracing.Trace {
	return tracing.Select("qalam.autocorrect")
}
