/*
Package direction prepares mixed Arabic and Latin text for display on devices
without support for bidirectional text.

Text is processed line by line. On every line, maximal runs of Arabic
code-points (see package arabic) are located; a run may contain blanks
between Arabic code-points, but never starts or ends with one. Everything
outside of Arabic runs is left untouched. Each run is reshaped into
contextual letter forms (package shaping) and then re-ordered for visual
display with the help of golang.org/x/text/unicode/bidi.

With direction LeftToRight, the words of a run are reversed before shaping,
resulting in a run which reads correctly when the surrounding text flows
left to right.

The Extension type wraps the reverser as an editor extension. As reshaping
large selections may take a while, work is done on a bounded pool of
background workers and the result is applied on the host's UI thread.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package direction

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'qalam.direction'
func tracer() tracing.Trace {
	return tracing.Select("qalam.direction")
}
