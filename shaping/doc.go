/*
Package shaping reshapes Arabic text into contextual letter forms.

Arabic letters take one of up to four forms, depending on whether they join
to the letter before and/or after them: isolated, initial, medial and final.
Fonts usually select the correct form themselves (OpenType features isol,
init, medi, fina), but terminals, some widget toolkits and many PDF tools do
not. For these, text has to be converted to the code-points of the Arabic
Presentation Forms blocks before display.

▪︎ Joining types are derived from the general category of a code-point plus
a table of right-joining letters (ArabicShaping.txt, joining types R and D).

▪︎ The mapping from base letters to presentation forms is not tabulated by
hand. It is derived once from Unicode character names and the NFKC
decomposition of the presentation form code-points
(golang.org/x/text/unicode/runenames and golang.org/x/text/unicode/norm).

▪︎ Lam followed by one of the alef variants is replaced by a mandatory
lam-alef ligature.

Reshaping works on logical order. Re-ordering for display is the business of
package direction.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package shaping

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'qalam.shaping'
func tracer() tracing.Trace {
	return tracing.Select("qalam.shaping")
}
