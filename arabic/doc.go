/*
Package arabic classifies code-points of the Arabic script blocks and handles
Arabic diacritics (tashkeel).

Arabic Blocks

Unicode places Arabic letters and their presentation forms in five blocks:

   U+0600–U+06FF   Arabic
   U+0750–U+077F   Arabic Supplement
   U+08A0–U+08FF   Arabic Extended-A
   U+FB50–U+FDFF   Arabic Presentation Forms-A
   U+FE70–U+FEFF   Arabic Presentation Forms-B

A code-point is said to be "Arabic" in this package if it falls into one of
these blocks, regardless of its general category. This includes Arabic-Indic
digits and Arabic punctuation.

Tashkeel

Diacritics are combining marks placed above or below letters. The package
offers a small palette of the most common marks for insertion, and strips
diacritics from text by means of golang.org/x/text transformers.
*/
package arabic

import (
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("qalam.arabic")
}
