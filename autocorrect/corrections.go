package autocorrect

// corrections maps common misspellings to their correct form. No correction
// is itself a key of the table.
var corrections = map[string]string{
	"الذى":    "الذي",
	"التى":    "التي",
	"هاذا":    "هذا",
	"هاذه":    "هذه",
	"لاكن":    "لكن",
	"ذالك":    "ذلك",
	"مسئول":   "مسؤول",
	"شيئ":     "شيء",
	"الى":     "إلى",
	"اذا":     "إذا",
	"هاؤلاء":  "هؤلاء",
	"الرحمان": "الرحمن",
	"إستخدام": "استخدام",
	"إختيار":  "اختيار",
	"إستعمال": "استعمال",
}

// Lookup returns the correction for word, if there is one. Only exact matches
// count.
func Lookup(word string) (string, bool) {
	c, ok := corrections[word]
	return c, ok
}

// Len returns the number of known corrections.
func Len() int {
	return len(corrections)
}
