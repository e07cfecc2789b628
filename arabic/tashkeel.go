package arabic

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Mark is an Arabic diacritic.
type Mark struct {
	Name   string // English name
	Arabic string // Arabic name
	Rune   rune
}

// The marks of the diacritics palette.
var (
	Fatha    = Mark{"Fatha", "فتحة", '\u064E'}
	Damma    = Mark{"Damma", "ضمة", '\u064F'}
	Kasra    = Mark{"Kasra", "كسرة", '\u0650'}
	Sukun    = Mark{"Sukun", "سكون", '\u0652'}
	Shadda   = Mark{"Shadda", "شدة", '\u0651'}
	Fathatan = Mark{"Fathatan", "تنوين فتح", '\u064B'}
	Dammatan = Mark{"Dammatan", "تنوين ضم", '\u064C'}
	Kasratan = Mark{"Kasratan", "تنوين كسر", '\u064D'}
)

// Palette lists the marks offered for manual insertion, in menu order.
var Palette = []Mark{Fatha, Damma, Kasra, Sukun, Shadda, Fathatan, Dammatan, Kasratan}

// Tashkeel is the range table of diacritics removed by StripTashkeel
// (FATHATAN through SUKUN).
var Tashkeel = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x064b, Hi: 0x0652, Stride: 1},
	},
}

// IsTashkeel returns true if r is a diacritic removed by StripTashkeel.
func IsTashkeel(r rune) bool {
	return unicode.Is(Tashkeel, r)
}

// Insert splices a mark into text at rune index inx. inx is clamped to
// [0, len(text)].
func Insert(text string, inx int, mark Mark) string {
	rs := []rune(text)
	if inx < 0 {
		inx = 0
	} else if inx > len(rs) {
		inx = len(rs)
	}
	out := make([]rune, 0, len(rs)+1)
	out = append(out, rs[:inx]...)
	out = append(out, mark.Rune)
	out = append(out, rs[inx:]...)
	return string(out)
}

// stripper creates a new transformer for removing diacritics. Text is not
// normalized: code-points other than tashkeel pass through unchanged, and
// letters like U+0623 ALEF WITH HAMZA ABOVE stay precomposed.
func stripper() transform.Transformer {
	return runes.Remove(runes.In(Tashkeel))
}

// StripTashkeel removes all diacritics from text.
func StripTashkeel(text string) (string, error) {
	out, _, err := transform.String(stripper(), text)
	if err != nil {
		tracer().Errorf("stripping tashkeel: %v", err)
		return text, err
	}
	return out, nil
}
