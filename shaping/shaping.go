package shaping

import (
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/unicode/runenames"
)

// Reshape replaces the letters of s by their contextual presentation forms.
// Code-points which are not Arabic letters are copied unchanged, as are
// letters without presentation forms. s is expected to be in logical order.
func Reshape(s string) string {
	rs := []rune(s)
	if len(rs) == 0 {
		return s
	}
	forms := ResolveForms(rs)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if r == lam && i+1 < len(rs) {
			if lig, ok := lamAlef[rs[i+1]]; ok {
				if forms[i] == FormMedial || forms[i] == FormFinal {
					b.WriteRune(lig[1])
				} else {
					b.WriteRune(lig[0])
				}
				i++
				continue
			}
		}
		b.WriteRune(PresentationForm(r, forms[i]))
	}
	return b.String()
}

// IsPresentationForm returns true if r is an Arabic letter or ligature from
// one of the presentation form blocks.
func IsPresentationForm(r rune) bool {
	if !(r >= 0xfb50 && r <= 0xfdff) && !(r >= 0xfe70 && r <= 0xfeff) {
		return false
	}
	name := runenames.Name(r)
	return strings.HasPrefix(name, "ARABIC LETTER ") || strings.HasPrefix(name, "ARABIC LIGATURE ")
}

// Unshape is the inverse of Reshape: presentation forms are replaced by their
// compatibility decomposition, i.e. by the letters they stand for.
func Unshape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if IsPresentationForm(r) {
			b.WriteString(norm.NFKC.String(string(r)))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
