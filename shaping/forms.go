package shaping

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/unicode/runenames"
)

type presentationForms [formCount]rune

var (
	presentationOnce   sync.Once
	presentationByBase map[rune]presentationForms
)

func presentationTable() map[rune]presentationForms {
	presentationOnce.Do(func() {
		presentationByBase = buildPresentationFormMap()
		tracer().Debugf("derived presentation forms for %d letters", len(presentationByBase))
	})
	return presentationByBase
}

func buildPresentationFormMap() map[rune]presentationForms {
	forms := make(map[rune]presentationForms, 128)
	addRange := func(from, to rune) {
		for u := from; u <= to; u++ {
			form, ok := presentationFormFromName(u)
			if !ok {
				continue
			}
			base := presentationBaseRune(u)
			if base == 0 {
				continue
			}
			f := forms[base]
			if f[form] == 0 { // first one wins, there are a few duplicates
				f[form] = u
			}
			forms[base] = f
		}
	}
	addRange(0xfb50, 0xfdff) // Arabic Presentation Forms-A
	addRange(0xfe70, 0xfeff) // Arabic Presentation Forms-B
	return forms
}

func presentationFormFromName(u rune) (Form, bool) {
	name := runenames.Name(u)
	if !strings.HasPrefix(name, "ARABIC LETTER ") {
		return FormNone, false
	}
	switch {
	case strings.HasSuffix(name, " ISOLATED FORM"):
		return FormIsolated, true
	case strings.HasSuffix(name, " FINAL FORM"):
		return FormFinal, true
	case strings.HasSuffix(name, " INITIAL FORM"):
		return FormInitial, true
	case strings.HasSuffix(name, " MEDIAL FORM"):
		return FormMedial, true
	}
	return FormNone, false
}

// presentationBaseRune returns the letter a presentation form stands for.
// The NFKC mapping of a single-letter presentation form is exactly one
// Arabic letter; ligatures and spacing forms of diacritics map to more than
// one code-point and are rejected.
func presentationBaseRune(u rune) rune {
	rs := []rune(norm.NFKC.String(string(u)))
	if len(rs) != 1 {
		return 0
	}
	if !unicode.IsLetter(rs[0]) || !unicode.In(rs[0], unicode.Arabic) {
		return 0
	}
	return rs[0]
}

// PresentationForm returns the presentation form code-point of a letter for
// a contextual form. If the letter has no such form, the isolated form is
// tried for initial forms, and the final form for medial ones, as happens
// for right-joining letters. If nothing fits, r itself is returned.
func PresentationForm(r rune, form Form) rune {
	if form == FormNone {
		return r
	}
	byBase := presentationTable()
	forms, ok := byBase[r]
	if !ok {
		return r
	}
	if p := forms[form]; p != 0 {
		return p
	}
	switch form {
	case FormInitial:
		form = FormIsolated
	case FormMedial:
		form = FormFinal
	}
	if p := forms[form]; p != 0 {
		return p
	}
	return r
}

// lam-alef ligatures: alef variant → isolated and final ligature form
var lamAlef = map[rune][2]rune{
	'\u0622': {'\uFEF5', '\uFEF6'}, // alef with madda above
	'\u0623': {'\uFEF7', '\uFEF8'}, // alef with hamza above
	'\u0625': {'\uFEF9', '\uFEFA'}, // alef with hamza below
	'\u0627': {'\uFEFB', '\uFEFC'}, // alef
}

const lam = '\u0644'
