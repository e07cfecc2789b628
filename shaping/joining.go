package shaping

import "unicode"

// Form is a contextual letter form.
type Form int8

// Letter forms. FormNone is assigned to code-points which do not join.
const (
	FormNone Form = iota - 1
	FormIsolated
	FormFinal
	FormInitial
	FormMedial
	formCount
)

func (f Form) String() string {
	switch f {
	case FormIsolated:
		return "isol"
	case FormFinal:
		return "fina"
	case FormInitial:
		return "init"
	case FormMedial:
		return "medi"
	}
	return "none"
}

// JoiningType is a joining type as defined in ArabicShaping.txt.
type JoiningType uint8

// Joining types. Left-joining (L) does not occur in Arabic script and is
// treated as U.
const (
	JoinU JoiningType = iota // non-joining
	JoinR                    // right-joining: joins to the preceding letter only
	JoinD                    // dual-joining
	JoinT                    // transparent, e.g. diacritics
	JoinC                    // join-causing: ZWJ, tatweel
)

// ClassifyJoining returns the joining type of a code-point.
func ClassifyJoining(r rune) JoiningType {
	switch {
	case r == 0, r == '\u200C': // ZWNJ explicitly breaks joining
		return JoinU
	case r == '\u200D', r == '\u0640': // ZWJ, tatweel
		return JoinC
	case unicode.Is(unicode.Mn, r), unicode.Is(unicode.Me, r), r == '\u200B':
		return JoinT
	}
	if _, ok := rightJoining[r]; ok {
		return JoinR
	}
	if _, ok := nonJoining[r]; ok {
		return JoinU
	}
	if unicode.IsLetter(r) && unicode.In(r, unicode.Arabic) {
		return JoinD
	}
	return JoinU
}

var rightJoining = map[rune]struct{}{
	'\u0622': {}, '\u0623': {}, '\u0624': {}, '\u0625': {}, '\u0627': {}, '\u0629': {},
	'\u062F': {}, '\u0630': {}, '\u0631': {}, '\u0632': {}, '\u0648': {}, '\u0671': {},
	'\u0672': {}, '\u0673': {}, '\u0675': {}, '\u0676': {}, '\u0677': {}, '\u0688': {},
	'\u0689': {}, '\u068A': {}, '\u068B': {}, '\u068C': {}, '\u068D': {}, '\u068E': {},
	'\u068F': {}, '\u0690': {}, '\u0691': {}, '\u0692': {}, '\u0693': {}, '\u0694': {},
	'\u0695': {}, '\u0696': {}, '\u0697': {}, '\u0698': {}, '\u0699': {}, '\u06C0': {},
	'\u06C3': {}, '\u06C4': {}, '\u06C5': {}, '\u06C6': {}, '\u06C7': {}, '\u06C8': {},
	'\u06C9': {}, '\u06CA': {}, '\u06CB': {}, '\u06CD': {}, '\u06CF': {}, '\u06D2': {},
	'\u06D3': {}, '\u06D5': {}, '\u06EE': {}, '\u06EF': {}, '\u0759': {}, '\u075A': {},
	'\u075B': {}, '\u076B': {}, '\u076C': {}, '\u0771': {}, '\u0773': {}, '\u0774': {},
	'\u0778': {}, '\u0779': {},
}

// Letters of the Arabic block which never join.
var nonJoining = map[rune]struct{}{
	'\u0621': {}, // hamza
	'\u0674': {}, // high hamza
}

// ResolveForms assigns a contextual form to each code-point of a run of text
// in logical order. Transparent code-points are skipped when looking for
// neighbours and get FormNone, as do non-joining code-points.
func ResolveForms(rs []rune) []Form {
	n := len(rs)
	forms := make([]Form, n)
	types := make([]JoiningType, n)
	for i, r := range rs {
		types[i] = ClassifyJoining(r)
		forms[i] = FormNone
	}
	for i := 0; i < n; i++ {
		t := types[i]
		if t != JoinD && t != JoinR {
			continue
		}
		prev := neighbour(types, i, -1)
		next := neighbour(types, i, +1)
		joinPrev := prev >= 0 && joinsFollowing(types[prev]) && joinsPreceding(t)
		joinNext := next >= 0 && joinsFollowing(t) && joinsPreceding(types[next])
		switch {
		case joinPrev && joinNext:
			forms[i] = FormMedial
		case joinPrev:
			forms[i] = FormFinal
		case joinNext:
			forms[i] = FormInitial
		default:
			forms[i] = FormIsolated
		}
	}
	return forms
}

// neighbour finds the next non-transparent position in direction dir, or -1.
func neighbour(types []JoiningType, i int, dir int) int {
	for j := i + dir; j >= 0 && j < len(types); j += dir {
		if types[j] != JoinT {
			return j
		}
	}
	return -1
}

func joinsPreceding(t JoiningType) bool {
	return t == JoinD || t == JoinR || t == JoinC
}

func joinsFollowing(t JoiningType) bool {
	return t == JoinD || t == JoinC
}
