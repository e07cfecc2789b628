package direction

import (
	"fmt"
	"unicode"

	"github.com/npillmayer/qalam/arabic"
	"github.com/npillmayer/qalam/settings"
	"golang.org/x/text/unicode/bidi"
)

// Direction is the text flow an Arabic run is prepared for.
type Direction int8

// Directions.
const (
	RightToLeft Direction = iota
	LeftToRight
)

func (d Direction) String() string {
	if d == LeftToRight {
		return settings.LeftToRight
	}
	return settings.RightToLeft
}

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == LeftToRight {
		return RightToLeft
	}
	return LeftToRight
}

// Parse converts a settings value to a Direction.
func Parse(s string) (Direction, error) {
	switch s {
	case settings.RightToLeft, "":
		return RightToLeft, nil
	case settings.LeftToRight:
		return LeftToRight, nil
	}
	return RightToLeft, fmt.Errorf("unknown direction %q", s)
}

// Class is the directional class of a text run.
type Class int8

// Classes of text runs.
const (
	Neutral Class = iota
	RTL
	LTR
)

func (c Class) String() string {
	switch c {
	case RTL:
		return "rtl"
	case LTR:
		return "ltr"
	}
	return "neutral"
}

// Run is a section of a line with a uniform directional class. Start and End
// are rune offsets into the line.
type Run struct {
	Text       string
	Class      Class
	Start, End int
}

// ClassOf returns the directional class of a code-point, according to its
// bidi class: strong right-to-left (R, AL) and Arabic numbers are RTL, strong
// left-to-right is LTR, everything else is neutral.
func ClassOf(r rune) Class {
	props, _ := bidi.LookupRune(r)
	switch props.Class() {
	case bidi.R, bidi.AL, bidi.AN:
		return RTL
	case bidi.L:
		return LTR
	}
	return Neutral
}

// Segment splits a line into runs of uniform directional class.
func Segment(line string) []Run {
	var runs []Run
	rs := []rune(line)
	start := 0
	for i := 1; i <= len(rs); i++ {
		if i < len(rs) && ClassOf(rs[i]) == ClassOf(rs[start]) {
			continue
		}
		runs = append(runs, Run{
			Text:  string(rs[start:i]),
			Class: ClassOf(rs[start]),
			Start: start,
			End:   i,
		})
		start = i
	}
	return runs
}

// span is a half-open interval of rune offsets.
type span struct {
	from, to int
}

// arabicSpans locates maximal Arabic runs in a line. Blanks are included if
// they are enclosed by Arabic code-points.
func arabicSpans(rs []rune) []span {
	var spans []span
	i := 0
	for i < len(rs) {
		if !arabic.IsArabic(rs[i]) {
			i++
			continue
		}
		from := i
		to := i + 1 // exclusive end of the last Arabic code-point seen
		for j := to; j < len(rs); j++ {
			if arabic.IsArabic(rs[j]) {
				to = j + 1
			} else if !isBlank(rs[j]) {
				break
			}
		}
		spans = append(spans, span{from, to})
		i = to
	}
	return spans
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t' || (unicode.IsSpace(r) && r != '\n' && r != '\r')
}
