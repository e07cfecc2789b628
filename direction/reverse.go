package direction

import (
	"strings"
	"unicode"

	"github.com/npillmayer/qalam/shaping"
	"golang.org/x/text/unicode/bidi"
)

// Reverse prepares text for display in a given direction. Lines are processed
// independently; the number of lines is preserved, as is every code-point
// outside of Arabic runs.
func Reverse(text string, dir Direction) (string, error) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		out, err := reverseLine(line, dir)
		if err != nil {
			return text, err
		}
		lines[i] = out
	}
	return strings.Join(lines, "\n"), nil
}

func reverseLine(line string, dir Direction) (string, error) {
	rs := []rune(line)
	spans := arabicSpans(rs)
	if len(spans) == 0 {
		return line, nil
	}
	var b strings.Builder
	pos := 0
	for _, sp := range spans {
		b.WriteString(string(rs[pos:sp.from]))
		run, err := reverseRun(string(rs[sp.from:sp.to]), dir)
		if err != nil {
			return line, err
		}
		b.WriteString(run)
		pos = sp.to
	}
	b.WriteString(string(rs[pos:]))
	return b.String(), nil
}

func reverseRun(run string, dir Direction) (string, error) {
	if dir == LeftToRight {
		run = reverseWords(run)
	}
	return visual(shaping.Reshape(run))
}

// visual re-orders logical text into visual order, for a right-to-left
// paragraph.
func visual(s string) (string, error) {
	var p bidi.Paragraph
	if _, err := p.SetString(s, bidi.DefaultDirection(bidi.RightToLeft)); err != nil {
		return s, err
	}
	o, err := p.Order()
	if err != nil {
		return s, err
	}
	n := o.NumRuns()
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		r := o.Run(i)
		t := r.String()
		if r.Direction() == bidi.RightToLeft {
			t = marksBehindBase(bidi.ReverseString(t))
		}
		// runs come in logical order, which is visually right to left
		parts[n-1-i] = t
	}
	tracer().Debugf("visual: %d bidi runs", n)
	return strings.Join(parts, ""), nil
}

// marksBehindBase moves every sequence of non-spacing marks in reversed text
// back behind the base character it belongs to (rule L3 of UAX#9). Marks
// without a base are left where they are.
func marksBehindBase(s string) string {
	rs := []rune(s)
	out := make([]rune, 0, len(rs))
	var marks []rune
	for _, r := range rs {
		if unicode.Is(unicode.Mn, r) {
			marks = append(marks, r)
			continue
		}
		out = append(out, r)
		for i := len(marks) - 1; i >= 0; i-- {
			out = append(out, marks[i])
		}
		marks = marks[:0]
	}
	return string(append(out, marks...))
}

// reverseWords reverses the order of words in s, keeping the blanks between
// them.
func reverseWords(s string) string {
	var tokens []string
	var cur []rune
	blank := false
	for _, r := range s {
		b := unicode.IsSpace(r)
		if len(cur) > 0 && b != blank {
			tokens = append(tokens, string(cur))
			cur = cur[:0]
		}
		cur = append(cur, r)
		blank = b
	}
	if len(cur) > 0 {
		tokens = append(tokens, string(cur))
	}
	for i, j := 0, len(tokens)-1; i < j; i, j = i+1, j-1 {
		tokens[i], tokens[j] = tokens[j], tokens[i]
	}
	return strings.Join(tokens, "")
}
