package arabic

import "unicode"

// Blocks is the range table of all code-points considered Arabic.
var Blocks = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0600, Hi: 0x06ff, Stride: 1},
		{Lo: 0x0750, Hi: 0x077f, Stride: 1},
		{Lo: 0x08a0, Hi: 0x08ff, Stride: 1},
		{Lo: 0xfb50, Hi: 0xfdff, Stride: 1},
		{Lo: 0xfe70, Hi: 0xfeff, Stride: 1},
	},
}

// IsArabic returns true if r is in one of the Arabic blocks.
func IsArabic(r rune) bool {
	// fast path for ASCII, which is by far the most common input
	if r < 0x0600 {
		return false
	}
	return unicode.Is(Blocks, r)
}

// ContainsArabic returns true if s contains at least one Arabic code-point.
func ContainsArabic(s string) bool {
	for _, r := range s {
		if IsArabic(r) {
			return true
		}
	}
	return false
}
