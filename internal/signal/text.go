package signal

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// before returns up to n characters of s ending at byte offset i.
func before(s string, i, n int) string {
	j := i
	for k := 0; k < n && j > 0; k++ {
		_, size := utf8.DecodeLastRuneInString(s[:j])
		j -= size
	}
	return s[j:i]
}

// window returns the match s[start:end] with up to n characters in front of it.
func window(s string, start, end, n int) string {
	return before(s, start, n) + s[start:end]
}

// wordBefore reports whether the character in front of offset i is a word
// character (letter, digit or underscore).
func wordBefore(s string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// lowerBefore reports whether the character in front of offset i is a-z.
func lowerBefore(s string, i int) bool {
	return i > 0 && s[i-1] >= 'a' && s[i-1] <= 'z'
}

func trimSpace(s string) string {
	return strings.TrimLeftFunc(s, isSpace)
}

// isSpace matches the widened \s class used by the patterns.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.In(r, unicode.Z) || (r >= 0x1c && r <= 0x1f)
}

// lower folds case the way the effect data was written against: dotted
// capital I keeps its combining dot.
func lower(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "\u0130", "i\u0307"))
}

// digitValue returns the value of a decimal digit rune. Decimal digits come in
// contiguous blocks of ten starting at zero, so the value is the position
// inside the run of digits that ends at r.
func digitValue(r rune) int {
	if r >= '0' && r <= '9' {
		return int(r - '0')
	}
	n := 0
	for unicode.IsDigit(r-rune(n+1)) && n < 64 {
		n++
	}
	return n % 10
}

// followedByTo reports whether s starts with whitespace and then "to".
func followedByTo(s string) bool {
	t := trimSpace(s)
	return len(t) < len(s) && strings.HasPrefix(t, "to")
}
