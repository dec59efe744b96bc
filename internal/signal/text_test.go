package signal

import "testing"

func TestBeforeCountsCharacters(t *testing.T) {
	s := "éééabc"
	i := len("ééé")
	if got := before(s, i, 2); got != "éé" {
		t.Errorf("before = %q, want %q", got, "éé")
	}
	if got := before(s, i, 10); got != "ééé" {
		t.Errorf("before past start = %q, want %q", got, "ééé")
	}
	if got := before(s, 0, 5); got != "" {
		t.Errorf("before at 0 = %q, want empty", got)
	}
}

func TestFollowedByTo(t *testing.T) {
	cases := map[string]bool{
		" to enemy": true,
		"  to":      true,
		"to enemy":  false,
		" total":    true,
		", else":    false,
		"":          false,
	}
	for in, want := range cases {
		if got := followedByTo(in); got != want {
			t.Errorf("followedByTo(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestWordBefore(t *testing.T) {
	if !wordBefore("regain", 2) {
		t.Error("expected 'e' to be a word character")
	}
	if wordBefore("a gain", 2) {
		t.Error("space is not a word character")
	}
	if wordBefore("gain", 0) {
		t.Error("start of text has no character before it")
	}
}

func TestDigitValue(t *testing.T) {
	cases := map[rune]int{
		'7':          7,
		'８':          8,
		'٣':          3,
		'\U0001D7D7': 9,
		'\U0001D7D8': 0,
	}
	for r, want := range cases {
		if got := digitValue(r); got != want {
			t.Errorf("digitValue(%q) = %d, want %d", r, got, want)
		}
	}
}

func TestAtoi(t *testing.T) {
	if got := atoi("１２"); got != 12 {
		t.Errorf("atoi(fullwidth 12) = %v, want 12", got)
	}
	if got := atoi("99999999999999999999"); got != 1e20 {
		t.Errorf("atoi past int range = %v, want 1e20", got)
	}
}

func TestIsSpace(t *testing.T) {
	for _, r := range []rune{' ', '\t', '\v', '\u00a0', '\u2003', '\u3000', '\x1f'} {
		if !isSpace(r) {
			t.Errorf("isSpace(%q) = false", r)
		}
	}
	if isSpace('x') {
		t.Error("isSpace('x') = true")
	}
}

func TestLowerKeepsDottedI(t *testing.T) {
	if got := lower("\u0130F Wall"); got != "i\u0307f wall" {
		t.Errorf("lower = %q", got)
	}
}
