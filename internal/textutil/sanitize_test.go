package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Week 1", "Week 1"},
		{"slashes", "Intro/Basics", "Intro_Basics"},
		{"run collapses", `a\/:*b`, "a_b"},
		{"quotes and angles", `say "hi" <now>`, "say _hi_ _now_"},
		{"question and pipe", "what?|why", "what_why"},
		{"trims whitespace", "  padded  ", "padded"},
		{"empty", "", "Unnamed"},
		{"only unsafe", "///", "_"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeFileName(tc.input); got != tc.want {
				t.Fatalf("SanitizeFileName(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSanitizeFileNameNormalizes(t *testing.T) {
	// "e" + combining acute vs precomposed "é" must sanitize identically.
	decomposed := "Expose\u0301"
	precomposed := "Exposé"
	if SanitizeFileName(decomposed) != SanitizeFileName(precomposed) {
		t.Fatalf("expected NFC-equal names to sanitize identically: %q vs %q",
			SanitizeFileName(decomposed), SanitizeFileName(precomposed))
	}
}
