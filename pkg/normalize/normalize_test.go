package normalize

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts Options
		want string
	}{
		{"empty", "", Options{}, ""},
		{"all whitespace", "   ", Options{}, ""},
		{"basic uppercase fold", "Wei, Zhao", Options{}, "WEI ZHAO"},
		{"diacritics stripped", "José Müller", Options{}, "JOSE MULLER"},
		{"punctuation collapsed", "AB 12-34 C", Options{}, "AB 12 34 C"},
		{"stopwords removed", "The Bank Of America", Options{}, "BANK AMERICA"},
		{"keep stopwords", "The Bank Of America", Options{KeepStopwords: true}, "THE BANK OF AMERICA"},
		{"all stopwords passes through", "The Of", Options{}, "THE OF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in, tt.opts)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"", "Wei, Zhao", "José Müller", "AB 12-34 C", "The Bank Of America", "مرحبا بالعالم"}
	for _, in := range inputs {
		once := Normalize(in, Options{})
		twice := Normalize(once, Options{})
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	in := "Nicolás Maduro Moros"
	first := Normalize(in, Options{})
	for i := 0; i < 10; i++ {
		if got := Normalize(in, Options{}); got != first {
			t.Fatalf("Normalize not deterministic: iteration %d got %q, want %q", i, got, first)
		}
	}
}

func TestTokenize(t *testing.T) {
	if got := Tokenize(""); got != nil {
		t.Errorf("Tokenize(\"\") = %v, want nil", got)
	}
	got := Tokenize("JOHN SMITH")
	want := []string{"JOHN", "SMITH"}
	if len(got) != len(want) {
		t.Fatalf("Tokenize length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tokenize()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDetectScriptCyrillic(t *testing.T) {
	got := Normalize("Иванов и Петров", Options{})
	if got == "ИВАНОВ И ПЕТРОВ" {
		t.Errorf("expected Cyrillic stopword %q to be removed, got %q", "И", got)
	}
}
