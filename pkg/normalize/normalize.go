// Package normalize provides deterministic text canonicalization for the
// scoring engine's comparators: case folding, diacritic stripping,
// punctuation/whitespace collapsing, and script-aware stopword removal.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Options controls optional normalization behavior. The zero value applies
// the default behavior (stopwords removed, no debug logging).
type Options struct {
	// KeepStopwords disables stopword removal when true.
	KeepStopwords bool
	// LogStopwordDebugging is accepted for config-shape parity with
	// SimilarityConfig; the core normalizer performs no logging of its own.
	LogStopwordDebugging bool
}

// Normalize canonicalizes s for comparison:
//  1. strip diacritics (NFD decompose, drop combining marks, NFC recompose)
//  2. uppercase-fold (Unicode-aware, so Cyrillic stopwords match their table)
//  3. replace punctuation with spaces, collapse whitespace, trim
//  4. remove stopwords from a script-appropriate table, unless KeepStopwords
//
// Normalize("") and Normalize of an all-whitespace/punctuation string both
// return "". Normalize is idempotent and deterministic.
func Normalize(s string, opts Options) string {
	if s == "" {
		return ""
	}

	script := detectScript(s)

	s = stripDiacritics(s)
	s = strings.ToUpper(s)
	s = collapsePunctuation(s)

	if opts.KeepStopwords {
		return s
	}
	return removeStopwords(s, script)
}

// stripDiacritics decomposes s (NFD), drops Unicode combining marks, and
// recomposes (NFC). "José" -> "Jose", "Müller" -> "Muller".
func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}

// collapsePunctuation replaces punctuation and symbol runes with spaces,
// collapses whitespace runs to a single space, and trims the result.
func collapsePunctuation(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize splits a normalized string on whitespace. It does not itself
// normalize; callers pass already-normalized text.
func Tokenize(normalized string) []string {
	if normalized == "" {
		return nil
	}
	return strings.Fields(normalized)
}
