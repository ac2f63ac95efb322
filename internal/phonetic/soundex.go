// Package phonetic implements the Soundex-based fast-reject pre-filter used
// by the name comparator to short-circuit implausible pairs before the more
// expensive Jaro-Winkler computation runs.
package phonetic

import "strings"

// soundexCode maps a letter to its Soundex digit. Vowels and H/W/Y are
// unmapped (0) and act as separators/silent letters per the classic
// algorithm.
var soundexCode = map[byte]byte{
	'B': '1', 'F': '1', 'P': '1', 'V': '1',
	'C': '2', 'G': '2', 'J': '2', 'K': '2', 'Q': '2', 'S': '2', 'X': '2', 'Z': '2',
	'D': '3', 'T': '3',
	'L': '4',
	'M': '5', 'N': '5',
	'R': '6',
}

// Soundex computes the classic American-Soundex code for word: one letter
// followed by three digits, zero-padded. Non-letters are ignored. An empty
// or all-non-letter input returns "".
func Soundex(word string) string {
	word = strings.ToUpper(strings.TrimSpace(word))
	var letters []byte
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c >= 'A' && c <= 'Z' {
			letters = append(letters, c)
		}
	}
	if len(letters) == 0 {
		return ""
	}

	code := make([]byte, 0, 4)
	code = append(code, letters[0])

	lastDigit := soundexCode[letters[0]]
	for _, c := range letters[1:] {
		d := soundexCode[c]
		if d != 0 && d != lastDigit {
			code = append(code, d)
			if len(code) == 4 {
				break
			}
		}
		// H and W do not break a run of the same digit; all other
		// non-coded letters (vowels, Y) do reset lastDigit so a repeated
		// consonant across a vowel gets coded again.
		if c != 'H' && c != 'W' {
			lastDigit = d
		}
	}

	for len(code) < 4 {
		code = append(code, '0')
	}
	return string(code)
}

// softCompatible holds cross-transliteration letter groups that should be
// treated as phonetically interchangeable for the first-letter compatibility
// check, even though their Soundex digits differ under the classic table
// (e.g. J/Y are common transliteration variants of the same sound in many
// source languages, as are C/K). An otherwise-matching first token with a
// single-letter transliteration swap must be COMPATIBLE; unrelated tokens
// must still be INCOMPATIBLE.
var softCompatible = map[byte]map[byte]bool{
	'J': {'Y': true},
	'Y': {'J': true},
	'C': {'K': true},
	'K': {'C': true},
}

// Compatible reports whether two names are phonetically plausible enough to
// proceed to full name comparison. It compares the Soundex code of the
// first whitespace token on each side, with a soft-compatibility table for
// common single-letter transliteration variants. Returns true (compatible)
// when either input is empty, or when filtering is disabled by the caller.
func Compatible(a, b string, disabled bool) bool {
	if disabled {
		return true
	}
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return true
	}

	firstA := firstToken(a)
	firstB := firstToken(b)
	if firstA == "" || firstB == "" {
		return true
	}

	codeA := Soundex(firstA)
	codeB := Soundex(firstB)
	if codeA == "" || codeB == "" {
		return true
	}
	if codeA == codeB {
		return true
	}

	// Soft compatibility: same code once the leading letter is swapped for
	// a known cross-transliteration partner.
	if len(firstA) > 0 && len(firstB) > 0 {
		la, lb := toUpperByte(firstA[0]), toUpperByte(firstB[0])
		if softCompatible[la][lb] || softCompatible[lb][la] {
			restA := strings.ToUpper(firstA[1:])
			restB := strings.ToUpper(firstB[1:])
			if restA == restB {
				return true
			}
		}
	}

	return false
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func toUpperByte(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
