package normalize

import "strings"

// script is the coarse character-range classification used to pick a
// stopword table. An unrecognized script gets no stopword removal.
type script int

const (
	scriptUnknown script = iota
	scriptLatin
	scriptCJK
	scriptCyrillic
	scriptArabic
)

// detectScript classifies s by counting rune ranges and picking the
// plurality script. Ties and scripts with no meaningful presence resolve to
// scriptUnknown (no stopword removal), per spec §4.1.
func detectScript(s string) script {
	var latin, cjk, cyrillic, arabic int
	for _, r := range s {
		switch {
		case r >= 0x0041 && r <= 0x024F:
			latin++
		case r >= 0x4E00 && r <= 0x9FFF, r >= 0x3040 && r <= 0x30FF, r >= 0xAC00 && r <= 0xD7A3:
			cjk++
		case r >= 0x0400 && r <= 0x04FF:
			cyrillic++
		case r >= 0x0600 && r <= 0x06FF:
			arabic++
		}
	}

	best := scriptUnknown
	bestCount := 0
	tied := false
	for script, count := range map[script]int{
		scriptLatin:    latin,
		scriptCJK:      cjk,
		scriptCyrillic: cyrillic,
		scriptArabic:   arabic,
	} {
		switch {
		case count > bestCount:
			bestCount = count
			best = script
			tied = false
		case count == bestCount && count > 0:
			tied = true
		}
	}
	if bestCount == 0 || tied {
		return scriptUnknown
	}
	return best
}

// stopwordTables maps each recognized script to its stopword set. CJK has
// no whitespace-delimited stopwords worth stripping at this tokenization
// granularity, so it gets an empty table (pass-through).
var stopwordTables = map[script]map[string]bool{
	scriptLatin: setOf(
		"THE", "A", "AN", "AND", "OR", "OF", "TO", "IN", "ON", "AT", "FOR",
		"WITH", "BY", "FROM", "IS", "ARE", "WAS", "WERE", "BE", "BEEN",
		"MR", "MRS", "MS", "DR", "SR", "JR",
	),
	scriptCyrillic: setOf(
		"И", "В", "НА", "С", "ПО", "ОТ", "ДЛЯ", "ИЗ",
	),
	scriptArabic: setOf(
		"في", "من", "على", "الى", "و",
	),
	scriptCJK: setOf(),
}

func setOf(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// removeStopwords drops tokens present in the stopword table for script.
// Normalized input is already uppercased, so the table is compared as-is.
func removeStopwords(normalized string, scr script) string {
	table := stopwordTables[scr]
	if len(table) == 0 {
		return normalized
	}

	tokens := strings.Fields(normalized)
	kept := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !table[t] {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		// Never strip a name down to nothing; an all-stopword string
		// passes through unchanged.
		return normalized
	}
	return strings.Join(kept, " ")
}
