package scoring

import (
	"sort"
	"strings"

	"github.com/sanctionsscore/core/internal/phonetic"
	"github.com/sanctionsscore/core/pkg/normalize"
)

// NameComparer computes name-similarity ScorePieces using Jaro-Winkler
// string similarity, a Soundex fast-reject pre-filter, and an
// order-independent tokenized best-pairs matcher, driven by
// ResolvedSimilarity instead of hardcoded constants.
type NameComparer struct {
	cfg ResolvedSimilarity
}

// NewNameComparer builds a NameComparer bound to a resolved configuration.
func NewNameComparer(cfg ResolvedSimilarity) *NameComparer {
	return &NameComparer{cfg: cfg}
}

// jaro computes the classic Jaro string similarity in [0,1].
func jaro(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 || lb == 0 {
		return 0.0
	}

	matchWindow := la
	if lb > la {
		matchWindow = lb
	}
	matchWindow = matchWindow/2 - 1
	if matchWindow < 0 {
		matchWindow = 0
	}

	aMatches := make([]bool, la)
	bMatches := make([]bool, lb)

	matches := 0
	for i := 0; i < la; i++ {
		start := i - matchWindow
		if start < 0 {
			start = 0
		}
		end := i + matchWindow + 1
		if end > lb {
			end = lb
		}
		for j := start; j < end; j++ {
			if bMatches[j] || ra[i] != rb[j] {
				continue
			}
			aMatches[i] = true
			bMatches[j] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0.0
	}

	var transpositions int
	k := 0
	for i := 0; i < la; i++ {
		if !aMatches[i] {
			continue
		}
		for !bMatches[k] {
			k++
		}
		if ra[i] != rb[k] {
			transpositions++
		}
		k++
	}
	transpositions /= 2

	m := float64(matches)
	return (m/float64(la) + m/float64(lb) + (m-float64(transpositions))/m) / 3.0
}

// jaroWinkler applies the Winkler common-prefix boost to the Jaro score,
// gated by boostThreshold: the boost only applies when the base Jaro score
// already clears the threshold. prefixSize bounds how many leading
// characters count toward the bonus (classically 4), weighted at 0.1 per
// matching prefix character.
func jaroWinkler(a, b string, boostThreshold float64, prefixSize int) float64 {
	score := jaro(a, b)
	if score < boostThreshold {
		return score
	}

	ra, rb := []rune(a), []rune(b)
	maxPrefix := prefixSize
	if len(ra) < maxPrefix {
		maxPrefix = len(ra)
	}
	if len(rb) < maxPrefix {
		maxPrefix = len(rb)
	}

	prefix := 0
	for i := 0; i < maxPrefix; i++ {
		if ra[i] != rb[i] {
			break
		}
		prefix++
	}

	return score + float64(prefix)*0.1*(1-score)
}

// lengthDifferencePenalty applies two length-based adjustments to score:
// a continuous multiplier by `(1 − (1 − r) · penaltyWeight)` with
// `r = min(|a|,|b|) / max(|a|,|b|)`, always applied regardless of how close
// the lengths are; and a hard clamp to at most 0.5 when
// `max(|a|,|b|) / min(|a|,|b|) > cutoffFactor`.
func lengthDifferencePenalty(score float64, a, b string, cutoffFactor, penaltyWeight float64) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 || lb == 0 {
		return score
	}
	shorter, longer := la, lb
	if lb < la {
		shorter, longer = lb, la
	}

	r := float64(shorter) / float64(longer)
	score *= 1 - (1-r)*penaltyWeight

	if float64(longer)/float64(shorter) > cutoffFactor && score > 0.5 {
		score = 0.5
	}
	return score
}

// differentLetterPenalty discounts score by the multiset-difference
// between the letters of a and b, relative to the longer string's length,
// scaled by penaltyWeight. Two strings built from disjoint alphabets (e.g.
// unrelated transliterations that happen to pass the phonetic filter) get
// penalized even when their lengths and Jaro-Winkler shapes happen to line
// up.
func differentLetterPenalty(a, b string, penaltyWeight float64) float64 {
	counts := make(map[rune]int)
	for _, r := range a {
		counts[r]++
	}
	for _, r := range b {
		counts[r]--
	}
	var diff int
	for _, c := range counts {
		if c < 0 {
			c = -c
		}
		diff += c
	}
	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0
	}
	ratio := float64(diff) / float64(maxLen)
	return 1.0 - ratio*penaltyWeight
}

// favoredByTokenRemoval reports whether a and b hold the same whitespace
// tokens except that the longer side has extra tokens which, if removed,
// would leave the shorter side exactly — the "differ only by removing
// matched tokens" case in the exact-match favoritism rule. Literal
// equality (handled earlier in compareSingle) is excluded here.
func favoredByTokenRemoval(a, b string) bool {
	if a == b {
		return false
	}
	ta, tb := strings.Fields(a), strings.Fields(b)
	if len(ta) == 0 || len(tb) == 0 || len(ta) == len(tb) {
		return false
	}

	shorter, longer := ta, tb
	if len(tb) < len(ta) {
		shorter, longer = tb, ta
	}

	remaining := make(map[string]int, len(longer))
	for _, tok := range longer {
		remaining[tok]++
	}
	for _, tok := range shorter {
		if remaining[tok] == 0 {
			return false
		}
		remaining[tok]--
	}
	return true
}

// compareSingle scores one string pair end to end: phonetic pre-filter,
// base Jaro-Winkler, length-difference penalty, different-letter penalty,
// and an exact-match favoritism bonus. Returns 0 immediately when the
// phonetic pre-filter rejects the pair.
func (c *NameComparer) compareSingle(a, b string) float64 {
	if !phonetic.Compatible(a, b, c.cfg.PhoneticFilteringDisabled) {
		return 0.0
	}

	if a == b {
		return 1.0
	}

	score := jaroWinkler(a, b, c.cfg.JaroWinklerBoostThreshold, c.cfg.JaroWinklerPrefixSize)
	score = lengthDifferencePenalty(score, a, b, c.cfg.LengthDifferenceCutoffFactor, c.cfg.LengthDifferencePenaltyWeight)
	score *= differentLetterPenalty(a, b, c.cfg.DifferentLetterPenaltyWeight)

	if favoredByTokenRemoval(a, b) {
		score += c.cfg.ExactMatchFavoritism * (1 - score)
	}

	if score > 1.0 {
		score = 1.0
	}
	if score < 0.0 {
		score = 0.0
	}
	return score
}

// tokenizedSimilarity scores two normalized, already-tokenized names by
// finding the order-independent best-pairs assignment between their
// tokens: each token on the shorter side is greedily paired with its best
// remaining match on the longer side, then unmatched tokens on the longer
// side are penalized by unmatchedWeight per token. This makes "xi jinping"
// and "jinping xi" score identically regardless of token order.
func (c *NameComparer) tokenizedSimilarity(tokensA, tokensB []string) float64 {
	if len(tokensA) == 0 && len(tokensB) == 0 {
		return 1.0
	}
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0.0
	}

	shorter, longer := tokensA, tokensB
	if len(tokensB) < len(tokensA) {
		shorter, longer = tokensB, tokensA
	}

	type pairing struct {
		shortIdx, longIdx int
		score             float64
	}
	var candidates []pairing
	for i, s := range shorter {
		for j, l := range longer {
			candidates = append(candidates, pairing{i, j, c.compareSingle(s, l)})
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })

	usedShort := make([]bool, len(shorter))
	usedLong := make([]bool, len(longer))
	var matchedSum float64
	matchedCount := 0
	for _, cand := range candidates {
		if usedShort[cand.shortIdx] || usedLong[cand.longIdx] {
			continue
		}
		usedShort[cand.shortIdx] = true
		usedLong[cand.longIdx] = true
		matchedSum += cand.score
		matchedCount++
		if matchedCount == len(shorter) {
			break
		}
	}

	unmatchedLong := len(longer) - matchedCount
	totalWeight := float64(matchedCount) + float64(unmatchedLong)*c.cfg.UnmatchedIndexTokenWeight
	if totalWeight == 0 {
		return 0.0
	}
	return matchedSum / totalWeight
}

// CompareNames scores a full name pair, taking the best of: whole-string
// Jaro-Winkler, and tokenized best-pairs similarity. It also considers
// every combination against altNamesB (alias list), taking the maximum
// across all candidates, since a subject can be sanctioned under any
// listed alias.
func (c *NameComparer) CompareNames(nameA string, altNamesA []string, nameB string, altNamesB []string) ScorePiece {
	normOpts := normalize.Options{KeepStopwords: c.cfg.KeepStopwords, LogStopwordDebugging: c.cfg.LogStopwordDebugging}

	candidatesA := append([]string{nameA}, altNamesA...)
	candidatesB := append([]string{nameB}, altNamesB...)

	best := 0.0
	exact := false
	compared := 0
	for _, ca := range candidatesA {
		normA := normalize.Normalize(ca, normOpts)
		if normA == "" {
			continue
		}
		tokensA := normalize.Tokenize(normA)
		for _, cb := range candidatesB {
			normB := normalize.Normalize(cb, normOpts)
			if normB == "" {
				continue
			}
			compared++
			tokensB := normalize.Tokenize(normB)

			whole := c.compareSingle(normA, normB)
			tokenized := c.tokenizedSimilarity(tokensA, tokensB)
			score := whole
			if tokenized > score {
				score = tokenized
			}
			if score > best {
				best = score
			}
			if normA == normB {
				exact = true
			}
		}
	}

	return ScorePiece{
		PieceType:      "name",
		Score:          best,
		Matched:        best > 0,
		Exact:          exact,
		FieldsCompared: compared,
	}
}
