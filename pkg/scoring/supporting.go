package scoring

import (
	"strings"

	"github.com/sanctionsscore/core/pkg/entity"
)

// SupportingInfoComparer scores the lower-signal corroborating fields:
// sanctions program membership and historical-info (type, value) pairs
// such as prior names, prior addresses, or former nationalities. These
// rarely decide a match on their own but nudge a borderline score.
type SupportingInfoComparer struct{}

// NewSupportingInfoComparer builds a SupportingInfoComparer. It holds no
// state.
func NewSupportingInfoComparer() *SupportingInfoComparer { return &SupportingInfoComparer{} }

func jaccard(a, b []string) (float64, bool) {
	if len(a) == 0 || len(b) == 0 {
		return 0, false
	}
	setA := make(map[string]bool, len(a))
	for _, x := range a {
		setA[strings.ToUpper(strings.TrimSpace(x))] = true
	}
	setB := make(map[string]bool, len(b))
	for _, x := range b {
		setB[strings.ToUpper(strings.TrimSpace(x))] = true
	}

	intersection := 0
	union := len(setB)
	for x := range setA {
		if setB[x] {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0, false
	}
	return float64(intersection) / float64(union), true
}

// CompareSanctionsPrograms computes a Jaccard similarity over each side's
// program list (e.g. "SDN", "CYBER2", "UKRAINE-EO13662").
func (c *SupportingInfoComparer) CompareSanctionsPrograms(a, b entity.SanctionsInfo) ScorePiece {
	score, ok := jaccard(a.Programs, b.Programs)
	if !ok {
		return ScorePiece{PieceType: "sanctionsPrograms", FieldsCompared: 0}
	}
	return ScorePiece{
		PieceType:      "sanctionsPrograms",
		Score:          score,
		Matched:        score > 0,
		Exact:          score >= 0.999,
		FieldsCompared: 1,
	}
}

// CompareHistoricalInfo compares (Type, Value) pairs as opaque tokens via
// Jaccard similarity, so a shared former name or former address on
// otherwise-divergent entities still contributes supporting evidence.
func (c *SupportingInfoComparer) CompareHistoricalInfo(a, b []entity.HistoricalInfo) ScorePiece {
	tokensA := make([]string, 0, len(a))
	for _, h := range a {
		tokensA = append(tokensA, h.Type+"|"+h.Value)
	}
	tokensB := make([]string, 0, len(b))
	for _, h := range b {
		tokensB = append(tokensB, h.Type+"|"+h.Value)
	}

	score, ok := jaccard(tokensA, tokensB)
	if !ok {
		return ScorePiece{PieceType: "historicalInfo", FieldsCompared: 0}
	}
	return ScorePiece{
		PieceType:      "historicalInfo",
		Score:          score,
		Matched:        score > 0,
		Exact:          score >= 0.999,
		FieldsCompared: 1,
	}
}

// CompareSupportingInfo folds sanctions-program and historical-info
// similarity into a single piece. Only sub-comparisons that had something
// to compare on both sides count toward FieldsCompared, and the score is
// the mean of those that scored above zero; a zero-score sub-comparison is
// left out of the average rather than counted as 0.
func (c *SupportingInfoComparer) CompareSupportingInfo(a, b entity.Entity) ScorePiece {
	programs := c.CompareSanctionsPrograms(a.SanctionsInfo, b.SanctionsInfo)
	historical := c.CompareHistoricalInfo(a.HistoricalInfo, b.HistoricalInfo)

	var sum float64
	var present, nonZero int
	for _, p := range []ScorePiece{programs, historical} {
		if p.FieldsCompared == 0 {
			continue
		}
		present++
		if p.Score > 0 {
			sum += p.Score
			nonZero++
		}
	}
	if present == 0 {
		return ScorePiece{PieceType: "supportingInfo", FieldsCompared: 0}
	}
	if nonZero == 0 {
		return ScorePiece{PieceType: "supportingInfo", Score: 0, FieldsCompared: present}
	}

	avg := sum / float64(nonZero)
	return ScorePiece{
		PieceType:      "supportingInfo",
		Score:          avg,
		Matched:        avg > 0.5,
		Exact:          avg > 0.99,
		FieldsCompared: present,
	}
}
