package scoring

// ScorePiece is the result of comparing one field or field-group between
// two entities: a similarity score in [0,1], the weight it contributes to
// the aggregate, and bookkeeping used by tracing/explanation.
type ScorePiece struct {
	PieceType      string
	Score          float64
	Weight         float64
	Matched        bool
	Exact          bool
	FieldsCompared int
}

// ScoreBreakdown collects every ScorePiece considered for a single scoring
// call plus the final weighted total. It is the data half of a
// ScoringTrace (see pkg/trace) and is also what internal/explain's Explain
// walks.
type ScoreBreakdown struct {
	Pieces              []ScorePiece
	TotalWeightedScore  float64
	ExactShortCircuited bool
}

// Add appends a piece to the breakdown. Pieces with zero FieldsCompared
// (nothing to compare on either side) are still recorded for
// explainability but contribute no weight to the aggregate.
func (b *ScoreBreakdown) Add(p ScorePiece) {
	b.Pieces = append(b.Pieces, p)
}

// weightedAverage folds pieces with FieldsCompared > 0 into a single
// weight-normalized score. Pieces nobody could compare (FieldsCompared==0)
// are excluded from both the numerator and the weight denominator, so a
// field absent on both sides does not drag the average toward zero.
func weightedAverage(pieces []ScorePiece) (float64, float64) {
	var weightedSum, totalWeight float64
	for _, p := range pieces {
		if p.FieldsCompared == 0 {
			continue
		}
		weightedSum += p.Score * p.Weight
		totalWeight += p.Weight
	}
	if totalWeight == 0 {
		return 0, 0
	}
	return weightedSum / totalWeight, totalWeight
}
