// Package explain renders a ScoringTrace and ScoreBreakdown into a
// human-readable explanation string, one line per contributing piece.
package explain

import (
	"fmt"
	"strings"

	"github.com/sanctionsscore/core/pkg/scoring"
	"github.com/sanctionsscore/core/pkg/trace"
)

// Explain renders breakdown and trace into a multi-line explanation: one
// summary line for the final score, one line per scored piece, and one
// line per recorded trace event. A disabled trace (no events) still
// produces the score-and-pieces portion.
func Explain(breakdown scoring.ScoreBreakdown, t trace.ScoringTrace) string {
	var b strings.Builder

	fmt.Fprintf(&b, "final score: %.4f", breakdown.TotalWeightedScore)
	if breakdown.ExactShortCircuited {
		b.WriteString(" (exact identifier match, clamped to high confidence)")
	}
	b.WriteString("\n")

	for _, p := range breakdown.Pieces {
		if p.FieldsCompared == 0 {
			fmt.Fprintf(&b, "  %s: not compared (no data on one or both sides)\n", p.PieceType)
			continue
		}
		exactness := ""
		if p.Exact {
			exactness = ", exact"
		}
		fmt.Fprintf(&b, "  %s: %.4f (weight %.1f%s)\n", p.PieceType, p.Score, p.Weight, exactness)
	}

	if len(t.Events) == 0 {
		return b.String()
	}

	b.WriteString("trace:\n")
	for _, e := range t.Events {
		if e.DurationMs > 0 {
			fmt.Fprintf(&b, "  [%s] %s: %s (%.3fms)\n", e.Timestamp.Format("15:04:05.000"), e.Phase, e.Description, e.DurationMs)
			continue
		}
		fmt.Fprintf(&b, "  [%s] %s: %s\n", e.Timestamp.Format("15:04:05.000"), e.Phase, e.Description)
	}
	return b.String()
}

// ExplainScore is a convenience wrapper over Explain for the common case
// of explaining a scoring.Result directly, with no custom session ID or
// duration needed.
func ExplainScore(result scoring.Result, ctx trace.ScoringContext) string {
	return Explain(result.Breakdown, ctx.ToTrace("", 0))
}
