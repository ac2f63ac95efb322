package scoring

import (
	"math"
	"time"

	"github.com/sanctionsscore/core/pkg/entity"
)

// DateComparer scores pairs of dates (date of birth, date built,
// incorporation date, and the other *Dates fields surfaced by
// entity.Entity.Dates) with a tolerance band rather than exact equality:
// sanctions lists frequently carry a birth year but not the full date, or
// round-trip through a source with a different date convention, so an
// off-by-a-few-days or off-by-a-year match is still meaningful evidence.
type DateComparer struct{}

// NewDateComparer builds a DateComparer. It holds no state.
func NewDateComparer() *DateComparer { return &DateComparer{} }

// CompareDate scores a single date pair:
//
//	exact day match:        1.0
//	within 1 month:         0.8
//	within 2 years:         0.5
//	otherwise:              0.0
//
// fieldsCompared is 0 when either side is nil, so a field absent on both
// sides does not drag down the supporting-info average.
func (c *DateComparer) CompareDate(a, b *time.Time) ScorePiece {
	if a == nil || b == nil {
		return ScorePiece{PieceType: "date", FieldsCompared: 0}
	}

	delta := a.Sub(*b)
	if delta < 0 {
		delta = -delta
	}
	days := delta.Hours() / 24

	var score float64
	switch {
	case days < 1:
		score = 1.0
	case days <= 31:
		score = 0.8
	case days <= 365*2:
		score = 0.5
	default:
		score = 0.0
	}

	return ScorePiece{
		PieceType:      "date",
		Score:          score,
		Matched:        score > 0,
		Exact:          days < 1,
		FieldsCompared: 1,
	}
}

// CompareAllDates compares every same-named date field surfaced by
// entity.Entity.Dates on both sides (dob, deceased, built, incorporated)
// and folds them into a single piece via an unweighted mean over fields
// present on both sides.
func (c *DateComparer) CompareAllDates(a, b entity.Entity) ScorePiece {
	datesA := a.Dates()
	datesB := b.Dates()

	var sum float64
	var compared int
	var anyExact bool
	for field, da := range datesA {
		db, ok := datesB[field]
		if !ok {
			continue
		}
		piece := c.CompareDate(da, db)
		if piece.FieldsCompared == 0 {
			continue
		}
		sum += piece.Score
		compared++
		if piece.Exact {
			anyExact = true
		}
	}

	if compared == 0 {
		return ScorePiece{PieceType: "date", FieldsCompared: 0}
	}

	avg := sum / float64(compared)
	return ScorePiece{
		PieceType:      "date",
		Score:          math.Round(avg*1000) / 1000,
		Matched:        avg > 0,
		Exact:          anyExact,
		FieldsCompared: compared,
	}
}
