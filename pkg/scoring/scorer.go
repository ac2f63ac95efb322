// Package scoring implements the entity-matching scorer: a fixed pipeline
// of field-level comparators (name, address, government ID, crypto
// address, contact info, date, supporting info) folded into a single
// weighted score in [0,1], with an exact-identifier short circuit and a
// full tracing capability for explainability.
package scoring

import (
	"github.com/sanctionsscore/core/pkg/entity"
	"github.com/sanctionsscore/core/pkg/trace"
)

// EntityScorer runs the full comparison pipeline between a query entity
// and a candidate entity. It orders a precedence tier (the
// exact-identifier short circuit) ahead of a confidence-weighted blend
// over the remaining field pieces.
type EntityScorer struct {
	cfg     ResolvedConfig
	names   *NameComparer
	exact   *ExactMatcher
	address *AddressComparer
	dates   *DateComparer
	support *SupportingInfoComparer
}

// NewEntityScorer builds an EntityScorer bound to a resolved
// configuration. Build a fresh ResolvedConfig with Resolve (or
// ResolveFromEnvironment) per request and construct a new EntityScorer
// from it; EntityScorer itself holds no mutable state and is safe for
// concurrent reuse once built, but a fresh instance per distinct
// configuration keeps call sites simple.
func NewEntityScorer(cfg ResolvedConfig) *EntityScorer {
	return &EntityScorer{
		cfg:     cfg,
		names:   NewNameComparer(cfg.Similarity),
		exact:   NewExactMatcher(),
		address: NewAddressComparer(cfg.Similarity),
		dates:   NewDateComparer(),
		support: NewSupportingInfoComparer(),
	}
}

// Result is the outcome of a single Score call: the final score, the
// breakdown that produced it, and whether the query and candidate were
// treated as the same effective type.
type Result struct {
	Score          float64
	Breakdown      ScoreBreakdown
	TypesConsistent bool
}

// Score compares query against candidate and returns a Result. ctx may be
// trace.NewDisabled() for the zero-overhead path or trace.NewEnabled(nil)
// to capture a full phase-by-phase trace for later rendering via
// internal/explain.
//
// The pipeline runs ten fixed steps: type-consistency check, name
// compare, alt-name compare (folded into the same piece, max-of wins),
// address compare, government-ID compare, crypto-address compare,
// contact-info compare, date compare, supporting-info compare, and
// finally weighted aggregation with the exact-identifier short circuit.
func (s *EntityScorer) Score(ctx trace.ScoringContext, query, candidate entity.Entity) Result {
	ctx.Record(trace.PhaseTypeConsistencyCheck, "checking effective type consistency", map[string]any{
		"queryType":     string(query.EffectiveType()),
		"candidateType": string(candidate.EffectiveType()),
	})
	typesConsistent := query.EffectiveType() == candidate.EffectiveType() ||
		query.EffectiveType() == entity.TypeUnknown ||
		candidate.EffectiveType() == entity.TypeUnknown

	var breakdown ScoreBreakdown
	var nameScore float64

	if s.cfg.Scoring.NameEnabled {
		var altA, altB []string
		if s.cfg.Scoring.AltNamesEnabled {
			altA = query.AltNames()
			altB = candidate.AltNames()
		}
		namePiece := trace.Traced(ctx, trace.PhaseNameCompare, "comparing primary and alt names", func() ScorePiece {
			return s.names.CompareNames(query.Name, altA, candidate.Name, altB)
		})
		namePiece.Weight = s.cfg.Scoring.NameWeight
		nameScore = namePiece.Score
		breakdown.Add(namePiece)
	}

	if s.cfg.Scoring.AddressEnabled {
		addrPiece := trace.Traced(ctx, trace.PhaseAddressCompare, "comparing addresses", func() ScorePiece {
			return s.address.CompareAddresses(query.Addresses, candidate.Addresses)
		})
		addrPiece.Weight = s.cfg.Scoring.AddressWeight
		breakdown.Add(addrPiece)
	}

	var exactIDMatched bool

	if s.cfg.Scoring.GovernmentIDEnabled {
		idPiece := trace.Traced(ctx, trace.PhaseGovernmentIDCompare, "comparing government identifiers", func() ScorePiece {
			return s.exact.CompareGovernmentIDs(query.GovernmentIDs(), candidate.GovernmentIDs())
		})
		idPiece.Weight = s.cfg.Scoring.CriticalIDWeight
		breakdown.Add(idPiece)
		if idPiece.Exact {
			exactIDMatched = true
		}
	}

	if s.cfg.Scoring.CryptoEnabled {
		cryptoPiece := trace.Traced(ctx, trace.PhaseCryptoCompare, "comparing crypto addresses", func() ScorePiece {
			return s.exact.CompareCryptoAddresses(query.CryptoAddresses, candidate.CryptoAddresses)
		})
		cryptoPiece.Weight = s.cfg.Scoring.CriticalIDWeight
		breakdown.Add(cryptoPiece)
		if cryptoPiece.Exact {
			exactIDMatched = true
		}
	}

	if s.cfg.Scoring.ContactEnabled {
		contactPiece := trace.Traced(ctx, trace.PhaseContactCompare, "comparing contact info", func() ScorePiece {
			return s.exact.CompareContactInfo(query.Contact, candidate.Contact)
		})
		contactPiece.Weight = s.cfg.Scoring.CriticalIDWeight
		breakdown.Add(contactPiece)
		if contactPiece.Exact {
			exactIDMatched = true
		}
	}

	if s.cfg.Scoring.DateEnabled {
		datePiece := trace.Traced(ctx, trace.PhaseDateCompare, "comparing dates", func() ScorePiece {
			return s.dates.CompareAllDates(query, candidate)
		})
		datePiece.Weight = s.cfg.Scoring.SupportingInfoWeight
		breakdown.Add(datePiece)
	}

	supportPiece := trace.Traced(ctx, trace.PhaseSupportingInfoCompare, "comparing supporting info", func() ScorePiece {
		return s.support.CompareSupportingInfo(query, candidate)
	})
	supportPiece.Weight = s.cfg.Scoring.SupportingInfoWeight
	breakdown.Add(supportPiece)

	if !typesConsistent {
		// Declared-type mismatch between two otherwise-typed entities is
		// treated as a hard cap rather than a contributing piece: a
		// sanctioned vessel and a sanctioned person should never score
		// as the same subject no matter how their names align.
		for i := range breakdown.Pieces {
			if breakdown.Pieces[i].Score > 0.3 {
				breakdown.Pieces[i].Score = 0.3
			}
		}
	}

	ctx.Record(trace.PhaseWeightedAggregate, "aggregating weighted pieces", nil)
	total, _ := weightedAverage(breakdown.Pieces)

	if exactIDMatched && nameScore >= 0.5 {
		ctx.Record(trace.PhaseExactIDShortCircuit, "exact identifier match short-circuits to high confidence", nil)
		if total < 0.9 {
			total = 0.9
		}
		breakdown.ExactShortCircuited = true
	}

	ctx.Record(trace.PhaseFinalClamp, "clamping final score to [0,1]", map[string]any{"score": total})
	if total > 1.0 {
		total = 1.0
	}
	if total < 0.0 {
		total = 0.0
	}
	breakdown.TotalWeightedScore = total

	return Result{
		Score:           total,
		Breakdown:       breakdown,
		TypesConsistent: typesConsistent,
	}
}
