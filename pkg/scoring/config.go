package scoring

import "fmt"

// SimilarityConfig tunes the string-similarity primitives (Jaro-Winkler,
// phonetic filter, length/letter penalties). All fields are optional
// overrides: a resolved field keeps its default when the override pointer
// is nil.
type SimilarityConfig struct {
	JaroWinklerBoostThreshold     *float64
	JaroWinklerPrefixSize         *int
	PhoneticFilteringDisabled     *bool
	LengthDifferenceCutoffFactor  *float64
	LengthDifferencePenaltyWeight *float64
	DifferentLetterPenaltyWeight  *float64
	UnmatchedIndexTokenWeight     *float64
	ExactMatchFavoritism          *float64
	KeepStopwords                 *bool
	LogStopwordDebugging          *bool
}

// ScoringConfig tunes the per-component weights and enable flags used by
// the EntityScorer aggregator.
type ScoringConfig struct {
	NameWeight            *float64
	AddressWeight         *float64
	CriticalIDWeight      *float64
	SupportingInfoWeight  *float64
	NameEnabled           *bool
	AltNamesEnabled       *bool
	GovernmentIDEnabled   *bool
	CryptoEnabled         *bool
	ContactEnabled        *bool
	AddressEnabled        *bool
	DateEnabled           *bool
}

// SearchParams carries host-facing ranking parameters. The core does not
// consume these itself (see internal/rank for the host-side helper that
// does), but they resolve alongside Similarity/ScoringConfig so a single
// request-scoped override document can carry all three.
type SearchParams struct {
	MinMatch *float64
	Limit    *int
}

// ResolvedSimilarity is the fully-resolved, immutable similarity
// configuration consumed by NameComparer.
type ResolvedSimilarity struct {
	JaroWinklerBoostThreshold     float64
	JaroWinklerPrefixSize         int
	PhoneticFilteringDisabled     bool
	LengthDifferenceCutoffFactor  float64
	LengthDifferencePenaltyWeight float64
	DifferentLetterPenaltyWeight  float64
	UnmatchedIndexTokenWeight     float64
	ExactMatchFavoritism          float64
	KeepStopwords                 bool
	LogStopwordDebugging          bool
}

// ResolvedScoring is the fully-resolved, immutable per-component weight
// configuration consumed by EntityScorer.
type ResolvedScoring struct {
	NameWeight           float64
	AddressWeight        float64
	CriticalIDWeight     float64
	SupportingInfoWeight float64
	NameEnabled          bool
	AltNamesEnabled      bool
	GovernmentIDEnabled  bool
	CryptoEnabled        bool
	ContactEnabled       bool
	AddressEnabled       bool
	DateEnabled          bool
}

// ResolvedSearchParams is the fully-resolved host-ranking configuration.
type ResolvedSearchParams struct {
	MinMatch float64
	Limit    int
}

// ResolvedConfig is the immutable, fully-resolved configuration handed to a
// single scoring call. Build one with Resolve; never mutate it afterward.
type ResolvedConfig struct {
	Similarity ResolvedSimilarity
	Scoring    ResolvedScoring
	Search     ResolvedSearchParams
}

// ConfigError reports an override value outside its documented range. The
// resolver fails fast with this error; no scoring is attempted.
type ConfigError struct {
	Field string
	Value any
	Range string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: field %q value %v out of range %s", e.Field, e.Value, e.Range)
}

// DefaultSimilarityConfig returns the process-wide immutable defaults for
// SimilarityConfig, loaded once at startup. Callers must never mutate the
// returned value; Resolve always builds a fresh ResolvedSimilarity.
func DefaultSimilarityConfig() ResolvedSimilarity {
	return ResolvedSimilarity{
		JaroWinklerBoostThreshold:     0.7,
		JaroWinklerPrefixSize:         4,
		PhoneticFilteringDisabled:     false,
		LengthDifferenceCutoffFactor:  3.0,
		LengthDifferencePenaltyWeight: 0.3,
		DifferentLetterPenaltyWeight:  0.1,
		UnmatchedIndexTokenWeight:     1.0,
		ExactMatchFavoritism:          0.05,
		KeepStopwords:                 false,
		LogStopwordDebugging:          false,
	}
}

// DefaultScoringConfig returns the process-wide immutable defaults for
// ScoringConfig.
func DefaultScoringConfig() ResolvedScoring {
	return ResolvedScoring{
		NameWeight:           35.0,
		AddressWeight:        25.0,
		CriticalIDWeight:     50.0,
		SupportingInfoWeight: 15.0,
		NameEnabled:          true,
		AltNamesEnabled:      true,
		GovernmentIDEnabled:  true,
		CryptoEnabled:        true,
		ContactEnabled:       true,
		AddressEnabled:       true,
		DateEnabled:          true,
	}
}

// DefaultSearchParams returns the process-wide immutable defaults for
// SearchParams.
func DefaultSearchParams() ResolvedSearchParams {
	return ResolvedSearchParams{
		MinMatch: 0.88,
		Limit:    10,
	}
}

// Resolve merges per-request overrides over the process-wide defaults.
// A nil override field keeps its default; a non-nil field replaces it.
// Resolve validates every override against its documented range and
// returns a *ConfigError (never panics) on the first violation.
//
// Resolve never mutates sim, sc, or sp, nor the process-wide defaults: it
// always constructs and returns a fresh ResolvedConfig.
func Resolve(sim *SimilarityConfig, sc *ScoringConfig, sp *SearchParams) (ResolvedConfig, error) {
	resolved := ResolvedConfig{
		Similarity: DefaultSimilarityConfig(),
		Scoring:    DefaultScoringConfig(),
		Search:     DefaultSearchParams(),
	}

	if err := resolveSimilarity(sim, &resolved.Similarity); err != nil {
		return ResolvedConfig{}, err
	}
	if err := resolveScoring(sc, &resolved.Scoring); err != nil {
		return ResolvedConfig{}, err
	}
	if err := resolveSearchParams(sp, &resolved.Search); err != nil {
		return ResolvedConfig{}, err
	}
	return resolved, nil
}

func resolveSimilarity(sim *SimilarityConfig, out *ResolvedSimilarity) error {
	if sim == nil {
		return nil
	}
	if v := sim.JaroWinklerBoostThreshold; v != nil {
		if *v < 0 || *v > 1 {
			return &ConfigError{"jaroWinklerBoostThreshold", *v, "[0,1]"}
		}
		out.JaroWinklerBoostThreshold = *v
	}
	if v := sim.JaroWinklerPrefixSize; v != nil {
		if *v < 0 || *v > 10 {
			return &ConfigError{"jaroWinklerPrefixSize", *v, "[0,10]"}
		}
		out.JaroWinklerPrefixSize = *v
	}
	if v := sim.PhoneticFilteringDisabled; v != nil {
		out.PhoneticFilteringDisabled = *v
	}
	if v := sim.LengthDifferenceCutoffFactor; v != nil {
		if *v < 1.0 {
			return &ConfigError{"lengthDifferenceCutoffFactor", *v, "[1.0,+inf)"}
		}
		out.LengthDifferenceCutoffFactor = *v
	}
	if v := sim.LengthDifferencePenaltyWeight; v != nil {
		if *v < 0 || *v > 1 {
			return &ConfigError{"lengthDifferencePenaltyWeight", *v, "[0,1]"}
		}
		out.LengthDifferencePenaltyWeight = *v
	}
	if v := sim.DifferentLetterPenaltyWeight; v != nil {
		if *v < 0 || *v > 1 {
			return &ConfigError{"differentLetterPenaltyWeight", *v, "[0,1]"}
		}
		out.DifferentLetterPenaltyWeight = *v
	}
	if v := sim.UnmatchedIndexTokenWeight; v != nil {
		if *v < 0 {
			return &ConfigError{"unmatchedIndexTokenWeight", *v, "[0,+inf)"}
		}
		out.UnmatchedIndexTokenWeight = *v
	}
	if v := sim.ExactMatchFavoritism; v != nil {
		if *v < 0 || *v > 1 {
			return &ConfigError{"exactMatchFavoritism", *v, "[0,1]"}
		}
		out.ExactMatchFavoritism = *v
	}
	if v := sim.KeepStopwords; v != nil {
		out.KeepStopwords = *v
	}
	if v := sim.LogStopwordDebugging; v != nil {
		out.LogStopwordDebugging = *v
	}
	return nil
}

func resolveScoring(sc *ScoringConfig, out *ResolvedScoring) error {
	if sc == nil {
		return nil
	}
	if v := sc.NameWeight; v != nil {
		if *v < 0 {
			return &ConfigError{"nameWeight", *v, "[0,+inf)"}
		}
		out.NameWeight = *v
	}
	if v := sc.AddressWeight; v != nil {
		if *v < 0 {
			return &ConfigError{"addressWeight", *v, "[0,+inf)"}
		}
		out.AddressWeight = *v
	}
	if v := sc.CriticalIDWeight; v != nil {
		if *v < 0 {
			return &ConfigError{"criticalIdWeight", *v, "[0,+inf)"}
		}
		out.CriticalIDWeight = *v
	}
	if v := sc.SupportingInfoWeight; v != nil {
		if *v < 0 {
			return &ConfigError{"supportingInfoWeight", *v, "[0,+inf)"}
		}
		out.SupportingInfoWeight = *v
	}
	if v := sc.NameEnabled; v != nil {
		out.NameEnabled = *v
	}
	if v := sc.AltNamesEnabled; v != nil {
		out.AltNamesEnabled = *v
	}
	if v := sc.GovernmentIDEnabled; v != nil {
		out.GovernmentIDEnabled = *v
	}
	if v := sc.CryptoEnabled; v != nil {
		out.CryptoEnabled = *v
	}
	if v := sc.ContactEnabled; v != nil {
		out.ContactEnabled = *v
	}
	if v := sc.AddressEnabled; v != nil {
		out.AddressEnabled = *v
	}
	if v := sc.DateEnabled; v != nil {
		out.DateEnabled = *v
	}
	return nil
}

func resolveSearchParams(sp *SearchParams, out *ResolvedSearchParams) error {
	if sp == nil {
		return nil
	}
	if v := sp.MinMatch; v != nil {
		if *v < 0 || *v > 1 {
			return &ConfigError{"minMatch", *v, "[0,1]"}
		}
		out.MinMatch = *v
	}
	if v := sp.Limit; v != nil {
		if *v < 1 || *v > 100 {
			return &ConfigError{"limit", *v, "[1,100]"}
		}
		out.Limit = *v
	}
	return nil
}
