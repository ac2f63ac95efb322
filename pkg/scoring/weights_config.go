package scoring

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// weightsFile is the on-disk shape of an operator-supplied override
// document. Its keys are ScoringConfig/SimilarityConfig/SearchParams field
// names, matched case-insensitively (see LoadWeights), so a deployment can
// tune weights without a rebuild.
type weightsFile struct {
	Similarity SimilarityConfig `yaml:"similarity"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Search     SearchParams     `yaml:"search"`
}

var (
	loadedOverrides   *weightsFile
	loadedOverridesMu sync.RWMutex
)

// LoadWeights reads "scoring_weights.yaml" from configDir and installs it as
// the process-wide override layer applied on top of the compiled defaults
// by ResolveFromEnvironment. A missing file is not an error: the OSS
// default behavior is to fall back to the hardcoded defaults in
// DefaultSimilarityConfig/DefaultScoringConfig.
func LoadWeights(configDir string) error {
	path := filepath.Join(configDir, "scoring_weights.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("scoring: read weights config: %w", err)
	}

	// The config structs carry no yaml tags, and yaml.v3 only matches an
	// untagged field by its lower-cased name. Decoding through encoding/json
	// matches keys case-insensitively, so camelCase keys such as nameWeight
	// reach NameWeight.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("scoring: parse weights config: %w", err)
	}
	asJSON, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("scoring: parse weights config: %w", err)
	}
	var wf weightsFile
	if err := json.Unmarshal(asJSON, &wf); err != nil {
		return fmt.Errorf("scoring: parse weights config: %w", err)
	}

	loadedOverridesMu.Lock()
	loadedOverrides = &wf
	loadedOverridesMu.Unlock()
	return nil
}

// ResetWeights clears the process-wide override layer. Used by tests to
// restore a clean-slate default configuration.
func ResetWeights() {
	loadedOverridesMu.Lock()
	loadedOverrides = nil
	loadedOverridesMu.Unlock()
}

// ResolveFromEnvironment resolves a ResolvedConfig starting from whatever
// override layer LoadWeights installed (or the compiled defaults if none
// was loaded), then applies the per-request overrides on top of that.
// Per-request overrides always win over the process-wide YAML layer, which
// in turn always wins over the compiled default.
func ResolveFromEnvironment(sim *SimilarityConfig, sc *ScoringConfig, sp *SearchParams) (ResolvedConfig, error) {
	loadedOverridesMu.RLock()
	base := loadedOverrides
	loadedOverridesMu.RUnlock()

	if base == nil {
		return Resolve(sim, sc, sp)
	}

	baseResolved, err := Resolve(&base.Similarity, &base.Scoring, &base.Search)
	if err != nil {
		return ResolvedConfig{}, err
	}

	mergedSim := mergeSimilarityOverride(baseResolved.Similarity, sim)
	mergedSc := mergeScoringOverride(baseResolved.Scoring, sc)
	mergedSp := mergeSearchOverride(baseResolved.Search, sp)
	return Resolve(mergedSim, mergedSc, mergedSp)
}

func mergeSimilarityOverride(base ResolvedSimilarity, override *SimilarityConfig) *SimilarityConfig {
	merged := resolvedToSimilarityConfig(base)
	if override == nil {
		return merged
	}
	if override.JaroWinklerBoostThreshold != nil {
		merged.JaroWinklerBoostThreshold = override.JaroWinklerBoostThreshold
	}
	if override.JaroWinklerPrefixSize != nil {
		merged.JaroWinklerPrefixSize = override.JaroWinklerPrefixSize
	}
	if override.PhoneticFilteringDisabled != nil {
		merged.PhoneticFilteringDisabled = override.PhoneticFilteringDisabled
	}
	if override.LengthDifferenceCutoffFactor != nil {
		merged.LengthDifferenceCutoffFactor = override.LengthDifferenceCutoffFactor
	}
	if override.LengthDifferencePenaltyWeight != nil {
		merged.LengthDifferencePenaltyWeight = override.LengthDifferencePenaltyWeight
	}
	if override.DifferentLetterPenaltyWeight != nil {
		merged.DifferentLetterPenaltyWeight = override.DifferentLetterPenaltyWeight
	}
	if override.UnmatchedIndexTokenWeight != nil {
		merged.UnmatchedIndexTokenWeight = override.UnmatchedIndexTokenWeight
	}
	if override.ExactMatchFavoritism != nil {
		merged.ExactMatchFavoritism = override.ExactMatchFavoritism
	}
	if override.KeepStopwords != nil {
		merged.KeepStopwords = override.KeepStopwords
	}
	if override.LogStopwordDebugging != nil {
		merged.LogStopwordDebugging = override.LogStopwordDebugging
	}
	return merged
}

func mergeScoringOverride(base ResolvedScoring, override *ScoringConfig) *ScoringConfig {
	merged := resolvedToScoringConfig(base)
	if override == nil {
		return merged
	}
	if override.NameWeight != nil {
		merged.NameWeight = override.NameWeight
	}
	if override.AddressWeight != nil {
		merged.AddressWeight = override.AddressWeight
	}
	if override.CriticalIDWeight != nil {
		merged.CriticalIDWeight = override.CriticalIDWeight
	}
	if override.SupportingInfoWeight != nil {
		merged.SupportingInfoWeight = override.SupportingInfoWeight
	}
	if override.NameEnabled != nil {
		merged.NameEnabled = override.NameEnabled
	}
	if override.AltNamesEnabled != nil {
		merged.AltNamesEnabled = override.AltNamesEnabled
	}
	if override.GovernmentIDEnabled != nil {
		merged.GovernmentIDEnabled = override.GovernmentIDEnabled
	}
	if override.CryptoEnabled != nil {
		merged.CryptoEnabled = override.CryptoEnabled
	}
	if override.ContactEnabled != nil {
		merged.ContactEnabled = override.ContactEnabled
	}
	if override.AddressEnabled != nil {
		merged.AddressEnabled = override.AddressEnabled
	}
	if override.DateEnabled != nil {
		merged.DateEnabled = override.DateEnabled
	}
	return merged
}

func mergeSearchOverride(base ResolvedSearchParams, override *SearchParams) *SearchParams {
	merged := &SearchParams{MinMatch: &base.MinMatch, Limit: &base.Limit}
	if override == nil {
		return merged
	}
	if override.MinMatch != nil {
		merged.MinMatch = override.MinMatch
	}
	if override.Limit != nil {
		merged.Limit = override.Limit
	}
	return merged
}

func resolvedToSimilarityConfig(r ResolvedSimilarity) *SimilarityConfig {
	return &SimilarityConfig{
		JaroWinklerBoostThreshold:     &r.JaroWinklerBoostThreshold,
		JaroWinklerPrefixSize:         &r.JaroWinklerPrefixSize,
		PhoneticFilteringDisabled:     &r.PhoneticFilteringDisabled,
		LengthDifferenceCutoffFactor:  &r.LengthDifferenceCutoffFactor,
		LengthDifferencePenaltyWeight: &r.LengthDifferencePenaltyWeight,
		DifferentLetterPenaltyWeight:  &r.DifferentLetterPenaltyWeight,
		UnmatchedIndexTokenWeight:     &r.UnmatchedIndexTokenWeight,
		ExactMatchFavoritism:          &r.ExactMatchFavoritism,
		KeepStopwords:                 &r.KeepStopwords,
		LogStopwordDebugging:          &r.LogStopwordDebugging,
	}
}

func resolvedToScoringConfig(r ResolvedScoring) *ScoringConfig {
	return &ScoringConfig{
		NameWeight:           &r.NameWeight,
		AddressWeight:        &r.AddressWeight,
		CriticalIDWeight:     &r.CriticalIDWeight,
		SupportingInfoWeight: &r.SupportingInfoWeight,
		NameEnabled:          &r.NameEnabled,
		AltNamesEnabled:      &r.AltNamesEnabled,
		GovernmentIDEnabled:  &r.GovernmentIDEnabled,
		CryptoEnabled:        &r.CryptoEnabled,
		ContactEnabled:       &r.ContactEnabled,
		AddressEnabled:       &r.AddressEnabled,
		DateEnabled:          &r.DateEnabled,
	}
}
