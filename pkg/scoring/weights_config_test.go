package scoring

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWeightsMissingFileIsNotError(t *testing.T) {
	ResetWeights()
	defer ResetWeights()

	dir := t.TempDir()
	if err := LoadWeights(dir); err != nil {
		t.Fatalf("LoadWeights with no file present returned error: %v", err)
	}

	cfg, err := ResolveFromEnvironment(nil, nil, nil)
	if err != nil {
		t.Fatalf("ResolveFromEnvironment: %v", err)
	}
	if cfg.Scoring != DefaultScoringConfig() {
		t.Errorf("Scoring = %+v, want compiled defaults when no weights file exists", cfg.Scoring)
	}
}

func TestLoadWeightsAppliesYAMLOverride(t *testing.T) {
	ResetWeights()
	defer ResetWeights()

	dir := t.TempDir()
	doc := `
scoring:
  nameWeight: 60
  cryptoEnabled: false
similarity:
  jaroWinklerBoostThreshold: 0.9
`
	if err := os.WriteFile(filepath.Join(dir, "scoring_weights.yaml"), []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := LoadWeights(dir); err != nil {
		t.Fatalf("LoadWeights: %v", err)
	}

	cfg, err := ResolveFromEnvironment(nil, nil, nil)
	if err != nil {
		t.Fatalf("ResolveFromEnvironment: %v", err)
	}
	if cfg.Scoring.NameWeight != 60 {
		t.Errorf("NameWeight = %v, want 60 from YAML override", cfg.Scoring.NameWeight)
	}
	if cfg.Scoring.CryptoEnabled {
		t.Errorf("CryptoEnabled = true, want false from YAML override")
	}
	if cfg.Similarity.JaroWinklerBoostThreshold != 0.9 {
		t.Errorf("JaroWinklerBoostThreshold = %v, want 0.9", cfg.Similarity.JaroWinklerBoostThreshold)
	}
}

func TestPerRequestOverrideWinsOverYAMLLayer(t *testing.T) {
	ResetWeights()
	defer ResetWeights()

	dir := t.TempDir()
	doc := "scoring:\n  nameWeight: 60\n"
	if err := os.WriteFile(filepath.Join(dir, "scoring_weights.yaml"), []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := LoadWeights(dir); err != nil {
		t.Fatalf("LoadWeights: %v", err)
	}

	requestWeight := 12.0
	cfg, err := ResolveFromEnvironment(nil, &ScoringConfig{NameWeight: &requestWeight}, nil)
	if err != nil {
		t.Fatalf("ResolveFromEnvironment: %v", err)
	}
	if cfg.Scoring.NameWeight != requestWeight {
		t.Errorf("NameWeight = %v, want per-request override %v to win over YAML layer", cfg.Scoring.NameWeight, requestWeight)
	}
}

func TestResetWeightsRestoresDefaults(t *testing.T) {
	ResetWeights()
	defer ResetWeights()

	dir := t.TempDir()
	doc := "scoring:\n  nameWeight: 99\n"
	if err := os.WriteFile(filepath.Join(dir, "scoring_weights.yaml"), []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := LoadWeights(dir); err != nil {
		t.Fatalf("LoadWeights: %v", err)
	}
	ResetWeights()

	cfg, err := ResolveFromEnvironment(nil, nil, nil)
	if err != nil {
		t.Fatalf("ResolveFromEnvironment: %v", err)
	}
	if cfg.Scoring.NameWeight != DefaultScoringConfig().NameWeight {
		t.Errorf("NameWeight = %v after ResetWeights, want compiled default", cfg.Scoring.NameWeight)
	}
}
