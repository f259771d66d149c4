package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleConfig() Config {
	return Config{
		Preferences: Preferences{DefaultModel: "gpt-4o-mini"},
		Models: []ModelDefinition{
			{Name: "gpt-4o-mini", ModelID: "gpt-4o-mini"},
			{Name: "claude", ModelID: "claude-sonnet-4-5-20250929"},
		},
	}
}

func TestGetDefaultModel(t *testing.T) {
	cfg := sampleConfig()

	model, err := cfg.GetDefaultModel()
	if err != nil {
		t.Fatalf("GetDefaultModel error: %v", err)
	}
	if model.Name != "gpt-4o-mini" {
		t.Fatalf("expected gpt-4o-mini, got %s", model.Name)
	}
}

func TestGetDefaultModelMissing(t *testing.T) {
	cfg := sampleConfig()
	cfg.Preferences.DefaultModel = "missing"

	if _, err := cfg.GetDefaultModel(); err == nil {
		t.Fatal("expected error for missing default model")
	}
}

func TestGetReviewerModelFallsBackToDefault(t *testing.T) {
	cfg := sampleConfig()

	model, err := cfg.GetReviewerModel()
	if err != nil {
		t.Fatalf("GetReviewerModel error: %v", err)
	}
	if model.Name != "gpt-4o-mini" {
		t.Fatalf("expected default model fallback, got %s", model.Name)
	}

	cfg.Preferences.ReviewerModel = "claude"
	model, err = cfg.GetReviewerModel()
	if err != nil {
		t.Fatalf("GetReviewerModel error: %v", err)
	}
	if model.Name != "claude" {
		t.Fatalf("expected claude, got %s", model.Name)
	}
}

func TestEnabledGuardrailsOrder(t *testing.T) {
	cfg := sampleConfig()
	cfg.Security.Layers = GuardrailLayers{
		InputFilter:    true,
		OutputFilter:   true,
		ScopeCheck:     true,
		Constitutional: true,
		HumanReview:    true,
	}

	want := []GuardrailKind{
		GuardrailInput,
		GuardrailScope,
		GuardrailHumanReview,
		GuardrailOutput,
		GuardrailConstitutional,
	}
	if diff := cmp.Diff(want, cfg.EnabledGuardrails()); diff != "" {
		t.Fatalf("guardrail order mismatch (-want +got):\n%s", diff)
	}
}

func TestSetGuardrail(t *testing.T) {
	cfg := sampleConfig()

	if err := cfg.SetGuardrail(GuardrailOutput, true); err != nil {
		t.Fatalf("SetGuardrail error: %v", err)
	}
	if !cfg.Security.Layers.OutputFilter {
		t.Fatal("output filter should be enabled")
	}
	if err := cfg.SetGuardrail("bogus", true); err == nil {
		t.Fatal("expected error for unknown layer")
	}
}

func TestValidateConsistency(t *testing.T) {
	cfg := sampleConfig()
	if err := cfg.ValidateConsistency(); err != nil {
		t.Fatalf("ValidateConsistency error: %v", err)
	}

	cfg.Preferences.ReviewerModel = "missing"
	if err := cfg.ValidateConsistency(); err == nil {
		t.Fatal("expected error for missing reviewer model")
	}
}
