package pricing

import (
	"math"
	"strings"
	"testing"

	"github.com/dlwhyte/agentfoundry/internal/domain"
)

func TestEstimateTokens(t *testing.T) {
	if got := EstimateTokens(""); got != 0 {
		t.Fatalf("empty text = %d tokens", got)
	}
	if got := EstimateTokens(strings.Repeat("a", 400)); got != 100 {
		t.Fatalf("400 chars = %d tokens, want 100", got)
	}
}

func TestEstimateKnownModel(t *testing.T) {
	svc := NewService(nil)

	estimate, err := svc.Estimate("gpt-4o-mini", 1_000_000, 1_000_000)
	if err != nil {
		t.Fatalf("Estimate error: %v", err)
	}
	if math.Abs(estimate.InputUSD-0.15) > 1e-9 {
		t.Fatalf("input cost = %f, want 0.15", estimate.InputUSD)
	}
	if math.Abs(estimate.OutputUSD-0.60) > 1e-9 {
		t.Fatalf("output cost = %f, want 0.60", estimate.OutputUSD)
	}
	if math.Abs(estimate.TotalUSD-0.75) > 1e-9 {
		t.Fatalf("total = %f, want 0.75", estimate.TotalUSD)
	}
}

func TestEstimateLocalModelIsFree(t *testing.T) {
	svc := NewService(nil)

	estimate, err := svc.Estimate("llama3.2", 5_000_000, 5_000_000)
	if err != nil {
		t.Fatalf("Estimate error: %v", err)
	}
	if estimate.TotalUSD != 0 {
		t.Fatalf("local model cost = %f, want 0", estimate.TotalUSD)
	}
}

func TestEstimateUnknownModel(t *testing.T) {
	if _, err := NewService(nil).Estimate("gpt-99", 1, 1); err == nil {
		t.Fatal("expected error for unknown model")
	}
}

func TestConfigOverridesReplaceDefaults(t *testing.T) {
	svc := NewService([]domain.ModelPrice{
		{Provider: "openai", Model: "gpt-4o-mini", InputPerMTok: 1.00, OutputPerMTok: 2.00},
		{Provider: "custom", Model: "in-house-7b"},
	})

	price, ok := svc.Price("gpt-4o-mini")
	if !ok || price.InputPerMTok != 1.00 {
		t.Fatalf("override not applied: %+v", price)
	}
	if _, ok := svc.Price("in-house-7b"); !ok {
		t.Fatal("new model from config missing")
	}
}

func TestCompareRanksCheapestFirst(t *testing.T) {
	estimates := NewService(nil).Compare(100_000, 100_000)
	if len(estimates) == 0 {
		t.Fatal("empty comparison")
	}
	for i := 1; i < len(estimates); i++ {
		if estimates[i].TotalUSD < estimates[i-1].TotalUSD {
			t.Fatalf("comparison not sorted at %d: %f < %f", i, estimates[i].TotalUSD, estimates[i-1].TotalUSD)
		}
	}
	if estimates[0].TotalUSD != 0 {
		t.Fatalf("free local models should rank first, got %+v", estimates[0])
	}
}
