// Package impact prices the business case for guardrails: expected
// breach losses per industry against the annual guardrail investment.
// Figures follow the IBM Cost of a Data Breach Report 2024.
package impact

import (
	"fmt"
	"strings"

	"github.com/dlwhyte/agentfoundry/internal/domain"
)

// Service assesses breach economics per industry profile.
type Service struct {
	profiles []domain.IndustryProfile
}

// NewService returns the built-in industry profiles.
func NewService() *Service {
	return &Service{profiles: builtinProfiles()}
}

// Profiles lists the industries.
func (s *Service) Profiles() []domain.IndustryProfile {
	return s.profiles
}

// Profile looks up one industry by exact or case-insensitive prefix match.
func (s *Service) Profile(name string) (domain.IndustryProfile, bool) {
	for _, p := range s.profiles {
		if p.Name == name {
			return p, true
		}
	}
	needle := strings.ToLower(name)
	for _, p := range s.profiles {
		if strings.HasPrefix(strings.ToLower(p.Name), needle) {
			return p, true
		}
	}
	return domain.IndustryProfile{}, false
}

// Assess computes the expected annual loss and guardrail ROI. A zero
// records count falls back to the industry average.
func (s *Service) Assess(industry string, records int, breachProbabilityPct float64) (domain.ImpactAssessment, error) {
	profile, ok := s.Profile(industry)
	if !ok {
		return domain.ImpactAssessment{}, fmt.Errorf("unknown industry %q", industry)
	}
	if records <= 0 {
		records = profile.AvgRecords
	}
	if breachProbabilityPct <= 0 || breachProbabilityPct > 100 {
		return domain.ImpactAssessment{}, fmt.Errorf("breach probability %.1f%% out of range (0, 100]", breachProbabilityPct)
	}

	breachCost := float64(records) * float64(profile.CostPerBreachRecord)
	expectedLoss := breachCost * breachProbabilityPct / 100
	guardrailCost := float64(profile.GuardrailCostAnnual)
	var roi float64
	if guardrailCost > 0 {
		roi = (expectedLoss - guardrailCost) / guardrailCost * 100
	}

	return domain.ImpactAssessment{
		Industry:             profile.Name,
		RecordsAtRisk:        records,
		BreachProbabilityPct: breachProbabilityPct,
		TotalBreachCostUSD:   breachCost,
		ExpectedAnnualLoss:   expectedLoss,
		GuardrailCostUSD:     guardrailCost,
		ROIPercent:           roi,
	}, nil
}

func builtinProfiles() []domain.IndustryProfile {
	return []domain.IndustryProfile{
		{
			Name:                "Healthcare",
			AvgRecords:          50_000,
			CostPerBreachRecord: 429,
			RegulatoryFineRange: "$1M - $50M (HIPAA)",
			ReputationImpact:    "Critical: patient trust, malpractice risk",
			Example:             "A hospital AI chatbot leaking patient records could trigger HIPAA violations at $429 per record.",
			GuardrailCostAnnual: 150_000,
		},
		{
			Name:                "Financial Services",
			AvgRecords:          100_000,
			CostPerBreachRecord: 266,
			RegulatoryFineRange: "$500K - $100M (SEC/FINRA)",
			ReputationImpact:    "Severe: customer churn, stock impact",
			Example:             "Knight Capital lost $440M in 45 minutes due to a software deployment with no guardrails.",
			GuardrailCostAnnual: 200_000,
		},
		{
			Name:                "Retail / E-Commerce",
			AvgRecords:          200_000,
			CostPerBreachRecord: 169,
			RegulatoryFineRange: "$100K - $10M (PCI-DSS / GDPR)",
			ReputationImpact:    "Moderate: brand damage, customer churn",
			Example:             "A chatbot processing unauthorized refunds at scale could generate millions in losses.",
			GuardrailCostAnnual: 100_000,
		},
		{
			Name:                "Technology / SaaS",
			AvgRecords:          75_000,
			CostPerBreachRecord: 188,
			RegulatoryFineRange: "$250K - $20M (GDPR / CCPA)",
			ReputationImpact:    "High: enterprise client trust, competitive risk",
			Example:             "An AI assistant leaking API keys or customer data could expose entire platforms.",
			GuardrailCostAnnual: 175_000,
		},
	}
}
