package domain

// IndustryProfile carries breach cost baselines for one industry.
// Figures follow the IBM Cost of a Data Breach Report 2024.
type IndustryProfile struct {
	Name                string
	AvgRecords          int
	CostPerBreachRecord int
	RegulatoryFineRange string
	ReputationImpact    string
	Example             string
	GuardrailCostAnnual int
}

// ImpactAssessment is the business case for guardrails: expected
// breach losses against the annual guardrail investment.
type ImpactAssessment struct {
	Industry             string
	RecordsAtRisk        int
	BreachProbabilityPct float64
	TotalBreachCostUSD   float64
	ExpectedAnnualLoss   float64
	GuardrailCostUSD     float64
	ROIPercent           float64
}
