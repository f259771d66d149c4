package domain

// RiskLevel enumerates reviewer verdict severities.
type RiskLevel string

const (
	RiskNone     RiskLevel = "none"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
	RiskUnknown  RiskLevel = "unknown"
)

// ReviewVerdict is the structured judgment returned by the
// constitutional reviewer. Raw carries the reviewer's reply when the
// JSON verdict could not be parsed.
type ReviewVerdict struct {
	Safe       bool      `json:"safe"`
	Violations []string  `json:"violations"`
	RiskLevel  RiskLevel `json:"risk_level"`
	Raw        string    `json:"raw,omitempty"`
}

// SessionOutcome summarizes how a live attack run ended.
type SessionOutcome string

const (
	OutcomeBlocked     SessionOutcome = "blocked"      // pre-LLM guardrail stopped the prompt
	OutcomeIntercepted SessionOutcome = "intercepted"  // output filter caught the reply
	OutcomeFlagged     SessionOutcome = "flagged"      // constitutional reviewer flagged the reply
	OutcomePassed      SessionOutcome = "passed"       // reply cleared all active guardrails
	OutcomeBreach      SessionOutcome = "breach"       // unguarded reply leaked blocked content
	OutcomeSimulated   SessionOutcome = "sim_breach"   // canned breach shown for a frontier model
	OutcomeUnprotected SessionOutcome = "no_guardrail" // unguarded reply, no leak detected
)
