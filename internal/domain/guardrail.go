package domain

// GuardrailKind identifies one defense layer in the pipeline.
type GuardrailKind string

const (
	GuardrailInput          GuardrailKind = "input_filter"
	GuardrailOutput         GuardrailKind = "output_filter"
	GuardrailScope          GuardrailKind = "scope_check"
	GuardrailConstitutional GuardrailKind = "constitutional"
	GuardrailHumanReview    GuardrailKind = "human_in_loop"
)

// PatternRule pairs a regular expression with a human-readable label.
// Rules are immutable after load; matching is always case-insensitive.
type PatternRule struct {
	Expression string `yaml:"pattern"`
	Label      string `yaml:"label"`
}

// RuleMatch records one rule that fired during classification.
type RuleMatch struct {
	Expression string
	Label      string
}

// ClassificationResult is the outcome of running a text through one
// pattern registry. Matches preserve registry order and include every
// rule that fired, not just the first.
type ClassificationResult struct {
	Kind      GuardrailKind
	Triggered bool
	Matches   []RuleMatch
	RiskScore float64
}

// Labels returns the labels of all fired rules in registry order.
func (r ClassificationResult) Labels() []string {
	labels := make([]string, 0, len(r.Matches))
	for _, m := range r.Matches {
		labels = append(labels, m.Label)
	}
	return labels
}

// GuardrailInfo describes a defense layer for display purposes.
type GuardrailInfo struct {
	Kind        GuardrailKind
	Name        string
	Description string
	HowItWorks  string
	Catches     []string
	Cost        string
	Limitations string
}
