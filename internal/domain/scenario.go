package domain

// AttackScenario is a pre-built prompt injection walkthrough used by
// demo mode. It shows the same attack with and without guardrails.
type AttackScenario struct {
	Name                string
	Category            string
	Difficulty          string
	Description         string
	AttackPrompt        string
	UnprotectedResponse string
	ProtectedResponse   string
	BreachType          string
	GuardrailsThatHelp  []GuardrailKind
	RealWorldExample    string
}
