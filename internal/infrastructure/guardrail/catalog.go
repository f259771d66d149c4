package guardrail

import "github.com/dlwhyte/agentfoundry/internal/domain"

// Catalog describes every defense layer for the guardrail list output.
func Catalog() []domain.GuardrailInfo {
	return []domain.GuardrailInfo{
		{
			Kind:        domain.GuardrailInput,
			Name:        "Input Validation",
			Description: "Scans user input for known injection patterns before it reaches the agent.",
			HowItWorks:  "Regex + keyword detection for phrases like 'ignore previous instructions', 'system prompt', 'DAN', embedded [SYSTEM] tags, etc.",
			Catches:     []string{"Direct overrides", "Known jailbreak patterns", "Embedded system tags"},
			Cost:        "Low latency (~5ms), no API cost",
			Limitations: "Can be bypassed with creative rephrasing or encoding tricks",
		},
		{
			Kind:        domain.GuardrailOutput,
			Name:        "Output Filtering",
			Description: "Scans the agent's response before the user sees it, a last line of defense.",
			HowItWorks:  "Checks responses for PII patterns (emails, phone numbers, account IDs not belonging to current user), system prompt fragments, and bulk data dumps.",
			Catches:     []string{"Leaked PII", "System prompt in response", "Bulk data exports"},
			Cost:        "Low latency (~10ms), no API cost",
			Limitations: "Cannot catch semantically leaked info without an exact pattern match",
		},
		{
			Kind:        domain.GuardrailScope,
			Name:        "Scope Enforcement",
			Description: "Verifies the request stays within the agent's authorized actions.",
			HowItWorks:  "Maintains a whitelist of allowed operations (view own account, request escalation) and blocks anything outside scope (access other accounts, process large refunds).",
			Catches:     []string{"Cross-account access", "Unauthorized transactions", "Privilege escalation"},
			Cost:        "Low latency (~5ms), no API cost",
			Limitations: "Requires well-defined scope boundaries upfront",
		},
		{
			Kind:        domain.GuardrailConstitutional,
			Name:        "Constitutional AI Review",
			Description: "A second LLM reviews the agent's draft response before it's sent.",
			HowItWorks:  "Sends the agent's draft response to a reviewer LLM asking: 'Does this response violate any rules? Does it leak data, break character, or exceed authority?'",
			Catches:     []string{"Subtle data leaks", "Character breaks", "Policy violations", "Indirect injections"},
			Cost:        "Higher latency (+500ms-2s), doubles API cost per interaction",
			Limitations: "The reviewer itself could potentially be manipulated; adds cost and latency",
		},
		{
			Kind:        domain.GuardrailHumanReview,
			Name:        "Human-in-the-Loop",
			Description: "Flags high-risk actions for human approval before execution.",
			HowItWorks:  "Any action involving financial transactions over a threshold, bulk data access, or account modifications gets queued for human approval.",
			Catches:     []string{"Unauthorized refunds", "Account changes", "Bulk operations"},
			Cost:        "High latency (minutes to hours), requires staffing",
			Limitations: "Doesn't scale for high-volume operations; creates a bottleneck",
		},
	}
}

// Info looks up one layer's description by kind.
func Info(kind domain.GuardrailKind) (domain.GuardrailInfo, bool) {
	for _, info := range Catalog() {
		if info.Kind == kind {
			return info, true
		}
	}
	return domain.GuardrailInfo{}, false
}
