package cli

import (
	"fmt"
	"strings"

	"github.com/dlwhyte/agentfoundry/internal/application/security"
	"github.com/dlwhyte/agentfoundry/internal/domain"
)

// RenderLiveResult prints a live pipeline run in a friendly, ASCII-only
// format.
func RenderLiveResult(result security.LiveResult) {
	fmt.Printf("Provider: %s | Model: %s | %dms\n", result.Provider, result.Model, result.DurationMS)
	if result.Simulated {
		fmt.Println("Note: response produced by the simulated provider (no API call)")
	}
	fmt.Println()

	switch result.Outcome {
	case domain.OutcomeBlocked:
		fmt.Println("BLOCKED before reaching the model.")
		renderHits(result.BlockedBy)
	case domain.OutcomeIntercepted:
		fmt.Println("INTERCEPTED: the output filter caught the reply.")
		renderHits(result.BlockedBy)
	case domain.OutcomeFlagged:
		fmt.Println("FLAGGED by the constitutional reviewer.")
		renderHits(result.BlockedBy)
		renderVerdict(result.Verdict)
	case domain.OutcomePassed:
		fmt.Println("PASSED all active guardrails.")
		renderReply(result.Reply)
		renderVerdict(result.Verdict)
	case domain.OutcomeBreach:
		fmt.Printf("BREACH: the unguarded agent leaked restricted content (%s).\n", result.BreachType)
		renderReply(result.Reply)
	case domain.OutcomeSimulated:
		fmt.Printf("SIMULATED BREACH (%s): frontier safety training resists this attack,\n", result.BreachType)
		fmt.Println("so the canned vulnerable response below shows what an unprotected agent would do.")
		renderReply(result.Reply)
		if len(result.WouldCatch) > 0 {
			fmt.Println("\nGuardrails that would have caught this:")
			renderHits(result.WouldCatch)
		}
	case domain.OutcomeUnprotected:
		fmt.Println("NO GUARDRAILS were active. The reply did not trip the output registry.")
		renderReply(result.Reply)
	}
}

// RenderDemo walks through a pre-built scenario: the attack, both
// outcomes, and which layers defend against it.
func RenderDemo(result security.DemoResult) {
	s := result.Scenario
	fmt.Printf("%s  [%s / %s]\n", s.Name, s.Category, s.Difficulty)
	fmt.Println(strings.Repeat("-", 60))
	fmt.Println(s.Description)

	fmt.Println("\nAttack prompt:")
	fmt.Printf("  %s\n", s.AttackPrompt)

	fmt.Println("\nWithout guardrails:")
	indent(s.UnprotectedResponse)
	fmt.Printf("  Breach type: %s\n", s.BreachType)

	fmt.Println("\nWith guardrails:")
	indent(s.ProtectedResponse)

	fmt.Println("\nGuardrails that help:")
	for _, kind := range s.GuardrailsThatHelp {
		marker := " "
		for _, active := range result.ActiveLayers {
			if active == kind {
				marker = "*"
				break
			}
		}
		fmt.Printf("  [%s] %s\n", marker, kind)
	}
	fmt.Println("  (* = currently enabled in your config)")

	if s.RealWorldExample != "" {
		fmt.Printf("\nReal-world example: %s\n", s.RealWorldExample)
	}
}

// RenderScenarioList prints the demo catalog as a table.
func RenderScenarioList(scenarios []domain.AttackScenario) {
	fmt.Printf("%-35s %-22s %s\n", "NAME", "CATEGORY", "DIFFICULTY")
	for _, s := range scenarios {
		fmt.Printf("%-35s %-22s %s\n", s.Name, s.Category, s.Difficulty)
	}
}

func renderHits(hits []security.GuardrailHit) {
	for _, hit := range hits {
		fmt.Printf("  %s: %s\n", hit.Kind, strings.Join(hit.Labels, "; "))
	}
}

func renderVerdict(verdict *domain.ReviewVerdict) {
	if verdict == nil {
		return
	}
	fmt.Printf("\nReviewer verdict: safe=%t risk=%s\n", verdict.Safe, verdict.RiskLevel)
	for _, violation := range verdict.Violations {
		fmt.Printf("  - %s\n", violation)
	}
	if verdict.Raw != "" {
		fmt.Println("  (verdict JSON could not be parsed; raw reviewer output kept)")
	}
}

func renderReply(reply string) {
	if reply == "" {
		return
	}
	fmt.Println("\nAgent reply:")
	indent(reply)
}

func indent(text string) {
	for _, line := range strings.Split(text, "\n") {
		fmt.Printf("  %s\n", line)
	}
}
