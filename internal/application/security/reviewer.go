package security

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/dlwhyte/agentfoundry/internal/domain"
	"github.com/dlwhyte/agentfoundry/internal/ports"
)

// Reviewer replies wrap the JSON verdict in prose more often than not.
var verdictPattern = regexp.MustCompile(`(?s)\{.*\}`)

// review asks a second model whether the agent's reply broke its rules.
func (s *Service) review(ctx context.Context, cfg domain.Config, reply string, prompt string) (domain.ReviewVerdict, error) {
	model, err := cfg.GetReviewerModel()
	if err != nil {
		return domain.ReviewVerdict{}, fmt.Errorf("reviewer model: %w", err)
	}
	provider, err := s.ProviderFactory.ForModel(model)
	if err != nil {
		return domain.ReviewVerdict{}, fmt.Errorf("reviewer provider: %w", err)
	}

	message := fmt.Sprintf("USER MESSAGE: %s\n\nAGENT RESPONSE: %s\n\nYour review (JSON only):", prompt, reply)
	resp, err := provider.Chat(ctx, ports.ChatRequest{
		System: domain.ReviewerSystemPrompt,
		User:   message,
	})
	if err != nil {
		return domain.ReviewVerdict{}, fmt.Errorf("reviewer chat: %w", err)
	}
	return ParseVerdict(resp.Reply), nil
}

// ParseVerdict extracts the JSON verdict from the reviewer's reply. An
// unparseable reply defaults to safe with the raw text attached, so a
// rambling reviewer never blocks a response on its own.
func ParseVerdict(raw string) domain.ReviewVerdict {
	if match := verdictPattern.FindString(raw); match != "" {
		var verdict domain.ReviewVerdict
		if err := json.Unmarshal([]byte(match), &verdict); err == nil {
			if verdict.RiskLevel == "" {
				verdict.RiskLevel = domain.RiskUnknown
			}
			return verdict
		}
	}
	return domain.ReviewVerdict{Safe: true, RiskLevel: domain.RiskUnknown, Raw: raw}
}
