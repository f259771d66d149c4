package pricing

import "github.com/dlwhyte/agentfoundry/internal/domain"

// defaultTable carries approximate per-million-token USD rates.
// Config pricing entries override or extend these.
func defaultTable() []domain.ModelPrice {
	return []domain.ModelPrice{
		{Provider: "openai", Model: "gpt-4o-mini", InputPerMTok: 0.15, OutputPerMTok: 0.60},
		{Provider: "openai", Model: "gpt-4o", InputPerMTok: 2.50, OutputPerMTok: 10.00},
		{Provider: "openai", Model: "gpt-4-turbo", InputPerMTok: 10.00, OutputPerMTok: 30.00},
		{Provider: "anthropic", Model: "claude-sonnet-4-5", InputPerMTok: 3.00, OutputPerMTok: 15.00},
		{Provider: "anthropic", Model: "claude-haiku-4-5", InputPerMTok: 1.00, OutputPerMTok: 5.00},
		{Provider: "ollama", Model: "llama3.2"},
		{Provider: "ollama", Model: "llama3.1"},
		{Provider: "ollama", Model: "mistral"},
	}
}
