// Package ai contains the LLM provider adapters. One factory maps a
// model definition onto the matching wire protocol by inspecting its
// endpoint; models without a recognized endpoint run fully offline.
package ai

import (
	"net/http"
	"strings"
	"time"

	"github.com/dlwhyte/agentfoundry/internal/domain"
	"github.com/dlwhyte/agentfoundry/internal/ports"
)

type Factory struct {
	httpClient *http.Client
}

func NewFactory() *Factory {
	return &Factory{
		httpClient: &http.Client{Timeout: domain.DefaultHTTPClientTimeout},
	}
}

// NewFactoryWithTimeout overrides the request timeout, in seconds.
func NewFactoryWithTimeout(seconds int) *Factory {
	if seconds <= 0 {
		return NewFactory()
	}
	return &Factory{
		httpClient: &http.Client{Timeout: time.Duration(seconds) * time.Second},
	}
}

func (f *Factory) ForModel(model domain.ModelDefinition) (ports.Provider, error) {
	switch InferProviderKind(model.Endpoint, model.Name) {
	case domain.ProviderKindAnthropic:
		return newAnthropicProvider(model, f.httpClient), nil
	case domain.ProviderKindOpenAI:
		return newOpenAIProvider(model, f.httpClient), nil
	case domain.ProviderKindOllama:
		return newOllamaProvider(model, f.httpClient), nil
	default:
		return NewSimulatedProvider(model), nil
	}
}

// InferProviderKind decides the wire protocol from the endpoint, with
// the model name as a tiebreaker for local Ollama setups.
func InferProviderKind(endpoint string, name string) domain.ProviderKind {
	nameLower := strings.ToLower(name)

	switch {
	case strings.Contains(endpoint, "anthropic.com"):
		return domain.ProviderKindAnthropic
	case strings.Contains(endpoint, "openai.com"):
		return domain.ProviderKindOpenAI
	case strings.Contains(nameLower, "ollama"), strings.Contains(endpoint, "11434"), strings.Contains(endpoint, "localhost"):
		return domain.ProviderKindOllama
	default:
		return domain.ProviderKindSimulated
	}
}

var _ ports.ProviderFactory = (*Factory)(nil)
