// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). Following the Ports and Adapters (Hexagonal) pattern,
// these interfaces allow the application to remain independent of specific
// implementations like databases, HTTP clients, or CLI frameworks.
package ports

import (
	"context"

	"github.com/dlwhyte/agentfoundry/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.foundry/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// GuardrailEngine runs text through the pattern registries. Classify is
// pure: same input, same output, regardless of call order or count.
type GuardrailEngine interface {
	Classify(kind domain.GuardrailKind, text string) (domain.ClassificationResult, error)
	Rules(kind domain.GuardrailKind) []domain.PatternRule
	ReviewRequired(text string) bool
}

// ProviderFactory builds LLM provider instances based on model definitions.
// It abstracts the creation of different provider types (OpenAI, Anthropic, Ollama).
type ProviderFactory interface {
	ForModel(domain.ModelDefinition) (Provider, error)
}

// Provider defines a single chat exchange with an LLM service.
type Provider interface {
	Name() string
	Kind() domain.ProviderKind
	Model() domain.ModelDefinition
	Chat(context.Context, ChatRequest) (ChatResponse, error)
}

// ChatRequest contains one system/user prompt pair.
type ChatRequest struct {
	System string
	User   string
}

// ChatResponse carries the model's reply. Simulated marks canned
// responses produced without an API call.
type ChatResponse struct {
	Reply     string
	Simulated bool
}

// VulnerableSimulator produces canned breach responses keyed on attack
// patterns, standing in for a real breach when frontier models are run
// without guardrails.
type VulnerableSimulator interface {
	Simulate(prompt string) (reply string, breachType string, ok bool)
}

// ScenarioCatalog lists the pre-built attack scenarios for demo mode.
type ScenarioCatalog interface {
	Scenarios() []domain.AttackScenario
	Scenario(name string) (domain.AttackScenario, bool)
}

// MCPCatalog lists the canned MCP walkthrough scenarios.
type MCPCatalog interface {
	Scenarios() []domain.MCPScenario
	Scenario(name string) (domain.MCPScenario, bool)
}

// SessionRepository persists live attack session records.
type SessionRepository interface {
	Save(domain.SessionRecord) error
	Records(limit int, search string) ([]domain.SessionRecord, error)
	Clear() error
	ExportJSON(dest string) error
	PruneOlderThan(days int) error
}

// CacheRepository stores provider replies keyed by prompt hash.
type CacheRepository interface {
	Get(key string) (domain.CacheEntry, bool, error)
	Set(domain.CacheEntry) error
	Entries() ([]domain.CacheEntry, error)
	Clear() error
	Dir() string
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
