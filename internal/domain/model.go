// Package domain defines core business entities and value objects for
// agentfoundry. The domain layer is independent of infrastructure
// concerns and represents pure business logic and data structures.
package domain

// ProviderKind identifies which API family a model speaks.
type ProviderKind string

const (
	ProviderKindOpenAI    ProviderKind = "openai"
	ProviderKindAnthropic ProviderKind = "anthropic"
	ProviderKindOllama    ProviderKind = "ollama"
	ProviderKindSimulated ProviderKind = "simulated"
	ProviderKindUnknown   ProviderKind = "unknown"
)

// IsFrontier reports whether the provider ships its own safety
// training. Frontier models resist injection even unguarded, so live
// mode substitutes a labeled simulated breach when guardrails are off.
func (k ProviderKind) IsFrontier() bool {
	return k == ProviderKindOpenAI || k == ProviderKindAnthropic
}

// ModelDefinition describes an LLM endpoint declared in the config
// file. Each entry names a specific service with its authentication
// and generation parameters.
type ModelDefinition struct {
	Name        string  `yaml:"name"`
	Endpoint    string  `yaml:"endpoint"`
	AuthEnvVar  string  `yaml:"auth_env_var"`
	ModelID     string  `yaml:"model_id"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature,omitempty"`
}
