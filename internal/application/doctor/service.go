// Package doctor runs environment diagnostics: config health, guardrail
// rules, storage reachability, and provider credentials.
package doctor

import (
	"context"
	"fmt"
	"os"
	"strings"

	appconfig "github.com/dlwhyte/agentfoundry/internal/application/config"
	"github.com/dlwhyte/agentfoundry/internal/domain"
	"github.com/dlwhyte/agentfoundry/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Guardrails     ports.GuardrailEngine
	Sessions       ports.SessionRepository
	Cache          ports.CacheRepository
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("loaded, format %s, %d models", cfg.ConfigFormatVersion, len(cfg.Models))))
	}

	checks = append(checks, s.guardrailCheck())
	checks = append(checks, s.historyCheck())
	checks = append(checks, s.cacheCheck())
	checks = append(checks, apiCheck(cfg.Models))

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) guardrailCheck() domain.HealthCheck {
	if s.Guardrails == nil {
		return warn("Guardrail rules", "classifier not initialized")
	}
	total := 0
	for _, kind := range []domain.GuardrailKind{domain.GuardrailInput, domain.GuardrailOutput, domain.GuardrailScope} {
		total += len(s.Guardrails.Rules(kind))
	}
	if total == 0 {
		return fail("Guardrail rules", "no patterns loaded")
	}
	if _, err := s.Guardrails.Classify(domain.GuardrailInput, "hello"); err != nil {
		return fail("Guardrail rules", err.Error())
	}
	return ok("Guardrail rules", fmt.Sprintf("%d patterns compiled", total))
}

func (s *Service) historyCheck() domain.HealthCheck {
	if s.Sessions == nil {
		return warn("Session history", "store not initialized")
	}
	records, err := s.Sessions.Records(1, "")
	if err != nil {
		return fail("Session history", err.Error())
	}
	if len(records) == 0 {
		return ok("Session history", "reachable, no sessions yet")
	}
	return ok("Session history", "reachable")
}

func (s *Service) cacheCheck() domain.HealthCheck {
	if s.Cache == nil {
		return warn("Response cache", "cache not initialized")
	}
	dir := s.Cache.Dir()
	info, err := os.Stat(dir)
	if err != nil {
		return warn("Response cache", fmt.Sprintf("%s not created yet", dir))
	}
	if !info.IsDir() {
		return fail("Response cache", fmt.Sprintf("%s is not a directory", dir))
	}
	return ok("Response cache", dir)
}

func apiCheck(models []domain.ModelDefinition) domain.HealthCheck {
	for _, model := range models {
		switch detectProvider(model.Endpoint, model.Name) {
		case domain.ProviderKindAnthropic:
			if envMissing(model.AuthEnvVar, "ANTHROPIC_API_KEY") {
				return warn("API keys", fmt.Sprintf("ANTHROPIC_API_KEY missing, %s will run simulated", model.Name))
			}
		case domain.ProviderKindOpenAI:
			if envMissing(model.AuthEnvVar, "OPENAI_API_KEY") {
				return warn("API keys", fmt.Sprintf("OPENAI_API_KEY missing, %s will run simulated", model.Name))
			}
		}
	}
	return ok("API keys", "detected for configured providers")
}

func detectProvider(endpoint, name string) domain.ProviderKind {
	switch {
	case strings.Contains(endpoint, "anthropic.com"):
		return domain.ProviderKindAnthropic
	case strings.Contains(endpoint, "openai.com"):
		return domain.ProviderKindOpenAI
	case strings.Contains(endpoint, "11434"), strings.Contains(endpoint, "localhost"), strings.Contains(strings.ToLower(name), "ollama"):
		return domain.ProviderKindOllama
	default:
		return domain.ProviderKindSimulated
	}
}

func envMissing(primary, fallback string) bool {
	if primary != "" && os.Getenv(primary) != "" {
		return false
	}
	if fallback != "" && os.Getenv(fallback) != "" {
		return false
	}
	return true
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
