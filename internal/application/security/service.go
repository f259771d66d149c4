// Package security orchestrates the attack demo and live guardrail
// pipeline end-to-end.
package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dlwhyte/agentfoundry/internal/domain"
	"github.com/dlwhyte/agentfoundry/internal/ports"
)

// Service runs attack scenarios against the simulated TechStore agent,
// with or without guardrail layers in the path.
type Service struct {
	ConfigProvider  ports.ConfigProvider
	Guardrails      ports.GuardrailEngine
	ProviderFactory ports.ProviderFactory
	Simulator       ports.VulnerableSimulator
	Catalog         ports.ScenarioCatalog
	Sessions        ports.SessionRepository
	Cache           ports.CacheRepository
	Logger          ports.Logger
}

// LiveRequest is one prompt sent through the live pipeline.
type LiveRequest struct {
	Context       context.Context
	Prompt        string
	ModelOverride string
	// Layers overrides the configured toggles when non-nil.
	Layers *domain.GuardrailLayers
}

// GuardrailHit names one layer and what it caught.
type GuardrailHit struct {
	Kind   domain.GuardrailKind
	Labels []string
}

// LiveResult is the outcome of one live run.
type LiveResult struct {
	Outcome    domain.SessionOutcome
	Reply      string
	Simulated  bool
	Provider   string
	Model      string
	BlockedBy  []GuardrailHit
	BreachType string
	// WouldCatch lists the layers that would have stopped a breach,
	// shown when the run had no guardrails active.
	WouldCatch []GuardrailHit
	Verdict    *domain.ReviewVerdict
	DurationMS int64
}

// DemoResult pairs a scenario with the layers currently enabled.
type DemoResult struct {
	Scenario     domain.AttackScenario
	ActiveLayers []domain.GuardrailKind
}

// Demo returns a pre-built scenario walkthrough. No provider call is
// made; demo mode works without any API key.
func (s *Service) Demo(ctx context.Context, name string) (DemoResult, error) {
	if s.Catalog == nil || s.ConfigProvider == nil {
		return DemoResult{}, errors.New("security.Service dependencies not satisfied")
	}
	scenario, ok := s.Catalog.Scenario(name)
	if !ok {
		return DemoResult{}, fmt.Errorf("unknown scenario %q", name)
	}
	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return DemoResult{}, fmt.Errorf("load config: %w", err)
	}
	return DemoResult{Scenario: scenario, ActiveLayers: cfg.EnabledGuardrails()}, nil
}

// Scenarios lists the demo catalog.
func (s *Service) Scenarios() []domain.AttackScenario {
	if s.Catalog == nil {
		return nil
	}
	return s.Catalog.Scenarios()
}

// TestGuardrail runs one layer against arbitrary text without touching
// a provider.
func (s *Service) TestGuardrail(kind domain.GuardrailKind, text string) (domain.ClassificationResult, error) {
	if s.Guardrails == nil {
		return domain.ClassificationResult{}, errors.New("guardrail engine not configured")
	}
	switch kind {
	case domain.GuardrailInput, domain.GuardrailOutput, domain.GuardrailScope:
		return s.Guardrails.Classify(kind, text)
	case domain.GuardrailHumanReview:
		result := domain.ClassificationResult{Kind: kind}
		if s.Guardrails.ReviewRequired(text) {
			result.Triggered = true
			result.Matches = []domain.RuleMatch{{Label: "Action requires human approval"}}
			result.RiskScore = 1.0
		}
		return result, nil
	case domain.GuardrailConstitutional:
		return domain.ClassificationResult{}, errors.New("constitutional review needs a live provider, use attack live")
	default:
		return domain.ClassificationResult{}, fmt.Errorf("unknown guardrail %q", kind)
	}
}

// Live sends the prompt through the full pipeline: pre-LLM layers,
// provider call, post-LLM layers. The run is recorded in the session
// history regardless of outcome.
func (s *Service) Live(req LiveRequest) (LiveResult, error) {
	if s.ConfigProvider == nil || s.Guardrails == nil || s.ProviderFactory == nil || s.Simulator == nil {
		return LiveResult{}, errors.New("security.Service dependencies not satisfied")
	}
	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}
	started := time.Now()

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return LiveResult{}, fmt.Errorf("load config: %w", err)
	}
	layers := cfg.Security.Layers
	if req.Layers != nil {
		layers = *req.Layers
	}

	model, err := pickModel(cfg, req.ModelOverride)
	if err != nil {
		return LiveResult{}, err
	}
	provider, err := s.ProviderFactory.ForModel(model)
	if err != nil {
		return LiveResult{}, fmt.Errorf("provider init: %w", err)
	}

	result := LiveResult{Provider: provider.Name(), Model: model.Name}

	// Pre-LLM layers stop the prompt before any provider call.
	result.BlockedBy = s.preLLMHits(layers, req.Prompt)
	if len(result.BlockedBy) > 0 {
		result.Outcome = domain.OutcomeBlocked
		result.DurationMS = time.Since(started).Milliseconds()
		s.record(req.Prompt, result)
		return result, nil
	}

	anyActive := layers.InputFilter || layers.OutputFilter || layers.ScopeCheck ||
		layers.Constitutional || layers.HumanReview

	if !anyActive && provider.Kind().IsFrontier() {
		// Frontier safety training resists injection, so an unguarded
		// run substitutes a canned breach to keep the lesson visible.
		if reply, breach, ok := s.Simulator.Simulate(req.Prompt); ok {
			result.Outcome = domain.OutcomeSimulated
			result.Reply = reply
			result.Simulated = true
			result.BreachType = breach
			result.WouldCatch = s.wouldCatch(req.Prompt, reply)
			result.DurationMS = time.Since(started).Milliseconds()
			s.record(req.Prompt, result)
			return result, nil
		}
	}

	if !anyActive && !provider.Kind().IsFrontier() {
		// Real call with the deliberately vulnerable prompt. The output
		// registry runs unconditionally here to detect a genuine breach.
		resp, err := provider.Chat(ctx, ports.ChatRequest{
			System: domain.VulnerableAgentPrompt,
			User:   req.Prompt,
		})
		if err != nil {
			return LiveResult{}, fmt.Errorf("provider chat: %w", err)
		}
		result.Reply = resp.Reply
		result.Simulated = resp.Simulated
		check, err := s.Guardrails.Classify(domain.GuardrailOutput, resp.Reply)
		if err != nil {
			return LiveResult{}, err
		}
		if check.Triggered {
			result.Outcome = domain.OutcomeBreach
			result.BreachType = joinLabels(check.Labels())
		} else {
			result.Outcome = domain.OutcomeUnprotected
		}
		result.DurationMS = time.Since(started).Milliseconds()
		s.record(req.Prompt, result)
		return result, nil
	}

	reply, simulated, err := s.hardenedReply(ctx, provider, model, req.Prompt)
	if err != nil {
		return LiveResult{}, err
	}
	result.Reply = reply
	result.Simulated = simulated

	if layers.OutputFilter {
		check, err := s.Guardrails.Classify(domain.GuardrailOutput, reply)
		if err != nil {
			return LiveResult{}, err
		}
		if check.Triggered {
			result.Outcome = domain.OutcomeIntercepted
			result.BlockedBy = []GuardrailHit{{Kind: domain.GuardrailOutput, Labels: check.Labels()}}
			result.DurationMS = time.Since(started).Milliseconds()
			s.record(req.Prompt, result)
			return result, nil
		}
	}

	if layers.Constitutional {
		verdict, err := s.review(ctx, cfg, reply, req.Prompt)
		if err != nil {
			return LiveResult{}, err
		}
		result.Verdict = &verdict
		if !verdict.Safe {
			result.Outcome = domain.OutcomeFlagged
			result.BlockedBy = []GuardrailHit{{Kind: domain.GuardrailConstitutional, Labels: verdict.Violations}}
			result.DurationMS = time.Since(started).Milliseconds()
			s.record(req.Prompt, result)
			return result, nil
		}
	}

	if anyActive {
		result.Outcome = domain.OutcomePassed
	} else {
		result.Outcome = domain.OutcomeUnprotected
	}
	result.DurationMS = time.Since(started).Milliseconds()
	s.record(req.Prompt, result)
	return result, nil
}

// hardenedReply calls the provider with the hardened agent prompt,
// consulting the response cache first.
func (s *Service) hardenedReply(ctx context.Context, provider ports.Provider, model domain.ModelDefinition, prompt string) (string, bool, error) {
	key := cacheKey(model.Name, domain.HardenedAgentPrompt, prompt)
	if s.Cache != nil {
		if entry, ok, err := s.Cache.Get(key); err == nil && ok {
			return entry.Reply, false, nil
		}
	}
	resp, err := provider.Chat(ctx, ports.ChatRequest{
		System: domain.HardenedAgentPrompt,
		User:   prompt,
	})
	if err != nil {
		return "", false, fmt.Errorf("provider chat: %w", err)
	}
	if s.Cache != nil && !resp.Simulated {
		_ = s.Cache.Set(domain.CacheEntry{
			Key:       key,
			Model:     model.Name,
			Reply:     resp.Reply,
			CreatedAt: time.Now(),
		})
	}
	return resp.Reply, resp.Simulated, nil
}

func (s *Service) preLLMHits(layers domain.GuardrailLayers, prompt string) []GuardrailHit {
	var hits []GuardrailHit
	if layers.InputFilter {
		if check, err := s.Guardrails.Classify(domain.GuardrailInput, prompt); err == nil && check.Triggered {
			hits = append(hits, GuardrailHit{Kind: domain.GuardrailInput, Labels: check.Labels()})
		}
	}
	if layers.ScopeCheck {
		if check, err := s.Guardrails.Classify(domain.GuardrailScope, prompt); err == nil && check.Triggered {
			hits = append(hits, GuardrailHit{Kind: domain.GuardrailScope, Labels: check.Labels()})
		}
	}
	if layers.HumanReview && s.Guardrails.ReviewRequired(prompt) {
		hits = append(hits, GuardrailHit{Kind: domain.GuardrailHumanReview, Labels: []string{"Action requires human approval"}})
	}
	return hits
}

// wouldCatch reports which layers would have stopped the breached
// exchange, for the post-mortem shown after a simulated breach.
func (s *Service) wouldCatch(prompt string, reply string) []GuardrailHit {
	var hits []GuardrailHit
	if check, err := s.Guardrails.Classify(domain.GuardrailInput, prompt); err == nil && check.Triggered {
		hits = append(hits, GuardrailHit{Kind: domain.GuardrailInput, Labels: check.Labels()})
	}
	if check, err := s.Guardrails.Classify(domain.GuardrailOutput, reply); err == nil && check.Triggered {
		hits = append(hits, GuardrailHit{Kind: domain.GuardrailOutput, Labels: check.Labels()})
	}
	if check, err := s.Guardrails.Classify(domain.GuardrailScope, prompt); err == nil && check.Triggered {
		hits = append(hits, GuardrailHit{Kind: domain.GuardrailScope, Labels: check.Labels()})
	}
	return hits
}

func (s *Service) record(prompt string, result LiveResult) {
	if s.Sessions == nil {
		return
	}
	rec := domain.SessionRecord{
		ID:         uuid.NewString(),
		Timestamp:  time.Now(),
		Provider:   result.Provider,
		Model:      result.Model,
		Prompt:     prompt,
		Outcome:    result.Outcome,
		BreachType: result.BreachType,
		Simulated:  result.Simulated,
		DurationMS: result.DurationMS,
	}
	for _, hit := range result.BlockedBy {
		rec.BlockedBy = append(rec.BlockedBy, string(hit.Kind))
	}
	if err := s.Sessions.Save(rec); err != nil && s.Logger != nil {
		s.Logger.Warn("session save failed", map[string]interface{}{"error": err.Error()})
	}
}

func pickModel(cfg domain.Config, override string) (domain.ModelDefinition, error) {
	name := override
	if name == "" {
		name = cfg.Preferences.DefaultModel
	}
	if name == "" && len(cfg.Models) > 0 {
		return cfg.Models[0], nil
	}
	for _, model := range cfg.Models {
		if model.Name == name {
			return model, nil
		}
	}
	return domain.ModelDefinition{}, fmt.Errorf("model %s not configured", name)
}

func cacheKey(model string, system string, prompt string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + system + "\x00" + prompt))
	return hex.EncodeToString(sum[:])
}

func joinLabels(labels []string) string {
	out := ""
	for i, label := range labels {
		if i > 0 {
			out += ", "
		}
		out += label
	}
	return out
}
