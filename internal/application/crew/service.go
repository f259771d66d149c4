// Package crew runs the sequential research pipeline: Researcher,
// Writer, Editor, each feeding its output to the next.
package crew

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dlwhyte/agentfoundry/internal/application/pricing"
	"github.com/dlwhyte/agentfoundry/internal/domain"
	"github.com/dlwhyte/agentfoundry/internal/ports"
)

// Service executes the research crew against a configured provider.
type Service struct {
	ConfigProvider  ports.ConfigProvider
	ProviderFactory ports.ProviderFactory
	Pricing         *pricing.Service
	Logger          ports.Logger
}

// RunRequest configures one crew run.
type RunRequest struct {
	Context       context.Context
	Topic         string
	ModelOverride string
	// OnAgent, when set, is called as each agent starts and finishes.
	OnAgent func(domain.AgentTelemetry)
}

// Run drives the three agents in order. A failing agent aborts the
// crew; the partial telemetry survives in the result.
func (s *Service) Run(req RunRequest) (domain.CrewResult, error) {
	if s.ConfigProvider == nil || s.ProviderFactory == nil {
		return domain.CrewResult{}, errors.New("crew.Service dependencies not satisfied")
	}
	if req.Topic == "" {
		return domain.CrewResult{}, errors.New("topic required")
	}
	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.CrewResult{}, fmt.Errorf("load config: %w", err)
	}
	model, err := pickModel(cfg, req.ModelOverride)
	if err != nil {
		return domain.CrewResult{}, err
	}
	provider, err := s.ProviderFactory.ForModel(model)
	if err != nil {
		return domain.CrewResult{}, fmt.Errorf("provider init: %w", err)
	}

	result := domain.CrewResult{
		Provider:    provider.Name(),
		Model:       model.Name,
		TaskOutputs: make(map[string]string),
	}
	telemetry := domain.CrewTelemetry{Provider: provider.Name(), Model: model.Name}
	crewStarted := time.Now()

	prior := ""
	for _, spec := range researchCrew() {
		agent := domain.AgentTelemetry{
			AgentName:       spec.Name,
			Role:            spec.Role,
			TaskDescription: taskPrompt(spec.Name, req.Topic, prior),
			Status:          domain.AgentRunning,
		}
		if req.OnAgent != nil {
			req.OnAgent(agent)
		}
		started := time.Now()

		resp, err := provider.Chat(ctx, ports.ChatRequest{
			System: systemPrompt(spec),
			User:   agent.TaskDescription,
		})
		agent.Duration = time.Since(started)
		agent.APICalls = 1
		agent.InputTokens = pricing.EstimateTokens(systemPrompt(spec) + agent.TaskDescription)

		if err != nil {
			agent.Status = domain.AgentError
			agent.Err = err.Error()
			telemetry.Agents = append(telemetry.Agents, agent)
			if req.OnAgent != nil {
				req.OnAgent(agent)
			}
			result.Err = fmt.Sprintf("%s failed: %v", spec.Name, err)
			result.Telemetry = s.finish(telemetry, crewStarted)
			return result, fmt.Errorf("agent %s: %w", spec.Name, err)
		}

		agent.Output = resp.Reply
		agent.OutputTokens = pricing.EstimateTokens(resp.Reply)
		agent.TotalTokens = agent.InputTokens + agent.OutputTokens
		agent.Status = domain.AgentComplete
		telemetry.Agents = append(telemetry.Agents, agent)
		if req.OnAgent != nil {
			req.OnAgent(agent)
		}

		result.TaskOutputs[spec.Name] = resp.Reply
		prior = resp.Reply

		if s.Logger != nil {
			s.Logger.Debug("agent complete", map[string]interface{}{
				"agent":  spec.Name,
				"tokens": agent.TotalTokens,
			})
		}
	}

	result.Success = true
	result.Output = prior
	result.Telemetry = s.finish(telemetry, crewStarted)
	return result, nil
}

// finish rolls agent metrics up into the crew totals.
func (s *Service) finish(telemetry domain.CrewTelemetry, started time.Time) domain.CrewTelemetry {
	telemetry.TotalDuration = time.Since(started)
	for _, agent := range telemetry.Agents {
		telemetry.TotalInputTokens += agent.InputTokens
		telemetry.TotalOutputTokens += agent.OutputTokens
		telemetry.TotalTokens += agent.TotalTokens
		telemetry.TotalAPICalls += agent.APICalls
	}
	if s.Pricing != nil {
		if estimate, err := s.Pricing.Estimate(telemetry.Model, telemetry.TotalInputTokens, telemetry.TotalOutputTokens); err == nil {
			telemetry.EstimatedCostUSD = estimate.TotalUSD
		}
	}
	return telemetry
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
