package crew

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dlwhyte/agentfoundry/internal/application/pricing"
	"github.com/dlwhyte/agentfoundry/internal/domain"
	"github.com/dlwhyte/agentfoundry/internal/ports"
)

type stubConfig struct{}

func (stubConfig) Load(context.Context) (domain.Config, error) {
	return domain.Config{
		Preferences: domain.Preferences{DefaultModel: "gpt-4o-mini"},
		Models:      []domain.ModelDefinition{{Name: "gpt-4o-mini"}},
	}, nil
}

type scriptedProvider struct {
	replies []string
	failAt  int
	calls   int
	prompts []ports.ChatRequest
}

func (p *scriptedProvider) Name() string                  { return "stub" }
func (p *scriptedProvider) Kind() domain.ProviderKind     { return domain.ProviderKindSimulated }
func (p *scriptedProvider) Model() domain.ModelDefinition { return domain.ModelDefinition{} }

func (p *scriptedProvider) Chat(_ context.Context, req ports.ChatRequest) (ports.ChatResponse, error) {
	p.calls++
	p.prompts = append(p.prompts, req)
	if p.failAt > 0 && p.calls == p.failAt {
		return ports.ChatResponse{}, errors.New("provider unavailable")
	}
	return ports.ChatResponse{Reply: p.replies[p.calls-1]}, nil
}

type stubFactory struct {
	provider *scriptedProvider
}

func (f *stubFactory) ForModel(domain.ModelDefinition) (ports.Provider, error) {
	return f.provider, nil
}

func TestRunHandsOffBetweenAgents(t *testing.T) {
	provider := &scriptedProvider{replies: []string{"research notes", "draft brief", "final brief"}}
	svc := &Service{
		ConfigProvider:  stubConfig{},
		ProviderFactory: &stubFactory{provider: provider},
		Pricing:         pricing.NewService(nil),
	}

	result, err := svc.Run(RunRequest{Topic: "AI supply chains"})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !result.Success {
		t.Fatalf("crew failed: %s", result.Err)
	}
	if result.Output != "final brief" {
		t.Fatalf("output = %q, want the editor's text", result.Output)
	}
	if provider.calls != 3 {
		t.Fatalf("expected 3 provider calls, got %d", provider.calls)
	}

	// The writer's task embeds the researcher's output, the editor's
	// task embeds the writer's draft.
	if !strings.Contains(provider.prompts[1].User, "research notes") {
		t.Fatal("writer prompt missing research handoff")
	}
	if !strings.Contains(provider.prompts[2].User, "draft brief") {
		t.Fatal("editor prompt missing draft handoff")
	}

	if len(result.TaskOutputs) != 3 {
		t.Fatalf("task outputs = %d, want 3", len(result.TaskOutputs))
	}
}

func TestRunTelemetryRollup(t *testing.T) {
	provider := &scriptedProvider{replies: []string{"aaaa", "bbbb", "cccc"}}
	svc := &Service{
		ConfigProvider:  stubConfig{},
		ProviderFactory: &stubFactory{provider: provider},
		Pricing:         pricing.NewService(nil),
	}

	result, err := svc.Run(RunRequest{Topic: "telemetry"})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	tel := result.Telemetry
	if len(tel.Agents) != 3 {
		t.Fatalf("agent telemetry = %d entries, want 3", len(tel.Agents))
	}
	if tel.TotalAPICalls != 3 {
		t.Fatalf("api calls = %d, want 3", tel.TotalAPICalls)
	}
	var wantTokens int
	for _, agent := range tel.Agents {
		if agent.Status != domain.AgentComplete {
			t.Fatalf("agent %s status %s", agent.AgentName, agent.Status)
		}
		wantTokens += agent.TotalTokens
	}
	if tel.TotalTokens != wantTokens {
		t.Fatalf("token rollup %d != %d", tel.TotalTokens, wantTokens)
	}
	if tel.EstimatedCostUSD <= 0 {
		t.Fatalf("expected a nonzero cost estimate for gpt-4o-mini, got %f", tel.EstimatedCostUSD)
	}
}

func TestRunAbortsWhenAgentFails(t *testing.T) {
	provider := &scriptedProvider{replies: []string{"research notes", "", ""}, failAt: 2}
	svc := &Service{
		ConfigProvider:  stubConfig{},
		ProviderFactory: &stubFactory{provider: provider},
	}

	var seen []domain.AgentTelemetry
	result, err := svc.Run(RunRequest{
		Topic:   "failure paths",
		OnAgent: func(agent domain.AgentTelemetry) { seen = append(seen, agent) },
	})
	if err == nil {
		t.Fatal("expected an error from the failing writer")
	}
	if result.Success {
		t.Fatal("crew must not report success")
	}
	if provider.calls != 2 {
		t.Fatalf("crew should stop after the failure, made %d calls", provider.calls)
	}
	last := result.Telemetry.Agents[len(result.Telemetry.Agents)-1]
	if last.Status != domain.AgentError || last.Err == "" {
		t.Fatalf("failing agent telemetry: %+v", last)
	}
	if len(seen) == 0 {
		t.Fatal("OnAgent callback never fired")
	}
}

func TestRunRequiresTopic(t *testing.T) {
	svc := &Service{ConfigProvider: stubConfig{}, ProviderFactory: &stubFactory{provider: &scriptedProvider{}}}
	if _, err := svc.Run(RunRequest{}); err == nil {
		t.Fatal("empty topic must error")
	}
}
