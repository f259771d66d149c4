package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dlwhyte/agentfoundry/internal/domain"
	"github.com/dlwhyte/agentfoundry/internal/ports"
)

type openAIProvider struct {
	model      domain.ModelDefinition
	httpClient *http.Client
}

func newOpenAIProvider(model domain.ModelDefinition, client *http.Client) ports.Provider {
	return &openAIProvider{
		model:      model,
		httpClient: client,
	}
}

func (p *openAIProvider) Name() string {
	return "openai"
}

func (p *openAIProvider) Kind() domain.ProviderKind {
	return domain.ProviderKindOpenAI
}

func (p *openAIProvider) Model() domain.ModelDefinition {
	return p.model
}

func (p *openAIProvider) Chat(ctx context.Context, req ports.ChatRequest) (ports.ChatResponse, error) {
	apiKey := resolveAuth(p.model.AuthEnvVar, "OPENAI_API_KEY")
	if apiKey == "" {
		return NewSimulatedProvider(p.model).Chat(ctx, req)
	}

	payload := chatCompletionRequest{
		Model:       valueOrDefault(p.model.ModelID, "gpt-4o-mini"),
		MaxTokens:   valueOrDefaultInt(p.model.MaxTokens, domain.DefaultMaxTokens),
		Temperature: valueOrDefaultFloat(p.model.Temperature, domain.DefaultTemperature),
		Messages:    systemUserMessages(req.System, req.User),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return ports.ChatResponse{}, err
	}

	endpoint := valueOrDefault(p.model.Endpoint, "https://api.openai.com/v1/chat/completions")
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return ports.ChatResponse{}, err
	}
	httpReq.Header.Set("authorization", "Bearer "+apiKey)
	httpReq.Header.Set("content-type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return ports.ChatResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return ports.ChatResponse{}, fmt.Errorf("openai: %s", resp.Status)
	}

	var decoded chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.ChatResponse{}, err
	}
	return ports.ChatResponse{Reply: decoded.FirstMessage()}, nil
}
