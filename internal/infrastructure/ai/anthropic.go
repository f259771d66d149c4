package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dlwhyte/agentfoundry/internal/domain"
	"github.com/dlwhyte/agentfoundry/internal/ports"
)

type anthropicProvider struct {
	model      domain.ModelDefinition
	httpClient *http.Client
}

func newAnthropicProvider(model domain.ModelDefinition, client *http.Client) ports.Provider {
	return &anthropicProvider{
		model:      model,
		httpClient: client,
	}
}

func (p *anthropicProvider) Name() string {
	return "anthropic"
}

func (p *anthropicProvider) Kind() domain.ProviderKind {
	return domain.ProviderKindAnthropic
}

func (p *anthropicProvider) Model() domain.ModelDefinition {
	return p.model
}

func (p *anthropicProvider) Chat(ctx context.Context, req ports.ChatRequest) (ports.ChatResponse, error) {
	apiKey := resolveAuth(p.model.AuthEnvVar, "ANTHROPIC_API_KEY")
	if apiKey == "" {
		return NewSimulatedProvider(p.model).Chat(ctx, req)
	}

	payload := anthropicRequest{
		Model:     valueOrDefault(p.model.ModelID, "claude-sonnet-4-5-20250929"),
		MaxTokens: valueOrDefaultInt(p.model.MaxTokens, domain.DefaultMaxTokens),
		System:    req.System,
		Messages: []anthropicMessage{
			{
				Role: "user",
				Content: []anthropicContent{
					{Type: "text", Text: req.User},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return ports.ChatResponse{}, err
	}

	endpoint := valueOrDefault(p.model.Endpoint, "https://api.anthropic.com/v1/messages")
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return ports.ChatResponse{}, err
	}
	httpReq.Header.Set("x-api-key", apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")
	httpReq.Header.Set("content-type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return ports.ChatResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return ports.ChatResponse{}, fmt.Errorf("anthropic: %s", resp.Status)
	}

	var decoded anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.ChatResponse{}, err
	}
	return ports.ChatResponse{Reply: strings.TrimSpace(decoded.FirstText())}, nil
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (a anthropicResponse) FirstText() string {
	if len(a.Content) == 0 {
		return ""
	}
	return a.Content[0].Text
}
