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

type ollamaProvider struct {
	model      domain.ModelDefinition
	httpClient *http.Client
}

func newOllamaProvider(model domain.ModelDefinition, client *http.Client) ports.Provider {
	return &ollamaProvider{
		model:      model,
		httpClient: client,
	}
}

func (o *ollamaProvider) Name() string {
	return "ollama"
}

func (o *ollamaProvider) Kind() domain.ProviderKind {
	return domain.ProviderKindOllama
}

func (o *ollamaProvider) Model() domain.ModelDefinition {
	return o.model
}

// Chat uses Ollama's native /api/chat endpoint with streaming off.
func (o *ollamaProvider) Chat(ctx context.Context, req ports.ChatRequest) (ports.ChatResponse, error) {
	payload := ollamaChatRequest{
		Model:    valueOrDefault(o.model.ModelID, "llama3.2"),
		Messages: systemUserMessages(req.System, req.User),
		Stream:   false,
		Options: ollamaOptions{
			Temperature: valueOrDefaultFloat(o.model.Temperature, domain.DefaultTemperature),
			NumPredict:  valueOrDefaultInt(o.model.MaxTokens, domain.DefaultMaxTokens),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return ports.ChatResponse{}, err
	}

	endpoint := valueOrDefault(o.model.Endpoint, "http://localhost:11434/api/chat")
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return ports.ChatResponse{}, err
	}
	httpReq.Header.Set("content-type", "application/json")

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return ports.ChatResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return ports.ChatResponse{}, fmt.Errorf("ollama: %s", resp.Status)
	}

	var decoded ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.ChatResponse{}, err
	}
	return ports.ChatResponse{Reply: strings.TrimSpace(decoded.Message.Content)}, nil
}

type ollamaChatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaChatResponse struct {
	Message chatMessage `json:"message"`
}
