// Package pricing estimates API spend from token counts.
package pricing

import (
	"fmt"
	"sort"

	"github.com/dlwhyte/agentfoundry/internal/domain"
)

// Service answers cost questions against a merged pricing table.
type Service struct {
	table []domain.ModelPrice
}

// NewService merges config overrides over the built-in rates. An
// override with a known model name replaces the default entry.
func NewService(overrides []domain.ModelPrice) *Service {
	table := defaultTable()
	for _, override := range overrides {
		replaced := false
		for i, price := range table {
			if price.Model == override.Model {
				table[i] = override
				replaced = true
				break
			}
		}
		if !replaced {
			table = append(table, override)
		}
	}
	return &Service{table: table}
}

// EstimateTokens approximates the token count of a text. Roughly four
// characters per token, matching the usual tokenizer ballpark.
func EstimateTokens(text string) int {
	return len(text) / 4
}

// Table returns the merged pricing table.
func (s *Service) Table() []domain.ModelPrice {
	return s.table
}

// Price looks up rates by model name.
func (s *Service) Price(model string) (domain.ModelPrice, bool) {
	for _, price := range s.table {
		if price.Model == model {
			return price, true
		}
	}
	return domain.ModelPrice{}, false
}

// Estimate computes USD cost for a token budget on one model.
func (s *Service) Estimate(model string, inputTokens int, outputTokens int) (domain.CostEstimate, error) {
	price, ok := s.Price(model)
	if !ok {
		return domain.CostEstimate{}, fmt.Errorf("no pricing for model %q", model)
	}
	inputUSD := float64(inputTokens) / 1_000_000 * price.InputPerMTok
	outputUSD := float64(outputTokens) / 1_000_000 * price.OutputPerMTok
	return domain.CostEstimate{
		Provider:     price.Provider,
		Model:        price.Model,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		InputUSD:     inputUSD,
		OutputUSD:    outputUSD,
		TotalUSD:     inputUSD + outputUSD,
	}, nil
}

// EstimateText estimates the cost of sending a text and receiving
// expectedOutputTokens back.
func (s *Service) EstimateText(model string, text string, expectedOutputTokens int) (domain.CostEstimate, error) {
	return s.Estimate(model, EstimateTokens(text), expectedOutputTokens)
}

// Compare ranks every known model by cost for the same token budget,
// cheapest first. Free local models sort to the top.
func (s *Service) Compare(inputTokens int, outputTokens int) []domain.CostEstimate {
	estimates := make([]domain.CostEstimate, 0, len(s.table))
	for _, price := range s.table {
		estimate, err := s.Estimate(price.Model, inputTokens, outputTokens)
		if err != nil {
			continue
		}
		estimates = append(estimates, estimate)
	}
	sort.SliceStable(estimates, func(i, j int) bool {
		return estimates[i].TotalUSD < estimates[j].TotalUSD
	})
	return estimates
}
