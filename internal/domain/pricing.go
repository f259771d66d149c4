package domain

// ModelPrice holds per-million-token USD rates for one model.
// Local models are listed with zero rates.
type ModelPrice struct {
	Provider      string  `yaml:"provider"`
	Model         string  `yaml:"model"`
	InputPerMTok  float64 `yaml:"input_per_mtok"`
	OutputPerMTok float64 `yaml:"output_per_mtok"`
}

// Free reports whether the model costs nothing to run.
func (p ModelPrice) Free() bool {
	return p.InputPerMTok == 0 && p.OutputPerMTok == 0
}

// CostEstimate is the projected USD cost of one exchange.
type CostEstimate struct {
	Provider     string
	Model        string
	InputTokens  int
	OutputTokens int
	InputUSD     float64
	OutputUSD    float64
	TotalUSD     float64
}
