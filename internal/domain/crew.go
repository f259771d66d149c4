package domain

import "time"

// AgentStatus tracks one crew agent through its lifecycle.
type AgentStatus string

const (
	AgentPending  AgentStatus = "pending"
	AgentRunning  AgentStatus = "running"
	AgentComplete AgentStatus = "complete"
	AgentError    AgentStatus = "error"
)

// AgentSpec defines one member of the research crew.
type AgentSpec struct {
	Name      string
	Role      string
	Goal      string
	Backstory string
}

// AgentTelemetry captures one agent's execution metrics. Token counts
// are estimates derived from text length.
type AgentTelemetry struct {
	AgentName       string
	Role            string
	Duration        time.Duration
	InputTokens     int
	OutputTokens    int
	TotalTokens     int
	APICalls        int
	TaskDescription string
	Output          string
	Status          AgentStatus
	Err             string
}

// CrewTelemetry rolls up metrics for the whole crew run.
type CrewTelemetry struct {
	TotalDuration     time.Duration
	TotalInputTokens  int
	TotalOutputTokens int
	TotalTokens       int
	TotalAPICalls     int
	EstimatedCostUSD  float64
	Agents            []AgentTelemetry
	Provider          string
	Model             string
}

// CrewResult is the outcome of a crew run. Output holds the final
// agent's polished text; TaskOutputs keeps each intermediate handoff.
type CrewResult struct {
	Success     bool
	Output      string
	Err         string
	Provider    string
	Model       string
	TaskOutputs map[string]string
	Telemetry   CrewTelemetry
}
