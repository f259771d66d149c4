package domain

import "time"

// SessionRecord captures one live attack run for the history store.
type SessionRecord struct {
	ID         string         `json:"id"`
	Timestamp  time.Time      `json:"timestamp"`
	Provider   string         `json:"provider"`
	Model      string         `json:"model"`
	Prompt     string         `json:"prompt"`
	Outcome    SessionOutcome `json:"outcome"`
	BlockedBy  []string       `json:"blocked_by,omitempty"`
	BreachType string         `json:"breach_type,omitempty"`
	Simulated  bool           `json:"simulated"`
	DurationMS int64          `json:"duration_ms"`
}

// CacheEntry stores one cached provider reply.
type CacheEntry struct {
	Key       string    `json:"key"`
	Model     string    `json:"model"`
	Reply     string    `json:"reply"`
	CreatedAt time.Time `json:"created_at"`
}
