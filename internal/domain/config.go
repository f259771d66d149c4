package domain

// Config mirrors ~/.foundry/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Preferences         Preferences       `yaml:"preferences"`
	Models              []ModelDefinition `yaml:"models"`
	Security            SecuritySettings  `yaml:"security"`
	Pricing             []ModelPrice      `yaml:"pricing"`
	Cache               CacheSettings     `yaml:"cache"`
	History             HistorySettings   `yaml:"history"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultModel   string `yaml:"default_model"`
	ReviewerModel  string `yaml:"reviewer_model"`
	TimeoutSeconds int    `yaml:"timeout"`
}

// SecuritySettings defines which guardrail layers are active and where
// the pattern rules live.
type SecuritySettings struct {
	RulesFile string          `yaml:"rules_file"`
	Layers    GuardrailLayers `yaml:"layers"`
}

// GuardrailLayers toggles each defense layer independently.
type GuardrailLayers struct {
	InputFilter    bool `yaml:"input_filter"`
	OutputFilter   bool `yaml:"output_filter"`
	ScopeCheck     bool `yaml:"scope_check"`
	Constitutional bool `yaml:"constitutional"`
	HumanReview    bool `yaml:"human_in_loop"`
}

// CacheSettings controls the provider response cache.
type CacheSettings struct {
	TTL        string `yaml:"ttl"`
	MaxEntries int    `yaml:"max_entries"`
}

// HistorySettings controls session history retention.
type HistorySettings struct {
	RetentionDays int `yaml:"retention_days"`
}
