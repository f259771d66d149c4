package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// DefaultGuardrailsYAML contains the embedded default pattern rules.
//
//go:embed defaults/guardrails.yaml
var DefaultGuardrailsYAML []byte
