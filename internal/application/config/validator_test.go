package config

import (
	"testing"

	"github.com/dlwhyte/agentfoundry/internal/domain"
)

func validConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Preferences:         domain.Preferences{DefaultModel: "gpt-4o-mini"},
		Models: []domain.ModelDefinition{
			{Name: "gpt-4o-mini", Endpoint: "https://api.openai.com/v1/chat/completions"},
		},
		Security: domain.SecuritySettings{RulesFile: "~/.foundry/guardrails.yaml"},
		Cache:    domain.CacheSettings{TTL: "1h", MaxEntries: 100},
		History:  domain.HistorySettings{RetentionDays: 30},
	}
}

func TestValidateAcceptsGoodConfig(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.Config)
	}{
		{"no models", func(c *domain.Config) { c.Models = nil }},
		{"missing default model", func(c *domain.Config) { c.Preferences.DefaultModel = "ghost" }},
		{"missing reviewer model", func(c *domain.Config) { c.Preferences.ReviewerModel = "ghost" }},
		{"negative timeout", func(c *domain.Config) { c.Preferences.TimeoutSeconds = -1 }},
		{"no rules file", func(c *domain.Config) { c.Security.RulesFile = "" }},
		{"bad cache ttl", func(c *domain.Config) { c.Cache.TTL = "soon" }},
		{"zero cache entries", func(c *domain.Config) { c.Cache.MaxEntries = 0 }},
		{"negative retention", func(c *domain.Config) { c.History.RetentionDays = -1 }},
		{"unnamed pricing entry", func(c *domain.Config) {
			c.Pricing = []domain.ModelPrice{{Provider: "openai"}}
		}},
		{"negative pricing", func(c *domain.Config) {
			c.Pricing = []domain.ModelPrice{{Model: "gpt-4o", InputPerMTok: -1}}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			if err := Validate(cfg); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidateDefaultsToFirstModel(t *testing.T) {
	cfg := validConfig()
	cfg.Preferences.DefaultModel = ""
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
}
