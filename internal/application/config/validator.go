package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dlwhyte/agentfoundry/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if len(cfg.Models) == 0 {
		return errors.New("at least one model must be configured")
	}
	name := cfg.Preferences.DefaultModel
	if name == "" {
		name = cfg.Models[0].Name
	}
	if _, ok := findModel(cfg, name); !ok {
		return fmt.Errorf("default model %s not found in models list", name)
	}
	if cfg.Preferences.ReviewerModel != "" {
		if _, ok := findModel(cfg, cfg.Preferences.ReviewerModel); !ok {
			return fmt.Errorf("reviewer model %s not found in models list", cfg.Preferences.ReviewerModel)
		}
	}
	if cfg.Preferences.TimeoutSeconds < 0 {
		return fmt.Errorf("preferences.timeout must be >= 0")
	}
	if err := validateSecurity(cfg.Security); err != nil {
		return err
	}
	if err := validatePricing(cfg.Pricing); err != nil {
		return err
	}
	if err := validateCache(cfg.Cache); err != nil {
		return err
	}
	if err := validateHistory(cfg.History); err != nil {
		return err
	}
	return nil
}

func validateSecurity(sec domain.SecuritySettings) error {
	if sec.RulesFile == "" {
		return fmt.Errorf("security.rules_file must be set")
	}
	return nil
}

func validatePricing(prices []domain.ModelPrice) error {
	for _, price := range prices {
		if price.Model == "" {
			return fmt.Errorf("pricing entries must name a model")
		}
		if price.InputPerMTok < 0 || price.OutputPerMTok < 0 {
			return fmt.Errorf("pricing for %s must not be negative", price.Model)
		}
	}
	return nil
}

func validateCache(cache domain.CacheSettings) error {
	ttl := cache.TTL
	if ttl == "" {
		ttl = "1h"
	}
	if _, err := time.ParseDuration(ttl); err != nil {
		return fmt.Errorf("cache.ttl invalid: %w", err)
	}
	if cache.MaxEntries <= 0 {
		return fmt.Errorf("cache.max_entries must be > 0")
	}
	return nil
}

func validateHistory(history domain.HistorySettings) error {
	if history.RetentionDays < 0 {
		return fmt.Errorf("history.retention_days must be >= 0")
	}
	return nil
}

func findModel(cfg domain.Config, name string) (domain.ModelDefinition, bool) {
	for _, model := range cfg.Models {
		if model.Name == name {
			return model, true
		}
	}
	return domain.ModelDefinition{}, false
}
