package domain

import "fmt"

// GetDefaultModel retrieves the default model definition from configuration.
// Returns an error if the default model is not found.
func (c *Config) GetDefaultModel() (ModelDefinition, error) {
	if c.Preferences.DefaultModel == "" {
		return ModelDefinition{}, fmt.Errorf("no default model configured")
	}

	for _, model := range c.Models {
		if model.Name == c.Preferences.DefaultModel {
			return model, nil
		}
	}

	return ModelDefinition{}, fmt.Errorf("default model %s not found in configuration", c.Preferences.DefaultModel)
}

// FindModelByName searches for a model by its name.
func (c *Config) FindModelByName(name string) (ModelDefinition, bool) {
	for _, model := range c.Models {
		if model.Name == name {
			return model, true
		}
	}
	return ModelDefinition{}, false
}

// HasModel checks if a model with the given name exists in the configuration.
func (c *Config) HasModel(name string) bool {
	_, exists := c.FindModelByName(name)
	return exists
}

// SetDefaultModel changes the default model, verifying it exists.
func (c *Config) SetDefaultModel(name string) error {
	if !c.HasModel(name) {
		return fmt.Errorf("model %s not found in configuration", name)
	}
	c.Preferences.DefaultModel = name
	return nil
}

// AddModel appends a model definition. Names must be unique.
func (c *Config) AddModel(model ModelDefinition) error {
	if c.HasModel(model.Name) {
		return fmt.Errorf("model %s already exists", model.Name)
	}
	c.Models = append(c.Models, model)
	return nil
}

// RemoveModel deletes a model definition by name. The default model
// cannot be removed.
func (c *Config) RemoveModel(name string) error {
	if c.Preferences.DefaultModel == name {
		return fmt.Errorf("model %s is the default model, pick another default first", name)
	}
	for i, model := range c.Models {
		if model.Name == name {
			c.Models = append(c.Models[:i], c.Models[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("model %s not found in configuration", name)
}

// GetReviewerModel returns the model used by the constitutional
// reviewer, falling back to the default model when unset.
func (c *Config) GetReviewerModel() (ModelDefinition, error) {
	if c.Preferences.ReviewerModel != "" {
		if model, ok := c.FindModelByName(c.Preferences.ReviewerModel); ok {
			return model, nil
		}
		return ModelDefinition{}, fmt.Errorf("reviewer model %s not found in configuration", c.Preferences.ReviewerModel)
	}
	return c.GetDefaultModel()
}

// EnabledGuardrails returns the active layers in pipeline order.
func (c *Config) EnabledGuardrails() []GuardrailKind {
	var kinds []GuardrailKind
	if c.Security.Layers.InputFilter {
		kinds = append(kinds, GuardrailInput)
	}
	if c.Security.Layers.ScopeCheck {
		kinds = append(kinds, GuardrailScope)
	}
	if c.Security.Layers.HumanReview {
		kinds = append(kinds, GuardrailHumanReview)
	}
	if c.Security.Layers.OutputFilter {
		kinds = append(kinds, GuardrailOutput)
	}
	if c.Security.Layers.Constitutional {
		kinds = append(kinds, GuardrailConstitutional)
	}
	return kinds
}

// SetGuardrail toggles a single layer by kind.
func (c *Config) SetGuardrail(kind GuardrailKind, enabled bool) error {
	switch kind {
	case GuardrailInput:
		c.Security.Layers.InputFilter = enabled
	case GuardrailOutput:
		c.Security.Layers.OutputFilter = enabled
	case GuardrailScope:
		c.Security.Layers.ScopeCheck = enabled
	case GuardrailConstitutional:
		c.Security.Layers.Constitutional = enabled
	case GuardrailHumanReview:
		c.Security.Layers.HumanReview = enabled
	default:
		return fmt.Errorf("unknown guardrail layer: %s", kind)
	}
	return nil
}

// GetTimeoutSeconds returns the provider call timeout in seconds.
func (c *Config) GetTimeoutSeconds() int {
	const defaultTimeoutSeconds = 60

	if c.Preferences.TimeoutSeconds <= 0 {
		return defaultTimeoutSeconds
	}
	return c.Preferences.TimeoutSeconds
}

// GetCacheMaxEntries returns the maximum number of cache entries.
func (c *Config) GetCacheMaxEntries() int {
	if c.Cache.MaxEntries <= 0 {
		return DefaultMaxCacheEntries
	}
	return c.Cache.MaxEntries
}

// GetHistoryRetentionDays returns the number of days to retain session history.
func (c *Config) GetHistoryRetentionDays() int {
	if c.History.RetentionDays <= 0 {
		return DefaultHistoryRetainDays
	}
	return c.History.RetentionDays
}

// ValidateConsistency checks the internal consistency of the configuration.
func (c *Config) ValidateConsistency() error {
	if c.Preferences.DefaultModel != "" && !c.HasModel(c.Preferences.DefaultModel) {
		return fmt.Errorf("default model %s does not exist in models list", c.Preferences.DefaultModel)
	}
	if c.Preferences.ReviewerModel != "" && !c.HasModel(c.Preferences.ReviewerModel) {
		return fmt.Errorf("reviewer model %s does not exist in models list", c.Preferences.ReviewerModel)
	}
	if c.Preferences.DefaultModel != "" && len(c.Models) == 0 {
		return fmt.Errorf("default model is set but no models are configured")
	}
	return nil
}
