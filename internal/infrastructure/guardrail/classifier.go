package guardrail

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dlwhyte/agentfoundry/assets"
	"github.com/dlwhyte/agentfoundry/internal/domain"
	"github.com/dlwhyte/agentfoundry/internal/pkg/filesystem"
	"github.com/dlwhyte/agentfoundry/internal/ports"
)

// Three matches saturate the naive risk score.
const riskScoreDivisor = 3.0

// Classifier implements the GuardrailEngine port. It holds one
// compiled registry per pattern-based layer plus the human-review
// keyword list. All matching is case-insensitive and the registries
// are immutable after construction.
type Classifier struct {
	registries map[domain.GuardrailKind][]compiledRule
	review     []*regexp.Regexp
}

type compiledRule struct {
	re   *regexp.Regexp
	rule domain.PatternRule
}

// RulesFile is the YAML schema root.
type RulesFile struct {
	Rules struct {
		InputPatterns  []domain.PatternRule `yaml:"input_patterns"`
		OutputPatterns []domain.PatternRule `yaml:"output_patterns"`
		ScopePatterns  []domain.PatternRule `yaml:"scope_patterns"`
		ReviewKeywords []string             `yaml:"review_keywords"`
	} `yaml:"rules"`
}

// NewClassifier loads pattern rules from disk (or the embedded
// defaults when the file is missing) and compiles every expression.
// A malformed expression fails construction, never a later Classify.
func NewClassifier(path string) (*Classifier, error) {
	rules, err := loadRules(path)
	if err != nil {
		return nil, err
	}
	return newFromRules(rules)
}

// NewClassifierFromDefaults compiles the embedded default rules without
// touching the filesystem. Used as the fallback when the rules file on
// disk cannot be parsed.
func NewClassifierFromDefaults() (*Classifier, error) {
	var rules RulesFile
	if err := yaml.Unmarshal(assets.DefaultGuardrailsYAML, &rules); err != nil {
		return nil, err
	}
	return newFromRules(rules)
}

func newFromRules(rules RulesFile) (*Classifier, error) {
	registries := make(map[domain.GuardrailKind][]compiledRule)
	for kind, patterns := range map[domain.GuardrailKind][]domain.PatternRule{
		domain.GuardrailInput:  rules.Rules.InputPatterns,
		domain.GuardrailOutput: rules.Rules.OutputPatterns,
		domain.GuardrailScope:  rules.Rules.ScopePatterns,
	} {
		compiled, err := compileRegistry(patterns)
		if err != nil {
			return nil, fmt.Errorf("compile %s rules: %w", kind, err)
		}
		registries[kind] = compiled
	}

	var review []*regexp.Regexp
	for _, keyword := range rules.Rules.ReviewKeywords {
		re, err := regexp.Compile("(?i)" + keyword)
		if err != nil {
			return nil, fmt.Errorf("compile review keyword %q: %w", keyword, err)
		}
		review = append(review, re)
	}

	return &Classifier{registries: registries, review: review}, nil
}

func compileRegistry(patterns []domain.PatternRule) ([]compiledRule, error) {
	var compiled []compiledRule
	for _, pattern := range patterns {
		re, err := regexp.Compile("(?i)" + pattern.Expression)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", pattern.Expression, err)
		}
		compiled = append(compiled, compiledRule{re: re, rule: pattern})
	}
	return compiled, nil
}

// Classify implements ports.GuardrailEngine. Every rule in the
// registry is applied; the result lists all fired rules in registry
// order. No match is a normal outcome, not an error.
func (c *Classifier) Classify(kind domain.GuardrailKind, text string) (domain.ClassificationResult, error) {
	if c == nil {
		return domain.ClassificationResult{}, errors.New("classifier nil")
	}
	registry, ok := c.registries[kind]
	if !ok {
		return domain.ClassificationResult{}, fmt.Errorf("no pattern registry for layer %s", kind)
	}

	result := domain.ClassificationResult{Kind: kind}
	for _, entry := range registry {
		if entry.re.MatchString(text) {
			result.Matches = append(result.Matches, domain.RuleMatch{
				Expression: entry.rule.Expression,
				Label:      entry.rule.Label,
			})
		}
	}
	result.Triggered = len(result.Matches) > 0
	result.RiskScore = riskScore(len(result.Matches))
	return result, nil
}

// Rules returns a copy of the registry for display purposes.
func (c *Classifier) Rules(kind domain.GuardrailKind) []domain.PatternRule {
	registry := c.registries[kind]
	rules := make([]domain.PatternRule, 0, len(registry))
	for _, entry := range registry {
		rules = append(rules, entry.rule)
	}
	return rules
}

// ReviewRequired reports whether any human-review keyword appears in
// the text.
func (c *Classifier) ReviewRequired(text string) bool {
	for _, re := range c.review {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func riskScore(matches int) float64 {
	score := float64(matches) / riskScoreDivisor
	if score > 1.0 {
		return 1.0
	}
	return score
}

func loadRules(path string) (RulesFile, error) {
	var rules RulesFile
	path = expandPath(path)
	data, err := os.ReadFile(path)
	if err != nil {
		// fall back to the embedded defaults
		data = assets.DefaultGuardrailsYAML
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return RulesFile{}, err
	}
	if len(rules.Rules.InputPatterns) == 0 && len(rules.Rules.OutputPatterns) == 0 &&
		len(rules.Rules.ScopePatterns) == 0 {
		if err := yaml.Unmarshal(assets.DefaultGuardrailsYAML, &rules); err != nil {
			return RulesFile{}, err
		}
	}
	return rules, nil
}

func expandPath(path string) string {
	if path == "" {
		return filepath.Join(filesystem.UserHomeDir(), ".foundry", "guardrails.yaml")
	}
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Join(filesystem.UserHomeDir(), path)
}

var _ ports.GuardrailEngine = (*Classifier)(nil)
