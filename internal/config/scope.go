package config

import (
	"fmt"
	"os"

	"github.com/povarna/generative-ai-agents/legal-advisor/internal/scope"
	"go.yaml.in/yaml/v3"
)

// ScopeConfig is the YAML form of the scope classifier rule table. Keyword
// rules come first, then the category-keyed groups, each in file order.
type ScopeConfig struct {
	OutOfScope       []scope.Rule      `yaml:"out_of_scope"`
	OutOfScopeGroups []scope.RuleGroup `yaml:"out_of_scope_groups"`
	InScope          []scope.Category  `yaml:"in_scope"`
}

func LoadScopeConfig() (*ScopeConfig, error) {
	path := os.Getenv("SCOPE_RULES_PATH")
	if path == "" {
		path = "configs/scope.yaml"
	}

	return loadScopeConfig(path)
}

func loadScopeConfig(path string) (*ScopeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg ScopeConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scope config %s: %w", path, err)
	}

	return &cfg, nil
}

func (c *ScopeConfig) applyDefaults() {
	defaults := scope.DefaultTable()
	if len(c.OutOfScope) == 0 && len(c.OutOfScopeGroups) == 0 {
		c.OutOfScope = defaults.OutOfScope
	}
	if len(c.InScope) == 0 {
		c.InScope = defaults.InScope
	}
}

func (c *ScopeConfig) Validate() error {
	return c.Table().Validate()
}

// Table converts the configuration into the classifier's rule table.
func (c *ScopeConfig) Table() scope.Table {
	grouped := scope.CategoryTable(c.OutOfScopeGroups, nil)

	rules := make([]scope.Rule, 0, len(c.OutOfScope)+len(grouped.OutOfScope))
	rules = append(rules, c.OutOfScope...)
	rules = append(rules, grouped.OutOfScope...)

	return scope.Table{
		OutOfScope: rules,
		InScope:    c.InScope,
	}
}
