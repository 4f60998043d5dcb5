package pricing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"tienda-admin/orderbuilder"
)

const (
	TypePercentage = "percentage"
	TypeFixed      = "fixed"

	ScopeAll             = "all"
	ScopeProducts        = "products"
	ScopeProductsLimited = "products_limited"
)

// PricingConfig represents the discount rules file
type PricingConfig struct {
	Currency string `json:"currency" yaml:"currency"`
	Rules    []Rule `json:"rules" yaml:"rules"`
}

type Rule struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Active      bool            `json:"active" yaml:"active"`
	Priority    int             `json:"priority" yaml:"priority"`
	Type        string          `json:"type" yaml:"type"`
	Value       decimal.Decimal `json:"value" yaml:"value"`
	Scope       string          `json:"scope" yaml:"scope"`
	ProductIDs  []string        `json:"productIds,omitempty" yaml:"productIds,omitempty"`
	MaxUnits    int             `json:"maxUnits,omitempty" yaml:"maxUnits,omitempty"`
	MinSubtotal decimal.Decimal `json:"minSubtotal" yaml:"minSubtotal"`
}

// Suggestion is the discount the engine proposes for a set of line items.
// RuleID is empty when no rule applies.
type Suggestion struct {
	RuleID   string          `json:"ruleId,omitempty"`
	RuleName string          `json:"ruleName,omitempty"`
	Discount decimal.Decimal `json:"discount"`
	Base     decimal.Decimal `json:"base"`
}

// Engine evaluates discount rules loaded from JSON or YAML
type Engine struct {
	config *PricingConfig
}

// NewEngine loads the rules file at configPath. Files ending in .yaml or .yml are read as
// YAML, anything else as JSON.
func NewEngine(configPath string) (*Engine, error) {
	if !filepath.IsAbs(configPath) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		configPath = filepath.Join(wd, configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read pricing config: %w", err)
	}

	var config PricingConfig
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse pricing config: %w", err)
	}

	engine, err := NewEngineFromConfig(config)
	if err != nil {
		return nil, err
	}

	zap.L().Info("✅ PricingEngine: loaded pricing config",
		zap.String("path", configPath), zap.Int("rules", len(config.Rules)))
	return engine, nil
}

// NewEngineFromConfig validates config and sorts its rules by priority (highest first).
func NewEngineFromConfig(config PricingConfig) (*Engine, error) {
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid pricing config: %w", err)
	}

	rules := make([]Rule, len(config.Rules))
	copy(rules, config.Rules)
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	config.Rules = rules

	return &Engine{config: &config}, nil
}

func validateConfig(config *PricingConfig) error {
	if config.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	seen := make(map[string]bool)
	hundred := decimal.NewFromInt(100)
	for i, rule := range config.Rules {
		if rule.ID == "" {
			return fmt.Errorf("rule %d: id is required", i)
		}
		if seen[rule.ID] {
			return fmt.Errorf("rule %s: duplicate id", rule.ID)
		}
		seen[rule.ID] = true

		if rule.Value.IsNegative() {
			return fmt.Errorf("rule %s: value cannot be negative", rule.ID)
		}
		switch rule.Type {
		case TypePercentage:
			if rule.Value.GreaterThan(hundred) {
				return fmt.Errorf("rule %s: percentage must be between 0 and 100", rule.ID)
			}
		case TypeFixed:
		default:
			return fmt.Errorf("rule %s: unknown type %q", rule.ID, rule.Type)
		}

		switch rule.Scope {
		case ScopeAll, "":
		case ScopeProducts:
			if len(rule.ProductIDs) == 0 {
				return fmt.Errorf("rule %s: productIds required for scope %s", rule.ID, rule.Scope)
			}
		case ScopeProductsLimited:
			if len(rule.ProductIDs) == 0 {
				return fmt.Errorf("rule %s: productIds required for scope %s", rule.ID, rule.Scope)
			}
			if rule.MaxUnits <= 0 {
				return fmt.Errorf("rule %s: maxUnits must be positive", rule.ID)
			}
		default:
			return fmt.Errorf("rule %s: unknown scope %q", rule.ID, rule.Scope)
		}
	}
	return nil
}

func (e *Engine) Currency() string {
	return e.config.Currency
}

// Rules returns the rules in evaluation order.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.config.Rules))
	copy(out, e.config.Rules)
	return out
}

// Evaluate returns the first active rule, by priority, that yields a positive discount.
func (e *Engine) Evaluate(items []orderbuilder.LineItem) Suggestion {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.TotalPrice)
	}

	for _, rule := range e.config.Rules {
		if !rule.Active {
			continue
		}
		if subtotal.LessThan(rule.MinSubtotal) {
			zap.L().Debug("💰 Evaluate: rule skipped, subtotal below minimum",
				zap.String("rule", rule.ID), zap.String("subtotal", subtotal.String()))
			continue
		}

		base := ruleBase(rule, items, subtotal)
		discount := ruleDiscount(rule, base)
		if !discount.IsPositive() {
			continue
		}

		zap.L().Info("💰 Evaluate: rule applies",
			zap.String("rule", rule.ID),
			zap.String("base", base.String()),
			zap.String("discount", discount.String()))
		return Suggestion{RuleID: rule.ID, RuleName: rule.Name, Discount: discount, Base: base}
	}

	return Suggestion{Discount: decimal.Zero, Base: decimal.Zero}
}

func ruleBase(rule Rule, items []orderbuilder.LineItem, subtotal decimal.Decimal) decimal.Decimal {
	switch rule.Scope {
	case ScopeProducts:
		base := decimal.Zero
		for _, it := range items {
			if contains(rule.ProductIDs, it.ProductID) {
				base = base.Add(it.TotalPrice)
			}
		}
		return base
	case ScopeProductsLimited:
		base := decimal.Zero
		remaining := rule.MaxUnits
		for _, it := range items {
			if remaining == 0 {
				break
			}
			if !contains(rule.ProductIDs, it.ProductID) {
				continue
			}
			units := it.TotalQuantity
			if units > remaining {
				units = remaining
			}
			base = base.Add(it.PerUnitPrice.Mul(decimal.NewFromInt(int64(units))))
			remaining -= units
		}
		return base
	default:
		return subtotal
	}
}

func ruleDiscount(rule Rule, base decimal.Decimal) decimal.Decimal {
	switch rule.Type {
	case TypePercentage:
		return base.Mul(rule.Value).Div(decimal.NewFromInt(100)).Round(2)
	case TypeFixed:
		if rule.Value.GreaterThan(base) {
			return base
		}
		return rule.Value
	}
	return decimal.Zero
}

// contains checks if a string slice contains a value
func contains(slice []string, value string) bool {
	for _, v := range slice {
		if v == value {
			return true
		}
	}
	return false
}
