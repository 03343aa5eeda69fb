// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and RENTALS_ env vars.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"fmt"

	"github.com/okian/rentals/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoder: console or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataPath points at a YAML dataset; empty means the built-in sample.
	DataPath string `koanf:"data_path"`

	// Pricing holds the per-category rule parameters.
	Pricing PricingConfig `koanf:"pricing"`
}

// PricingConfig mirrors pricing.Rules with decimal amounts kept as strings.
type PricingConfig struct {
	Regular    TieredRuleConfig `koanf:"regular"`
	Children   TieredRuleConfig `koanf:"children"`
	NewRelease LinearRuleConfig `koanf:"new_release"`
}

// TieredRuleConfig configures a base-plus-extra-days rule.
type TieredRuleConfig struct {
	Base          string `koanf:"base"`
	ThresholdDays int    `koanf:"threshold_days"`
	ExtraRate     string `koanf:"extra_rate"`
}

// LinearRuleConfig configures a per-day rule with bonus points.
type LinearRuleConfig struct {
	Rate          string `koanf:"rate"`
	ThresholdDays int    `koanf:"threshold_days"`
	BonusPoints   int    `koanf:"bonus_points"`
}

// New creates a Config populated with defaults.
func New() *Config {
	rules := pricing.DefaultRules()
	return &Config{
		LogLevel:  "info",
		LogFormat: "console",
		Addr:      ":9080",
		Pricing: PricingConfig{
			Regular:  tieredFromRule(rules.Regular),
			Children: tieredFromRule(rules.Children),
			NewRelease: LinearRuleConfig{
				Rate:          rules.NewRelease.Rate.StringFixed(2),
				ThresholdDays: rules.NewRelease.ThresholdDays,
				BonusPoints:   rules.NewRelease.BonusPoints,
			},
		},
	}
}

func tieredFromRule(r pricing.TieredRule) TieredRuleConfig {
	return TieredRuleConfig{
		Base:          r.Base.StringFixed(2),
		ThresholdDays: r.ThresholdDays,
		ExtraRate:     r.ExtraRate.StringFixed(2),
	}
}

// Rules converts the pricing section into validated engine rules.
func (c *Config) Rules() (pricing.Rules, error) {
	var (
		rules pricing.Rules
		err   error
	)
	if rules.Regular, err = c.Pricing.Regular.rule("regular"); err != nil {
		return pricing.Rules{}, err
	}
	if rules.Children, err = c.Pricing.Children.rule("children"); err != nil {
		return pricing.Rules{}, err
	}
	if rules.NewRelease, err = c.Pricing.NewRelease.rule("new_release"); err != nil {
		return pricing.Rules{}, err
	}
	if err := rules.Validate(); err != nil {
		return pricing.Rules{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return rules, nil
}

func (t TieredRuleConfig) rule(name string) (pricing.TieredRule, error) {
	base, err := parseAmount(name, "base", t.Base)
	if err != nil {
		return pricing.TieredRule{}, err
	}
	extra, err := parseAmount(name, "extra_rate", t.ExtraRate)
	if err != nil {
		return pricing.TieredRule{}, err
	}
	return pricing.TieredRule{Base: base, ThresholdDays: t.ThresholdDays, ExtraRate: extra}, nil
}

func (l LinearRuleConfig) rule(name string) (pricing.LinearRule, error) {
	rate, err := parseAmount(name, "rate", l.Rate)
	if err != nil {
		return pricing.LinearRule{}, err
	}
	return pricing.LinearRule{Rate: rate, ThresholdDays: l.ThresholdDays, BonusPoints: l.BonusPoints}, nil
}

func parseAmount(rule, field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: pricing.%s.%s: %q is not a decimal", ErrInvalidConfig, rule, field, value)
	}
	return d, nil
}
