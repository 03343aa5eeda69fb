// Package pricing computes rental charges and frequent renter points.
package pricing

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/rentals/internal/domain/model"
	"github.com/okian/rentals/pkg/logger"
	"github.com/okian/rentals/pkg/metrics"
	"github.com/shopspring/decimal"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithRules replaces the default price list.
func WithRules(rules Rules) Option {
	return func(e *Engine) {
		e.rules = rules
	}
}

// WithLogger sets the logger that receives unknown-category notices.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Pricer prices a single rental.
type Pricer interface {
	Charge(ctx context.Context, category model.Category, days int) (model.Charge, error)
}

// Engine implements Pricer with a fixed per-category rule table.
// It holds no mutable state after New returns.
type Engine struct {
	rules  Rules
	table  map[model.Category]ruleFunc
	logger logger.Logger
}

// New creates an engine. It fails with ErrInvalidRules when the rules do not validate.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		rules:  DefaultRules(),
		logger: logger.Nop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if err := e.rules.Validate(); err != nil {
		return nil, err
	}
	e.table = e.rules.table()
	return e, nil
}

// Rules returns a copy of the rule parameters in use.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Charge prices a rental of days for category.
//
// An unknown category is not an error: it yields a zero amount with the base
// point and logs a warning.
func (e *Engine) Charge(ctx context.Context, category model.Category, days int) (model.Charge, error) {
	if days <= 0 {
		return model.Charge{}, fmt.Errorf("%w: days must be a positive integer, got %d", ErrInvalidInput, days)
	}

	rule, ok := e.table[category]
	if !ok {
		e.logger.Warn(ctx, "unrecognized movie category; charging zero",
			logger.String("category", string(category)),
			logger.Int("days", days),
		)
		metrics.RecordUnknownCategory(string(category))
		return model.Charge{Amount: decimal.Zero, Points: basePoints}, nil
	}

	metrics.RecordChargeComputed(string(category))
	return rule(days), nil
}

// ParseDays parses a textual day count. Non-integers fail with ErrInvalidInput;
// range checks are left to Charge.
func ParseDays(s string) (int, error) {
	s = strings.TrimSpace(s)
	days, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: days must be an integer, got %q", ErrInvalidInput, s)
	}
	return days, nil
}
