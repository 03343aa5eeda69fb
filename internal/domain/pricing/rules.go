package pricing

import (
	"fmt"

	"github.com/okian/rentals/internal/domain/model"
	"github.com/shopspring/decimal"
)

// Default rule parameters.
const (
	defaultRegularBase          = "2.00"
	defaultRegularThresholdDays = 3
	defaultRegularExtraRate     = "1.50"

	defaultChildrenBase          = "1.50"
	defaultChildrenThresholdDays = 3
	defaultChildrenExtraRate     = "1.50"

	defaultNewReleaseRate          = "3.00"
	defaultNewReleaseThresholdDays = 1
	defaultNewReleaseBonusPoints   = 1

	basePoints = 1
)

// TieredRule charges Base up to ThresholdDays and ExtraRate per day beyond.
type TieredRule struct {
	Base          decimal.Decimal
	ThresholdDays int
	ExtraRate     decimal.Decimal
}

// LinearRule charges Rate per day and awards BonusPoints past ThresholdDays.
type LinearRule struct {
	Rate          decimal.Decimal
	ThresholdDays int
	BonusPoints   int
}

// Rules holds the parameters of every built-in category.
type Rules struct {
	Regular    TieredRule
	Children   TieredRule
	NewRelease LinearRule
}

// DefaultRules returns the stock price list.
func DefaultRules() Rules {
	return Rules{
		Regular: TieredRule{
			Base:          decimal.RequireFromString(defaultRegularBase),
			ThresholdDays: defaultRegularThresholdDays,
			ExtraRate:     decimal.RequireFromString(defaultRegularExtraRate),
		},
		Children: TieredRule{
			Base:          decimal.RequireFromString(defaultChildrenBase),
			ThresholdDays: defaultChildrenThresholdDays,
			ExtraRate:     decimal.RequireFromString(defaultChildrenExtraRate),
		},
		NewRelease: LinearRule{
			Rate:          decimal.RequireFromString(defaultNewReleaseRate),
			ThresholdDays: defaultNewReleaseThresholdDays,
			BonusPoints:   defaultNewReleaseBonusPoints,
		},
	}
}

// Validate rejects negative prices, thresholds and bonuses.
func (r Rules) Validate() error {
	if err := r.Regular.validate(model.CategoryRegular); err != nil {
		return err
	}
	if err := r.Children.validate(model.CategoryChildren); err != nil {
		return err
	}
	return r.NewRelease.validate(model.CategoryNewRelease)
}

func (t TieredRule) validate(c model.Category) error {
	switch {
	case t.Base.IsNegative():
		return fmt.Errorf("%w: %s base must not be negative", ErrInvalidRules, c)
	case t.ExtraRate.IsNegative():
		return fmt.Errorf("%w: %s extra rate must not be negative", ErrInvalidRules, c)
	case t.ThresholdDays < 0:
		return fmt.Errorf("%w: %s threshold days must not be negative", ErrInvalidRules, c)
	}
	return nil
}

func (l LinearRule) validate(c model.Category) error {
	switch {
	case l.Rate.IsNegative():
		return fmt.Errorf("%w: %s rate must not be negative", ErrInvalidRules, c)
	case l.ThresholdDays < 0:
		return fmt.Errorf("%w: %s threshold days must not be negative", ErrInvalidRules, c)
	case l.BonusPoints < 0:
		return fmt.Errorf("%w: %s bonus points must not be negative", ErrInvalidRules, c)
	}
	return nil
}

func (t TieredRule) charge(days int) model.Charge {
	amount := t.Base
	if days > t.ThresholdDays {
		extra := decimal.NewFromInt(int64(days - t.ThresholdDays))
		amount = amount.Add(extra.Mul(t.ExtraRate))
	}
	return model.Charge{Amount: amount, Points: basePoints}
}

func (l LinearRule) charge(days int) model.Charge {
	points := basePoints
	if days > l.ThresholdDays {
		points += l.BonusPoints
	}
	return model.Charge{Amount: decimal.NewFromInt(int64(days)).Mul(l.Rate), Points: points}
}

type ruleFunc func(days int) model.Charge

// table builds the category dispatch table. Every known category has a row.
func (r Rules) table() map[model.Category]ruleFunc {
	return map[model.Category]ruleFunc{
		model.CategoryRegular:    r.Regular.charge,
		model.CategoryChildren:   r.Children.charge,
		model.CategoryNewRelease: r.NewRelease.charge,
	}
}
