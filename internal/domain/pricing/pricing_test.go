package pricing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/rentals/internal/domain/model"
	pricing "github.com/okian/rentals/internal/domain/pricing"
	"github.com/okian/rentals/pkg/logger"
	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestEngine_Charge(t *testing.T) {
	Convey("Given an engine with the default rules", t, func() {
		engine, err := pricing.New()
		So(err, ShouldBeNil)
		ctx := context.Background()
		rules := pricing.DefaultRules()

		Convey("When pricing tiered categories within the threshold", func() {
			Convey("Then the amount should equal the base", func() {
				for _, c := range []struct {
					category model.Category
					rule     pricing.TieredRule
				}{
					{model.CategoryRegular, rules.Regular},
					{model.CategoryChildren, rules.Children},
				} {
					for days := 1; days <= c.rule.ThresholdDays; days++ {
						charge, err := engine.Charge(ctx, c.category, days)
						So(err, ShouldBeNil)
						So(charge.Amount.Equal(c.rule.Base), ShouldBeTrue)
						So(charge.Points, ShouldEqual, 1)
					}
				}
			})
		})

		Convey("When pricing tiered categories past the threshold", func() {
			Convey("Then the extra rate should apply per extra day", func() {
				for _, c := range []struct {
					category model.Category
					rule     pricing.TieredRule
				}{
					{model.CategoryRegular, rules.Regular},
					{model.CategoryChildren, rules.Children},
				} {
					for days := c.rule.ThresholdDays + 1; days <= c.rule.ThresholdDays+10; days++ {
						charge, err := engine.Charge(ctx, c.category, days)
						So(err, ShouldBeNil)
						extra := decimal.NewFromInt(int64(days - c.rule.ThresholdDays)).Mul(c.rule.ExtraRate)
						So(charge.Amount.Equal(c.rule.Base.Add(extra)), ShouldBeTrue)
						So(charge.Points, ShouldEqual, 1)
					}
				}
			})

			Convey("And regular for 5 days should cost 5.00", func() {
				charge, err := engine.Charge(ctx, model.CategoryRegular, 5)
				So(err, ShouldBeNil)
				So(charge.Amount.StringFixed(2), ShouldEqual, "5.00")
			})
		})

		Convey("When pricing a new release", func() {
			Convey("Then the amount should be linear in days", func() {
				for days := 1; days <= 10; days++ {
					charge, err := engine.Charge(ctx, model.CategoryNewRelease, days)
					So(err, ShouldBeNil)
					So(charge.Amount.Equal(decimal.NewFromInt(int64(days)).Mul(rules.NewRelease.Rate)), ShouldBeTrue)
				}
			})

			Convey("And bonus points should apply only past the threshold", func() {
				charge, err := engine.Charge(ctx, model.CategoryNewRelease, rules.NewRelease.ThresholdDays)
				So(err, ShouldBeNil)
				So(charge.Points, ShouldEqual, 1)

				charge, err = engine.Charge(ctx, model.CategoryNewRelease, rules.NewRelease.ThresholdDays+1)
				So(err, ShouldBeNil)
				So(charge.Points, ShouldEqual, 1+rules.NewRelease.BonusPoints)
			})
		})

		Convey("When days is not positive", func() {
			Convey("Then every category should fail with ErrInvalidInput", func() {
				categories := append(model.Categories(), model.Category("documentary"))
				for _, c := range categories {
					for _, days := range []int{0, -1} {
						_, err := engine.Charge(ctx, c, days)
						So(err, ShouldNotBeNil)
						So(errors.Is(err, pricing.ErrInvalidInput), ShouldBeTrue)
					}
				}
			})
		})
	})
}

func TestEngine_UnknownCategory(t *testing.T) {
	Convey("Given an engine with an observed logger", t, func() {
		core, logs := observer.New(zapcore.DebugLevel)
		engine, err := pricing.New(pricing.WithLogger(logger.New(core)))
		So(err, ShouldBeNil)

		Convey("When pricing an unrecognized category", func() {
			charge, err := engine.Charge(context.Background(), model.Category("documentary"), 4)

			Convey("Then it should fall back to a zero charge with one point", func() {
				So(err, ShouldBeNil)
				So(charge.Amount.IsZero(), ShouldBeTrue)
				So(charge.Points, ShouldEqual, 1)
			})

			Convey("And it should emit one warning naming the code", func() {
				So(logs.Len(), ShouldEqual, 1)
				entry := logs.All()[0]
				So(entry.Level, ShouldEqual, zapcore.WarnLevel)
				So(entry.ContextMap()["category"], ShouldEqual, "documentary")
			})
		})

		Convey("When pricing a known category", func() {
			_, err := engine.Charge(context.Background(), model.CategoryRegular, 1)

			Convey("Then nothing should be logged", func() {
				So(err, ShouldBeNil)
				So(logs.Len(), ShouldEqual, 0)
			})
		})
	})
}

func TestEngine_Rules(t *testing.T) {
	Convey("Given custom rules", t, func() {
		rules := pricing.Rules{
			Regular:    pricing.TieredRule{Base: dec("1.00"), ThresholdDays: 1, ExtraRate: dec("0.75")},
			Children:   pricing.TieredRule{Base: dec("0.50"), ThresholdDays: 2, ExtraRate: dec("0.25")},
			NewRelease: pricing.LinearRule{Rate: dec("2.50"), ThresholdDays: 2, BonusPoints: 3},
		}

		Convey("When building an engine with them", func() {
			engine, err := pricing.New(pricing.WithRules(rules))
			So(err, ShouldBeNil)

			Convey("Then charges should follow the custom parameters", func() {
				charge, err := engine.Charge(context.Background(), model.CategoryRegular, 3)
				So(err, ShouldBeNil)
				So(charge.Amount.StringFixed(2), ShouldEqual, "2.50")

				charge, err = engine.Charge(context.Background(), model.CategoryNewRelease, 3)
				So(err, ShouldBeNil)
				So(charge.Amount.StringFixed(2), ShouldEqual, "7.50")
				So(charge.Points, ShouldEqual, 4)

				So(engine.Rules().Children.Base.Equal(dec("0.50")), ShouldBeTrue)
			})
		})

		Convey("When a parameter is negative", func() {
			bad := rules
			bad.Children.ExtraRate = dec("-0.10")
			_, err := pricing.New(pricing.WithRules(bad))

			Convey("Then construction should fail with ErrInvalidRules", func() {
				So(errors.Is(err, pricing.ErrInvalidRules), ShouldBeTrue)
			})

			Convey("And every kind of negative value should be rejected", func() {
				cases := []func(r *pricing.Rules){
					func(r *pricing.Rules) { r.Regular.Base = dec("-1") },
					func(r *pricing.Rules) { r.Regular.ThresholdDays = -1 },
					func(r *pricing.Rules) { r.NewRelease.Rate = dec("-3") },
					func(r *pricing.Rules) { r.NewRelease.ThresholdDays = -2 },
					func(r *pricing.Rules) { r.NewRelease.BonusPoints = -1 },
				}
				for _, mutate := range cases {
					r := pricing.DefaultRules()
					mutate(&r)
					So(errors.Is(r.Validate(), pricing.ErrInvalidRules), ShouldBeTrue)
				}
			})
		})
	})
}

func TestParseDays(t *testing.T) {
	Convey("Given textual day counts", t, func() {
		Convey("When the value is an integer", func() {
			days, err := pricing.ParseDays(" 3 ")
			So(err, ShouldBeNil)
			So(days, ShouldEqual, 3)

			days, err = pricing.ParseDays("-1")
			So(err, ShouldBeNil)
			So(days, ShouldEqual, -1)
		})

		Convey("When the value is not an integer", func() {
			for _, s := range []string{"1.5", "", "three", "2e3"} {
				_, err := pricing.ParseDays(s)
				So(errors.Is(err, pricing.ErrInvalidInput), ShouldBeTrue)
			}
		})
	})
}
