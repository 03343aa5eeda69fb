package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/rentals/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.Pricing.Regular.Base, convey.ShouldEqual, "2.00")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("RENTALS_ADDR", ":8080")
			_ = os.Setenv("RENTALS_LOG_LEVEL", "debug")
			_ = os.Setenv("RENTALS_DATA_PATH", "/tmp/data.yaml")
			_ = os.Setenv("RENTALS_PRICING__REGULAR__BASE", "2.50")
			_ = os.Setenv("RENTALS_PRICING__NEW_RELEASE__BONUS_POINTS", "2")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.DataPath, convey.ShouldEqual, "/tmp/data.yaml")
				convey.So(cfg.Pricing.Regular.Base, convey.ShouldEqual, "2.50")
				convey.So(cfg.Pricing.Regular.ExtraRate, convey.ShouldEqual, "1.50") // default kept
				convey.So(cfg.Pricing.NewRelease.BonusPoints, convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
log_format: json
pricing:
  children:
    base: 1.25
    threshold_days: 4
  new_release:
    rate: "3.25"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("RENTALS_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.Pricing.Children.Base, convey.ShouldEqual, "1.25")
				convey.So(cfg.Pricing.Children.ThresholdDays, convey.ShouldEqual, 4)
				convey.So(cfg.Pricing.Children.ExtraRate, convey.ShouldEqual, "1.50")
				convey.So(cfg.Pricing.NewRelease.Rate, convey.ShouldEqual, "3.25")

				rules, err := cfg.Rules()
				convey.So(err, convey.ShouldBeNil)
				convey.So(rules.Children.Base.StringFixed(2), convey.ShouldEqual, "1.25")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
pricing:
  regular:
    base: "2.10"
    extra_rate: "1.10"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("RENTALS_ADDR", ":8080")
			_ = os.Setenv("RENTALS_PRICING__REGULAR__BASE", "2.20")
			defer clearConfigEnvVars()

			cfg, err := config.LoadFile(ctx, tmpFile)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")                     // Overridden by env
				convey.So(cfg.Pricing.Regular.Base, convey.ShouldEqual, "2.20")      // Overridden by env
				convey.So(cfg.Pricing.Regular.ExtraRate, convey.ShouldEqual, "1.10") // From file
				convey.So(cfg.Pricing.Regular.ThresholdDays, convey.ShouldEqual, 3)  // Default
			})
		})

		convey.Convey("When the config file does not exist", func() {
			clearConfigEnvVars()
			_, err := config.LoadFile(ctx, "/nonexistent/rentals.yaml")

			convey.Convey("Then it should fail with ErrLoadConfig", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the address is blanked out", func() {
			_ = os.Setenv("RENTALS_ADDR", " ")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the log format is unknown", func() {
			_ = os.Setenv("RENTALS_LOG_FORMAT", "xml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When a pricing amount is not a decimal", func() {
			_ = os.Setenv("RENTALS_PRICING__CHILDREN__BASE", "cheap")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}

func clearConfigEnvVars() {
	envVars := []string{
		"RENTALS_CONFIG",
		"RENTALS_ADDR",
		"RENTALS_LOG_LEVEL",
		"RENTALS_LOG_FORMAT",
		"RENTALS_DATA_PATH",
		"RENTALS_PRICING__REGULAR__BASE",
		"RENTALS_PRICING__CHILDREN__BASE",
		"RENTALS_PRICING__NEW_RELEASE__BONUS_POINTS",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "rentals-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
