package config

import (
	"strings"
	"time"

	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/billforge/billforge/internal/types"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// DeploymentMode identifies how the service is being run.
type DeploymentMode string

const (
	ModeLocal DeploymentMode = "local"
	ModeProd  DeploymentMode = "prod"
)

// Configuration is the root configuration for the billing console engine.
type Configuration struct {
	Deployment DeploymentConfig `mapstructure:"deployment"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Sentry     SentryConfig     `mapstructure:"sentry"`
	Wizard     WizardConfig     `mapstructure:"wizard"`
}

type DeploymentConfig struct {
	Mode DeploymentMode `mapstructure:"mode"`
}

type LoggingConfig struct {
	Level types.LogLevel `mapstructure:"level"`
}

type CacheConfig struct {
	// Expiry is the TTL for cached tenant billing summaries.
	Expiry time.Duration `mapstructure:"expiry"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

type WizardConfig struct {
	// CommitTimeout bounds a single commit attempt against the billing
	// mutation boundary. A timed-out attempt surfaces as a recoverable
	// failure on the confirmation step.
	CommitTimeout time.Duration `mapstructure:"commit_timeout"`

	// LargeCreditThreshold is the credit amount at or above which the
	// credit wizard raises a non-blocking advisory.
	LargeCreditThreshold float64 `mapstructure:"large_credit_threshold"`
}

// NewConfig loads configuration from config.yaml and BILLFORGE_* environment
// variables, falling back to defaults suitable for local development.
func NewConfig() (*Configuration, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("BILLFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, ierr.WithError(err).
				WithHint("Failed to read configuration file").
				Mark(ierr.ErrSystem)
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to parse configuration").
			Mark(ierr.ErrSystem)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// GetDefaultConfig returns a configuration with defaults only, used by tests.
func GetDefaultConfig() *Configuration {
	v := viper.New()
	setDefaults(v)

	var cfg Configuration
	// Defaults are statically known, unmarshal cannot fail here.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(ModeLocal))
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("cache.expiry", "5m")
	v.SetDefault("sentry.enabled", false)
	v.SetDefault("sentry.sample_rate", 1.0)
	v.SetDefault("wizard.commit_timeout", "30s")
	v.SetDefault("wizard.large_credit_threshold", 1000.0)
}

// Validate validates the configuration.
func (c *Configuration) Validate() error {
	if c.Wizard.CommitTimeout <= 0 {
		return ierr.NewError("wizard.commit_timeout must be positive").
			WithHint("Commit timeout must be a positive duration").
			Mark(ierr.ErrSystem)
	}
	if c.Wizard.LargeCreditThreshold < 0 {
		return ierr.NewError("wizard.large_credit_threshold must not be negative").
			WithHint("Large credit threshold must not be negative").
			Mark(ierr.ErrSystem)
	}
	return nil
}

// LargeCreditThreshold returns the configured advisory threshold as a decimal,
// falling back to the package default when unset.
func (c *Configuration) LargeCreditThreshold() decimal.Decimal {
	if c == nil || c.Wizard.LargeCreditThreshold <= 0 {
		return types.DefaultLargeCreditThreshold
	}
	return decimal.NewFromFloat(c.Wizard.LargeCreditThreshold)
}
