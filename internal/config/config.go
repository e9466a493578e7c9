package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Engine EngineConfig `yaml:"engine" mapstructure:"engine"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// EngineConfig carries the business-tunable thresholds the rule catalog
// evaluates against. All money values are integer cents.
type EngineConfig struct {
	// NSAEmergencyCostShareFraction is the fraction of billed charge above
	// which emergency patient cost share is flagged under the No Surprises
	// Act rule.
	NSAEmergencyCostShareFraction float64 `yaml:"nsa_emergency_cost_share_fraction" mapstructure:"nsa_emergency_cost_share_fraction"`

	// TherapyMinutesPerUnit converts timed therapy units to minutes.
	TherapyMinutesPerUnit int64 `yaml:"therapy_minutes_per_unit" mapstructure:"therapy_minutes_per_unit"`

	// TherapyDailyMinutesCeiling is the plausibility ceiling for total timed
	// therapy minutes billed on one date of service.
	TherapyDailyMinutesCeiling int64 `yaml:"therapy_daily_minutes_ceiling" mapstructure:"therapy_daily_minutes_ceiling"`

	// HighValueBillCents and HighValueMaxLines define the missing-itemized-
	// bill rule: a total at or above the cutoff spread over at most this
	// many lines.
	HighValueBillCents int64 `yaml:"high_value_bill_cents" mapstructure:"high_value_bill_cents"`
	HighValueMaxLines  int   `yaml:"high_value_max_lines" mapstructure:"high_value_max_lines"`

	// MathToleranceCents is the allowed absolute difference between a
	// calculated and reported total before a math-error rule fires.
	MathToleranceCents int64 `yaml:"math_tolerance_cents" mapstructure:"math_tolerance_cents"`

	// BalanceBillingToleranceCents is the allowed excess of plan paid plus
	// patient responsibility over the allowed amount.
	BalanceBillingToleranceCents int64 `yaml:"balance_billing_tolerance_cents" mapstructure:"balance_billing_tolerance_cents"`

	// LowConfidenceChargeCents is the minimum line charge for a
	// low-confidence extraction to be worth surfacing.
	LowConfidenceChargeCents int64 `yaml:"low_confidence_charge_cents" mapstructure:"low_confidence_charge_cents"`

	// AdminFeeKeywords are matched case-insensitively against line
	// descriptions to spot non-provider administrative charges.
	AdminFeeKeywords []string `yaml:"admin_fee_keywords" mapstructure:"admin_fee_keywords"`
}

// ServerConfig configures the detection HTTP endpoint.
type ServerConfig struct {
	Port           int     `yaml:"port" mapstructure:"port"`
	RequestsPerSec float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
	Burst          int     `yaml:"burst" mapstructure:"burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultEngineConfig returns the engine thresholds used when no overrides
// are configured. The figures are tunables, not regulation.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		NSAEmergencyCostShareFraction: 0.50,
		TherapyMinutesPerUnit:         15,
		TherapyDailyMinutesCeiling:    480,
		HighValueBillCents:            100_000, // $1,000.00
		HighValueMaxLines:             1,
		MathToleranceCents:            0,
		BalanceBillingToleranceCents:  0,
		LowConfidenceChargeCents:      50_000, // $500.00
		AdminFeeKeywords: []string{
			"statement processing fee",
			"statement fee",
			"billing fee",
			"account maintenance fee",
			"finance charge",
			"payment plan fee",
			"paper statement",
			"convenience fee",
		},
	}
}

// ValidateEngineConfig checks that an EngineConfig is internally consistent.
func ValidateEngineConfig(c EngineConfig) error {
	var errs []string
	if c.NSAEmergencyCostShareFraction <= 0 || c.NSAEmergencyCostShareFraction > 1 {
		errs = append(errs, "nsa_emergency_cost_share_fraction must be in (0, 1]")
	}
	if c.TherapyMinutesPerUnit <= 0 {
		errs = append(errs, "therapy_minutes_per_unit must be positive")
	}
	if c.TherapyDailyMinutesCeiling <= 0 {
		errs = append(errs, "therapy_daily_minutes_ceiling must be positive")
	}
	if c.HighValueBillCents <= 0 {
		errs = append(errs, "high_value_bill_cents must be positive")
	}
	if c.HighValueMaxLines <= 0 {
		errs = append(errs, "high_value_max_lines must be positive")
	}
	if c.MathToleranceCents < 0 {
		errs = append(errs, "math_tolerance_cents must not be negative")
	}
	if c.BalanceBillingToleranceCents < 0 {
		errs = append(errs, "balance_billing_tolerance_cents must not be negative")
	}
	if c.LowConfidenceChargeCents < 0 {
		errs = append(errs, "low_confidence_charge_cents must not be negative")
	}
	if len(errs) > 0 {
		return eris.New("config: invalid engine config: " + strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("BILLAUDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	def := DefaultEngineConfig()
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.requests_per_sec", 20.0)
	v.SetDefault("server.burst", 40)
	v.SetDefault("engine.nsa_emergency_cost_share_fraction", def.NSAEmergencyCostShareFraction)
	v.SetDefault("engine.therapy_minutes_per_unit", def.TherapyMinutesPerUnit)
	v.SetDefault("engine.therapy_daily_minutes_ceiling", def.TherapyDailyMinutesCeiling)
	v.SetDefault("engine.high_value_bill_cents", def.HighValueBillCents)
	v.SetDefault("engine.high_value_max_lines", def.HighValueMaxLines)
	v.SetDefault("engine.math_tolerance_cents", def.MathToleranceCents)
	v.SetDefault("engine.balance_billing_tolerance_cents", def.BalanceBillingToleranceCents)
	v.SetDefault("engine.low_confidence_charge_cents", def.LowConfidenceChargeCents)
	v.SetDefault("engine.admin_fee_keywords", def.AdminFeeKeywords)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := ValidateEngineConfig(cfg.Engine); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
