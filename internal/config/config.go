// Package config loads settings from config.yaml, a .env file, SIGNUP_*
// environment variables and command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"ctchen222/signup-form/internal/validator"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "SIGNUP"

type Config struct {
	API       API       `mapstructure:"api"`
	Recaptcha Recaptcha `mapstructure:"recaptcha"`
	Log       Log       `mapstructure:"log"`
	Telemetry Telemetry `mapstructure:"telemetry"`
	MockAPI   MockAPI   `mapstructure:"mockapi"`
}

// API is the registration endpoint the form submits to.
type API struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// Recaptcha configures token acquisition. An empty SiteKey disables it.
type Recaptcha struct {
	SiteKey     string        `mapstructure:"site_key"`
	BrokerURL   string        `mapstructure:"broker_url" validate:"omitempty,url"`
	StaticToken string        `mapstructure:"static_token"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type Log struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn warning error"`
}

type Telemetry struct {
	Enabled      bool   `mapstructure:"enabled"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint" validate:"required_if=Enabled true"`
	ServiceName  string `mapstructure:"service_name" validate:"required"`
	StdoutTraces bool   `mapstructure:"stdout_traces"`
}

// MockAPI configures the local stub of the registration endpoint.
type MockAPI struct {
	Addr         string `mapstructure:"addr" validate:"required"`
	RequireToken bool   `mapstructure:"require_token"`
	DSN          string `mapstructure:"dsn" validate:"required"`
}

// FlagKeys maps command-line flag names to config keys.
var FlagKeys = map[string]string{
	"api-url":       "api.base_url",
	"api-timeout":   "api.timeout",
	"site-key":      "recaptcha.site_key",
	"token-broker":  "recaptcha.broker_url",
	"static-token":  "recaptcha.static_token",
	"log-level":     "log.level",
	"telemetry":     "telemetry.enabled",
	"otlp-endpoint": "telemetry.otlp_endpoint",
	"addr":          "mockapi.addr",
	"require-token": "mockapi.require_token",
	"dsn":           "mockapi.dsn",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("recaptcha.site_key", "")
	v.SetDefault("recaptcha.broker_url", "")
	v.SetDefault("recaptcha.static_token", "")
	v.SetDefault("recaptcha.timeout", 5*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.otlp_endpoint", "otel-collector:4317")
	v.SetDefault("telemetry.service_name", "signup-form")
	v.SetDefault("telemetry.stdout_traces", false)
	v.SetDefault("mockapi.addr", ":8080")
	v.SetDefault("mockapi.require_token", false)
	v.SetDefault("mockapi.dsn", ":memory:")
}

// Load builds the configuration. flags may be nil; only flags listed in
// FlagKeys and present in the set are bound.
func Load(flags *pflag.FlagSet) (*Config, error) {
	// .env is optional and never overrides variables already set.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if path := os.Getenv(envPrefix + "_CONFIG"); path != "" {
		v.SetConfigFile(path)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the struct tags of every section.
func (c *Config) Validate() error {
	return validator.Struct(c)
}
