package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Empty(t, cfg.Recaptcha.SiteKey)
	assert.Equal(t, 5*time.Second, cfg.Recaptcha.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "signup-form", cfg.Telemetry.ServiceName)
	assert.Equal(t, ":8080", cfg.MockAPI.Addr)
	assert.Equal(t, ":memory:", cfg.MockAPI.DSN)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	yaml := []byte("api:\n  base_url: http://file.example\n  timeout: 3s\nrecaptcha:\n  site_key: from-file\nlog:\n  level: debug\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SIGNUP_RECAPTCHA_STATIC_TOKEN=dotenv-token\n"), 0o600))
	t.Setenv("SIGNUP_RECAPTCHA_SITE_KEY", "from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("api-url", "", "")
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse([]string{"--api-url", "http://flag.example"}))

	// godotenv writes straight into the process environment.
	t.Cleanup(func() { os.Unsetenv("SIGNUP_RECAPTCHA_STATIC_TOKEN") })
	cfg, err := Load(flags)
	require.NoError(t, err)

	assert.Equal(t, "http://flag.example", cfg.API.BaseURL, "flag beats file")
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, "from-env", cfg.Recaptcha.SiteKey, "env beats file")
	assert.Equal(t, "dotenv-token", cfg.Recaptcha.StaticToken)
	assert.Equal(t, "debug", cfg.Log.Level, "unset flag keeps file value")
}

func TestLoad_ExplicitConfigFileMustExist(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SIGNUP_CONFIG", "/does/not/exist.yaml")

	_, err := Load(nil)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			API:       API{BaseURL: "http://localhost:8080", Timeout: time.Second},
			Recaptcha: Recaptcha{Timeout: time.Second},
			Log:       Log{Level: "info"},
			Telemetry: Telemetry{ServiceName: "signup-form"},
			MockAPI:   MockAPI{Addr: ":8080", DSN: ":memory:"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad base url", mutate: func(c *Config) { c.API.BaseURL = "not a url" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.API.Timeout = 0 }, wantErr: true},
		{name: "bad broker url", mutate: func(c *Config) { c.Recaptcha.BrokerURL = "::" }, wantErr: true},
		{name: "unknown log level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: true},
		{name: "telemetry without endpoint", mutate: func(c *Config) { c.Telemetry.Enabled = true }, wantErr: true},
		{name: "telemetry with endpoint", mutate: func(c *Config) {
			c.Telemetry.Enabled = true
			c.Telemetry.OTLPEndpoint = "collector:4317"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
