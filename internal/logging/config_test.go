package logging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/klinki/typedoc-plugin-regex-filter/internal/config"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, zapcore.InfoLevel, cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.True(t, cfg.Output.Stderr)
	assert.False(t, cfg.Output.OTEL)
	assert.False(t, cfg.Sampling.Enabled)
	assert.Equal(t, time.Second, cfg.Sampling.Tick.Duration())
	assert.False(t, cfg.Caller.Enabled)
	assert.Equal(t, zapcore.ErrorLevel, cfg.Stacktrace.Level)
	assert.Equal(t, "regexfilter", cfg.Fields["service"])
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{
			name:   "invalid format",
			mutate: func(c *Config) { c.Format = "xml" },
			errMsg: "format must be 'json' or 'console'",
		},
		{
			name:   "no output enabled",
			mutate: func(c *Config) { c.Output = OutputConfig{} },
			errMsg: "at least one output must be enabled",
		},
		{
			name: "invalid sampling tick",
			mutate: func(c *Config) {
				c.Sampling.Enabled = true
				c.Sampling.Tick = config.Duration(0)
			},
			errMsg: "sampling tick must be > 0",
		},
		{
			name: "negative sampling counts",
			mutate: func(c *Config) {
				c.Sampling.Enabled = true
				c.Sampling.Initial = -1
			},
			errMsg: "sampling initial and thereafter",
		},
		{
			name: "negative caller skip",
			mutate: func(c *Config) {
				c.Caller.Enabled = true
				c.Caller.Skip = -1
			},
			errMsg: "caller skip must be >= 0",
		},
		{
			name:   "empty field key",
			mutate: func(c *Config) { c.Fields[""] = "x" },
			errMsg: "field key cannot be empty",
		},
		{
			name:   "empty field value",
			mutate: func(c *Config) { c.Fields["env"] = "" },
			errMsg: `field "env" has empty value`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_UnmarshalFromOptions(t *testing.T) {
	opts := config.NewOptions()
	t.Setenv("REGEXFILTER_LOGGING_FORMAT", "json")
	t.Setenv("REGEXFILTER_LOGGING_LEVEL", "debug")
	require.NoError(t, opts.LoadEnv(config.EnvPrefix))

	cfg := NewDefaultConfig()
	require.NoError(t, opts.Unmarshal("logging", cfg))

	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, zapcore.DebugLevel, cfg.Level)
	assert.True(t, cfg.Output.Stderr, "unset keys keep defaults")
}
