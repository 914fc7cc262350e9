package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/passwordless/core/config"
)

type timeoutConfig struct {
	Timeout time.Duration `env:"TEST_CFG_TIMEOUT" envDefault:"15m"`
	Debug   bool          `env:"TEST_CFG_DEBUG" envDefault:"false"`
}

type requiredConfig struct {
	Secret string `env:"TEST_CFG_REQUIRED_SECRET,required"`
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		var cfg timeoutConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, 15*time.Minute, cfg.Timeout)
		assert.False(t, cfg.Debug)
	})

	t.Run("caches per type", func(t *testing.T) {
		var first timeoutConfig
		require.NoError(t, config.Load(&first))

		// Changing the environment after the first load has no effect.
		t.Setenv("TEST_CFG_TIMEOUT", "1h")

		var second timeoutConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, first, second)
	})

	t.Run("missing required variable fails", func(t *testing.T) {
		var cfg requiredConfig
		require.Error(t, config.Load(&cfg))
	})
}

func TestMustLoad(t *testing.T) {
	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}
