package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aka-uba/omnex-core-platform-sub016/pkg/config"
)

type testServerConfig struct {
	Addr    string `env:"TEST_SERVER_ADDR" envDefault:":8080"`
	Verbose bool   `env:"TEST_SERVER_VERBOSE" envDefault:"false"`
}

type testRequiredConfig struct {
	Token string `env:"TEST_REQUIRED_TOKEN_UNSET,required"`
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		var cfg testServerConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, ":8080", cfg.Addr)
		assert.False(t, cfg.Verbose)
	})

	t.Run("caches per type", func(t *testing.T) {
		var first testServerConfig
		require.NoError(t, config.Load(&first))

		// A later env change must not affect the cached value.
		t.Setenv("TEST_SERVER_ADDR", ":9999")

		var second testServerConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, first, second)
	})

	t.Run("nil pointer", func(t *testing.T) {
		err := config.Load[testServerConfig](nil)
		require.ErrorIs(t, err, config.ErrNilPointer)
	})

	t.Run("missing required variable", func(t *testing.T) {
		var cfg testRequiredConfig
		err := config.Load(&cfg)
		require.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestMustLoad_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		config.MustLoad[testRequiredConfig]()
	})
}
