package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("positional config path", func(t *testing.T) {
		out := &bytes.Buffer{}
		cfg, exit, err := Parse([]string{"sim.hcl"}, out)
		require.NoError(t, err)
		assert.False(t, exit)
		assert.Equal(t, "sim.hcl", cfg.ConfigPath)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("config flag wins over positional", func(t *testing.T) {
		out := &bytes.Buffer{}
		cfg, _, err := Parse([]string{"-config", "a.hcl", "b.hcl"}, out)
		require.NoError(t, err)
		assert.Equal(t, "a.hcl", cfg.ConfigPath)
	})

	t.Run("repeatable set and target flags", func(t *testing.T) {
		out := &bytes.Buffer{}
		cfg, _, err := Parse([]string{
			"-set", "grid.n=200",
			"-set", "dx=0.5",
			"-target", "grid.length",
			"sim.hcl",
		}, out)
		require.NoError(t, err)
		assert.Equal(t, []string{"grid.n=200", "dx=0.5"}, cfg.Sets)
		assert.Equal(t, []string{"grid.length"}, cfg.Targets)
	})

	t.Run("no path prints usage and exits cleanly", func(t *testing.T) {
		out := &bytes.Buffer{}
		cfg, exit, err := Parse(nil, out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("help flag exits cleanly", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, exit, err := Parse([]string{"-h"}, out)
		require.NoError(t, err)
		assert.True(t, exit)
	})

	t.Run("invalid log format", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, _, err := Parse([]string{"-log-format", "xml", "sim.hcl"}, out)
		require.Error(t, err)
		exitErr, ok := err.(*ExitError)
		require.True(t, ok)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("invalid log level", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, _, err := Parse([]string{"-log-level", "loud", "sim.hcl"}, out)
		require.Error(t, err)
		assert.ErrorContains(t, err, "invalid log-level")
	})

	t.Run("unknown flag", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, _, err := Parse([]string{"--not-a-flag"}, out)
		require.Error(t, err)
	})
}
