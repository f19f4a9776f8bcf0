package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "OPENING_WORD", "SIM_WORKERS", "SIM_SEED", "SIM_STRATEGY", "RESULTS_DB"} {
		t.Setenv(k, "")
	}
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, zerolog.InfoLevel, c.LogLevel)
	assert.Equal(t, "SALET", c.Opening.String())
	assert.Equal(t, 0, c.SimWorkers)
	assert.Equal(t, uint64(42), c.SimSeed)
	assert.Equal(t, "entropy", c.SimStrategy)
	assert.Empty(t, c.ResultsDB)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OPENING_WORD", "crane")
	t.Setenv("SIM_WORKERS", "3")
	t.Setenv("SIM_SEED", "7")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, zerolog.DebugLevel, c.LogLevel)
	assert.Equal(t, "CRANE", c.Opening.String())
	assert.Equal(t, 3, c.SimWorkers)
	assert.Equal(t, uint64(7), c.SimSeed)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("OPENING_WORD", "toolong")
	_, err := Load()
	assert.ErrorContains(t, err, "OPENING_WORD")

	t.Setenv("OPENING_WORD", "")
	t.Setenv("SIM_WORKERS", "many")
	_, err = Load()
	assert.ErrorContains(t, err, "SIM_WORKERS")
}
