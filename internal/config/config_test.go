package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_PrefersProductionKey(t *testing.T) {
	t.Setenv(EnvProdAPIKey, "sk_live_abc")
	t.Setenv(EnvAPIKey, "sk_test_xyz")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sk_live_abc", cfg.APIKey)
}

func TestLoad_FallsBackToTestKey(t *testing.T) {
	t.Setenv(EnvProdAPIKey, "")
	t.Setenv(EnvAPIKey, "sk_test_xyz")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sk_test_xyz", cfg.APIKey)
}

func TestLoad_MissingKeysFails(t *testing.T) {
	t.Setenv(EnvProdAPIKey, "")
	t.Setenv(EnvAPIKey, "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvProdAPIKey)
}
