package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "upwatch", cfg.App.Name)
	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Equal(t, "postgres", cfg.Store.Backend)
	assert.Equal(t, 5, cfg.Quota.MaxChecksPerUser)
	assert.False(t, cfg.Kafka.Enable)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("QUOTA_MAX_CHECKS_PER_USER", "12")
	t.Setenv("STORE_BACKEND", "redis")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Quota.MaxChecksPerUser)
	assert.Equal(t, "redis", cfg.Store.Backend)
}

func TestLoad_Rejects(t *testing.T) {
	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("STORE_BACKEND", "dynamo")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("non-positive quota", func(t *testing.T) {
		t.Setenv("QUOTA_MAX_CHECKS_PER_USER", "0")
		_, err := Load("")
		assert.Error(t, err)
	})
}
