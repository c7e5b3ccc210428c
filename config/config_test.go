package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gsk_test", cfg.Groq.APIKey)
	assert.Equal(t, "meta-llama/llama-4-scout-17b-16e-instruct", cfg.Groq.Model)
	assert.Equal(t, "https://api.groq.com/openai/v1/", cfg.Groq.BaseURL)
	assert.Equal(t, "meta-llama/Meta-Llama-3-8B", cfg.HuggingFace.Model)
	assert.Equal(t, 60, cfg.FlightAPI.Timeout)
	assert.Equal(t, 30, cfg.SearchAPI.Timeout)
	assert.False(t, cfg.DryRun)
	assert.Equal(t, "logs/audit.jsonl", cfg.AuditFile)
	assert.Equal(t, "travelagent.db", cfg.CachePath)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("GROQ_MODEL_ID", "llama-3.3-70b-versatile")
	t.Setenv("DRY_RUN_MODE", "true")
	t.Setenv("LOG_FILE", "/tmp/audit.jsonl")
	t.Setenv("FLIGHT_API", "fk")
	t.Setenv("SEARCH_API", "sk")
	t.Setenv("HUGGINGFACE_API_TOKEN", "hf_tok")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "llama-3.3-70b-versatile", cfg.Groq.Model)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, "/tmp/audit.jsonl", cfg.AuditFile)
	assert.Equal(t, "fk", cfg.FlightAPI.APIKey)
	assert.Equal(t, "sk", cfg.SearchAPI.APIKey)
	assert.Equal(t, "hf_tok", cfg.HuggingFace.Token)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.Validate())

	cfg.Groq.APIKey = "gsk_test"
	assert.NoError(t, cfg.Validate())
}
