package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config aggregates all application configuration
type Config struct {
	Groq        GroqConfig        `yaml:"groq"`
	HuggingFace HuggingFaceConfig `yaml:"huggingface"`
	FlightAPI   FlightAPIConfig   `yaml:"flightapi"`
	SearchAPI   SearchAPIConfig   `yaml:"searchapi"`
	DryRun      bool              `yaml:"dry_run" env:"DRY_RUN_MODE" env-default:"false"`
	AuditFile   string            `yaml:"audit_file" env:"LOG_FILE" env-default:"logs/audit.jsonl"`
	CachePath   string            `yaml:"cache_path" env:"CACHE_PATH" env-default:"travelagent.db"`
}

// GroqConfig configures the function-calling LLM endpoint.
// Groq exposes an OpenAI-compatible API.
type GroqConfig struct {
	APIKey  string `yaml:"api_key" env:"GROQ_API_KEY"`
	Model   string `yaml:"model" env:"GROQ_MODEL_ID" env-default:"meta-llama/llama-4-scout-17b-16e-instruct"`
	BaseURL string `yaml:"base_url" env:"GROQ_BASE_URL" env-default:"https://api.groq.com/openai/v1/"`
}

// HuggingFaceConfig configures the text-generation endpoint used by the
// destination planner.
type HuggingFaceConfig struct {
	Token string `yaml:"token" env:"HUGGINGFACE_API_TOKEN"`
	Model string `yaml:"model" env:"HUGGINGFACE_MODEL" env-default:"meta-llama/Meta-Llama-3-8B"`
}

type FlightAPIConfig struct {
	APIKey  string `yaml:"api_key" env:"FLIGHT_API"`
	Timeout int    `yaml:"timeout" env:"FLIGHT_API_TIMEOUT" env-default:"60"`
}

type SearchAPIConfig struct {
	APIKey  string `yaml:"api_key" env:"SEARCH_API"`
	Timeout int    `yaml:"timeout" env:"SEARCH_API_TIMEOUT" env-default:"30"`
}

// Load reads configuration from config.yaml and environment variables
// Priority: Env Vars > Config File > Defaults
func Load() (*Config, error) {
	var cfg Config

	// Read config.yaml if present, then override with envs.
	err := cleanenv.ReadConfig("config.yaml", &cfg)
	if err != nil {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read env config: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration is sufficient to start the agent.
// Only the Groq key is hard-required; the travel APIs degrade to mock data
// and the planner reports its own missing-token error.
func (c *Config) Validate() error {
	if c.Groq.APIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required; set it in .env or the environment")
	}
	return nil
}
