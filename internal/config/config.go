package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the server-level configuration for applydraft. Everything in
// it is optional: user-level settings stored in the database always win,
// and these values act only as fallbacks when a user has not supplied
// their own.
type Config struct {
	DBPath    string
	Fallbacks Fallbacks
}

// Fallbacks holds server-level credentials and local-server defaults,
// consulted only when the user's own config leaves a field empty.
type Fallbacks struct {
	OpenAIAPIKey     string
	AnthropicAPIKey  string
	OpenRouterAPIKey string
	LocalURL         string
	LocalModel       string
}

// Environment variables consulted when neither the user config nor the
// config file supplies a value.
const (
	EnvOpenAIAPIKey     = "OPENAI_API_KEY"
	EnvAnthropicAPIKey  = "ANTHROPIC_API_KEY"
	EnvOpenRouterAPIKey = "OPENROUTER_API_KEY"
	EnvLocalURL         = "LOCAL_LLM_URL"
	EnvLocalModel       = "LOCAL_LLM_MODEL"
)

// rawConfig is used for YAML unmarshaling (snake_case fields).
type rawConfig struct {
	DB        string       `yaml:"db"`
	Fallbacks rawFallbacks `yaml:"fallbacks"`
}

type rawFallbacks struct {
	OpenAIAPIKey     string `yaml:"openai_api_key"`
	AnthropicAPIKey  string `yaml:"anthropic_api_key"`
	OpenRouterAPIKey string `yaml:"openrouter_api_key"`
	LocalURL         string `yaml:"local_llm_url"`
	LocalModel       string `yaml:"local_llm_model"`
}

// Load reads and parses the YAML config file at path. Environment
// variables referenced as ${VAR} in the file are expanded before
// parsing, so secrets can live outside the file itself.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &Config{
		DBPath: raw.DB,
		Fallbacks: Fallbacks{
			OpenAIAPIKey:     raw.Fallbacks.OpenAIAPIKey,
			AnthropicAPIKey:  raw.Fallbacks.AnthropicAPIKey,
			OpenRouterAPIKey: raw.Fallbacks.OpenRouterAPIKey,
			LocalURL:         raw.Fallbacks.LocalURL,
			LocalModel:       raw.Fallbacks.LocalModel,
		},
	}, nil
}

// Default returns an empty config for when no config file exists.
func Default() *Config {
	return &Config{}
}

// WithEnv fills any fallback still empty from the process environment.
// File values win over environment values; user values win over both.
func (f Fallbacks) WithEnv() Fallbacks {
	fill := func(current, envName string) string {
		if current != "" {
			return current
		}
		return os.Getenv(envName)
	}
	return Fallbacks{
		OpenAIAPIKey:     fill(f.OpenAIAPIKey, EnvOpenAIAPIKey),
		AnthropicAPIKey:  fill(f.AnthropicAPIKey, EnvAnthropicAPIKey),
		OpenRouterAPIKey: fill(f.OpenRouterAPIKey, EnvOpenRouterAPIKey),
		LocalURL:         fill(f.LocalURL, EnvLocalURL),
		LocalModel:       fill(f.LocalModel, EnvLocalModel),
	}
}
