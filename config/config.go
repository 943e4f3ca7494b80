// Package config loads AgentSwarm configuration from defaults, an optional
// YAML file and AGENTSWARM_ prefixed environment variables, in that order of
// precedence (later sources override earlier ones).
//
// Environment variables map onto dotted keys: AGENTSWARM_MODEL_PROVIDER sets
// model.provider, AGENTSWARM_RUN_MAX_TURNS sets run.max_turns, and so on.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "AGENTSWARM_"

// Config is the root configuration document.
type Config struct {
	Log   LogConfig   `koanf:"log"`
	Model ModelConfig `koanf:"model"`
	Run   RunConfig   `koanf:"run"`
}

// LogConfig controls structured logging output.
type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json, text
}

// ModelConfig selects and parameterizes the completion backend.
type ModelConfig struct {
	Provider    string  `koanf:"provider"` // openai, anthropic, mock
	Name        string  `koanf:"name"`
	APIKey      string  `koanf:"api_key"`
	BaseURL     string  `koanf:"base_url"`
	Temperature float64 `koanf:"temperature"`
	MaxTokens   int64   `koanf:"max_tokens"`
}

// RunConfig holds orchestration loop defaults.
type RunConfig struct {
	// MaxTurns caps model request/response cycles per run; 0 means unbounded.
	MaxTurns int `koanf:"max_turns"`
	// Stream enables incremental event delivery by default.
	Stream bool `koanf:"stream"`
	// ExecuteTools controls whether requested tool calls are executed.
	ExecuteTools bool `koanf:"execute_tools"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log:   LogConfig{Level: "info", Format: "json"},
		Model: ModelConfig{Provider: "openai", Name: "gpt-4o", Temperature: 0.7, MaxTokens: 4096},
		Run:   RunConfig{MaxTurns: 0, Stream: false, ExecuteTools: true},
	}
}

// Load builds the effective configuration. path may be empty to skip the
// file layer.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults := Default()
	k.Set("log.level", defaults.Log.Level)
	k.Set("log.format", defaults.Log.Format)
	k.Set("model.provider", defaults.Model.Provider)
	k.Set("model.name", defaults.Model.Name)
	k.Set("model.temperature", defaults.Model.Temperature)
	k.Set("model.max_tokens", defaults.Model.MaxTokens)
	k.Set("run.max_turns", defaults.Run.MaxTurns)
	k.Set("run.stream", defaults.Run.Stream)
	k.Set("run.execute_tools", defaults.Run.ExecuteTools)

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// AGENTSWARM_MODEL_PROVIDER -> model.provider,
	// AGENTSWARM_RUN_MAX_TURNS -> run.max_turns. The first underscore
	// separates the config section; the rest stays a snake_case leaf.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		section, leaf, found := strings.Cut(key, "_")
		if !found {
			return key
		}
		return section + "." + leaf
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects configurations the rest of the system cannot act on.
func (c *Config) Validate() error {
	switch c.Model.Provider {
	case "openai", "anthropic", "mock":
	default:
		return fmt.Errorf("unknown model provider %q", c.Model.Provider)
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}

	if c.Run.MaxTurns < 0 {
		return fmt.Errorf("run.max_turns must not be negative, got %d", c.Run.MaxTurns)
	}

	return nil
}
