package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported text generation providers.
const (
	ProviderOpenAI       = "openai"
	ProviderGemini       = "gemini"
	ProviderGeminiLegacy = "gemini-legacy"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`

	AI AIConfig `yaml:"ai"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// AIConfig holds the optional text generation provider used to augment questions.
type AIConfig struct {
	Provider  string `yaml:"provider"`
	APIKey    string `yaml:"apiKey"`
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"baseUrl"`
	TimeoutMS int    `yaml:"timeoutMs"`
	// MaxCallsPerMinute caps provider calls across all replicas sharing Redis.
	// Zero disables the cap.
	MaxCallsPerMinute int `yaml:"maxCallsPerMinute"`
}

// IsEnabled returns true if a provider credential is configured
func (c AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// Timeout returns the bound on a single augmentation call.
func (c AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// ModelName returns the configured model or the provider default.
func (c AIConfig) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case ProviderGemini, ProviderGeminiLegacy:
		return "gemini-2.5-flash"
	default:
		return "gpt-3.5-turbo"
	}
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 5000
	cfg.AI.Provider = ProviderOpenAI
	cfg.AI.TimeoutMS = 5000
	cfg.Log.Level = "INFO"
	return &cfg
}

// LoadConfig reads the configuration file on top of the defaults and applies
// environment overrides. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.AI.Provider = ProviderOpenAI
		cfg.AI.APIKey = key
	} else if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.AI.Provider = ProviderGemini
		cfg.AI.APIKey = key
	}
	if provider := os.Getenv("AI_PROVIDER"); provider != "" {
		cfg.AI.Provider = strings.ToLower(strings.TrimSpace(provider))
	}
	if model := os.Getenv("AI_MODEL"); model != "" {
		cfg.AI.Model = model
	}
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Server.Port = p
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	return nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}
	switch c.AI.Provider {
	case ProviderOpenAI, ProviderGemini, ProviderGeminiLegacy:
	default:
		return fmt.Errorf("unknown ai provider %q", c.AI.Provider)
	}
	if c.AI.TimeoutMS <= 0 {
		return fmt.Errorf("ai timeoutMs must be positive, got %d", c.AI.TimeoutMS)
	}
	if c.AI.MaxCallsPerMinute < 0 {
		return fmt.Errorf("ai maxCallsPerMinute must not be negative, got %d", c.AI.MaxCallsPerMinute)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
