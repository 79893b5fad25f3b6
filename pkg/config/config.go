package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// OpenRouter holds credentials for the summarization API.
type OpenRouter struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// Archive selects and configures the optional transcript archive backend.
type Archive struct {
	// Backend is one of "", "mongo", "postgres", "supabase". Empty disables
	// archiving entirely.
	Backend string `yaml:"backend"`

	MongoURI   string `yaml:"mongo_uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`

	PostgresDSN string `yaml:"postgres_dsn"`

	SupabaseURL      string `yaml:"supabase_url"`
	SupabaseKey      string `yaml:"supabase_key"`
	SupabasePassword string `yaml:"supabase_password"`
}

// Config is the tool configuration, loaded from an optional YAML file with
// environment variable overrides for secrets.
type Config struct {
	OpenRouter OpenRouter `yaml:"openrouter"`

	// Language is the default preferred transcript language code.
	Language string `yaml:"language"`

	Archive Archive `yaml:"archive"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OpenRouter: OpenRouter{Model: "openai/gpt-3.5-turbo"},
		Language:   "en",
		Archive: Archive{
			Database:   "ytdigest",
			Collection: "transcripts",
		},
	}
}

// Load reads configuration from the given YAML path, falling back to
// defaults when the file does not exist, then applies environment variable
// overrides (OPENROUTER_API_KEY, OPENROUTER_MODEL).
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
			// No config file is fine; env vars and flags carry the rest.
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		cfg.OpenRouter.APIKey = key
	}
	if model := os.Getenv("OPENROUTER_MODEL"); model != "" {
		cfg.OpenRouter.Model = model
	}

	if cfg.Language == "" {
		cfg.Language = "en"
	}

	return cfg, nil
}
