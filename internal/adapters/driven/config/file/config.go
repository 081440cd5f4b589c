// Package file provides the TOML-based configuration for Briefwise.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Environment variable overrides.
const (
	// EnvEmailList overrides the configured sender list, comma separated.
	EnvEmailList = "EMAIL_LIST"

	// EnvGeminiAPIKey supplies the Gemini API key.
	EnvGeminiAPIKey = "GEMINI_API_KEY"
)

// Config is the Briefwise configuration, loaded from
// ~/.briefwise/config.toml with environment overrides applied.
type Config struct {
	// Senders is the list of newsletter sender addresses to fetch.
	Senders []string `toml:"senders"`

	// Gmail configures mailbox access.
	Gmail GmailConfig `toml:"gmail"`

	// Gemini configures the generation and embedding models.
	Gemini GeminiConfig `toml:"gemini"`

	// Normaliser configures body text cleanup.
	Normaliser NormaliserConfig `toml:"normaliser"`

	// Defaults are the sampling and retrieval defaults offered in the UI.
	Defaults DefaultsConfig `toml:"defaults"`

	// DataDir is where the catalog and vector store live.
	// Empty means ~/.briefwise/data.
	DataDir string `toml:"data_dir"`

	// configDir is where this config was loaded from.
	configDir string `toml:"-"`
}

// GmailConfig holds Gmail access settings.
type GmailConfig struct {
	// CredentialsPath is the OAuth client secret file.
	// Empty means <configdir>/credentials.json.
	CredentialsPath string `toml:"credentials_path"`

	// TokenPath is where the refreshable token is persisted.
	// Empty means <configdir>/token.json.
	TokenPath string `toml:"token_path"`

	// MaxResults caps how many messages one fetch lists.
	MaxResults int64 `toml:"max_results"`
}

// GeminiConfig holds Gemini API settings.
type GeminiConfig struct {
	// APIKey authenticates against the Generative Language API.
	// Usually supplied via GEMINI_API_KEY instead.
	APIKey string `toml:"api_key"`

	// Model is the generation model.
	Model string `toml:"model"`

	// EmbeddingModel is the embedding model.
	EmbeddingModel string `toml:"embedding_model"`
}

// NormaliserConfig holds text cleanup settings.
type NormaliserConfig struct {
	// TruncateMarker cuts email bodies at the first occurrence of this
	// string. Empty means the default marker.
	TruncateMarker string `toml:"truncate_marker"`
}

// DefaultsConfig holds the defaults for interactive parameters.
type DefaultsConfig struct {
	Temperature float64 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
	WindowDays  int     `toml:"window_days"`
	TopK        int     `toml:"top_k"`
}

// Load reads configuration from configDir (default ~/.briefwise),
// fills in defaults and applies environment overrides. A missing config
// file is not an error; defaults apply.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".briefwise")
	}

	cfg := &Config{configDir: configDir}

	data, err := os.ReadFile(filepath.Join(configDir, "config.toml"))
	if err == nil {
		if uerr := toml.Unmarshal(data, cfg); uerr != nil {
			return nil, fmt.Errorf("parsing config file: %w", uerr)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg, nil
}

// applyDefaults fills unset fields with their defaults.
func (c *Config) applyDefaults() {
	if c.Gmail.CredentialsPath == "" {
		c.Gmail.CredentialsPath = filepath.Join(c.configDir, "credentials.json")
	}
	if c.Gmail.TokenPath == "" {
		c.Gmail.TokenPath = filepath.Join(c.configDir, "token.json")
	}
	if c.Gmail.MaxResults == 0 {
		c.Gmail.MaxResults = 100
	}
	if c.Defaults.Temperature == 0 {
		c.Defaults.Temperature = 0.1
	}
	if c.Defaults.MaxTokens == 0 {
		c.Defaults.MaxTokens = 2000
	}
	if c.Defaults.WindowDays == 0 {
		c.Defaults.WindowDays = 7
	}
	if c.Defaults.TopK == 0 {
		c.Defaults.TopK = 2
	}
}

// applyEnv applies environment variable overrides.
func (c *Config) applyEnv() {
	if list := os.Getenv(EnvEmailList); list != "" {
		var senders []string
		for _, s := range strings.Split(list, ",") {
			if s = strings.TrimSpace(s); s != "" {
				senders = append(senders, s)
			}
		}
		c.Senders = senders
	}

	if key := os.Getenv(EnvGeminiAPIKey); key != "" {
		c.Gemini.APIKey = key
	}
}

// ConfigDir returns the directory this configuration was loaded from.
func (c *Config) ConfigDir() string {
	return c.configDir
}

// Validate reports configuration problems that prevent startup.
func (c *Config) Validate() error {
	if len(c.Senders) == 0 {
		return fmt.Errorf("no senders configured: set senders in config.toml or %s", EnvEmailList)
	}
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("no Gemini API key: set gemini.api_key in config.toml or %s", EnvGeminiAPIKey)
	}
	return nil
}
