// ABOUTME: gains configuration: JSON file under XDG_CONFIG_HOME with env var overrides.
// ABOUTME: Getters supply defaults; factories open storage and build the inference client options.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/harperreed/gains/internal/inference"
	"github.com/harperreed/gains/internal/storage"
)

const (
	defaultLogLevel = "info"
	defaultAPIPort  = 8088
)

// Config stores gains configuration.
type Config struct {
	// DataDir is the directory holding gains.db. Supports ~ expansion.
	// Defaults to ~/.local/share/gains.
	DataDir string `json:"data_dir,omitempty" env:"GAINS_DATA_DIR"`

	// Token is the inference API credential. Only read from the environment.
	Token string `json:"-" env:"HF_TOKEN"`

	ModelID               string   `json:"model_id,omitempty" env:"GAINS_MODEL_ID"`
	InferenceURL          string   `json:"inference_url,omitempty" env:"GAINS_INFERENCE_URL"`
	MaxNewTokens          int      `json:"max_new_tokens,omitempty" env:"GAINS_MAX_NEW_TOKENS"`
	Temperature           *float64 `json:"temperature,omitempty" env:"GAINS_TEMPERATURE"`
	RequestTimeoutSeconds int      `json:"request_timeout_seconds,omitempty" env:"GAINS_REQUEST_TIMEOUT_SECONDS"`
	MaxRetries            int      `json:"max_retries,omitempty" env:"GAINS_MAX_RETRIES"`

	LogLevel  string `json:"log_level,omitempty" env:"GAINS_LOG_LEVEL"`
	LogFile   string `json:"log_file,omitempty" env:"GAINS_LOG_FILE"`
	LogFormat string `json:"log_format,omitempty" env:"GAINS_LOG_FORMAT"`

	APIPort int `json:"api_port,omitempty" env:"GAINS_API_PORT"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetDBPath returns the SQLite database path inside the data directory.
func (c *Config) GetDBPath() string {
	return filepath.Join(c.GetDataDir(), "gains.db")
}

// GetModelID returns the model identifier, defaulting to Mistral-7B-Instruct.
func (c *Config) GetModelID() string {
	if c.ModelID == "" {
		return inference.DefaultModelID
	}
	return c.ModelID
}

// GetInferenceURL returns the inference base URL.
func (c *Config) GetInferenceURL() string {
	if c.InferenceURL == "" {
		return inference.DefaultBaseURL
	}
	return c.InferenceURL
}

func (c *Config) GetMaxNewTokens() int {
	if c.MaxNewTokens <= 0 {
		return inference.DefaultMaxNewTokens
	}
	return c.MaxNewTokens
}

// GetTemperature returns the sampling temperature. An explicit 0 is kept;
// unset or negative values fall back to the default.
func (c *Config) GetTemperature() float64 {
	if c.Temperature == nil || *c.Temperature < 0 {
		return inference.DefaultTemperature
	}
	return *c.Temperature
}

// GetRequestTimeout returns the model call timeout, defaulting to 60s.
func (c *Config) GetRequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return inference.DefaultTimeout
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// GetMaxRetries returns the retry budget for transient model failures.
func (c *Config) GetMaxRetries() int {
	if c.MaxRetries < 0 {
		return 0
	}
	return c.MaxRetries
}

func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return defaultLogLevel
	}
	return strings.ToLower(c.LogLevel)
}

// GetLogFile returns the rotated log file path with ~ expanded, or "".
func (c *Config) GetLogFile() string {
	return ExpandPath(c.LogFile)
}

func (c *Config) GetAPIPort() int {
	if c.APIPort <= 0 {
		return defaultAPIPort
	}
	return c.APIPort
}

// InferenceOptions builds client options from the config.
func (c *Config) InferenceOptions() inference.Options {
	temperature := c.GetTemperature()
	return inference.Options{
		BaseURL:      c.GetInferenceURL(),
		ModelID:      c.GetModelID(),
		Token:        c.Token,
		MaxNewTokens: c.GetMaxNewTokens(),
		Temperature:  &temperature,
		Timeout:      c.GetRequestTimeout(),
		MaxRetries:   c.GetMaxRetries(),
	}
}

// OpenStorage opens the SQLite database under the configured data directory.
func (c *Config) OpenStorage() (*storage.DB, error) {
	db, err := storage.Open(c.GetDBPath())
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "gains", "config.json")
}

// Load reads config from disk and applies environment overrides.
func Load() (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(GetConfigPath())
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// Save writes config to disk. The token is never written.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
