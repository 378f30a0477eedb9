// ABOUTME: Tests for gains configuration management.
// ABOUTME: Covers load, save, defaults, env overrides, and path expansion.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/gains/internal/inference"
)

// isolate points the config file at a temp dir and clears env overrides.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	for _, key := range []string{
		"HF_TOKEN", "GAINS_DATA_DIR", "GAINS_MODEL_ID", "GAINS_INFERENCE_URL",
		"GAINS_MAX_NEW_TOKENS", "GAINS_TEMPERATURE", "GAINS_REQUEST_TIMEOUT_SECONDS",
		"GAINS_MAX_RETRIES", "GAINS_LOG_LEVEL", "GAINS_LOG_FILE", "GAINS_LOG_FORMAT",
		"GAINS_API_PORT",
	} {
		t.Setenv(key, "")
	}
	return tmpDir
}

func TestGetterDefaults(t *testing.T) {
	cfg := &Config{}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"model", cfg.GetModelID(), inference.DefaultModelID},
		{"url", cfg.GetInferenceURL(), inference.DefaultBaseURL},
		{"max tokens", cfg.GetMaxNewTokens(), 1024},
		{"temperature", cfg.GetTemperature(), 0.1},
		{"timeout", cfg.GetRequestTimeout(), 60 * time.Second},
		{"retries", cfg.GetMaxRetries(), 0},
		{"log level", cfg.GetLogLevel(), "info"},
		{"log file", cfg.GetLogFile(), ""},
		{"api port", cfg.GetAPIPort(), 8088},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestGetDataDirDefault(t *testing.T) {
	cfg := &Config{}
	got := cfg.GetDataDir()
	if got == "" {
		t.Error("GetDataDir() returned empty string")
	}
	if !strings.HasSuffix(got, "gains") {
		t.Errorf("GetDataDir() = %q, want a gains directory", got)
	}
}

func TestGetDataDirExpandsTilde(t *testing.T) {
	home, _ := os.UserHomeDir()

	cfg := &Config{DataDir: "~/gains-data"}
	want := filepath.Join(home, "gains-data")
	if got := cfg.GetDataDir(); got != want {
		t.Errorf("GetDataDir() = %q, want %q", got, want)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/tmp/foo", "/tmp/foo"},
		{"~", home},
		{"~/data/gains", filepath.Join(home, "data/gains")},
		{"data/gains", "data/gains"},
	}

	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg.ModelID != "" || cfg.DataDir != "" {
		t.Errorf("Expected zero config, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	isolate(t)

	cfg := &Config{
		DataDir:    "/tmp/gains-data",
		ModelID:    "org/model",
		MaxRetries: 2,
		Token:      "secret",
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	raw, err := os.ReadFile(GetConfigPath())
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if strings.Contains(string(raw), "secret") {
		t.Error("Token must not be written to disk")
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.DataDir != "/tmp/gains-data" || loaded.ModelID != "org/model" || loaded.MaxRetries != 2 {
		t.Errorf("Loaded config mismatch: %+v", loaded)
	}
	if loaded.Token != "" {
		t.Errorf("Expected empty token, got %q", loaded.Token)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	isolate(t)

	if err := (&Config{ModelID: "file/model", LogLevel: "warn"}).Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	t.Setenv("GAINS_MODEL_ID", "env/model")
	t.Setenv("HF_TOKEN", "hf_abc")
	t.Setenv("GAINS_REQUEST_TIMEOUT_SECONDS", "5")
	t.Setenv("GAINS_TEMPERATURE", "0.3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.GetModelID() != "env/model" {
		t.Errorf("Expected env model, got %q", cfg.GetModelID())
	}
	if cfg.GetLogLevel() != "warn" {
		t.Errorf("Expected file log level to survive, got %q", cfg.GetLogLevel())
	}
	if cfg.Token != "hf_abc" {
		t.Errorf("Expected token from env, got %q", cfg.Token)
	}

	opts := cfg.InferenceOptions()
	if opts.Timeout != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %v", opts.Timeout)
	}
	if opts.Temperature == nil || *opts.Temperature != 0.3 {
		t.Errorf("Expected temperature 0.3, got %v", opts.Temperature)
	}
}

func TestTemperatureZeroIsHonored(t *testing.T) {
	isolate(t)

	zero := 0.0
	if err := (&Config{Temperature: &zero}).Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got := cfg.GetTemperature(); got != 0 {
		t.Errorf("Expected file temperature 0, got %v", got)
	}

	t.Setenv("GAINS_TEMPERATURE", "0")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	opts := cfg.InferenceOptions()
	if opts.Temperature == nil || *opts.Temperature != 0 {
		t.Errorf("Expected env temperature 0, got %v", opts.Temperature)
	}

	negative := -1.0
	if got := (&Config{Temperature: &negative}).GetTemperature(); got != inference.DefaultTemperature {
		t.Errorf("Expected negative temperature to fall back, got %v", got)
	}
}

func TestLoadInvalidEnv(t *testing.T) {
	isolate(t)
	t.Setenv("GAINS_MAX_RETRIES", "lots")

	if _, err := Load(); err == nil {
		t.Error("Expected error for non-numeric GAINS_MAX_RETRIES")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tmpDir := isolate(t)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "nonexistent"))

	if err := (&Config{}).Save(); err != nil {
		t.Fatalf("Save() should create directory: %v", err)
	}

	configDir := filepath.Join(tmpDir, "nonexistent", "gains")
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		t.Error("Expected config directory to be created")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := isolate(t)

	configDir := filepath.Join(tmpDir, "gains")
	_ = os.MkdirAll(configDir, 0755)
	_ = os.WriteFile(filepath.Join(configDir, "config.json"), []byte("invalid json"), 0600)

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid JSON config")
	}
}

func TestGetConfigPath(t *testing.T) {
	tmpDir := isolate(t)

	want := filepath.Join(tmpDir, "gains", "config.json")
	if got := GetConfigPath(); got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
}

func TestOpenStorage(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := &Config{DataDir: tmpDir}
	db, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage() failed: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(filepath.Join(tmpDir, "gains.db")); os.IsNotExist(err) {
		t.Error("Expected gains.db to be created")
	}
}

func TestConfigJSONOmitsEmpty(t *testing.T) {
	data, err := json.Marshal(&Config{Token: "secret"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("Expected empty JSON object, got %s", string(data))
	}
}
