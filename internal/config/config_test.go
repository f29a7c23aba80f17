package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv blanks the variables LoadConfig reads, so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"GEMINI_API_KEY", "OPENROUTER_API_KEY", "REDIS_ADDR", "DATABASE_URL", "LOG_LEVEL",
		"RECETARIO_STORE_DRIVER", "RECETARIO_SERVER_PORT", "RECETARIO_ENHANCER_PROVIDER",
	} {
		t.Setenv(name, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recetario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Server.MaxUploadBytes != 20<<20 {
		t.Errorf("Unexpected server defaults %+v", cfg.Server)
	}
	if cfg.Store.Driver != DriverFile || cfg.Store.Path != "data/families.json" || cfg.Store.Timeout != 5*time.Second {
		t.Errorf("Unexpected store defaults %+v", cfg.Store)
	}
	if cfg.Enhancer.Provider != ProviderNone || cfg.Enhancer.OpenRouterBaseURL != "https://openrouter.ai/api/v1" {
		t.Errorf("Unexpected enhancer defaults %+v", cfg.Enhancer)
	}
	if !cfg.Parser.IncludeReports {
		t.Errorf("Expected reports to be included by default")
	}
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
app:
  debug: true
  log_level: debug
server:
  port: 9000
  read_timeout: 45s
  allow_origins: ["http://localhost:3000"]
store:
  driver: redis
  redis_addr: cache:6379
enhancer:
  provider: gemini
  timeout: 10s
parser:
  policy_file: policy.yaml
  include_reports: false
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.App.Debug || cfg.App.LogLevel != "debug" {
		t.Errorf("Unexpected app config %+v", cfg.App)
	}
	if cfg.Server.Port != 9000 || cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("Unexpected server config %+v", cfg.Server)
	}
	if len(cfg.Server.AllowOrigins) != 1 || cfg.Server.AllowOrigins[0] != "http://localhost:3000" {
		t.Errorf("Unexpected origins %v", cfg.Server.AllowOrigins)
	}
	if cfg.Store.Driver != DriverRedis || cfg.Store.RedisAddr != "cache:6379" {
		t.Errorf("Unexpected store config %+v", cfg.Store)
	}
	if cfg.Enhancer.Provider != ProviderGemini || cfg.Enhancer.Timeout != 10*time.Second {
		t.Errorf("Unexpected enhancer config %+v", cfg.Enhancer)
	}
	if cfg.Parser.PolicyFile != "policy.yaml" || cfg.Parser.IncludeReports {
		t.Errorf("Unexpected parser config %+v", cfg.Parser)
	}
}

func TestLoadConfigEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("RECETARIO_SERVER_PORT", "7070")
	t.Setenv("RECETARIO_STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://chef@localhost/recetario")
	t.Setenv("GEMINI_API_KEY", "gemini-secret-key")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Expected port 7070, got %d", cfg.Server.Port)
	}
	if cfg.Store.Driver != DriverPostgres || cfg.Store.DatabaseURL != "postgres://chef@localhost/recetario" {
		t.Errorf("Unexpected store config %+v", cfg.Store)
	}
	if cfg.Enhancer.GeminiAPIKey != "gemini-secret-key" {
		t.Errorf("Expected the unprefixed GEMINI_API_KEY to be honored, got %q", cfg.Enhancer.GeminiAPIKey)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"port", "server:\n  port: 70000\n", "server.port"},
		{"origins", "server:\n  allow_origins: []\n", "allow_origins"},
		{"driver", "store:\n  driver: mongo\n", "store.driver"},
		{"postgres url", "store:\n  driver: postgres\n", "database_url"},
		{"file path", "store:\n  driver: file\n  path: \"\"\n", "store.path"},
		{"provider", "enhancer:\n  provider: claude\n", "enhancer.provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := LoadConfig(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected an error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Errorf("Expected an error for an explicit missing config file")
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", "****"},
		{"short", "****"},
		{"AIzaSyD-1234567890abcd", "AIza...abcd"},
	}
	for _, tt := range tests {
		if got := MaskAPIKey(tt.key); got != tt.want {
			t.Errorf("MaskAPIKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
