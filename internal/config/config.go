// Package config loads runtime settings for the CLI and the HTTP server.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Enhancer EnhancerConfig `mapstructure:"enhancer"`
	Parser   ParserConfig   `mapstructure:"parser"`
}

// AppConfig holds general settings.
type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	Version  string `mapstructure:"version"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
	AllowOrigins   []string      `mapstructure:"allow_origins"`
}

// Store drivers.
const (
	DriverNone     = "none"
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// StoreConfig selects and configures the family store.
type StoreConfig struct {
	Driver        string        `mapstructure:"driver"`
	Path          string        `mapstructure:"path"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	DatabaseURL   string        `mapstructure:"database_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// Enhancement providers.
const (
	ProviderNone       = "none"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

// EnhancerConfig selects and configures the narrative enhancer.
type EnhancerConfig struct {
	Provider          string        `mapstructure:"provider"`
	GeminiAPIKey      string        `mapstructure:"gemini_api_key"`
	GeminiModel       string        `mapstructure:"gemini_model"`
	OpenRouterAPIKey  string        `mapstructure:"openrouter_api_key"`
	OpenRouterModel   string        `mapstructure:"openrouter_model"`
	OpenRouterBaseURL string        `mapstructure:"openrouter_base_url"`
	MaxTokens         int           `mapstructure:"max_tokens"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// ParserConfig points at the extraction policy.
type ParserConfig struct {
	PolicyFile     string `mapstructure:"policy_file"`
	IncludeReports bool   `mapstructure:"include_reports"`
}

// LoadConfig reads .env (if present), defaults, RECETARIO_* variables and
// an optional YAML config file. An empty path looks for recetario.yaml in
// the working directory and tolerates its absence.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("RECETARIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("enhancer.gemini_api_key", "RECETARIO_ENHANCER_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("enhancer.openrouter_api_key", "RECETARIO_ENHANCER_OPENROUTER_API_KEY", "OPENROUTER_API_KEY")
	_ = v.BindEnv("store.redis_addr", "RECETARIO_STORE_REDIS_ADDR", "REDIS_ADDR")
	_ = v.BindEnv("store.database_url", "RECETARIO_STORE_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("app.log_level", "RECETARIO_APP_LOG_LEVEL", "LOG_LEVEL")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("recetario")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "recetario")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.log_level", "info")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.max_upload_bytes", 20<<20)
	v.SetDefault("server.allow_origins", []string{"*"})

	v.SetDefault("store.driver", DriverFile)
	v.SetDefault("store.path", "data/families.json")
	v.SetDefault("store.redis_addr", "localhost:6379")
	v.SetDefault("store.timeout", 5*time.Second)

	v.SetDefault("enhancer.provider", ProviderNone)
	v.SetDefault("enhancer.gemini_model", "gemini-2.5-flash")
	v.SetDefault("enhancer.openrouter_model", "google/gemini-2.5-flash")
	v.SetDefault("enhancer.openrouter_base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("enhancer.max_tokens", 1024)
	v.SetDefault("enhancer.timeout", 30*time.Second)

	v.SetDefault("parser.include_reports", true)
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", cfg.Server.Port)
	}
	if cfg.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be positive")
	}
	if len(cfg.Server.AllowOrigins) == 0 {
		return fmt.Errorf("server.allow_origins must not be empty")
	}

	switch cfg.Store.Driver {
	case DriverNone, DriverMemory:
	case DriverFile:
		if cfg.Store.Path == "" {
			return fmt.Errorf("store.path is required for the file driver")
		}
	case DriverRedis:
		if cfg.Store.RedisAddr == "" {
			return fmt.Errorf("store.redis_addr is required for the redis driver")
		}
	case DriverPostgres:
		if cfg.Store.DatabaseURL == "" {
			return fmt.Errorf("store.database_url is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown store.driver %q", cfg.Store.Driver)
	}

	switch cfg.Enhancer.Provider {
	case ProviderNone, ProviderGemini, ProviderOpenRouter:
	default:
		return fmt.Errorf("unknown enhancer.provider %q", cfg.Enhancer.Provider)
	}
	return nil
}

// MaskAPIKey shows only the first and last four characters of a key.
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
