package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultBaseURL is the hosted LIMS API.
	DefaultBaseURL = "https://uno-api-pdre.onrender.com/api/v1"

	ModeStdio = "stdio"
	ModeHTTP  = "http"

	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config defines client and server configuration.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Prefs  PrefsConfig  `yaml:"prefs"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

type APIConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	RetryCount int           `yaml:"retry_count"`
	// FanOutLimit bounds concurrent dependent reads; 0 means unbounded.
	FanOutLimit int `yaml:"fan_out_limit"`
}

type PrefsConfig struct {
	Backend       string `yaml:"backend"`
	Path          string `yaml:"path"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	KeyPrefix     string `yaml:"key_prefix"`
}

type ServerConfig struct {
	Host    string   `yaml:"host"`
	Port    int      `yaml:"port"`
	Mode    string   `yaml:"mode"`
	APIKeys []string `yaml:"api_keys"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// Path sends logs to a size-capped file instead of stderr.
	Path string `yaml:"path"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: 30 * time.Second,
		},
		Prefs: PrefsConfig{
			Backend:   BackendSQLite,
			Path:      "unolims.db",
			RedisAddr: "localhost:6379",
			KeyPrefix: "unolims",
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Mode: ModeStdio,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	return LoadFrom(os.Getenv("UNOLIMS_CONFIG_PATH"))
}

// LoadFrom is Load with an explicit YAML file; an empty path reads none.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("UNOLIMS_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("UNOLIMS_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid UNOLIMS_API_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = d
	}
	if v := os.Getenv("UNOLIMS_API_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid UNOLIMS_API_RETRIES: %w", err)
		}
		cfg.API.RetryCount = n
	}
	if v := os.Getenv("UNOLIMS_PREFS_BACKEND"); v != "" {
		cfg.Prefs.Backend = v
	}
	if v := os.Getenv("UNOLIMS_PREFS_PATH"); v != "" {
		cfg.Prefs.Path = v
	}
	if v := os.Getenv("UNOLIMS_REDIS_ADDR"); v != "" {
		cfg.Prefs.RedisAddr = v
	}
	if v := os.Getenv("UNOLIMS_REDIS_PASSWORD"); v != "" {
		cfg.Prefs.RedisPassword = v
	}
	if v := os.Getenv("UNOLIMS_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid UNOLIMS_REDIS_DB: %w", err)
		}
		cfg.Prefs.RedisDB = n
	}
	if v := os.Getenv("UNOLIMS_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("UNOLIMS_SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid UNOLIMS_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("UNOLIMS_SERVER_MODE"); v != "" {
		cfg.Server.Mode = v
	}
	if v := os.Getenv("UNOLIMS_SERVER_API_KEYS"); v != "" {
		cfg.Server.APIKeys = splitList(v)
	}
	if v := os.Getenv("UNOLIMS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("UNOLIMS_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("UNOLIMS_LOG_PATH"); v != "" {
		cfg.Log.Path = v
	}
	return nil
}

// Validate rejects settings the rest of the program cannot act on.
func (c Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("api base_url is required")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api timeout must not be negative")
	}
	if c.API.RetryCount < 0 {
		return fmt.Errorf("api retry_count must not be negative")
	}
	switch c.Prefs.Backend {
	case BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("unknown prefs backend %q", c.Prefs.Backend)
	}
	switch c.Server.Mode {
	case ModeStdio, ModeHTTP:
	default:
		return fmt.Errorf("unknown server mode %q", c.Server.Mode)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
