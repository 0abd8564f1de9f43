// Package config loads the service configuration from defaults, an optional
// YAML file and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"bookmetrics/internal/logging"
	"bookmetrics/internal/platform/bookfeed"
)

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	BooksAPI  BooksAPIConfig  `yaml:"books_api"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       logging.Config  `yaml:"log"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

type BooksAPIConfig struct {
	URL        string        `yaml:"url"`
	Timeout    time.Duration `yaml:"timeout"`
	RPS        int           `yaml:"rps"`
	MaxRetries int           `yaml:"max_retries"`
	UserAgent  string        `yaml:"user_agent"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":3000",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		BooksAPI: BooksAPIConfig{
			URL:        bookfeed.DefaultURL,
			Timeout:    15 * time.Second,
			RPS:        5,
			MaxRetries: 0,
			UserAgent:  "bookmetrics/1.0",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		RateLimit: RateLimitConfig{
			RPS:   10,
			Burst: 20,
		},
		Log: logging.Config{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// Load reads .env files, the optional CONFIG_FILE and the environment.
func Load() (*Config, error) {
	loadEnvFiles()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
		}
		if err := cfg.MergeYAML(data); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func loadEnvFiles() {
	// Do not override environment provided by the runtime (e.g. Docker).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvWithDefaults expands ${VAR} and ${VAR:-default}.
func expandEnvWithDefaults(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := envPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

// MergeYAML overlays the keys present in data onto cfg.
func (c *Config) MergeYAML(data []byte) error {
	expanded := expandEnvWithDefaults(string(data))
	if err := yaml.Unmarshal([]byte(expanded), c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("APP_ADDR"); v != "" {
		c.Server.Addr = v
	} else if v := os.Getenv("PORT"); v != "" {
		c.Server.Addr = ":" + v
	}
	if v := os.Getenv("BOOKS_API_URL"); v != "" {
		c.BooksAPI.URL = v
	}
	if v := os.Getenv("BOOKS_API_USER_AGENT"); v != "" {
		c.BooksAPI.UserAgent = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.CORS.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("LOG_OUTPUT"); v != "" {
		c.Log.Output = v
	}

	var err error
	if c.BooksAPI.Timeout, err = envDuration("BOOKS_API_TIMEOUT", c.BooksAPI.Timeout); err != nil {
		return err
	}
	if c.BooksAPI.RPS, err = envInt("BOOKS_API_RPS", c.BooksAPI.RPS); err != nil {
		return err
	}
	if c.BooksAPI.MaxRetries, err = envInt("BOOKS_API_MAX_RETRIES", c.BooksAPI.MaxRetries); err != nil {
		return err
	}
	if c.RateLimit.Burst, err = envInt("RATE_LIMIT_BURST", c.RateLimit.Burst); err != nil {
		return err
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
		}
		c.RateLimit.RPS = rps
	}
	return nil
}

// Validate checks that the configuration can run a server.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if c.BooksAPI.URL == "" {
		return errors.New("books_api.url is required")
	}
	if c.BooksAPI.RPS <= 0 {
		return errors.New("books_api.rps must be positive")
	}
	if c.BooksAPI.MaxRetries < 0 {
		return errors.New("books_api.max_retries must not be negative")
	}
	if c.BooksAPI.Timeout <= 0 {
		return errors.New("books_api.timeout must be positive")
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return errors.New("rate_limit.rps and rate_limit.burst must be positive")
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(`Current Configuration:
======================
Listen Address:    %s
Books API URL:     %s
Books API Timeout: %s
Books API RPS:     %d
Books API Retries: %d
CORS Origins:      %s
Rate Limit:        %g rps (burst %d)
Log:               %s/%s -> %s`,
		c.Server.Addr,
		c.BooksAPI.URL,
		c.BooksAPI.Timeout,
		c.BooksAPI.RPS,
		c.BooksAPI.MaxRetries,
		strings.Join(c.CORS.AllowedOrigins, ", "),
		c.RateLimit.RPS, c.RateLimit.Burst,
		c.Log.Level, c.Log.Format, c.Log.Output,
	)
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
