package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Client  ClientConfig
	Scraper ScraperConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type ClientConfig struct {
	UserAgent      string
	AcceptLanguage string
	Accept         string
	Timeout        time.Duration
	DelayMin       time.Duration
	DelayMax       time.Duration
}

type ScraperConfig struct {
	BaseURL    string
	Domain     string
	SearchPath string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("SERVER_PORT", "8080"),
			Host:            getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:     getDurationOrDefault("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationOrDefault("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Client: ClientConfig{
			UserAgent:      getEnvOrDefault("CLIENT_USER_AGENT", "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/118.0"),
			AcceptLanguage: getEnvOrDefault("CLIENT_ACCEPT_LANGUAGE", "en-US,en;q=0.5"),
			Accept:         getEnvOrDefault("CLIENT_ACCEPT", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"),
			Timeout:        getDurationOrDefault("CLIENT_TIMEOUT", 30*time.Second),
			DelayMin:       getDurationOrDefault("CLIENT_DELAY_MIN", 0),
			DelayMax:       getDurationOrDefault("CLIENT_DELAY_MAX", 0),
		},
		Scraper: ScraperConfig{
			BaseURL:    getEnvOrDefault("SCRAPER_BASE_URL", "https://www.flipkart.com"),
			Domain:     getEnvOrDefault("SCRAPER_DOMAIN", "flipkart.com"),
			SearchPath: getEnvOrDefault("SCRAPER_SEARCH_PATH", "/search"),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	parsed, err := url.Parse(c.Scraper.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if parsed.Host == "" {
		return fmt.Errorf("base URL must include a host")
	}
	if c.Scraper.Domain == "" {
		return fmt.Errorf("SCRAPER_DOMAIN must not be empty")
	}
	if c.Client.UserAgent == "" {
		return fmt.Errorf("CLIENT_USER_AGENT must not be empty")
	}
	if c.Client.Timeout <= 0 {
		return fmt.Errorf("CLIENT_TIMEOUT must be positive")
	}
	if c.Client.DelayMin < 0 || c.Client.DelayMax < 0 {
		return fmt.Errorf("client delays cannot be negative")
	}
	if c.Client.DelayMin > c.Client.DelayMax {
		return fmt.Errorf("CLIENT_DELAY_MIN cannot be greater than CLIENT_DELAY_MAX")
	}
	return nil
}

// SlogLevel maps the configured level name onto a slog level, defaulting to
// info for unknown values.
func (l LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
