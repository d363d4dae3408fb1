package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var (
	ErrInvalidPort    = errors.New("invalid port")
	ErrInvalidWorkers = errors.New("compare workers must be at least 1")
	ErrInvalidRates   = errors.New("invalid CPM rates")
	ErrInvalidOrigin  = errors.New("invalid allowed origin")
)

const (
	defaultPort          = "8080"
	defaultOrigin        = "http://localhost:3000"
	defaultCompareWorker = 1
	defaultCPMMin        = 0.2
	defaultCPMMax        = 4.0
)

// Config holds the application configuration
type Config struct {
	// YouTubeAPIKey is used when a request carries no key of its own
	YouTubeAPIKey   string
	YouTubeEndpoint string
	Port            string
	AllowedOrigins  []string
	CompareWorkers  int
	CPMMin          float64
	CPMMax          float64
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		YouTubeAPIKey:   strings.TrimSpace(os.Getenv("YOUTUBE_API_KEY")),
		YouTubeEndpoint: strings.TrimSpace(os.Getenv("YOUTUBE_API_ENDPOINT")),
		Port:            envOr("PORT", defaultPort),
		AllowedOrigins:  splitList(envOr("ALLOWED_ORIGINS", defaultOrigin)),
		CompareWorkers:  defaultCompareWorker,
		CPMMin:          defaultCPMMin,
		CPMMax:          defaultCPMMax,
	}

	if raw := os.Getenv("COMPARE_WORKERS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: COMPARE_WORKERS=%q", ErrInvalidWorkers, raw)
		}
		cfg.CompareWorkers = n
	}

	var err error
	if cfg.CPMMin, err = envFloat("CPM_MIN", defaultCPMMin); err != nil {
		return nil, err
	}
	if cfg.CPMMax, err = envFloat("CPM_MAX", defaultCPMMax); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", ErrInvalidPort, c.Port)
	}
	if c.CompareWorkers < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, c.CompareWorkers)
	}
	if c.CPMMin < 0 || c.CPMMax <= 0 || c.CPMMin > c.CPMMax {
		return fmt.Errorf("%w: CPM_MIN=%.2f CPM_MAX=%.2f", ErrInvalidRates, c.CPMMin, c.CPMMax)
	}
	if len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("%w: ALLOWED_ORIGINS is empty", ErrInvalidOrigin)
	}
	for _, origin := range c.AllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("%w: %q", ErrInvalidOrigin, origin)
		}
	}
	return nil
}

// MaskedAPIKey returns the default key with everything but the last 4 characters hidden
func (c *Config) MaskedAPIKey() string {
	if c.YouTubeAPIKey == "" {
		return "(none)"
	}
	if len(c.YouTubeAPIKey) <= 4 {
		return "***"
	}
	return "***" + c.YouTubeAPIKey[len(c.YouTubeAPIKey)-4:]
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidRates, key, raw)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.TrimSuffix(part, "/"))
		}
	}
	return out
}
