// Package config loads server configuration from the environment, with an
// optional YAML file overlay.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Server
	Port string

	// Secrets
	CookieSecret         string
	InternalSharedSecret string

	// Uploads
	MaxUploadBytes    int64
	AllowedExtensions []string

	// Concurrency
	MaxConcurrentRequests int64

	// Server timeouts
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration

	// Request timeouts
	ExtractTimeout time.Duration

	// Rate limiting (per IP)
	RateLimitEvery time.Duration
	RateLimitBurst int

	// Housekeeping
	CleanupInterval time.Duration

	// Health
	HealthDegradeRatio float64

	// HTTP
	MaxHeaderBytes int
}

// Load builds the configuration from environment variables. When COUNT_CONFIG
// points at a YAML file, values set there override the environment defaults.
func Load() (Config, error) {
	c := Config{
		Port: envStr("PORT", "8080"),

		CookieSecret:         envStr("COOKIE_SECRET", "count-document-analyzer-secret-key"),
		InternalSharedSecret: envStr("INTERNAL_SHARED_SECRET", ""),

		MaxUploadBytes:    int64(envInt("MAX_UPLOAD_BYTES", 16<<20)),
		AllowedExtensions: envList("ALLOWED_EXTENSIONS", []string{"txt", "csv", "rtf", "docx", "doc", "html", "xlsx", "odt", "ods"}),

		MaxConcurrentRequests: int64(envInt("MAX_CONCURRENT_REQUESTS", 15)),

		ReadHeaderTimeout: envDur("READ_HEADER_TIMEOUT", 10*time.Second),
		ReadTimeout:       envDur("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:      envDur("WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:       envDur("IDLE_TIMEOUT", 60*time.Second),

		ExtractTimeout: envDur("EXTRACT_TIMEOUT", 30*time.Second),

		RateLimitEvery: envDur("RATE_LIMIT_EVERY", 600*time.Millisecond),
		RateLimitBurst: envInt("RATE_LIMIT_BURST", 20),

		CleanupInterval: envDur("CLEANUP_INTERVAL", 5*time.Minute),

		HealthDegradeRatio: envFloat("HEALTH_DEGRADE_RATIO", 0.9),

		MaxHeaderBytes: envInt("MAX_HEADER_BYTES", 1<<20),
	}

	if path := envStr("COUNT_CONFIG", ""); path != "" {
		if err := c.applyFile(path); err != nil {
			return Config{}, err
		}
	}
	return c, nil
}

func (c Config) Validate() error {
	if len(strings.TrimSpace(c.CookieSecret)) < 16 {
		return fmt.Errorf("COOKIE_SECRET must be at least 16 characters")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if len(c.AllowedExtensions) == 0 {
		return fmt.Errorf("ALLOWED_EXTENSIONS must not be empty")
	}
	return nil
}

// AllowedSet returns the allowed extensions as a lookup set, keys without
// the leading dot and lowercased.
func (c Config) AllowedSet() map[string]bool {
	set := make(map[string]bool, len(c.AllowedExtensions))
	for _, ext := range c.AllowedExtensions {
		key := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if key != "" {
			set[key] = true
		}
	}
	return set
}

// fileConfig mirrors the YAML keys exposed for file-based configuration.
// Pointer fields distinguish "unset" from zero values.
type fileConfig struct {
	Port                  *string  `yaml:"port"`
	CookieSecret          *string  `yaml:"cookie_secret"`
	InternalSharedSecret  *string  `yaml:"internal_shared_secret"`
	MaxUploadBytes        *int64   `yaml:"max_upload_bytes"`
	AllowedExtensions     []string `yaml:"allowed_extensions"`
	MaxConcurrentRequests *int64   `yaml:"max_concurrent_requests"`
	RateLimitEvery        *string  `yaml:"rate_limit_every"`
	RateLimitBurst        *int     `yaml:"rate_limit_burst"`
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if fc.Port != nil {
		c.Port = *fc.Port
	}
	if fc.CookieSecret != nil {
		c.CookieSecret = *fc.CookieSecret
	}
	if fc.InternalSharedSecret != nil {
		c.InternalSharedSecret = *fc.InternalSharedSecret
	}
	if fc.MaxUploadBytes != nil {
		c.MaxUploadBytes = *fc.MaxUploadBytes
	}
	if len(fc.AllowedExtensions) > 0 {
		c.AllowedExtensions = fc.AllowedExtensions
	}
	if fc.MaxConcurrentRequests != nil {
		c.MaxConcurrentRequests = *fc.MaxConcurrentRequests
	}
	if fc.RateLimitEvery != nil {
		d, err := time.ParseDuration(*fc.RateLimitEvery)
		if err != nil {
			return fmt.Errorf("parse rate_limit_every: %w", err)
		}
		c.RateLimitEvery = d
	}
	if fc.RateLimitBurst != nil {
		c.RateLimitBurst = *fc.RateLimitBurst
	}
	return nil
}

func envStr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}

func envDur(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func envList(key string, fallback []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
