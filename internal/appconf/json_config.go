package appconf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"transitheat.dev/reachability/internal/feed"
)

const maxConfigFileSize = 10 << 20 // 10MB, matches the teacher's LoadFromFile guard

// GtfsStaticFeed describes the JSON shape of the static feed block in a
// config file.
type GtfsStaticFeed struct {
	URL             string `json:"url"`
	AuthHeaderName  string `json:"auth-header-name,omitempty"`
	AuthHeaderValue string `json:"auth-header-value,omitempty"`
}

// JSONConfig is the on-disk configuration file shape, pointed to by
// cmd/api's -config flag. Fields not present in the file fall back to
// setDefaults.
type JSONConfig struct {
	Port           int            `json:"port"`
	Env            string         `json:"env"`
	RateLimit      int            `json:"rate-limit"`
	GtfsStaticFeed GtfsStaticFeed `json:"gtfs-static-feed"`
}

// LoadFromFile reads and validates a JSON config file at path.
func LoadFromFile(path string) (*JSONConfig, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file exceeds maximum size of %d bytes", maxConfigFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg JSONConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse JSON config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *JSONConfig) setDefaults() {
	if c.Port == 0 {
		c.Port = 4000
	}
	if c.Env == "" {
		c.Env = "development"
	}
	if c.RateLimit == 0 {
		c.RateLimit = 100
	}
	if c.GtfsStaticFeed.URL == "" {
		c.GtfsStaticFeed.URL = "https://www.soundtransit.org/GTFS-rail/40_gtfs.zip"
	}
}

func (c *JSONConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	switch c.Env {
	case "development", "test", "production":
	default:
		return fmt.Errorf("env must be one of development, test, production, got %q", c.Env)
	}

	if c.RateLimit < 1 {
		return fmt.Errorf("rate-limit must be at least 1, got %d", c.RateLimit)
	}

	if strings.HasPrefix(strings.ToLower(c.GtfsStaticFeed.URL), "file://") {
		return fmt.Errorf("gtfs-static-feed: file:// URLs are not allowed")
	}
	if !strings.HasPrefix(c.GtfsStaticFeed.URL, "http://") && !strings.HasPrefix(c.GtfsStaticFeed.URL, "https://") {
		if err := validatePath(c.GtfsStaticFeed.URL, "gtfs-static-feed"); err != nil {
			return err
		}
	}

	nameSet := c.GtfsStaticFeed.AuthHeaderName != ""
	valueSet := c.GtfsStaticFeed.AuthHeaderValue != ""
	if nameSet != valueSet {
		return fmt.Errorf("gtfs-static-feed: both auth-header-name and auth-header-value must be provided together")
	}

	return nil
}

func validatePath(path, field string) error {
	cleaned := filepath.Clean(path)
	if strings.HasPrefix(cleaned, "..") {
		return fmt.Errorf("%s: path traversal is not allowed (%s)", field, path)
	}
	return nil
}

// ToAppConfig projects the fields Config cares about.
func (c *JSONConfig) ToAppConfig() Config {
	return Config{
		Port:      c.Port,
		Env:       EnvFlagToEnvironment(c.Env),
		RateLimit: c.RateLimit,
		Verbose:   true,
	}
}

// ToFeedConfig projects the fields feed.Config cares about.
func (c *JSONConfig) ToFeedConfig() feed.Config {
	return feed.Config{
		URL:             c.GtfsStaticFeed.URL,
		AuthHeaderName:  c.GtfsStaticFeed.AuthHeaderName,
		AuthHeaderValue: c.GtfsStaticFeed.AuthHeaderValue,
		Verbose:         true,
	}
}
