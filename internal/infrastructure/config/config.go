package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. Environment variables
// provide the base values; an optional YAML file layers voucher
// labels, exclude patterns and a record path override on top.
type Config struct {
	// Record
	RecordPath string `env:"MONIZZE_RECORD_PATH" envDefault:"monizze.csv"`

	// Source
	FetchRetries       int           `env:"MONIZZE_FETCH_RETRIES"        envDefault:"3"`
	FetchRetryInterval time.Duration `env:"MONIZZE_FETCH_RETRY_INTERVAL" envDefault:"250ms"`

	// Logging
	LogLevel  string `env:"MONIZZE_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"MONIZZE_LOG_FORMAT" envDefault:"console"`

	// VoucherLabels maps voucher codes to display names.
	VoucherLabels map[string]string

	// ExcludeVouchers is a list of regex patterns; matching voucher
	// codes are dropped during sync.
	ExcludeVouchers []string

	excludePatterns []*regexp.Regexp
}

// fileConfig is the YAML overlay shape.
type fileConfig struct {
	Record  string            `yaml:"record,omitempty"`
	Labels  map[string]string `yaml:"labels,omitempty"`
	Exclude []string          `yaml:"exclude,omitempty"`
}

// Load reads configuration from the environment and, when path is
// non-empty, overlays the YAML file on top.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}

		if fc.Record != "" {
			cfg.RecordPath = fc.Record
		}
		cfg.VoucherLabels = fc.Labels
		cfg.ExcludeVouchers = fc.Exclude
	}

	for _, pattern := range cfg.ExcludeVouchers {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		cfg.excludePatterns = append(cfg.excludePatterns, re)
	}

	return cfg, nil
}

// ExcludePatterns returns the compiled voucher exclude patterns.
func (c *Config) ExcludePatterns() []*regexp.Regexp {
	return c.excludePatterns
}

// Label returns the display name for a voucher code, falling back to
// the code itself.
func (c *Config) Label(voucher string) string {
	if label, ok := c.VoucherLabels[voucher]; ok && label != "" {
		return label
	}
	return voucher
}
