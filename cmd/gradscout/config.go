package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/fwojciec/gradscout"
	"github.com/fwojciec/gradscout/crawl"
	gshttp "github.com/fwojciec/gradscout/http"
	"github.com/fwojciec/gradscout/smtp"
	"gopkg.in/yaml.v3"
)

// Extractor names accepted in config.yaml.
const (
	ExtractorReadability = "readability"
	ExtractorTrafilatura = "trafilatura"
)

// Config is the contents of config.yaml.
type Config struct {
	Filters   FiltersConfig `yaml:"filters"`
	Fetch     FetchConfig   `yaml:"fetch"`
	Extractor string        `yaml:"extractor"`
	Email     EmailConfig   `yaml:"email"`
}

// FiltersConfig holds result selection settings.
type FiltersConfig struct {
	MinScore           float64 `yaml:"min_score"`
	MaxResultsPerQuery int     `yaml:"max_results_per_query"`
	MaxTotalResults    int     `yaml:"max_total_results"`
}

// FetchConfig holds page fetching settings.
type FetchConfig struct {
	Timeout       Duration      `yaml:"timeout"`
	Concurrency   int           `yaml:"concurrency"`
	RatePerDomain float64       `yaml:"rate_per_domain"`
}

// Duration is a time.Duration read from YAML as a duration string such as
// "20s" or as a whole number of seconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var seconds int64
	if err := value.Decode(&seconds); err == nil {
		*d = Duration(time.Duration(seconds) * time.Second)
		return nil
	}

	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: use a value like 20s or whole seconds", s)
	}
	*d = Duration(parsed)
	return nil
}

// EmailConfig holds digest delivery settings.
type EmailConfig struct {
	Subject  string `yaml:"subject"`
	FromName string `yaml:"from_name"`
	SMTPHost string `yaml:"smtp_host"`
	SMTPPort int    `yaml:"smtp_port"`
}

// DefaultConfig returns the configuration used when config.yaml is absent.
func DefaultConfig() *Config {
	return &Config{
		Filters: FiltersConfig{
			MinScore:           gradscout.DefaultMinScore,
			MaxResultsPerQuery: crawl.DefaultMaxPerQuery,
			MaxTotalResults:    crawl.DefaultMaxTotal,
		},
		Fetch: FetchConfig{
			Timeout:       Duration(gshttp.DefaultFetchTimeout),
			Concurrency:   crawl.DefaultConcurrency,
			RatePerDomain: crawl.DefaultRatePerDomain,
		},
		Extractor: ExtractorReadability,
		Email: EmailConfig{
			Subject:  "Scholarship Digest",
			FromName: "Scholarship Agent",
			SMTPHost: smtp.DefaultHost,
			SMTPPort: smtp.DefaultPort,
		},
	}
}

// Validate returns an error if the configuration contains invalid values.
func (c *Config) Validate() error {
	if c.Filters.MinScore < 0 {
		return gradscout.Errorf(gradscout.EINVALID, "filters.min_score must not be negative")
	}
	if c.Filters.MaxResultsPerQuery <= 0 {
		return gradscout.Errorf(gradscout.EINVALID, "filters.max_results_per_query must be positive")
	}
	if c.Filters.MaxTotalResults <= 0 {
		return gradscout.Errorf(gradscout.EINVALID, "filters.max_total_results must be positive")
	}
	if c.Fetch.Timeout <= 0 {
		return gradscout.Errorf(gradscout.EINVALID, "fetch.timeout must be positive")
	}
	if c.Fetch.Concurrency <= 0 {
		return gradscout.Errorf(gradscout.EINVALID, "fetch.concurrency must be positive")
	}
	switch c.Extractor {
	case ExtractorReadability, ExtractorTrafilatura:
	default:
		return gradscout.Errorf(gradscout.EINVALID, "unknown extractor %q", c.Extractor)
	}
	return nil
}

// LoadConfig reads config.yaml from path. Keys absent from the file keep
// their defaults, and a missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, gradscout.Errorf(gradscout.EINVALID, "invalid config %s: %v", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadQueries reads the query set from a JSON file. A missing file yields
// an empty query set.
func LoadQueries(path string) (*gradscout.QuerySet, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &gradscout.QuerySet{}, nil
	}
	if err != nil {
		return nil, err
	}

	var qs gradscout.QuerySet
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, gradscout.Errorf(gradscout.EINVALID, "invalid queries %s: %v", path, err)
	}
	return &qs, nil
}
