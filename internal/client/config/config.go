package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/vidtranslator/internal/common"
)

// Storage drivers accepted by StorageDriver.
const (
	StorageSupabase = "supabase"
	StorageS3       = "s3"
)

// Config holds runtime settings for the vidtranslator client.
//
// SupabaseURL and SupabaseAnonKey identify the hosted project (auth, rows and
// storage share them). TranslatorURL is the base URL of the translation
// backend. Durations of zero disable the corresponding timer.
type Config struct {
	SupabaseURL     string
	SupabaseAnonKey string
	TranslatorURL   string

	StorageDriver  string
	OriginalBucket string
	S3Endpoint     string
	S3Region       string
	S3AccessKey    string
	S3SecretKey    string

	SessionDB         string
	HomeRecentLimit   int
	SearchDebounce    time.Duration
	TranslatorTimeout time.Duration

	LogLevel  string
	LogFormat string
}

// LoadDefaults populates c with defaults. The hosted project URL and key have
// no default.
func (c *Config) LoadDefaults() {
	c.TranslatorURL = "http://127.0.0.1:5000"
	c.StorageDriver = StorageSupabase
	c.OriginalBucket = common.DefaultOriginalBucket
	c.S3Region = "us-east-1"
	c.SessionDB = "vidtranslator.db"
	c.HomeRecentLimit = 5
	c.SearchDebounce = 300 * time.Millisecond
	c.TranslatorTimeout = 0
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Validate reports settings the client cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.SupabaseURL) == "" {
		errs = append(errs, errors.New("supabase_url is required"))
	}
	if strings.TrimSpace(c.SupabaseAnonKey) == "" {
		errs = append(errs, errors.New("supabase_anon_key is required"))
	}
	if strings.TrimSpace(c.TranslatorURL) == "" {
		errs = append(errs, errors.New("translator_url is required"))
	}
	switch c.StorageDriver {
	case StorageSupabase:
	case StorageS3:
		if c.S3AccessKey == "" || c.S3SecretKey == "" {
			errs = append(errs, errors.New("s3 driver needs s3_access_key and s3_secret_key"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage_driver %q", c.StorageDriver))
	}
	if c.HomeRecentLimit <= 0 {
		errs = append(errs, errors.New("home_recent_limit must be positive"))
	}
	if c.SearchDebounce < 0 || c.TranslatorTimeout < 0 {
		errs = append(errs, errors.New("durations must not be negative"))
	}
	return errors.Join(errs...)
}

// S3EndpointURL returns the S3-compatible endpoint, derived from SupabaseURL
// when not set explicitly.
func (c *Config) S3EndpointURL() string {
	if c.S3Endpoint != "" {
		return c.S3Endpoint
	}
	return strings.TrimRight(c.SupabaseURL, "/") + "/storage/v1/s3"
}

// LoadConfig builds a Config from defaults, then the JSON file named by
// -c/-config, then VIDTR_* environment variables (a .env file in the working
// directory is honoured), then command-line flags. Later sources win.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, DotEnvFile, lookupEnv); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
