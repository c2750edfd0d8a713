package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DotEnvFile is read, when present, before the process environment. Values
// already set in the environment take precedence over the file.
const DotEnvFile = ".env"

const envPrefix = "VIDTR_"

var lookupEnv = os.LookupEnv

type envBinding struct {
	name string
	set  func(cfg *Config, v string) error
}

var envBindings = []envBinding{
	{"SUPABASE_URL", func(c *Config, v string) error { c.SupabaseURL = v; return nil }},
	{"SUPABASE_ANON_KEY", func(c *Config, v string) error { c.SupabaseAnonKey = v; return nil }},
	{"TRANSLATOR_URL", func(c *Config, v string) error { c.TranslatorURL = v; return nil }},
	{"STORAGE_DRIVER", func(c *Config, v string) error { c.StorageDriver = v; return nil }},
	{"ORIGINAL_BUCKET", func(c *Config, v string) error { c.OriginalBucket = v; return nil }},
	{"S3_ENDPOINT", func(c *Config, v string) error { c.S3Endpoint = v; return nil }},
	{"S3_REGION", func(c *Config, v string) error { c.S3Region = v; return nil }},
	{"S3_ACCESS_KEY", func(c *Config, v string) error { c.S3AccessKey = v; return nil }},
	{"S3_SECRET_KEY", func(c *Config, v string) error { c.S3SecretKey = v; return nil }},
	{"SESSION_DB", func(c *Config, v string) error { c.SessionDB = v; return nil }},
	{"HOME_RECENT_LIMIT", func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		c.HomeRecentLimit = n
		return nil
	}},
	{"SEARCH_DEBOUNCE", func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		c.SearchDebounce = d
		return nil
	}},
	{"TRANSLATOR_TIMEOUT", func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		c.TranslatorTimeout = d
		return nil
	}},
	{"LOG_LEVEL", func(c *Config, v string) error { c.LogLevel = v; return nil }},
	{"LOG_FORMAT", func(c *Config, v string) error { c.LogFormat = v; return nil }},
}

// parseEnv overlays VIDTR_* variables. dotenv names an optional file whose
// entries fill in variables missing from lookup.
func parseEnv(cfg *Config, dotenv string, lookup func(string) (string, bool)) error {
	fileVals := map[string]string{}
	if dotenv != "" {
		vals, err := godotenv.Read(dotenv)
		switch {
		case err == nil:
			fileVals = vals
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("read %s: %w", dotenv, err)
		}
	}

	for _, b := range envBindings {
		key := envPrefix + b.name
		v, ok := lookup(key)
		if !ok {
			v, ok = fileVals[key]
		}
		if !ok || v == "" {
			continue
		}
		if err := b.set(cfg, v); err != nil {
			return fmt.Errorf("env %s: %w", key, err)
		}
	}
	return nil
}
