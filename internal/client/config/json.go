package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/vidtranslator/internal/flagx"
	"github.com/dmitrijs2005/vidtranslator/internal/timex"
)

// jsonConfig mirrors Config for decoding. Pointers distinguish absent keys
// from zero values so a partial file only overrides what it names.
type jsonConfig struct {
	SupabaseURL       *string         `json:"supabase_url"`
	SupabaseAnonKey   *string         `json:"supabase_anon_key"`
	TranslatorURL     *string         `json:"translator_url"`
	StorageDriver     *string         `json:"storage_driver"`
	OriginalBucket    *string         `json:"original_bucket"`
	S3Endpoint        *string         `json:"s3_endpoint"`
	S3Region          *string         `json:"s3_region"`
	S3AccessKey       *string         `json:"s3_access_key"`
	S3SecretKey       *string         `json:"s3_secret_key"`
	SessionDB         *string         `json:"session_db"`
	HomeRecentLimit   *int            `json:"home_recent_limit"`
	SearchDebounce    *timex.Duration `json:"search_debounce"`
	TranslatorTimeout *timex.Duration `json:"translator_timeout"`
	LogLevel          *string         `json:"log_level"`
	LogFormat         *string         `json:"log_format"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	setString(&cfg.SupabaseURL, jc.SupabaseURL)
	setString(&cfg.SupabaseAnonKey, jc.SupabaseAnonKey)
	setString(&cfg.TranslatorURL, jc.TranslatorURL)
	setString(&cfg.StorageDriver, jc.StorageDriver)
	setString(&cfg.OriginalBucket, jc.OriginalBucket)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.SessionDB, jc.SessionDB)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	if jc.HomeRecentLimit != nil {
		cfg.HomeRecentLimit = *jc.HomeRecentLimit
	}
	if jc.SearchDebounce != nil {
		cfg.SearchDebounce = jc.SearchDebounce.Duration
	}
	if jc.TranslatorTimeout != nil {
		cfg.TranslatorTimeout = jc.TranslatorTimeout.Duration
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
