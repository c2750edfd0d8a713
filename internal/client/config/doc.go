// Package config loads runtime configuration for the vidtranslator client.
//
// # Sources and precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. VIDTR_* environment variables, with a .env file as fallback.
//  4. Command-line flags -u, -k, -t, -d and -l.
//
// # JSON schema
//
// Durations accept Go duration strings or integer nanoseconds:
//
//	{
//	  "supabase_url": "https://xyz.supabase.co",
//	  "supabase_anon_key": "eyJ...",
//	  "translator_url": "http://192.168.1.51:5000",
//	  "storage_driver": "supabase",
//	  "original_bucket": "original_videos",
//	  "session_db": "vidtranslator.db",
//	  "home_recent_limit": 5,
//	  "search_debounce": "300ms",
//	  "translator_timeout": "0s",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
//
// The hosted project URL and key have no defaults; LoadConfig fails when they
// are missing from every source.
package config
