package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/vidtranslator/internal/flagx"
)

// parseFlags overlays the command-line flags this package owns:
//
//	-u string   hosted project URL
//	-k string   hosted project anon key
//	-t string   translation backend base URL
//	-d string   path of the local session database
//	-l string   log level (debug, info, warn, error)
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-u", "-k", "-t", "-d", "-l"})

	fs := flag.NewFlagSet("vidtranslator", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.SupabaseURL, "u", cfg.SupabaseURL, "hosted project URL")
	fs.StringVar(&cfg.SupabaseAnonKey, "k", cfg.SupabaseAnonKey, "hosted project anon key")
	fs.StringVar(&cfg.TranslatorURL, "t", cfg.TranslatorURL, "translation backend URL")
	fs.StringVar(&cfg.SessionDB, "d", cfg.SessionDB, "session database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
