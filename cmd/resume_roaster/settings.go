package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-roaster/internal/config"
	"github.com/jonathan/resume-roaster/internal/types"
)

// resolveConfig layers flags over the config file over the environment, then validates.
func resolveConfig(path string, flags config.Config) (config.Config, error) {
	var file config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		file = *loaded
	}

	base := file.MergeWithDefaults(config.FromEnv())
	cfg := flags.MergeWithDefaults(base)
	if cfg.APIURL == "" {
		return config.Config{}, fmt.Errorf("analysis service URL is required (set %s or use --api-url)", config.EnvAPIURL)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// resolveMode parses a mode flag, falling back to fallback when the flag is empty.
func resolveMode(flag string, fallback types.Mode) (types.Mode, error) {
	if flag == "" {
		return fallback, nil
	}
	return types.ParseMode(flag)
}

// colorEnabled reports whether ANSI styling should be written to out.
func colorEnabled(out io.Writer, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
