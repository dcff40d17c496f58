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

// Environment variables read by parseEnv.
const (
	EnvDatabasePath          = "ADHDO_DB"
	EnvAdProbability         = "ADHDO_AD_PROBABILITY"
	EnvVisibilityProbability = "ADHDO_VISIBILITY_PROBABILITY"
	EnvShuffle               = "ADHDO_SHUFFLE"
	EnvRandomizeSpec         = "ADHDO_RANDOMIZE"
	EnvHyperfocusDuration    = "ADHDO_HYPERFOCUS"
	EnvSearchCatalog         = "ADHDO_SEARCH_CATALOG"
	EnvLogLevel              = "ADHDO_LOG_LEVEL"
	EnvLogFormat             = "ADHDO_LOG_FORMAT"
)

// lookupEnv is a test seam for os.LookupEnv.
var lookupEnv = os.LookupEnv

// loadDotEnv copies variables from the dotenv file at path into the process
// environment without overriding variables that are already set. A missing
// file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// parseEnv overlays cfg with ADHDO_* variables. Feed values set here count
// as explicit and are not overridden by persisted settings.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDatabasePath); ok {
		cfg.DatabasePath = v
	}
	if v, ok := lookup(EnvAdProbability); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAdProbability, err)
		}
		cfg.AdProbability = n
		cfg.markExplicit("ad")
	}
	if v, ok := lookup(EnvVisibilityProbability); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVisibilityProbability, err)
		}
		cfg.VisibilityProbability = n
		cfg.markExplicit("vis")
	}
	if v, ok := lookup(EnvShuffle); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvShuffle, err)
		}
		cfg.Shuffle = b
		cfg.markExplicit("shuffle")
	}
	if v, ok := lookup(EnvRandomizeSpec); ok {
		cfg.RandomizeSpec = v
	}
	if v, ok := lookup(EnvHyperfocusDuration); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHyperfocusDuration, err)
		}
		cfg.HyperfocusDuration = d
	}
	if v, ok := lookup(EnvSearchCatalog); ok {
		cfg.SearchCatalogPath = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvLogFormat); ok {
		cfg.LogFormat = v
	}
	return nil
}
