package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adhdo-app/adhdo/internal/flagx"
	"github.com/adhdo-app/adhdo/internal/timex"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the configuration file. Pointer fields
// distinguish "absent" from a zero value.
type FileConfig struct {
	DatabasePath          *string         `json:"database_path" yaml:"database_path"`
	AdProbability         *int            `json:"ad_probability" yaml:"ad_probability"`
	VisibilityProbability *int            `json:"visibility_probability" yaml:"visibility_probability"`
	Shuffle               *bool           `json:"shuffle" yaml:"shuffle"`
	RandomizeSpec         *string         `json:"randomize_spec" yaml:"randomize_spec"`
	HyperfocusDuration    *timex.Duration `json:"hyperfocus_duration" yaml:"hyperfocus_duration"`
	SearchCatalogPath     *string         `json:"search_catalog" yaml:"search_catalog"`
	LogLevel              *string         `json:"log_level" yaml:"log_level"`
	LogFormat             *string         `json:"log_format" yaml:"log_format"`
}

// parseFile overlays cfg with the file named by -c/-config, if any.
func parseFile(cfg *Config, args []string) error {
	path := flagx.JsonConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	fc, err := decodeFile(path, data)
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

// decodeFile picks the format by extension: .yaml and .yml are YAML,
// anything else is JSON that may carry comments and trailing commas.
func decodeFile(path string, data []byte) (FileConfig, error) {
	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return FileConfig{}, err
		}
	default:
		if err := json.Unmarshal(jsonc.ToJSON(data), &fc); err != nil {
			return FileConfig{}, err
		}
	}
	return fc, nil
}

func (fc FileConfig) apply(cfg *Config) {
	if fc.DatabasePath != nil {
		cfg.DatabasePath = *fc.DatabasePath
	}
	if fc.AdProbability != nil {
		cfg.AdProbability = *fc.AdProbability
	}
	if fc.VisibilityProbability != nil {
		cfg.VisibilityProbability = *fc.VisibilityProbability
	}
	if fc.Shuffle != nil {
		cfg.Shuffle = *fc.Shuffle
	}
	if fc.RandomizeSpec != nil {
		cfg.RandomizeSpec = *fc.RandomizeSpec
	}
	if fc.HyperfocusDuration != nil {
		cfg.HyperfocusDuration = fc.HyperfocusDuration.Duration
	}
	if fc.SearchCatalogPath != nil {
		cfg.SearchCatalogPath = *fc.SearchCatalogPath
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogFormat != nil {
		cfg.LogFormat = *fc.LogFormat
	}
}
