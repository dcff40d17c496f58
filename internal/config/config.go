package config

import (
	"os"
	"time"

	"github.com/adhdo-app/adhdo/internal/models"
)

// Config holds runtime settings for the ADHDo CLI.
type Config struct {
	DatabasePath string

	// Feed probabilities are percentages rolled against [0, 100].
	AdProbability         int
	VisibilityProbability int
	Shuffle               bool

	// RandomizeSpec is a cron spec; empty disables periodic randomization.
	RandomizeSpec string

	HyperfocusDuration time.Duration

	// SearchCatalogPath names a JSON file of curated search content; empty
	// uses the built-in catalog.
	SearchCatalogPath string

	LogLevel  string
	LogFormat string

	// explicit records the feed values given by flag or environment.
	explicit map[string]bool
}

// LoadDefaults populates c with the values the app ships with.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "adhdo.db"
	c.AdProbability = 25
	c.VisibilityProbability = 75
	c.Shuffle = true
	c.RandomizeSpec = "@every 30s"
	c.HyperfocusDuration = 10 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig reads ./.env into the environment if present, then builds a
// Config from defaults, the optional config file, ADHDO_* variables and the
// process arguments, in that order.
func LoadConfig() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	return Load(os.Args[1:])
}

// Load is LoadConfig over an explicit argument list, without reading .env.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, lookupEnv); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) markExplicit(name string) {
	if c.explicit == nil {
		c.explicit = make(map[string]bool)
	}
	c.explicit[name] = true
}

// ApplyFeedSettings overlays persisted feed preferences, skipping any value
// whose flag was given explicitly.
func (c *Config) ApplyFeedSettings(fs models.FeedSettings) {
	if fs.AdProbability != nil && !c.explicit["ad"] {
		c.AdProbability = *fs.AdProbability
	}
	if fs.VisibilityProbability != nil && !c.explicit["vis"] {
		c.VisibilityProbability = *fs.VisibilityProbability
	}
	if fs.Shuffle != nil && !c.explicit["shuffle"] {
		c.Shuffle = *fs.Shuffle
	}
}
