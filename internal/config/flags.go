package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/adhdo-app/adhdo/internal/flagx"
)

var (
	valuedFlags  = []string{"-d", "-ad", "-vis", "-r", "-f", "-s", "-l"}
	booleanFlags = []string{"-shuffle"}
)

// parseFlags overlays cfg with the flags it knows about; other arguments are
// filtered out with flagx.FilterArgs first.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, valuedFlags, booleanFlags)

	fs := flag.NewFlagSet("adhdo", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the SQLite database")
	fs.IntVar(&cfg.AdProbability, "ad", cfg.AdProbability, "advert probability (percent)")
	fs.IntVar(&cfg.VisibilityProbability, "vis", cfg.VisibilityProbability, "visibility probability of completed tasks (percent)")
	fs.BoolVar(&cfg.Shuffle, "shuffle", cfg.Shuffle, "shuffle the regular feed")
	fs.StringVar(&cfg.RandomizeSpec, "r", cfg.RandomizeSpec, "cron spec for feed re-randomization")
	fs.DurationVar(&cfg.HyperfocusDuration, "f", cfg.HyperfocusDuration, "hyperfocus session length")
	fs.StringVar(&cfg.SearchCatalogPath, "s", cfg.SearchCatalogPath, "JSON file with curated search content")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) { cfg.markExplicit(f.Name) })
	return nil
}
