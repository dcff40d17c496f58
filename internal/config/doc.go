// Package config loads runtime configuration for the ADHDo CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. Files ending in .yaml
//     or .yml are YAML; anything else is JSON, comments allowed.
//  3. ADHDO_* environment variables. LoadConfig first copies ./.env into the
//     environment without overriding variables that are already set.
//  4. Command-line flags, which override earlier values.
//
// Feed preferences saved with the CLI "set" command are applied afterwards by
// (*Config).ApplyFeedSettings and win over defaults and the file, but not
// over feed values given by flag or environment variable.
//
// Supported flags
//
//	-d string     path to the SQLite database file
//	-ad int       advert probability in percent
//	-vis int      visibility probability of completed tasks in percent
//	-shuffle      shuffle the regular feed (use -shuffle=false to disable)
//	-r string     cron spec for feed re-randomization, e.g. "@every 30s"
//	-f duration   hyperfocus session length, e.g. "25m"
//	-s string     JSON file with curated search content
//	-l string     log level: debug, info, warn, error
//
// Environment
//
//	ADHDO_DB, ADHDO_AD_PROBABILITY, ADHDO_VISIBILITY_PROBABILITY,
//	ADHDO_SHUFFLE, ADHDO_RANDOMIZE, ADHDO_HYPERFOCUS, ADHDO_SEARCH_CATALOG,
//	ADHDO_LOG_LEVEL, ADHDO_LOG_FORMAT
//
// # File schema
//
// Durations use timex.Duration, so they may be strings like "10s" or integer
// nanoseconds. Absent keys keep their previous value. YAML uses the same
// keys:
//
//	{
//	  "database_path": "adhdo.db",
//	  "ad_probability": 25,
//	  "visibility_probability": 75,
//	  "shuffle": true,
//	  "randomize_spec": "@every 30s",
//	  "hyperfocus_duration": "10s",
//	  "search_catalog": "tips.json",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
package config
