// Package config resolves kanadle settings.
//
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// Env vars use the KANADLE_ prefix with "__" separating nested keys, e.g.
// KANADLE_SOLVER__NARROW_THRESHOLD=150.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/robalobadob/kanadle/internal/feedback"
	"github.com/robalobadob/kanadle/internal/solver"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "KANADLE_"

// DefaultDatabase is where openings and daily results persist unless
// configured otherwise. An empty value or InMemory keeps them in memory.
const DefaultDatabase = "./data/kanadle.db"

// InMemory disables the database.
const InMemory = ":memory:"

// Config holds all kanadle configuration options.
type Config struct {
	Dictionary   string       `koanf:"dictionary"`
	Frequencies  string       `koanf:"frequencies"`
	Database     string       `koanf:"database"`
	LogLevel     string       `koanf:"log_level"`
	DisplayLimit int          `koanf:"display_limit"`
	Solver       SolverConfig `koanf:"solver"`
	Server       ServerConfig `koanf:"server"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

// SolverConfig tunes the guess search.
type SolverConfig struct {
	NarrowThreshold  int                 `koanf:"narrow_threshold"`
	Workers          int                 `koanf:"workers"`
	PatternCacheSize int                 `koanf:"pattern_cache_size"`
	FeedbackCache    FeedbackCacheConfig `koanf:"feedback_cache"`
}

// FeedbackCacheConfig selects the feedback memo policy.
type FeedbackCacheConfig struct {
	Policy   string `koanf:"policy"`
	Capacity int    `koanf:"capacity"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Addr         string        `koanf:"addr"`
	ClientOrigin string        `koanf:"client_origin"`
	AdminSecret  string        `koanf:"admin_secret"`
	DailySalt    string        `koanf:"daily_salt"`
	Rows         int           `koanf:"rows"`
	SessionTTL   time.Duration `koanf:"session_ttl"`
	MaxSessions  int           `koanf:"max_sessions"`
}

// defaults are the lowest-precedence layer.
var defaults = map[string]interface{}{
	"dictionary":                     "",
	"frequencies":                    "",
	"database":                       DefaultDatabase,
	"log_level":                      "info",
	"display_limit":                  50,
	"solver.narrow_threshold":        solver.DefaultNarrowThreshold,
	"solver.workers":                 0,
	"solver.pattern_cache_size":      solver.DefaultPatternCacheSize,
	"solver.feedback_cache.policy":   string(feedback.PolicyLRU),
	"solver.feedback_cache.capacity": feedback.DefaultCapacity,
	"server.addr":                    ":5175",
	"server.client_origin":           "http://localhost:5173",
	"server.admin_secret":            "",
	"server.daily_salt":              "local_dev_salt",
	"server.rows":                    6,
	"server.session_ttl":             "24h",
	"server.max_sessions":            10_000,
}

// flagKeys maps CLI flag names to config keys where they differ.
var flagKeys = map[string]string{
	"threshold":    "solver.narrow_threshold",
	"workers":      "solver.workers",
	"cache-policy": "solver.feedback_cache.policy",
	"cache-size":   "solver.feedback_cache.capacity",
	"addr":         "server.addr",
	"limit":        "display_limit",
}

// findConfigFile finds the config file to use.
// Priority: explicit path > kanadle.yaml > kanadle.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"kanadle.yaml", "kanadle.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load resolves configuration from defaults, the config file, KANADLE_ env
// vars and explicitly set flags, then validates it. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: KANADLE_SOLVER__WORKERS -> solver.workers
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (only those explicitly set)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			if !k.Exists(key) {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the solver cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Solver.NarrowThreshold < 1 {
		errs = append(errs, fmt.Errorf("solver.narrow_threshold must be at least 1, got %d", c.Solver.NarrowThreshold))
	}
	if c.Solver.PatternCacheSize < 0 {
		errs = append(errs, fmt.Errorf("solver.pattern_cache_size must not be negative, got %d", c.Solver.PatternCacheSize))
	}
	if _, err := feedback.NewCache(feedback.Policy(c.Solver.FeedbackCache.Policy), c.Solver.FeedbackCache.Capacity); err != nil {
		errs = append(errs, fmt.Errorf("solver.feedback_cache: %w", err))
	}
	if c.DisplayLimit < 0 {
		errs = append(errs, fmt.Errorf("display_limit must not be negative, got %d", c.DisplayLimit))
	}
	if c.Server.Rows < 1 {
		errs = append(errs, fmt.Errorf("server.rows must be at least 1, got %d", c.Server.Rows))
	}
	if c.Server.SessionTTL < 0 {
		errs = append(errs, fmt.Errorf("server.session_ttl must not be negative, got %s", c.Server.SessionTTL))
	}
	if c.Server.MaxSessions < 0 {
		errs = append(errs, fmt.Errorf("server.max_sessions must not be negative, got %d", c.Server.MaxSessions))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// DatabasePath is the SQLite file to open, or "" when persistence is off.
func (c *Config) DatabasePath() string {
	if c.Database == InMemory {
		return ""
	}
	return c.Database
}

// Level parses LogLevel.
func (c *Config) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}

// FeedbackCache builds the configured feedback memo.
func (c *Config) FeedbackCache() (feedback.Cache, error) {
	return feedback.NewCache(feedback.Policy(c.Solver.FeedbackCache.Policy), c.Solver.FeedbackCache.Capacity)
}

// SelectorOptions translates the solver settings into selector options.
func (c *Config) SelectorOptions() []solver.Option {
	return []solver.Option{
		solver.WithNarrowThreshold(c.Solver.NarrowThreshold),
		solver.WithWorkers(c.Solver.Workers),
		solver.WithPatternCacheSize(c.Solver.PatternCacheSize),
	}
}
