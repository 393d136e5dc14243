package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aevon-lab/bestsellers/internal/core/ranking"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix selects environment overrides, e.g. BESTSELLERS_CACHE__TTL=5m sets cache.ttl.
const EnvPrefix = "BESTSELLERS_"

// Config represents the top-level application config plus the resolved ranking policy.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Log       LogConfig       `koanf:"log"`
	Ranking   RankingConfig   `koanf:"ranking"`
	Cache     CacheConfig     `koanf:"cache"`
	Recompute RecomputeConfig `koanf:"recompute"`
	Query     QueryConfig     `koanf:"query"`

	// Policy is populated by Load from ranking.policy_file (or defaults).
	Policy ranking.Policy `koanf:"-"`
}

type ServerConfig struct {
	Port int    `koanf:"port"`
	Host string `koanf:"host"`
	Mode string `koanf:"mode"` // debug | release
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type DatabaseConfig struct {
	Type         string `koanf:"type"` // postgres | memory
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
	// SeedFile optionally preloads the memory store with products and sales.
	SeedFile string `koanf:"seed_file"`
}

type LogConfig struct {
	Level string `koanf:"level"` // debug | info | warn | error
}

// SlogLevel maps the configured level; unknown values fall back to info.
func (c LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

type RankingConfig struct {
	// Epoch starts the all-time window (RFC 3339).
	Epoch      string `koanf:"epoch"`
	PolicyFile string `koanf:"policy_file"`
}

func (c RankingConfig) EpochTime() time.Time {
	t, err := time.Parse(time.RFC3339, c.Epoch)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

type CacheConfig struct {
	TTL           string `koanf:"ttl"`
	Shards        int    `koanf:"shards"`
	SoftCap       int    `koanf:"soft_cap"`
	SweepInterval string `koanf:"sweep_interval"`
}

func (c CacheConfig) TTLDuration() time.Duration           { return mustDuration(c.TTL) }
func (c CacheConfig) SweepIntervalDuration() time.Duration { return mustDuration(c.SweepInterval) }

type RecomputeConfig struct {
	Enabled      bool   `koanf:"enabled"`
	Interval     string `koanf:"interval"`
	RunAt        string `koanf:"run_at"`
	RunOnStart   bool   `koanf:"run_on_start"`
	Timeout      string `koanf:"timeout"`
	WriteTimeout string `koanf:"write_timeout"`
	WorkerCount  int    `koanf:"worker_count"`
}

func (c RecomputeConfig) IntervalDuration() time.Duration     { return mustDuration(c.Interval) }
func (c RecomputeConfig) TimeoutDuration() time.Duration      { return mustDuration(c.Timeout) }
func (c RecomputeConfig) WriteTimeoutDuration() time.Duration { return mustDuration(c.WriteTimeout) }

type QueryConfig struct {
	DefaultPageSize int    `koanf:"default_page_size"`
	MaxPageSize     int    `koanf:"max_page_size"`
	Timeout         string `koanf:"timeout"`
}

func (c QueryConfig) TimeoutDuration() time.Duration { return mustDuration(c.Timeout) }

// mustDuration is only called on values that passed Validate.
func mustDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}

func validatePositiveDuration(name, value string) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	if d <= 0 {
		return fmt.Errorf("%s must be > 0", name)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	switch c.Database.Type {
	case "postgres":
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database.dsn is required")
		}
		if c.Database.MaxOpenConns <= 0 {
			return fmt.Errorf("database.max_open_conns must be > 0")
		}
		if c.Database.MaxIdleConns <= 0 {
			return fmt.Errorf("database.max_idle_conns must be > 0")
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported database.type %q (must be postgres or memory)", c.Database.Type)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q (must be debug, info, warn or error)", c.Log.Level)
	}

	if _, err := time.Parse(time.RFC3339, c.Ranking.Epoch); err != nil {
		return fmt.Errorf("invalid ranking.epoch %q (must be RFC 3339): %w", c.Ranking.Epoch, err)
	}

	if err := validatePositiveDuration("cache.ttl", c.Cache.TTL); err != nil {
		return err
	}
	if err := validatePositiveDuration("cache.sweep_interval", c.Cache.SweepInterval); err != nil {
		return err
	}
	if c.Cache.Shards <= 0 {
		return fmt.Errorf("cache.shards must be > 0")
	}
	if c.Cache.SoftCap <= 0 {
		return fmt.Errorf("cache.soft_cap must be > 0")
	}

	if err := validatePositiveDuration("recompute.interval", c.Recompute.Interval); err != nil {
		return err
	}
	if err := validatePositiveDuration("recompute.timeout", c.Recompute.Timeout); err != nil {
		return err
	}
	if err := validatePositiveDuration("recompute.write_timeout", c.Recompute.WriteTimeout); err != nil {
		return err
	}
	if _, err := time.Parse("15:04", c.Recompute.RunAt); err != nil {
		return fmt.Errorf("invalid recompute.run_at %q (must be HH:MM)", c.Recompute.RunAt)
	}
	if c.Recompute.WorkerCount <= 0 {
		return fmt.Errorf("recompute.worker_count must be > 0")
	}

	if c.Query.MaxPageSize <= 0 {
		return fmt.Errorf("query.max_page_size must be > 0")
	}
	if c.Query.DefaultPageSize <= 0 || c.Query.DefaultPageSize > c.Query.MaxPageSize {
		return fmt.Errorf("query.default_page_size must be between 1 and query.max_page_size")
	}
	if err := validatePositiveDuration("query.timeout", c.Query.Timeout); err != nil {
		return err
	}

	return nil
}

// Load parses config from file + env, validates it, then loads the ranking policy.
// An empty configPath skips the file layer.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":             8080,
		"server.host":             "0.0.0.0",
		"server.mode":             "release",
		"database.type":           "postgres",
		"database.dsn":            "postgres://localhost:5432/shop?sslmode=disable",
		"database.max_open_conns": 25,
		"database.max_idle_conns": 25,
		"database.auto_migrate":   false,
		"database.seed_file":      "",
		"log.level":               "info",
		"ranking.epoch":           "2024-01-01T00:00:00Z",
		"ranking.policy_file":     "",
		"cache.ttl":               "10m",
		"cache.shards":            16,
		"cache.soft_cap":          80,
		"cache.sweep_interval":    "1m",
		"recompute.enabled":       true,
		"recompute.interval":      "24h",
		"recompute.run_at":        "00:00",
		"recompute.run_on_start":  false,
		"recompute.timeout":       "30m",
		"recompute.write_timeout": "30s",
		"recompute.worker_count":  8,
		"query.default_page_size": 20,
		"query.max_page_size":     100,
		"query.timeout":           "10s",
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	policy, err := ranking.LoadPolicyFile(cfg.Ranking.PolicyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load ranking policy: %w", err)
	}
	cfg.Policy = policy

	return &cfg, nil
}
