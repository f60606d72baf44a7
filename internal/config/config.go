// Package config loads lgi settings from a TOML file, a .env file and LGI_*
// environment variables, in increasing order of precedence. Command-line
// flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/lgi/pkg/api"
	"github.com/matzehuels/lgi/pkg/batch"
	"github.com/matzehuels/lgi/pkg/cache"
	"github.com/matzehuels/lgi/pkg/pipeline"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "LGI_"

// Duration is a time.Duration that decodes from TOML strings like "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Config holds every tunable setting.
type Config struct {
	Workers   int      `toml:"workers"`
	ChunkSize int      `toml:"chunk_size"`
	Timeout   Duration `toml:"timeout"`
	Canonical bool     `toml:"canonical"`
	Seed      uint64   `toml:"seed"`

	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the translation cache.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	TTL       Duration `toml:"ttl"`
	Namespace string   `toml:"namespace"`
}

// ServerConfig configures `lgi serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		ChunkSize: batch.DefaultChunkSize,
		Canonical: true,
		Cache: CacheConfig{
			Backend:   string(cache.BackendFile),
			RedisAddr: cache.DefaultRedisAddr,
			TTL:       Duration{pipeline.DefaultTTL},
		},
		Server: ServerConfig{Addr: api.DefaultAddr},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/lgi/config.toml, falling back to
// ~/.config.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "lgi", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "lgi", "config.toml"), nil
}

// Load builds the configuration. A missing file at path is not an error
// unless path was given explicitly (required).
func Load(path string, required bool) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if !errors.Is(err, fs.ErrNotExist) || required {
				return nil, fmt.Errorf("load config %s: %w", path, err)
			}
		}
	}

	// .env is optional; variables already in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnv(os.Environ()); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// applyEnv overrides fields from LGI_* entries of environ.
func (c *Config) applyEnv(environ []string) error {
	var err error
	for _, item := range environ {
		key, val, ok := strings.Cut(item, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}

		switch strings.TrimPrefix(key, EnvPrefix) {
		case "WORKERS":
			c.Workers, err = strconv.Atoi(val)
		case "CHUNK_SIZE":
			c.ChunkSize, err = strconv.Atoi(val)
		case "TIMEOUT":
			c.Timeout.Duration, err = time.ParseDuration(val)
		case "CANONICAL":
			c.Canonical, err = strconv.ParseBool(val)
		case "SEED":
			c.Seed, err = strconv.ParseUint(val, 10, 64)
		case "CACHE_BACKEND":
			c.Cache.Backend = val
		case "CACHE_DIR":
			c.Cache.Dir = val
		case "CACHE_REDIS_ADDR":
			c.Cache.RedisAddr = val
		case "CACHE_TTL":
			c.Cache.TTL.Duration, err = time.ParseDuration(val)
		case "CACHE_NAMESPACE":
			c.Cache.Namespace = val
		case "SERVER_ADDR":
			c.Server.Addr = val
		}
		if err != nil {
			return fmt.Errorf("parse %s: %w", key, err)
		}
	}
	return nil
}

// Validate rejects settings no component could run with.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.ChunkSize < 0 {
		return fmt.Errorf("chunk_size must not be negative, got %d", c.ChunkSize)
	}
	if c.Timeout.Duration < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout.Duration)
	}
	switch cache.Backend(c.Cache.Backend) {
	case cache.BackendNone, cache.BackendFile, cache.BackendRedis, cache.BackendBadger:
	default:
		return fmt.Errorf("unknown cache backend %q (want none, file, redis or badger)", c.Cache.Backend)
	}
	return nil
}

// BatchOptions returns the worker settings as batch options.
func (c *Config) BatchOptions() batch.Options {
	return batch.Options{
		ChunkSize: c.ChunkSize,
		Workers:   c.Workers,
		Timeout:   c.Timeout.Duration,
	}
}

// CacheBackend returns the cache settings for cache.Open. An empty dir is
// replaced by defaultDir for the on-disk backends.
func (c *Config) CacheBackend(defaultDir string) cache.Config {
	dir := c.Cache.Dir
	if dir == "" {
		dir = defaultDir
	}
	return cache.Config{
		Backend:   cache.Backend(c.Cache.Backend),
		Dir:       dir,
		RedisAddr: c.Cache.RedisAddr,
	}
}
