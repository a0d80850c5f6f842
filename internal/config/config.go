// Package config loads pandiff's configuration file and batch manifests.
//
// The configuration file is TOML, read from $XDG_CONFIG_HOME/pandiff/config.toml
// (or ~/.config/pandiff/config.toml) unless --config names another file:
//
//	[log]
//	level = "debug"
//
//	[output]
//	indent = 2
//	decorate = "latex"
//
//	[cache]
//	backend = "redis"   # file, redis, mongo or none
//	ttl = "72h"
//	prefix = "staging:"
//
//	[redis]
//	addr = "cache.internal:6379"
//
//	[server]
//	addr = ":8080"
//
// A missing default file is not an error. Environment variables override
// the file; see [Config.ApplyEnv].
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/pandiff/pkg/cache"
	perrors "github.com/matzehuels/pandiff/pkg/errors"
	"github.com/matzehuels/pandiff/pkg/pipeline"
)

const appName = "pandiff"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Environment variables read by ApplyEnv.
const (
	EnvLogLevel     = "PANDIFF_LOG_LEVEL"
	EnvCacheBackend = "PANDIFF_CACHE_BACKEND"
	EnvRedisAddr    = "PANDIFF_REDIS_ADDR"
	EnvMongoURI     = "PANDIFF_MONGO_URI"
	EnvServerAddr   = "PANDIFF_SERVER_ADDR"
)

// DefaultServerAddr is the listen address of "pandiff serve".
const DefaultServerAddr = "localhost:8080"

// DefaultMaxBodyBytes bounds the request bodies the server accepts.
const DefaultMaxBodyBytes = 32 << 20

// Config is the complete configuration.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Output OutputConfig `toml:"output"`
	Cache  CacheConfig  `toml:"cache"`
	Redis  RedisConfig  `toml:"redis"`
	Mongo  MongoConfig  `toml:"mongo"`
	Server ServerConfig `toml:"server"`

	// Path is the file the configuration was read from, empty if none.
	Path string `toml:"-"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type OutputConfig struct {
	Indent   int    `toml:"indent"`
	Decorate string `toml:"decorate"`
}

type CacheConfig struct {
	Backend string   `toml:"backend"`
	Dir     string   `toml:"dir"`
	TTL     Duration `toml:"ttl"`
	Prefix  string   `toml:"prefix"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

type ServerConfig struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// Duration is a time.Duration written as a string ("36h") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info"},
		Output: OutputConfig{Indent: pipeline.DefaultIndent},
		Cache: CacheConfig{
			Backend: BackendFile,
			Dir:     DefaultCacheDir(),
			TTL:     Duration{cache.TTLDiff},
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Mongo: MongoConfig{
			URI:        "mongodb://localhost:27017",
			Database:   appName,
			Collection: "cache",
		},
		Server: ServerConfig{
			Addr:         DefaultServerAddr,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
	}
}

// DefaultPath returns the default location of the configuration file.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// DefaultCacheDir returns the file cache directory (~/.cache/pandiff/).
func DefaultCacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".cache", appName)
}

// Load reads the configuration at path, or at DefaultPath when path is
// empty, applies environment overrides and validates the result. An
// explicit path must exist; a missing default file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		err := cfg.decodeFile(path)
		switch {
		case err == nil:
			cfg.Path = path
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		case errors.Is(err, fs.ErrNotExist):
			return nil, perrors.New(perrors.ErrCodeFileNotFound, "config %s: no such file", path)
		default:
			return nil, err
		}
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeFile decodes path over cfg. Keys pandiff does not know are
// rejected so that typos do not go unnoticed.
func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return perrors.Wrap(perrors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return perrors.New(perrors.ErrCodeInvalidInput, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnv overrides configuration values from PANDIFF_* environment
// variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvCacheBackend); v != "" {
		c.Cache.Backend = strings.ToLower(v)
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv(EnvMongoURI); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv(EnvServerAddr); v != "" {
		c.Server.Addr = v
	}
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(field, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%s: %s", field, fmt.Sprintf(format, args...)))
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		invalid("log.level", "unknown level %q", c.Log.Level)
	}
	if c.Output.Indent < 0 || c.Output.Indent > pipeline.MaxIndent {
		invalid("output.indent", "must be between 0 and %d", pipeline.MaxIndent)
	}
	if c.Output.Decorate != "" {
		if err := perrors.ValidateFormat(c.Output.Decorate); err != nil {
			invalid("output.decorate", "%s", perrors.UserMessage(err))
		}
	}

	switch c.Cache.Backend {
	case BackendFile:
		if c.Cache.Dir == "" {
			invalid("cache.dir", "required for the file backend")
		}
	case BackendRedis:
		if c.Redis.Addr == "" {
			invalid("redis.addr", "required for the redis backend")
		}
		if c.Redis.DB < 0 {
			invalid("redis.db", "must not be negative")
		}
	case BackendMongo:
		if c.Mongo.URI == "" {
			invalid("mongo.uri", "required for the mongo backend")
		}
	case BackendNone:
	default:
		invalid("cache.backend", "unknown backend %q (want file, redis, mongo or none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		invalid("cache.ttl", "must not be negative")
	}

	if c.Server.Addr == "" {
		invalid("server.addr", "required")
	}
	if c.Server.MaxBodyBytes <= 0 {
		invalid("server.max_body_bytes", "must be positive")
	}

	if len(errs) > 0 {
		return perrors.Wrap(perrors.ErrCodeInvalidInput, errors.Join(errs...), "invalid config")
	}
	return nil
}

// LogLevel returns the configured log level.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Keyer returns the cache keyer for the configured prefix.
func (c *Config) Keyer() cache.Keyer {
	if c.Cache.Prefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Cache.Prefix)
}

// RedisOptions converts the [redis] section for cache.NewRedisCache.
func (c *Config) RedisOptions() cache.RedisConfig {
	return cache.RedisConfig{Addr: c.Redis.Addr, Password: c.Redis.Password, DB: c.Redis.DB}
}

// MongoOptions converts the [mongo] section for cache.NewMongoCache.
func (c *Config) MongoOptions() cache.MongoConfig {
	return cache.MongoConfig{URI: c.Mongo.URI, Database: c.Mongo.Database, Collection: c.Mongo.Collection}
}
