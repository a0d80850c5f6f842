package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pandiff/pkg/cache"
	perrors "github.com/matzehuels/pandiff/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Path != "" {
		t.Errorf("Path = %q, want empty", cfg.Path)
	}
	if cfg.Cache.Backend != BackendFile || cfg.Cache.Dir != "/tmp/xdg-cache/pandiff" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Output.Indent != 2 {
		t.Errorf("Indent = %d, want 2", cfg.Output.Indent)
	}
	if cfg.LogLevel() != log.InfoLevel {
		t.Errorf("LogLevel = %v", cfg.LogLevel())
	}
}

func TestLoadDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "pandiff"), 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "pandiff", "config.toml")
	if err := os.WriteFile(path, []byte("[log]\nlevel = \"debug\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != path || cfg.LogLevel() != log.DebugLevel {
		t.Errorf("Path = %q, level = %v", cfg.Path, cfg.LogLevel())
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[output]
indent = 0
decorate = "latex"

[cache]
backend = "redis"
ttl = "36h"
prefix = "staging:"

[redis]
addr = "cache:6379"
db = 2

[server]
addr = ":9000"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output.Indent != 0 || cfg.Output.Decorate != "latex" {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.Cache.TTL.Duration != 36*time.Hour {
		t.Errorf("TTL = %v", cfg.Cache.TTL)
	}
	if got := cfg.RedisOptions(); got.Addr != "cache:6379" || got.DB != 2 {
		t.Errorf("RedisOptions() = %+v", got)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.MaxBodyBytes != DefaultMaxBodyBytes {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if got := cfg.Mongo.Database; got != "pandiff" {
		t.Errorf("unset section lost its defaults: database = %q", got)
	}
	if key := cfg.Keyer().DiffKey("a", "b", cache.DiffKeyOpts{}); !strings.HasPrefix(key, "staging:") {
		t.Errorf("Keyer() key = %q, want staging: prefix", key)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    perrors.Code
		text    string
	}{
		{"syntax", "[cache\nbackend=1", perrors.ErrCodeInvalidInput, "config"},
		{"unknown key", "[cache]\nbacknd = \"file\"\n", perrors.ErrCodeInvalidInput, "cache.backnd"},
		{"unknown backend", "[cache]\nbackend = \"memcached\"\n", perrors.ErrCodeInvalidInput, "memcached"},
		{"bad ttl", "[cache]\nttl = \"soon\"\n", perrors.ErrCodeInvalidInput, "config"},
		{"negative ttl", "[cache]\nttl = \"-1h\"\n", perrors.ErrCodeInvalidInput, "cache.ttl"},
		{"bad indent", "[output]\nindent = 40\n", perrors.ErrCodeInvalidInput, "output.indent"},
		{"bad format", "[output]\ndecorate = \"LaTeX!\"\n", perrors.ErrCodeInvalidInput, "output.decorate"},
		{"bad level", "[log]\nlevel = \"loud\"\n", perrors.ErrCodeInvalidInput, "log.level"},
		{"negative db", "[cache]\nbackend = \"redis\"\n[redis]\ndb = -1\n", perrors.ErrCodeInvalidInput, "redis.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !perrors.Is(err, tt.code) {
				t.Fatalf("error = %v, want %s", err, tt.code)
			}
			if !strings.Contains(err.Error(), tt.text) {
				t.Errorf("error %q should mention %q", err, tt.text)
			}
		})
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !perrors.Is(err, perrors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvCacheBackend, "MONGO")
	t.Setenv(EnvMongoURI, "mongodb://db:27017")
	t.Setenv(EnvRedisAddr, "redis:6379")
	t.Setenv(EnvServerAddr, ":7000")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load(writeConfig(t, "[cache]\nbackend = \"file\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.Backend != BackendMongo {
		t.Errorf("Backend = %q, want mongo", cfg.Cache.Backend)
	}
	if cfg.MongoOptions().URI != "mongodb://db:27017" || cfg.Redis.Addr != "redis:6379" {
		t.Errorf("env overrides not applied: %+v %+v", cfg.Mongo, cfg.Redis)
	}
	if cfg.Server.Addr != ":7000" || cfg.LogLevel() != log.WarnLevel {
		t.Errorf("Server.Addr = %q, level = %v", cfg.Server.Addr, cfg.LogLevel())
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Cache.Backend = "tape"
	cfg.Server.Addr = ""
	cfg.Server.MaxBodyBytes = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, field := range []string{"cache.backend", "server.addr", "server.max_body_bytes"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q should mention %s", err, field)
		}
	}
}

func TestDurationText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("90m")); err != nil {
		t.Fatal(err)
	}
	text, _ := d.MarshalText()
	if string(text) != "1h30m0s" {
		t.Errorf("MarshalText() = %q", text)
	}
}
