// Package config loads pscdeps settings.
//
// Settings are layered: built-in defaults, then a TOML file, then
// environment variables. Command-line flags are applied last by the caller.
//
//	[registry]
//	url = "https://registry.bower.io"
//	keyword = "purescript"
//
//	[cache]
//	store = "redis"
//
//	[redis]
//	url = "redis://localhost:6379/0"
//
// Unknown keys are rejected so typos do not silently fall back to defaults.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pscdeps/pkg/cache"
	"github.com/matzehuels/pscdeps/pkg/catalog"
	pscerrors "github.com/matzehuels/pscdeps/pkg/errors"
	"github.com/matzehuels/pscdeps/pkg/integrations/bower"
	"github.com/matzehuels/pscdeps/pkg/integrations/github"
	"github.com/matzehuels/pscdeps/pkg/registry"
)

// AppName names the configuration and cache directories.
const AppName = "pscdeps"

// Store kinds.
const (
	StoreFile   = "file"
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
)

// StoreKinds lists the accepted values of cache.store.
var StoreKinds = []string{StoreFile, StoreMemory, StoreRedis, StoreMongo}

// Environment variables read by [Config.ApplyEnv].
const (
	EnvGitHubToken = "GITHUB_TOKEN"
	EnvRedisURL    = "PSCDEPS_REDIS_URL"
	EnvMongoURI    = "PSCDEPS_MONGO_URI"
)

// Config is the complete pscdeps configuration.
type Config struct {
	Registry RegistryConfig `toml:"registry"`
	GitHub   GitHubConfig   `toml:"github"`
	Cache    CacheConfig    `toml:"cache"`
	Redis    RedisConfig    `toml:"redis"`
	Mongo    MongoConfig    `toml:"mongo"`
	Server   ServerConfig   `toml:"server"`
}

type RegistryConfig struct {
	URL     string `toml:"url"`
	Keyword string `toml:"keyword"`
}

type GitHubConfig struct {
	APIURL string `toml:"api_url"`
	RawURL string `toml:"raw_url"`
	Token  string `toml:"token"`
}

type CacheConfig struct {
	Store       string `toml:"store"`
	Dir         string `toml:"dir"`
	Concurrency int    `toml:"concurrency"`
}

type RedisConfig struct {
	URL    string `toml:"url"`
	Prefix string `toml:"prefix"`
}

type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
	// ResponseCacheSize bounds the number of memoized query responses.
	ResponseCacheSize int `toml:"response_cache_size"`
}

// Default returns the built-in configuration. The cache directory is left
// empty when no home directory can be determined.
func Default() *Config {
	dir, _ := DefaultCacheDir()
	return &Config{
		Registry: RegistryConfig{URL: bower.DefaultRegistryURL, Keyword: registry.DefaultKeyword},
		GitHub:   GitHubConfig{APIURL: github.DefaultAPIURL, RawURL: github.DefaultRawURL},
		Cache:    CacheConfig{Store: StoreFile, Dir: dir, Concurrency: catalog.DefaultConcurrency},
		Redis:    RedisConfig{Prefix: cache.DefaultRedisPrefix},
		Mongo:    MongoConfig{Database: cache.DefaultMongoDatabase, Collection: cache.DefaultMongoCollection},
		Server:   ServerConfig{Addr: ":8080", ResponseCacheSize: 256},
	}
}

// Load returns the defaults overlaid with the TOML file at path and the
// environment. An empty path reads [DefaultPath] if it exists; an explicit
// path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			cfg.ApplyEnv(os.LookupEnv)
			return cfg, nil
		}
		path = p
	}

	if err := cfg.decodeFile(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			cfg.ApplyEnv(os.LookupEnv)
			return cfg, nil
		}
		return nil, err
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return pscerrors.Wrap(pscerrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return pscerrors.New(pscerrors.ErrCodeInvalidConfig, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnv overrides settings from environment variables looked up with
// lookup. Empty values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(&c.GitHub.Token, EnvGitHubToken)
	set(&c.Redis.URL, EnvRedisURL)
	set(&c.Mongo.URI, EnvMongoURI)
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	if !slices.Contains(StoreKinds, c.Cache.Store) {
		return pscerrors.New(pscerrors.ErrCodeInvalidConfig, "unknown store %q (want one of %s)", c.Cache.Store, strings.Join(StoreKinds, ", "))
	}
	switch c.Cache.Store {
	case StoreFile:
		if c.Cache.Dir == "" {
			return pscerrors.New(pscerrors.ErrCodeInvalidConfig, "file store needs a cache directory")
		}
	case StoreRedis:
		if c.Redis.URL == "" {
			return pscerrors.New(pscerrors.ErrCodeInvalidConfig, "redis store needs a URL (set %s or [redis] url)", EnvRedisURL)
		}
	case StoreMongo:
		if c.Mongo.URI == "" {
			return pscerrors.New(pscerrors.ErrCodeInvalidConfig, "mongo store needs a URI (set %s or [mongo] uri)", EnvMongoURI)
		}
	}
	if c.Cache.Concurrency < 1 {
		return pscerrors.New(pscerrors.ErrCodeInvalidConfig, "cache concurrency must be at least 1, got %d", c.Cache.Concurrency)
	}
	for _, u := range []string{c.Registry.URL, c.GitHub.APIURL, c.GitHub.RawURL} {
		if err := pscerrors.ValidateURL(u); err != nil {
			return pscerrors.Wrap(pscerrors.ErrCodeInvalidConfig, err, "invalid endpoint")
		}
	}
	return nil
}

// RegistryOptions returns the gateway settings.
func (c *Config) RegistryOptions() registry.Options {
	return registry.Options{
		RegistryURL:  c.Registry.URL,
		Keyword:      c.Registry.Keyword,
		GitHubAPIURL: c.GitHub.APIURL,
		GitHubRawURL: c.GitHub.RawURL,
		GitHubToken:  c.GitHub.Token,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/pscdeps/config.toml, falling back to
// ~/.config.
func DefaultPath() (string, error) {
	dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DefaultCacheDir returns $XDG_CACHE_HOME/pscdeps, falling back to
// ~/.cache/pscdeps.
func DefaultCacheDir() (string, error) {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, AppName), nil
}
