// Package config loads knotwork configuration from a TOML file.
//
// Configuration selects the storage and cache backends used by the CLI and
// the HTTP server. The file lives at ~/.config/knotwork/config.toml by
// default; the KNOTWORK_CONFIG environment variable overrides the path. A
// missing file is not an error, the defaults apply.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/mgeier/knotwork/pkg/errors"
)

// EnvConfigPath overrides the default config file location when set.
const EnvConfigPath = "KNOTWORK_CONFIG"

const appName = "knotwork"

// Store backend names accepted in the [store] section.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// Cache backend names accepted in the [cache] section.
const (
	CacheNull  = "null"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Config is the root of the TOML file.
type Config struct {
	Store StoreConfig `toml:"store"`
	Cache CacheConfig `toml:"cache"`
	API   APIConfig   `toml:"api"`
}

// StoreConfig selects and parameterizes the record store.
type StoreConfig struct {
	Backend  string `toml:"backend"` // memory or mongo
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`

	// ReadOnly rejects every mutation with a read-only error. Useful for
	// serving a published catalog.
	ReadOnly bool `toml:"read_only"`
}

// CacheConfig selects and parameterizes the canonical-form cache.
type CacheConfig struct {
	Backend   string `toml:"backend"` // null, file, or redis
	Dir       string `toml:"dir"`     // file backend; empty means the XDG cache dir
	RedisAddr string `toml:"redis_addr"`
}

// APIConfig parameterizes the HTTP server.
type APIConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file is present: an
// in-memory store, a file cache in the XDG cache directory, and the server
// on localhost.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Backend:  StoreMemory,
			MongoURI: "mongodb://localhost:27017",
			Database: appName,
		},
		Cache: CacheConfig{
			Backend:   CacheFile,
			RedisAddr: "localhost:6379",
		},
		API: APIConfig{
			Addr: "localhost:8420",
		},
	}
}

// Path returns the config file location: $KNOTWORK_CONFIG if set, otherwise
// ~/.config/knotwork/config.toml (respecting XDG_CONFIG_HOME).
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config file at Path. A missing file yields Default() with
// no error; a file that exists but does not parse or names an unknown
// backend is an error.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a config file from an explicit path. Values absent from
// the file keep their defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Store.Backend {
	case StoreMemory, StoreMongo:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q", c.Store.Backend)
	}
	switch c.Cache.Backend {
	case CacheNull, CacheFile, CacheRedis:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}

// CacheDir returns the directory for the file cache: the configured dir if
// set, otherwise ~/.cache/knotwork (respecting XDG_CACHE_HOME).
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
