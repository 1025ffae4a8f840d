package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Defaults applied by WithDefaults when the corresponding fields are unset.
const (
	DefaultAddr     = ":8080"
	DefaultLogLevel = "info"
)

// Config holds runtime parameters for the evbus binary.
// Zero values mean "unspecified" and are replaced by WithDefaults.
type Config struct {
	// Concurrent selects the lock-guarded manager.
	Concurrent bool `json:"concurrent" yaml:"concurrent" toml:"concurrent"`
	// LogLevel is a zerolog level name (trace, debug, info, warn, error, disabled).
	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level"`
	// Addr is the listen address of the introspection API.
	Addr string `json:"addr" yaml:"addr" toml:"addr"`
	// CORSOrigins enables CORS on the introspection API when non-empty.
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}

// Load reads a configuration file based on its extension. A leading "~" is
// expanded to the home directory.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	path, err := expandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if _, err := cfg.Level(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// WithDefaults returns a copy of c with unset fields filled in.
func (c Config) WithDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	return c
}

// Level parses LogLevel. An empty level is the default level.
func (c Config) Level() (zerolog.Level, error) {
	name := c.LogLevel
	if name == "" {
		name = DefaultLogLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
