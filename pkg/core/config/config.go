package config

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mzwerror "github.com/msto63/mZW/foundation/core/error"
	"github.com/msto63/mZW/foundation/core/log"
	"github.com/msto63/mZW/foundation/utils/mathx"
)

// Config holds the complete workspace configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Array   ArrayConfig   `toml:"array" yaml:"array"`
	Tree    TreeConfig    `toml:"tree" yaml:"tree"`
	Grid    GridConfig    `toml:"grid" yaml:"grid"`
	Tower   TowerConfig   `toml:"tower" yaml:"tower"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
}

// GeneralConfig holds general settings
type GeneralConfig struct {
	Name      string `toml:"name" yaml:"name"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// ArrayConfig sizes the indexed array
type ArrayConfig struct {
	InitialCapacity int     `toml:"initial_capacity" yaml:"initial_capacity"`
	GrowthFactor    float64 `toml:"growth_factor" yaml:"growth_factor"`
}

// TreeConfig holds search tree settings
type TreeConfig struct {
	MaxTraverseDepth int `toml:"max_traverse_depth" yaml:"max_traverse_depth"`
}

// GridConfig bounds the Ackermann grid
type GridConfig struct {
	ValueCeiling string `toml:"value_ceiling" yaml:"value_ceiling"`
	MaxDepth     int    `toml:"max_depth" yaml:"max_depth"`
}

// TowerConfig bounds the power tower
type TowerConfig struct {
	MaxHeight      int `toml:"max_height" yaml:"max_height"`
	MaxValueDigits int `toml:"max_value_digits" yaml:"max_value_digits"`
}

// ServerConfig holds gRPC server settings
type ServerConfig struct {
	Host              string   `toml:"host" yaml:"host"`
	Port              int      `toml:"port" yaml:"port"`
	MaxRecvMsgSize    int      `toml:"max_recv_msg_size" yaml:"max_recv_msg_size"`
	KeepaliveInterval Duration `toml:"keepalive_interval" yaml:"keepalive_interval"`
	CacheSize         int      `toml:"cache_size" yaml:"cache_size"`
	CacheTTL          Duration `toml:"cache_ttl" yaml:"cache_ttl"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// MarshalYAML formats the duration as a string
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Default returns a complete default configuration
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a .toml, .yaml or .yml file. Missing values
// are filled with defaults and the result is validated.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, mzwerror.Newf("config file not found: %s", path).
				WithCode(mzwerror.CodeMissingConfig).
				WithOperation("config.Load")
		}
		return nil, mzwerror.Wrap(err, "failed to read config").
			WithCode(mzwerror.CodeConfigError).
			WithOperation("config.Load")
	}

	cfg, err := Parse(content, detectFormat(path))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes configuration content in the given format ("toml" or
// "yaml"), applies defaults and validates the result
func Parse(content []byte, format string) (*Config, error) {
	var cfg Config
	switch format {
	case "toml":
		if _, err := toml.Decode(string(content), &cfg); err != nil {
			return nil, mzwerror.Wrap(err, "TOML parse error").
				WithCode(mzwerror.CodeInvalidConfig).
				WithOperation("config.Parse")
		}
	case "yaml":
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, mzwerror.Wrap(err, "YAML parse error").
				WithCode(mzwerror.CodeInvalidConfig).
				WithOperation("config.Parse")
		}
	default:
		return nil, mzwerror.Newf("unsupported format: %s", format).
			WithCode(mzwerror.CodeInvalidConfig).
			WithOperation("config.Parse").
			WithDetail("format", format)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from the MZW_CONFIG environment variable
// or the first default location that exists. Without any file it returns
// the defaults.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("MZW_CONFIG")
	if path == "" {
		defaultPaths := []string{
			"./configs/mzw.toml",
			"./mzw.toml",
			"./mzw.yaml",
			filepath.Join(os.Getenv("HOME"), ".config/mzw/config.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func detectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "toml"
	}
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "meinZAHLWERK"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "console"
	}

	// Array
	if c.Array.InitialCapacity == 0 {
		c.Array.InitialCapacity = 16
	}
	if c.Array.GrowthFactor == 0 {
		c.Array.GrowthFactor = 2.0
	}

	// Grid
	if c.Grid.ValueCeiling == "" {
		c.Grid.ValueCeiling = mathx.MaxSafeInteger().String()
	}
	if c.Grid.MaxDepth == 0 {
		c.Grid.MaxDepth = 50000
	}

	// Tower
	if c.Tower.MaxHeight == 0 {
		c.Tower.MaxHeight = 100
	}
	if c.Tower.MaxValueDigits == 0 {
		c.Tower.MaxValueDigits = 1000
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 9400
	}
	if c.Server.MaxRecvMsgSize == 0 {
		c.Server.MaxRecvMsgSize = 4 * 1024 * 1024
	}
	if c.Server.KeepaliveInterval.Duration == 0 {
		c.Server.KeepaliveInterval.Duration = 30 * time.Second
	}
	if c.Server.CacheSize == 0 {
		c.Server.CacheSize = 1024
	}
	if c.Server.CacheTTL.Duration == 0 {
		c.Server.CacheTTL.Duration = 10 * time.Minute
	}
}

// Validate checks every section and reports the first problem
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", c.General.LogLevel, "unknown log level")
	}
	if _, err := log.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format", c.General.LogFormat, "unknown log format")
	}
	if c.Array.InitialCapacity < 1 {
		return invalid("array.initial_capacity", c.Array.InitialCapacity, "must be at least 1")
	}
	if c.Array.GrowthFactor <= 1 {
		return invalid("array.growth_factor", c.Array.GrowthFactor, "must be greater than 1")
	}
	if c.Tree.MaxTraverseDepth < 0 {
		return invalid("tree.max_traverse_depth", c.Tree.MaxTraverseDepth, "must not be negative")
	}
	if _, err := c.GridCeiling(); err != nil {
		return invalid("grid.value_ceiling", c.Grid.ValueCeiling, "must be a positive integer")
	}
	if c.Grid.MaxDepth < 1 {
		return invalid("grid.max_depth", c.Grid.MaxDepth, "must be at least 1")
	}
	if c.Tower.MaxHeight < 1 {
		return invalid("tower.max_height", c.Tower.MaxHeight, "must be at least 1")
	}
	if c.Tower.MaxValueDigits < 1 {
		return invalid("tower.max_value_digits", c.Tower.MaxValueDigits, "must be at least 1")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return invalid("server.port", c.Server.Port, "must be within 0..65535")
	}
	if c.Server.CacheSize < 0 {
		return invalid("server.cache_size", c.Server.CacheSize, "must not be negative")
	}
	return nil
}

func invalid(field string, value interface{}, reason string) *mzwerror.Error {
	return mzwerror.Newf("invalid config %s = %v: %s", field, value, reason).
		WithCode(mzwerror.CodeInvalidConfig).
		WithOperation("config.Validate").
		WithDetail("field", field)
}

// GridCeiling parses the grid value ceiling
func (c *Config) GridCeiling() (*big.Int, error) {
	v, err := mathx.ToBigInt(c.Grid.ValueCeiling)
	if err != nil {
		return nil, err
	}
	if v.Sign() <= 0 {
		return nil, fmt.Errorf("ceiling must be positive, got %s", v)
	}
	return v, nil
}

// TowerMaxValue returns 10^max_value_digits
func (c *Config) TowerMaxValue() *big.Int {
	return mathx.PowerOfTen(c.Tower.MaxValueDigits)
}

// ServerAddress returns host:port of the gRPC server
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
