// Package config loads treeproc settings from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/treeproc/tree"
)

// EnvVar names the environment variable holding a config file path.
const EnvVar = "TREEPROC_CONFIG"

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "treeproc.toml"

// Config holds the complete application configuration
type Config struct {
	Server ServerConfig `toml:"server" yaml:"server"`
	Parser ParserConfig `toml:"parser" yaml:"parser"`
	Report ReportConfig `toml:"report" yaml:"report"`
	Log    LogConfig    `toml:"log" yaml:"log"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Host         string   `toml:"host" yaml:"host"`
	Port         int      `toml:"port" yaml:"port"`
	ReadTimeout  Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout" yaml:"write_timeout"`
}

// ParserConfig holds tree parser settings
type ParserConfig struct {
	Strict      bool   `toml:"strict" yaml:"strict"`
	IDSeparator string `toml:"id_separator" yaml:"id_separator"`
	Arrow       string `toml:"arrow" yaml:"arrow"`
	Workers     int    `toml:"workers" yaml:"workers"`
}

// ReportConfig holds console report settings
type ReportConfig struct {
	SkipTerminals *bool `toml:"skip_terminals" yaml:"skip_terminals"`
	Color         *bool `toml:"color" yaml:"color"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Verbosity int    `toml:"verbosity" yaml:"verbosity"`
	File      string `toml:"file" yaml:"file"`
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

// UnmarshalYAML parses a duration string from a YAML scalar
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the file at path. Files ending in .yaml or .yml are YAML,
// everything else is TOML.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.Path = path
	cfg.applyDefaults()
	cfg.Log.File = os.ExpandEnv(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Resolve loads path if it is not empty. Otherwise it tries TREEPROC_CONFIG
// and then ./treeproc.toml, falling back to defaults when neither exists.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if env := os.Getenv(EnvVar); env != "" {
		return Load(env)
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return Load(DefaultFile)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", DefaultFile, err)
	}
	return Default(), nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 9099
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 30 * time.Second
	}
	if c.Server.WriteTimeout.Duration == 0 {
		c.Server.WriteTimeout.Duration = 30 * time.Second
	}

	if c.Parser.IDSeparator == "" {
		c.Parser.IDSeparator = tree.DefaultIDSeparator
	}
	if c.Parser.Arrow == "" {
		c.Parser.Arrow = tree.DefaultArrow
	}
	if c.Parser.Workers == 0 {
		c.Parser.Workers = 1
	}

	if c.Report.SkipTerminals == nil {
		c.Report.SkipTerminals = boolPtr(true)
	}
	if c.Report.Color == nil {
		c.Report.Color = boolPtr(true)
	}
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Parser.Workers < 1 {
		errs = append(errs, fmt.Errorf("parser.workers must be positive, got %d", c.Parser.Workers))
	}
	if c.Log.Verbosity < 0 {
		errs = append(errs, fmt.Errorf("log.verbosity must not be negative, got %d", c.Log.Verbosity))
	}
	return errors.Join(errs...)
}

// Address returns host:port for the HTTP API.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// ParserOptions translates the parser section into tree options.
func (c *Config) ParserOptions() []tree.Option {
	opts := []tree.Option{
		tree.WithIDSeparator(c.Parser.IDSeparator),
		tree.WithArrow(c.Parser.Arrow),
	}
	if c.Parser.Strict {
		opts = append(opts, tree.WithStrict())
	}
	return opts
}

// SkipTerminals reports whether reports leave out single-terminal rules.
func (c *Config) SkipTerminals() bool {
	return c.Report.SkipTerminals == nil || *c.Report.SkipTerminals
}

// Color reports whether reports are styled.
func (c *Config) Color() bool {
	return c.Report.Color == nil || *c.Report.Color
}

func boolPtr(b bool) *bool {
	return &b
}
