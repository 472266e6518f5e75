// Package config defines configuration of the mpg command line tool.
package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/sirupsen/logrus"

	"github.com/ava12/mpg"
	"github.com/ava12/mpg/parser"
)

const (
	AlphabetText   = "text"
	AlphabetBinary = "binary"

	ModeMinimal = "minimal"
	ModeFull    = "full"

	MetricBytes = "bytes"
	MetricRunes = "runes"
)

// Error codes used by config:
const (
	ErrReadConfig = mpg.ConfigErrors + iota
	ErrParseConfig
	ErrInvalidValue
)

type Config struct {
	// Grammar contains path to grammar description.
	Grammar string `yaml:"grammar"`
	// Alphabet is either "text" or "binary".
	Alphabet string `yaml:"alphabet"`
	// Start contains start variable, the first rule of the grammar is used if empty.
	Start string `yaml:"start"`
	// Mode is either "minimal" or "full".
	Mode string `yaml:"mode"`
	// CheckGrammar enables grammar check before each parse.
	CheckGrammar bool `yaml:"validate"`
	// Metric is either "bytes" or "runes", used for text alphabet only.
	Metric   string `yaml:"metric"`
	LogLevel string `yaml:"log_level"`
}

// Default returns configuration used when no configuration file exists.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// Load reads configuration file. Returns default configuration if the file does not exist.
func Load(path string) (*Config, error) {
	data, e := os.ReadFile(path)
	if errors.Is(e, fs.ErrNotExist) {
		return Default(), nil
	}
	if e != nil {
		return nil, mpg.FormatError(ErrReadConfig, "cannot read config file %s: %s", path, e)
	}

	return Parse(path, data)
}

// Parse parses YAML configuration in strict mode, unknown fields are errors.
// Missing values are set to defaults.
func Parse(name string, data []byte) (*Config, error) {
	var c Config
	e := yaml.UnmarshalWithOptions(data, &c, yaml.Strict())
	if e != nil {
		return nil, mpg.FormatError(ErrParseConfig, "cannot parse config file %s: %s", name, e)
	}

	c.ApplyDefaults()
	e = c.Validate()
	if e != nil {
		return nil, e
	}

	return &c, nil
}

func (c *Config) ApplyDefaults() {
	if c.Alphabet == "" {
		c.Alphabet = AlphabetText
	}
	if c.Mode == "" {
		c.Mode = ModeMinimal
	}
	if c.Metric == "" {
		c.Metric = MetricBytes
	}
	if c.LogLevel == "" {
		c.LogLevel = logrus.InfoLevel.String()
	}
}

func invalidValueError(field, value string) *mpg.Error {
	return mpg.FormatError(ErrInvalidValue, "invalid %s value %q", field, value)
}

// Validate checks field values, defaults must be applied.
func (c *Config) Validate() error {
	if c.Alphabet != AlphabetText && c.Alphabet != AlphabetBinary {
		return invalidValueError("alphabet", c.Alphabet)
	}
	if c.Mode != ModeMinimal && c.Mode != ModeFull {
		return invalidValueError("mode", c.Mode)
	}
	if c.Metric != MetricBytes && (c.Metric != MetricRunes || c.Alphabet != AlphabetText) {
		return invalidValueError("metric", c.Metric)
	}

	_, e := logrus.ParseLevel(c.LogLevel)
	if e != nil {
		return invalidValueError("log_level", c.LogLevel)
	}

	return nil
}

func (c *Config) ParserMode() parser.Mode {
	if c.Mode == ModeFull {
		return parser.FullParse
	}
	return parser.MinimalParse
}

// Level returns log level, Validate must succeed.
func (c *Config) Level() logrus.Level {
	l, e := logrus.ParseLevel(c.LogLevel)
	if e != nil {
		return logrus.InfoLevel
	}
	return l
}
