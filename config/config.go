/*
Package config holds the settings of the rdiff tool: the chunk size and how to log.

Settings come from Default, then an optional YAML file, then command line flags
and RDIFF_* environment variables, which are applied by the command.
*/
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/Redundancy/go-rdiff/chunks"
	"github.com/Redundancy/go-rdiff/fileio"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultChunkSize = 1024
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

var (
	ErrChunkSizeZero = errors.New("chunk size must be non zero")
	ErrTooFewChunks  = errors.New("chunk size invalid, must have at least 2 chunks for the file")
)

// ConfigError is an invalid setting, or a setting that does not fit the input
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err is, or wraps, a *ConfigError
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

type Config struct {
	// ChunkSize is the size in bytes of the chunks the original is split into
	ChunkSize int `yaml:"chunk_size"`

	// LogLevel is a zerolog level name: trace, debug, info, warn, error, disabled
	LogLevel string `yaml:"log_level"`

	// LogFormat is console or json
	LogFormat string `yaml:"log_format"`
}

func Default() *Config {
	return &Config{
		ChunkSize: DefaultChunkSize,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// LoadFile reads the YAML file at path over the defaults
func LoadFile(path string) (*Config, error) {
	data, err := fileio.ReadAll(path)
	if err != nil {
		return nil, err
	}

	cfg, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "config file %v", path)
	}

	return cfg, nil
}

// Load reads YAML from r over the defaults. Unknown keys are an error.
func Load(r io.Reader) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if err := decoder.Decode(cfg); err != nil && err != io.EOF {
		return nil, &ConfigError{Field: "file", Err: err}
	}

	return cfg, nil
}

// Validate checks the settings on their own
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return &ConfigError{Field: "chunk_size", Err: ErrChunkSizeZero}
	}

	switch c.LogFormat {
	case "console", "json":
	default:
		return &ConfigError{
			Field: "log_format",
			Err:   errors.Errorf("unknown format %q, must be console or json", c.LogFormat),
		}
	}

	return nil
}

// ValidateFor checks the settings against an original of originalSize bytes
func (c *Config) ValidateFor(originalSize int64) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return ValidateChunkSize(c.ChunkSize, originalSize)
}

// ValidateChunkSize checks that chunkSize splits an original of originalSize bytes into at least 2 chunks
func ValidateChunkSize(chunkSize int, originalSize int64) error {
	if chunkSize <= 0 {
		return &ConfigError{Field: "chunk_size", Err: ErrChunkSizeZero}
	}

	if chunks.Count(originalSize, chunkSize) < 2 {
		return &ConfigError{
			Field: "chunk_size",
			Err:   errors.Wrapf(ErrTooFewChunks, "%v bytes in chunks of %v", originalSize, chunkSize),
		}
	}

	return nil
}

// Write the settings as YAML
func (c *Config) Write(w io.Writer) error {
	encoder := yaml.NewEncoder(w)

	if err := encoder.Encode(c); err != nil {
		return errors.Wrap(err, "writing config")
	}

	return errors.Wrap(encoder.Close(), "writing config")
}

// FromEnvironment returns the config file named by RDIFF_CONFIG, or the defaults if it is not set
func FromEnvironment() (*Config, error) {
	if path := os.Getenv("RDIFF_CONFIG"); path != "" {
		return LoadFile(path)
	}
	return Default(), nil
}
