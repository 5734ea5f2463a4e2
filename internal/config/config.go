// Package config holds the generator settings and loads them from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mkch/primegen/internal/render"
)

// Stdout is the [Config.Output] value meaning standard output.
const Stdout = "-"

// DefaultBound is the bound used when none is configured.
const DefaultBound = 1024

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Error describes an invalid field.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %v: %v", ErrInvalid, e.Field, e.Reason)
}

func (e *Error) Unwrap() error {
	return ErrInvalid
}

// Config is the generator configuration.
type Config struct {
	// Bound is the inclusive upper bound of the generated assertions.
	Bound   int            `yaml:"bound"`
	Dialect render.Dialect `yaml:"dialect"`
	// Output is a file name, or [Stdout].
	Output string `yaml:"output"`
	// Verify cross-checks the sieve with Miller-Rabin before emitting.
	Verify  bool     `yaml:"verify"`
	License []string `yaml:"license"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Bound:   DefaultBound,
		Dialect: render.Module,
		Output:  Stdout,
	}
}

// Load reads the YAML file at path over [Default].
// An empty path returns the defaults.
func Load(path string) (c Config, err error) {
	c = Default()
	if path == "" {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("read config %s: %w", path, err)
		return
	}
	if err = decode(bytes.NewReader(data), &c); err != nil {
		err = fmt.Errorf("parse config %s: %w", path, err)
	}
	return
}

func decode(r io.Reader, c *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports the first invalid field of c as an [*Error].
func (c *Config) Validate() error {
	if c.Bound < 0 {
		return &Error{"bound", fmt.Sprintf("%v is negative", c.Bound)}
	}
	if c.Bound > render.MaxConstant {
		return &Error{"bound", fmt.Sprintf("%v exceeds %v, the largest typenum constant", c.Bound, render.MaxConstant)}
	}
	if _, err := render.ParseDialect(string(c.Dialect)); err != nil {
		return &Error{"dialect", fmt.Sprintf("%q is not one of %v", c.Dialect, render.Dialects)}
	}
	if c.Output == "" {
		return &Error{"output", "empty"}
	}
	return nil
}
