// Package config holds the numeric constants that tune a path calculation
// and their YAML side-file persistence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Defaults used by Default().
const (
	DefaultCostInf = 100_000.0
	DefaultTimeout = 2000 * time.Millisecond
)

// ErrNotExist is returned by Read when the file is missing.
var ErrNotExist = errors.New("config file does not exist")

var validate = validator.New()

// HazardMultiplier scales the cost of moving through each kind of obstacle.
type HazardMultiplier struct {
	// Unknown could be any type of object.
	Unknown uint32 `yaml:"unknown" json:"unknown"`
	// NonSolid is an obstacle the agent can pass through.
	NonSolid uint32 `yaml:"non_solid" json:"non_solid"`
	// Solid is an obstacle the agent cannot pass through.
	Solid uint32 `yaml:"solid" json:"solid"`
	// Dangerous is an obstacle that should be avoided.
	Dangerous uint32 `yaml:"dangerous" json:"dangerous"`
}

// DefaultHazard returns the stock multipliers.
func DefaultHazard() HazardMultiplier {
	return HazardMultiplier{
		Unknown:   10,
		NonSolid:  21,
		Solid:     10,
		Dangerous: 50,
	}
}

// Configuration tunes the path calculator.
type Configuration struct {
	// Hazard multipliers applied by cost oracles.
	Hazard HazardMultiplier `yaml:"hazard" json:"hazard"`

	// CostInf is the effectively infinite cost. It stays finite so arithmetic
	// on it cannot overflow, but is large enough that no real route reaches it.
	CostInf float64 `yaml:"cost_inf" json:"cost_inf" validate:"gt=0"`

	// Timeout is the maximum time a calculation may run. Past it, the
	// calculation stops and reports no path.
	Timeout time.Duration `yaml:"timeout" json:"timeout" validate:"gt=0"`
}

// Default returns a configuration with stock values.
func Default() Configuration {
	return Configuration{
		Hazard:  DefaultHazard(),
		CostInf: DefaultCostInf,
		Timeout: DefaultTimeout,
	}
}

// Validate checks that the configuration is usable.
func (c Configuration) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// fileConfig is the on-disk shape. Timeout is a duration string ("2s").
type fileConfig struct {
	Hazard  HazardMultiplier `yaml:"hazard"`
	CostInf float64          `yaml:"cost_inf"`
	Timeout string           `yaml:"timeout"`
}

// Marshal renders the configuration as YAML.
func (c Configuration) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(fileConfig{
		Hazard:  c.Hazard,
		CostInf: c.CostInf,
		Timeout: c.Timeout.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return out, nil
}

// Unmarshal parses YAML produced by Marshal.
// Unknown fields are rejected so typos do not silently fall back to zero.
func Unmarshal(data []byte) (Configuration, error) {
	var fc fileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fc); err != nil {
		return Configuration{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	timeout, err := time.ParseDuration(fc.Timeout)
	if err != nil {
		return Configuration{}, fmt.Errorf("invalid timeout %q: %w", fc.Timeout, err)
	}

	c := Configuration{
		Hazard:  fc.Hazard,
		CostInf: fc.CostInf,
		Timeout: timeout,
	}
	if err := c.Validate(); err != nil {
		return Configuration{}, err
	}
	return c, nil
}

// Write stores the configuration at path, overwriting any existing file.
func (c Configuration) Write(path string) error {
	if _, err := os.Stat(path); err == nil {
		slog.Info("overwriting existing configuration", "path", path)
	} else {
		slog.Info("writing new configuration", "path", path)
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Read loads a configuration from path.
// Returns ErrNotExist (wrapped) if there is no file at path.
func Read(path string) (Configuration, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Configuration{}, fmt.Errorf("%w: %s", ErrNotExist, path)
	}
	if err != nil {
		return Configuration{}, fmt.Errorf("read config: %w", err)
	}
	return Unmarshal(data)
}

// ReadOrDefault loads path if it exists and falls back to Default otherwise.
// An empty path also yields Default.
func ReadOrDefault(path string) (Configuration, error) {
	if path == "" {
		return Default(), nil
	}
	c, err := Read(path)
	if errors.Is(err, ErrNotExist) {
		slog.Debug("config file not found, using defaults", "path", path)
		return Default(), nil
	}
	return c, err
}
