package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/pathfind/internal/config"
	"github.com/roach88/pathfind/internal/geom"
	"github.com/roach88/pathfind/internal/moveset"
	"github.com/roach88/pathfind/internal/pathing"
	"github.com/roach88/pathfind/internal/space"
)

// Scenario is a plane plus the queries to run against it.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Moveset is "cardinal" (default), "octile", or a path to a CUE moveset
	// file. Relative paths are resolved against the scenario file.
	Moveset string `yaml:"moveset,omitempty"`

	// Config overrides the default configuration.
	Config *ConfigOverrides `yaml:"config,omitempty"`

	// Plane is the flat space, one row per entry.
	Plane []string `yaml:"plane"`

	// Cases are evaluated in order with the same calculator.
	Cases []Case `yaml:"cases"`
}

// ConfigOverrides replaces individual configuration values.
type ConfigOverrides struct {
	CostInf float64 `yaml:"cost_inf,omitempty"`
	Timeout string  `yaml:"timeout,omitempty"`
}

// Case is a single query with its expected answer.
type Case struct {
	Name   string `yaml:"name"`
	Start  string `yaml:"start"`
	Goal   string `yaml:"goal"`
	Expect Expect `yaml:"expect"`
}

// Expect describes the expected answer to a Case.
type Expect struct {
	// Found is whether a path must exist.
	Found bool `yaml:"found"`

	// Cost is the expected path cost. Compared with a 1e-9 tolerance.
	Cost *float64 `yaml:"cost,omitempty"`

	// Length is the expected number of path nodes, both ends included.
	Length *int `yaml:"length,omitempty"`

	// Drawing is the expected output of Draw, row by row.
	Drawing []string `yaml:"drawing,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving a CUE moveset path relative to basePath.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "case:" vs "cases:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if isCUEFile(scenario.Moveset) && !filepath.IsAbs(scenario.Moveset) && basePath != "" {
		scenario.Moveset = filepath.Join(basePath, scenario.Moveset)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadDir loads every *.yaml and *.yml scenario in dir, ordered by file name.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// Configuration returns the default configuration with the scenario's
// overrides applied.
func (s *Scenario) Configuration() (config.Configuration, error) {
	cfg := config.Default()
	if s.Config == nil {
		return cfg, nil
	}
	if s.Config.CostInf != 0 {
		cfg.CostInf = s.Config.CostInf
	}
	if s.Config.Timeout != "" {
		d, err := time.ParseDuration(s.Config.Timeout)
		if err != nil {
			return cfg, fmt.Errorf("config.timeout: %w", err)
		}
		cfg.Timeout = d
	}
	return cfg, cfg.Validate()
}

// Moves resolves the scenario's moveset.
func (s *Scenario) Moves() (pathing.Moveset[geom.Vector2i], error) {
	if isCUEFile(s.Moveset) {
		def, err := moveset.Load(s.Moveset)
		if err != nil {
			return nil, err
		}
		return def.Moveset2D()
	}
	return moveset.Named2D(s.Moveset)
}

func isCUEFile(name string) bool {
	return strings.HasSuffix(name, ".cue")
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Plane) == 0 {
		return fmt.Errorf("plane is required and must be non-empty")
	}
	if _, err := space.ParsePlane(strings.Join(s.Plane, "\n")); err != nil {
		return fmt.Errorf("plane: %w", err)
	}

	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	if isCUEFile(s.Moveset) {
		if _, err := os.Stat(s.Moveset); os.IsNotExist(err) {
			return fmt.Errorf("moveset file not found: %s", s.Moveset)
		}
	} else if _, err := moveset.Named2D(s.Moveset); err != nil {
		return err
	}

	if _, err := s.Configuration(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("cases[%d]: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate name %q", i, c.Name)
		}
		seen[c.Name] = true

		if _, err := geom.ParseVector2i(c.Start); err != nil {
			return fmt.Errorf("cases[%d].start: %w", i, err)
		}
		if _, err := geom.ParseVector2i(c.Goal); err != nil {
			return fmt.Errorf("cases[%d].goal: %w", i, err)
		}
		if !c.Expect.Found && c.Expect.Cost != nil {
			return fmt.Errorf("cases[%d].expect: cost requires found: true", i)
		}
	}

	return nil
}
