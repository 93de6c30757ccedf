// Package config loads togglenet settings from YAML, with environment
// overrides, and turns them into solver options.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/togglenet/reach"
	"github.com/katalvlaran/togglenet/solver"
	"github.com/katalvlaran/togglenet/tally"
)

// Environment variables consulted by Load.
const (
	EnvWorkers = "TOGGLENET_WORKERS"
	EnvMethod  = "TOGGLENET_METHOD"
)

// ErrInvalid is returned by Validate and by Load for unusable settings.
var ErrInvalid = errors.New("config: invalid setting")

// Config is the on-disk configuration.
type Config struct {
	// Workers is the number of devices solved concurrently.
	Workers int `yaml:"workers"`

	// Part is 0 for both answers, 1 for indicator lights only, 2 for counters only.
	Part int `yaml:"part"`

	Log   LogConfig   `yaml:"log"`
	Reach ReachConfig `yaml:"reach"`
	Tally TallyConfig `yaml:"tally"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `yaml:"level"`
}

// ReachConfig maps onto reach options.
type ReachConfig struct {
	TableThreshold int `yaml:"table_threshold"`
	MaxLights      int `yaml:"max_lights"`
	MaxDepth       int `yaml:"max_depth"`
}

// TallyConfig maps onto tally options.
type TallyConfig struct {
	Method         string `yaml:"method"`
	PivotLimit     int    `yaml:"pivot_limit"`
	NodeLimit      int    `yaml:"node_limit"`
	BranchAndBound bool   `yaml:"branch_and_bound"`
	CandidateLimit int    `yaml:"candidate_limit"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Workers: 1,
		Part:    0,
		Log:     LogConfig{Level: "info"},
		Reach: ReachConfig{
			TableThreshold: reach.DefaultTableThreshold,
			MaxLights:      reach.DefaultMaxLights,
		},
		Tally: TallyConfig{
			Method:         tally.MethodAuto.String(),
			NodeLimit:      tally.DefaultNodeLimit,
			BranchAndBound: true,
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err = yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes c to path as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvWorkers, v, err)
		}
		c.Workers = n
	}
	if v := os.Getenv(EnvMethod); v != "" {
		c.Tally.Method = v
	}

	return nil
}

// Validate checks ranges that YAML cannot express.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be >= 1 (%d)", ErrInvalid, c.Workers)
	}
	if _, err := solver.ParsePart(c.Part); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := tally.ParseMethod(c.Tally.Method); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}

	return nil
}

// LogLevel parses Log.Level; empty means info.
func (c *Config) LogLevel() (zapcore.Level, error) {
	if c.Log.Level == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}

	return lvl, nil
}

// SolverOptions converts c into batch options. Zero-valued reach and tally
// limits keep the package defaults.
func (c *Config) SolverOptions() ([]solver.Option, error) {
	part, err := solver.ParsePart(c.Part)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	method, err := tally.ParseMethod(c.Tally.Method)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	var ropts []reach.Option
	if c.Reach.TableThreshold > 0 {
		ropts = append(ropts, reach.WithTableThreshold(c.Reach.TableThreshold))
	}
	if c.Reach.MaxLights > 0 {
		ropts = append(ropts, reach.WithMaxLights(c.Reach.MaxLights))
	}
	if c.Reach.MaxDepth > 0 {
		ropts = append(ropts, reach.WithMaxDepth(c.Reach.MaxDepth))
	}

	topts := []tally.Option{
		tally.WithMethod(method),
		tally.WithBranchAndBound(c.Tally.BranchAndBound),
	}
	if c.Tally.PivotLimit > 0 {
		topts = append(topts, tally.WithPivotLimit(c.Tally.PivotLimit))
	}
	if c.Tally.NodeLimit > 0 {
		topts = append(topts, tally.WithNodeLimit(c.Tally.NodeLimit))
	}
	if c.Tally.CandidateLimit > 0 {
		topts = append(topts, tally.WithCandidateLimit(c.Tally.CandidateLimit))
	}

	return []solver.Option{
		solver.WithWorkers(c.Workers),
		solver.WithParts(part),
		solver.WithReachOptions(ropts...),
		solver.WithTallyOptions(topts...),
	}, nil
}
