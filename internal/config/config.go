package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up by FindConfig.
const FileName = "tjcore.yaml"

// Config represents the top-level tjcore.yaml configuration.
type Config struct {
	GC          GCConfig          `yaml:"gc"`
	Analysis    AnalysisConfig    `yaml:"analysis"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`

	// Implementations declares interface implementations for user-defined
	// types. Method signatures are written in type-expression syntax
	// (e.g. "Vec<int>", "(int) -> bool") and parsed by the analyzer.
	Implementations []ImplementationSpec `yaml:"implementations,omitempty"`
}

// GCConfig tunes the generational collector.
type GCConfig struct {
	// Threshold is the initial live-object count above which an allocation
	// triggers a collection.
	Threshold int `yaml:"threshold,omitempty"`

	// Interval is the time since the last collection after which an
	// allocation triggers a collection regardless of population.
	Interval time.Duration `yaml:"interval,omitempty"`

	// Efficiency bounds (objects reclaimed per collection, lifetime average)
	// and the factors applied to the threshold when crossing them.
	LowEfficiency  float64 `yaml:"low_efficiency,omitempty"`
	HighEfficiency float64 `yaml:"high_efficiency,omitempty"`
	GrowFactor     float64 `yaml:"grow_factor,omitempty"`
	ShrinkFactor   float64 `yaml:"shrink_factor,omitempty"`
}

// AnalysisConfig controls the analysis pipeline.
type AnalysisConfig struct {
	// MaxDiagnostics caps the number of diagnostics kept per run; 0 means no cap.
	MaxDiagnostics int `yaml:"max_diagnostics,omitempty"`

	// StopOnError skips the remaining pipeline stages once a stage reports an error.
	StopOnError bool `yaml:"stop_on_error,omitempty"`

	// VerifySignatures enables structural conformance checking of registered
	// implementations against interface definitions. This is stricter than
	// nominal satisfaction and may reject programs the solver alone accepts.
	VerifySignatures bool `yaml:"verify_signatures,omitempty"`

	// Debug turns on debug logging for the process.
	Debug bool `yaml:"debug,omitempty"`
}

// DiagnosticsConfig controls rendering and persistence of diagnostics.
type DiagnosticsConfig struct {
	// Color is one of "auto", "always" or "never".
	Color string `yaml:"color,omitempty"`

	// Store is the path of an SQLite database that receives every
	// diagnostic batch. Empty disables persistence.
	Store string `yaml:"store,omitempty"`
}

// ImplementationSpec registers that Type implements Interface.
type ImplementationSpec struct {
	Type      string       `yaml:"type"`
	Interface string       `yaml:"interface"`
	Methods   []MethodSpec `yaml:"methods,omitempty"`
}

// MethodSpec is a method signature in type-expression syntax.
type MethodSpec struct {
	Name    string   `yaml:"name"`
	Params  []string `yaml:"params,omitempty"`
	Returns string   `yaml:"returns"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a tjcore.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses tjcore.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.setDefaults()
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindConfig searches for tjcore.yaml starting from dir and walking up
// to parent directories. Returns "" and a nil error if none is found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// setDefaults fills in default values for omitted fields.
func (c *Config) setDefaults() {
	if c.GC.Threshold == 0 {
		c.GC.Threshold = DefaultGCThreshold
	}
	if c.GC.Interval == 0 {
		c.GC.Interval = DefaultGCIntervalMillis * time.Millisecond
	}
	if c.GC.LowEfficiency == 0 {
		c.GC.LowEfficiency = DefaultLowEfficiency
	}
	if c.GC.HighEfficiency == 0 {
		c.GC.HighEfficiency = DefaultHighEfficiency
	}
	if c.GC.GrowFactor == 0 {
		c.GC.GrowFactor = DefaultGrowFactor
	}
	if c.GC.ShrinkFactor == 0 {
		c.GC.ShrinkFactor = DefaultShrinkFactor
	}
	if c.Diagnostics.Color == "" {
		c.Diagnostics.Color = "auto"
	}
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	if c.GC.Threshold < 0 {
		return fmt.Errorf("%s: gc.threshold must not be negative", path)
	}
	if c.GC.Interval < 0 {
		return fmt.Errorf("%s: gc.interval must not be negative", path)
	}
	if c.GC.LowEfficiency > c.GC.HighEfficiency {
		return fmt.Errorf("%s: gc.low_efficiency (%g) exceeds gc.high_efficiency (%g)",
			path, c.GC.LowEfficiency, c.GC.HighEfficiency)
	}
	if c.GC.GrowFactor < 1 {
		return fmt.Errorf("%s: gc.grow_factor must be at least 1, got %g", path, c.GC.GrowFactor)
	}
	if c.GC.ShrinkFactor > 1 || c.GC.ShrinkFactor < 0 {
		return fmt.Errorf("%s: gc.shrink_factor must be within [0, 1], got %g", path, c.GC.ShrinkFactor)
	}
	if c.Analysis.MaxDiagnostics < 0 {
		return fmt.Errorf("%s: analysis.max_diagnostics must not be negative", path)
	}

	switch c.Diagnostics.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("%s: diagnostics.color must be auto, always or never, got %q", path, c.Diagnostics.Color)
	}

	seen := make(map[string]int)
	for i, impl := range c.Implementations {
		if impl.Type == "" {
			return fmt.Errorf("%s: implementations[%d]: type is required", path, i)
		}
		if impl.Interface == "" {
			return fmt.Errorf("%s: implementations[%d] (%s): interface is required", path, i, impl.Type)
		}
		key := impl.Type + ":" + impl.Interface
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%s: implementations[%d]: %s implements %s already declared at implementations[%d]",
				path, i, impl.Type, impl.Interface, prev)
		}
		seen[key] = i
		for j, m := range impl.Methods {
			if m.Name == "" {
				return fmt.Errorf("%s: implementations[%d].methods[%d] (%s): name is required", path, i, j, impl.Type)
			}
			if m.Returns == "" {
				return fmt.Errorf("%s: implementations[%d].methods[%d] (%s.%s): returns is required",
					path, i, j, impl.Type, m.Name)
			}
		}
	}

	return nil
}
