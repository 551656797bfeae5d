package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(""), "empty.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GC.Threshold != DefaultGCThreshold {
		t.Errorf("threshold = %d, want %d", cfg.GC.Threshold, DefaultGCThreshold)
	}
	if cfg.GC.Interval != 100*time.Millisecond {
		t.Errorf("interval = %v, want 100ms", cfg.GC.Interval)
	}
	if cfg.GC.GrowFactor != 1.5 || cfg.GC.ShrinkFactor != 0.8 {
		t.Errorf("factors = %g/%g, want 1.5/0.8", cfg.GC.GrowFactor, cfg.GC.ShrinkFactor)
	}
	if cfg.Diagnostics.Color != "auto" {
		t.Errorf("color = %q, want auto", cfg.Diagnostics.Color)
	}
}

func TestParseConfig_Full(t *testing.T) {
	yaml := `
gc:
  threshold: 64
  interval: 250ms
analysis:
  max_diagnostics: 10
  stop_on_error: true
  verify_signatures: true
diagnostics:
  color: never
  store: diag.db
implementations:
  - type: Point
    interface: Eq
    methods:
      - name: eq
        params: [Point, Point]
        returns: bool
`
	cfg, err := ParseConfig([]byte(yaml), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GC.Threshold != 64 {
		t.Errorf("threshold = %d, want 64", cfg.GC.Threshold)
	}
	if cfg.GC.Interval != 250*time.Millisecond {
		t.Errorf("interval = %v, want 250ms", cfg.GC.Interval)
	}
	if !cfg.Analysis.StopOnError || !cfg.Analysis.VerifySignatures || cfg.Analysis.MaxDiagnostics != 10 {
		t.Errorf("analysis = %+v", cfg.Analysis)
	}
	if cfg.Diagnostics.Store != "diag.db" || cfg.Diagnostics.Color != "never" {
		t.Errorf("diagnostics = %+v", cfg.Diagnostics)
	}
	if len(cfg.Implementations) != 1 {
		t.Fatalf("expected 1 implementation, got %d", len(cfg.Implementations))
	}
	impl := cfg.Implementations[0]
	if impl.Type != "Point" || impl.Interface != "Eq" || len(impl.Methods) != 1 {
		t.Fatalf("implementation = %+v", impl)
	}
	if m := impl.Methods[0]; m.Name != "eq" || len(m.Params) != 2 || m.Returns != "bool" {
		t.Errorf("method = %+v", m)
	}
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"negative threshold", "gc:\n  threshold: -1\n", "gc.threshold"},
		{"inverted efficiency", "gc:\n  low_efficiency: 0.9\n  high_efficiency: 0.2\n", "low_efficiency"},
		{"shrink above one", "gc:\n  shrink_factor: 1.2\n", "shrink_factor"},
		{"bad color", "diagnostics:\n  color: rainbow\n", "diagnostics.color"},
		{"missing type", "implementations:\n  - interface: Eq\n", "type is required"},
		{"missing interface", "implementations:\n  - type: Point\n", "interface is required"},
		{"duplicate", "implementations:\n  - {type: P, interface: Eq}\n  - {type: P, interface: Eq}\n", "already declared"},
		{"method without returns", "implementations:\n  - type: P\n    interface: Eq\n    methods:\n      - name: eq\n", "returns is required"},
		{"malformed", "gc: [", "parsing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml), "bad.yaml")
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestFindConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, FileName)
	if err := os.WriteFile(want, []byte("gc:\n  threshold: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FindConfig(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("FindConfig = %q, want %q", got, want)
	}

	cfg, err := LoadConfig(got)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.GC.Threshold != 5 {
		t.Errorf("threshold = %d, want 5", cfg.GC.Threshold)
	}
}

func TestDebugFlag(t *testing.T) {
	defer SetDebug(false)
	if DebugEnabled() {
		t.Fatal("debug should start disabled")
	}
	SetDebug(true)
	if !DebugEnabled() {
		t.Error("debug should be enabled after SetDebug(true)")
	}
}
