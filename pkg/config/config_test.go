package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stephengroombbc/unusedapi/pkg/models"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	if cfg.Analysis.Severity != "warning" {
		t.Errorf("Analysis.Severity = %s, want warning", cfg.Analysis.Severity)
	}
	if len(cfg.Analysis.ExcludedModules) != 0 {
		t.Error("Analysis.ExcludedModules should be empty by default")
	}
	if cfg.Analysis.Workers != 0 {
		t.Errorf("Analysis.Workers = %d, want 0", cfg.Analysis.Workers)
	}

	if cfg.Output.Format != "text" {
		t.Errorf("Output.Format = %s, want text", cfg.Output.Format)
	}
	if !cfg.Output.Color {
		t.Error("Output.Color should be true by default")
	}
}

func TestLoadTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "unusedapi.toml")

	content := `
[analysis]
severity = "error"
excluded_modules = ["GeneratedAPI", "Fixtures"]
workers = 4

[output]
format = "json"
`

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	sev, err := cfg.Severity()
	if err != nil {
		t.Fatalf("Severity() error: %v", err)
	}
	if sev != models.SeverityError {
		t.Errorf("Severity() = %s, want error", sev)
	}
	if !cfg.ModuleExcluded("GeneratedAPI") {
		t.Error("ModuleExcluded(GeneratedAPI) should be true")
	}
	if cfg.ModuleExcluded("App") {
		t.Error("ModuleExcluded(App) should be false")
	}
	if cfg.Analysis.Workers != 4 {
		t.Errorf("Analysis.Workers = %d, want 4", cfg.Analysis.Workers)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %s, want json", cfg.Output.Format)
	}
}

func TestLoadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "unusedapi.yaml")

	content := `
analysis:
  severity: warning
  excluded_modules:
    - Vendored

output:
  format: markdown
`

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Analysis.Severity != "warning" {
		t.Errorf("Analysis.Severity = %s, want warning", cfg.Analysis.Severity)
	}
	if !cfg.ModuleExcluded("Vendored") {
		t.Error("ModuleExcluded(Vendored) should be true")
	}
	if cfg.Output.Format != "markdown" {
		t.Errorf("Output.Format = %s, want markdown", cfg.Output.Format)
	}
}

func TestLoadJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "unusedapi.json")

	content := `{
  "analysis": {
    "severity": "error"
  },
  "baseline": {
    "path": ".unusedapi-baseline.json"
  }
}`

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Analysis.Severity != "error" {
		t.Errorf("Analysis.Severity = %s, want error", cfg.Analysis.Severity)
	}
	if cfg.Baseline.Path != ".unusedapi-baseline.json" {
		t.Errorf("Baseline.Path = %s, want .unusedapi-baseline.json", cfg.Baseline.Path)
	}
}

func TestLoadUnknownKey(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "unusedapi.toml")

	content := `
[analysis]
severty = "error"
`

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() should return error for unknown key")
	}
}

func TestLoadUnknownSection(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "unusedapi.toml")

	content := `
[thresholds]
confidence = 0.8
`

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() should return error for unknown section")
	}
}

func TestLoadInvalidSeverity(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "unusedapi.yaml")

	content := `
analysis:
  severity: critical
`

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() should return error for unrecognized severity")
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	_, err := Load("/nonexistent/path/unusedapi.toml")
	if err == nil {
		t.Error("Load() should return error for non-existent file")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "unusedapi.toml")

	// Invalid TOML
	content := `[analysis
invalid toml`

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() should return error for invalid config")
	}
}

func TestLoadOrDefault(t *testing.T) {
	// In a directory without config files, should return defaults
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	cfg, err := LoadOrDefault()
	if err != nil {
		t.Fatalf("LoadOrDefault() error: %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadOrDefault() returned nil")
	}

	if cfg.Analysis.Severity != "warning" {
		t.Errorf("LoadOrDefault() returned non-default severity: %s", cfg.Analysis.Severity)
	}
}

func TestLoadOrDefaultWithConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)

	content := `
[analysis]
severity = "error"
`
	if err := os.WriteFile(filepath.Join(tmpDir, "unusedapi.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	cfg, err := LoadOrDefault()
	if err != nil {
		t.Fatalf("LoadOrDefault() error: %v", err)
	}
	if cfg.Analysis.Severity != "error" {
		t.Errorf("LoadOrDefault() should load from file, got severity=%s", cfg.Analysis.Severity)
	}
}

func TestLoadOrDefaultWithInvalidConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)

	content := `
[analysis]
severit = "error"
`
	if err := os.WriteFile(filepath.Join(tmpDir, "unusedapi.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	if _, err := LoadOrDefault(); err == nil {
		t.Error("LoadOrDefault() should fail on a present but invalid config file")
	}
}
