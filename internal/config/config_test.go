package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `exclude:
  - node_modules
  - dist
workers: 4
listen: "0.0.0.0:9000"
server: "http://sync.internal:9000"
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	expectedExclude := []string{"node_modules", "dist"}
	if len(cfg.Exclude) != len(expectedExclude) {
		t.Errorf("Expected %d exclude names, got %d", len(expectedExclude), len(cfg.Exclude))
	}
	for i, expected := range expectedExclude {
		if cfg.Exclude[i] != expected {
			t.Errorf("Exclude[%d]: expected %q, got %q", i, expected, cfg.Exclude[i])
		}
	}

	if cfg.Workers != 4 {
		t.Errorf("Expected 4 workers, got %d", cfg.Workers)
	}
	if cfg.Listen != "0.0.0.0:9000" {
		t.Errorf("Unexpected listen address %q", cfg.Listen)
	}
	if cfg.Server != "http://sync.internal:9000" {
		t.Errorf("Unexpected server URL %q", cfg.Server)
	}
}

func TestLoadConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/config.yaml")
	if err != nil {
		t.Fatalf("LoadConfig should return default config for nonexistent file, got error: %v", err)
	}

	if cfg.Workers < 1 {
		t.Error("Default config should have at least one worker")
	}
	if cfg.Listen == "" || cfg.Server == "" {
		t.Error("Default config should have listen and server addresses")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := "exclude: [unclosed\nworkers: : bad"

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("LoadConfig should return error for invalid YAML")
	}
}

func TestLoadConfig_EmptyConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "empty.yaml")

	if err := os.WriteFile(configPath, []byte(""), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed for empty config: %v", err)
	}

	if cfg.Exclude == nil {
		t.Error("Exclude should not be nil")
	}
	if cfg.Workers < 1 {
		t.Error("Workers should fall back to a sane default")
	}
}

func TestLoadConfig_ZeroWorkersClamped(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("workers: 0\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Workers != 1 {
		t.Errorf("Expected workers clamped to 1, got %d", cfg.Workers)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Exclude == nil {
		t.Error("Default config Exclude should not be nil")
	}
	if cfg.Workers < 1 {
		t.Error("Default config should have at least one worker")
	}
}
