package app

import (
	"os"
	"testing"

	"github.com/axicon-labs/constable/pkg/constants"
)

// TestLoadConfig verifies basic config loading.
func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config == nil {
		t.Fatal("LoadConfig() returned nil config")
	}

	// Verify defaults are set
	// Note: LogLevel may be empty (triggers precedence logic in logger.go)
	// LogFormat should have a default
	if config.LogFormat == "" {
		t.Error("LogFormat not set to default")
	}
	if config.Workers != constants.DefaultWorkers {
		t.Errorf("Workers = %d, want %d", config.Workers, constants.DefaultWorkers)
	}
}

// TestConfig_EnvironmentVariables verifies environment variable loading.
func TestConfig_EnvironmentVariables(t *testing.T) {
	// Save original env
	oldVerbose := os.Getenv("VERBOSE")
	oldOutput := os.Getenv("OUTPUT")
	oldRegistry := os.Getenv("REGISTRY")
	defer func() {
		os.Setenv("VERBOSE", oldVerbose)
		os.Setenv("OUTPUT", oldOutput)
		os.Setenv("REGISTRY", oldRegistry)
	}()

	// Set test environment variables
	os.Setenv("VERBOSE", "true")
	os.Setenv("OUTPUT", "json")
	os.Setenv("REGISTRY", "constants.yaml")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if !config.Verbose {
		t.Error("VERBOSE environment variable not loaded")
	}
	if config.Output != "json" {
		t.Errorf("Output = %s, want json", config.Output)
	}
	if config.RegistryFile != "constants.yaml" {
		t.Errorf("RegistryFile = %s, want constants.yaml", config.RegistryFile)
	}
}

// TestConfig_EngineSettings verifies engine tuning values parse from env.
func TestConfig_EngineSettings(t *testing.T) {
	tests := []struct {
		name     string
		envVar   string
		envValue string
		check    func(*Config) bool
	}{
		{
			name:     "Threshold",
			envVar:   "THRESHOLD",
			envValue: "0.9",
			check:    func(c *Config) bool { return c.Threshold == 0.9 },
		},
		{
			name:     "RequireUnique",
			envVar:   "REQUIRE_UNIQUE",
			envValue: "true",
			check:    func(c *Config) bool { return c.RequireUnique },
		},
		{
			name:     "Workers",
			envVar:   "WORKERS",
			envValue: "8",
			check:    func(c *Config) bool { return c.Workers == 8 },
		},
		{
			name:     "BackupDir",
			envVar:   "BACKUP_DIR",
			envValue: "/tmp/backups",
			check:    func(c *Config) bool { return c.BackupDir == "/tmp/backups" },
		},
		{
			name:     "NoColor",
			envVar:   "NO_COLOR",
			envValue: "1",
			check:    func(c *Config) bool { return c.NoColor },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Save and restore env
			old := os.Getenv(tt.envVar)
			defer os.Setenv(tt.envVar, old)

			os.Setenv(tt.envVar, tt.envValue)

			config, err := LoadConfig()
			if err != nil {
				t.Fatalf("LoadConfig() failed: %v", err)
			}

			if !tt.check(config) {
				t.Errorf("%s not loaded from %s=%s", tt.name, tt.envVar, tt.envValue)
			}
		})
	}
}

// TestConfig_UpdateFromFlags verifies flag values take precedence.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{
		Verbose: false,
		Output:  "table",
	}

	config.UpdateFromFlags(true, false, true, "yaml", "debug")

	if !config.Verbose {
		t.Error("Verbose not updated from flags")
	}
	if config.Quiet {
		t.Error("Quiet should remain false")
	}
	if !config.NoColor {
		t.Error("NoColor not updated from flags")
	}
	if config.Output != "yaml" {
		t.Errorf("Output = %s, want yaml", config.Output)
	}
	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", config.LogLevel)
	}
}

// TestConfig_UpdateFromFlags_EmptyKeepsExisting verifies empty flag
// values do not clobber configured ones.
func TestConfig_UpdateFromFlags_EmptyKeepsExisting(t *testing.T) {
	config := &Config{
		Output:   "json",
		LogLevel: "warn",
	}

	config.UpdateFromFlags(false, false, false, "", "")

	if config.Output != "json" {
		t.Errorf("Output = %s, want json preserved", config.Output)
	}
	if config.LogLevel != "warn" {
		t.Errorf("LogLevel = %s, want warn preserved", config.LogLevel)
	}
}
