package cmd

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/shhcrypt/shhcrypt/internal/configs"
)

func TestConfigInit_WritesDefaults(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, "config", "init")
	if err != nil {
		t.Fatalf("config init failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "Configuration written to") {
		t.Errorf("Expected success message, got: %s", output)
	}

	config, err := configs.LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load written config: %v", err)
	}
	if config.Erase.Passes != 3 || !config.Audit.Enabled {
		t.Errorf("Unexpected config: %+v", config)
	}
}

func TestConfigInit_KeepsExistingWithoutForce(t *testing.T) {
	setupTestEnvironment(t)
	configPath := configs.ShhcryptSettings.ConfigPath
	if err := os.WriteFile(configPath, []byte("[erase]\npasses = 7\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	output, err := runCLI(t, "config", "init")
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(output, "already exists") {
		t.Errorf("Expected already-exists message, got: %s", output)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}
	if !strings.Contains(string(data), "passes = 7") {
		t.Errorf("Existing config was overwritten: %s", data)
	}
}

func TestConfigInit_ForceOverwrites(t *testing.T) {
	setupTestEnvironment(t)
	if err := os.WriteFile(configs.ShhcryptSettings.ConfigPath, []byte("[erase]\npasses = 7\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if output, err := runCLI(t, "config", "init", "--force"); err != nil {
		t.Fatalf("config init --force failed: %v\nOutput: %s", err, output)
	}

	config, err := configs.LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.Erase.Passes != 3 {
		t.Errorf("Expected passes reset to 3, got %d", config.Erase.Passes)
	}
}

func TestConfigShow_JSON(t *testing.T) {
	setupTestEnvironment(t)
	if err := os.WriteFile(configs.ShhcryptSettings.ConfigPath, []byte("[erase]\npasses = 5\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	output, err := runCLI(t, "config", "show", "--json")
	if err != nil {
		t.Fatalf("config show failed: %v\nOutput: %s", err, output)
	}

	var config configs.Config
	if err := json.Unmarshal([]byte(output), &config); err != nil {
		t.Fatalf("Failed to parse output: %v\nOutput: %s", err, output)
	}
	if config.Erase.Passes != 5 || !config.Audit.Enabled {
		t.Errorf("Unexpected config: %+v", config)
	}
}

func TestConfigShow_Text(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "Erase passes:") || !strings.Contains(output, "3") {
		t.Errorf("Expected default passes in output, got: %s", output)
	}
}

func TestConfigShow_InvalidConfig(t *testing.T) {
	setupTestEnvironment(t)
	if err := os.WriteFile(configs.ShhcryptSettings.ConfigPath, []byte("[erase]\nwipes = 3\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	output, err := runCLI(t, "config", "show")
	if err == nil {
		t.Fatalf("Expected unknown key to fail, output: %s", output)
	}
	if !strings.Contains(output, "unknown keys") {
		t.Errorf("Expected unknown keys message, got: %s", output)
	}
}
