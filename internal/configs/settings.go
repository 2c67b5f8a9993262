package configs

import (
	"os"
	"path/filepath"
)

// ConfigDirEnv overrides the directory holding config.toml and the audit log.
const ConfigDirEnv = "SHHCRYPT_CONFIG_DIR"

type Settings struct {
	ConfigDir    string
	ConfigPath   string
	AuditLogPath string
	// AuditEnabled mirrors [audit] enabled from the loaded config.
	AuditEnabled bool
}

var ShhcryptSettings *Settings

func init() {
	ShhcryptSettings = ResolveSettings()
}

// ResolveSettings computes the settings from the environment. When no
// config directory can be determined the paths stay empty and both the
// config file and the audit log are skipped.
func ResolveSettings() *Settings {
	configDir := os.Getenv(ConfigDirEnv)
	if configDir == "" {
		userConfigDir, err := os.UserConfigDir()
		if err != nil {
			return &Settings{}
		}
		configDir = filepath.Join(userConfigDir, "shhcrypt")
	}

	return SettingsFor(configDir)
}

// SettingsFor returns the settings rooted at configDir.
func SettingsFor(configDir string) *Settings {
	return &Settings{
		ConfigDir:    configDir,
		ConfigPath:   filepath.Join(configDir, "config.toml"),
		AuditLogPath: filepath.Join(configDir, "audit.jsonl"),
		AuditEnabled: true,
	}
}
