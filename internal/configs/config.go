package configs

import (
	"errors"
	"fmt"
	"os"
	"strings"

	kerrors "github.com/shhcrypt/shhcrypt/internal/errors"
)

// MaxErasePasses bounds [erase] passes.
const MaxErasePasses = 35

type Config struct {
	Erase EraseConfig `toml:"erase" json:"erase"`
	Audit AuditConfig `toml:"audit" json:"audit"`
}

type EraseConfig struct {
	Passes int `toml:"passes" json:"passes"`
}

type AuditConfig struct {
	Enabled bool `toml:"enabled" json:"enabled"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Erase: EraseConfig{Passes: 3},
		Audit: AuditConfig{Enabled: true},
	}
}

// Validate checks that every value is in range.
func (c *Config) Validate() error {
	if c.Erase.Passes < 1 || c.Erase.Passes > MaxErasePasses {
		return fmt.Errorf("%w: erase.passes must be between 1 and %d, got %d",
			kerrors.ErrInvalidConfig, MaxErasePasses, c.Erase.Passes)
	}
	return nil
}

// LoadConfig loads the config file named by ShhcryptSettings. A missing
// file yields the defaults; keys absent from the file keep their default.
func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	configPath := ShhcryptSettings.ConfigPath
	if configPath == "" {
		return config, nil
	}

	meta, err := LoadTOML(configPath, config)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidConfig, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("%w: unknown keys: %s", kerrors.ErrInvalidConfig, strings.Join(keys, ", "))
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig writes config to the file named by ShhcryptSettings.
func SaveConfig(config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	configPath := ShhcryptSettings.ConfigPath
	if configPath == "" {
		return fmt.Errorf("no config directory available (hint: set %s)", ConfigDirEnv)
	}

	if err := SaveTOML(configPath, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// Apply copies config values that affect process-wide settings.
func (c *Config) Apply(settings *Settings) {
	settings.AuditEnabled = c.Audit.Enabled
}
