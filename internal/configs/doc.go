// Package configs manages shhcrypt's on-disk configuration.
//
// Settings are resolved once at startup from os.UserConfigDir(), or from
// $SHHCRYPT_CONFIG_DIR when set:
//
//	<config dir>/config.toml   user configuration
//	<config dir>/audit.jsonl   audit log
//
// # Configuration File
//
//	[erase]
//	passes = 3      # random overwrite passes per file, 1..35
//
//	[audit]
//	enabled = true  # append an entry to audit.jsonl after every run
//
// The file is optional. Missing keys keep their defaults; unknown keys and
// out-of-range values are rejected with ErrInvalidConfig.
package configs
