// Package config defines the settings of the zombienet CLI itself.
//
// Settings come from three layers, later ones winning:
//
//   - an optional YAML or JSON file given with --settings
//   - ZOMBIE_* environment variables (ZOMBIE_LOG_LEVEL -> log.level)
//   - command-line flags
//
// Network definitions are a different thing and live in
// internal/network/config.
package config
