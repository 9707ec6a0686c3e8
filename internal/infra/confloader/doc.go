// Package confloader loads configuration for the zombienet CLI.
//
// It is a thin layer over koanf:
//
//   - Network definitions: JSON or YAML files, picked by extension
//   - CLI settings: optional YAML file, then ZOMBIE_* environment variables,
//     then values taken from command-line flags (LoadMap)
//   - Watcher: fsnotify based change notification for a single file
//
// Later sources override earlier ones.
package confloader
