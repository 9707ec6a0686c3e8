// Package logger provides structured logging for the zombienet CLI.
//
//   - logger.go: log/slog based logger, global level, DEBUG toggle
//   - context.go: context-aware logging with namespace and run IDs
//   - redact.go: masking of credential paths and secrets
//
// The CLI logs in text format to stderr by default. Diagnostic output is
// switched on through the DEBUG environment variable: a value
// naming the "zombie" namespace (or "*") lowers the level to debug.
package logger
