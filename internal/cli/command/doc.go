// Package command defines the zombienet command-line surface.
//
// It uses urfave/cli/v2. Every command resolves its arguments through
// internal/cli/invocation and hands the result to the dispatcher; the
// process itself is ended by the shutdown guardian, never by a command.
package command
