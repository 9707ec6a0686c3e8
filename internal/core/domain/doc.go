// Package domain defines the core vocabulary shared by the zombienet CLI.
//
// It holds no IO and no framework coupling:
//
//   - Errors: coded errors for every failure the CLI can surface
//   - Provider: the provider allow-list and its defaults
//
// Errors carry a stable code (ZN-<AREA>-<NNNN>) so callers can match them
// with errors.Is regardless of the attached details or cause.
package domain
