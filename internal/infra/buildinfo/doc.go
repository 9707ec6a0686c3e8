// Package buildinfo exposes build information for the zombienet CLI.
//
// Commit and BuildTime are injected at build time:
//
//	go build -ldflags "-X github.com/yndnr/zombienet-go/internal/infra/buildinfo.Commit=abc123"
//
// Version is the released CLI version printed by `zombienet version`.
package buildinfo
