package invocation

import (
	"github.com/yndnr/zombienet-go/internal/network/config"
)

// Command identifies a CLI command.
type Command string

// Supported commands.
const (
	CommandSpawn   Command = "spawn"
	CommandTest    Command = "test"
	CommandVersion Command = "version"
)

// SpawnInvocation is a resolved `spawn` command.
type SpawnInvocation struct {
	// ConfigPath is the absolute path of an existing network config.
	ConfigPath string
	// CredsPath is the absolute creds path, or "" when the provider needs none.
	CredsPath string
	// Monitor disables the engine's scheduled teardown.
	Monitor bool
	// Config is the loaded network config with the provider override applied.
	Config *config.NetworkConfig
}

// Command returns CommandSpawn.
func (s *SpawnInvocation) Command() Command { return CommandSpawn }

// Provider returns the effective provider.
func (s *SpawnInvocation) Provider() string {
	return s.Config.Provider()
}

// TestInvocation is a resolved `test` command.
type TestInvocation struct {
	// TestFile is passed through to the test engine unchecked.
	TestFile string
	Provider string
}

// Command returns CommandTest.
func (t *TestInvocation) Command() Command { return CommandTest }

// VersionInvocation is a resolved `version` command.
type VersionInvocation struct {
	Version string
}

// Command returns CommandVersion.
func (v *VersionInvocation) Command() Command { return CommandVersion }
