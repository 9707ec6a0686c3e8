package domain

import "slices"

// Providers understood by the CLI.
const (
	ProviderPodman     = "podman"
	ProviderKubernetes = "kubernetes"
)

// DefaultProvider is used by `test` when no valid provider is given.
const DefaultProvider = ProviderKubernetes

// DefaultGlobalTimeout is the network timeout, in seconds, used when a
// provider override has to create the settings block.
const DefaultGlobalTimeout = 1200

// AvailableProviders is the provider allow-list.
var AvailableProviders = []string{ProviderPodman, ProviderKubernetes}

// IsAvailableProvider reports whether p is in the allow-list.
func IsAvailableProvider(p string) bool {
	return slices.Contains(AvailableProviders, p)
}

// NeedsCreds reports whether the provider needs cluster credentials.
func NeedsCreds(p string) bool {
	return p == ProviderKubernetes
}
