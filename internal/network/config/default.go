package config

import "github.com/yndnr/zombienet-go/internal/core/domain"

// DefaultSettings returns a settings block for provider with the default
// global timeout.
func DefaultSettings(provider string) *Settings {
	return &Settings{
		Provider: provider,
		Timeout:  domain.DefaultGlobalTimeout,
	}
}

// applyDefaults fills values a file may leave out.
func applyDefaults(cfg *NetworkConfig) {
	if cfg.Settings != nil && cfg.Settings.Timeout == 0 {
		cfg.Settings.Timeout = domain.DefaultGlobalTimeout
	}
}
