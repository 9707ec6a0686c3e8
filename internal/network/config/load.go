package config

import (
	"path/filepath"

	"github.com/yndnr/zombienet-go/internal/core/domain"
	"github.com/yndnr/zombienet-go/internal/infra/confloader"
)

// Load reads and validates the network definition at path.
// Any failure is reported as domain.ErrConfigInvalid.
func Load(path string) (*NetworkConfig, error) {
	loader := confloader.NewLoader(
		confloader.WithEnvPrefix(""),
		confloader.WithConfigFile(path),
	)

	cfg := &NetworkConfig{}
	if err := loader.Load(cfg); err != nil {
		return nil, domain.ErrConfigInvalid.WithDetails(path).WithCause(err)
	}

	applyDefaults(cfg)
	if err := Verify(cfg); err != nil {
		return nil, domain.ErrConfigInvalid.WithDetails(path).WithCause(err)
	}

	cfg.BasePath = filepath.Dir(path)
	return cfg, nil
}
