package config

import (
	"fmt"

	"github.com/yndnr/zombienet-go/internal/core/domain"
	"github.com/yndnr/zombienet-go/internal/infra/confloader"
)

// Load builds the settings from path (optional), the environment and
// overrides, which use dotted keys such as "log.level".
func Load(path string, overrides map[string]any) (*Settings, error) {
	loader := confloader.NewLoader()

	if err := loader.LoadFile(path); err != nil {
		return nil, domain.ErrConfigInvalid.WithDetails(path).WithCause(err)
	}
	if err := loader.LoadEnv(); err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		if err := loader.LoadMap(overrides); err != nil {
			return nil, err
		}
	}

	s := Default()
	if err := loader.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, domain.ErrConfigInvalid.WithDetails("settings").WithCause(err)
	}
	return s, nil
}
