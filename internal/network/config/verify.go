package config

import (
	"errors"
	"fmt"
	"regexp"
)

// nodeNamePattern keeps node names usable as container and pod names.
var nodeNamePattern = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`)

// Verify validates the structure of a network definition.
// The provider value is not checked here; an unknown provider fails when
// the engine tries to start the network.
func Verify(cfg *NetworkConfig) error {
	if cfg.Settings != nil && cfg.Settings.Timeout < 0 {
		return errors.New("settings.timeout must not be negative")
	}
	if len(cfg.Relaychain.Nodes) == 0 {
		return errors.New("relaychain.nodes must define at least one node")
	}

	seen := make(map[string]bool)
	for _, n := range cfg.Nodes() {
		if err := verifyNode(n); err != nil {
			return err
		}
		if seen[n.Name] {
			return fmt.Errorf("duplicate node name %q", n.Name)
		}
		seen[n.Name] = true
	}

	for _, p := range cfg.Parachains {
		if p.ID <= 0 {
			return fmt.Errorf("parachain id must be positive, got %d", p.ID)
		}
		if len(p.Collators) == 0 {
			return fmt.Errorf("parachain %d has no collators", p.ID)
		}
	}

	return nil
}

func verifyNode(n Node) error {
	if n.Name == "" {
		return errors.New("node name is required")
	}
	if !nodeNamePattern.MatchString(n.Name) {
		return fmt.Errorf("node name %q must be lowercase alphanumeric or '-'", n.Name)
	}
	if n.Image == "" {
		return fmt.Errorf("node %q has no image and no default_image is set", n.Name)
	}
	return nil
}
