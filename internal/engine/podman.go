package engine

import (
	"context"
	"strings"

	"github.com/yndnr/zombienet-go/internal/core/domain"
	"github.com/yndnr/zombienet-go/internal/network/config"
)

// Podman runs every node as a container in one pod.
type Podman struct {
	runner CommandRunner
}

// Name implements Provider.
func (p *Podman) Name() string { return domain.ProviderPodman }

// Setup implements Provider.
func (p *Podman) Setup(ctx context.Context, namespace string) error {
	_, err := p.runner.Run(ctx, "podman", "pod", "create", "--name", namespace)
	return err
}

// StartNode implements Provider.
func (p *Podman) StartNode(ctx context.Context, namespace string, node config.Node) error {
	args := []string{"run", "-d", "--pod", namespace, "--name", containerName(namespace, node.Name), node.Image}
	_, err := p.runner.Run(ctx, "podman", append(args, nodeArgs(node)...)...)
	return err
}

// NodeRunning implements Provider.
func (p *Podman) NodeRunning(ctx context.Context, namespace, node string) (bool, error) {
	out, err := p.runner.Run(ctx, "podman", "inspect", "--format", "{{.State.Running}}", containerName(namespace, node))
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(string(out)) == "true", nil
}

// NodeLogs implements Provider.
func (p *Podman) NodeLogs(ctx context.Context, namespace, node string) ([]byte, error) {
	return p.runner.Run(ctx, "podman", "logs", containerName(namespace, node))
}

// Destroy implements Provider.
func (p *Podman) Destroy(ctx context.Context, namespace string) error {
	_, err := p.runner.Run(ctx, "podman", "pod", "rm", "--force", namespace)
	return err
}
