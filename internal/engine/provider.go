package engine

import (
	"context"
	"fmt"

	"github.com/yndnr/zombienet-go/internal/core/domain"
	"github.com/yndnr/zombienet-go/internal/network/config"
)

// Provider realizes nodes on an infrastructure backend.
type Provider interface {
	// Name returns the provider identifier.
	Name() string
	// Setup creates the namespace that will hold every node.
	Setup(ctx context.Context, namespace string) error
	// StartNode launches a single node inside the namespace.
	StartNode(ctx context.Context, namespace string, node config.Node) error
	// NodeRunning reports whether the node's container is running.
	NodeRunning(ctx context.Context, namespace, node string) (bool, error)
	// NodeLogs returns the node's output.
	NodeLogs(ctx context.Context, namespace, node string) ([]byte, error)
	// Destroy removes the namespace and everything in it.
	Destroy(ctx context.Context, namespace string) error
}

// NewProvider returns the backend for name. An empty name selects the
// default provider.
func NewProvider(name, creds string, runner CommandRunner) (Provider, error) {
	if name == "" {
		name = domain.DefaultProvider
	}
	switch name {
	case domain.ProviderPodman:
		return &Podman{runner: runner}, nil
	case domain.ProviderKubernetes:
		return &Kubernetes{runner: runner, kubeconfig: creds}, nil
	default:
		return nil, domain.ErrProviderUnsupported.WithDetails(name)
	}
}

func nodeArgs(node config.Node) []string {
	var args []string
	if node.Command != "" {
		args = append(args, node.Command)
	}
	if node.Validator {
		args = append(args, "--validator")
	}
	args = append(args, "--name", node.Name)
	return append(args, node.Args...)
}

func containerName(namespace, node string) string {
	return fmt.Sprintf("%s_%s", namespace, node)
}
