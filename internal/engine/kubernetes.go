package engine

import (
	"context"
	"strings"

	"github.com/yndnr/zombienet-go/internal/core/domain"
	"github.com/yndnr/zombienet-go/internal/network/config"
)

// Kubernetes runs every node as a pod in a dedicated namespace.
type Kubernetes struct {
	runner CommandRunner
	// kubeconfig is empty when kubectl should use its own default.
	kubeconfig string
}

// Name implements Provider.
func (k *Kubernetes) Name() string { return domain.ProviderKubernetes }

// Setup implements Provider.
func (k *Kubernetes) Setup(ctx context.Context, namespace string) error {
	_, err := k.kubectl(ctx, "create", "namespace", namespace)
	return err
}

// StartNode implements Provider.
func (k *Kubernetes) StartNode(ctx context.Context, namespace string, node config.Node) error {
	args := []string{
		"run", node.Name,
		"--namespace", namespace,
		"--image", node.Image,
		"--restart", "Never",
		"--labels", "app=zombienet,zombie-node=" + node.Name,
	}
	if cmd := nodeArgs(node); len(cmd) > 0 {
		if node.Command != "" {
			args = append(args, "--command")
		}
		args = append(args, "--")
		args = append(args, cmd...)
	}
	_, err := k.kubectl(ctx, args...)
	return err
}

// NodeRunning implements Provider.
func (k *Kubernetes) NodeRunning(ctx context.Context, namespace, node string) (bool, error) {
	out, err := k.kubectl(ctx, "get", "pod", node, "--namespace", namespace, "--output", "jsonpath={.status.phase}")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(string(out)) == "Running", nil
}

// NodeLogs implements Provider.
func (k *Kubernetes) NodeLogs(ctx context.Context, namespace, node string) ([]byte, error) {
	return k.kubectl(ctx, "logs", node, "--namespace", namespace)
}

// Destroy implements Provider.
func (k *Kubernetes) Destroy(ctx context.Context, namespace string) error {
	_, err := k.kubectl(ctx, "delete", "namespace", namespace, "--wait=false")
	return err
}

func (k *Kubernetes) kubectl(ctx context.Context, args ...string) ([]byte, error) {
	if k.kubeconfig != "" {
		args = append([]string{"--kubeconfig", k.kubeconfig}, args...)
	}
	return k.runner.Run(ctx, "kubectl", args...)
}
