package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yndnr/zombienet-go/internal/cli/output"
	"github.com/yndnr/zombienet-go/internal/network/config"
	"github.com/yndnr/zombienet-go/internal/telemetry/logger"
)

// SummaryFile is written to the network directory on launch.
const SummaryFile = "zombie.json"

// Network is a launched network. It implements session.Session.
type Network struct {
	namespace   string
	provider    Provider
	nodes       []config.Node
	dir         string
	parallelism int
	log         logger.Logger
	startedAt   time.Time

	mu    sync.Mutex
	timer *time.Timer

	stopOnce sync.Once
	stopErr  error
}

// Summary describes a network for machine consumption.
type Summary struct {
	Namespace string        `json:"namespace"`
	Provider  string        `json:"provider"`
	StartedAt time.Time     `json:"started_at"`
	LogsDir   string        `json:"logs_dir"`
	Nodes     []NodeSummary `json:"nodes"`
}

// NodeSummary describes one node.
type NodeSummary struct {
	Name      string `json:"name"`
	Image     string `json:"image"`
	Validator bool   `json:"validator"`
}

// Namespace implements session.Session.
func (n *Network) Namespace() string { return n.namespace }

// Provider returns the provider name.
func (n *Network) Provider() string { return n.provider.Name() }

// Dir returns the directory holding the network's artifacts.
func (n *Network) Dir() string { return n.dir }

// LogsDir returns where UploadLogs writes node logs.
func (n *Network) LogsDir() string { return filepath.Join(n.dir, "logs") }

// Node returns the node called name.
func (n *Network) Node(name string) (config.Node, bool) {
	for _, node := range n.nodes {
		if node.Name == name {
			return node, true
		}
	}
	return config.Node{}, false
}

// NodeRunning reports whether the node is up.
func (n *Network) NodeRunning(ctx context.Context, name string) (bool, error) {
	if _, ok := n.Node(name); !ok {
		return false, fmt.Errorf("node %q is not part of network %s", name, n.namespace)
	}
	return n.provider.NodeRunning(ctx, n.namespace, name)
}

// Stop implements session.Session. Only the first call reaches the
// provider; later calls return its result.
func (n *Network) Stop(ctx context.Context) error {
	n.stopOnce.Do(func() {
		n.mu.Lock()
		if n.timer != nil {
			n.timer.Stop()
		}
		n.mu.Unlock()

		n.log.Debug("destroying namespace")
		n.stopErr = n.provider.Destroy(ctx, n.namespace)
	})
	return n.stopErr
}

// UploadLogs implements session.Session. Each node's output is written to
// LogsDir()/<node>.log.
func (n *Network) UploadLogs(ctx context.Context) error {
	dir := n.LogsDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create logs dir: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n.parallelism)
	for _, node := range n.nodes {
		node := node
		g.Go(func() error {
			data, err := n.provider.NodeLogs(gctx, n.namespace, node.Name)
			if err != nil {
				return fmt.Errorf("fetch logs of %s: %w", node.Name, err)
			}
			return os.WriteFile(filepath.Join(dir, node.Name+".log"), data, 0644)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	n.log.Info("node logs saved", "dir", dir)
	return nil
}

// ShowNetworkInfo implements session.Session.
func (n *Network) ShowNetworkInfo(w io.Writer) {
	f := &output.TableFormatter{}
	if err := f.Format(w, n); err != nil {
		n.log.Warn("failed to render network info", "error", err)
	}
}

// Table implements output.Tabler.
func (n *Network) Table() *output.Table {
	t := output.NewTable("NODE", "IMAGE", "ROLE")
	t.Title = fmt.Sprintf("Network launched\nNamespace: %s\nProvider:  %s\nLogs:      %s",
		n.namespace, n.provider.Name(), n.LogsDir())
	for _, node := range n.nodes {
		role := "full"
		if node.Validator {
			role = "validator"
		}
		t.AddRow(node.Name, node.Image, role)
	}
	return t
}

// Summary returns a machine-readable description of the network.
func (n *Network) Summary() Summary {
	s := Summary{
		Namespace: n.namespace,
		Provider:  n.provider.Name(),
		StartedAt: n.startedAt,
		LogsDir:   n.LogsDir(),
	}
	for _, node := range n.nodes {
		s.Nodes = append(s.Nodes, NodeSummary{Name: node.Name, Image: node.Image, Validator: node.Validator})
	}
	return s
}

func (n *Network) writeSummary() error {
	if err := os.MkdirAll(n.dir, 0755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(n.dir, SummaryFile))
	if err != nil {
		return err
	}
	defer f.Close()
	return output.NewFormatter(output.FormatJSON).Format(f, n.Summary())
}

// expireAfter removes the network once d elapses.
func (n *Network) expireAfter(d time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.timer = time.AfterFunc(d, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
		defer cancel()
		n.log.Info("global timeout reached, removing network", "timeout", d.String())
		if err := n.Stop(ctx); err != nil {
			n.log.Error("scheduled teardown failed", "error", err)
		}
	})
}
