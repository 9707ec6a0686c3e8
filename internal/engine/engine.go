package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/yndnr/zombienet-go/internal/core/domain"
	"github.com/yndnr/zombienet-go/internal/core/session"
	"github.com/yndnr/zombienet-go/internal/network/config"
	"github.com/yndnr/zombienet-go/internal/telemetry/logger"
)

const (
	// NamespacePrefix starts every network namespace.
	NamespacePrefix = "zombie-"

	// DefaultParallelism bounds concurrent provider calls.
	DefaultParallelism = 4

	// DefaultCallRate is the number of provider CLI calls started per second.
	DefaultCallRate = 10.0

	// cleanupTimeout bounds the removal of a half-started network.
	cleanupTimeout = 2 * time.Minute
)

// Engine starts networks.
type Engine struct {
	runner       CommandRunner
	log          logger.Logger
	baseDir      string
	parallelism  int
	callRate     float64
	newNamespace func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithRunner replaces the command runner.
func WithRunner(r CommandRunner) Option {
	return func(e *Engine) {
		e.runner = r
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithBaseDir sets the directory network artifacts are written under.
func WithBaseDir(dir string) Option {
	return func(e *Engine) {
		e.baseDir = dir
	}
}

// WithCallRate throttles provider CLI calls to perSecond. Zero disables
// throttling.
func WithCallRate(perSecond float64) Option {
	return func(e *Engine) {
		e.callRate = perSecond
	}
}

// WithParallelism bounds concurrent node operations.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.parallelism = n
		}
	}
}

// WithNamespaceFunc replaces the namespace generator.
func WithNamespaceFunc(fn func() string) Option {
	return func(e *Engine) {
		e.newNamespace = fn
	}
}

// New creates an engine that shells out to the provider CLIs.
func New(opts ...Option) *Engine {
	e := &Engine{
		runner:       ExecRunner{},
		log:          logger.Default(),
		baseDir:      os.TempDir(),
		parallelism:  DefaultParallelism,
		callRate:     DefaultCallRate,
		newNamespace: NewNamespace,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.runner = Limit(e.runner, e.callRate, e.parallelism)
	return e
}

// NewNamespace returns a fresh, DNS-safe namespace name.
func NewNamespace() string {
	return NamespacePrefix + strings.ToLower(ulid.Make().String())
}

// Start launches the network and returns it as a session.
func (e *Engine) Start(ctx context.Context, creds string, cfg *config.NetworkConfig, monitor bool) (session.Session, error) {
	n, err := e.Launch(ctx, creds, cfg, monitor)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Launch creates the namespace and starts every node. When any node fails
// to start the namespace is removed before returning.
func (e *Engine) Launch(ctx context.Context, creds string, cfg *config.NetworkConfig, monitor bool) (*Network, error) {
	p, err := NewProvider(cfg.Provider(), creds, e.runner)
	if err != nil {
		return nil, err
	}

	ns := e.newNamespace()
	log := e.log.With("namespace", ns, "provider", p.Name())
	ctx = logger.WithNamespace(ctx, ns)

	log.Debug("creating namespace")
	if err := p.Setup(ctx, ns); err != nil {
		return nil, fmt.Errorf("create namespace %s: %w", ns, err)
	}

	nodes := cfg.Nodes()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)
	for _, node := range nodes {
		node := node
		g.Go(func() error {
			if err := p.StartNode(gctx, ns, node); err != nil {
				return fmt.Errorf("start node %s: %w", node.Name, err)
			}
			log.Debug("node started", "node", node.Name, "image", node.Image)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		e.cleanup(p, ns, log)
		return nil, err
	}

	n := &Network{
		namespace:   ns,
		provider:    p,
		nodes:       nodes,
		dir:         filepath.Join(e.baseDir, ns),
		parallelism: e.parallelism,
		log:         log,
		startedAt:   time.Now(),
	}
	if err := n.writeSummary(); err != nil {
		log.Warn("failed to write network summary", "error", err)
	}

	if !monitor {
		n.expireAfter(timeoutOf(cfg))
	}
	log.Debug("network launched", "nodes", len(nodes), "monitor", monitor)
	return n, nil
}

func (e *Engine) cleanup(p Provider, ns string, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()
	if err := p.Destroy(ctx, ns); err != nil {
		log.Warn("failed to remove half-started network", "error", err)
	}
}

func timeoutOf(cfg *config.NetworkConfig) time.Duration {
	secs := domain.DefaultGlobalTimeout
	if cfg.Settings != nil && cfg.Settings.Timeout > 0 {
		secs = cfg.Settings.Timeout
	}
	return time.Duration(secs) * time.Second
}
