package dispatch

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/yndnr/zombienet-go/internal/cli/invocation"
	"github.com/yndnr/zombienet-go/internal/core/domain"
	"github.com/yndnr/zombienet-go/internal/core/session"
	"github.com/yndnr/zombienet-go/internal/network/config"
	"github.com/yndnr/zombienet-go/internal/telemetry/logger"
	"github.com/yndnr/zombienet-go/internal/telemetry/metric"
)

// Environment variables read or written by the dispatcher.
const (
	EnvDebug          = "DEBUG"
	EnvRunInContainer = "RUN_IN_CONTAINER"
)

// Engine provisions networks.
type Engine interface {
	Start(ctx context.Context, creds string, cfg *config.NetworkConfig, monitor bool) (session.Session, error)
}

// TestRunner executes a test definition and returns the process exit code.
type TestRunner interface {
	Run(ctx context.Context, testFile, provider string, inCI bool) (int, error)
}

// ExitCoder records the exit code of the command flow.
type ExitCoder interface {
	SetExitCode(code int)
}

// Dispatcher executes invocations.
type Dispatcher struct {
	engine   Engine
	runner   TestRunner
	registry *session.Registry
	exit     ExitCoder
	metrics  *metric.Registry
	log      logger.Logger
	out      io.Writer
	getenv   func(string) string
	setenv   func(string, string) error
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithOutput sets where network info and the version are printed.
func WithOutput(w io.Writer) Option {
	return func(d *Dispatcher) {
		d.out = w
	}
}

// WithEnv replaces os.Getenv and os.Setenv.
func WithEnv(getenv func(string) string, setenv func(string, string) error) Option {
	return func(d *Dispatcher) {
		d.getenv = getenv
		d.setenv = setenv
	}
}

// WithMetrics sets the metrics registry.
func WithMetrics(m *metric.Registry) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(d *Dispatcher) {
		d.log = l
	}
}

// New creates a dispatcher.
func New(engine Engine, runner TestRunner, registry *session.Registry, exit ExitCoder, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		engine:   engine,
		runner:   runner,
		registry: registry,
		exit:     exit,
		log:      logger.Default(),
		out:      os.Stdout,
		getenv:   os.Getenv,
		setenv:   os.Setenv,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.metrics == nil {
		d.metrics = metric.NewRegistry()
	}
	return d
}

// Spawn starts the network, registers it and prints its summary.
// The network stays up until a termination event tears it down.
func (d *Dispatcher) Spawn(ctx context.Context, inv *invocation.SpawnInvocation) error {
	log := d.log.With("command", inv.Command(), "provider", inv.Provider(), "monitor", inv.Monitor)
	log.Debug("starting network", "config", inv.ConfigPath, "creds", inv.CredsPath)

	sess, err := d.engine.Start(ctx, inv.CredsPath, inv.Config, inv.Monitor)
	if err != nil {
		d.metrics.SessionStartFailures.Inc()
		return domain.ErrEngineStart.WithDetails(inv.ConfigPath).WithCause(err)
	}
	d.metrics.SessionsStarted.Inc()

	if err := d.registry.Set(sess); err != nil {
		// The registry refused the handle; nobody else will release it.
		if stopErr := sess.Stop(ctx); stopErr != nil {
			log.Error("failed to stop unregistered network", "namespace", sess.Namespace(), "error", stopErr)
		}
		return err
	}
	log.Info("network started", "namespace", sess.Namespace())

	sess.ShowNetworkInfo(d.out)
	d.exit.SetExitCode(0)
	return nil
}

// Test runs a test definition. The test engine owns any network it starts.
func (d *Dispatcher) Test(ctx context.Context, inv *invocation.TestInvocation) error {
	if err := d.setenv(EnvDebug, logger.DebugNamespace); err != nil {
		return fmt.Errorf("set %s: %w", EnvDebug, err)
	}
	logger.ApplyDebugEnv(logger.DebugNamespace)

	inCI := d.getenv(EnvRunInContainer) == "1"
	d.log.Debug("running test", "command", inv.Command(), "file", inv.TestFile, "provider", inv.Provider, "in_ci", inCI)

	code, err := d.runner.Run(ctx, inv.TestFile, inv.Provider, inCI)
	if err != nil {
		return err
	}
	d.exit.SetExitCode(code)
	return nil
}

// Version prints the release version.
func (d *Dispatcher) Version(inv *invocation.VersionInvocation) error {
	d.log.Debug("printing version", "command", inv.Command())
	if _, err := fmt.Fprintln(d.out, inv.Version); err != nil {
		return err
	}
	d.exit.SetExitCode(0)
	return nil
}
