package testrunner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/yndnr/zombienet-go/internal/core/domain"
	"github.com/yndnr/zombienet-go/internal/core/session"
	"github.com/yndnr/zombienet-go/internal/engine"
	"github.com/yndnr/zombienet-go/internal/network/config"
	"github.com/yndnr/zombienet-go/internal/telemetry/logger"
)

// Exit codes returned by Run.
const (
	ExitPassed = 0
	ExitFailed = 1
)

// Network is a launched network the runner can probe.
type Network interface {
	session.Session
	NodeRunning(ctx context.Context, node string) (bool, error)
}

// LaunchFunc starts a network for a test run.
type LaunchFunc func(ctx context.Context, creds string, cfg *config.NetworkConfig) (Network, error)

// EngineLauncher launches test networks on e in monitor mode; the runner
// removes them itself.
func EngineLauncher(e *engine.Engine) LaunchFunc {
	return func(ctx context.Context, creds string, cfg *config.NetworkConfig) (Network, error) {
		n, err := e.Launch(ctx, creds, cfg, true)
		if err != nil {
			return nil, err
		}
		return n, nil
	}
}

// Runner executes test definitions.
type Runner struct {
	launch       LaunchFunc
	findCreds    func(name string, dirs []string) string
	log          logger.Logger
	out          io.Writer
	pollInterval time.Duration
	stopTimeout  time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sets where results are printed.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Runner) {
		r.log = l
	}
}

// WithPollInterval sets how often node state is checked.
func WithPollInterval(d time.Duration) Option {
	return func(r *Runner) {
		r.pollInterval = d
	}
}

// WithCredsFinder replaces config.FindCreds.
func WithCredsFinder(fn func(name string, dirs []string) string) Option {
	return func(r *Runner) {
		r.findCreds = fn
	}
}

// New creates a runner.
func New(launch LaunchFunc, opts ...Option) *Runner {
	r := &Runner{
		launch:       launch,
		findCreds:    config.FindCreds,
		log:          logger.Default(),
		out:          os.Stdout,
		pollInterval: time.Second,
		stopTimeout:  2 * time.Minute,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the definition in testFile on provider and returns
// ExitPassed or ExitFailed. Errors are returned only when no assertion
// could be evaluated. Inside a CI container kubernetes creds come from the
// cluster and node logs are saved before the network is removed.
func (r *Runner) Run(ctx context.Context, testFile, provider string, inCI bool) (int, error) {
	def, err := ParseFile(testFile)
	if err != nil {
		return ExitFailed, err
	}
	baseDir := filepath.Dir(testFile)

	networkPath := def.Network
	if !filepath.IsAbs(networkPath) {
		networkPath = filepath.Join(baseDir, networkPath)
	}
	cfg, err := config.Load(networkPath)
	if err != nil {
		return ExitFailed, err
	}
	cfg.SetProvider(provider)

	creds, err := r.resolveCreds(def, provider, baseDir, inCI)
	if err != nil {
		return ExitFailed, err
	}

	log := r.log.With("test", testFile, "provider", provider)
	if def.Description != "" {
		fmt.Fprintf(r.out, "\n%s\n", def.Description)
	}

	net, err := r.launch(ctx, creds, cfg)
	if err != nil {
		return ExitFailed, domain.ErrEngineStart.WithDetails(networkPath).WithCause(err)
	}
	log = log.With("namespace", net.Namespace())
	defer r.release(net, inCI, log)

	failed := 0
	for _, a := range def.Assertions {
		start := time.Now()
		if err := r.check(ctx, net, a); err != nil {
			failed++
			fmt.Fprintf(r.out, "  ✖ %s (%s)\n", a.Text, err)
			log.Debug("assertion failed", "line", a.Line, "error", err)
			continue
		}
		fmt.Fprintf(r.out, "  ✔ %s (%dms)\n", a.Text, time.Since(start).Milliseconds())
	}

	passed := len(def.Assertions) - failed
	fmt.Fprintf(r.out, "\n  %d passing\n", passed)
	if failed > 0 {
		fmt.Fprintf(r.out, "  %d failing\n", failed)
		return ExitFailed, nil
	}
	return ExitPassed, nil
}

func (r *Runner) resolveCreds(def *Definition, provider, baseDir string, inCI bool) (string, error) {
	if !domain.NeedsCreds(provider) || inCI {
		return "", nil
	}
	name := def.Creds
	if name == "" {
		name = config.DefaultCredsName
	}
	dirs := append([]string{baseDir}, config.DefaultCredsDirs()...)
	creds := r.findCreds(name, dirs)
	if creds == "" {
		return "", domain.ErrCredsNotFound.WithDetails(name)
	}
	return creds, nil
}

func (r *Runner) check(ctx context.Context, net Network, a Assertion) error {
	switch a.Kind {
	case AssertIsUp:
		return r.waitUp(ctx, net, a.Node, a.Timeout)
	default:
		return fmt.Errorf("unsupported assertion %q", a.Kind)
	}
}

func (r *Runner) waitUp(ctx context.Context, net Network, node string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	var lastErr error
	for {
		up, err := net.NodeRunning(ctx, node)
		if err == nil && up {
			return nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			if lastErr != nil {
				return fmt.Errorf("node %s is not up after %s: %w", node, timeout, lastErr)
			}
			return fmt.Errorf("node %s is not up after %s", node, timeout)
		case <-ticker.C:
		}
	}
}

func (r *Runner) release(net Network, inCI bool, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), r.stopTimeout)
	defer cancel()

	if inCI {
		if err := net.UploadLogs(ctx); err != nil {
			log.Warn("log upload failed", "error", err)
		}
	}
	if err := net.Stop(ctx); err != nil {
		log.Error("failed to remove test network", "error", err)
	}
}
