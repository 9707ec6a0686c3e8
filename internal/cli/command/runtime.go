package command

import (
	"context"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	clicfg "github.com/yndnr/zombienet-go/internal/cli/config"
	"github.com/yndnr/zombienet-go/internal/cli/invocation"
	"github.com/yndnr/zombienet-go/internal/core/dispatch"
	"github.com/yndnr/zombienet-go/internal/core/session"
	"github.com/yndnr/zombienet-go/internal/engine"
	"github.com/yndnr/zombienet-go/internal/infra/shutdown"
	"github.com/yndnr/zombienet-go/internal/telemetry/logger"
	"github.com/yndnr/zombienet-go/internal/telemetry/metric"
	"github.com/yndnr/zombienet-go/internal/testrunner"
)

const runtimeKey = "runtime"

// Runtime carries the process-wide collaborators of every command.
// Engine, Runner and Resolver may be preset; the rest is built by the
// app's Before hook once settings are known.
type Runtime struct {
	Guardian *shutdown.Guardian
	Registry *session.Registry
	Metrics  *metric.Registry

	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	Setenv func(string, string) error

	Engine   dispatch.Engine
	Runner   dispatch.TestRunner
	Resolver *invocation.Resolver

	Settings   *clicfg.Settings
	Dispatcher *dispatch.Dispatcher
	Log        logger.Logger
}

// NewRuntime creates a runtime around the guardian that owns the process.
func NewRuntime(g *shutdown.Guardian, registry *session.Registry, metrics *metric.Registry) *Runtime {
	metrics.MustRegister(metric.NewSessionCollector(metric.ActiveSourceFunc(func() bool {
		_, ok := registry.Get()
		return ok
	})))

	return &Runtime{
		Guardian: g,
		Registry: registry,
		Metrics:  metrics,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Getenv:   os.Getenv,
		Setenv:   os.Setenv,
		Log:      logger.Default(),
	}
}

// RuntimeFrom returns the runtime stored in the app metadata.
func RuntimeFrom(c *cli.Context) *Runtime {
	rt, _ := c.App.Metadata[runtimeKey].(*Runtime)
	return rt
}

// setup applies settings and wires the dispatcher. It runs after flags are
// parsed and before any command action.
func (rt *Runtime) setup(c *cli.Context) error {
	s, err := clicfg.Load(c.String("settings"), flagOverrides(c))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	rt.Settings = s

	log, err := logger.New(logger.Config{
		Level:  s.Log.Level,
		Format: s.Log.Format,
		Output: rt.Stderr,
	})
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	logger.SetDefault(log)
	logger.ApplyDebugEnv(rt.Getenv(dispatch.EnvDebug))
	rt.Log = log

	rt.Guardian.SetLogger(log)
	rt.Guardian.SetTimeout(s.Teardown.Timeout)
	if path := s.Metrics.File; path != "" {
		rt.Guardian.OnShutdown(func(_ context.Context) error {
			return rt.Metrics.WriteTextfile(path)
		})
	}

	if rt.Engine == nil || rt.Runner == nil {
		opts := []engine.Option{
			engine.WithLogger(log),
			engine.WithParallelism(s.Engine.Parallelism),
			engine.WithCallRate(s.Engine.Rate),
		}
		if s.Engine.BaseDir != "" {
			opts = append(opts, engine.WithBaseDir(s.Engine.BaseDir))
		}
		eng := engine.New(opts...)
		if rt.Engine == nil {
			rt.Engine = eng
		}
		if rt.Runner == nil {
			rt.Runner = testrunner.New(testrunner.EngineLauncher(eng),
				testrunner.WithOutput(rt.Stdout),
				testrunner.WithLogger(log),
			)
		}
	}
	if rt.Resolver == nil {
		rt.Resolver = invocation.NewResolver(invocation.WithLogger(log))
	}

	rt.Dispatcher = dispatch.New(rt.Engine, rt.Runner, rt.Registry, rt.Guardian,
		dispatch.WithOutput(rt.Stdout),
		dispatch.WithEnv(rt.Getenv, rt.Setenv),
		dispatch.WithMetrics(rt.Metrics),
		dispatch.WithLogger(log),
	)
	return nil
}

// flagOverrides maps explicitly set flags to settings keys.
func flagOverrides(c *cli.Context) map[string]any {
	m := make(map[string]any)
	if c.IsSet("log-level") {
		m["log.level"] = c.String("log-level")
	}
	if c.IsSet("log-format") {
		m["log.format"] = c.String("log-format")
	}
	if c.IsSet("teardown-timeout") {
		m["teardown.timeout"] = c.Duration("teardown-timeout").String()
	}
	if c.IsSet("metrics-file") {
		m["metrics.file"] = c.String("metrics-file")
	}
	return m
}
