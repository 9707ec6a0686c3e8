package shutdown

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yndnr/zombienet-go/internal/core/domain"
	"github.com/yndnr/zombienet-go/internal/core/session"
	"github.com/yndnr/zombienet-go/internal/telemetry/logger"
	"github.com/yndnr/zombienet-go/internal/telemetry/metric"
)

// DefaultTimeout bounds the whole teardown sequence.
const DefaultTimeout = 30 * time.Second

// Guardian owns process termination for a single network session.
type Guardian struct {
	registry *session.Registry
	log      logger.Logger
	metrics  *metric.Registry
	stderr   io.Writer
	exitFn   func(int)
	timeout  atomic.Int64

	// ticket is the single-use teardown latch.
	ticket atomic.Bool
	exited atomic.Bool

	code    atomic.Int64
	codeSet atomic.Bool

	mu    sync.Mutex
	hooks []func(context.Context) error

	done chan struct{}
}

// Option configures a Guardian.
type Option func(*Guardian)

// WithLogger sets the diagnostic logger.
func WithLogger(l logger.Logger) Option {
	return func(g *Guardian) {
		g.log = l
	}
}

// WithMetrics sets the metrics registry.
func WithMetrics(m *metric.Registry) Option {
	return func(g *Guardian) {
		g.metrics = m
	}
}

// WithTimeout bounds the teardown sequence.
func WithTimeout(d time.Duration) Option {
	return func(g *Guardian) {
		g.timeout.Store(int64(d))
	}
}

// WithExitFunc replaces os.Exit.
func WithExitFunc(fn func(int)) Option {
	return func(g *Guardian) {
		g.exitFn = fn
	}
}

// WithStderr sets where fault reports are printed.
func WithStderr(w io.Writer) Option {
	return func(g *Guardian) {
		g.stderr = w
	}
}

// NewGuardian creates a guardian watching registry.
func NewGuardian(registry *session.Registry, opts ...Option) *Guardian {
	g := &Guardian{
		registry: registry,
		log:      logger.Default(),
		stderr:   os.Stderr,
		exitFn:   os.Exit,
		done:     make(chan struct{}),
	}
	g.timeout.Store(int64(DefaultTimeout))

	for _, opt := range opts {
		opt(g)
	}
	if g.metrics == nil {
		g.metrics = metric.NewRegistry()
	}

	return g
}

// SetTimeout changes the teardown bound. Settings are only known after
// flags are parsed, which is after the guardian is installed.
func (g *Guardian) SetTimeout(d time.Duration) {
	if d > 0 {
		g.timeout.Store(int64(d))
	}
}

// Timeout returns the teardown bound.
func (g *Guardian) Timeout() time.Duration {
	return time.Duration(g.timeout.Load())
}

// SetLogger replaces the diagnostic logger.
func (g *Guardian) SetLogger(l logger.Logger) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.log = l
}

func (g *Guardian) currentLogger() logger.Logger {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.log
}

// SetExitCode records the exit code of the command flow.
func (g *Guardian) SetExitCode(code int) {
	g.code.Store(int64(code))
	g.codeSet.Store(true)
}

// ExitCode returns the recorded exit code, if any.
func (g *Guardian) ExitCode() (int, bool) {
	return int(g.code.Load()), g.codeSet.Load()
}

// OnShutdown registers a hook run after teardown, before exit.
// Hooks are called in reverse order of registration.
func (g *Guardian) OnShutdown(hook func(context.Context) error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.hooks = append(g.hooks, hook)
}

// Install starts src and stops it once the process is shutting down.
func (g *Guardian) Install(src Source) {
	g.OnShutdown(func(context.Context) error {
		src.Stop()
		return nil
	})
	src.Start(g.Handle)
}

// Done is closed once the teardown sequence and hooks have completed.
func (g *Guardian) Done() <-chan struct{} {
	return g.done
}

// Exit raises a natural exit.
func (g *Guardian) Exit() {
	g.Handle(Event{Kind: NaturalExit})
}

// Fail raises an unhandled fault for err.
func (g *Guardian) Fail(err error) {
	g.Handle(Event{Kind: UnhandledAsyncFault, Err: err})
}

// Recover turns a panic into a FatalFault. It must be deferred directly.
func (g *Guardian) Recover() {
	if r := recover(); r != nil {
		g.Handle(Event{Kind: FatalFault, Err: panicError(r), Stack: debug.Stack()})
	}
}

// Go runs fn on a goroutine whose panics and errors reach the guardian.
func (g *Guardian) Go(fn func() error) {
	go func() {
		defer g.Recover()
		if err := fn(); err != nil {
			g.Fail(err)
		}
	}()
}

// Handle processes a termination event. The first caller tears the
// network down; every caller then requests its own exit code.
func (g *Guardian) Handle(ev Event) {
	code := g.exitCodeFor(ev)
	g.metrics.Terminations.WithLabelValues(ev.Kind.String()).Inc()
	g.report(ev)

	if g.ticket.CompareAndSwap(false, true) {
		g.teardown(ev)
		g.runHooks()
		g.exit(code)
		close(g.done)
		return
	}

	g.currentLogger().Debug("teardown already claimed", "trigger", ev.Kind.String())
	select {
	case <-g.done:
	case <-time.After(2 * g.Timeout()):
		g.currentLogger().Warn("teardown still running, exiting anyway", "trigger", ev.Kind.String())
	}
	g.exit(code)
}

func (g *Guardian) exitCodeFor(ev Event) int {
	switch ev.Kind {
	case FatalFault:
		return ExitCodeFatalFault
	case UnhandledAsyncFault:
		return ExitCodeUnhandledAsync
	case Interrupted:
		return ExitCodeInterrupted
	default:
		if code, ok := g.ExitCode(); ok {
			return code
		}
		return ExitCodeFallback
	}
}

func (g *Guardian) report(ev Event) {
	log := g.currentLogger()
	switch ev.Kind {
	case FatalFault:
		fmt.Fprintln(g.stderr, "uncaughtException")
		fmt.Fprintln(g.stderr, ev.Err)
		if len(ev.Stack) > 0 {
			g.stderr.Write(ev.Stack)
		}
		log.Debug("fatal fault", "error", ev.Err)
	case UnhandledAsyncFault:
		fmt.Fprintln(g.stderr, "unhandledRejection")
		fmt.Fprintf(g.stderr, "%+v\n", ev.Err)
		log.Debug("unhandled fault", "error", ev.Err)
	case Interrupted:
		log.Debug("received signal", "signal", fmt.Sprint(ev.Signal))
	}
}

func (g *Guardian) teardown(ev Event) {
	trigger := ev.Kind.String()

	sess, ok := g.registry.Get()
	if !ok {
		g.metrics.Teardowns.WithLabelValues(trigger, metric.ResultSkipped).Inc()
		return
	}

	log := g.currentLogger().With("namespace", sess.Namespace(), "trigger", trigger)
	log.Debug("removing namespace")

	timeout := g.Timeout()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	errCh := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				errCh <- panicError(r)
			}
		}()
		errCh <- g.release(ctx, sess, !ev.Kind.Abnormal(), log)
	}()

	result := metric.ResultOK
	select {
	case err := <-errCh:
		if err != nil {
			result = metric.ResultFailed
			terr := domain.ErrTeardown.WithDetails(sess.Namespace()).WithCause(err)
			log.Error("network teardown failed", "error", terr)
			fmt.Fprintln(g.stderr, terr)
		} else {
			g.registry.Clear()
			log.Debug("namespace removed")
		}
	case <-ctx.Done():
		result = metric.ResultTimeout
		terr := domain.ErrTeardown.WithDetails(sess.Namespace()).WithCause(ctx.Err())
		log.Error("network teardown timed out", "timeout", timeout.String(), "error", terr)
		fmt.Fprintln(g.stderr, terr)
	}

	g.metrics.TeardownDuration.Observe(time.Since(start).Seconds())
	g.metrics.Teardowns.WithLabelValues(trigger, result).Inc()
}

// release runs the teardown sequence: upload logs (orderly exits only),
// then stop. A failed upload never prevents the stop.
func (g *Guardian) release(ctx context.Context, sess session.Session, upload bool, log logger.Logger) error {
	if upload {
		if err := sess.UploadLogs(ctx); err != nil {
			g.metrics.LogUploads.WithLabelValues(metric.ResultFailed).Inc()
			log.Warn("log upload failed", "error", err)
		} else {
			g.metrics.LogUploads.WithLabelValues(metric.ResultOK).Inc()
		}
	}
	return sess.Stop(ctx)
}

func (g *Guardian) runHooks() {
	g.mu.Lock()
	hooks := make([]func(context.Context) error, len(g.hooks))
	copy(hooks, g.hooks)
	g.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), g.Timeout())
	defer cancel()

	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil {
			g.currentLogger().Warn("shutdown hook failed", "error", err)
		}
	}
}

func (g *Guardian) exit(code int) {
	if !g.exited.CompareAndSwap(false, true) {
		return
	}
	g.exitFn(code)
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		if errors.Is(err, domain.ErrFatalFault) {
			return err
		}
		return domain.ErrFatalFault.WithCause(err)
	}
	return domain.ErrFatalFault.WithDetails(fmt.Sprint(r))
}
