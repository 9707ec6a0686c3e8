package command

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yndnr/zombienet-go/internal/cli/invocation"
	"github.com/yndnr/zombienet-go/internal/core/session"
	"github.com/yndnr/zombienet-go/internal/infra/shutdown"
	"github.com/yndnr/zombienet-go/internal/network/config"
	"github.com/yndnr/zombienet-go/internal/telemetry/logger"
	"github.com/yndnr/zombienet-go/internal/telemetry/metric"
)

const goodConfig = `{
  "settings": {"provider": "kubernetes", "timeout": 600},
  "relaychain": {
    "chain": "rococo-local",
    "default_image": "docker.io/parity/polkadot:latest",
    "nodes": [{"name": "alice", "validator": true}, {"name": "bob"}]
  }
}`

const podmanConfig = `{
  "settings": {"provider": "podman"},
  "relaychain": {
    "default_image": "docker.io/parity/polkadot:latest",
    "nodes": [{"name": "alice"}]
  }
}`

// recordingSession counts teardown calls in order.
type recordingSession struct {
	mu    sync.Mutex
	calls []string
}

func (s *recordingSession) Namespace() string { return "zombie-e2e" }

func (s *recordingSession) Stop(context.Context) error {
	s.record("stop")
	return nil
}

func (s *recordingSession) UploadLogs(context.Context) error {
	s.record("upload")
	return nil
}

func (s *recordingSession) ShowNetworkInfo(w io.Writer) {
	fmt.Fprintln(w, "Network launched: zombie-e2e")
}

func (s *recordingSession) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

func (s *recordingSession) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

type fakeEngine struct {
	mu    sync.Mutex
	sess  *recordingSession
	err   error
	cfg   *config.NetworkConfig
	creds string
	calls int
}

func (e *fakeEngine) Start(ctx context.Context, creds string, cfg *config.NetworkConfig, monitor bool) (session.Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	e.cfg, e.creds = cfg, creds
	if e.err != nil {
		return nil, e.err
	}
	return e.sess, nil
}

func (e *fakeEngine) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

type fakeRunner struct {
	code     int
	calls    int
	file     string
	provider string
	inCI     bool
}

func (r *fakeRunner) Run(ctx context.Context, file, provider string, inCI bool) (int, error) {
	r.calls++
	r.file, r.provider, r.inCI = file, provider, inCI
	return r.code, nil
}

type harness struct {
	t        *testing.T
	rt       *Runtime
	guardian *shutdown.Guardian
	registry *session.Registry
	metrics  *metric.Registry
	engine   *fakeEngine
	runner   *fakeRunner
	sess     *recordingSession
	stdout   *bytes.Buffer
	stderr   *syncBuffer
	env      map[string]string
	dir      string
	exits    chan int
}

// syncBuffer is written by the guardian from other goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// newHarness builds a runtime with fake engines. creds is what the creds
// lookup returns.
func newHarness(t *testing.T, creds string) *harness {
	t.Helper()

	h := &harness{
		t:        t,
		registry: session.NewRegistry(),
		metrics:  metric.NewRegistry(),
		sess:     &recordingSession{},
		runner:   &fakeRunner{},
		stdout:   &bytes.Buffer{},
		stderr:   &syncBuffer{},
		env:      map[string]string{},
		dir:      t.TempDir(),
		exits:    make(chan int, 4),
	}
	h.engine = &fakeEngine{sess: h.sess}
	h.guardian = shutdown.NewGuardian(h.registry,
		shutdown.WithExitFunc(func(code int) { h.exits <- code }),
		shutdown.WithStderr(h.stderr),
		shutdown.WithMetrics(h.metrics),
		shutdown.WithLogger(logger.Nop()),
	)

	h.rt = NewRuntime(h.guardian, h.registry, h.metrics)
	h.rt.Stdout = h.stdout
	h.rt.Stderr = h.stderr
	h.rt.Getenv = func(k string) string { return h.env[k] }
	h.rt.Setenv = func(k, v string) error {
		h.env[k] = v
		return nil
	}
	h.rt.Engine = h.engine
	h.rt.Runner = h.runner
	h.rt.Resolver = invocation.NewResolver(
		invocation.WithWorkDir(h.dir),
		invocation.WithCredsLookup(func(string) string { return creds }),
		invocation.WithLogger(logger.Nop()),
	)

	prev := logger.GetLevel()
	t.Cleanup(func() { logger.SetLevel(prev) })
	return h
}

func (h *harness) writeFile(name, content string) string {
	h.t.Helper()
	path := filepath.Join(h.dir, name)
	require.NoError(h.t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// run executes the CLI the way main does, minus the final natural exit.
func (h *harness) run(args ...string) {
	err := App(h.rt).Run(append([]string{"zombienet"}, args...))
	HandleError(h.rt, err)
}

// runAsync runs the CLI on its own goroutine and returns when it finishes.
func (h *harness) runAsync(args ...string) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.run(args...)
	}()
	return done
}

func (h *harness) waitForSession() {
	h.t.Helper()
	require.Eventually(h.t, func() bool {
		_, ok := h.registry.Get()
		return ok
	}, 2*time.Second, 5*time.Millisecond, "session was never registered")
}

func (h *harness) exitCode() int {
	h.t.Helper()
	select {
	case code := <-h.exits:
		return code
	case <-time.After(2 * time.Second):
		h.t.Fatal("process did not exit")
		return -1
	}
}

func waitClosed(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("command did not return")
	}
}
