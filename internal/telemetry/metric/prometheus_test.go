package metric

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r.registry == nil {
		t.Fatal("registry field is nil")
	}
	if r.SessionsStarted == nil || r.Terminations == nil || r.Teardowns == nil {
		t.Fatal("metrics should be initialized")
	}

	r.SessionsStarted.Inc()
	r.Terminations.WithLabelValues("interrupted").Inc()
	r.Teardowns.WithLabelValues("interrupted", ResultOK).Inc()

	if got := testutil.ToFloat64(r.SessionsStarted); got != 1 {
		t.Errorf("SessionsStarted = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.Teardowns.WithLabelValues("interrupted", ResultOK)); got != 1 {
		t.Errorf("Teardowns = %v, want 1", got)
	}
}

func TestRegistry_WriteTextfile(t *testing.T) {
	r := NewRegistry()
	r.SessionsStarted.Inc()

	path := filepath.Join(t.TempDir(), "zombienet.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), "zombienet_session_started_total 1") {
		t.Errorf("textfile missing counter:\n%s", data)
	}
}

func TestSessionCollector(t *testing.T) {
	active := true
	c := NewSessionCollector(ActiveSourceFunc(func() bool { return active }))

	r := NewRegistry()
	r.MustRegister(c)

	expected := `
# HELP zombienet_session_active Whether a network session is registered (1) or not (0)
# TYPE zombienet_session_active gauge
zombienet_session_active 1
`
	if err := testutil.GatherAndCompare(r.Gatherer(), strings.NewReader(expected), "zombienet_session_active"); err != nil {
		t.Error(err)
	}

	active = false
	if got := testutil.ToFloat64(c); got != 0 {
		t.Errorf("collector value = %v, want 0", got)
	}
}
