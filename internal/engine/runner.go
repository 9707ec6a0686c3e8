package engine

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"golang.org/x/time/rate"
)

// CommandRunner runs an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements CommandRunner. A non-zero exit is reported with the
// command's stderr.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return stdout.Bytes(), fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
		}
		return stdout.Bytes(), fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
	}
	return stdout.Bytes(), nil
}

// limitedRunner throttles provider CLI calls.
type limitedRunner struct {
	next    CommandRunner
	limiter *rate.Limiter
}

// Limit wraps r so that at most perSecond commands start each second,
// with bursts of up to burst commands. A non-positive perSecond disables
// throttling.
func Limit(r CommandRunner, perSecond float64, burst int) CommandRunner {
	if perSecond <= 0 {
		return r
	}
	if burst < 1 {
		burst = 1
	}
	return &limitedRunner{next: r, limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Run implements CommandRunner.
func (l *limitedRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return l.next.Run(ctx, name, args...)
}
