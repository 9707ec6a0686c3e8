package logger

import "context"

type contextKey string

const (
	loggerKey    contextKey = "zombienet.logger"
	namespaceKey contextKey = "zombienet.namespace"
	runIDKey     contextKey = "zombienet.run_id"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context.
// Returns the default logger if none is set.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// WithNamespace records the network namespace in the context.
func WithNamespace(ctx context.Context, namespace string) context.Context {
	return context.WithValue(ctx, namespaceKey, namespace)
}

// NamespaceFromContext extracts the network namespace from context.
func NamespaceFromContext(ctx context.Context) string {
	if ns, ok := ctx.Value(namespaceKey).(string); ok {
		return ns
	}
	return ""
}

// WithRunID records the CLI run ID in the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext extracts the CLI run ID from context.
func RunIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// L returns the context logger enriched with run ID and namespace.
func L(ctx context.Context) Logger {
	l := FromContext(ctx)

	if id := RunIDFromContext(ctx); id != "" {
		l = l.With("run_id", id)
	}
	if ns := NamespaceFromContext(ctx); ns != "" {
		l = l.With("namespace", ns)
	}

	return l
}
