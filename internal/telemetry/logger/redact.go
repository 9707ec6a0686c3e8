package logger

import (
	"log/slog"
	"path/filepath"
	"strings"
)

// Keys whose values are credential file locations. Only the base name is
// kept so logs never reveal where kubeconfigs live.
var credentialPathKeys = []string{
	"creds",
	"kubeconfig",
}

// Keys whose values are fully redacted.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"bearer",
}

const redactedValue = "***REDACTED***"

func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}

	if a.Value.Kind() != slog.KindString || a.Value.String() == "" {
		return a
	}

	key := strings.ToLower(a.Key)
	for _, pattern := range credentialPathKeys {
		if strings.Contains(key, pattern) {
			return slog.String(a.Key, MaskPath(a.Value.String()))
		}
	}
	if IsSensitiveKey(key) {
		return slog.String(a.Key, redactedValue)
	}

	return a
}

// MaskPath hides every directory of a path, keeping the file name.
func MaskPath(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	if base == path {
		return path
	}
	return ".../" + base
}

// IsSensitiveKey checks if a key name suggests secret content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
