package logger

import (
	"encoding/json"
	"testing"
)

func TestRedact_CredsPath(t *testing.T) {
	l, buf := newJSONLogger(t, "info")

	l.Info("using creds", "creds", "/home/ci/.kube/config", "kubeconfig", "/etc/k8s/admin.conf")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}
	if entry["creds"] != ".../config" {
		t.Errorf("creds = %v, want .../config", entry["creds"])
	}
	if entry["kubeconfig"] != ".../admin.conf" {
		t.Errorf("kubeconfig = %v", entry["kubeconfig"])
	}
}

func TestRedact_SecretKeys(t *testing.T) {
	l, buf := newJSONLogger(t, "info")

	l.Info("auth", "bearer_token", "abc", "namespace", "zombie-1")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}
	if entry["bearer_token"] != redactedValue {
		t.Errorf("bearer_token = %v, want redacted", entry["bearer_token"])
	}
	if entry["namespace"] != "zombie-1" {
		t.Errorf("namespace should not be redacted, got %v", entry["namespace"])
	}
}

func TestMaskPath(t *testing.T) {
	tests := map[string]string{
		"":                "",
		"config":          "config",
		"/root/.kube/cfg": ".../cfg",
		"../config":       ".../config",
	}
	for in, want := range tests {
		if got := MaskPath(in); got != want {
			t.Errorf("MaskPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsSensitiveKey(t *testing.T) {
	if !IsSensitiveKey("DB_PASSWORD") {
		t.Error("DB_PASSWORD should be sensitive")
	}
	if IsSensitiveKey("provider") {
		t.Error("provider should not be sensitive")
	}
}
