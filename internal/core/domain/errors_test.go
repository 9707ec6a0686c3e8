package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		expected string
	}{
		{
			name:     "plain",
			err:      NewDomainError("ZN-TEST-1000", "test message"),
			expected: "[ZN-TEST-1000] test message",
		},
		{
			name:     "with details",
			err:      NewDomainError("ZN-TEST-1001", "test message").WithDetails("/tmp/net.json"),
			expected: "[ZN-TEST-1001] test message: /tmp/net.json",
		},
		{
			name:     "with details and cause",
			err:      NewDomainError("ZN-TEST-1002", "boom").WithDetails("x").WithCause(errors.New("root")),
			expected: "[ZN-TEST-1002] boom: x (root)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDomainError_Is(t *testing.T) {
	err1 := NewDomainError("ZN-TEST-1000", "message 1")
	err2 := NewDomainError("ZN-TEST-1000", "message 2")
	err3 := NewDomainError("ZN-TEST-1001", "message 1")

	if !errors.Is(err1, err2) {
		t.Error("errors.Is should return true for same error code")
	}
	if errors.Is(err1, err3) {
		t.Error("errors.Is should return false for different error code")
	}
	if errors.Is(err1, fmt.Errorf("some error")) {
		t.Error("errors.Is should return false for non-DomainError")
	}
}

func TestDomainError_WithCauseKeepsOriginal(t *testing.T) {
	cause := fmt.Errorf("root cause")
	wrapped := ErrEngineStart.WithDetails("podman").WithCause(cause)

	if ErrEngineStart.Cause != nil || ErrEngineStart.Details != "" {
		t.Error("WithDetails/WithCause should not modify the sentinel")
	}
	if errors.Unwrap(wrapped) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(wrapped), cause)
	}
	if !errors.Is(wrapped, ErrEngineStart) {
		t.Error("errors.Is should match the sentinel after chaining")
	}
}

func TestIsDomainError(t *testing.T) {
	wrapped := fmt.Errorf("spawn: %w", ErrConfigNotFound)

	if !IsDomainError(wrapped, "ZN-CONF-4040") {
		t.Error("IsDomainError should match wrapped code")
	}
	if !IsDomainError(wrapped, "") {
		t.Error("IsDomainError with empty code should match any DomainError")
	}
	if IsDomainError(wrapped, "ZN-CONF-9999") {
		t.Error("IsDomainError should not match other codes")
	}
	if IsDomainError(errors.New("plain"), "") {
		t.Error("IsDomainError should not match plain errors")
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"domain error", ErrCredsNotFound, "ZN-CRED-4040"},
		{"wrapped", fmt.Errorf("x: %w", ErrTeardown), "ZN-ENG-5001"},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetErrorCode(tt.err); got != tt.expected {
				t.Errorf("GetErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestIsPreSession(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{ErrConfigNotFound.WithDetails("/nope.json"), true},
		{fmt.Errorf("spawn: %w", ErrCredsNotFound), true},
		{ErrMissingArgument, true},
		{ErrConfigInvalid, false},
		{ErrEngineStart, false},
		{errors.New("plain"), false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.err), func(t *testing.T) {
			if got := IsPreSession(tt.err); got != tt.want {
				t.Errorf("IsPreSession() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProviders(t *testing.T) {
	for _, p := range []string{"podman", "kubernetes"} {
		if !IsAvailableProvider(p) {
			t.Errorf("%q should be available", p)
		}
	}
	for _, p := range []string{"", "native", "Podman", "docker"} {
		if IsAvailableProvider(p) {
			t.Errorf("%q should not be available", p)
		}
	}
	if !NeedsCreds(ProviderKubernetes) || NeedsCreds(ProviderPodman) {
		t.Error("only kubernetes needs creds")
	}
	if DefaultProvider != ProviderKubernetes {
		t.Errorf("DefaultProvider = %q", DefaultProvider)
	}
}
